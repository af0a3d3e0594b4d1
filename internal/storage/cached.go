package storage

import (
	"context"
	"errors"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const megabyte = 1024 * 1024

var _ KV = (*CachedKV)(nil)

// CachedKV is a read-through freecache in front of another KV.
// Every Set writes through and refreshes (or drops) the cached entry,
// so a Get after a Set always sees the new blob.
type CachedKV struct {
	inner KV
	cache *freecache.Cache
}

func NewCachedKV(inner KV, cacheSizeMegabytes int) *CachedKV {
	return &CachedKV{
		inner: inner,
		cache: freecache.NewCache(cacheSizeMegabytes * megabyte),
	}
}

func (c *CachedKV) Get(ctx context.Context, key string) ([]byte, error) {
	if cached, err := c.cache.Get([]byte(key)); err == nil {
		log.Tracef("cached kv, found [%s] in cache", key)
		return cached, nil
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Debugf("cached kv, get [%s]: %s", key, err)
	}

	value, err := c.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	c.store(key, value)
	return value, nil
}

func (c *CachedKV) Set(ctx context.Context, key string, value []byte) error {
	if err := c.inner.Set(ctx, key, value); err != nil {
		// the inner state is unknown now
		c.Invalidate(key)
		return err
	}
	c.store(key, value)
	return nil
}

func (c *CachedKV) Invalidate(key string) {
	c.cache.Del([]byte(key))
}

func (c *CachedKV) HitCount() int64 {
	return c.cache.HitCount()
}

func (c *CachedKV) MissCount() int64 {
	return c.cache.MissCount()
}

func (c *CachedKV) store(key string, value []byte) {
	// entries larger than 1/1024 of the cache size are rejected by freecache;
	// such blobs are just served from the inner store
	if err := c.cache.Set([]byte(key), value, 0); err != nil {
		log.Debugf("cached kv, not caching [%s] (%d bytes): %s", key, len(value), err)
		c.Invalidate(key)
	}
}
