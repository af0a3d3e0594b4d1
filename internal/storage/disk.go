package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	diskFileSuffix  = ".json"
	diskTmpSuffix   = ".tmp"
	diskPermissions = 0o644
)

var _ KV = (*DiskKV)(nil)

// DiskKV keeps every blob in its own file under root.
// Writes go to a temp file first and are then renamed over the old one.
type DiskKV struct {
	root string
	mu   sync.RWMutex
}

func NewDiskKV(root string) (*DiskKV, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir [%s]: %w", root, err)
	}
	return &DiskKV{root: root}, nil
}

func (d *DiskKV) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", fmt.Errorf("%w: [%s]", ErrInvalidKey, key)
	}
	return filepath.Join(d.root, key+diskFileSuffix), nil
}

func (d *DiskKV) Get(_ context.Context, key string) ([]byte, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read [%s]: %w", path, err)
	}
	return data, nil
}

func (d *DiskKV) Set(_ context.Context, key string, value []byte) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	tmpPath := path + diskTmpSuffix
	if err := os.WriteFile(tmpPath, value, diskPermissions); err != nil {
		return fmt.Errorf("write tmp file [%s]: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if rmErr := os.Remove(tmpPath); rmErr != nil {
			log.Warnf("disk kv, remove tmp file [%s]: %s", tmpPath, rmErr)
		}
		return fmt.Errorf("rename [%s]: %w", tmpPath, err)
	}

	return nil
}
