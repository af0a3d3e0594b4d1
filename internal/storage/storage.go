package storage

import (
	"context"
	"errors"
)

// Keys of the two persisted blobs.
const (
	LogsKey      = "workout_logs"
	ExercisesKey = "exercise_list"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrCorruptBlob = errors.New("stored blob is corrupt")
	ErrInvalidKey  = errors.New("invalid key")
)

// PrefixedKey namespaces key for backends shared between deployments.
func PrefixedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// KV is the persistence medium: whole blobs read and written by name.
// Every Set replaces the blob atomically; there is no transaction across keys.
//
//go:generate mockgen -source=$GOFILE -destination=kv_mocks_test.go -package=storage_test
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
