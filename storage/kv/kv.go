// Package kv provides the durable key-value stores session state is
// persisted to. Values are opaque byte slices; callers own the encoding.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Key joins a namespace and an owner into a storage key, e.g. "cart:<owner>".
func Key(namespace, owner string) string {
	return namespace + ":" + owner
}
