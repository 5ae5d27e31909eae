// Package blobstore keeps one opaque JSON document per sync key.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when nothing was stored under the key
var ErrNotFound = errors.New("blob not found")

// Store reads and replaces whole documents by key
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, doc []byte) error
	Ping(ctx context.Context) error
}
