package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value has ever been written
// under the given key, or the key has been deleted.
var ErrNotFound = errors.New("slot not found")

//go:generate mockgen -source=storage.go -destination=slot_mock.go -package=storage

// Slot is a named durable storage location. Values survive restarts
// until explicitly deleted.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
