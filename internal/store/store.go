package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// KV is the string-keyed document store the application state lives in.
// Values are opaque JSON documents; Set always overwrites the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
