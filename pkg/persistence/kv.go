package persistence

import "context"

// Fixed keys for the persisted entities.
const (
	KeyCart = "cart"
	KeyAuth = "auth"
)

// KV is the byte-level key/value store behind the adapter, the local storage analogue.
type KV interface {
	// Get returns the bytes stored at key. found is false when the key is absent.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	// Set overwrites the value at key.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Backend is a KV with lifecycle and health hooks, as returned by Open.
type Backend interface {
	KV
	Ping(ctx context.Context) error
	Close() error
	Name() string
}
