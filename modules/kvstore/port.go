// Package kvstore provides the string-keyed persistence port used by the cart and
// order modules, with JetStream KV, Redis, SQLite, Postgres and in-memory backends.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for KV operations.
var (
	// ErrKeyNotFound is returned when the requested key has never been written.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMalformedValue is returned by GetJSON when the stored value cannot be decoded.
	ErrMalformedValue = errors.New("malformed value")
)

// KVStore is the read/write port for persisted documents.
// Values are opaque bytes; callers own the serialization format.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads key and decodes it into dest.
// A missing key yields ErrKeyNotFound and an undecodable value yields ErrMalformedValue.
func GetJSON(ctx context.Context, store KVStore, key string, dest any) error {
	data, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrMalformedValue, key, err)
	}
	return nil
}

// PutJSON encodes v and overwrites key with it.
func PutJSON(ctx context.Context, store KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %q: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}
