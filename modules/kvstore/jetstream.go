package kvstore

import (
	"context"
	"errors"
	"fmt"

	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
)

// DefaultBucket is the JetStream KV bucket holding the storefront documents.
const DefaultBucket = "storefront"

// JetStreamStore adapts a bucket of the mono kv-jetstream plugin to KVStore.
type JetStreamStore struct {
	bucket kvjetstream.KVStoragePort
}

// NewJetStreamStore wraps an already created bucket.
func NewJetStreamStore(bucket kvjetstream.KVStoragePort) *JetStreamStore {
	return &JetStreamStore{bucket: bucket}
}

// Get retrieves the value stored under key.
func (s *JetStreamStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := s.bucket.Get(key)
	if err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return data, nil
}

// Put overwrites key without a TTL.
func (s *JetStreamStore) Put(_ context.Context, key string, value []byte) error {
	if err := s.bucket.Set(key, value, 0); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *JetStreamStore) Delete(_ context.Context, key string) error {
	if err := s.bucket.Delete(key); err != nil {
		if errors.Is(err, kvjetstream.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// NewJetStreamPlugin creates the kv-jetstream plugin with the storefront bucket.
// File storage keeps the documents across restarts of the embedded NATS server.
func NewJetStreamPlugin(bucket string) (*kvjetstream.PluginModule, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	plugin, err := kvjetstream.New(kvjetstream.Config{
		Buckets: []kvjetstream.BucketConfig{
			{
				Name:        bucket,
				Description: "Storefront cart and order documents",
				Storage:     kvjetstream.FileStorage,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kv-jetstream plugin: %w", err)
	}
	return plugin, nil
}
