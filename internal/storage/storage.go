// Package storage provides the key-value persistence layer: a small KV
// contract, JSON item codec helpers over it, and file- and Postgres-backed
// implementations.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fixed keys of the persisted collections.
const (
	// KeyUsers holds the account collection.
	KeyUsers = "users"
	// KeyUser holds the session pointer of the current user.
	KeyUser = "user"
	// KeyPosts holds the post collection.
	KeyPosts = "posts"
)

// KV is the raw key-value store underlying both services. Get reports
// ok=false when no value is stored under key.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GetItem reads the value stored under key and decodes it from JSON into T.
// A missing key reports ok=false. A stored value that is not valid JSON for
// T also reports ok=false: corrupted or foreign data under a key is treated
// as absent rather than surfaced as an error.
func GetItem[T any](ctx context.Context, kv KV, key string) (T, bool, error) {
	var item T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return item, false, fmt.Errorf("get %q: %w", key, err)
	}
	if !ok {
		return item, false, nil
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		var zero T
		return zero, false, nil
	}
	return item, true, nil
}

// SetItem encodes value as JSON and stores it under key.
func SetItem[T any](ctx context.Context, kv KV, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
