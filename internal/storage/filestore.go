package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// FileStore is a KV backed by a single JSON file. The whole map is loaded
// at open and rewritten on every mutation, mirroring how a browser's
// localStorage behaves for this application.
type FileStore struct {
	path  string
	mu    sync.Mutex
	items map[string]json.RawMessage
}

// OpenFile opens the store at path, loading any existing content.
// A missing file yields an empty store.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{
		path:  path,
		items: make(map[string]json.RawMessage),
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("open storage file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&fs.items); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}
	return fs, nil
}

// Get returns the raw value stored under key, ok=false if none exists.
func (fs *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	raw, ok := fs.items[key]
	if !ok {
		return nil, false, nil
	}
	return raw, true, nil
}

// Set stores value under key and rewrites the backing file.
func (fs *FileStore) Set(_ context.Context, key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.items[key] = json.RawMessage(value)
	return fs.save()
}

// Delete removes key and rewrites the backing file. Deleting a missing
// key is not an error.
func (fs *FileStore) Delete(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.items[key]; !ok {
		return nil
	}
	delete(fs.items, key)
	return fs.save()
}

// save rewrites the whole file. Callers must hold fs.mu.
func (fs *FileStore) save() error {
	f, err := os.Create(fs.path)
	if err != nil {
		return fmt.Errorf("create storage file: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(fs.items); err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	return nil
}
