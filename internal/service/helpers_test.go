package service

import (
	"context"
	"io"
)

// memKV is an in-memory storage.KV used across the service tests.
type memKV struct {
	items  map[string][]byte
	getErr error
	setErr error
}

func newMemKV() *memKV {
	return &memKV{items: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.items[key] = value
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	delete(m.items, key)
	return nil
}

// mockUploader implements Uploader with a pluggable function.
type mockUploader struct {
	UploadFunc func(ctx context.Context, name string, r io.Reader) (string, error)
}

func (m *mockUploader) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	return m.UploadFunc(ctx, name, r)
}
