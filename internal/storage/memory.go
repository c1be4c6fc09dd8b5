package storage

import (
	"context"
	"sync"
)

// memoryStorage keeps objects in process memory. It backs local runs with
// s3.enabled=false and tests.
type memoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStorage() ObjectStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (m *memoryStorage) PutObject(_ context.Context, objectKey string, body []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = append([]byte(nil), body...)
	return nil
}

func (m *memoryStorage) GetObject(_ context.Context, objectKey string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.objects[objectKey]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return append([]byte(nil), body...), nil
}

func (m *memoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, objectKey)
	return nil
}
