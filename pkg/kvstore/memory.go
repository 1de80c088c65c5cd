package kvstore

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
	lists  map[string][][]byte
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		values: map[string][]byte{},
		lists:  map[string][][]byte{},
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(value), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = clone(value)
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	delete(m.lists, key)
	return nil
}

func (m *MemoryStore) Append(ctx context.Context, key string, value []byte, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append(m.lists[key], clone(value))
	if capacity > 0 && len(list) > capacity {
		list = append([][]byte(nil), list[len(list)-capacity:]...)
	}
	m.lists[key] = list
	return nil
}

func (m *MemoryStore) List(ctx context.Context, key string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.lists[key]
	out := make([][]byte, 0, len(list))
	for _, item := range list {
		out = append(out, clone(item))
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
