package capture

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-memory Store, mainly for tests.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

// Put stores a copy of data under name.
func (m *MemoryStore) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[name] = bytes.Clone(data)
}

// Location identifies this store instance.
func (m *MemoryStore) Location() string {
	return fmt.Sprintf("memory:%p", m)
}

// Open opens an object for reading.
func (m *MemoryStore) Open(_ context.Context, name string) (Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &memoryObject{data: data}, nil
}

type memoryObject struct {
	data []byte
}

func (o *memoryObject) Size() int64 {
	return int64(len(o.data))
}

func (o *memoryObject) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	n, err := ClampRange(off, length, int64(len(o.data)))
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(o.data[off : off+n])), nil
}

func (o *memoryObject) Close() error {
	return nil
}
