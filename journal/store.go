package journal

import (
	"context"
	"fmt"
	"sync"
)

// Keys the journal is stored under.
const (
	KeyTrades      = "trades"
	KeyJournalData = "journalData"
)

// KV is one key and its value.
type KV struct {
	Key   string
	Value []byte
}

// Store is a byte-valued key-value store. Get returns ErrNotFound for a key
// that was never written. PutAll writes every pair or none of them.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	PutAll(ctx context.Context, kvs ...KV) error
	Close() error
}

// MemoryStore keeps values in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) PutAll(ctx context.Context, kvs ...KV) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, kv := range kvs {
		m.data[kv.Key] = append([]byte(nil), kv.Value...)
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
