package repository

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps collections in process memory.
// A positive quota caps the total payload bytes across all keys.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int64
}

// NewMemoryStore creates a new MemoryStore. quota <= 0 means unlimited.
func NewMemoryStore(quota int64) *MemoryStore {
	return &MemoryStore{
		data:  make(map[string][]byte),
		quota: quota,
	}
}

func (s *MemoryStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, true, nil
}

func (s *MemoryStore) Write(ctx context.Context, key string, payload json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		var used int64
		for k, v := range s.data {
			if k != key {
				used += int64(len(v))
			}
		}
		if used+int64(len(payload)) > s.quota {
			return ErrStorageFull
		}
	}

	stored := make([]byte, len(payload))
	copy(stored, payload)
	s.data[key] = stored
	return nil
}
