package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	apperrors "inkwell/internal/platform/errors"
)

// MemoryStore keeps encoded values in memory. Values round-trip through JSON
// so callers observe the same semantics as FileStore.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string][]byte
	writeErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string][]byte{}}
}

// FailWrites makes every following Save return err. Pass nil to
// restore normal behaviour.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Put stores raw bytes as-is, which lets tests seed corrupt payloads.
func (s *MemoryStore) Put(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
}

func (s *MemoryStore) Load(_ context.Context, key string, dst any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(key, dst)
}

func (s *MemoryStore) Save(_ context.Context, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(key, value)
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.values))
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) loadLocked(key string, dst any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	raw, ok := s.values[key]
	if !ok || len(raw) == 0 {
		return apperrors.ErrNotFound
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *MemoryStore) saveLocked(key string, value any) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if s.writeErr != nil {
		return s.writeErr
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.values[key] = payload
	return nil
}
