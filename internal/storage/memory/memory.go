package memory

import (
	"context"
	"sync"

	"github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/database"
	apperrors "github.com/TamannaaSinghh/Redesign-ILBMart-sub000/pkg/errors"
)

// Storage implements storage.Storage in process memory. Values are copied on
// the way in and out so callers cannot alias stored bytes.
type Storage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory storage.
func New() *Storage {
	return &Storage{data: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) (_ []byte, err error) {
	_, end := database.TraceOp(ctx, database.SystemMemory, "Get", key)
	defer func() { end(err) }()

	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NotFound("storage key", key)
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	_, end := database.TraceOp(ctx, database.SystemMemory, "Set", key)
	defer end(nil)

	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
	return nil
}

// Delete removes key if present.
func (s *Storage) Delete(ctx context.Context, key string) error {
	_, end := database.TraceOp(ctx, database.SystemMemory, "Delete", key)
	defer end(nil)

	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (s *Storage) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
