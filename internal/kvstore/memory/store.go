package memory

import (
	"context"
	"sync"

	"github.com/preston-bernstein/nba-roster-service/internal/kvstore"
)

// Op names a storage operation for failure injection.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Store is an in-memory kvstore.Store. Failures can be injected per operation for tests.
type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	fail   map[Op]error
	writes int
}

var _ kvstore.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string][]byte),
		fail: make(map[Op]error),
	}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.fail[OpGet]; err != nil {
		return nil, err
	}
	val, ok := s.data[key]
	if !ok {
		return nil, kvstore.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := kvstore.ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[OpSet]; err != nil {
		return err
	}
	s.data[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[OpDelete]; err != nil {
		return err
	}
	delete(s.data, key)
	return nil
}

func (s *Store) Close() error { return nil }

// FailOn makes every subsequent op return err. A nil err clears the failure.
func (s *Store) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, op)
		return
	}
	s.fail[op] = err
}

// Put seeds a raw value, bypassing failure injection and key validation.
func (s *Store) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
}

// Raw returns the stored bytes without copying semantics or failure injection.
func (s *Store) Raw(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Writes counts successful Set calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
