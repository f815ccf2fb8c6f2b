// Package kvstore defines the durable key-value storage that teams and the session persist to.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when the key has never been written or was deleted.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrInvalidKey is returned for keys outside [A-Za-z0-9._:-].
	ErrInvalidKey = errors.New("kvstore: invalid key")
)

// Store reads, writes and removes whole values by key. Writes replace the previous value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,200}$`)

// ValidateKey rejects empty keys and keys that are unsafe as file names.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key with prefix. An empty prefix returns the store unchanged.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return prefixed{Store: store, prefix: prefix}
}

func (p prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Get(ctx, p.prefix+key)
}

func (p prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.Store.Set(ctx, p.prefix+key, value)
}

func (p prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.prefix+key)
}
