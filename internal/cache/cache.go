// Package cache stores generated API documentation artifacts so the docs
// endpoint can serve a prebuilt document instead of regenerating it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var ErrMiss = errors.New("cache miss")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close()
}

// Open returns a PostgreSQL-backed store when databaseURL is set and a file
// store rooted at dir otherwise.
func Open(ctx context.Context, databaseURL string, dir string) (Store, error) {
	if databaseURL != "" {
		s, err := NewPGStore(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureSchema(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	}
	s, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ValidKey reports whether key can name an artifact in every Store.
func ValidKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("invalid cache key %q", key)
	}
	return nil
}
