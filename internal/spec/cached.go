package spec

import (
	"context"
	"errors"

	"github.com/apidocs/docsmount/internal/cache"
)

// CachedSource prefers the artifact stored by `docs:cache` and falls back to
// the live generator when nothing is cached.
type CachedSource struct {
	Store    cache.Store
	Key      string
	Fallback Source
}

func (s CachedSource) Document(ctx context.Context) ([]byte, error) {
	b, err := s.Store.Get(ctx, s.Key)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		return nil, err
	}
	return s.Fallback.Document(ctx)
}
