package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/simplefw/pkg/cache"
)

const allKey = "all"

// Cached serves reads from a cache and clears it whenever a write succeeds.
// A read that was loading while a write cleared the cache does not store
// its result.
type Cached[T any] struct {
	CRUD[T]
	cache cache.Cache[[]*T]
	gen   cache.Generation
	ttl   time.Duration
}

var _ CRUD[struct{}] = (*Cached[struct{}])(nil)

// NewCached wraps next with c. Entries live for ttl; zero uses the cache default.
func NewCached[T any](next CRUD[T], c cache.Cache[[]*T], ttl time.Duration) *Cached[T] {
	return &Cached[T]{CRUD: next, cache: c, ttl: ttl}
}

// All returns the cached list, loading it on a miss.
func (c *Cached[T]) All(ctx context.Context) ([]*T, error) {
	return cache.GetOrSetGen(ctx, c.cache, &c.gen, allKey, func(ctx context.Context) ([]*T, time.Duration, error) {
		items, err := c.CRUD.All(ctx)
		return items, c.ttl, err
	})
}

// One returns the cached entity, loading it on a miss.
func (c *Cached[T]) One(ctx context.Context, id ...any) (*T, error) {
	items, err := cache.GetOrSetGen(ctx, c.cache, &c.gen, oneKey(id), func(ctx context.Context) ([]*T, time.Duration, error) {
		item, err := c.CRUD.One(ctx, id...)
		if err != nil {
			return nil, 0, err
		}
		return []*T{item}, c.ttl, nil
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return items[0], nil
}

func (c *Cached[T]) Insert(ctx context.Context, item *T) (int64, error) {
	return c.invalidate(ctx)(c.CRUD.Insert(ctx, item))
}

func (c *Cached[T]) Update(ctx context.Context, item *T) (int64, error) {
	return c.invalidate(ctx)(c.CRUD.Update(ctx, item))
}

func (c *Cached[T]) Save(ctx context.Context, item *T) (int64, error) {
	return c.invalidate(ctx)(c.CRUD.Save(ctx, item))
}

func (c *Cached[T]) Delete(ctx context.Context, item *T) (int64, error) {
	return c.invalidate(ctx)(c.CRUD.Delete(ctx, item))
}

func (c *Cached[T]) invalidate(ctx context.Context) func(int64, error) (int64, error) {
	return func(n int64, err error) (int64, error) {
		if err != nil {
			return n, err
		}
		c.gen.Bump()
		if cerr := c.cache.Clear(ctx); cerr != nil {
			return n, fmt.Errorf("repository: clear cache: %w", cerr)
		}
		return n, nil
	}
}

func oneKey(id []any) string {
	parts := make([]string, len(id))
	for i, v := range id {
		parts[i] = fmt.Sprint(v)
	}
	return "one:" + strings.Join(parts, ":")
}
