package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound when the key is missing or expired.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler converts values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON returns a Marshaler backed by encoding/json.
func JSON[V any]() Marshaler[V] { return jsonMarshaler[V]{} }

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// Drivers accepted by New.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// New returns the cache backend named by driver. The redis driver needs a
// client; the others ignore it. An empty driver means "none".
func New[V any](driver string, client redis.UniversalClient, opts ...Option) (Cache[V], error) {
	switch driver {
	case "", DriverNone:
		return Nop[V]{}, nil
	case DriverMemory:
		return NewMemory[V](opts...), nil
	case DriverRedis:
		if client == nil {
			return nil, ErrNoRedisClient
		}
		return NewRedis[V](client, nil, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

var loads singleflight.Group

// Generation counts invalidations of a cache. Bump it before clearing so a
// load that started earlier does not store its result afterwards.
type Generation struct {
	n atomic.Uint64
}

// Bump records an invalidation.
func (g *Generation) Bump() {
	if g != nil {
		g.n.Add(1)
	}
}

func (g *Generation) current() uint64 {
	if g == nil {
		return 0
	}
	return g.n.Load()
}

// GetOrSet returns the cached value for key, or computes it with fn and
// stores it with the TTL fn returns. Concurrent misses on the same cache
// and key share a single call to fn. Errors from fn are returned and
// nothing is stored.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	return GetOrSetGen(ctx, c, nil, key, fn)
}

// GetOrSetGen is GetOrSet guarded by gen. When gen is bumped while fn runs,
// the loaded value is returned but not stored; when it is bumped right after
// the store, the entry is removed again. Callers that joined the load still
// get its value once.
func GetOrSetGen[V any](ctx context.Context, c Cache[V], gen *Generation, key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := loads.Do(fmt.Sprintf("%p/%s", c, key), func() (any, error) {
		start := gen.current()
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if gen.current() == start {
			// A failed write only costs a later reload.
			_ = c.Set(ctx, key, val, ttl)
			if gen.current() != start {
				_ = c.Delete(ctx, key)
			}
		}
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, _ := res.(V)
	return v, nil
}

// Nop never stores anything; every Get misses.
type Nop[V any] struct{}

func (Nop[V]) Get(context.Context, string) (V, error) {
	var zero V
	return zero, ErrNotFound
}
func (Nop[V]) Set(context.Context, string, V, time.Duration) error { return nil }
func (Nop[V]) Delete(context.Context, string) error                { return nil }
func (Nop[V]) Has(context.Context, string) (bool, error)           { return false, nil }
func (Nop[V]) Clear(context.Context) error                         { return nil }
func (Nop[V]) Close() error                                        { return nil }

var _ Cache[any] = Nop[any]{}
