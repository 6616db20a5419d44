package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

func (it *item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// Memory is an in-process LRU cache with per-entry expiry.
type Memory[V any] struct {
	mu     sync.Mutex
	opts   *options
	index  map[string]*list.Element
	order  *list.List // front is most recently used
	stop   chan struct{}
	closed bool
}

var _ Cache[any] = (*Memory[any])(nil)

// NewMemory returns a memory cache. Call Close to stop its sweeper.
func NewMemory[V any](opts ...Option) *Memory[V] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	m := &Memory[V]{
		opts:  o,
		index: make(map[string]*list.Element),
		order: list.New(),
		stop:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.sweep(o.cleanupInterval)
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}

	el, ok := m.index[key]
	if !ok {
		return zero, ErrNotFound
	}
	it := el.Value.(*item[V])
	if it.expired(time.Now()) {
		m.remove(el)
		return zero, ErrNotFound
	}

	m.order.MoveToFront(el)
	return it.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.ttl
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if el, ok := m.index[key]; ok {
		it := el.Value.(*item[V])
		it.value = value
		it.expiresAt = expiresAt
		m.order.MoveToFront(el)
		return nil
	}

	m.index[key] = m.order.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})

	if m.opts.maxEntries > 0 {
		for m.order.Len() > m.opts.maxEntries {
			m.remove(m.order.Back())
		}
	}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.index[key]; ok {
		m.remove(el)
	}
	return nil
}

func (m *Memory[V]) Has(ctx context.Context, key string) (bool, error) {
	_, err := m.Get(ctx, key)
	switch err {
	case nil:
		return true, nil
	case ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.index = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// Close stops the sweeper. Later calls return ErrClosed.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.stop)
	m.index = nil
	m.order.Init()
	return nil
}

func (m *Memory[V]) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-t.C:
			m.mu.Lock()
			for el := m.order.Back(); el != nil; {
				prev := el.Prev()
				if el.Value.(*item[V]).expired(now) {
					m.remove(el)
				}
				el = prev
			}
			m.mu.Unlock()
		}
	}
}

// remove must be called with m.mu held.
func (m *Memory[V]) remove(el *list.Element) {
	it := m.order.Remove(el).(*item[V])
	delete(m.index, it.key)
}
