package cache

import "time"

// Option configures a cache backend. Options that do not apply to a backend
// are ignored by it.
type Option func(*options)

type options struct {
	ttl             time.Duration
	cleanupInterval time.Duration
	maxEntries      int
	prefix          string
}

func defaultOptions() *options {
	return &options{
		ttl:             time.Hour,
		cleanupInterval: time.Minute,
	}
}

// WithTTL sets the TTL used when Set receives zero.
func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithCleanupInterval sets how often the memory backend drops expired
// entries. Zero disables the background sweep.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) { o.cleanupInterval = d }
}

// WithMaxEntries bounds the memory backend; the least recently used entry
// is evicted first. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(o *options) { o.maxEntries = n }
}

// WithPrefix namespaces Redis keys as "prefix:key". Clear only removes
// keys under the prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}
