package cache

import "errors"

var (
	ErrNotFound      = errors.New("cache: entry not found")
	ErrClosed        = errors.New("cache: closed")
	ErrMarshal       = errors.New("cache: failed to marshal value")
	ErrUnmarshal     = errors.New("cache: failed to unmarshal value")
	ErrUnknownDriver = errors.New("cache: unknown driver")
	ErrNoRedisClient = errors.New("cache: redis driver requires a client")
)
