package redis

import "errors"

// Errors returned by Open and Healthcheck. Underlying client errors are
// joined to them.
var (
	ErrEmptyURL    = errors.New("redis: connection URL is empty")
	ErrInvalidURL  = errors.New("redis: connection URL must use redis:// or rediss://")
	ErrUnreachable = errors.New("redis: server did not answer ping")
	ErrUnhealthy   = errors.New("redis: healthcheck failed")
)
