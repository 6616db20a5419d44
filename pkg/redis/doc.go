// Package redis opens go-redis clients with connection retries and exposes
// health and shutdown hooks for the application runtime.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0", redis.WithRetry(5, time.Second))
//	app := simplefw.New(simplefw.WithHealthChecks(simplefw.WithReadinessCheck("redis", redis.Healthcheck(client))))
package redis
