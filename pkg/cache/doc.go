// Package cache provides a generic key-value cache with in-memory and Redis
// backends behind one [Cache] interface.
//
// TTL semantics for Set:
//   - positive: the entry expires after the duration
//   - zero: the cache default TTL applies (one hour unless configured)
//   - negative: the entry never expires
//
// [New] selects a backend by driver name, which lets the configuration file
// decide how repositories cache their reads:
//
//	c, err := cache.New[[]*models.Category]("memory", nil, cache.WithTTL(time.Minute))
//
// [GetOrSet] loads a missing value once even under concurrent misses.
package cache
