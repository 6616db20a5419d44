// Package health serves liveness and readiness probes.
//
// The readiness handler runs named checks concurrently under a shared
// timeout and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"database": db.Healthcheck(conn.DB),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(3*time.Second)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// asks for JSON with ?format=json or an Accept header:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"...","duration":"1ms"}}}
package health
