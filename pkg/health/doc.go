// Package health serves liveness and readiness probes.
//
// Liveness always answers {"status":"ok"}. Readiness runs named checks in
// parallel under a shared timeout and answers 503 when any fails:
//
//	mux.Get("/healthz", health.LivenessHandler())
//	mux.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"postgres": db.Healthcheck(pool),
//		"redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
package health
