// Package redis connects to Redis for the shared stats cache and the
// distributed rate limiter.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	app := website.New(
//		website.WithHealthChecks(website.WithReadinessCheck("redis", redis.Healthcheck(client))),
//		website.WithShutdownHook(redis.Shutdown(client)),
//	)
//
// Leaving REDIS_URL empty runs the site on in-process stores instead.
package redis
