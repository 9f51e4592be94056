// Package config loads the server configuration from environment
// variables, optionally seeded from a .env file.
//
// Every key has a default suitable for local development, so an empty
// environment serves the site on :8000 with in-memory stats:
//
//	cfg, err := config.Load()
//	if err != nil {
//		return err
//	}
//
// Setting STATS_BACKEND=postgres requires DATABASE_URL. Setting REDIS_URL
// moves the stats cache and rate limiter to Redis.
package config
