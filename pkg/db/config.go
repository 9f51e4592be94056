package db

import "time"

// Config holds PostgreSQL pool settings, read from the environment.
type Config struct {
	URL             string `env:"DATABASE_URL"`
	MigrationsTable string `env:"DATABASE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`

	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"DATABASE_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"DATABASE_RETRY_INTERVAL" envDefault:"2s"`

	// A single-row table sees little contention; keep the pool small.
	MaxConns int32 `env:"DATABASE_MAX_CONNS" envDefault:"4"`
	MinConns int32 `env:"DATABASE_MIN_CONNS" envDefault:"1"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
