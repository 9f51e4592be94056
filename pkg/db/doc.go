// Package db opens the optional PostgreSQL pool used by the stats store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with startup retries, a
// readiness check, a transaction helper and goose migrations:
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, stats.Migrations, "migrations", cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// Settings come from the environment:
//
//	DATABASE_URL                 - PostgreSQL connection URL
//	DATABASE_MIGRATIONS_TABLE    - goose version table (default: schema_migrations)
//	DATABASE_MAX_CONNS           - pool size (default: 4)
//	DATABASE_MIN_CONNS           - idle connections kept open (default: 1)
//	DATABASE_RETRY_ATTEMPTS      - connection attempts at startup (default: 3)
//	DATABASE_RETRY_INTERVAL      - base delay between attempts (default: 2s)
//
// Errors are joined with the sentinels in this package, so callers can test
// them with [errors.Is].
package db
