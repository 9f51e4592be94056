package db

import "errors"

var (
	ErrNoURL       = errors.New("db: DATABASE_URL is not set")
	ErrInvalidURL  = errors.New("db: cannot parse DATABASE_URL")
	ErrUnreachable = errors.New("db: server unreachable")
	ErrUnhealthy   = errors.New("db: ping failed")
	ErrMigrate     = errors.New("db: migration failed")
)
