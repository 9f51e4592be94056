package stats

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mazhu/website/pkg/db"
)

// Migrations holds the goose migrations for PostgresStore, under "migrations".
//
//go:embed migrations/*.sql
var Migrations embed.FS

const (
	selectStats = `SELECT donation, benefit_categories, last_updated FROM love_stats WHERE id = 1`
	lockStats   = selectStats + ` FOR UPDATE`
	updateStats = `UPDATE love_stats SET donation = $1, benefit_categories = $2, last_updated = $3 WHERE id = 1`
)

// PostgresStore keeps the record in the love_stats table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a store over pool. Run Migrations first.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Load reads the record.
func (p *PostgresStore) Load(ctx context.Context) (Stats, error) {
	return scanStats(p.pool.QueryRow(ctx, selectStats))
}

// Apply locks the row, applies u and writes the result in one transaction.
func (p *PostgresStore) Apply(ctx context.Context, u Update, at time.Time) (Stats, error) {
	var out Stats
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		current, err := scanStats(tx.QueryRow(ctx, lockStats))
		if err != nil {
			return err
		}

		out = u.ApplyTo(current, at)
		cats, err := json.Marshal(out.BenefitCategories)
		if err != nil {
			return fmt.Errorf("stats: encoding categories: %w", err)
		}

		if _, err := tx.Exec(ctx, updateStats, out.Donation, cats, out.LastUpdated); err != nil {
			return fmt.Errorf("stats: updating record: %w", err)
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return out, nil
}

func scanStats(row pgx.Row) (Stats, error) {
	var (
		s    Stats
		cats []byte
	)
	if err := row.Scan(&s.Donation, &cats, &s.LastUpdated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stats{}, ErrNotFound
		}
		return Stats{}, fmt.Errorf("stats: reading record: %w", err)
	}
	if err := json.Unmarshal(cats, &s.BenefitCategories); err != nil {
		return Stats{}, fmt.Errorf("stats: decoding categories: %w", err)
	}
	s.LastUpdated = s.LastUpdated.UTC()
	return s, nil
}

var _ Store = (*PostgresStore)(nil)
