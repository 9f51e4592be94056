package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mazhu/website/pkg/db"
	"github.com/mazhu/website/stats"
)

var errNoDatabase = errors.New("DATABASE_URL is not set")

func newMigrateCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Creates and seeds the love statistics table in PostgreSQL. The server also migrates on startup when STATS_BACKEND=postgres.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errNoDatabase
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}

			pool, err := db.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := db.Migrate(cmd.Context(), pool, stats.Migrations, "migrations", cfg.Database.MigrationsTable, log); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
