package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mazhu/website/config"
	"github.com/mazhu/website/middlewares"
	"github.com/mazhu/website/pkg/logger"
)

type rootOptions struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mazhu",
		Short: "麻煮MINI restaurant website",
		Long: `mazhu serves the 麻煮MINI marketing site: the home, about, menu, news,
love and admin pages, the love statistics API and the sitemap.

Configuration is read from the environment, optionally seeded from a
.env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment (ignored when missing)")

	cmd.AddCommand(
		newServeCmd(opts),
		newMigrateCmd(opts),
		newSitemapCmd(opts),
		newI18nCmd(opts),
	)
	return cmd
}

func (o *rootOptions) config() (config.Config, error) {
	return config.Load(o.envFile)
}

// newLogger builds the process logger with request IDs attached.
func newLogger(cfg config.Config) (*slog.Logger, error) {
	return logger.FromConfig(cfg.Log, middlewares.RequestIDExtractor())
}
