package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mazhu/website/pkg/logger"
	"github.com/mazhu/website/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Address = addr
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Flush(2 * time.Second)

			srv, err := server.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("startup failed", "error", err)
				return err
			}

			log.Info("starting mazhu",
				"address", cfg.Address,
				"base_url", cfg.BaseURL,
				"stats_backend", cfg.StatsBackend,
				"redis", cfg.Redis.Enabled(),
			)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides ADDRESS")
	return cmd
}
