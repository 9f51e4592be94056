// Package server assembles the website from its configuration: stats
// storage (memory or PostgreSQL), snapshot cache and rate limiter
// (memory or Redis), background tasks, translations, templates and the
// HTTP handlers.
//
//	srv, err := server.New(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package server
