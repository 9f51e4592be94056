package redis

import (
	"context"
	"io"
)

// Shutdown returns a shutdown hook that closes client.
//
//	website.WithShutdownHook(redis.Shutdown(client))
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
