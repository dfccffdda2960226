package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cutstack/cutstack/internal/server"
	"github.com/cutstack/cutstack/pkg/cache"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		redisAddr string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cutstack HTTP API",
		Long: `Run the cutstack HTTP API.

The API exposes plan computation, page counting, and rendering over HTTP. When
a Redis address is configured the cache is shared across instances; otherwise
the local file cache is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisAddr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", c.Config.Server.RedisAddr, "redis address for a shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache backend and runs the server until ctx is canceled.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	store, err := c.serverCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Cache: store, Logger: c.Logger})
	defer srv.Close()

	return srv.ListenAndServe(ctx, addr)
}

// serverCache selects the cache backend: Redis when configured, the local
// file cache otherwise.
func (c *CLI) serverCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     redisAddr,
			Password: c.Config.Server.RedisPassword,
			DB:       c.Config.Server.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	return newCache(false)
}
