package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mlorenz/picset/internal/server"
	"github.com/mlorenz/picset/pkg/cache"
	"github.com/mlorenz/picset/pkg/config"
	"github.com/mlorenz/picset/pkg/httputil"
	"github.com/mlorenz/picset/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the srcset derivation HTTP API",
		Long: `Run the HTTP API that derives srcsets on demand.

Configuration is read from a TOML file (picset.toml by default). The file
selects the cache backend (file, redis, mongo, or none), the listen address,
and any custom usage contexts. A missing file falls back to built-in
defaults: a file cache and the tile/narrow contexts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, configPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigFile, "config file path")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.RegisterContexts(); err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	store, err := c.newServeCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Scope keys with the payload schema version so shared backends
	// (redis, mongo) survive format changes.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1")
	runner := pipeline.NewRunner(store, keyer, httputil.NewClient(0), c.Logger)
	if ttl, err := cfg.CacheTTL(); err == nil && ttl > 0 {
		runner.EntityTTL = ttl
	}

	c.Logger.Info("starting API server",
		"addr", cfg.Server.Addr,
		"backend", cfg.Cache.Backend,
		"contexts", len(cfg.Contexts))

	srv := server.New(runner, c.Logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.Server.Addr)
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		return nil
	case err := <-errCh:
		return err
	}
}

// newServeCache builds the cache backend named in the config.
func (c *CLI) newServeCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cfg.Cache.Mongo.URI, cfg.Cache.Mongo.Database, cfg.Cache.Mongo.Collection)
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	}
}
