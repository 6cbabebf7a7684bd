package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/pkg/api"
	"github.com/matzehuels/wordcloud/pkg/cache"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

// serveFlags holds the serve command settings.
type serveFlags struct {
	addr         string
	timeout      time.Duration
	maxBody      int64
	maxWords     int
	cacheEntries int
	scope        string
	cache        cacheFlags
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts and renders over HTTP",
		Long: `Serve layouts and renders over HTTP.

Endpoints:
  GET  /healthz                 liveness and version
  POST /v1/layout               words or text in, layout document out
  POST /v1/render/{format}      words, text or a layout in; svg, png or json out

Request bodies use the same option names as config files (width, proximity,
palette, ...). Results are cached in memory, or in Redis with --cache-url so
that several instances share work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&f.timeout, "timeout", api.DefaultTimeout, "per-request deadline")
	cmd.Flags().Int64Var(&f.maxBody, "max-body", api.DefaultMaxBodyBytes, "request body limit in bytes")
	cmd.Flags().IntVar(&f.maxWords, "max-words", api.DefaultMaxWords, "most words one request may lay out")
	cmd.Flags().IntVar(&f.cacheEntries, "cache-entries", cache.DefaultMemoryEntries, "size of the in-memory cache")
	cmd.Flags().StringVar(&f.scope, "cache-scope", "api:", "key prefix separating server entries from CLI entries in a shared cache")
	f.cache.register(cmd)

	return cmd
}

// serverCache picks the backend for a long-running server: Redis when a URL
// is given, otherwise a bounded in-memory cache.
func serverCache(ctx context.Context, f serveFlags) (cache.Cache, error) {
	switch {
	case f.cache.noCache:
		return cache.NewNullCache(), nil
	case f.cache.url != "":
		return newCache(ctx, f.cache)
	default:
		return cache.NewMemoryCache(f.cacheEntries), nil
	}
}

// serverKeyer scopes cache keys by prefix; an empty prefix keeps the
// default keys.
func serverKeyer(scope string) cache.Keyer {
	if scope == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, scope)
}

func (c *CLI) runServe(ctx context.Context, f serveFlags) error {
	cc, err := serverCache(ctx, f)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, serverKeyer(f.scope), c.Logger)
	defer runner.Close()

	srv := api.New(runner, c.Logger,
		api.WithTimeout(f.timeout),
		api.WithMaxBodyBytes(f.maxBody),
		api.WithMaxWords(f.maxWords),
	)

	c.printInfo("Serving on %s", f.addr)
	c.printDetail("cache: %T", cc)
	err = srv.ListenAndServe(ctx, f.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
