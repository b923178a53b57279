package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/loadboard/internal/config"
	"github.com/vango-dev/loadboard/pkg/middleware"
	"github.com/vango-dev/loadboard/pkg/server"
	"github.com/vango-dev/loadboard/pkg/workload"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard",
		Long: `Serve the dashboard page, its live sessions and the JSON API.

With --watch, edits to the fixture directory are reloaded and pushed
to every connected browser.

Examples:
  loadboard serve
  loadboard serve --addr=:9000 --data=./groups --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			if watch {
				cfg.Data.Watch = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cfg.Log.NewLogger(cmd.ErrOrStderr()))
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides server.address)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the fixture directory on change")
	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	groups, err := loadGroups(ctx, cfg, logger)
	if err != nil {
		return err
	}
	catalog := workload.NewCatalog(groups)

	srv := server.New(server.FromConfig(cfg), catalog,
		server.WithLogger(logger),
		server.WithTracing(middleware.WithTracerName(cfg.Telemetry.TracerName)),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	if cfg.Data.Watch {
		if cfg.Data.Dir == "" {
			logger.Warn("watch needs a fixture directory, ignoring")
		} else {
			w := workload.NewWatcher(cfg.Data.Dir, catalog,
				workload.WithWatchLogger(logger),
				workload.OnReload(func([]workload.Group) {
					srv.Metrics().Reload(nil)
					srv.Refresh()
				}),
				workload.OnReloadError(func(err error) {
					srv.Metrics().Reload(err)
				}),
			)
			g.Go(func() error {
				return w.Run(ctx)
			})
		}
	}

	return g.Wait()
}
