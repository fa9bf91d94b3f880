package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/gamereviews/internal/config"
	"github.com/SergeyParamoshkin/gamereviews/internal/seed"
	"github.com/SergeyParamoshkin/gamereviews/internal/server"
	"github.com/SergeyParamoshkin/gamereviews/internal/telemetry"
)

type serveOptions struct {
	migrate bool
	seed    bool
}

func newServeCommand(a *app) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the API and the diagnostics endpoints",
		Long: `Serve the REST API on --addr and prometheus metrics on --diag-addr.

The servers stop gracefully on SIGINT or SIGTERM.

Examples:
  gamereviews serve
  gamereviews serve --db-driver sqlite3 --database-url 'file:games.db?_foreign_keys=on' --migrate --seed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&a.cfg.Addr, "addr", a.cfg.Addr, "API listen address")
	cmd.Flags().StringVar(&a.cfg.DiagAddr, "diag-addr", a.cfg.DiagAddr, "Diagnostics listen address")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "Create missing tables before serving")
	cmd.Flags().BoolVar(&opts.seed, "seed", false, "Reload the bundled test dataset before serving")

	return cmd
}

func (a *app) serve(ctx context.Context, opts *serveOptions) error {
	logger, err := a.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sugar := logger.Sugar()

	tel, err := telemetry.New(config.ServiceName)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	d, err := a.openDB(ctx, logger, tel.Meter())
	if err != nil {
		return err
	}
	defer d.Close()

	if opts.migrate {
		if err := d.Migrate(ctx); err != nil {
			return err
		}
	}

	if opts.seed {
		ds, err := seed.TestData()
		if err != nil {
			return err
		}

		if err := seed.Run(ctx, d, ds); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		sugar.Infow("database seeded", "reviews", len(ds.Reviews), "comments", len(ds.Comments))
	}

	api := &http.Server{
		Addr:         a.cfg.Addr,
		Handler:      server.NewRouter(server.Deps{DB: d, Logger: logger, Telemetry: tel}),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
	diag := &http.Server{
		Addr:         a.cfg.DiagAddr,
		Handler:      server.NewDiagRouter(tel),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	errs := make(chan error, 2)
	for _, srv := range []*http.Server{api, diag} {
		go func(srv *http.Server) {
			sugar.Infow("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case serveErr = <-errs:
		sugar.Errorw("server failed", "error", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{api, diag} {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("shutdown", "addr", srv.Addr, "error", err)
		}
	}

	if err := tel.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("telemetry shutdown", "error", err)
	}

	return serveErr
}
