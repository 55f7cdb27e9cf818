package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"findyourseat/handlers"
	"findyourseat/monitoring"
	"findyourseat/security"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local booking API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.ListenAddr = addr
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides LISTEN_ADDR)")
	return cmd
}

func (c *cli) newRouter() http.Handler {
	a := c.app
	return handlers.NewRouter(handlers.RouterConfig{
		Session:    handlers.NewSessionHandler(a.session),
		Movies:     handlers.NewMovieHandler(a.gateway, a.session, a.layout),
		Selections: handlers.NewSelectionHandler(a.NewSelection, a.layout, a.logger),
		Bookings:   handlers.NewBookingHandler(a.bookings, a.payments, a.tickets, a.invoices),
		Limiter:    security.NewRateLimiter(c.cfg.SubmitRatePerSec, c.cfg.SubmitBurst),
		Health:     a.Health,
		Logger:     a.logger,
	})
}

func (c *cli) serve(ctx context.Context) error {
	cfg, logger := c.cfg, c.app.logger

	servers := []*http.Server{{
		Addr:              cfg.ListenAddr,
		Handler:           c.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if cfg.EnableMetrics {
		servers = append(servers, &http.Server{
			Addr:              ":" + cfg.MetricsPort,
			Handler:           monitoring.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
		go c.app.monitor.Run(ctx, 15*time.Second)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listen %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutdown signal received, cleaning up")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
