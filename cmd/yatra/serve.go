package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yatra-booking/internal/database"
	"yatra-booking/internal/handler"
	"yatra-booking/internal/infrastructure/currency"
	"yatra-booking/internal/service"
)

func serveCmd() *cobra.Command {
	var (
		migrate   bool
		noWorker  bool
		drainTime time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reconciliation worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if migrate {
				if err := database.Migrate(ctx, a.db, a.logger); err != nil {
					return err
				}
			}

			rates := currency.NewCache(
				currency.NewHTTPSource(a.cfg.Currency.SourceURL, nil),
				a.cfg.Currency.TTL,
				a.cfg.Currency.FallbackRate,
				a.logger.Named("currency"),
			)
			srv := handler.NewServer(a.cfg, a.logger, handler.Deps{
				Checkout: a.checkout,
				Bookings: service.NewBookingService(a.repos.Bookings, a.logger),
				Catalog:  service.NewCatalogService(a.repos.Tours, a.repos.Inquiries, a.repos.Testimonials, a.logger),
				Admin:    service.NewAdminService(a.repos, a.logger),
				Rates:    rates,
				Health:   database.New(a.db, a.cfg.Database.Name, a.logger),
			})

			if !noWorker {
				go a.reconciler().Run(ctx)
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down", zap.Duration("drain", drainTime))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTime)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	cmd.Flags().BoolVar(&noWorker, "no-worker", false, "do not run the reconciliation worker in this process")
	cmd.Flags().DurationVar(&drainTime, "drain", 10*time.Second, "time allowed for in-flight requests on shutdown")
	return cmd
}
