package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"yatra-booking/internal/config"
	"yatra-booking/internal/database"
	"yatra-booking/internal/infrastructure/payment"
	"yatra-booking/internal/logger"
	"yatra-booking/internal/repo"
	"yatra-booking/internal/service"
	"yatra-booking/internal/worker"
)

// app holds everything the subcommands share.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *sql.DB
	repos    *repo.Repositories
	gateway  payment.Gateway
	checkout service.CheckoutService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		log.Sync()
		return nil, err
	}

	signer := payment.NewSigner(cfg.Gateway.KeySecret)
	var gateway payment.Gateway
	switch cfg.Gateway.Mode {
	case config.GatewaySandbox:
		log.Warn("using the in-memory sandbox gateway; no real payments will be taken")
		gateway = payment.NewSandbox(cfg.Gateway.KeyID, signer)
	default:
		gateway = payment.NewRazorpay(cfg.Gateway.KeyID, cfg.Gateway.KeySecret)
	}

	repos := repo.NewRepositories(db)
	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		repos:    repos,
		gateway:  gateway,
		checkout: service.NewCheckoutService(repos.Payments, repos.Bookings, repos.Settlements, gateway, signer, log),
	}, nil
}

func (a *app) reconciler() *worker.ReconciliationWorker {
	return worker.NewReconciliationWorker(
		a.repos.Settlements,
		a.repos.Payments,
		a.checkout,
		a.gateway,
		a.logger.Named("reconcile"),
		a.cfg.Reconcile,
	)
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
