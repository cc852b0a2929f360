package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.temporal.io/sdk/client"

	voucherworkflows "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/workflows"

	"github.com/Apurer/voucher-portal/internal/app/wiring"
	"github.com/Apurer/voucher-portal/internal/platform/config"
	platformobservability "github.com/Apurer/voucher-portal/internal/platform/observability"
	"github.com/Apurer/voucher-portal/internal/server"
)

const serviceName = "voucher-portal-api"

// Run boots the voucher portal HTTP API with observability, the selected
// backend and the submission workflow wired. It returns when ctx is done.
func Run(ctx context.Context, cfg config.Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, platformobservability.Settings{
		LogLevel:     cfg.LogLevel,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	services, cleanup, err := wiring.Build(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	submissions, closeTemporal := submissionOrchestrator(services, func() (client.Client, error) {
		return wiring.DialTemporal(cfg.Temporal, instruments, "temporal-client")
	}, logger)
	defer closeTemporal()
	if _, ok := submissions.(*voucherworkflows.TemporalVoucherWorkflows); ok {
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	handlers := server.ApiHandleFunctions{
		VoucherAPI: server.NewVoucherAPI(services.Vouchers, submissions, time.Duration(cfg.DashboardRefreshSeconds)*time.Second),
		CatalogAPI: server.NewCatalogAPI(services.Catalog),
		StaffAPI:   server.NewStaffAPI(services.Staff),
	}
	router := server.NewRouter(handlers, server.RouterOptions{ServiceName: serviceName, Logger: logger})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("voucher portal API listening", slog.String("addr", srv.Addr), slog.String("backend", services.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("voucher portal API exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down voucher portal API")
	return srv.Shutdown(shutdownCtx)
}
