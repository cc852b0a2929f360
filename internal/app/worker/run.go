// Package worker hosts the voucher submission workflow on a Temporal worker.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/voucher-portal/internal/app/wiring"
	voucheractivities "github.com/Apurer/voucher-portal/internal/durable/temporal/activities/vouchers"
	voucherworkflows "github.com/Apurer/voucher-portal/internal/durable/temporal/workflows/vouchers"
	"github.com/Apurer/voucher-portal/internal/platform/config"
	platformobservability "github.com/Apurer/voucher-portal/internal/platform/observability"
)

const serviceName = "voucher-portal-worker"

// ErrPrivateBackend is returned when the worker would write submissions to a
// store the API process cannot read.
var ErrPrivateBackend = errors.New("worker needs the shared voucher store (postgres or LOCAL_STORE_PATH)")

func requireSharedBackend(services *wiring.Services) error {
	if !services.SharedBackend {
		return fmt.Errorf("%w: selected %s store is private to this process", ErrPrivateBackend, services.Backend)
	}
	return nil
}

// Register adds the submission workflow and its activity to w.
func Register(w worker.Registry, activities *voucheractivities.Activities) {
	w.RegisterWorkflowWithOptions(voucherworkflows.SubmissionWorkflow, workflow.RegisterOptions{Name: voucherworkflows.SubmissionWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateRequest, activity.RegisterOptions{Name: voucheractivities.CreateRequestActivityName})
}

// Run polls the submission task queue until ctx is done.
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
	if err := requireSharedBackend(services); err != nil {
		return err
	}

	temporalClient, err := wiring.DialTemporal(cfg.Temporal, instruments, "temporal-worker")
	if err != nil {
		return fmt.Errorf("failed to create Temporal client: %w", err)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, voucherworkflows.SubmissionTaskQueue, worker.Options{})
	Register(w, voucheractivities.NewActivities(services.Vouchers))

	logger.Info("worker listening",
		slog.String("taskQueue", voucherworkflows.SubmissionTaskQueue),
		slog.String("namespace", cfg.Temporal.Namespace),
		slog.String("backend", services.Backend),
	)
	stop := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(stop)
	}()
	if err := w.Run(stop); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Temporal worker stopped")
	return nil
}
