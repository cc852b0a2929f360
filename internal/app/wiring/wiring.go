// Package wiring assembles the services shared by the API, worker and CLI processes.
package wiring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	"github.com/Apurer/voucher-portal/internal/app/backend"
	staffdirectory "github.com/Apurer/voucher-portal/internal/domains/staff/adapters/directory"
	staffapp "github.com/Apurer/voucher-portal/internal/domains/staff/application"
	vouchercatalog "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/catalog"
	voucherkafka "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/events/kafka"
	voucherobs "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/observability"
	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	"github.com/Apurer/voucher-portal/internal/platform/config"
	platformobservability "github.com/Apurer/voucher-portal/internal/platform/observability"
)

// ErrTemporalDisabled is returned by DialTemporal when TEMPORAL_DISABLED is set.
var ErrTemporalDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED")

// Services are the wired use cases of one process.
type Services struct {
	Vouchers voucherports.Service
	Staff    *staffapp.Service
	Catalog  *vouchercatalog.Catalog
	// Backend names the repository selected at start-up.
	Backend string
	// SharedBackend is set when other processes with the same configuration
	// read and write the same store.
	SharedBackend bool
}

// Build selects the backend and wires the vouchers and staff services. The
// returned cleanup closes the publisher and the store.
func Build(ctx context.Context, cfg config.Config, instruments *platformobservability.Instruments) (*Services, func(), error) {
	logger := instruments.Logger

	catalog := vouchercatalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := vouchercatalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = loaded
	}
	directory := staffdirectory.Default()
	if cfg.StaffPath != "" {
		loaded, err := staffdirectory.Load(cfg.StaffPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load staff directory: %w", err)
		}
		directory = loaded
	}
	staffService := staffapp.NewService(directory)

	repo, closeRepo, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open voucher backend: %w", err)
	}

	var publisher voucherports.EventPublisher = voucherports.NopPublisher{}
	closePublisher := func() {}
	if cfg.Kafka.Enabled() {
		p := voucherkafka.NewPublisher(logger, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		publisher, closePublisher = p, p.Close
		logger.Info("voucher events published to kafka", slog.String("topic", cfg.Kafka.Topic))
	}

	core := voucherapp.NewService(repo,
		voucherapp.WithPublisher(publisher),
		voucherapp.WithActorVerifier(staffService),
		voucherapp.WithLogger(logger),
	)
	vouchers := voucherobs.New(core,
		voucherobs.WithLogger(logger),
		voucherobs.WithTracer(instruments.Tracer("internal.vouchers.application")),
		voucherobs.WithMeter(instruments.Meter("internal.vouchers.application")),
	)

	cleanup := func() {
		closePublisher()
		closeRepo()
	}
	return &Services{
		Vouchers:      vouchers,
		Staff:         staffService,
		Catalog:       catalog,
		Backend:       repo.Kind(),
		SharedBackend: backend.Shared(cfg, repo.Kind()),
	}, cleanup, nil
}

// DialTemporal connects a Temporal client with the OpenTelemetry tracing interceptor.
func DialTemporal(cfg config.TemporalConfig, instruments *platformobservability.Instruments, tracerName string) (client.Client, error) {
	if cfg.Disabled {
		return nil, ErrTemporalDisabled
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer(tracerName),
	})
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
