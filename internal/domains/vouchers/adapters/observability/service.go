package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

const tracerName = "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/observability/service"

// Service decorates the vouchers service with tracing, logging, and metrics.
type Service struct {
	inner   voucherports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core vouchers service.
func New(inner voucherports.Service, opts ...Option) voucherports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) ListRequests(ctx context.Context) ([]voucherdomain.VoucherRequest, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.ListRequests")
	defer span.End()

	result, err := s.inner.ListRequests(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list voucher requests")
	}
	span.SetAttributes(attribute.Int("voucher.request.count", len(result)))
	s.logInfo(ctx, "voucher requests listed", slog.Int("count", len(result)))
	return result, nil
}

func (s *Service) ListRequestsByModule(ctx context.Context, moduleIDs []string) ([]voucherdomain.VoucherRequest, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.ListRequestsByModule",
		trace.WithAttributes(attribute.StringSlice("voucher.modules.filter", moduleIDs)))
	defer span.End()

	result, err := s.inner.ListRequestsByModule(ctx, moduleIDs)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list voucher requests by module")
	}
	span.SetAttributes(attribute.Int("voucher.request.count", len(result)))
	return result, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (voucherdomain.VoucherRequest, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.GetRequest", trace.WithAttributes(attribute.String("voucher.id", id)))
	defer span.End()

	result, err := s.inner.GetRequest(ctx, id)
	if err != nil {
		return voucherdomain.VoucherRequest{}, s.handleError(ctx, span, err, "failed to load voucher request", slog.String("voucher.id", id))
	}
	return result, nil
}

func (s *Service) CreateRequest(ctx context.Context, req voucherdomain.VoucherRequest) (voucherdomain.VoucherRequest, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.CreateRequest",
		trace.WithAttributes(attribute.String("voucher.id", req.ID), attribute.Int("voucher.modules", len(req.Modules))))
	defer span.End()

	s.logInfo(ctx, "creating voucher request", slog.String("voucher.id", req.ID), slog.String("partner", req.PartnerInfo.PartnerName))
	result, err := s.inner.CreateRequest(ctx, req)
	if err != nil {
		return voucherdomain.VoucherRequest{}, s.handleError(ctx, span, err, "failed to create voucher request", slog.String("voucher.id", req.ID))
	}
	s.metrics.recordCreated(ctx, result.TotalValue)
	s.logInfo(ctx, "voucher request created", slog.String("voucher.id", result.ID), slog.Float64("total_value", result.TotalValue))
	return result, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status voucherdomain.RequestStatus, actingUserID string) (voucherdomain.VoucherRequest, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.UpdateStatus",
		trace.WithAttributes(attribute.String("voucher.id", id), attribute.String("voucher.status", string(status))))
	defer span.End()

	s.logInfo(ctx, "updating voucher status", slog.String("voucher.id", id), slog.String("status", string(status)), slog.String("actor", actingUserID))
	result, err := s.inner.UpdateStatus(ctx, id, status, actingUserID)
	if err != nil {
		return voucherdomain.VoucherRequest{}, s.handleError(ctx, span, err, "failed to update voucher status", slog.String("voucher.id", id))
	}
	s.metrics.recordDecision(ctx, result.Status)
	s.logInfo(ctx, "voucher status updated", slog.String("voucher.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) GetStats(ctx context.Context) (voucherdomain.Stats, error) {
	ctx, span := s.tracer.Start(ctx, "VoucherService.GetStats")
	defer span.End()

	result, err := s.inner.GetStats(ctx)
	if err != nil {
		return voucherdomain.Stats{}, s.handleError(ctx, span, err, "failed to compute voucher stats")
	}
	span.SetAttributes(
		attribute.Int("voucher.stats.total", result.Total),
		attribute.Int("voucher.stats.pending", result.Pending),
	)
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	requestsCreated metric.Int64Counter
	requestValue    metric.Float64Counter
	decisions       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("vouchers.service.requests_created", metric.WithDescription("Number of voucher requests submitted"))
	value, _ := m.Float64Counter("vouchers.service.requested_value", metric.WithDescription("Total value of submitted voucher requests"), metric.WithUnit("EUR"))
	decisions, _ := m.Int64Counter("vouchers.service.status_changes", metric.WithDescription("Number of voucher status changes"))
	return serviceMetrics{requestsCreated: created, requestValue: value, decisions: decisions}
}

func (m serviceMetrics) recordCreated(ctx context.Context, total float64) {
	if m.requestsCreated != nil {
		m.requestsCreated.Add(ctx, 1)
	}
	if m.requestValue != nil {
		m.requestValue.Add(ctx, total)
	}
}

func (m serviceMetrics) recordDecision(ctx context.Context, status voucherdomain.RequestStatus) {
	if m.decisions != nil {
		m.decisions.Add(ctx, 1, metric.WithAttributes(attribute.String("voucher.status", string(status))))
	}
}

var _ voucherports.Service = (*Service)(nil)
