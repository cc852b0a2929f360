package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

// Service orchestrates the vouchers bounded context use cases.
type Service struct {
	repo      ports.Repository
	publisher ports.EventPublisher
	actors    ports.ActorVerifier
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises the Service.
type Option func(*Service)

// WithPublisher sends domain events after successful writes.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithActorVerifier checks acting users before a decision is stored.
func WithActorVerifier(v ports.ActorVerifier) Option {
	return func(s *Service) { s.actors = v }
}

// WithLogger sets the logger used for non-fatal failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for submission dates and events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the vouchers service around the selected repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		publisher: ports.NopPublisher{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRequests returns every request, newest submission first.
func (s *Service) ListRequests(ctx context.Context) ([]domain.VoucherRequest, error) {
	return s.repo.List(ctx)
}

// ListRequestsByModule returns the requests carrying any of moduleIDs.
func (s *Service) ListRequestsByModule(ctx context.Context, moduleIDs []string) ([]domain.VoucherRequest, error) {
	if len(moduleIDs) == 0 {
		return s.repo.List(ctx)
	}
	return s.repo.ListByModule(ctx, moduleIDs)
}

// GetRequest loads a single request.
func (s *Service) GetRequest(ctx context.Context, id string) (domain.VoucherRequest, error) {
	return s.repo.Get(ctx, id)
}

// CreateRequest stores a submitted request keyed by its id. The total is
// always recomputed from the modules; a caller-supplied total only has to
// agree with it to the cent. Submitting the same payload again returns the
// stored request unchanged.
func (s *Service) CreateRequest(ctx context.Context, req domain.VoucherRequest) (domain.VoucherRequest, error) {
	submitted := req.SubmissionDate
	if submitted.IsZero() {
		submitted = s.now()
	}
	built, err := domain.NewVoucherRequest(req.ID, submitted, req.PartnerInfo, req.Modules)
	if err != nil {
		return domain.VoucherRequest{}, mapError(err)
	}
	if req.TotalValue != 0 {
		claimed := built.Clone()
		claimed.TotalValue = req.TotalValue
		if err := claimed.Validate(); err != nil {
			return domain.VoucherRequest{}, mapError(err)
		}
	}

	stored, written, err := s.repo.UpsertIf(ctx, *built, func(existing domain.VoucherRequest, found bool) (bool, error) {
		switch {
		case !found:
			return true, nil
		case samePayload(existing, *built):
			return false, nil
		case existing.Decided():
			return false, fmt.Errorf("%w: %s is %s", ErrAlreadyDecided, existing.ID, existing.Status)
		}
		return true, nil
	})
	if err != nil {
		return domain.VoucherRequest{}, err
	}
	if !written {
		return stored, nil
	}
	s.publish(ctx, domain.RequestSubmitted{
		BaseEvent:   domain.BaseEvent{Timestamp: s.now()},
		RequestID:   built.ID,
		PartnerName: built.PartnerInfo.PartnerName,
		TotalValue:  built.TotalValue,
	})
	return built.Clone(), nil
}

// UpdateStatus moves a request through the state machine. Repeating the
// decision already recorded for the same actor is a successful no-op.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, actingUserID string) (domain.VoucherRequest, error) {
	if !status.Valid() {
		return domain.VoucherRequest{}, mapError(domain.ErrInvalidStatus)
	}
	if status.IsDecision() && s.actors != nil {
		if err := s.actors.VerifyActor(ctx, actingUserID); err != nil {
			return domain.VoucherRequest{}, fmt.Errorf("%w: %w", ErrUnknownActor, err)
		}
	}

	var (
		from    domain.RequestStatus
		changed bool
	)
	updated, err := s.repo.UpdateStatus(ctx, id, func(current domain.VoucherRequest) (domain.VoucherRequest, bool, error) {
		from = current.Status
		if current.Status == status && (!status.IsDecision() || current.ApprovedBy == actingUserID) {
			return current, false, nil
		}
		if current.Decided() {
			return current, false, fmt.Errorf("%w: %s is %s", ErrAlreadyDecided, current.ID, current.Status)
		}
		next, ok, err := domain.Transition(current, status, actingUserID)
		if err != nil {
			return current, false, err
		}
		if !ok {
			return current, false, fmt.Errorf("%w: %s to %s", domain.ErrIllegalTransition, current.Status, status)
		}
		changed = true
		return next, true, nil
	})
	if err != nil {
		return domain.VoucherRequest{}, mapError(err)
	}

	if changed {
		s.publish(ctx, domain.RequestStatusChanged{
			BaseEvent:  domain.BaseEvent{Timestamp: s.now()},
			RequestID:  updated.ID,
			FromStatus: from,
			ToStatus:   updated.Status,
			ActorID:    updated.ApprovedBy,
		})
	}
	return updated, nil
}

// GetStats aggregates over a fresh read of every request.
func (s *Service) GetStats(ctx context.Context) (domain.Stats, error) {
	requests, err := s.repo.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Aggregate(requests), nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish voucher event failed",
			slog.String("event", event.EventName()),
			slog.String("voucher_id", event.AggregateID()),
			slog.Any("error", err),
		)
	}
}

func samePayload(a, b domain.VoucherRequest) bool {
	return a.ID == b.ID &&
		a.SubmissionDate.Equal(b.SubmissionDate) &&
		a.PartnerInfo == b.PartnerInfo &&
		a.TotalValue == b.TotalValue &&
		slices.Equal(a.Modules, b.Modules)
}

var _ ports.Service = (*Service)(nil)
