package ports

import (
	"context"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

// Service exposes voucher request use cases to adapters.
type Service interface {
	ListRequests(ctx context.Context) ([]domain.VoucherRequest, error)
	ListRequestsByModule(ctx context.Context, moduleIDs []string) ([]domain.VoucherRequest, error)
	GetRequest(ctx context.Context, id string) (domain.VoucherRequest, error)
	CreateRequest(ctx context.Context, req domain.VoucherRequest) (domain.VoucherRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus, actingUserID string) (domain.VoucherRequest, error)
	GetStats(ctx context.Context) (domain.Stats, error)
}
