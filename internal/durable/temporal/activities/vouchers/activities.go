package vouchers

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

// CreateRequestActivityName persists a submitted voucher request.
const CreateRequestActivityName = "vouchers.activities.CreateRequest"

// Activities groups activities that operate on the vouchers bounded context.
type Activities struct {
	service voucherports.Service
}

// NewActivities wires the vouchers service into the Temporal activities bundle.
func NewActivities(service voucherports.Service) *Activities {
	return &Activities{service: service}
}

// CreateRequest stores the request through the application service. Failures
// are returned as non-retryable application errors carrying their kind.
func (a *Activities) CreateRequest(ctx context.Context, req voucherdomain.VoucherRequest) (voucherdomain.VoucherRequest, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("voucher create activity not initialized", "voucherId", req.ID)
		return voucherdomain.VoucherRequest{}, errors.New("voucher create activity not initialized")
	}
	logger.Info("CreateRequest activity started", "voucherId", req.ID)
	created, err := a.service.CreateRequest(ctx, req)
	if err != nil {
		logger.Error("CreateRequest activity failed", "voucherId", req.ID, "error", err)
		return voucherdomain.VoucherRequest{}, EncodeError(err)
	}
	logger.Info("CreateRequest activity completed", "voucherId", created.ID, "totalValue", created.TotalValue)
	return created, nil
}
