package ports

import (
	"context"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

// WorkflowOrchestrator runs the submission of a request as a durable workflow.
type WorkflowOrchestrator interface {
	SubmitRequest(ctx context.Context, req domain.VoucherRequest) (domain.VoucherRequest, error)
}
