package api

import (
	"log/slog"

	"go.temporal.io/sdk/client"

	voucherworkflows "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/workflows"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"

	"github.com/Apurer/voucher-portal/internal/app/wiring"
)

// submissionOrchestrator hands submissions to the Temporal worker only when
// the worker writes to the same store this process reads from. The returned
// func closes the Temporal client, if one was dialled.
func submissionOrchestrator(services *wiring.Services, dial func() (client.Client, error), logger *slog.Logger) (voucherports.WorkflowOrchestrator, func()) {
	inline := voucherworkflows.NewInlineVoucherWorkflows(services.Vouchers)
	if !services.SharedBackend {
		logger.Warn("voucher store is private to this process, submitting requests inline",
			slog.String("backend", services.Backend))
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, submitting requests inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	return voucherworkflows.NewTemporalVoucherWorkflows(temporalClient), temporalClient.Close
}
