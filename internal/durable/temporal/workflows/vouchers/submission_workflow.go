package vouchers

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucheractivities "github.com/Apurer/voucher-portal/internal/durable/temporal/activities/vouchers"
)

const (
	// SubmissionWorkflowName is the public identifier for registering the workflow.
	SubmissionWorkflowName = "vouchers.workflows.Submission"
	// SubmissionTaskQueue is the queue consumed by the worker processing voucher workflows.
	SubmissionTaskQueue = "VOUCHER_SUBMISSION"
)

// SubmissionWorkflowInput captures the request to persist.
type SubmissionWorkflowInput struct {
	Request voucherdomain.VoucherRequest
	TraceID string
}

// SubmissionWorkflow persists a submitted voucher request. The store call is
// attempted exactly once; a failure is reported back to the submitter.
func SubmissionWorkflow(ctx workflow.Context, input SubmissionWorkflowInput) (voucherdomain.VoucherRequest, error) {
	logger := workflow.GetLogger(ctx)
	requestID := input.Request.ID
	logger.Info("SubmissionWorkflow started", withTraceID(input.TraceID, "voucherId", requestID)...)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy:         &temporal.RetryPolicy{MaximumAttempts: 1},
	})

	var created voucherdomain.VoucherRequest
	err := workflow.ExecuteActivity(ctx, voucheractivities.CreateRequestActivityName, input.Request).Get(ctx, &created)
	if err != nil {
		logger.Error("SubmissionWorkflow failed", withTraceID(input.TraceID, "voucherId", requestID, "error", err)...)
		return voucherdomain.VoucherRequest{}, err
	}
	logger.Info("SubmissionWorkflow completed", withTraceID(input.TraceID, "voucherId", created.ID)...)
	return created, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
