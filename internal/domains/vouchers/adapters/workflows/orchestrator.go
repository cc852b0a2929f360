package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	"github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
	voucheractivities "github.com/Apurer/voucher-portal/internal/durable/temporal/activities/vouchers"
	voucherworkflows "github.com/Apurer/voucher-portal/internal/durable/temporal/workflows/vouchers"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalVoucherWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineVoucherWorkflows)(nil)
)

// TemporalVoucherWorkflows starts voucher workflows on a Temporal cluster.
type TemporalVoucherWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalVoucherWorkflows wires a Temporal client into the orchestrator.
func NewTemporalVoucherWorkflows(c client.Client) *TemporalVoucherWorkflows {
	return &TemporalVoucherWorkflows{client: c, taskQueue: voucherworkflows.SubmissionTaskQueue}
}

// SubmitRequest runs the submission workflow and waits for its result. The
// workflow id is derived from the request id, so submitting the same request
// twice attaches to the run already started.
func (o *TemporalVoucherWorkflows) SubmitRequest(ctx context.Context, req voucherdomain.VoucherRequest) (voucherdomain.VoucherRequest, error) {
	if o == nil || o.client == nil {
		return voucherdomain.VoucherRequest{}, errors.New("temporal voucher workflows not configured")
	}
	if strings.TrimSpace(req.ID) == "" {
		return voucherdomain.VoucherRequest{}, fmt.Errorf("%w: %w", voucherapp.ErrInvalidInput, voucherdomain.ErrEmptyID)
	}
	workflowID := SubmissionWorkflowID(req.ID)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		voucherworkflows.SubmissionWorkflowName,
		voucherworkflows.SubmissionWorkflowInput{Request: req, TraceID: workflowTraceID(ctx)},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return voucherdomain.VoucherRequest{}, fmt.Errorf("%w: start submission workflow: %w", ports.ErrBackendUnavailable, err)
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var created voucherdomain.VoucherRequest
	if err := run.Get(ctx, &created); err != nil {
		return voucherdomain.VoucherRequest{}, voucheractivities.DecodeError(err)
	}
	return created, nil
}

// InlineVoucherWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineVoucherWorkflows struct {
	service ports.Service
}

// NewInlineVoucherWorkflows wraps the vouchers service for synchronous execution.
func NewInlineVoucherWorkflows(service ports.Service) *InlineVoucherWorkflows {
	return &InlineVoucherWorkflows{service: service}
}

// SubmitRequest delegates to the application service without durable orchestration.
func (o *InlineVoucherWorkflows) SubmitRequest(ctx context.Context, req voucherdomain.VoucherRequest) (voucherdomain.VoucherRequest, error) {
	if o == nil || o.service == nil {
		return voucherdomain.VoucherRequest{}, errors.New("inline voucher workflows not configured")
	}
	return o.service.CreateRequest(ctx, req)
}

// SubmissionWorkflowID is the deterministic workflow id for a request.
func SubmissionWorkflowID(requestID string) string {
	return "voucher-submission-" + strings.TrimSpace(requestID)
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
