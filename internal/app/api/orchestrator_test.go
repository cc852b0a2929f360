package api

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/voucher-portal/internal/app/wiring"
	voucherlocal "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/local"
	voucherworkflows "github.com/Apurer/voucher-portal/internal/domains/vouchers/adapters/workflows"
	voucherapp "github.com/Apurer/voucher-portal/internal/domains/vouchers/application"
	"github.com/Apurer/voucher-portal/internal/platform/kv"
)

type closingClient struct {
	client.Client
	closed bool
}

func (c *closingClient) Close() { c.closed = true }

func testServices(shared bool) *wiring.Services {
	return &wiring.Services{
		Vouchers:      voucherapp.NewService(voucherlocal.NewRepository(kv.NewMemory(), "")),
		Backend:       "local",
		SharedBackend: shared,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmissionOrchestrator_PrivateStoreStaysInline(t *testing.T) {
	dialled := false
	orchestrator, closeFn := submissionOrchestrator(testServices(false), func() (client.Client, error) {
		dialled = true
		return &closingClient{}, nil
	}, discardLogger())
	defer closeFn()

	assert.False(t, dialled)
	assert.IsType(t, &voucherworkflows.InlineVoucherWorkflows{}, orchestrator)
}

func TestSubmissionOrchestrator_SharedStoreUsesTemporal(t *testing.T) {
	c := &closingClient{}
	orchestrator, closeFn := submissionOrchestrator(testServices(true), func() (client.Client, error) {
		return c, nil
	}, discardLogger())

	assert.IsType(t, &voucherworkflows.TemporalVoucherWorkflows{}, orchestrator)
	closeFn()
	assert.True(t, c.closed)
}

func TestSubmissionOrchestrator_DialFailureFallsBackInline(t *testing.T) {
	orchestrator, closeFn := submissionOrchestrator(testServices(true), func() (client.Client, error) {
		return nil, errors.New("connection refused")
	}, discardLogger())
	require.NotNil(t, closeFn)
	closeFn()

	assert.IsType(t, &voucherworkflows.InlineVoucherWorkflows{}, orchestrator)
}
