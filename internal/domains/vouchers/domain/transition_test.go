package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest(t *testing.T) VoucherRequest {
	t.Helper()
	req, err := NewVoucherRequest("req-1", time.Now(), testPartner(), []SelectedModule{{SoftwareModule: coreModule, Quantity: 1}})
	require.NoError(t, err)
	return *req
}

func TestTransition_PendingToDecision(t *testing.T) {
	for _, to := range []RequestStatus{StatusApproved, StatusRejected} {
		t.Run(string(to), func(t *testing.T) {
			req := pendingRequest(t)

			next, changed, err := Transition(req, to, "u1")
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, to, next.Status)
			assert.Equal(t, "u1", next.ApprovedBy)

			assert.Equal(t, req.ID, next.ID)
			assert.Equal(t, req.Modules, next.Modules)
			assert.Equal(t, req.TotalValue, next.TotalValue)
			assert.Equal(t, req.PartnerInfo, next.PartnerInfo)
			assert.Equal(t, StatusPending, req.Status, "input must not be mutated")
		})
	}
}

func TestTransition_DecidedIsNoop(t *testing.T) {
	req := pendingRequest(t)
	approved, _, err := Transition(req, StatusApproved, "u1")
	require.NoError(t, err)

	for _, to := range []RequestStatus{StatusRejected, StatusApproved, StatusPending, StatusDraft} {
		next, changed, err := Transition(approved, to, "u2")
		require.NoError(t, err)
		assert.False(t, changed, to)
		assert.Equal(t, StatusApproved, next.Status)
		assert.Equal(t, "u1", next.ApprovedBy)
	}
}

func TestTransition_DraftToPendingKeepsApprover(t *testing.T) {
	req := pendingRequest(t)
	req.Status = StatusDraft

	next, changed, err := Transition(req, StatusPending, "u1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, StatusPending, next.Status)
	assert.Empty(t, next.ApprovedBy)
}

func TestTransition_Errors(t *testing.T) {
	req := pendingRequest(t)

	_, _, err := Transition(req, RequestStatus("ARCHIVED"), "u1")
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, _, err = Transition(req, StatusApproved, "  ")
	require.ErrorIs(t, err, ErrMissingActor)
}

func TestParseStatus(t *testing.T) {
	cases := map[string]RequestStatus{
		"APPROVATO":    StatusApproved,
		"approved":     StatusApproved,
		"DA APPROVARE": StatusPending,
		"rejected":     StatusRejected,
		"BOZZA":        StatusDraft,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseStatus("done")
	require.ErrorIs(t, err, ErrInvalidStatus)
}
