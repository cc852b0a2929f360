package domain

import (
	"errors"
	"strings"
)

// RequestStatus is the lifecycle state of a voucher request.
// The values are the labels shown to staff and are persisted as-is.
type RequestStatus string

const (
	// StatusDraft is reserved; the submission flow never produces it.
	StatusDraft    RequestStatus = "BOZZA"
	StatusPending  RequestStatus = "DA APPROVARE"
	StatusApproved RequestStatus = "APPROVATO"
	StatusRejected RequestStatus = "RIFIUTATO"
)

var (
	ErrInvalidStatus     = errors.New("request status is invalid")
	ErrMissingActor      = errors.New("acting user is required to approve or reject")
	ErrIllegalTransition = errors.New("status transition is not allowed")
)

var statusNames = map[string]RequestStatus{
	"DRAFT":    StatusDraft,
	"PENDING":  StatusPending,
	"APPROVED": StatusApproved,
	"REJECTED": StatusRejected,
}

// ParseStatus accepts either the label or the constant name (case-insensitive).
func ParseStatus(raw string) (RequestStatus, error) {
	raw = strings.TrimSpace(raw)
	if s := RequestStatus(raw); s.Valid() {
		return s, nil
	}
	if s, ok := statusNames[strings.ToUpper(raw)]; ok {
		return s, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether s is one of the known labels.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether s records a staff decision.
func (s RequestStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

func (s RequestStatus) String() string { return string(s) }
