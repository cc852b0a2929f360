package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// RequestSubmitted is raised when a request is stored for the first time.
type RequestSubmitted struct {
	BaseEvent
	RequestID   string
	PartnerName string
	TotalValue  float64
}

func (e RequestSubmitted) EventName() string   { return "vouchers.request.submitted" }
func (e RequestSubmitted) AggregateID() string { return e.RequestID }

// RequestStatusChanged is raised when staff approve or reject a request.
type RequestStatusChanged struct {
	BaseEvent
	RequestID  string
	FromStatus RequestStatus
	ToStatus   RequestStatus
	ActorID    string
}

func (e RequestStatusChanged) EventName() string   { return "vouchers.request.status_changed" }
func (e RequestStatusChanged) AggregateID() string { return e.RequestID }
