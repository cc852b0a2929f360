package ports

import (
	"context"

	"github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
)

// EventPublisher forwards domain events to interested parties outside the process.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// NopPublisher discards events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...domain.Event) error { return nil }
