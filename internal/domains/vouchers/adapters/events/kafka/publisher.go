// Package kafka publishes voucher domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	voucherdomain "github.com/Apurer/voucher-portal/internal/domains/vouchers/domain"
	voucherports "github.com/Apurer/voucher-portal/internal/domains/vouchers/ports"
)

var _ voucherports.EventPublisher = (*Publisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes one JSON message per event, keyed by request id so every
// event of a request lands on the same partition.
type Publisher struct {
	l     *slog.Logger
	w     messageWriter
	topic string
}

// NewPublisher creates an async writer. Delivery failures are reported by the
// writer's error logger and never reach the caller.
func NewPublisher(l *slog.Logger, brokers []string, topic string) *Publisher {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}
	return newPublisher(l, w, topic)
}

func newPublisher(l *slog.Logger, w messageWriter, topic string) *Publisher {
	return &Publisher{l: l, w: w, topic: topic}
}

// Envelope is the message value.
type Envelope struct {
	EventID    uuid.UUID       `json:"event_id"`
	Name       string          `json:"name"`
	RequestID  string          `json:"request_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type submittedPayload struct {
	PartnerName string  `json:"partner_name"`
	TotalValue  float64 `json:"total_value"`
}

type statusChangedPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	ActorID string `json:"actor_id,omitempty"`
}

func (p *Publisher) Publish(ctx context.Context, events ...voucherdomain.Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := p.encode(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}
	return nil
}

func (p *Publisher) encode(e voucherdomain.Event) (kafka.Message, error) {
	var payload any
	switch ev := e.(type) {
	case voucherdomain.RequestSubmitted:
		payload = submittedPayload{PartnerName: ev.PartnerName, TotalValue: ev.TotalValue}
	case voucherdomain.RequestStatusChanged:
		payload = statusChangedPayload{From: string(ev.FromStatus), To: string(ev.ToStatus), ActorID: ev.ActorID}
	default:
		return kafka.Message{}, fmt.Errorf("unsupported event %s", e.EventName())
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	value, err := json.Marshal(Envelope{
		EventID:    uuid.New(),
		Name:       e.EventName(),
		RequestID:  e.AggregateID(),
		OccurredAt: e.OccurredAt().UTC(),
		Payload:    raw,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Topic: p.topic,
		Key:   []byte(e.AggregateID()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_name", Value: []byte(e.EventName())},
		},
	}, nil
}

func (p *Publisher) Close() {
	if err := p.w.Close(); err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}

type infoLogger struct {
	l *slog.Logger
}

func (l *infoLogger) Printf(format string, v ...any) {
	l.l.Info(fmt.Sprintf(format, v...))
}

type errorLogger struct {
	l *slog.Logger
}

func (l *errorLogger) Printf(format string, v ...any) {
	l.l.Error(fmt.Sprintf(format, v...))
}
