// Package events publishes reservation lifecycle notifications. Event
// delivery is best effort: a broker failure is logged and the caller's
// workflow proceeds untouched.
package events

import (
	"context"
	"strconv"
	"time"

	"examsched/pkg/kafka"
	"examsched/pkg/logger"
	"examsched/pkg/model"
)

const (
	TypeReservationCreated = "reservation.created"
	TypeReservationDeleted = "reservation.deleted"
	TypeBatchCommitted     = "reservations.batch-committed"

	publishTimeout = 5 * time.Second
)

type ReservationEvent struct {
	Type        string             `json:"type"`
	Reservation *model.Reservation `json:"reservation,omitempty"`
	ID          int64              `json:"id,omitempty"`
	IDs         []int64            `json:"ids,omitempty"`
	SavedCount  int                `json:"saved_count,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
	source   string
}

// NewPublisher wires a producer; a nil producer makes every publish a
// no-op, which is how events stay optional.
func NewPublisher(producer *kafka.Producer, log *logger.Logger, source string) *Publisher {
	return &Publisher{
		producer: producer,
		log:      log,
		source:   source,
	}
}

func (p *Publisher) ReservationCreated(ctx context.Context, r *model.Reservation) {
	p.publish(ctx, r.Venue, TypeReservationCreated, ReservationEvent{
		Type:        TypeReservationCreated,
		Reservation: r,
		OccurredAt:  time.Now().UTC(),
	})
}

func (p *Publisher) ReservationDeleted(ctx context.Context, id int64) {
	p.publish(ctx, strconv.FormatInt(id, 10), TypeReservationDeleted, ReservationEvent{
		Type:       TypeReservationDeleted,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) BatchCommitted(ctx context.Context, ids []int64, savedCount int) {
	key := "batch"
	if len(ids) > 0 {
		key = strconv.FormatInt(ids[0], 10)
	}
	p.publish(ctx, key, TypeBatchCommitted, ReservationEvent{
		Type:       TypeBatchCommitted,
		IDs:        ids,
		SavedCount: savedCount,
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, key, eventType string, event ReservationEvent) {
	if p.producer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(event).
		WithEventType(eventType).
		WithSource(p.source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}
