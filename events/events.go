// Package events publishes domain events such as confirmed orders to
// downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const OrderConfirmed = "order.confirmed"

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Log is the publisher used when no broker is configured: events are only
// written to the log.
type Log struct {
	log logrus.FieldLogger
}

func NewLog(log logrus.FieldLogger) *Log {
	return &Log{log: log}
}

func (l *Log) Publish(ctx context.Context, e Event) error {
	l.log.WithFields(logrus.Fields{
		"event_id":   e.ID,
		"event_type": e.Type,
	}).Info("event published")
	return nil
}
