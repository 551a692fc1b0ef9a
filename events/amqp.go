package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// AMQP publishes events as persistent JSON messages on a queue through
// the default exchange.
type AMQP struct {
	pool    *ChannelPool
	queue   string
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewAMQP(pool *ChannelPool, queue string, timeout time.Duration, log logrus.FieldLogger) *AMQP {
	return &AMQP{pool: pool, queue: queue, timeout: timeout, log: log}
}

func (a *AMQP) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding event %s: %w", e.Type, err)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	ch, err := a.pool.Get(ctx)
	if err != nil {
		return fmt.Errorf("getting channel: %w", err)
	}
	defer a.pool.Put(ch)

	err = ch.PublishWithContext(ctx,
		"",      // default exchange
		a.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    e.ID,
			Type:         e.Type,
			Timestamp:    e.OccurredAt,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("publishing event %s[%s]: %w", e.Type, e.ID, err)
	}

	a.log.WithFields(logrus.Fields{
		"event_id":   e.ID,
		"event_type": e.Type,
		"queue":      a.queue,
	}).Info("event published")

	return nil
}
