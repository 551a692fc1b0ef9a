package checkout

import (
	"context"
	"time"
)

// Processor settles the payment of an order.
type Processor interface {
	Process(ctx context.Context, o Order) error
}

// Simulated stands in for a payment provider: it waits Delay and then
// accepts every payment.
type Simulated struct {
	Delay time.Duration
}

func (s Simulated) Process(ctx context.Context, o Order) error {
	t := time.NewTimer(s.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
