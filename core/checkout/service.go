package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carriereplus/storefront/core/cart"
	"github.com/carriereplus/storefront/events"
	"github.com/carriereplus/storefront/random"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/carriereplus/storefront/validate"
	"github.com/sirupsen/logrus"
)

const namespace = "checkout"

// Runner starts work that outlives the request.
type Runner interface {
	Go(fn func(ctx context.Context))
}

type Service struct {
	store     kv.Store
	locks     *kv.Locks
	log       logrus.FieldLogger
	carts     *cart.Service
	processor Processor
	publisher events.Publisher
	bg        Runner
	now       func() time.Time
}

func NewService(store kv.Store, log logrus.FieldLogger, carts *cart.Service, processor Processor, publisher events.Publisher, bg Runner) *Service {
	return &Service{
		store:     store,
		locks:     kv.NewLocks(),
		log:       log,
		carts:     carts,
		processor: processor,
		publisher: publisher,
		bg:        bg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) State(ctx context.Context, owner string) (State, error) {
	b, err := s.store.Get(ctx, kv.Key(namespace, owner))
	if errors.Is(err, kv.ErrNotFound) {
		return initial(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading checkout[%s]: %w", owner, err)
	}

	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		s.log.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("discarding malformed checkout state")
		return initial(), nil
	}
	return st, nil
}

func (s *Service) save(ctx context.Context, owner string, st State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding checkout state: %w", err)
	}
	if err := s.store.Set(ctx, kv.Key(namespace, owner), b); err != nil {
		return fmt.Errorf("writing checkout[%s]: %w", owner, err)
	}
	return nil
}

// SubmitInformation records the customer details and moves on to payment.
// Submitting again after a confirmation starts a new checkout.
func (s *Service) SubmitInformation(ctx context.Context, owner string, info Information) (State, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	c, err := s.carts.Load(ctx, owner)
	if err != nil {
		return State{}, fmt.Errorf("loading cart: %w", err)
	}
	if c.Empty() {
		return State{}, ErrEmptyCart
	}

	if info.Country == "" {
		info.Country = DefaultCountry
	}

	st := State{Step: StepPayment, Information: &info}
	if err := s.save(ctx, owner, st); err != nil {
		return State{}, err
	}
	return st, nil
}

// SubmitPayment settles the cart as an order. The ordered quantities leave
// the cart only once the processor accepted the payment; whatever was added
// while it ran stays for the next order.
func (s *Service) SubmitPayment(ctx context.Context, owner string, p Payment) (Order, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	st, err := s.State(ctx, owner)
	if err != nil {
		return Order{}, err
	}
	if st.Step != StepPayment || st.Information == nil {
		return Order{}, ErrStepOrder
	}

	c, err := s.carts.Load(ctx, owner)
	if err != nil {
		return Order{}, fmt.Errorf("loading cart: %w", err)
	}
	if c.Empty() {
		return Order{}, ErrEmptyCart
	}

	ord, err := s.newOrder(c, *st.Information, p.Method)
	if err != nil {
		return Order{}, err
	}

	if err := s.processor.Process(ctx, ord); err != nil {
		return Order{}, fmt.Errorf("%w: order[%s]: %w", ErrPaymentFailed, ord.Number, err)
	}
	ord.Status = Success

	if err := s.carts.Settle(ctx, owner, ord.Items); err != nil {
		return Order{}, fmt.Errorf("the order[%s] was paid but flushing the cart failed: %w", ord.Number, err)
	}

	st = State{Step: StepConfirmation, Information: st.Information, Order: &ord}
	if err := s.save(ctx, owner, st); err != nil {
		return Order{}, err
	}

	s.publish(ord)

	return ord, nil
}

func (s *Service) newOrder(c cart.Cart, info Information, method Method) (Order, error) {
	number, err := random.Code("CMD", 1, 8)
	if err != nil {
		return Order{}, fmt.Errorf("generating order number: %w", err)
	}

	sum := c.Summarize(s.carts.VATRate())
	return Order{
		Number:        number,
		Status:        Pending,
		Items:         c.Items,
		ItemCount:     sum.ItemCount,
		Subtotal:      sum.Subtotal,
		VATRate:       sum.VATRate,
		VAT:           sum.VAT,
		Total:         sum.Total,
		Currency:      sum.Currency,
		Customer:      info,
		PaymentMethod: method,
		CreatedAt:     s.now(),
	}, nil
}

func (s *Service) publish(ord Order) {
	e := events.Event{
		ID:         validate.GenerateID(),
		Type:       events.OrderConfirmed,
		OccurredAt: ord.CreatedAt,
		Data:       ord,
	}

	s.bg.Go(func(ctx context.Context) {
		if err := s.publisher.Publish(ctx, e); err != nil {
			s.log.WithFields(logrus.Fields{
				"order": ord.Number,
				"error": err,
			}).Error("publishing order event")
		}
	})
}
