package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carriereplus/storefront/storage/kv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const namespace = "cart"

// Service loads and persists carts. The stored value is the JSON array of
// items under "cart:<owner>"; it carries no version, so anything that fails
// to decode is dropped and the owner starts over with an empty cart.
type Service struct {
	store   kv.Store
	locks   *kv.Locks
	log     logrus.FieldLogger
	vatRate decimal.Decimal
}

func NewService(store kv.Store, log logrus.FieldLogger, vatRate decimal.Decimal) *Service {
	return &Service{
		store:   store,
		locks:   kv.NewLocks(),
		log:     log,
		vatRate: vatRate,
	}
}

func (s *Service) VATRate() decimal.Decimal { return s.vatRate }

func (s *Service) Load(ctx context.Context, owner string) (Cart, error) {
	if owner == "" {
		return Cart{}, errors.New("owner is empty")
	}

	key := kv.Key(namespace, owner)
	b, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, fmt.Errorf("reading cart[%s]: %w", owner, err)
	}

	var items []Item
	if err := json.Unmarshal(b, &items); err != nil {
		s.log.WithFields(logrus.Fields{
			"owner": owner,
			"error": err,
		}).Warn("discarding malformed stored cart")
		return Cart{}, nil
	}

	c := Cart{Items: items}
	c.normalize()
	return c, nil
}

func (s *Service) save(ctx context.Context, owner string, c Cart) error {
	items := c.Items
	if items == nil {
		items = []Item{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}

	if err := s.store.Set(ctx, kv.Key(namespace, owner), b); err != nil {
		return fmt.Errorf("writing cart[%s]: %w", owner, err)
	}
	return nil
}

// Update applies fn to the owner's cart and persists the result. Updates
// of the same owner are serialized.
func (s *Service) Update(ctx context.Context, owner string, fn func(c *Cart) error) (Cart, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	c, err := s.Load(ctx, owner)
	if err != nil {
		return Cart{}, err
	}

	if err := fn(&c); err != nil {
		return Cart{}, err
	}

	if err := s.save(ctx, owner, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Clear(ctx context.Context, owner string) error {
	_, err := s.Update(ctx, owner, func(c *Cart) error {
		c.Clear()
		return nil
	})
	return err
}

// Settle removes the quantities of a paid order from the owner's cart.
func (s *Service) Settle(ctx context.Context, owner string, ordered []Item) error {
	_, err := s.Update(ctx, owner, func(c *Cart) error {
		c.Settle(ordered)
		return nil
	})
	return err
}
