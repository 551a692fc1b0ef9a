package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carriereplus/storefront/storage/kv"
	"github.com/sirupsen/logrus"
)

const namespace = "profile"

type Service struct {
	store kv.Store
	locks *kv.Locks
	log   logrus.FieldLogger
}

func NewService(store kv.Store, log logrus.FieldLogger) *Service {
	return &Service{store: store, locks: kv.NewLocks(), log: log}
}

// Load returns the owner's profile, or the demo profile when none was
// saved yet or the stored one cannot be decoded.
func (s *Service) Load(ctx context.Context, owner string) (Profile, error) {
	b, err := s.store.Get(ctx, kv.Key(namespace, owner))
	if errors.Is(err, kv.ErrNotFound) {
		return Demo(), nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile[%s]: %w", owner, err)
	}

	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		s.log.WithFields(logrus.Fields{"owner": owner, "error": err}).Warn("discarding malformed stored profile")
		return Demo(), nil
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, owner string, up ProfileUp) (Profile, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	p, err := s.Load(ctx, owner)
	if err != nil {
		return Profile{}, err
	}
	p.Apply(up)

	b, err := json.Marshal(p)
	if err != nil {
		return Profile{}, fmt.Errorf("encoding profile: %w", err)
	}
	if err := s.store.Set(ctx, kv.Key(namespace, owner), b); err != nil {
		return Profile{}, fmt.Errorf("writing profile[%s]: %w", owner, err)
	}
	return p, nil
}
