package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/sirupsen/logrus"
)

const namespace = "resume"

// ProfileSource provides the profile a resume is first derived from.
type ProfileSource interface {
	Load(ctx context.Context, owner string) (profile.Profile, error)
}

// Service keeps one resume per owner under "resume:<owner>".
type Service struct {
	store    kv.Store
	locks    *kv.Locks
	log      logrus.FieldLogger
	profiles ProfileSource
}

func NewService(store kv.Store, log logrus.FieldLogger, profiles ProfileSource) *Service {
	return &Service{
		store:    store,
		locks:    kv.NewLocks(),
		log:      log,
		profiles: profiles,
	}
}

// Load returns the owner's resume, deriving and saving it from the profile
// the first time so entry ids stay stable across reads.
func (s *Service) Load(ctx context.Context, owner string) (Resume, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	return s.load(ctx, owner)
}

func (s *Service) load(ctx context.Context, owner string) (Resume, error) {
	if owner == "" {
		return Resume{}, errors.New("owner is empty")
	}

	b, err := s.store.Get(ctx, kv.Key(namespace, owner))
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return s.derive(ctx, owner)
	case err != nil:
		return Resume{}, fmt.Errorf("reading resume[%s]: %w", owner, err)
	}

	var r Resume
	if err := json.Unmarshal(b, &r); err != nil {
		s.log.WithFields(logrus.Fields{
			"owner": owner,
			"error": err,
		}).Warn("discarding malformed stored resume")
		return s.derive(ctx, owner)
	}
	if r.Sections == nil {
		r.Sections = AllVisible()
	}
	return r, nil
}

func (s *Service) derive(ctx context.Context, owner string) (Resume, error) {
	p, err := s.profiles.Load(ctx, owner)
	if err != nil {
		return Resume{}, fmt.Errorf("loading profile for resume: %w", err)
	}

	r := FromProfile(p)
	if err := s.save(ctx, owner, r); err != nil {
		return Resume{}, err
	}
	return r, nil
}

func (s *Service) save(ctx context.Context, owner string, r Resume) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding resume: %w", err)
	}
	if err := s.store.Set(ctx, kv.Key(namespace, owner), b); err != nil {
		return fmt.Errorf("writing resume[%s]: %w", owner, err)
	}
	return nil
}

// Update applies fn to the owner's resume and saves the result. When fn
// fails nothing is written.
func (s *Service) Update(ctx context.Context, owner string, fn func(*Resume) error) (Resume, error) {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	r, err := s.load(ctx, owner)
	if err != nil {
		return Resume{}, err
	}

	if err := fn(&r); err != nil {
		return Resume{}, err
	}

	if err := s.save(ctx, owner, r); err != nil {
		return Resume{}, err
	}
	return r, nil
}

// Reset drops the stored resume; the next Load derives a new one.
func (s *Service) Reset(ctx context.Context, owner string) error {
	unlock := s.locks.Lock(kv.Key(namespace, owner))
	defer unlock()

	if err := s.store.Delete(ctx, kv.Key(namespace, owner)); err != nil {
		return fmt.Errorf("deleting resume[%s]: %w", owner, err)
	}
	return nil
}
