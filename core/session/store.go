package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carriereplus/storefront/storage/kv"
)

const namespace = "session"

// Store keeps scs session data in the same key-value backend as the carts
// and resumes it identifies, so owners survive a restart.
type Store struct {
	kv  kv.Store
	now func() time.Time
}

func NewStore(store kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

type record struct {
	Data   []byte    `json:"data"`
	Expiry time.Time `json:"expiry"`
}

func (s *Store) FindCtx(ctx context.Context, token string) ([]byte, bool, error) {
	b, err := s.kv.Get(ctx, kv.Key(namespace, token))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading session: %w", err)
	}

	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, false, nil
	}
	if !s.now().Before(rec.Expiry) {
		return nil, false, nil
	}
	return rec.Data, true, nil
}

func (s *Store) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	v, err := json.Marshal(record{Data: b, Expiry: expiry})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := s.kv.Set(ctx, kv.Key(namespace, token), v); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

func (s *Store) DeleteCtx(ctx context.Context, token string) error {
	if err := s.kv.Delete(ctx, kv.Key(namespace, token)); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *Store) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *Store) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *Store) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}
