// Package session carries the visitor identity explicitly through the
// request context. Every visitor is an anonymous owner identified by a
// cookie session; carts, profiles and resumes are keyed by that owner.
package session

import (
	"context"
	"errors"
)

type Session struct {
	OwnerID string
}

type ctxKey int

const sessionKey ctxKey = 1

var ErrMissing = errors.New("session value missing from context")

func Set(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func Get(ctx context.Context) (Session, error) {
	v, ok := ctx.Value(sessionKey).(Session)
	if !ok || v.OwnerID == "" {
		return Session{}, ErrMissing
	}
	return v, nil
}

// OwnerID is Get without the error, for logging.
func OwnerID(ctx context.Context) string {
	s, _ := Get(ctx)
	return s.OwnerID
}
