package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/config"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/carriereplus/storefront/validate"
)

const ownerKey = "owner_id"

// NewManager keeps sessions in store, next to the data they own.
func NewManager(cfg config.Session, store kv.Store) *scs.SessionManager {
	sm := scs.New()
	sm.Store = NewStore(store)
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.Secure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	return sm
}

// Identify loads the cookie session and makes sure it names an owner,
// minting one on the first request. The owner never changes for the
// lifetime of a session, so the cookie is committed before the handler
// runs instead of buffering the response.
func Identify(sm *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var token string
			if c, err := r.Cookie(sm.Cookie.Name); err == nil {
				token = c.Value
			}

			ctx, err := sm.Load(ctx, token)
			if err != nil {
				return fmt.Errorf("loading session: %w", err)
			}

			owner := sm.GetString(ctx, ownerKey)
			if owner == "" {
				owner = validate.GenerateID()
				sm.Put(ctx, ownerKey, owner)

				token, expiry, err := sm.Commit(ctx)
				if err != nil {
					return fmt.Errorf("committing session: %w", err)
				}
				sm.WriteSessionCookie(ctx, w, token, expiry)
			}

			ctx = Set(ctx, Session{OwnerID: owner})
			return handler(ctx, w, r.WithContext(ctx))
		}
		return h
	}
	return m
}

// Reset drops the current owner so the next request starts a fresh
// session with an empty cart and the demo profile.
func Reset(ctx context.Context, sm *scs.SessionManager, w http.ResponseWriter) error {
	if err := sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	sm.WriteSessionCookie(ctx, w, "", time.Time{})
	return nil
}
