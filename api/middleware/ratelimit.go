package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/rate"
)

// RateLimit throttles a route per session owner, falling back to the
// remote address for requests that carry no session.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			client := session.OwnerID(ctx)
			if client == "" {
				client = r.RemoteAddr
			}

			if !lim.Check(client) {
				return weberr.TooManyRequests(errors.New("rate limit exceeded"),
					weberr.WithFields(map[string]any{"client": client}))
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
