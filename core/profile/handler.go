package profile

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/validate"
)

func HandleShow(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := session.Get(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}

		p, err := svc.Load(ctx, s.OwnerID)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleUpdate(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		s, err := session.Get(ctx)
		if err != nil {
			return weberr.InternalError(err)
		}

		var up ProfileUp
		if err := web.Decode(w, r, &up); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(up); err != nil {
			return weberr.Invalid(err)
		}

		p, err := svc.Update(ctx, s.OwnerID, up)
		if err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}
