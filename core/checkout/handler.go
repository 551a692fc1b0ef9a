package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/cart"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/validate"
)

type View struct {
	State
	Summary cart.Summary `json:"summary"`
}

func owner(ctx context.Context) (string, error) {
	s, err := session.Get(ctx)
	if err != nil {
		return "", weberr.InternalError(err)
	}
	return s.OwnerID, nil
}

func stepError(err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return weberr.Unprocessable(err)
	case errors.Is(err, ErrStepOrder):
		return weberr.NewError(err, ErrStepOrder.Error(), http.StatusConflict)
	case errors.Is(err, ErrPaymentFailed):
		return weberr.NewError(err, "the payment could not be processed", http.StatusPaymentRequired)
	}
	return err
}

func HandleShow(svc *Service, carts *cart.Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		st, err := svc.State(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading checkout: %w", err)
		}

		c, err := carts.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading cart: %w", err)
		}

		return web.Respond(ctx, w, View{State: st, Summary: c.Summarize(carts.VATRate())}, http.StatusOK)
	}
}

func HandleInformation(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		var info Information
		if err := web.Decode(w, r, &info); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(info); err != nil {
			return weberr.InvalidFields(err, validate.Fields(info))
		}

		st, err := svc.SubmitInformation(ctx, ownerID, info)
		if err != nil {
			return stepError(err)
		}

		return web.Respond(ctx, w, st, http.StatusOK)
	}
}

func HandlePayment(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		var p Payment
		if err := web.Decode(w, r, &p); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(p); err != nil {
			return weberr.InvalidFields(err, validate.Fields(p))
		}

		ord, err := svc.SubmitPayment(ctx, ownerID, p)
		if err != nil {
			return stepError(err)
		}

		return web.Respond(ctx, w, ord, http.StatusCreated)
	}
}
