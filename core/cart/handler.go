package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/product"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/validate"
	"github.com/shopspring/decimal"
)

type View struct {
	Items      []Item          `json:"items"`
	ItemCount  int             `json:"itemCount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Summary    Summary         `json:"summary"`
}

func (s *Service) view(c Cart) View {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return View{
		Items:      items,
		ItemCount:  c.ItemCount(),
		TotalPrice: c.TotalPrice(),
		Summary:    c.Summarize(s.vatRate),
	}
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required"`
}

type QuantityUp struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type CouponNew struct {
	Code string `json:"code"`
}

func owner(ctx context.Context) (string, error) {
	s, err := session.Get(ctx)
	if err != nil {
		return "", weberr.InternalError(err)
	}
	return s.OwnerID, nil
}

func HandleShow(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		c, err := svc.Load(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("loading cart: %w", err)
		}

		return web.Respond(ctx, w, svc.view(c), http.StatusOK)
	}
}

func HandleDelete(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		if err := svc.Clear(ctx, ownerID); err != nil {
			return fmt.Errorf("clearing cart: %w", err)
		}

		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}

func HandleCreateItem(svc *Service, catalog *product.Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Invalid(err)
		}

		p, err := catalog.Fetch(in.ProductID)
		if errors.Is(err, product.ErrNotFound) {
			return weberr.NotFound(fmt.Errorf("product[%s]: %w", in.ProductID, err))
		}
		if err != nil {
			return fmt.Errorf("fetching product[%s]: %w", in.ProductID, err)
		}

		c, err := svc.Update(ctx, ownerID, func(c *Cart) error {
			c.Add(p)
			return nil
		})
		if err != nil {
			return fmt.Errorf("adding product[%s]: %w", p.ID, err)
		}

		return web.Respond(ctx, w, svc.view(c), http.StatusCreated)
	}
}

func HandleUpdateItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		id := web.Param(r, "id")

		var in QuantityUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Invalid(err)
		}

		c, err := svc.Update(ctx, ownerID, func(c *Cart) error {
			c.UpdateQuantity(id, *in.Quantity)
			return nil
		})
		if err != nil {
			return fmt.Errorf("updating quantity of item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, svc.view(c), http.StatusOK)
	}
}

func HandleDeleteItem(svc *Service) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ownerID, err := owner(ctx)
		if err != nil {
			return err
		}
		id := web.Param(r, "id")

		c, err := svc.Update(ctx, ownerID, func(c *Cart) error {
			c.Remove(id)
			return nil
		})
		if err != nil {
			return fmt.Errorf("removing item[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, svc.view(c), http.StatusOK)
	}
}

// HandleApplyCoupon is a placeholder: no coupon engine exists, so every
// non-empty code is rejected.
func HandleApplyCoupon() web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var in CouponNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if strings.TrimSpace(in.Code) == "" {
			return weberr.Invalid(errors.New("please enter a coupon code"))
		}

		return weberr.Unprocessable(errors.New("the coupon code is invalid or has expired"))
	}
}
