package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
)

func HandleShow(c *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")

		p, err := c.Fetch(id)
		if errors.Is(err, ErrNotFound) {
			return weberr.NotFound(fmt.Errorf("product[%s]: %w", id, err))
		}
		if err != nil {
			return fmt.Errorf("fetching product[%s]: %w", id, err)
		}

		return web.Respond(ctx, w, p.View(), http.StatusOK)
	}
}

func HandleList(c *Catalog) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f := Filter{
			Category: web.Query(r, "category"),
			Type:     Type(web.Query(r, "type")),
			Query:    web.Query(r, "q"),
		}

		if f.Type != "" && !f.Type.Valid() {
			return weberr.Invalid(fmt.Errorf("unknown product type %q", f.Type))
		}

		list := c.List(f)
		views := make([]View, len(list))
		for i, p := range list {
			views[i] = p.View()
		}

		return web.Respond(ctx, w, views, http.StatusOK)
	}
}
