package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/carriereplus/storefront/api/middleware"
	"github.com/carriereplus/storefront/api/web"
	"github.com/carriereplus/storefront/api/weberr"
	"github.com/carriereplus/storefront/core/cart"
	"github.com/carriereplus/storefront/core/checkout"
	"github.com/carriereplus/storefront/core/product"
	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/core/resume"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/rate"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin    string
	Log           logrus.FieldLogger
	Session       *scs.SessionManager
	Store         kv.Store
	Catalog       *product.Catalog
	Carts         *cart.Service
	Profiles      *profile.Service
	Resumes       *resume.Service
	Renderer      *resume.Renderer
	Exporter      *resume.Exporter
	Checkout      *checkout.Service
	ExportLimiter *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, session.Identify(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	export := middleware.RateLimit(cfg.ExportLimiter)

	a.Handle(http.MethodGet, "/health", handleHealth(cfg.Store))
	a.Handle(http.MethodDelete, "/session", handleSessionReset(cfg.Session))

	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.Catalog))
	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.Catalog))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.Carts))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cfg.Carts))
	a.Handle(http.MethodPost, "/cart/items", cart.HandleCreateItem(cfg.Carts, cfg.Catalog))
	a.Handle(http.MethodPut, "/cart/items/{id}", cart.HandleUpdateItem(cfg.Carts))
	a.Handle(http.MethodDelete, "/cart/items/{id}", cart.HandleDeleteItem(cfg.Carts))
	a.Handle(http.MethodPost, "/cart/coupon", cart.HandleApplyCoupon())

	a.Handle(http.MethodGet, "/checkout", checkout.HandleShow(cfg.Checkout, cfg.Carts))
	a.Handle(http.MethodPost, "/checkout/information", checkout.HandleInformation(cfg.Checkout))
	a.Handle(http.MethodPost, "/checkout/payment", checkout.HandlePayment(cfg.Checkout))

	a.Handle(http.MethodGet, "/profile", profile.HandleShow(cfg.Profiles))
	a.Handle(http.MethodPatch, "/profile", profile.HandleUpdate(cfg.Profiles))

	a.Handle(http.MethodGet, "/resume", resume.HandleShow(cfg.Resumes))
	a.Handle(http.MethodPut, "/resume", resume.HandleUpdate(cfg.Resumes))
	a.Handle(http.MethodDelete, "/resume", resume.HandleReset(cfg.Resumes))
	a.Handle(http.MethodGet, "/resume/templates", resume.HandleTemplates())
	a.Handle(http.MethodGet, "/resume/preview", resume.HandlePreview(cfg.Resumes, cfg.Renderer))
	a.Handle(http.MethodPost, "/resume/export", resume.HandleExport(cfg.Resumes, cfg.Exporter), export)
	a.Handle(http.MethodPut, "/resume/sections/{section}", resume.HandleToggleSection(cfg.Resumes))
	a.Handle(http.MethodPost, "/resume/{list}", resume.HandleCreateEntry(cfg.Resumes))
	a.Handle(http.MethodPut, "/resume/{list}/{id}", resume.HandleUpdateEntry(cfg.Resumes))
	a.Handle(http.MethodDelete, "/resume/{list}/{id}", resume.HandleDeleteEntry(cfg.Resumes))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {

	handler = web.WrapMiddleware(mw, handler)

	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {

			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}

type status struct {
	Status string `json:"status"`
}

func handleHealth(store kv.Store) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := store.Ping(ctx); err != nil {
			return weberr.NewError(fmt.Errorf("pinging storage: %w", err), "storage unavailable", http.StatusServiceUnavailable)
		}
		return web.Respond(ctx, w, status{Status: "ok"}, http.StatusOK)
	}
}

func handleSessionReset(sm *scs.SessionManager) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		if err := session.Reset(ctx, sm, w); err != nil {
			return err
		}
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}
}
