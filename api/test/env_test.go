package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carriereplus/storefront/api"
	"github.com/carriereplus/storefront/api/background"
	"github.com/carriereplus/storefront/config"
	"github.com/carriereplus/storefront/core/cart"
	"github.com/carriereplus/storefront/core/checkout"
	"github.com/carriereplus/storefront/core/product"
	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/core/resume"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/rate"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type TestEnv struct {
	*httptest.Server
	Store     kv.Store
	Raster    *mockRaster
	Publisher *mockPublisher
	Log       *test.Hook
}

func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()
	return newTestEnv(t, name, kv.NewMemory())
}

// newTestEnv starts a server on store, the way a restarted process would
// reopen the same backend.
func newTestEnv(t *testing.T, name string, store kv.Store) (*TestEnv, error) {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	logger := log.WithField("test", name)

	raster := &mockRaster{width: 1588, height: 2246}
	publisher := &mockPublisher{}
	bg := background.New(logger)

	renderer, err := resume.NewRenderer()
	if err != nil {
		return nil, err
	}

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	limiter := rate.NewLimiter(limiterCtx, 2, time.Minute, rate.Every(time.Hour))

	catalog := product.NewCatalog(product.Seed())
	carts := cart.NewService(store, logger, decimal.RequireFromString("0.20"))
	profiles := profile.NewService(store, logger)
	resumes := resume.NewService(store, logger, profiles)

	mux := api.APIMux(api.APIConfig{
		Log:           logger,
		Session:       session.NewManager(config.Session{Lifetime: time.Hour, CookieName: "cplus_session"}, store),
		Store:         store,
		Catalog:       catalog,
		Carts:         carts,
		Profiles:      profiles,
		Resumes:       resumes,
		Renderer:      renderer,
		Exporter:      resume.NewExporter(renderer, raster),
		Checkout:      checkout.NewService(store, logger, carts, checkout.Simulated{Delay: 10 * time.Millisecond}, publisher, bg),
		ExportLimiter: limiter,
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		stopLimiter()
		<-limiter.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bg.Shutdown(ctx); err != nil {
			t.Errorf("background tasks: %v", err)
		}
	})

	return &TestEnv{
		Server:    srv,
		Store:     store,
		Raster:    raster,
		Publisher: publisher,
		Log:       hook,
	}, nil
}

// Visitor returns a client with its own cookie jar, i.e. its own session.
func (e *TestEnv) Visitor(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{Transport: e.Client().Transport, Jar: jar}
}

// Do sends body as JSON and returns the response with its body read.
func (e *TestEnv) Do(t *testing.T, c *http.Client, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	w, err := c.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	b, err := io.ReadAll(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	return w, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("cannot unmarshal %s: %v", b, err)
	}
	return v
}

func expectStatus(t *testing.T, w *http.Response, body []byte, want int) {
	t.Helper()
	if w.StatusCode != want {
		t.Fatalf("%s %s: status %d, want %d: %s", w.Request.Method, w.Request.URL.Path, w.StatusCode, want, body)
	}
}
