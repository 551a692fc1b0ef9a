package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/carriereplus/storefront/api"
	"github.com/carriereplus/storefront/api/background"
	"github.com/carriereplus/storefront/config"
	"github.com/carriereplus/storefront/core/cart"
	"github.com/carriereplus/storefront/core/checkout"
	"github.com/carriereplus/storefront/core/product"
	"github.com/carriereplus/storefront/core/profile"
	"github.com/carriereplus/storefront/core/resume"
	"github.com/carriereplus/storefront/core/session"
	"github.com/carriereplus/storefront/database"
	"github.com/carriereplus/storefront/events"
	"github.com/carriereplus/storefront/rate"
	"github.com/carriereplus/storefront/storage/kv"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var build = "develop"

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Infof("starting server")
	defer logger.Info("shutdown complete")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	const prefix = "CPLUS"
	cfg := config.Config{
		Version: conf.Version{
			Build: build,
			Desc:  "storefront and resume builder",
		},
	}
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	if out, err := conf.String(&cfg); err == nil {
		logger.WithField("config", out).Debug("startup config")
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", cfg.Storage.Driver, err)
	}
	defer closeStore.Close()

	vatRate, err := decimal.NewFromString(cfg.Checkout.VATRate)
	if err != nil {
		return fmt.Errorf("parsing vat rate %q: %w", cfg.Checkout.VATRate, err)
	}

	bg := background.New(logger)

	var publisher events.Publisher = events.NewLog(logger)
	if cfg.AMQP.URL != "" {
		pool, err := events.NewChannelPool(cfg.AMQP.URL, cfg.AMQP.Queue, cfg.AMQP.Channels)
		if err != nil {
			return fmt.Errorf("connecting to broker: %w", err)
		}
		defer pool.Close()
		publisher = events.NewAMQP(pool, cfg.AMQP.Queue, cfg.AMQP.PublishTimeout, logger)
	}

	renderer, err := resume.NewRenderer()
	if err != nil {
		return err
	}

	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	defer stopLimiter()
	exportLimiter := rate.NewLimiter(
		limiterCtx,
		cfg.Export.Burst,
		time.Duration(cfg.Export.Expiry)*time.Minute,
		rate.Every(cfg.Export.Interval),
	)

	catalog := product.NewCatalog(product.Seed())
	carts := cart.NewService(store, logger, vatRate)
	profiles := profile.NewService(store, logger)
	resumes := resume.NewService(store, logger, profiles)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:    cfg.Cors.Origin,
		Log:           logger,
		Session:       session.NewManager(cfg.Session, store),
		Store:         store,
		Catalog:       catalog,
		Carts:         carts,
		Profiles:      profiles,
		Resumes:       resumes,
		Renderer:      renderer,
		Exporter:      resume.NewExporter(renderer, resume.NewChrome(cfg.Chrome.RemoteURL, cfg.Chrome.Timeout)),
		Checkout:      checkout.NewService(store, logger, carts, checkout.Simulated{Delay: cfg.Checkout.PaymentDelay}, publisher, bg),
		ExportLimiter: exportLimiter,
	})

	api := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}

		if err := bg.Shutdown(ctx); err != nil {
			return fmt.Errorf("could not complete all background tasks: %w", err)
		}
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore builds the configured key-value backend. The returned closer
// releases its connection.
func openStore(cfg config.Config) (kv.Store, io.Closer, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return kv.NewMemory(), nopCloser{}, nil

	case "file":
		s, err := kv.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil

	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := kv.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(client, cfg.Session.Lifetime), client, nil

	case "postgres":
		db, err := database.Open(cfg.DB)
		if err != nil {
			return nil, nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := database.StatusCheck(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(db), db, nil
	}

	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
