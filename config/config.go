package config

import (
	"time"

	"github.com/ardanlabs/conf/v3"
)

type Config struct {
	conf.Version
	Web      Web
	Cors     Cors
	Session  Session
	Storage  Storage
	DB       DB
	Redis    Redis
	Checkout Checkout
	Chrome   Chrome
	Export   Export
	AMQP     AMQP
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:60s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type Session struct {
	Lifetime   time.Duration `conf:"default:720h"`
	CookieName string        `conf:"default:cplus_session"`
	Secure     bool          `conf:"default:false"`
}

// Storage selects the key-value backend carts, profiles and resumes
// are persisted to. Driver is one of memory, file, redis or postgres.
type Storage struct {
	Driver string `conf:"default:memory"`
	Dir    string `conf:"default:./data"`
}

type DB struct {
	User         string `conf:"default:postgres"`
	Password     string `conf:"default:postgres,mask"`
	Host         string `conf:"default:localhost:5432"`
	Name         string `conf:"default:storefront"`
	MaxIdleConns int    `conf:"default:2"`
	MaxOpenConns int    `conf:"default:10"`
	DisableTLS   bool   `conf:"default:true"`
}

type Redis struct {
	Addr     string `conf:"default:localhost:6379"`
	Password string `conf:"mask"`
	DB       int    `conf:"default:0"`
}

type Checkout struct {
	PaymentDelay time.Duration `conf:"default:2s"`
	VATRate      string        `conf:"default:0.20"`
}

type Chrome struct {
	RemoteURL string
	Timeout   time.Duration `conf:"default:30s"`
}

type Export struct {
	Burst    int           `conf:"default:3"`
	Interval time.Duration `conf:"default:10s"`
	Expiry   int           `conf:"default:30"`
}

type AMQP struct {
	URL            string        `conf:"mask"`
	Queue          string        `conf:"default:orders"`
	Channels       int           `conf:"default:4"`
	PublishTimeout time.Duration `conf:"default:5s"`
}
