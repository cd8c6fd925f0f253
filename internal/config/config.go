package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/newsletter/pkg/email"
	"github.com/dmitrymomot/newsletter/pkg/pg"
)

// LedgerBackend selects where idempotency records live.
type LedgerBackend string

const (
	LedgerPostgres LedgerBackend = "postgres"
	LedgerRedis    LedgerBackend = "redis"
)

var ErrParsingConfig = errors.New("failed to parse config from environment")

// Config aggregates every knob the service binary reads. Values come from
// environment variables; a local .env file is honored when present.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	// BaseURL is the public address of this service, used to build the
	// confirmation links embedded in emails.
	BaseURL string `env:"BASE_URL,required"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Postgres pg.Config
	Email    email.Config

	// EmailDevDir switches outbound email to the on-disk dev sender when
	// set; Postmark tokens are then not required.
	EmailDevDir string `env:"EMAIL_DEV_DIR"`

	// IdempotencyBackend is "postgres" or "redis".
	IdempotencyBackend LedgerBackend `env:"IDEMPOTENCY_BACKEND" envDefault:"postgres"`
	RedisURL           string        `env:"REDIS_URL"`
	// IdempotencyTTL bounds how long a redis-backed idempotency record
	// suppresses replays. Zero means no expiry. The Postgres backend
	// keeps records indefinitely.
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	OperatorUsername     string `env:"OPERATOR_USERNAME,required"`
	OperatorPasswordHash string `env:"OPERATOR_PASSWORD_HASH,required"` // bcrypt hash
}

// Load reads the configuration from the environment. A missing .env file
// is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
