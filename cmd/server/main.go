package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/newsletter/internal/config"
	"github.com/dmitrymomot/newsletter/internal/idempotency"
	"github.com/dmitrymomot/newsletter/internal/newsletter"
	"github.com/dmitrymomot/newsletter/internal/server"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/internal/subscription"
	"github.com/dmitrymomot/newsletter/internal/token"
	"github.com/dmitrymomot/newsletter/pkg/email"
	"github.com/dmitrymomot/newsletter/pkg/httpserver"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/pg"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	pool, err := pg.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.Postgres, log); err != nil {
		return err
	}

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	ledger, err := newLedger(ctx, cfg, pool)
	if err != nil {
		return err
	}

	subscribers := subscriber.NewPostgresStore(pool, log)
	tokens := token.NewPostgresStore(pool)

	subscriptions := subscription.NewService(subscribers, tokens, sender, cfg.BaseURL, log)
	publisher := newsletter.NewPublisher(subscribers, sender, ledger, log)

	handler := server.New(server.Deps{
		Subscriptions: subscriptions,
		Publisher:     publisher,
		Health:        pg.Healthcheck(pool),
		Operator: server.OperatorCredentials{
			Username:     cfg.OperatorUsername,
			PasswordHash: cfg.OperatorPasswordHash,
		},
		Log: log,
	})

	srv := httpserver.New(
		httpserver.WithAddr(cfg.HTTPAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, handler)
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithAttr(slog.String("service", "newsletter")),
	)
}

func newSender(cfg config.Config) (email.EmailSender, error) {
	if cfg.EmailDevDir != "" {
		return email.NewDevSender(cfg.EmailDevDir), nil
	}
	return email.NewPostmarkClient(cfg.Email)
}

func newLedger(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) (idempotency.Ledger, error) {
	switch cfg.IdempotencyBackend {
	case config.LedgerRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return idempotency.NewRedisLedger(client, cfg.IdempotencyTTL), nil
	case config.LedgerPostgres:
		return idempotency.NewPostgresLedger(pool), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.IdempotencyBackend)
	}
}
