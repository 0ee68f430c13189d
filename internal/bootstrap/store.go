package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/studioline/intake-backend/config"
	"github.com/studioline/intake-backend/internal/kvstore"
)

type StoreOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenStore connects the configured key-value backend and fails fast when
// it is unreachable.
func OpenStore(ctx context.Context, cfg *config.Config, opt StoreOptions) (kvstore.Store, error) {
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	switch cfg.Store.Backend {
	case config.BackendRedis:
		return openRedis(ctx, cfg.Redis, opt)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg.Database, opt)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func openRedis(ctx context.Context, cfg config.RedisConfig, opt StoreOptions) (kvstore.Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: opt.ConnectTO,
	})
	store := kvstore.NewRedisStore(client)

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := store.Ping(pctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return store, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, opt StoreOptions) (kvstore.Store, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		pcfg.MinConns = int32(cfg.MinConns)
	}
	pcfg.MaxConnIdleTime = 5 * time.Minute
	pcfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	store := kvstore.NewPostgresStore(pool, cfg.Table)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return store, nil
}
