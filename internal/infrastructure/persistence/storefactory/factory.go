// Package storefactory builds the configured student.Store implementation.
package storefactory

import (
	"context"
	"fmt"
	"time"

	"github.com/alem-hub/studentbase/config"
	"github.com/alem-hub/studentbase/internal/domain/student"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/file"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/studentbase/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/studentbase/pkg/logger"
	"github.com/alem-hub/studentbase/pkg/retry"
)

// CloseFunc releases the resources held by a store.
type CloseFunc func()

func noopClose() {}

// New returns the store selected by cfg.Store.Backend, logging through the
// logger carried by ctx. Network backends are dialled with bounded retries;
// malformed connection settings fail at once. The returned CloseFunc is
// never nil.
func New(ctx context.Context, cfg *config.Config) (student.Store, CloseFunc, error) {
	log := logger.FromContext(ctx)

	switch cfg.Store.Backend {
	case config.BackendFile:
		return file.NewStore(cfg.Store.Root, file.WithLogger(log)), noopClose, nil

	case config.BackendPostgres:
		return newPostgres(ctx, cfg, log)

	case config.BackendRedis:
		return newRedis(ctx, cfg, log)

	default:
		return nil, noopClose, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger) (student.Store, CloseFunc, error) {
	pgCfg := postgres.DefaultConfig()
	pgCfg.URL = cfg.Database.URL
	pgCfg.QueryTimeout = cfg.Database.QueryTimeout
	if cfg.Database.MaxConns > 0 {
		pgCfg.MaxConns = int32(cfg.Database.MaxConns)
	}

	conn, err := retry.DoWithData(ctx, func(ctx context.Context) (*postgres.Connection, error) {
		if _, err := pgCfg.PoolConfig(); err != nil {
			return nil, retry.Permanent(err)
		}
		return postgres.NewConnection(ctx, pgCfg)
	}, connectOptions(cfg, log, config.BackendPostgres)...)
	if err != nil {
		return nil, noopClose, fmt.Errorf("connect to postgres: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			conn.Close()
			return nil, noopClose, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	return postgres.NewStudentStore(conn, log), conn.Close, nil
}

func newRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) (student.Store, CloseFunc, error) {
	rCfg := redis.DefaultConfig()
	rCfg.URL = cfg.Redis.URL
	rCfg.Host = cfg.Redis.Host
	rCfg.Port = cfg.Redis.Port
	rCfg.Password = cfg.Redis.Password
	rCfg.DB = cfg.Redis.DB
	if cfg.Redis.DialTimeout > 0 {
		rCfg.DialTimeout = cfg.Redis.DialTimeout
	}

	cache, err := retry.DoWithData(ctx, func(ctx context.Context) (*redis.Cache, error) {
		if _, err := rCfg.Options(); err != nil {
			return nil, retry.Permanent(err)
		}
		return redis.NewCache(ctx, rCfg)
	}, connectOptions(cfg, log, config.BackendRedis)...)
	if err != nil {
		return nil, noopClose, fmt.Errorf("connect to redis: %w", err)
	}

	closeFn := func() {
		if err := cache.Close(); err != nil {
			log.Warn("failed to close redis client", logger.Err(err))
		}
	}

	return redis.NewStudentStore(cache, cfg.Redis.RecordTTL, log), closeFn, nil
}

func connectOptions(cfg *config.Config, log *logger.Logger, backend config.Backend) []retry.Option {
	return []retry.Option{
		retry.WithMaxAttempts(cfg.Store.ConnectMaxAttempts),
		retry.WithInitialDelay(cfg.Store.ConnectBackoff),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			log.Warn("backend connection failed, retrying",
				logger.Backend(string(backend)),
				logger.Int("attempt", attempt),
				logger.Duration("delay", delay),
				logger.Err(err),
			)
		}),
	}
}
