package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/bootstrap"
)

type connectInfraOptions struct {
	Logger    *slog.Logger
	Config    *config.AppConfig
	WantRedis bool
}

var errRedisNotConfigured = errors.New("redis not configured")

// connectInfra opens Postgres and, when requested and configured, Redis.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func connectInfra(opts *connectInfraOptions) (*sql.DB, redis.UniversalClient, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: opts.Config.Postgres, Logger: opts.Logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	if !opts.WantRedis {
		return db, nil, nil
	}

	client, err := maybeConnectRedis(opts.Logger, &opts.Config.Redis)
	switch {
	case err == nil:
		return db, client, nil
	case errors.Is(err, errRedisNotConfigured):
		opts.Logger.Info("no redis configuration detected; skipping redis connection")
		return db, nil, nil
	default:
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close db: %w", closeErr))
		}
		return nil, nil, err
	}
}

// maybeConnectRedis returns a connected client when configuration is present.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func maybeConnectRedis(logger *slog.Logger, cfg *config.RedisConfig) (redis.UniversalClient, error) {
	if !hasRedisConfig(cfg) {
		return nil, errRedisNotConfigured
	}
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: *cfg, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func hasRedisConfig(cfg *config.RedisConfig) bool {
	if cfg == nil {
		return false
	}
	if cfg.UseCluster {
		return len(cfg.ClusterNodes) > 0 || cfg.URI != ""
	}
	if cfg.UseSentinel {
		return len(cfg.SentinelNodes) > 0
	}
	return cfg.URI != ""
}

func closeInfra(db *sql.DB, redisClient redis.UniversalClient) error {
	var closeErr error
	if db != nil {
		if err := db.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close db: %w", err))
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			closeErr = errors.Join(closeErr, fmt.Errorf("close redis: %w", err))
		}
	}
	return closeErr
}

// withServices runs f against a fully wired service container.
func withServices(
	cmdCtx *commandContext,
	timeout time.Duration,
	wantRedis bool,
	f func(context.Context, *bootstrap.ServiceContainer) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, redisClient, err := connectInfra(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantRedis: wantRedis,
	})
	if err != nil {
		return err
	}

	svcs := bootstrap.NewServices(ctx, &bootstrap.ServiceDeps{
		Config: &cmdCtx.Config,
		Infra:  bootstrap.Infra{DB: db, RedisClient: redisClient},
		Logger: cmdCtx.Logger,
	})
	defer func() {
		if closeErr := errors.Join(svcs.Close(), closeInfra(db, redisClient)); closeErr != nil {
			cmdCtx.Logger.Warn("shutdown failed", "error", closeErr)
		}
	}()

	return f(ctx, &svcs)
}
