package bootstrap

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data"
	"github.com/workvortex/vortex-api/internal/observability/metrics"
	"github.com/workvortex/vortex-api/internal/observability/statsd"
)

// CacheDeps groups dependencies for BuildReadCache.
type CacheDeps struct {
	RedisClient redis.UniversalClient // Optional: without it only the local tier is used
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// BuildReadCache creates the read-through cache, or nil when caching is disabled.
// A nil *core.ReadCache makes every read go to Postgres.
func BuildReadCache(cfg config.CacheConfig, deps CacheDeps) *core.ReadCache {
	if !cfg.Enabled {
		return nil
	}

	opts := core.ReadCacheOptions{
		Local:     core.NewLocalLRU(core.LocalLRUConfig{Capacity: cfg.LocalCapacity}),
		LocalTTL:  cfg.LocalTTL,
		RemoteTTL: cfg.RemoteTTL,
		Logger:    deps.Logger,
	}
	if deps.Metrics != nil {
		opts.Metrics = metrics.CacheRecorder{Sink: deps.Metrics}
	}
	if cfg.UseRedis && deps.RedisClient != nil {
		opts.Remote = data.NewRedisCacheRepo(deps.RedisClient)
	}
	return core.NewReadCache(opts)
}
