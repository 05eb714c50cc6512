package core

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// CacheRepository defines the shared (cross-process) cache tier.
// The data layer provides a Redis implementation.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes keys from the cache and returns how many existed.
	Delete(ctx context.Context, keys ...string) (int64, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// CacheEntity names a cached record type.
type CacheEntity string

const (
	EntityAccount     CacheEntity = "account"
	EntityCandidate   CacheEntity = "candidate"
	EntityEmployer    CacheEntity = "employer"
	EntityExperiences CacheEntity = "experiences"
	EntityJobPosting  CacheEntity = "job_posting"
)

// CacheKey identifies one cached record by entity and id.
type CacheKey struct {
	Entity CacheEntity
	ID     string
}

// Key builds a CacheKey.
func Key(entity CacheEntity, id string) CacheKey {
	return CacheKey{Entity: entity, ID: id}
}

// String returns the storage key, e.g. "vortex:account:<id>".
func (k CacheKey) String() string {
	return "vortex:" + string(k.Entity) + ":" + k.ID
}

// CacheTier identifies where a cache event happened.
type CacheTier string

const (
	TierLocal CacheTier = "local"
	TierRedis CacheTier = "redis"
	TierRepo  CacheTier = "repo"
)

// CacheOp is the kind of cache event.
type CacheOp string

const (
	OpHit        CacheOp = "hit"
	OpMiss       CacheOp = "miss"
	OpWrite      CacheOp = "write"
	OpInvalidate CacheOp = "invalidate"
)

// CacheEvent is a compact event describing a cache metric occurrence.
type CacheEvent struct {
	Entity CacheEntity
	Tier   CacheTier
	Op     CacheOp
	Ok     bool
}

// CacheMetrics receives cache events.
type CacheMetrics interface {
	RecordCacheEvent(e CacheEvent)
}

// NoopCacheMetrics is the default when no metrics are provided.
type NoopCacheMetrics struct{}

func (NoopCacheMetrics) RecordCacheEvent(CacheEvent) {}

// ReadCacheOptions bundles dependencies for NewReadCache.
type ReadCacheOptions struct {
	Local     *LocalLRU
	Remote    CacheRepository // optional
	LocalTTL  time.Duration
	RemoteTTL time.Duration
	Metrics   CacheMetrics
	Logger    *slog.Logger
}

// ReadCache is the per-process read-through cache keyed by entity and id.
// Lookups go local, then remote, then the loader, backfilling the upper tiers.
// Invalidate removes entries from both tiers before returning; if the remote delete
// fails, a local tombstone forces the next lookup in this process to the loader.
// A load that overlaps an Invalidate in this process is returned but not stored.
type ReadCache struct {
	local     *LocalLRU
	remote    CacheRepository
	localTTL  time.Duration
	remoteTTL time.Duration
	metrics   CacheMetrics
	logger    *slog.Logger

	invalidations atomic.Uint64
}

// NewReadCache creates a ReadCache. A nil Local gets a default LocalLRU.
func NewReadCache(opts ReadCacheOptions) *ReadCache {
	local := opts.Local
	if local == nil {
		local = NewLocalLRU(LocalLRUConfig{})
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopCacheMetrics{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	localTTL := opts.LocalTTL
	if localTTL <= 0 {
		localTTL = 30 * time.Second
	}
	remoteTTL := opts.RemoteTTL
	if remoteTTL <= 0 {
		remoteTTL = 5 * time.Minute
	}
	return &ReadCache{
		local:     local,
		remote:    opts.Remote,
		localTTL:  localTTL,
		remoteTTL: remoteTTL,
		metrics:   metrics,
		logger:    logger.With("component", "read_cache"),
	}
}

// Invalidate drops keys from every tier.
func (c *ReadCache) Invalidate(ctx context.Context, keys ...CacheKey) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	c.invalidations.Add(1)
	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = k.String()
		c.local.Delete(raw[i])
		c.emit(k.Entity, TierLocal, OpInvalidate, true)
	}
	if c.remote == nil {
		return nil
	}
	if _, err := c.remote.Delete(ctx, raw...); err != nil {
		for i, k := range keys {
			c.local.Set(raw[i], []byte{}, c.remoteTTL)
			c.emit(k.Entity, TierRedis, OpInvalidate, false)
		}
		c.logger.WarnContext(ctx, "remote cache invalidation failed; tombstoned locally", "keys", raw, "error", err)
		return err
	}
	for _, k := range keys {
		c.emit(k.Entity, TierRedis, OpInvalidate, true)
	}
	return nil
}

// lookup returns the cached bytes for key, or ok=false on a miss.
func (c *ReadCache) lookup(ctx context.Context, key CacheKey) ([]byte, bool) {
	k := key.String()
	if v, ok := c.local.Get(k); ok {
		if len(v) == 0 {
			// tombstone: the remote tier may be stale
			c.emit(key.Entity, TierLocal, OpMiss, true)
			return nil, false
		}
		c.emit(key.Entity, TierLocal, OpHit, true)
		return v, true
	}
	c.emit(key.Entity, TierLocal, OpMiss, true)

	if c.remote == nil {
		return nil, false
	}
	v, err := c.remote.Get(ctx, k)
	if err != nil {
		c.emit(key.Entity, TierRedis, OpMiss, false)
		c.logger.DebugContext(ctx, "remote cache get failed", "key", k, "error", err)
		return nil, false
	}
	if len(v) == 0 {
		c.emit(key.Entity, TierRedis, OpMiss, true)
		return nil, false
	}
	c.emit(key.Entity, TierRedis, OpHit, true)
	c.local.Set(k, v, c.localTTL)
	return v, true
}

func (c *ReadCache) store(ctx context.Context, key CacheKey, v []byte) {
	k := key.String()
	if c.remote != nil {
		if err := c.remote.Set(ctx, k, v, c.remoteTTL); err != nil {
			c.emit(key.Entity, TierRedis, OpWrite, false)
			c.logger.DebugContext(ctx, "remote cache set failed", "key", k, "error", err)
			// keep the tombstone (if any) so this process keeps bypassing the stale remote entry
			return
		}
		c.emit(key.Entity, TierRedis, OpWrite, true)
	}
	c.local.Set(k, v, c.localTTL)
	c.emit(key.Entity, TierLocal, OpWrite, true)
}

func (c *ReadCache) emit(entity CacheEntity, tier CacheTier, op CacheOp, ok bool) {
	c.metrics.RecordCacheEvent(CacheEvent{Entity: entity, Tier: tier, Op: op, Ok: ok})
}

// Cached returns the value for key from cache, or calls load and caches its result.
// A nil cache always calls load. Loader errors are never cached.
func Cached[T any](ctx context.Context, c *ReadCache, key CacheKey, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	epoch := c.invalidations.Load()
	if raw, ok := c.lookup(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.local.Delete(key.String())
	}
	return fill(ctx, c, key, epoch, load)
}

// Refreshed always calls load and overwrites the cached value with the result.
// Callers use it right after a write, when a concurrent reader may have refilled
// the entry with data read before that write.
func Refreshed[T any](ctx context.Context, c *ReadCache, key CacheKey, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}
	return fill(ctx, c, key, c.invalidations.Load(), load)
}

// fill loads key and stores it unless an Invalidate ran since epoch was read.
func fill[T any](ctx context.Context, c *ReadCache, key CacheKey, epoch uint64, load func(context.Context) (T, error)) (T, error) {
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	c.emit(key.Entity, TierRepo, OpHit, true)
	if c.invalidations.Load() != epoch {
		return v, nil
	}

	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		if err != nil {
			c.logger.DebugContext(ctx, "cache encode failed", "key", key.String(), "error", err)
		}
		return v, nil
	}
	c.store(ctx, key, raw)
	return v, nil
}

func (c *ReadCache) Health(ctx context.Context) error {
	if c == nil || c.remote == nil {
		return ErrCacheUnavailable
	}
	return c.remote.Health(ctx)
}
