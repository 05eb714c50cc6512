package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/observability/statsd"
)

type countingSink struct{ counts map[string]int64 }

func (s *countingSink) Count(name string, value int64, _ map[string]string) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[name] += value
}
func (s *countingSink) Gauge(string, float64, map[string]string)        {}
func (s *countingSink) Timing(string, time.Duration, map[string]string) {}

var _ statsd.Sink = (*countingSink)(nil)

func TestNewServicesWithoutConfig(t *testing.T) {
	t.Parallel()
	c := NewServices(context.Background(), nil)
	assert.Nil(t, c.Jobs)
	assert.NoError(t, c.Close())
}

func TestNewServicesWiresCoreServices(t *testing.T) {
	t.Parallel()
	cfg := &config.AppConfig{
		Auth:  config.AuthConfig{Mode: config.AuthModeMock},
		Cache: config.CacheConfig{Enabled: true, LocalCapacity: 16, LocalTTL: time.Second, RemoteTTL: time.Minute},
	}

	c := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	t.Cleanup(func() { assert.NoError(t, c.Close()) })

	assert.NotNil(t, c.Registration)
	assert.NotNil(t, c.Jobs)
	assert.NotNil(t, c.Applications)
	assert.NotNil(t, c.Search)
	assert.NotNil(t, c.Cache)
	assert.NotNil(t, c.Observability.Notifier)
	assert.Nil(t, c.Observability.MetricsSink)
	// No Redis: sessions are disabled.
	assert.Nil(t, c.Sessions)

	r := c.NewIdentityResolver()
	require.NotNil(t, r)
	assert.Nil(t, r.Principal())
}

func TestBuildReadCache(t *testing.T) {
	t.Parallel()

	assert.Nil(t, BuildReadCache(config.CacheConfig{Enabled: false}, CacheDeps{}))

	sink := &countingSink{}
	cache := BuildReadCache(config.CacheConfig{Enabled: true, UseRedis: true, LocalCapacity: 4}, CacheDeps{Metrics: sink})
	require.NotNil(t, cache)

	ctx := context.Background()
	key := core.Key(core.EntityJobPosting, "job-1")
	loads := 0
	load := func(context.Context) (string, error) {
		loads++
		return "posting", nil
	}
	for range 2 {
		v, err := core.Cached(ctx, cache, key, load)
		require.NoError(t, err)
		assert.Equal(t, "posting", v)
	}
	assert.Equal(t, 1, loads)
	assert.Positive(t, sink.counts["cache.event"])
}

func TestBuildNotifier(t *testing.T) {
	t.Parallel()
	d := buildNotifier(discardLogger(), config.ObservabilityNotificationsConfig{
		Enabled: true,
		Timeout: time.Second,
		Slack: config.SlackNotificationConfig{
			Enabled:     true,
			WebhookURL:  "https://hooks.slack.com/services/test",
			MinSeverity: "warning",
		},
		PagerDuty: config.PagerDutyNotificationConfig{
			Enabled:     true,
			RoutingKey:  "routing-key",
			MinSeverity: "critical",
		},
	})
	require.NotNil(t, d)
	d.Wait()
}

func TestBuildMediaWithoutStorage(t *testing.T) {
	t.Parallel()
	media := BuildMedia(context.Background(), config.StorageConfig{
		Buckets: config.BucketConfig{ProfileImages: "img", Resumes: "cv", Logos: "logo"},
	}, discardLogger())
	assert.Nil(t, media.Blobs)
	assert.Equal(t, "cv", media.Buckets.Resumes)
}

func TestDSNEscapesCredentials(t *testing.T) {
	t.Parallel()
	dsn := DSN(config.DBConfig{
		Host: "db", Port: 5432, User: "vortex", Password: "p@ss/word", Name: "vortex", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://vortex:p%40ss%2Fword@db:5432/vortex?sslmode=disable", dsn)
}
