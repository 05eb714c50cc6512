package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/core"
)

type sample struct {
	name  string
	kind  string
	value float64
	tags  map[string]string
}

type fakeSink struct {
	mu      sync.Mutex
	samples []sample
}

func (f *fakeSink) add(s sample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, s)
}

func (f *fakeSink) Count(name string, v int64, tags map[string]string) {
	f.add(sample{name, "c", float64(v), tags})
}

func (f *fakeSink) Gauge(name string, v float64, tags map[string]string) {
	f.add(sample{name, "g", v, tags})
}

func (f *fakeSink) Timing(name string, v time.Duration, tags map[string]string) {
	f.add(sample{name, "ms", float64(v.Milliseconds()), tags})
}

type codedError struct{}

func (codedError) Error() string { return "coded" }

func TestCacheRecorder(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	CacheRecorder{Sink: sink}.RecordCacheEvent(core.CacheEvent{
		Entity: core.EntityCandidate, Tier: core.TierRedis, Op: core.OpHit, Ok: false,
	})
	require.Len(t, sink.samples, 1)
	assert.Equal(t, "cache.event", sink.samples[0].name)
	assert.Equal(t, map[string]string{"entity": "candidate", "tier": "redis", "op": "hit", "result": "error"}, sink.samples[0].tags)

	CacheRecorder{}.RecordCacheEvent(core.CacheEvent{})
}

func TestEmitOperation(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	tags := map[string]string{"role": "employer"}
	EmitOperation(sink, Operation{
		Name:     "application.set_status",
		Result:   ResultFor(codedError{}),
		Duration: 20 * time.Millisecond,
		Err:      errors.Join(codedError{}),
		Tags:     tags,
	})

	require.Len(t, sink.samples, 2)
	assert.Equal(t, "application.set_status.count", sink.samples[0].name)
	assert.Equal(t, "error", sink.samples[0].tags["result"])
	assert.NotEmpty(t, sink.samples[0].tags["error_class"])
	assert.Equal(t, "application.set_status.duration", sink.samples[1].name)
	assert.NotContains(t, tags, "result", "caller tags are not mutated")

	EmitOperation(nil, Operation{Name: "x"})
	EmitOperation(sink, Operation{})
	assert.Len(t, sink.samples, 2)
}

func TestResultFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ResultSuccess, ResultFor(nil))
	assert.Equal(t, ResultError, ResultFor(errors.New("x")))
}
