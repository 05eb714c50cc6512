package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu        sync.Mutex
	data      map[string][]byte
	getErr    error
	setErr    error
	deleteErr error
	gets      int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string][]byte{}}
}

func (f *fakeRemote) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeRemote) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[key], nil
}

func (f *fakeRemote) Delete(_ context.Context, keys ...string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return n, nil
}

func (f *fakeRemote) Health(context.Context) error { return nil }

type recordingMetrics struct {
	mu     sync.Mutex
	events []CacheEvent
}

func (m *recordingMetrics) RecordCacheEvent(e CacheEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

func (m *recordingMetrics) count(tier CacheTier, op CacheOp) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Tier == tier && e.Op == op {
			n++
		}
	}
	return n
}

type cachedThing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestCacheKey_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "vortex:account:a-1", Key(EntityAccount, "a-1").String())
	assert.Equal(t, "vortex:job_posting:j-9", Key(EntityJobPosting, "j-9").String())
}

func TestCached_LoadsOnceThenServesLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	metrics := &recordingMetrics{}
	c := NewReadCache(ReadCacheOptions{Metrics: metrics})

	calls := 0
	load := func(context.Context) (*cachedThing, error) {
		calls++
		return &cachedThing{ID: "a-1", Name: "Ada"}, nil
	}

	for range 3 {
		got, err := Cached(ctx, c, Key(EntityAccount, "a-1"), load)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, metrics.count(TierLocal, OpHit))
	assert.Equal(t, 1, metrics.count(TierRepo, OpHit))
}

func TestRefreshed_BypassesStaleEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	remote := newFakeRemote()
	c := NewReadCache(ReadCacheOptions{Remote: remote})
	key := Key(EntityAccount, "a-1")

	stale := func(context.Context) (*cachedThing, error) { return &cachedThing{ID: "a-1", Name: "Old"}, nil }
	fresh := func(context.Context) (*cachedThing, error) { return &cachedThing{ID: "a-1", Name: "New"}, nil }

	_, err := Cached(ctx, c, key, stale)
	require.NoError(t, err)

	got, err := Refreshed(ctx, c, key, fresh)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	got, err = Cached(ctx, c, key, stale)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name, "refreshed value replaces the cached one")

	got, err = Refreshed(ctx, nil, key, fresh)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestCached_LoadOverlappingInvalidateIsNotStored(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewReadCache(ReadCacheOptions{})
	key := Key(EntityAccount, "a-1")

	got, err := Cached(ctx, c, key, func(ctx context.Context) (*cachedThing, error) {
		// a write lands while this read is still in flight
		require.NoError(t, c.Invalidate(ctx, key))
		return &cachedThing{ID: "a-1", Name: "Old"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Name)

	calls := 0
	got, err = Cached(ctx, c, key, func(context.Context) (*cachedThing, error) {
		calls++
		return &cachedThing{ID: "a-1", Name: "New"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 1, calls)
}

func TestCached_LoaderErrorNotCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := NewReadCache(ReadCacheOptions{})
	boom := errors.New("db down")

	calls := 0
	load := func(context.Context) (*cachedThing, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return &cachedThing{ID: "a-1"}, nil
	}

	_, err := Cached(ctx, c, Key(EntityAccount, "a-1"), load)
	require.ErrorIs(t, err, boom)

	got, err := Cached(ctx, c, Key(EntityAccount, "a-1"), load)
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
	assert.Equal(t, 2, calls)
}

func TestCached_NilCacheCallsLoader(t *testing.T) {
	t.Parallel()
	got, err := Cached(context.Background(), nil, Key(EntityAccount, "x"), func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestCached_RemoteHitBackfillsLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	remote := newFakeRemote()
	remote.data["vortex:employer:e-1"] = []byte(`{"id":"e-1","name":"Acme"}`)
	c := NewReadCache(ReadCacheOptions{Remote: remote})

	load := func(context.Context) (*cachedThing, error) {
		t.Fatal("loader should not run on remote hit")
		return nil, nil
	}

	got, err := Cached(ctx, c, Key(EntityEmployer, "e-1"), load)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = Cached(ctx, c, Key(EntityEmployer, "e-1"), load)
	require.NoError(t, err)
	assert.Equal(t, 1, remote.gets, "second read should be served locally")
}

func TestCached_RemoteErrorFallsBackToLoader(t *testing.T) {
	t.Parallel()
	remote := newFakeRemote()
	remote.getErr = errors.New("redis down")
	c := NewReadCache(ReadCacheOptions{Remote: remote})

	got, err := Cached(context.Background(), c, Key(EntityCandidate, "c-1"), func(context.Context) (*cachedThing, error) {
		return &cachedThing{ID: "c-1"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", got.ID)
}

func TestReadCache_InvalidateIsVisibleToNextRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	remote := newFakeRemote()
	c := NewReadCache(ReadCacheOptions{Remote: remote})
	key := Key(EntityAccount, "a-1")

	name := "before"
	load := func(context.Context) (*cachedThing, error) {
		return &cachedThing{ID: "a-1", Name: name}, nil
	}

	got, err := Cached(ctx, c, key, load)
	require.NoError(t, err)
	assert.Equal(t, "before", got.Name)

	name = "after"
	require.NoError(t, c.Invalidate(ctx, key))
	_, inRemote := remote.data[key.String()]
	assert.False(t, inRemote)

	got, err = Cached(ctx, c, key, load)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestReadCache_InvalidateRemoteFailureTombstones(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	remote := newFakeRemote()
	c := NewReadCache(ReadCacheOptions{Remote: remote})
	key := Key(EntityExperiences, "c-1")

	remote.data[key.String()] = []byte(`{"id":"c-1","name":"stale"}`)
	remote.deleteErr = errors.New("redis down")

	require.Error(t, c.Invalidate(ctx, key))

	got, err := Cached(ctx, c, key, func(context.Context) (*cachedThing, error) {
		return &cachedThing{ID: "c-1", Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name, "stale remote entry must be bypassed")
	assert.JSONEq(t, `{"id":"c-1","name":"fresh"}`, string(remote.data[key.String()]))
}

func TestReadCache_Health(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, NewReadCache(ReadCacheOptions{}).Health(context.Background()), ErrCacheUnavailable)
	assert.NoError(t, NewReadCache(ReadCacheOptions{Remote: newFakeRemote()}).Health(context.Background()))
}
