package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listParams struct {
	Limit  int
	Offset int
	Title  string
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestKeyDistinguishesParams(t *testing.T) {
	base := listParams{Limit: 20, Offset: 0}
	paged := listParams{Limit: 20, Offset: 20}

	assert.NotEqual(t, Key("videos", base), Key("videos", paged))
	assert.NotEqual(t, Key("videos", base), Key("channels", base))
	assert.Equal(t, Key("videos", base), Key("videos", listParams{Limit: 20, Offset: 0}))
}

func TestOffsetChangesAreSeparateFetches(t *testing.T) {
	c := NewMemory(testLogger())
	var calls atomic.Int32
	fetchPage := func(offset int) Result[string] {
		return Fetch(context.Background(), c, "videos", listParams{Limit: 20, Offset: offset}, Options{}, func(context.Context) (string, error) {
			calls.Add(1)
			return "page", nil
		})
	}

	first := fetchPage(0)
	second := fetchPage(20)
	require.NoError(t, first.Err)
	require.NoError(t, second.Err)
	assert.EqualValues(t, 2, calls.Load(), "each offset should reach the network")

	again := fetchPage(0)
	require.NoError(t, again.Err)
	assert.True(t, again.FromCache)
	assert.EqualValues(t, 2, calls.Load(), "repeated offset should be served from cache")
}

func TestFreshHitServedFromMemory(t *testing.T) {
	c := NewMemory(testLogger())
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	first := Fetch(context.Background(), c, "events", nil, Options{}, fetch)
	require.NoError(t, first.Err)
	assert.False(t, first.FromCache)

	second := Fetch(context.Background(), c, "events", nil, Options{}, fetch)
	require.NoError(t, second.Err)
	assert.True(t, second.FromCache)
	assert.Equal(t, "value", second.Data)
	assert.EqualValues(t, 1, calls.Load())
}

func TestConcurrentFetchesShareOneCall(t *testing.T) {
	c := NewMemory(testLogger())
	release := make(chan struct{})
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 5
	results := make([]Result[string], workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Fetch(context.Background(), c, "events", nil, Options{}, fetch)
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, result := range results {
		require.NoError(t, result.Err)
		assert.Equal(t, "shared", result.Data)
	}
}

func TestFailedFetchRetriesOnce(t *testing.T) {
	c := NewMemory(testLogger())
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	}

	result := Fetch(context.Background(), c, "jobs", nil, Options{}, fetch)
	require.NoError(t, result.Err)
	assert.Equal(t, "recovered", result.Data)
	assert.EqualValues(t, 2, calls.Load())
}

func TestNoRetryAfterCancel(t *testing.T) {
	c := NewMemory(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		cancel()
		return "", errors.New("interrupted")
	}

	result := Fetch(ctx, c, "jobs", nil, Options{}, fetch)
	require.Error(t, result.Err)
	assert.EqualValues(t, 1, calls.Load(), "cancelled fetch should not be retried")
}

func TestStaleServedWhenRefreshFails(t *testing.T) {
	c := NewMemory(testLogger(), WithTTL(10*time.Millisecond))
	var calls atomic.Int32
	failing := errors.New("backend down")
	fetch := func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			return "v1", nil
		}
		return "", failing
	}

	first := Fetch(context.Background(), c, "channels", nil, Options{}, fetch)
	require.NoError(t, first.Err)

	time.Sleep(30 * time.Millisecond)

	second := Fetch(context.Background(), c, "channels", nil, Options{}, fetch)
	require.Error(t, second.Err)
	assert.ErrorIs(t, second.Err, failing)
	assert.True(t, second.Stale)
	assert.Equal(t, "v1", second.Data, "expired payload should survive a failed refresh")
	assert.EqualValues(t, 3, calls.Load(), "failed refresh should have been retried once")
}

func TestBypassSkipsReadButStores(t *testing.T) {
	c := NewMemory(testLogger())
	var calls atomic.Int32
	next := "v1"
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return next, nil
	}

	first := Fetch(context.Background(), c, "channels", nil, Options{}, fetch)
	require.NoError(t, first.Err)
	assert.Equal(t, "v1", first.Data)

	next = "v2"
	bypassed := Fetch(context.Background(), c, "channels", nil, Options{Bypass: true}, fetch)
	require.NoError(t, bypassed.Err)
	assert.Equal(t, "v2", bypassed.Data, "bypass should refetch even with a fresh entry")
	assert.EqualValues(t, 2, calls.Load())

	cached := Fetch(context.Background(), c, "channels", nil, Options{}, fetch)
	require.NoError(t, cached.Err)
	assert.True(t, cached.FromCache)
	assert.Equal(t, "v2", cached.Data, "bypassed fetch should still update the cache")
	assert.EqualValues(t, 2, calls.Load())
}

func TestInvalidateResourceDropsOnlyThatResource(t *testing.T) {
	c := NewMemory(testLogger())
	var videoCalls, channelCalls atomic.Int32

	fetchVideos := func() Result[string] {
		return Fetch(context.Background(), c, "videos", nil, Options{}, func(context.Context) (string, error) {
			videoCalls.Add(1)
			return "videos", nil
		})
	}
	fetchChannels := func() Result[string] {
		return Fetch(context.Background(), c, "channels", nil, Options{}, func(context.Context) (string, error) {
			channelCalls.Add(1)
			return "channels", nil
		})
	}

	require.NoError(t, fetchVideos().Err)
	require.NoError(t, fetchChannels().Err)
	require.NoError(t, c.InvalidateResource("videos"))

	refetched := fetchVideos()
	require.NoError(t, refetched.Err)
	assert.False(t, refetched.FromCache)
	assert.EqualValues(t, 2, videoCalls.Load())

	kept := fetchChannels()
	require.NoError(t, kept.Err)
	assert.True(t, kept.FromCache)
	assert.EqualValues(t, 1, channelCalls.Load())
}

func TestDiskTierSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "persisted", nil
	}

	first, err := Open(dir, testLogger())
	require.NoError(t, err)
	result := Fetch(context.Background(), first, "videos", listParams{Limit: 20}, Options{}, fetch)
	require.NoError(t, result.Err)
	require.NoError(t, first.Close())

	second, err := Open(dir, testLogger())
	require.NoError(t, err)
	defer second.Close()

	reloaded := Fetch(context.Background(), second, "videos", listParams{Limit: 20}, Options{}, fetch)
	require.NoError(t, reloaded.Err)
	assert.True(t, reloaded.FromCache)
	assert.Equal(t, "persisted", reloaded.Data)
	assert.EqualValues(t, 1, calls.Load(), "reopened cache should serve from disk")

	stats, err := second.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DiskEntries)
}

func TestClearEmptiesBothTiers(t *testing.T) {
	c, err := Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer c.Close()

	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "value", nil
	}

	require.NoError(t, Fetch(context.Background(), c, "events", nil, Options{}, fetch).Err)
	require.NoError(t, c.Clear())

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.DiskEntries)
	assert.Equal(t, 0, stats.MemoryKeys)

	require.NoError(t, Fetch(context.Background(), c, "events", nil, Options{}, fetch).Err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestResourceCounts(t *testing.T) {
	c, err := Open(t.TempDir(), testLogger())
	require.NoError(t, err)
	defer c.Close()

	fetch := func(context.Context) (string, error) { return "x", nil }
	require.NoError(t, Fetch(context.Background(), c, "videos", listParams{Offset: 0}, Options{}, fetch).Err)
	require.NoError(t, Fetch(context.Background(), c, "videos", listParams{Offset: 20}, Options{}, fetch).Err)
	require.NoError(t, Fetch(context.Background(), c, "channels", nil, Options{}, fetch).Err)

	counts, err := c.ResourceCounts()
	require.NoError(t, err)
	assert.Equal(t, 2, counts["videos"])
	assert.Equal(t, 1, counts["channels"])
}

func TestStatsCounters(t *testing.T) {
	c := NewMemory(testLogger())
	fetch := func(context.Context) (string, error) { return "x", nil }

	Fetch(context.Background(), c, "events", nil, Options{}, fetch)
	Fetch(context.Background(), c, "events", nil, Options{}, fetch)
	Fetch(context.Background(), c, "events", nil, Options{}, fetch)

	stats, err := c.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.MemoryKeys)
}
