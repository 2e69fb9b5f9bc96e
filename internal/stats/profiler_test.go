// In file: internal/stats/profiler_test.go
package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/moviebot/internal/version"
)

func newProfiler(t *testing.T) (*Profiler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewProfiler(rdb), mr
}

func TestGetProfileUnknownTool(t *testing.T) {
	p, _ := newProfiler(t)

	profile, err := p.GetProfile(context.Background(), "search_movie")
	require.NoError(t, err)
	assert.Equal(t, &ToolProfile{Name: "search_movie"}, profile)
}

func TestRecordSuccessAveragesLatency(t *testing.T) {
	p, _ := newProfiler(t)
	ctx := context.Background()

	p.RecordSuccess(ctx, "search_movie", 100*time.Millisecond)
	p.RecordSuccess(ctx, "search_movie", 200*time.Millisecond)

	profile, err := p.GetProfile(ctx, "search_movie")
	require.NoError(t, err)
	assert.Equal(t, int64(110), profile.AvgLatencyMS)
	assert.Equal(t, int64(2), profile.TotalSuccesses)
	assert.Zero(t, profile.TotalFailures)
	assert.Zero(t, profile.ErrorRate)
	assert.False(t, profile.LastCalled.IsZero())
}

func TestRecordFailureUpdatesErrorRate(t *testing.T) {
	p, _ := newProfiler(t)
	ctx := context.Background()

	p.RecordFailure(ctx, "get_movie_details")
	profile, err := p.GetProfile(ctx, "get_movie_details")
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.TotalFailures)
	assert.InDelta(t, 1.0, profile.ErrorRate, 1e-9)

	p.RecordSuccess(ctx, "get_movie_details", 50*time.Millisecond)
	p.RecordSuccess(ctx, "get_movie_details", 50*time.Millisecond)
	p.RecordFailure(ctx, "get_movie_details")

	profile, err = p.GetProfile(ctx, "get_movie_details")
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.TotalSuccesses)
	assert.Equal(t, int64(2), profile.TotalFailures)
	assert.InDelta(t, 0.5, profile.ErrorRate, 1e-9)
}

func TestProfilesUseVersionedKeys(t *testing.T) {
	p, mr := newProfiler(t)
	ctx := context.Background()

	p.RecordFailure(ctx, "multi_search")

	key := version.VersionedKey("toolstats", "multi_search")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, "multi_search", mr.HGet(key, "name"))
}

func TestGetProfilesKeepsOrder(t *testing.T) {
	p, _ := newProfiler(t)
	ctx := context.Background()
	p.RecordSuccess(ctx, "genre_list", 10*time.Millisecond)

	profiles, err := p.GetProfiles(ctx, []string{"trending_movies", "genre_list"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "trending_movies", profiles[0].Name)
	assert.Zero(t, profiles[0].TotalSuccesses)
	assert.Equal(t, "genre_list", profiles[1].Name)
	assert.Equal(t, int64(1), profiles[1].TotalSuccesses)
}

func TestGetProfileRedisDown(t *testing.T) {
	p, mr := newProfiler(t)
	mr.Close()

	_, err := p.GetProfile(context.Background(), "search_movie")
	assert.Error(t, err)
}

func TestConcurrentRecordsKeepErrorRateConsistent(t *testing.T) {
	p, _ := newProfiler(t)
	ctx := context.Background()

	const workers, calls = 8, 5
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < calls; i++ {
				if w%2 == 0 {
					p.RecordSuccess(ctx, "search_movie", 20*time.Millisecond)
				} else {
					p.RecordFailure(ctx, "search_movie")
				}
			}
		}(w)
	}
	wg.Wait()

	profile, err := p.GetProfile(ctx, "search_movie")
	require.NoError(t, err)
	assert.Equal(t, int64(workers/2*calls), profile.TotalSuccesses)
	assert.Equal(t, int64(workers/2*calls), profile.TotalFailures)
	assert.InDelta(t, 0.5, profile.ErrorRate, 1e-9)
	assert.Equal(t, int64(20), profile.AvgLatencyMS)
}
