// In file: internal/stats/profiler.go

// Package stats keeps per-tool call telemetry in Redis: call counts, error
// rate and a smoothed latency. It never stores anything returned by TMDB.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dileep-u-k/moviebot/internal/version"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
)

const (
	keyPrefix = "toolstats"

	// latencyAlpha weights the newest sample in the moving average.
	latencyAlpha = 0.1

	maxTxRetries = 100
)

// ToolProfile tracks how a single tool has been performing.
type ToolProfile struct {
	Name           string    `json:"name" redis:"name"`
	AvgLatencyMS   int64     `json:"avg_latency_ms" redis:"avg_latency_ms"`
	TotalSuccesses int64     `json:"total_successes" redis:"total_successes"`
	TotalFailures  int64     `json:"total_failures" redis:"total_failures"`
	ErrorRate      float64   `json:"error_rate" redis:"error_rate"`
	LastCalled     time.Time `json:"last_called" redis:"last_called"`
}

// Profiler records tool outcomes in Redis hashes.
type Profiler struct {
	rdb *redis.Client
}

func NewProfiler(rdb *redis.Client) *Profiler {
	return &Profiler{rdb: rdb}
}

func (p *Profiler) profileKey(name string) string {
	return version.VersionedKey(keyPrefix, name)
}

// GetProfile retrieves a tool's profile. A tool that was never called yields
// a zero profile carrying only its name.
func (p *Profiler) GetProfile(ctx context.Context, name string) (*ToolProfile, error) {
	data, err := p.rdb.HGetAll(ctx, p.profileKey(name)).Result()
	if err != nil {
		return nil, err
	}

	profile := &ToolProfile{Name: name}
	if len(data) == 0 {
		return profile, nil
	}
	profile.AvgLatencyMS = cast.ToInt64(data["avg_latency_ms"])
	profile.TotalSuccesses = cast.ToInt64(data["total_successes"])
	profile.TotalFailures = cast.ToInt64(data["total_failures"])
	profile.ErrorRate = cast.ToFloat64(data["error_rate"])
	profile.LastCalled, _ = time.Parse(time.RFC3339Nano, data["last_called"])
	return profile, nil
}

// GetProfiles retrieves the profiles of every named tool, in the given order.
func (p *Profiler) GetProfiles(ctx context.Context, names []string) ([]*ToolProfile, error) {
	profiles := make([]*ToolProfile, 0, len(names))
	for _, name := range names {
		profile, err := p.GetProfile(ctx, name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// RecordSuccess folds latency into the moving average and bumps the success count.
func (p *Profiler) RecordSuccess(ctx context.Context, name string, latency time.Duration) {
	if err := p.record(ctx, name, &latency); err != nil {
		log.Printf("Error in success update for tool %s: %v", name, err)
	}
}

// RecordFailure bumps the failure count of a tool.
func (p *Profiler) RecordFailure(ctx context.Context, name string) {
	if err := p.record(ctx, name, nil); err != nil {
		log.Printf("Error in failure update for tool %s: %v", name, err)
	}
}

// record updates every field of a profile in one optimistic transaction, so
// the error rate always matches the counters stored beside it. A nil latency
// records a failure.
func (p *Profiler) record(ctx context.Context, name string, latency *time.Duration) error {
	key := p.profileKey(name)

	txf := func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, key, "avg_latency_ms", "total_successes", "total_failures").Result()
		if err != nil {
			return err
		}
		successes := cast.ToInt64(vals[1])
		failures := cast.ToInt64(vals[2])

		fields := []any{"name", name, "last_called", time.Now().Format(time.RFC3339Nano)}
		if latency != nil {
			successes++
			sample := float64(latency.Milliseconds())
			avg := int64(sample)
			// The first sample seeds the average.
			if vals[0] != nil {
				avg = int64(latencyAlpha*sample + (1.0-latencyAlpha)*cast.ToFloat64(vals[0]))
			}
			fields = append(fields, "avg_latency_ms", avg)
		} else {
			failures++
		}
		fields = append(fields,
			"total_successes", successes,
			"total_failures", failures,
			"error_rate", float64(failures)/float64(successes+failures),
		)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, fields...)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := p.rdb.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("profile %s kept changing after %d attempts", key, maxTxRetries)
}
