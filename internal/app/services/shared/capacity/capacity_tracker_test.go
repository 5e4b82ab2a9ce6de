package capacity

import (
	"context"
	"medilab-service/internal/pkg/constvars"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubRedisRepository struct {
	store map[string]string
}

func (r *stubRedisRepository) Delete(ctx context.Context, key string) error {
	delete(r.store, key)
	return nil
}

func (r *stubRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}

func (r *stubRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.store[key], nil
}

func (r *stubRedisRepository) Increment(ctx context.Context, key string) (int64, error) {
	value, _ := strconv.ParseInt(r.store[key], 10, 64)
	value++
	r.store[key] = strconv.FormatInt(value, 10)
	return value, nil
}

func TestRecordCompletionConcurrent(t *testing.T) {
	tracker := NewCapacityTracker(150, nil, zap.NewNop())
	tracker.Rollover("2026-09-01")

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tracker.RecordCompletion(context.Background())
		}()
	}
	wg.Wait()

	current, maximum := tracker.Status(context.Background())
	assert.Equal(t, int64(n), current, "no increment may be lost under concurrency")
	assert.Equal(t, int64(150), maximum)
}

func TestRolloverResetsCurrent(t *testing.T) {
	tracker := NewCapacityTracker(50, nil, zap.NewNop())
	tracker.Rollover("2026-09-01")

	tracker.RecordCompletion(context.Background())
	tracker.RecordCompletion(context.Background())

	current, _ := tracker.Status(context.Background())
	assert.Equal(t, int64(2), current)

	tracker.Rollover("2026-09-02")
	current, _ = tracker.Status(context.Background())
	assert.Equal(t, int64(0), current)
}

func TestRolloverSameDayIsNoop(t *testing.T) {
	tracker := NewCapacityTracker(50, nil, zap.NewNop())
	tracker.Rollover("2026-09-01")

	tracker.RecordCompletion(context.Background())
	tracker.Rollover("2026-09-01")

	current, _ := tracker.Status(context.Background())
	assert.Equal(t, int64(1), current, "repeated same-day signals must not reset the gauge")
}

func TestRolloverRestoresMirroredCount(t *testing.T) {
	dayKey := constvars.RedisKeyCapacityDayPrefix + "2026-09-01"
	redis := &stubRedisRepository{store: map[string]string{dayKey: "42"}}

	// A fresh tracker stands in for a restarted process; the first
	// rollover must pick up the count accumulated before the restart.
	tracker := NewCapacityTracker(150, redis, zap.NewNop())
	tracker.Rollover("2026-09-01")

	current, _ := tracker.Status(context.Background())
	assert.Equal(t, int64(42), current)

	tracker.RecordCompletion(context.Background())
	current, _ = tracker.Status(context.Background())
	assert.Equal(t, int64(43), current)
	assert.Equal(t, "43", redis.store[dayKey], "mirror stays in step with the gauge")

	tracker.Rollover("2026-09-02")
	current, _ = tracker.Status(context.Background())
	assert.Equal(t, int64(0), current, "a day with no mirror entry starts at zero")
}

func TestRolloverIgnoresCorruptMirrorValue(t *testing.T) {
	dayKey := constvars.RedisKeyCapacityDayPrefix + "2026-09-01"
	redis := &stubRedisRepository{store: map[string]string{dayKey: "not-a-number"}}

	tracker := NewCapacityTracker(150, redis, zap.NewNop())
	tracker.Rollover("2026-09-01")

	current, _ := tracker.Status(context.Background())
	assert.Equal(t, int64(0), current)
}

func TestStatusNeverBlocksAboveMaximum(t *testing.T) {
	tracker := NewCapacityTracker(1, nil, zap.NewNop())
	tracker.Rollover("2026-09-01")

	tracker.RecordCompletion(context.Background())
	tracker.RecordCompletion(context.Background())

	current, maximum := tracker.Status(context.Background())
	assert.Equal(t, int64(2), current, "exceeding the maximum is informational only")
	assert.Equal(t, int64(1), maximum)
}
