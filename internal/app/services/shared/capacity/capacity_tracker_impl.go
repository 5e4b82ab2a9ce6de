package capacity

import (
	"context"
	"medilab-service/internal/app/contracts"
	"medilab-service/internal/pkg/constvars"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// capacityTracker counts completed tests per day. The in-process
// counter is the source of truth for the gauge; Redis mirrors it so the
// dashboard survives restarts. Increments are atomic so concurrent
// completions never lose updates.
type capacityTracker struct {
	current atomic.Int64
	maximum int64

	mu  sync.Mutex
	day string

	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
}

func NewCapacityTracker(maximum int64, redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.CapacityTracker {
	return &capacityTracker{
		maximum:         maximum,
		RedisRepository: redisRepository,
		Log:             logger,
	}
}

func (t *capacityTracker) RecordCompletion(ctx context.Context) {
	t.current.Add(1)

	if t.RedisRepository == nil {
		return
	}
	t.mu.Lock()
	day := t.day
	t.mu.Unlock()

	_, err := t.RedisRepository.Increment(ctx, constvars.RedisKeyCapacityDayPrefix+day)
	if err != nil {
		t.Log.Warn("capacity gauge mirror increment failed", zap.Error(err))
	}
}

func (t *capacityTracker) Status(ctx context.Context) (int64, int64) {
	return t.current.Load(), t.maximum
}

// Rollover switches the counter to a new day. The signal comes from
// the external clock collaborator; calling it twice with the same day
// is a no-op. The counter is seeded from the Redis mirror so a process
// restarted mid-day resumes at the true count instead of zero.
func (t *capacityTracker) Rollover(day string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.day == day {
		return
	}
	t.day = day
	t.current.Store(t.mirroredCount(day))
}

func (t *capacityTracker) mirroredCount(day string) int64 {
	if t.RedisRepository == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	value, err := t.RedisRepository.Get(ctx, constvars.RedisKeyCapacityDayPrefix+day)
	if err != nil {
		t.Log.Warn("capacity gauge mirror read failed", zap.Error(err))
		return 0
	}
	if value == "" {
		return 0
	}
	count, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		t.Log.Warn("capacity gauge mirror holds a non-numeric value", zap.String("value", value))
		return 0
	}
	return count
}
