package contracts

import "context"

// CapacityTracker keeps the daily completed-test counters. Exceeding
// the configured maximum is informational only and never blocks a
// completion.
type CapacityTracker interface {
	RecordCompletion(ctx context.Context)
	Status(ctx context.Context) (current, maximum int64)
	// Rollover resets the current counter at a day boundary. The clock
	// signal comes from outside; the tracker has no timer of its own.
	Rollover(day string)
}
