package memory

import (
	"context"
	"sync"

	"bloghub/internal/core/activity"
)

const defaultFeedLength = 50

// ActivityFeedMemory keeps the newest activity events in memory. It is the
// publisher used when Redis is not configured.
type ActivityFeedMemory struct {
	mu     sync.RWMutex
	events []activity.Event
	limit  int
}

func NewActivityFeedMemory(limit int) *ActivityFeedMemory {
	if limit <= 0 {
		limit = defaultFeedLength
	}
	return &ActivityFeedMemory{limit: limit}
}

func (f *ActivityFeedMemory) Publish(ctx context.Context, events []activity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, events...)
	if over := len(f.events) - f.limit; over > 0 {
		f.events = append([]activity.Event(nil), f.events[over:]...)
	}
	return nil
}

// Recent returns up to n events, newest first.
func (f *ActivityFeedMemory) Recent(ctx context.Context, n int64) ([]activity.Event, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if n <= 0 || n > int64(len(f.events)) {
		n = int64(len(f.events))
	}
	out := make([]activity.Event, 0, n)
	for i := len(f.events) - 1; i >= 0 && int64(len(out)) < n; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}
