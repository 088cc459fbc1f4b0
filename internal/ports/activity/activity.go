package activity

import (
	"context"

	"bloghub/internal/core/activity"
)

// Queue receives events from the services. Enqueue must not block.
type Queue interface {
	Enqueue(event activity.Event)
}

// Publisher مقصد نهایی رویدادها (Redis یا لاگ)
// The events slice is reused by the caller after Publish returns.
type Publisher interface {
	Publish(ctx context.Context, events []activity.Event) error
}

// Feed خواندن آخرین رویدادها برای داشبورد ادمین
type Feed interface {
	Recent(ctx context.Context, n int64) ([]activity.Event, error)
}
