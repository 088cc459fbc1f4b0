package workers

import (
	"context"
	"time"

	"bloghub/internal/core/activity"
	"bloghub/internal/metrics"
	activityPort "bloghub/internal/ports/activity"

	"go.uber.org/zap"
)

const (
	defaultBufferSize = 256
	defaultBatchSize  = 100
	publishTimeout    = 5 * time.Second
)

// ActivityWorker رویدادهای سرویس پست را در پس‌زمینه به Publisher می‌فرستد
type ActivityWorker struct {
	Publisher activityPort.Publisher
	BatchSize int // تعداد رویدادها در هر ارسال
	Logger    *zap.Logger

	events chan activity.Event
}

func NewActivityWorker(
	publisher activityPort.Publisher,
	bufferSize int,
	batchSize int,
	logger *zap.Logger,
) *ActivityWorker {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityWorker{
		Publisher: publisher,
		BatchSize: batchSize,
		Logger:    logger,
		events:    make(chan activity.Event, bufferSize),
	}
}

// Enqueue never blocks; when the buffer is full the event is dropped.
func (w *ActivityWorker) Enqueue(event activity.Event) {
	select {
	case w.events <- event:
	default:
		metrics.ActivityDropped.Inc()
		w.Logger.Warn("⚠️ Activity queue full, dropping event",
			zap.String("kind", string(event.Kind)),
			zap.String("postID", event.PostID))
	}
}

// Run گوش دادن به صف و ارسال رویدادها
func (w *ActivityWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 ActivityWorker started")
	batch := make([]activity.Event, 0, w.BatchSize)
	for {
		select {
		case <-ctx.Done():
			batch = w.drain(batch)
			w.flush(batch)
			w.Logger.Info("🛑 Activity worker stopped")
			return
		case event := <-w.events:
			batch = append(batch, event)
			// هر چه در صف مانده تا سقف batch برداشته می‌شود
			batch = w.fill(batch)
			w.flush(batch)
			batch = batch[:0]
		}
	}
}

func (w *ActivityWorker) fill(batch []activity.Event) []activity.Event {
	for len(batch) < w.BatchSize {
		select {
		case event := <-w.events:
			batch = append(batch, event)
		default:
			return batch
		}
	}
	return batch
}

// drain empties the queue, flushing full batches along the way.
func (w *ActivityWorker) drain(batch []activity.Event) []activity.Event {
	for {
		select {
		case event := <-w.events:
			batch = append(batch, event)
			if len(batch) >= w.BatchSize {
				w.flush(batch)
				batch = batch[:0]
			}
		default:
			return batch
		}
	}
}

func (w *ActivityWorker) flush(batch []activity.Event) {
	if len(batch) == 0 {
		return
	}
	// context جدا تا رویدادهای آخر هنگام خاموش شدن هم ارسال شوند
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	w.Logger.Debug("📦 Publishing activity batch", zap.Int("Count", len(batch)))
	if err := w.Publisher.Publish(ctx, batch); err != nil {
		w.Logger.Error("❌ Error publishing activity batch", zap.Int("Count", len(batch)), zap.Error(err))
	}
}
