package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bloghub/internal/core/activity"
	"bloghub/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu      sync.Mutex
	batches [][]activity.Event
	err     error
}

func (p *fakePublisher) Publish(ctx context.Context, events []activity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, append([]activity.Event(nil), events...))
	return p.err
}

func (p *fakePublisher) published() []activity.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []activity.Event
	for _, b := range p.batches {
		out = append(out, b...)
	}
	return out
}

func (p *fakePublisher) maxBatch() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	largest := 0
	for _, b := range p.batches {
		if len(b) > largest {
			largest = len(b)
		}
	}
	return largest
}

func event(i int) activity.Event {
	return activity.Event{Kind: activity.KindLiked, PostID: fmt.Sprintf("p%d", i), Likes: i}
}

func runWorker(t *testing.T, w *ActivityWorker) (context.CancelFunc, <-chan struct{}) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return cancel, done
}

func TestActivityWorker_PublishesInOrderAndBatches(t *testing.T) {
	pub := &fakePublisher{}
	w := NewActivityWorker(pub, 64, 10, nil)
	for i := 0; i < 25; i++ {
		w.Enqueue(event(i))
	}

	cancel, done := runWorker(t, w)
	require.Eventually(t, func() bool { return len(pub.published()) == 25 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	got := pub.published()
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("p%d", i), e.PostID)
	}
	assert.LessOrEqual(t, pub.maxBatch(), 10)
}

func TestActivityWorker_FlushesOnShutdown(t *testing.T) {
	pub := &fakePublisher{}
	w := NewActivityWorker(pub, 16, 4, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 9; i++ {
		w.Enqueue(event(i))
	}
	w.Run(ctx)

	assert.Len(t, pub.published(), 9)
	assert.LessOrEqual(t, pub.maxBatch(), 4)
}

func TestActivityWorker_DropsWhenFull(t *testing.T) {
	pub := &fakePublisher{}
	w := NewActivityWorker(pub, 2, 10, nil)
	before := testutil.ToFloat64(metrics.ActivityDropped)

	w.Enqueue(event(1))
	w.Enqueue(event(2))
	w.Enqueue(event(3))

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActivityDropped))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Run(ctx)
	assert.Len(t, pub.published(), 2)
}

func TestActivityWorker_KeepsRunningAfterPublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("redis down")}
	w := NewActivityWorker(pub, 8, 1, nil)

	cancel, done := runWorker(t, w)
	w.Enqueue(event(1))
	w.Enqueue(event(2))
	require.Eventually(t, func() bool { return len(pub.published()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestNewActivityWorker_Defaults(t *testing.T) {
	w := NewActivityWorker(&fakePublisher{}, 0, 0, nil)
	assert.Equal(t, defaultBatchSize, w.BatchSize)
	assert.Equal(t, defaultBufferSize, cap(w.events))
	assert.NotNil(t, w.Logger)
}
