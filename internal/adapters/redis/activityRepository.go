package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"bloghub/internal/core/activity"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	RecentActivityKey = "activity:recent"
	LikesRankKey      = "activity:likes"

	defaultFeedLength = 50
)

// ActivityRepositoryRedis رویدادها را در Redis نگه می‌دارد:
// یک لیست محدود از آخرین رویدادها و یک ZSET از تعداد لایک هر پست
type ActivityRepositoryRedis struct {
	Client     *redis.Client
	FeedLength int64
	Logger     *zap.Logger
}

func NewActivityRepositoryRedis(client *redis.Client, feedLength int64, logger *zap.Logger) *ActivityRepositoryRedis {
	if feedLength <= 0 {
		feedLength = defaultFeedLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityRepositoryRedis{
		Client:     client,
		FeedLength: feedLength,
		Logger:     logger,
	}
}

// Publish writes the whole batch in one pipeline.
func (r *ActivityRepositoryRedis) Publish(ctx context.Context, events []activity.Event) error {
	if len(events) == 0 {
		return nil
	}

	members, err := encodeEvents(events)
	if err != nil {
		return err
	}

	pipe := r.Client.TxPipeline()
	pipe.LPush(ctx, RecentActivityKey, members...)
	pipe.LTrim(ctx, RecentActivityKey, 0, r.FeedLength-1)
	for _, e := range events {
		if e.Kind != activity.KindLiked || e.PostID == "" {
			continue
		}
		// مقدار مطلق لایک ذخیره می‌شود تا ارسال تکراری شمارش را خراب نکند
		pipe.ZAdd(ctx, LikesRankKey, &redis.Z{
			Score:  float64(e.Likes),
			Member: e.PostID,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error writing activity to redis: %w", err)
	}

	r.Logger.Debug("Added activity to redis", zap.Int("count", len(events)), zap.String("key", RecentActivityKey))
	return nil
}

// Recent returns up to n of the newest events, newest first.
func (r *ActivityRepositoryRedis) Recent(ctx context.Context, n int64) ([]activity.Event, error) {
	if n <= 0 {
		n = r.FeedLength
	}
	raw, err := r.Client.LRange(ctx, RecentActivityKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	events := make([]activity.Event, 0, len(raw))
	for _, item := range raw {
		var e activity.Event
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			r.Logger.Warn("⚠️ Skipping malformed activity entry", zap.Error(err))
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// encodeEvents returns JSON members ordered so that LPUSH leaves the
// newest event at the head of the list.
func encodeEvents(events []activity.Event) ([]interface{}, error) {
	members := make([]interface{}, 0, len(events))
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode activity event: %w", err)
		}
		members = append(members, string(b))
	}
	return members, nil
}
