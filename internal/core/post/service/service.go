package postapp

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"bloghub/internal/core/activity"
	postEntity "bloghub/internal/core/post"
	"bloghub/internal/core/user"
	"bloghub/internal/metrics"
	activityPort "bloghub/internal/ports/activity"
	postPort "bloghub/internal/ports/post"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	// ExcerptLength تعداد کاراکترهای خلاصه پست
	ExcerptLength = 150
	excerptSuffix = "..."

	DefaultTrendingLimit = 3
	DefaultRecentLimit   = 5
)

// submission is what SubmitPost validates; values are trimmed first.
type submission struct {
	Title    string `validate:"required"`
	Content  string `validate:"required"`
	AuthorID string `validate:"required"`
}

type PostService struct {
	PostRepository postPort.PostRepository
	ActivityQueue  activityPort.Queue // اختیاری
	TrendingLimit  int
	Logger         *zap.Logger

	validate *validator.Validate
	now      func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	activityQueue activityPort.Queue,
	trendingLimit int,
	logger *zap.Logger,
) *PostService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if trendingLimit <= 0 {
		trendingLimit = DefaultTrendingLimit
	}
	return &PostService{
		PostRepository: postRepo,
		ActivityQueue:  activityQueue,
		TrendingLimit:  trendingLimit,
		Logger:         logger,
		validate:       validator.New(),
		now:            time.Now,
	}
}

// Excerpt خلاصه پست: ۱۵۰ کاراکتر اول محتوا به علاوه سه نقطه
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > ExcerptLength {
		runes = runes[:ExcerptLength]
	}
	return string(runes) + excerptSuffix
}

// SubmitPost ثبت پست جدید با وضعیت pending
//
// The store does not report the id it assigned, so nothing is returned on
// success; the post shows up in ListByAuthor for the author.
func (s *PostService) SubmitPost(ctx context.Context, in postPort.SubmitPostInput, author user.Identity) error {
	check := submission{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		AuthorID: strings.TrimSpace(author.ID),
	}
	if err := s.validate.StructCtx(ctx, check); err != nil {
		return fmt.Errorf("%w: %v", postPort.ErrInvalidPost, err)
	}

	snapshot := author.AuthorSnapshot()
	s.PostRepository.Create(postEntity.Draft{
		Title:   in.Title,
		Content: in.Content,
		Excerpt: Excerpt(in.Content),
		Author:  snapshot,
		Status:  postEntity.StatusPending,
		Likes:   0,
	})

	metrics.PostsSubmitted.Inc()
	s.enqueue(activity.Event{
		Kind:     activity.KindSubmitted,
		Title:    in.Title,
		AuthorID: snapshot.ID,
		Status:   postEntity.StatusPending,
		At:       s.now(),
	})
	s.Logger.Info("📝 Post submitted for review", zap.String("authorID", snapshot.ID), zap.String("title", in.Title))
	return nil
}

// Moderate تغییر وضعیت پست توسط ادمین
func (s *PostService) Moderate(ctx context.Context, id string, status postEntity.Status) (*postPort.PostDTO, error) {
	if status != postEntity.StatusApproved && status != postEntity.StatusRejected {
		return nil, postPort.ErrInvalidStatus
	}
	before, ok := s.PostRepository.FindByID(id)
	if !ok {
		return nil, postPort.ErrPostNotFound
	}

	s.PostRepository.SetStatus(id, status)

	after, ok := s.PostRepository.FindByID(id)
	if !ok {
		return nil, postPort.ErrPostNotFound
	}

	metrics.ModerationActions.WithLabelValues(string(status)).Inc()
	s.enqueue(activity.FromPost(activity.KindForStatus(status), after, after.UpdatedAt))
	s.Logger.Info("✅ Post moderated",
		zap.String("postID", id),
		zap.String("from", string(before.Status)),
		zap.String("to", string(after.Status)))
	return postPort.ToDTO(after), nil
}

// LikePost لایک یک پست منتشر شده
func (s *PostService) LikePost(ctx context.Context, id string) (*postPort.PostDTO, error) {
	p, ok := s.PostRepository.FindByID(id)
	if !ok {
		return nil, postPort.ErrPostNotFound
	}
	if p.Status != postEntity.StatusApproved {
		return nil, postPort.ErrPostNotPublished
	}

	s.PostRepository.Like(id)

	p, ok = s.PostRepository.FindByID(id)
	if !ok {
		return nil, postPort.ErrPostNotFound
	}

	metrics.PostLikes.Inc()
	s.enqueue(activity.FromPost(activity.KindLiked, p, s.now()))
	return postPort.ToDTO(p), nil
}

// GetPost returns a published post. Unpublished posts are only visible to
// admins and to their own author.
func (s *PostService) GetPost(ctx context.Context, id string, viewer *user.Identity) (*postPort.PostDTO, error) {
	p, ok := s.PostRepository.FindByID(id)
	if !ok {
		return nil, postPort.ErrPostNotFound
	}
	if p.Status != postEntity.StatusApproved && !canSeeUnpublished(viewer, p) {
		return nil, postPort.ErrPostNotPublished
	}
	return postPort.ToDTO(p), nil
}

func canSeeUnpublished(viewer *user.Identity, p postEntity.Post) bool {
	if viewer == nil {
		return false
	}
	return viewer.IsAdmin || viewer.ID == p.Author.ID
}

func (s *PostService) ListApproved(ctx context.Context) []*postPort.PostDTO {
	return postPort.ToDTOs(s.PostRepository.ListApproved())
}

// ListTrending پرطرفدارترین پست‌ها؛ limit صفر یعنی مقدار پیش‌فرض
func (s *PostService) ListTrending(ctx context.Context, limit int) []*postPort.PostDTO {
	if limit <= 0 {
		limit = s.TrendingLimit
	}
	return postPort.ToDTOs(s.PostRepository.ListTrending(limit))
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID string) []*postPort.PostDTO {
	return postPort.ToDTOs(s.PostRepository.ListByAuthor(authorID))
}

func (s *PostService) ListPending(ctx context.Context) []*postPort.PostDTO {
	return postPort.ToDTOs(s.PostRepository.ListPending())
}

// AuthorStats آمار پست‌های یک نویسنده برای صفحه پروفایل
func (s *PostService) AuthorStats(ctx context.Context, authorID string) postPort.AuthorStatsDTO {
	posts := s.PostRepository.ListByAuthor(authorID)
	stats := postPort.AuthorStatsDTO{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case postEntity.StatusApproved:
			stats.Approved++
		case postEntity.StatusPending:
			stats.Pending++
		case postEntity.StatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// DashboardStats آمار داشبورد ادمین؛ مجموع لایک فقط روی پست‌های منتشر شده
func (s *PostService) DashboardStats(ctx context.Context) postPort.DashboardStatsDTO {
	approved := s.PostRepository.ListApproved()
	stats := postPort.DashboardStatsDTO{
		Pending:   len(s.PostRepository.ListPending()),
		Published: len(approved),
	}
	for _, p := range approved {
		stats.TotalLikes += p.Likes
	}
	return stats
}

// RecentlyApproved returns the last n approved posts in collection order,
// newest first.
func (s *PostService) RecentlyApproved(ctx context.Context, n int) []*postPort.PostDTO {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	approved := s.PostRepository.ListApproved()
	if len(approved) > n {
		approved = approved[len(approved)-n:]
	}
	slices.Reverse(approved)
	return postPort.ToDTOs(approved)
}

// Version نسخه فعلی مجموعه پست‌ها
func (s *PostService) Version() uint64 {
	return s.PostRepository.Version()
}

func (s *PostService) enqueue(event activity.Event) {
	if s.ActivityQueue == nil {
		return
	}
	s.ActivityQueue.Enqueue(event)
}
