package httpapi

import (
	"context"
	"net/http"

	"bloghub/internal/adapters/httpapi/middleware"
	postEntity "bloghub/internal/core/post"
	"bloghub/internal/core/user"
	activityPort "bloghub/internal/ports/activity"
	postPort "bloghub/internal/ports/post"
	userPort "bloghub/internal/ports/user"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	LoginUser(ctx context.Context, email, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, name, email, password string) (*userPort.LoginResponse, error)
}

type PostUseCase interface {
	SubmitPost(ctx context.Context, in postPort.SubmitPostInput, author user.Identity) error
	LikePost(ctx context.Context, id string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id string, viewer *user.Identity) (*postPort.PostDTO, error)
	ListApproved(ctx context.Context) []*postPort.PostDTO
	ListTrending(ctx context.Context, limit int) []*postPort.PostDTO
	ListByAuthor(ctx context.Context, authorID string) []*postPort.PostDTO
	AuthorStats(ctx context.Context, authorID string) postPort.AuthorStatsDTO
	Version() uint64
}

type ModerationUseCase interface {
	Moderate(ctx context.Context, id string, status postEntity.Status) (*postPort.PostDTO, error)
	ListPending(ctx context.Context) []*postPort.PostDTO
	DashboardStats(ctx context.Context) postPort.DashboardStatsDTO
	RecentlyApproved(ctx context.Context, n int) []*postPort.PostDTO
	Version() uint64
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	userUC UserUseCase,
	tokens middleware.TokenParser,
	postUC PostUseCase,
	moderationUC ModerationUseCase,
	feed activityPort.Feed,
	logger *zap.Logger,
) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	ac := NewAdminController(moderationUC, feed)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// مسیرهای ثبت‌نام و ورود بدون JWT Middleware
	auth := r.Group("/auth")
	auth.POST("/signup", uc.RegisterUser)
	auth.POST("/login", uc.LoginUser)

	// مسیرهای عمومی خواندن پست‌ها
	posts := r.Group("/posts")
	posts.GET("", pc.ListApproved)
	posts.GET("/trending", pc.ListTrending)
	posts.GET("/:id", middleware.OptionalAuthMiddleware(tokens), pc.GetPost)
	posts.POST("/:id/like", pc.LikePost)

	// مسیر ایجاد پست با JWT Middleware
	posts.POST("", middleware.JWTAuthMiddleware(tokens), pc.SubmitPost)
	r.GET("/me/posts", middleware.JWTAuthMiddleware(tokens), pc.MyPosts)

	// مسیرهای ادمین
	admin := r.Group("/admin", middleware.JWTAuthMiddleware(tokens), middleware.RequireAdmin())
	admin.GET("/pending", ac.ListPending)
	admin.GET("/stats", ac.Stats)
	admin.GET("/activity", ac.Activity)
	admin.POST("/posts/:id/approve", ac.Approve)
	admin.POST("/posts/:id/reject", ac.Reject)
	admin.PUT("/posts/:id/status", ac.SetStatus)
	return r
}
