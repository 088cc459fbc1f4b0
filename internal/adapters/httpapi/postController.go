package httpapi

import (
	"net/http"

	"bloghub/internal/adapters/httpapi/middleware"
	"bloghub/internal/core/user"
	postPort "bloghub/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

func (ctl *PostController) ListApproved(c *gin.Context) {
	if notModified(c, ctl.pc.Version()) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": ctl.pc.ListApproved(c.Request.Context())})
}

func (ctl *PostController) ListTrending(c *gin.Context) {
	// صفر یعنی مقدار پیش‌فرض سرویس
	limit, ok := queryLimit(c, 0)
	if !ok {
		return
	}
	if notModified(c, ctl.pc.Version()) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": ctl.pc.ListTrending(c.Request.Context(), limit)})
}

func (ctl *PostController) GetPost(c *gin.Context) {
	var viewer *user.Identity
	if identity, ok := middleware.CurrentIdentity(c); ok {
		viewer = &identity
	}
	res, err := ctl.pc.GetPost(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) LikePost(c *gin.Context) {
	res, err := ctl.pc.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *PostController) SubmitPost(c *gin.Context) {
	var req postPort.SubmitPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	// گرفتن هویت کاربر از context
	author, exists := middleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	if err := ctl.pc.SubmitPost(c.Request.Context(), req, author); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Your blog post has been submitted for review.",
		"status":  "pending",
	})
}

func (ctl *PostController) MyPosts(c *gin.Context) {
	author, exists := middleware.CurrentIdentity(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"posts": ctl.pc.ListByAuthor(ctx, author.ID),
		"stats": ctl.pc.AuthorStats(ctx, author.ID),
	})
}
