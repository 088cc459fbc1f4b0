package httpapi

import (
	"net/http"

	postEntity "bloghub/internal/core/post"
	activityPort "bloghub/internal/ports/activity"

	"github.com/gin-gonic/gin"
)

const defaultActivityLimit = 20

type AdminController struct {
	mc   ModerationUseCase
	feed activityPort.Feed
}

func NewAdminController(mc ModerationUseCase, feed activityPort.Feed) *AdminController {
	return &AdminController{mc: mc, feed: feed}
}

func (ctl *AdminController) ListPending(c *gin.Context) {
	if notModified(c, ctl.mc.Version()) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": ctl.mc.ListPending(c.Request.Context())})
}

func (ctl *AdminController) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"stats":  ctl.mc.DashboardStats(ctx),
		"recent": ctl.mc.RecentlyApproved(ctx, 0),
	})
}

func (ctl *AdminController) Activity(c *gin.Context) {
	limit, ok := queryLimit(c, defaultActivityLimit)
	if !ok {
		return
	}
	if ctl.feed == nil {
		c.JSON(http.StatusOK, gin.H{"activity": []any{}})
		return
	}
	events, err := ctl.feed.Recent(c.Request.Context(), int64(limit))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": events})
}

func (ctl *AdminController) Approve(c *gin.Context) {
	ctl.moderate(c, postEntity.StatusApproved)
}

func (ctl *AdminController) Reject(c *gin.Context) {
	ctl.moderate(c, postEntity.StatusRejected)
}

// SetStatus بدنه {"status": "..."} را می‌پذیرد
func (ctl *AdminController) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	status, err := postEntity.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctl.moderate(c, status)
}

func (ctl *AdminController) moderate(c *gin.Context, status postEntity.Status) {
	res, err := ctl.mc.Moderate(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
