package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	postPort "bloghub/internal/ports/post"
	userPort "bloghub/internal/ports/user"

	"github.com/gin-gonic/gin"
)

// respondError خطای سرویس را به کد HTTP تبدیل می‌کند
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, postPort.ErrInvalidPost):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in both title and content"})
	case errors.Is(err, postPort.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": postPort.ErrInvalidStatus.Error()})
	case errors.Is(err, postPort.ErrPostNotFound), errors.Is(err, postPort.ErrPostNotPublished):
		// unpublished posts look the same as missing ones to readers
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, userPort.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// notModified sets the collection ETag and reports whether the client copy
// is still current. The version must be read before the data it tags.
func notModified(c *gin.Context, version uint64) bool {
	etag := fmt.Sprintf(`"v%d"`, version)
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// queryLimit گرفتن limit از Query params با مقدار پیش‌فرض
func queryLimit(c *gin.Context, def int) (int, bool) {
	raw, ok := c.GetQuery("limit")
	if !ok || raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return limit, true
}
