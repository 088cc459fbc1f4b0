package middleware

import (
	"net/http"
	"strings"

	"bloghub/internal/core/user"

	"github.com/gin-gonic/gin"
)

const (
	// کلیدهای context در gin
	UserIDKey   = "userID"
	IdentityKey = "identity"
)

// TokenParser توکن را اعتبارسنجی کرده و هویت کاربر را برمی‌گرداند
type TokenParser interface {
	ParseToken(token string) (user.Identity, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token.
func JWTAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}
		identity, err := tokens.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is sent
// and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := bearerToken(c); ok {
			if identity, err := tokens.ParseToken(raw); err == nil {
				setIdentity(c, identity)
			}
		}
		c.Next()
	}
}

// RequireAdmin باید بعد از JWTAuthMiddleware اجرا شود
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok || !identity.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the identity set by the auth middlewares.
func CurrentIdentity(c *gin.Context) (user.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return user.Identity{}, false
	}
	identity, ok := v.(user.Identity)
	return identity, ok
}

func setIdentity(c *gin.Context, identity user.Identity) {
	c.Set(UserIDKey, identity.ID)
	c.Set(IdentityKey, identity)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
