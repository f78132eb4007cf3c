package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/auth"
	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// AuthRequired verifies the bearer token and stores the caller's id and
// role on the context for RequireRoles and the handlers.
func AuthRequired(tokens auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Set(userRoleKey, claims.Role)
		c.Next()
	}
}

// Caller returns the authenticated identity set by AuthRequired.
func Caller(c *gin.Context) domain.RequestContext {
	return domain.RequestContext{
		UserID:    c.GetString(userIDKey),
		Role:      c.GetString(userRoleKey),
		RequestID: GetRequestID(c),
	}
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
