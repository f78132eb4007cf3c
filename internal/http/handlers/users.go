package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
)

// GET /api/users/me
func GetMe(c *gin.Context) {
	user, err := authService(c).Profile(c.Request.Context(), middleware.Caller(c).UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
