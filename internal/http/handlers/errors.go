package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/devteam-creator/hushryd-app-sub001/internal/domain"
	"github.com/devteam-creator/hushryd-app-sub001/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	var capErr domain.InsufficientCapacityError
	var fieldErr domain.ValidationError

	switch {
	case errors.As(err, &fieldErr):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"field": fieldErr.Field})
	case domain.IsNoFields(err):
		respondError(c, http.StatusBadRequest, "no_fields", err.Error(), nil)
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.As(err, &capErr):
		respondError(c, http.StatusConflict, "insufficient_capacity", err.Error(), gin.H{
			"rideId":    capErr.RideID,
			"requested": capErr.Requested,
			"available": capErr.Available,
		})
	case domain.IsInvalidState(err):
		respondError(c, http.StatusConflict, "invalid_state", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		log.WithFields(log.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
			"error":      err.Error(),
		}).Error("unhandled error")
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
