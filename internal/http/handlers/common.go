package handlers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/auth"
	"github.com/devteam-creator/hushryd-app-sub001/internal/events"
)

// Deps are the process-wide collaborators handlers hand to the services
// they build per request.
type Deps struct {
	Events events.Publisher
	Tokens auth.Issuer
}

var (
	depsMu  sync.RWMutex
	current Deps
)

func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	if d.Events == nil {
		d.Events = events.NopPublisher{}
	}
	current = d
}

func deps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return current
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid JSON payload", err.Error())
		return false
	}
	return true
}
