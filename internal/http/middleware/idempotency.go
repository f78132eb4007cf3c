package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/devteam-creator/hushryd-app-sub001/internal/cache"
)

const maxIdempotencyKeyLen = 128

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a request whose
// Idempotency-Key was already completed by the same caller. Keys are held
// while the first request runs; failed requests release the key so the
// client may retry. With a nil store, or when the store is unreachable,
// requests run unguarded.
func Idempotency(store cache.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if store == nil || key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			abortAuth(c, http.StatusBadRequest, "validation_error", "Idempotency-Key too long")
			return
		}
		scoped := c.GetString(userIDKey) + ":" + c.Request.Method + ":" + c.FullPath() + ":" + key

		stored, err := store.Reserve(c.Request.Context(), scoped)
		switch {
		case errors.Is(err, cache.ErrInFlight):
			abortAuth(c, http.StatusConflict, "conflict", "a request with this Idempotency-Key is still in progress")
			return
		case err != nil:
			log.WithFields(log.Fields{"request_id": GetRequestID(c), "error": err.Error()}).
				Warn("idempotency store unavailable, running request unguarded")
			c.Next()
			return
		case stored != nil:
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(stored.Status, stored.ContentType, stored.Body)
			c.Abort()
			return
		}

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		finished := false
		defer func() {
			if finished {
				return
			}
			// handler panicked; free the key before Recovery answers
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := store.Release(ctx, scoped); err != nil {
				log.WithFields(log.Fields{"request_id": GetRequestID(c), "error": err.Error()}).
					Warn("idempotency key not released after panic")
			}
		}()

		c.Next()
		finished = true

		// the request context may already be cancelled once the handler returns
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		status := rec.Status()
		if status >= 200 && status < 300 {
			err = store.Complete(ctx, scoped, cache.StoredResponse{
				Status:      status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.buf.Bytes(),
			})
		} else {
			err = store.Release(ctx, scoped)
		}
		if err != nil {
			log.WithFields(log.Fields{"request_id": GetRequestID(c), "error": err.Error()}).
				Warn("idempotency record not saved")
		}
	}
}
