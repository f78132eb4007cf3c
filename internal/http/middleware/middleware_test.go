package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devteam-creator/hushryd-app-sub001/internal/auth"
	"github.com/devteam-creator/hushryd-app-sub001/internal/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequiredAndRoles(t *testing.T) {
	tokens := auth.NewIssuer("test-secret", time.Hour)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", AuthRequired(tokens), func(c *gin.Context) {
		rc := Caller(c)
		c.JSON(http.StatusOK, gin.H{"user": rc.UserID, "role": rc.Role})
	})
	r.POST("/rides", AuthRequired(tokens), RequireRoles("driver", "admin"), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	userTok, _ := tokens.Issue("u1", "user")
	driverTok, _ := tokens.Issue("d1", "driver")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/me", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/me", "nope", http.StatusUnauthorized},
		{"valid token", http.MethodGet, "/me", userTok, http.StatusOK},
		{"user cannot publish", http.MethodPost, "/rides", userTok, http.StatusForbidden},
		{"driver can publish", http.MethodPost, "/rides", driverTok, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "req-123" || w.Body.String() != "req-123" {
		t.Fatalf("request id not propagated: header=%q body=%q", w.Header().Get("X-Request-ID"), w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get("X-Request-ID"))
	}
}

type memoryStore struct {
	mu   sync.Mutex
	data map[string]*cache.StoredResponse
}

func (m *memoryStore) Reserve(_ context.Context, key string) (*cache.StoredResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		m.data[key] = nil
		return nil, nil
	}
	if v == nil {
		return nil, cache.ErrInFlight
	}
	return v, nil
}

func (m *memoryStore) Complete(_ context.Context, key string, resp cache.StoredResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = &resp
	return nil
}

func (m *memoryStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestIdempotencyReplaysSuccess(t *testing.T) {
	store := &memoryStore{data: map[string]*cache.StoredResponse{}}
	calls := 0
	r := gin.New()
	r.POST("/bookings", Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"id": "b1"})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set("Idempotency-Key", "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()
	if calls != 1 {
		t.Fatalf("handler ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Fatalf("replay mismatch: %d %q vs %q", second.Code, second.Body.String(), first.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("replay header missing")
	}
}

func TestIdempotencyReleasesOnFailure(t *testing.T) {
	store := &memoryStore{data: map[string]*cache.StoredResponse{}}
	calls := 0
	r := gin.New()
	r.POST("/bookings", Idempotency(store), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusConflict, gin.H{"error": "no seats"})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set("Idempotency-Key", "k1")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("failed requests should be retryable, handler ran %d times", calls)
	}
}

func TestIdempotencyInFlight(t *testing.T) {
	store := &memoryStore{data: map[string]*cache.StoredResponse{":POST:/bookings:k1": nil}}
	r := gin.New()
	r.POST("/bookings", Idempotency(store), func(c *gin.Context) {
		t.Fatalf("handler must not run while the key is held")
	})

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Idempotency-Key", "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestIdempotencyReleasesOnPanic(t *testing.T) {
	store := &memoryStore{data: map[string]*cache.StoredResponse{}}
	calls := 0
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/bookings", Idempotency(store), func(c *gin.Context) {
		calls++
		if calls == 1 {
			panic("boom")
		}
		c.JSON(http.StatusCreated, gin.H{"id": "b1"})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set("Idempotency-Key", "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 from recovery, got %d", w.Code)
	}
	if w := send(); w.Code != http.StatusCreated {
		t.Fatalf("retry after panic should run the handler, got %d", w.Code)
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times", calls)
	}
}
