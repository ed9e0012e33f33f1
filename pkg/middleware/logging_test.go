package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/user624-47/farmflow-sub000/pkg/logger"
)

func TestRequestID(t *testing.T) {
	newRouter := func() (*gin.Engine, *string) {
		var seen string
		r := gin.New()
		r.Use(RequestID())
		r.GET("/ping", func(c *gin.Context) {
			if id, ok := c.Request.Context().Value(logger.RequestIDKey).(string); ok {
				seen = id
			}
			c.Status(http.StatusOK)
		})
		return r, &seen
	}

	t.Run("incoming id is honored", func(t *testing.T) {
		router, seen := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "req-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "req-123" {
			t.Errorf("expected echoed request id, got %q", got)
		}
		if *seen != "req-123" {
			t.Errorf("expected request id on the request context, got %q", *seen)
		}
	})

	t.Run("id is generated when absent", func(t *testing.T) {
		router, seen := newRouter()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got == "" {
			t.Error("expected a generated request id on the response")
		}
		if *seen == "" {
			t.Error("expected a generated request id on the request context")
		}
	})
}

func TestRequestLogger(t *testing.T) {
	log, err := logger.New(&logger.Config{Level: "error", ServiceName: "test", OutputPath: "stderr"})
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	// the middleware must not interfere with the response in either case
	for _, tt := range []struct {
		path   string
		status int
	}{
		{"/ok", http.StatusOK},
		{"/boom", http.StatusInternalServerError},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if w.Code != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, w.Code, tt.status)
		}
	}
}
