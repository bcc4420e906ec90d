package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/like-mike/fastgpt-gateway/shared/credentials"
	"github.com/like-mike/fastgpt-gateway/shared/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_Generated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = GetRequestID(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("a", 200))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Len(t, w.Body.String(), 36)
}

func TestCredentialResolver(t *testing.T) {
	resolver := credentials.NewResolver(&models.Config{
		KnowledgeBase: models.UpstreamBinding{Token: "kb", BaseURL: "http://kb.local"},
		App:           models.UpstreamBinding{Token: "app", BaseURL: "http://app.local"},
	})

	r := gin.New()
	r.Use(CredentialResolver(resolver))
	r.NoRoute(func(c *gin.Context) {
		b, ok := credentials.FromContext(c.Request.Context())
		if !ok {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, string(b.Name)+":"+b.Token)
	})

	tests := map[string]string{
		"/Knowledge_Base/list": "knowledge-base:kb",
		"/app/detail":          "app:app",
		"/core/dataset/list":   "none",
	}
	for path, want := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Body.String(), path)
	}
}

func TestCustomLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), CustomLogger(zap.New(core)))
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/items", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, 0, logs.Len(), "health checks are not logged")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items", nil))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/items", fields["path"])
	assert.EqualValues(t, http.StatusAccepted, fields["status"])
	assert.Equal(t, "/items", fields["route"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestPrometheusMiddleware_ServesMetrics(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/metrics", MetricsHandler)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.NoRoute(func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/some/unknown/path", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{route="/ping",status="200"}`)
	assert.Contains(t, body, `http_requests_total{route="fallback",status="400"}`)
	assert.NotContains(t, body, "/some/unknown/path")
}
