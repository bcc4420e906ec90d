package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/like-mike/fastgpt-gateway/gateway/routes/proxy"
	"github.com/like-mike/fastgpt-gateway/shared/middleware"
	"github.com/like-mike/fastgpt-gateway/shared/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type hit struct {
	uri  string
	auth string
}

func setup(t *testing.T) (*gin.Engine, func() []hit) {
	t.Helper()
	var mu sync.Mutex
	var hits []hit
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, hit{uri: r.URL.RequestURI(), auth: r.Header.Get("Authorization")})
		mu.Unlock()
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"new-kb","code":200}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := &models.Config{
		Port:          "3000",
		KnowledgeBase: models.UpstreamBinding{Token: "kb-token", BaseURL: upstream.URL + "/kb"},
		App:           models.UpstreamBinding{Token: "app-token", BaseURL: upstream.URL},
		Dataset:       models.UpstreamBinding{Token: "ds-token", BaseURL: upstream.URL + "/api"},
		ShareAuth:     models.ShareAuthConfig{Token: "fastgpt", UID: "user1"},
	}
	logger := zaptest.NewLogger(t)
	r := SetupRouter(cfg, logger, proxy.NewForwarder(nil, logger), nil)

	return r, func() []hit {
		mu.Lock()
		defer mu.Unlock()
		return append([]hit(nil), hits...)
	}
}

func do(r http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r, hits := setup(t)

	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Empty(t, hits())
}

func TestRouter_Metrics(t *testing.T) {
	r, _ := setup(t)

	do(r, http.MethodGet, "/app/list", "", nil)
	w := do(r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRouter_ExplicitRouteTakesPrecedence(t *testing.T) {
	r, hits := setup(t)

	// Explicit routes use their own binding and target; the resolver is not
	// consulted.
	w := do(r, http.MethodPost, "/create-knowledge-base", `{"biography":"hi"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"knowledgeBaseId":"new-kb"}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/core/dataset/list?parentId=p", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := hits()
	require.Len(t, got, 2)
	assert.Equal(t, hit{uri: "/kb/create", auth: "Bearer kb-token"}, got[0])
	assert.Equal(t, hit{uri: "/api/core/dataset/list?parentId=p", auth: "Bearer ds-token"}, got[1])
}

func TestRouter_FallbackUnresolved(t *testing.T) {
	r, hits := setup(t)

	for _, tt := range []struct{ method, path string }{
		{http.MethodGet, "/core/dataset/list"},
		{http.MethodGet, "/search-test"},
		{http.MethodPost, "/unknown"},
		{http.MethodPost, "/create-knowledge-base/"},
	} {
		w := do(r, tt.method, tt.path, `{}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tt.path)
		assert.Equal(t, proxy.UnsupportedMessage, w.Body.String(), tt.path)
	}
	assert.Empty(t, hits())
}

func TestRouter_FallbackOverridesAuthorization(t *testing.T) {
	r, hits := setup(t)

	w := do(r, http.MethodGet, "/Knowledge_Base/list?x=1", "", http.Header{
		"Authorization": {"Bearer caller"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := hits()
	require.Len(t, got, 1)
	assert.Equal(t, hit{uri: "/kb/Knowledge_Base/list?x=1", auth: "Bearer kb-token"}, got[0])
}

func TestRouter_ShareAuth(t *testing.T) {
	r, hits := setup(t)

	w := do(r, http.MethodPost, "/shareAuth/init", `{"token":"fastgpt"}`, http.Header{
		"Content-Type": {"application/json"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"uid":"user1"}}`, w.Body.String())

	w = do(r, http.MethodPost, "/shareAuth/start", `{"token":"nope"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/shareAuth/app/list", `{"token":"fastgpt"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code, "the shareAuth tree never reaches the fallback")
	assert.Empty(t, hits())
}
