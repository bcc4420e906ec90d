package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/like-mike/fastgpt-gateway/shared/models"
)

func testConfig() *models.Config {
	return &models.Config{
		KnowledgeBase: models.UpstreamBinding{Token: "kb-token", BaseURL: "http://kb.local"},
		App:           models.UpstreamBinding{Token: "app-token", BaseURL: "http://app.local"},
		Dataset:       models.UpstreamBinding{Token: "ds-token", BaseURL: "http://ds.local/api"},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testConfig())

	tests := []struct {
		path string
		want Name
		ok   bool
	}{
		{path: "/knowledge_base/list", want: KnowledgeBase, ok: true},
		{path: "/api/KNOWLEDGE_BASE/detail", want: KnowledgeBase, ok: true},
		{path: "/Knowledge_Base", want: KnowledgeBase, ok: true},
		{path: "/app/chat", want: App, ok: true},
		{path: "/v1/APP/list", want: App, ok: true},
		{path: "/application/x", want: App, ok: true},
		{path: "/knowledge_base/app/mixed", want: KnowledgeBase, ok: true},
		{path: "/app/knowledge_base", want: KnowledgeBase, ok: true},
		{path: "/api/core/dataset/list", ok: false},
		{path: "/", ok: false},
		{path: "", ok: false},
		{path: "/knowledge-base", ok: false},
		{path: "/mapp", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			b, ok := r.Resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, b.Name)
			} else {
				assert.Equal(t, Binding{}, b)
			}
		})
	}
}

func TestResolve_BindingValues(t *testing.T) {
	r := NewResolver(testConfig())

	b, ok := r.Resolve("/app/x")
	require.True(t, ok)
	assert.Equal(t, Binding{Name: App, Token: "app-token", BaseURL: "http://app.local"}, b)
}

func TestResolve_UnconfiguredBindingIsUnresolved(t *testing.T) {
	cfg := testConfig()
	cfg.KnowledgeBase = models.UpstreamBinding{}
	cfg.App.Token = ""
	r := NewResolver(cfg)

	_, ok := r.Resolve("/knowledge_base/list")
	assert.False(t, ok)
	_, ok = r.Resolve("/app/chat")
	assert.False(t, ok)

	_, ok = r.Binding(Dataset)
	assert.True(t, ok)
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx)
	assert.False(t, ok)

	want := Binding{Name: App, Token: "t", BaseURL: "http://x"}
	got, ok := FromContext(WithBinding(ctx, want))
	require.True(t, ok)
	assert.Equal(t, want, got)
}
