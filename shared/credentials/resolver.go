// Package credentials selects the upstream bearer token and base URL that
// apply to a request.
package credentials

import (
	"context"
	"strings"

	"github.com/like-mike/fastgpt-gateway/shared/models"
)

// Name identifies one upstream API family.
type Name string

const (
	KnowledgeBase Name = "knowledge-base"
	App           Name = "app"
	Dataset       Name = "dataset"
)

// Binding is a bearer token and the base URL it is valid for.
type Binding struct {
	Name    Name
	Token   string
	BaseURL string
}

// marker maps a lowercase path substring to a binding. Order matters: the
// first marker contained in the path wins.
type marker struct {
	substr string
	name   Name
}

var markers = []marker{
	{substr: "/knowledge_base", name: KnowledgeBase},
	{substr: "/app", name: App},
}

// Resolver holds the read-only set of bindings loaded at startup.
type Resolver struct {
	bindings map[Name]Binding
}

// NewResolver builds a resolver from the configuration. Bindings missing a
// token or base URL are left out.
func NewResolver(cfg *models.Config) *Resolver {
	r := &Resolver{bindings: make(map[Name]Binding, 3)}
	r.add(KnowledgeBase, cfg.KnowledgeBase)
	r.add(App, cfg.App)
	r.add(Dataset, cfg.Dataset)
	return r
}

func (r *Resolver) add(name Name, b models.UpstreamBinding) {
	if !b.Configured() {
		return
	}
	r.bindings[name] = Binding{Name: name, Token: b.Token, BaseURL: b.BaseURL}
}

// Binding returns the named binding, if configured.
func (r *Resolver) Binding(name Name) (Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// Resolve picks the binding for a request path by marker. The dataset
// binding has no marker and is only reachable through explicit routes.
func (r *Resolver) Resolve(path string) (Binding, bool) {
	lower := strings.ToLower(path)
	for _, m := range markers {
		if strings.Contains(lower, m.substr) {
			return r.Binding(m.name)
		}
	}
	return Binding{}, false
}

type contextKey struct{}

// WithBinding returns a copy of ctx carrying the resolved binding.
func WithBinding(ctx context.Context, b Binding) context.Context {
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the binding resolved for the current request.
func FromContext(ctx context.Context) (Binding, bool) {
	b, ok := ctx.Value(contextKey{}).(Binding)
	return b, ok
}
