package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

// CredentialResolver resolves the upstream binding from the request path and
// stores it in the request context. Unresolved requests pass through
// untouched; only the fallback handler requires a binding.
func CredentialResolver(resolver *credentials.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if b, ok := resolver.Resolve(c.Request.URL.Path); ok {
			c.Request = c.Request.WithContext(credentials.WithBinding(c.Request.Context(), b))
		}
		c.Next()
	}
}
