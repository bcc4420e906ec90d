package proxy

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/metrics"
	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

const (
	UnsupportedMessage     = "Unsupported request type."
	FallbackFailureMessage = "An error occurred while processing your request."
)

// Fallback is the catch-all stage reached only when no explicit route
// matched. It forwards the request verbatim to the binding resolved from the
// path.
type Fallback struct {
	forwarder *Forwarder
	logger    *zap.Logger
}

func NewFallback(forwarder *Forwarder, logger *zap.Logger) *Fallback {
	return &Fallback{forwarder: forwarder, logger: logger}
}

// Handler is registered with gin's NoRoute.
func (f *Fallback) Handler(c *gin.Context) {
	binding, ok := credentials.FromContext(c.Request.Context())
	if !ok {
		metrics.FallbackRejectionsTotal.Inc()
		c.String(http.StatusBadRequest, UnsupportedMessage)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		f.logger.Warn("failed to read request body", zap.Error(err))
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body) == 0 {
		body = nil
	}

	// The path is forwarded unchanged; no mount prefix is stripped.
	target := binding.BaseURL + c.Request.URL.EscapedPath()
	if q := c.Request.URL.RawQuery; q != "" {
		target += "?" + q
	}

	resp, err := f.forwarder.Forward(c.Request.Context(), &Request{
		Method:  c.Request.Method,
		URL:     target,
		Header:  OutboundHeader(c.Request.Header, binding.Token),
		Body:    body,
		Binding: binding.Name,
		Route:   "fallback",
	})
	if err != nil {
		c.String(StatusCode(err), FallbackFailureMessage)
		return
	}

	writeUpstreamResponse(c, resp.Status, resp)
}
