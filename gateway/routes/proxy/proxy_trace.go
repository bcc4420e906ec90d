package proxy

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// recordTracingMetadata annotates the upstream span. The bearer token is
// never recorded.
func recordTracingMetadata(span trace.Span, req *Request, httpReq *http.Request) {
	span.SetAttributes(
		attribute.String("upstream.binding", string(req.Binding)),
		attribute.String("upstream.route", req.Route),
		attribute.String("http.method", req.Method),
		attribute.String("upstream.endpoint", redactQuery(req.URL)),
		attribute.Int("upstream.request.size_bytes", len(req.Body)),
		attribute.Bool("upstream.auth", httpReq.Header.Get("Authorization") != ""),
	)
}
