package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/metrics"
	"github.com/like-mike/fastgpt-gateway/shared/credentials"
)

// maxLoggedBody caps how much of an upstream error body reaches the logs.
const maxLoggedBody = 512

// NewHTTPClient returns the client used for every upstream call. It sets no
// overall timeout: a hung upstream only blocks its own request.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
		},
	}
}

// Request is one outbound call, fully constructed by the caller.
type Request struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	Binding credentials.Name
	// Route names the handler that issued the call, for logs and spans.
	Route string
}

// Response is a successful (2xx) upstream reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// ContentType returns the upstream content type, defaulting to JSON.
func (r *Response) ContentType() string {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/json; charset=utf-8"
}

// UpstreamError reports a failed upstream call. Status is zero when no
// response was received.
type UpstreamError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StatusCode maps a forwarding error to the status returned to the caller:
// the upstream's error status when one was received, otherwise 500.
func StatusCode(err error) int {
	var upErr *UpstreamError
	if errors.As(err, &upErr) && upErr.Status >= http.StatusBadRequest {
		return upErr.Status
	}
	return http.StatusInternalServerError
}

// Forwarder performs upstream calls exactly as constructed: one attempt, no
// retries.
type Forwarder struct {
	client *http.Client
	logger *zap.Logger
}

// NewForwarder creates a Forwarder. A nil client selects NewHTTPClient.
func NewForwarder(client *http.Client, logger *zap.Logger) *Forwarder {
	if client == nil {
		client = NewHTTPClient()
	}
	return &Forwarder{client: client, logger: logger}
}

// Forward sends req upstream and returns the reply. Cancellation of ctx does
// not abort the call; the outcome is simply discarded by a caller that has
// gone away. Any non-2xx status is returned as *UpstreamError.
func (f *Forwarder) Forward(ctx context.Context, req *Request) (*Response, error) {
	ctx = context.WithoutCancel(ctx)
	tracer := otel.GetTracerProvider().Tracer("gateway")
	ctx, span := tracer.Start(ctx, "invoke_upstream")
	defer span.End()

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, f.fail(span, req, &UpstreamError{Err: fmt.Errorf("failed to create upstream request: %w", err)}, 0)
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	recordTracingMetadata(span, req, httpReq)

	start := time.Now()
	resp, err := f.client.Do(httpReq)
	elapsed := time.Since(start)
	metrics.UpstreamRequestDurationSeconds.WithLabelValues(string(req.Binding)).Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Int64("upstream.duration_ms", elapsed.Milliseconds()))
	if err != nil {
		return nil, f.fail(span, req, &UpstreamError{Err: err}, elapsed)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.fail(span, req, &UpstreamError{Err: fmt.Errorf("failed to read upstream response: %w", err)}, elapsed)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, f.fail(span, req, &UpstreamError{Status: resp.StatusCode, Body: respBody}, elapsed)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Binding), strconv.Itoa(resp.StatusCode)).Inc()
	f.logger.Debug("upstream request completed",
		zap.String("route", req.Route),
		zap.String("binding", string(req.Binding)),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", elapsed),
	)
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

func (f *Forwarder) fail(span trace.Span, req *Request, upErr *UpstreamError, elapsed time.Duration) error {
	metrics.UpstreamRequestsTotal.WithLabelValues(string(req.Binding), strconv.Itoa(upErr.Status)).Inc()
	span.RecordError(upErr)
	span.SetStatus(codes.Error, upErr.Error())

	fields := []zap.Field{
		zap.String("route", req.Route),
		zap.String("binding", string(req.Binding)),
		zap.String("method", req.Method),
		zap.String("url", redactQuery(req.URL)),
		zap.Duration("latency", elapsed),
		zap.Error(upErr),
	}
	if upErr.Status != 0 {
		fields = append(fields, zap.Int("upstream_status", upErr.Status))
	}
	if len(upErr.Body) > 0 {
		fields = append(fields, zap.ByteString("upstream_body", truncate(upErr.Body, maxLoggedBody)))
	}
	f.logger.Error("upstream request failed", fields...)
	return upErr
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
