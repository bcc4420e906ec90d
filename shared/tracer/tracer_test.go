package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/like-mike/fastgpt-gateway/shared/models"
)

func TestInitTracer_NoEndpoint(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracer(ctx, models.TracingConfig{ServiceName: "fastgpt-gateway-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	assert.Same(t, tp, otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(ctx, "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().IsSampled())
}

func TestInitTracer_WithEndpoint(t *testing.T) {
	ctx := context.Background()
	// The exporter connects lazily, so an unreachable endpoint is accepted.
	tp, err := InitTracer(ctx, models.TracingConfig{Endpoint: "127.0.0.1:1", ServiceName: "fastgpt-gateway-test"})
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(ctx, 0)
	defer cancel()
	_ = tp.Shutdown(shutdownCtx)
}
