package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestStartSpan_WithoutEndpointIsSafe(t *testing.T) {
	tr, err := NewTracing("worker-manager", "")
	require.NoError(t, err)
	defer tr.Shutdown()

	ctx, span := tr.StartSpan(context.Background(), "fetch-bid",
		attribute.Int64("job.key", 42))
	defer span.End()

	require.NotNil(t, span)
	assert.Equal(t, span, trace.SpanFromContext(ctx))
}

func TestStartSpan_RecordsWithCollectorConfigured(t *testing.T) {
	tr, err := NewTracing("worker-manager", "http://127.0.0.1:14268/api/traces")
	require.NoError(t, err)
	defer tr.Shutdown()

	_, span := tr.StartSpan(context.Background(), "store-analysis",
		attribute.Int64("job.key", 7),
		attribute.Int64("process.instance.key", 99),
	)
	span.End()

	assert.True(t, span.SpanContext().IsValid())
	assert.True(t, span.SpanContext().HasTraceID())
}
