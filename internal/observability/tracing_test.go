package observability

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracer_Disabled(t *testing.T) {
	tracer, err := NewTracer(TracerConfig{ServiceName: "test", Enabled: false})
	require.NoError(t, err)

	_, span := tracer.StartSpan(context.Background(), "op")
	span.End()
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestNewTracer_EnabledWithoutExporter(t *testing.T) {
	tracer, err := NewTracer(TracerConfig{ServiceName: "test", Enabled: true, SamplingRate: 1.0})
	require.NoError(t, err)
	defer func() { _ = tracer.Shutdown(context.Background()) }()

	ctx, span := tracer.StartSpan(context.Background(), "rest.issue")
	defer span.End()

	require.True(t, span.SpanContext().IsValid())
	traceID, _ := ctx.Value(traceIDKey).(string)
	assert.Equal(t, span.SpanContext().TraceID().String(), traceID)

	header := http.Header{}
	InjectTraceContext(ctx, header)
	assert.Contains(t, header.Get("Traceparent"), traceID)
}

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()

	ctx, span := tracer.StartSpan(context.Background(), "op")
	span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.Nil(t, ctx.Value(traceIDKey))
	assert.NoError(t, tracer.Shutdown(context.Background()))
}

func TestCreateSampler(t *testing.T) {
	t.Parallel()

	assert.Contains(t, createSampler(1.0).Description(), "AlwaysOn")
	assert.Contains(t, createSampler(0).Description(), "AlwaysOff")
	assert.Contains(t, createSampler(0.5).Description(), "TraceIDRatioBased")
}
