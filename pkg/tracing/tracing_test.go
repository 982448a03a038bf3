package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInitTracerAndShutdown(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracer(ctx, "campusbot-test", "localhost:4318")
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.NotNil(t, Tracer("test"))
	require.NoError(t, Shutdown(ctx, tp))
}

func TestTracerRecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "chat.handle")
	span.End()

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "chat.handle", spans[0].Name())
}
