package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	. "github.com/theographic/theodb/internal/telemetry"
	"gotest.tools/assert"
)

func TestTraceError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer(TracerName).Start(context.Background(), "lookup")
	TraceError(span, errors.New("collection angels not found"))
	span.End()

	spans := recorder.Ended()
	assert.Equal(t, len(spans), 1)
	assert.Equal(t, spans[0].Status().Code, codes.Error)
	assert.Equal(t, spans[0].Status().Description, "collection angels not found")
	assert.Equal(t, len(spans[0].Events()), 1)
	assert.Equal(t, spans[0].Events()[0].Name, "exception")
}
