package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/same-cargo/internal/adapters/telemetry"
	"go.trai.ch/same-cargo/internal/core/ports"
)

func setupMonitor(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := trace.NewTracerProvider(trace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	return sr
}

func attrs(s trace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestOTelTracer_Start(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "test-app")
	span.SetAttribute("action", "build")
	span.SetAttribute("jobs", 4)
	span.SetAttribute("jobs64", int64(8))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("release", true)
	span.SetAttribute("args", []string{"build", "--bin", "test-app"})
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "test-app", spans[0].Name())

	got := attrs(spans[0])
	assert.Equal(t, "build", got["action"].AsString())
	assert.Equal(t, int64(4), got["jobs"].AsInt64())
	assert.Equal(t, int64(8), got["jobs64"].AsInt64())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0.0001)
	assert.True(t, got["release"].AsBool())
	assert.Equal(t, []string{"build", "--bin", "test-app"}, got["args"].AsStringSlice())
	assert.Equal(t, "{1}", got["other"].AsString())
	_, marked := got[telemetry.ReportAttribute]
	assert.False(t, marked)
}

func TestOTelTracer_Start_WithReport(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "test-app", ports.WithReport())
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.True(t, attrs(spans[0])[telemetry.ReportAttribute].AsBool())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(t.Context(), "test-app")
	span.RecordError(errors.New("exit status 101"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "exit status 101", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr := setupMonitor(t)
	tracer := telemetry.NewOTelTracer("test")

	// Without an active span the plan is dropped.
	tracer.EmitPlan(t.Context(), []string{"api", "worker"})
	assert.Empty(t, sr.Ended())

	ctx, root := tracer.Start(t.Context(), "run")
	tracer.EmitPlan(ctx, []string{"api", "worker"})
	root.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	require.Len(t, events[0].Attributes, 1)
	assert.Equal(t, []string{"api", "worker"}, events[0].Attributes[0].Value.AsStringSlice())
}
