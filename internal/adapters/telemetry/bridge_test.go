package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.trai.ch/same-cargo/internal/adapters/telemetry"
	"go.trai.ch/same-cargo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestBridge_ReportsMarkedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(log)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })
	tracer := tp.Tracer("test")

	var got string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) { got = msg }).Times(1)

	_, span := tracer.Start(t.Context(), "test-app")
	span.SetAttributes(attribute.Bool(telemetry.ReportAttribute, true))
	span.End()

	assert.Contains(t, got, "✓ test-app finished in")
}

func TestBridge_ReportsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(log)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	var got string
	log.EXPECT().Warn(gomock.Any()).Do(func(msg string) { got = msg }).Times(1)

	_, span := tp.Tracer("test").Start(t.Context(), "worker")
	span.SetAttributes(attribute.Bool(telemetry.ReportAttribute, true))
	span.RecordError(errors.New("boom"))
	span.SetStatus(codes.Error, "boom")
	span.End()

	assert.Contains(t, got, "worker failed after")
}

func TestBridge_IgnoresUnmarkedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	tp := telemetry.NewProvider(log)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	_, span := tp.Tracer("test").Start(t.Context(), "quiet")
	span.End()
}

func TestBridge_NilLogger(t *testing.T) {
	tp := telemetry.NewProvider(nil)
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	assert.NotPanics(t, func() {
		_, span := tp.Tracer("test").Start(t.Context(), "quiet")
		span.SetAttributes(attribute.Bool(telemetry.ReportAttribute, true))
		span.End()
	})
}
