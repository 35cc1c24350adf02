package ports

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitPlan records the projects scheduled for an invocation.
	EmitPlan(ctx context.Context, projects []string)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds the settings applied by SpanOptions.
type SpanConfig struct {
	// Report asks the tracer to print a summary line when the span ends.
	Report bool
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithReport marks a span to be summarized when it ends.
func WithReport() SpanOption {
	return func(c *SpanConfig) {
		c.Report = true
	}
}
