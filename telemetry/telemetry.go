// Package telemetry collects hierarchical timings for contract operations.
//
// A collector travels in the context so the engine, the loaders and the web server
// can be instrumented without threading extra parameters:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("prepare compra_venda")
//	defer timer.End()
//
//	collector.Report(os.Stderr, output.NewStyles(os.Stderr))
package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/robinvdvleuten/contrato/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector records timed operations.
type Collector interface {
	// Start begins timing an operation. Operations started before the previous one
	// ended are nested under it.
	Start(name string) Timer

	// Report writes the collected timings to w. styles may be nil for plain text.
	Report(w io.Writer, styles *output.Styles)

	// Spans returns every finished operation in start order.
	Spans() []Span
}

// Timer tracks a single operation.
type Timer interface {
	// End stops the timer.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

// Span is a finished operation.
type Span struct {
	Name     string
	Depth    int
	Duration time.Duration
}

// WithCollector returns a context carrying collector.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector in ctx, or one that discards everything.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
