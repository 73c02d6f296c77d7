package telemetry

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/swingft/swiftexclude/internal/analysis"
)

func TestTracingHandler_ProducesOneRunSpanAndOneRuleSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(nil) //nolint:errcheck

	h := NewTracingHandler(tp.Tracer("swiftexclude-test"))

	h.Handle(analysis.NewEvent(analysis.EventRunStarted, "run-1"))
	h.Handle(analysis.NewEvent(analysis.EventRuleStarted, "run-1").WithRule("R1"))
	h.Handle(analysis.NewEvent(analysis.EventRuleFinished, "run-1").WithRule("R1").WithMatched(3).WithElapsed(time.Millisecond))
	h.Handle(analysis.NewEvent(analysis.EventRunFinished, "run-1"))

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2 (run + rule)", len(spans))
	}

	var names []string
	for _, s := range spans {
		names = append(names, s.Name)
	}
	if names[0] != "swiftexclude.rule" || names[1] != "swiftexclude.run" {
		// Child spans end (and export) before their parent.
		t.Errorf("span export order = %v, want [swiftexclude.rule, swiftexclude.run]", names)
	}
}

func TestMetricsHandler_RecordsOnlyOnRuleFinished(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	h, err := NewMetricsHandler(mp.Meter("swiftexclude-test"))
	if err != nil {
		t.Fatalf("NewMetricsHandler() error = %v", err)
	}

	h.Handle(analysis.NewEvent(analysis.EventRunStarted, "run-1"))
	h.Handle(analysis.NewEvent(analysis.EventRuleFinished, "run-1").WithRule("R1").WithMatched(2))

	var data metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &data); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(data.ScopeMetrics) == 0 || len(data.ScopeMetrics[0].Metrics) == 0 {
		t.Fatal("no metrics recorded; EventRunStarted should not record but EventRuleFinished should have")
	}
}
