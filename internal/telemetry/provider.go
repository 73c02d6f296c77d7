package telemetry

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ProviderConfig selects how run traces are exported. An empty Endpoint
// means tracing stays local-only: no exporter is started, and
// NewTracerProvider returns a provider whose spans never leave the process.
type ProviderConfig struct {
	// Endpoint is an OTLP/HTTP collector address, e.g. "localhost:4318".
	// Read from OTEL_EXPORTER_OTLP_ENDPOINT when unset.
	Endpoint string
	Insecure bool
}

// ConfigFromEnv builds a ProviderConfig from the standard OTel environment
// variables, so collector wiring is left to the deployment environment
// rather than hard-coded.
func ConfigFromEnv() ProviderConfig {
	return ProviderConfig{
		Endpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Insecure: os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
	}
}

// NewTracerProvider starts an OTLP/HTTP span exporter against cfg.Endpoint
// and returns a TracerProvider plus a shutdown func. If cfg.Endpoint is
// empty, it returns a TracerProvider with no exporter attached (spans are
// created but never leave the process) so `swiftexclude analyze` works
// the same with or without a collector configured.
func NewTracerProvider(ctx context.Context, cfg ProviderConfig) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	if cfg.Endpoint == "" {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Shutdown, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("start otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(2*time.Second)),
	)
	return tp, tp.Shutdown, nil
}
