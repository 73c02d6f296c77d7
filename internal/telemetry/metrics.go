package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/swingft/swiftexclude/internal/analysis"
)

// MetricsHandler records rule-evaluation counts and durations.
type MetricsHandler struct {
	ruleExecutions metric.Int64Counter
	ruleMatches    metric.Int64Counter
	ruleDuration   metric.Float64Histogram
}

// NewMetricsHandler creates the instruments on meter.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	ruleExecutions, err := meter.Int64Counter("swiftexclude.rule.executions")
	if err != nil {
		return nil, err
	}
	ruleMatches, err := meter.Int64Counter("swiftexclude.rule.matches")
	if err != nil {
		return nil, err
	}
	ruleDuration, err := meter.Float64Histogram("swiftexclude.rule.duration")
	if err != nil {
		return nil, err
	}
	return &MetricsHandler{
		ruleExecutions: ruleExecutions,
		ruleMatches:    ruleMatches,
		ruleDuration:   ruleDuration,
	}, nil
}

// Handle implements analysis.EventHandler.
func (h *MetricsHandler) Handle(e analysis.Event) {
	if e.Kind != analysis.EventRuleFinished {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("rule_id", e.RuleID))

	h.ruleExecutions.Add(ctx, 1, attrs)
	h.ruleMatches.Add(ctx, int64(e.Matched), attrs)
	h.ruleDuration.Record(ctx, e.Elapsed.Seconds(), attrs)
}
