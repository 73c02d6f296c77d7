// Package telemetry adapts analysis.Event into OpenTelemetry spans and
// metrics.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/swingft/swiftexclude/internal/analysis"
)

// TracingHandler turns a run's lifecycle events into a span tree: one root
// span per run, one child span per rule evaluation.
type TracingHandler struct {
	tracer trace.Tracer

	mu        sync.Mutex
	runSpans  map[string]trace.Span
	runCtxs   map[string]context.Context
	ruleSpans map[string]trace.Span
}

// NewTracingHandler creates a handler that starts spans on tracer.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:    tracer,
		runSpans:  make(map[string]trace.Span),
		runCtxs:   make(map[string]context.Context),
		ruleSpans: make(map[string]trace.Span),
	}
}

// Handle implements analysis.EventHandler.
func (h *TracingHandler) Handle(e analysis.Event) {
	switch e.Kind {
	case analysis.EventRunStarted:
		h.handleRunStarted(e)
	case analysis.EventRuleStarted:
		h.handleRuleStarted(e)
	case analysis.EventRuleFinished:
		h.handleRuleFinished(e)
	case analysis.EventRunFinished:
		h.handleRunFinished(e)
	}
}

func (h *TracingHandler) handleRunStarted(e analysis.Event) {
	ctx, span := h.tracer.Start(context.Background(), "swiftexclude.run",
		trace.WithAttributes(attribute.String("swiftexclude.run_id", e.RunID)))

	h.mu.Lock()
	h.runSpans[e.RunID] = span
	h.runCtxs[e.RunID] = ctx
	h.mu.Unlock()
}

func (h *TracingHandler) handleRuleStarted(e analysis.Event) {
	h.mu.Lock()
	ctx, ok := h.runCtxs[e.RunID]
	h.mu.Unlock()
	if !ok {
		ctx = context.Background()
	}

	_, span := h.tracer.Start(ctx, "swiftexclude.rule",
		trace.WithAttributes(attribute.String("swiftexclude.rule_id", e.RuleID)))

	h.mu.Lock()
	h.ruleSpans[ruleSpanKey(e.RunID, e.RuleID)] = span
	h.mu.Unlock()
}

func (h *TracingHandler) handleRuleFinished(e analysis.Event) {
	key := ruleSpanKey(e.RunID, e.RuleID)

	h.mu.Lock()
	span, ok := h.ruleSpans[key]
	delete(h.ruleSpans, key)
	h.mu.Unlock()
	if !ok {
		return
	}

	span.SetAttributes(attribute.Int("swiftexclude.matched", e.Matched))
	span.End()
}

func (h *TracingHandler) handleRunFinished(e analysis.Event) {
	h.mu.Lock()
	span, ok := h.runSpans[e.RunID]
	delete(h.runSpans, e.RunID)
	delete(h.runCtxs, e.RunID)
	h.mu.Unlock()
	if !ok {
		return
	}
	span.End()
}

func ruleSpanKey(runID, ruleID string) string {
	return runID + ":" + ruleID
}
