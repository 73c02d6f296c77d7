package cli

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/swingft/swiftexclude/internal/analysis"
	"github.com/swingft/swiftexclude/internal/report"
	"github.com/swingft/swiftexclude/internal/ruleset"
	"github.com/swingft/swiftexclude/internal/rundb"
	"github.com/swingft/swiftexclude/internal/symgraph"
	"github.com/swingft/swiftexclude/internal/telemetry"
)

// NewAnalyzeCmd builds the `swiftexclude analyze` command: load a symbol
// graph and a rule file, run the matcher, and write the exclusion report.
func NewAnalyzeCmd() *cobra.Command {
	var rulesPath, outputPath, namesPath, cachePath string

	cmd := &cobra.Command{
		Use:   "analyze <graph.json>",
		Short: "Analyze a symbol graph against a rule set and emit an exclusion list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], rulesPath, outputPath, namesPath, cachePath)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule database YAML file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "exclusions.json", "structured report output path")
	cmd.Flags().StringVar(&namesPath, "names", "", "optional name-only list output path")
	cmd.Flags().StringVar(&cachePath, "cache", "", "optional SQLite run cache path")
	cmd.MarkFlagRequired("rules") //nolint:errcheck

	return cmd
}

func runAnalyze(cmd *cobra.Command, graphPath, rulesPath, outputPath, namesPath, cachePath string) error {
	graphBytes, err := os.ReadFile(graphPath) // #nosec G304 -- path supplied by operator/CLI flag
	if err != nil {
		return exitError(exitGraphNotFound, "reading symbol graph: %v", err)
	}
	g, err := symgraph.Parse(graphBytes)
	if err != nil {
		return exitError(exitFatalInput, "parsing symbol graph: %v", err)
	}

	rulesBytes, err := os.ReadFile(rulesPath) // #nosec G304 -- path supplied by operator/CLI flag
	if err != nil {
		return exitError(exitRulesNotFound, "reading rule file: %v", err)
	}
	rules, diags, err := ruleset.Parse(rulesBytes)
	if err != nil {
		return exitError(exitFatalInput, "parsing rule file: %v", err)
	}
	for _, d := range diags {
		log.Printf("warning: [%s] %s (rule=%q line=%d)", d.Code, d.Message, d.RuleID, d.Line)
	}
	if len(rules) == 0 {
		return exitError(exitFatalInput, "zero rules loaded from %s", rulesPath)
	}

	var cache *rundb.Store
	var cacheKey string
	if cachePath != "" {
		cache, err = rundb.Open(cachePath)
		if err != nil {
			return exitError(exitFatalInput, "opening run cache: %v", err)
		}
		defer cache.Close()

		cacheKey = rundb.Key(graphBytes, rulesBytes)
		if cached, ok, err := cache.Get(cmd.Context(), cacheKey); err == nil && ok {
			log.Printf("run cache hit, skipping analysis")
			return emitCachedReport(cmd, cached, g.NodeCount(), outputPath, namesPath)
		}
	}

	logHandler := analysis.EventHandler(func(e analysis.Event) {
		if e.Kind == analysis.EventRuleFinished {
			log.Printf("rule %s matched %d symbols (%s)", e.RuleID, e.Matched, e.Elapsed)
		}
	})

	tracer := otel.Tracer("github.com/swingft/swiftexclude")
	tracingHandler := telemetry.NewTracingHandler(tracer)

	handlers := []analysis.EventHandler{logHandler, tracingHandler.Handle}
	if metricsHandler, err := telemetry.NewMetricsHandler(otel.Meter("github.com/swingft/swiftexclude")); err != nil {
		log.Printf("warning: metrics instruments unavailable: %v", err)
	} else {
		handlers = append(handlers, metricsHandler.Handle)
	}

	acc, runID := analysis.Run(g, rules, analysis.MultiEventHandler(handlers...))
	log.Printf("analysis run %s complete", runID)

	results := analysis.BuildResults(g, acc)
	rep := report.Assemble(results, g.NodeCount())

	if err := writeReport(rep, outputPath, namesPath); err != nil {
		return err
	}
	rep.PrintSummary(cmd.OutOrStdout())

	if cache != nil {
		data, err := json.Marshal(rep.Entries)
		if err == nil {
			_ = cache.Put(cmd.Context(), cacheKey, data)
		}
	}

	return nil
}

func writeReport(rep report.Report, outputPath, namesPath string) error {
	if err := rep.WriteJSON(outputPath); err != nil {
		return exitError(exitWriteFailed, "writing report: %v", err)
	}
	if namesPath != "" {
		if err := rep.WriteNameList(namesPath); err != nil {
			return exitError(exitWriteFailed, "writing name list: %v", err)
		}
	}
	return nil
}

func emitCachedReport(cmd *cobra.Command, cached []byte, totalNodes int, outputPath, namesPath string) error {
	var entries []report.Entry
	if err := json.Unmarshal(cached, &entries); err != nil {
		return exitError(exitFatalInput, "decoding cached report: %v", err)
	}
	rep := report.Report{Entries: entries, TotalNodes: totalNodes}
	if err := writeReport(rep, outputPath, namesPath); err != nil {
		return err
	}
	rep.PrintSummary(cmd.OutOrStdout())
	return nil
}
