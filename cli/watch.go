package cli

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// NewWatchCmd builds the `swiftexclude watch` command: re-run analyze on a
// cron schedule until the process is interrupted.
func NewWatchCmd() *cobra.Command {
	var rulesPath, outputPath, namesPath, cachePath, schedule string

	cmd := &cobra.Command{
		Use:   "watch <graph.json>",
		Short: "Periodically re-run analysis on a cron schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0], rulesPath, outputPath, namesPath, cachePath, schedule)
		},
	}

	cmd.Flags().StringVar(&rulesPath, "rules", "", "rule database YAML file (required)")
	cmd.Flags().StringVar(&outputPath, "output", "exclusions.json", "structured report output path")
	cmd.Flags().StringVar(&namesPath, "names", "", "optional name-only list output path")
	cmd.Flags().StringVar(&cachePath, "cache", "", "optional SQLite run cache path")
	cmd.Flags().StringVar(&schedule, "schedule", "@every 5m", "cron schedule expression for re-analysis")
	cmd.MarkFlagRequired("rules") //nolint:errcheck

	return cmd
}

func runWatch(cmd *cobra.Command, graphPath, rulesPath, outputPath, namesPath, cachePath, schedule string) error {
	c := cron.New()

	run := func() {
		if err := runAnalyze(cmd, graphPath, rulesPath, outputPath, namesPath, cachePath); err != nil {
			log.Printf("watch: analysis run failed: %v", err)
		}
	}

	if _, err := c.AddFunc(schedule, run); err != nil {
		return exitError(exitFatalInput, "invalid --schedule %q: %v", schedule, err)
	}

	log.Printf("watching %s on schedule %q (ctrl-c to stop)", graphPath, schedule)
	run()
	c.Start()
	defer c.Stop()

	<-cmd.Context().Done()
	return nil
}
