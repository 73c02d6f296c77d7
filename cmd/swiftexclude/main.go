// Command swiftexclude decides which Swift/Objective-C symbols must be
// excluded from identifier obfuscation, by matching a declarative YAML
// rule set against a pre-built symbol graph.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/swingft/swiftexclude/cli"
	"github.com/swingft/swiftexclude/internal/telemetry"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var shutdownTracing func(context.Context) error
	defer func() {
		if shutdownTracing != nil {
			_ = shutdownTracing(context.Background())
		}
	}()

	rootCmd := newRootCmd(func(endpoint string) {
		cfg := telemetry.ConfigFromEnv()
		if endpoint != "" {
			cfg.Endpoint = endpoint
		}
		tp, shutdown, err := telemetry.NewTracerProvider(ctx, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "swiftexclude: telemetry setup failed, continuing without export: %v\n", err)
			return
		}
		otel.SetTracerProvider(tp)
		shutdownTracing = shutdown
	})

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Error())
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the cobra root command. setupTelemetry is invoked once
// persistent flags are parsed (in PersistentPreRunE), with the resolved
// --otlp-endpoint value, so tracing export can be configured before any
// subcommand runs.
func newRootCmd(setupTelemetry func(otlpEndpoint string)) *cobra.Command {
	var verbose, quiet bool
	var otlpEndpoint string

	rootCmd := &cobra.Command{
		Use:     "swiftexclude",
		Short:   "Decide which Swift/Objective-C symbols obfuscation must leave alone",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			setupTelemetry(otlpEndpoint)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode; mutually exclusive with --quiet (adds no extra output)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet mode; mutually exclusive with --verbose (does not suppress output)")
	rootCmd.PersistentFlags().StringVar(&otlpEndpoint, "otlp-endpoint", "", "OTLP/HTTP collector endpoint for trace export (default: $OTEL_EXPORTER_OTLP_ENDPOINT)")

	rootCmd.AddCommand(
		cli.NewAnalyzeCmd(),
		cli.NewValidateCmd(),
		cli.NewWatchCmd(),
	)

	return rootCmd
}
