package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/swingft/swiftexclude/internal/ruleset"
)

// NewValidateCmd builds the `swiftexclude validate` command: load a rule
// database and report its diagnostics without running any analysis.
func NewValidateCmd() *cobra.Command {
	var format string
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate <rules.yaml>",
		Short: "Validate a rule database file without running analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], format, strict)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "diagnostic output format: text or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero if the file has any diagnostics")

	return cmd
}

func runValidate(cmd *cobra.Command, path, format string, strict bool) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path supplied by operator/CLI flag
	if err != nil {
		return exitError(exitRulesNotFound, "reading rule file: %v", err)
	}

	rules, diags, err := ruleset.Parse(data)
	if err != nil {
		return exitError(exitFatalInput, "parsing rule file: %v", err)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		printDiagnosticsJSON(out, diags)
	} else {
		printDiagnosticsText(out, diags)
	}
	fmt.Fprintf(out, "%d %s loaded, %d %s\n",
		len(rules), pluralize("rule", len(rules)),
		len(diags), pluralize("diagnostic", len(diags)))

	if ruleset.HasErrors(diags) {
		return exitError(exitValidation, "%s has %d error(s)", path, len(ruleset.Errors(diags)))
	}
	if strict && len(diags) > 0 {
		return exitError(exitValidation, "%s has %d diagnostic(s) (--strict)", path, len(diags))
	}
	return nil
}

func printDiagnosticsText(w io.Writer, diags []ruleset.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s", d.Severity, d.Message)
		if d.RuleID != "" {
			fmt.Fprintf(w, " (rule=%s)", d.RuleID)
		}
		if d.Line > 0 {
			fmt.Fprintf(w, " [line %d]", d.Line)
		}
		fmt.Fprintln(w)
	}
}

func printDiagnosticsJSON(w io.Writer, diags []ruleset.Diagnostic) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(diags)
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
