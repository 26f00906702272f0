package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/faultline/ddmin"
	"github.com/example/faultline/domain"
	"github.com/example/faultline/internal/ui"
	"github.com/example/faultline/oracle"
	"github.com/example/faultline/report"
)

var (
	minimizeInput   string
	minimizeUnits   string
	minimizeCommand string
	minimizeTimeout time.Duration
	minimizeOutput  string
	minimizeJSON    bool
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Shrink a failing input to a 1-minimal reproducer",
	Long: `Shrink a failing input with delta debugging (ddmin).

The oracle command receives each candidate on stdin. Exit 0 means the
failure is gone (pass), a nonzero exit means the failure reproduces,
and a timeout counts as unresolved — never as a failure — so the
reproducer can't shrink into an untested state.

The minimized input is guaranteed to still fail the oracle.

EXAMPLES:
  # Line-based minimization of a crashing program input
  faultline minimize --input crash.sql --command './db-under-test' --timeout 30s

  # Character-level minimization, writing the reproducer to a file
  faultline minimize --input poc.txt --units chars --command './target' --output minimal.txt`,
	RunE: runMinimize,
}

func init() {
	minimizeCmd.Flags().StringVar(&minimizeInput, "input", "", "file containing the failing input (required)")
	minimizeCmd.Flags().StringVar(&minimizeUnits, "units", "lines", "atomic units: lines, tokens or chars")
	minimizeCmd.Flags().StringVar(&minimizeCommand, "command", "", "oracle command, candidate on stdin (required)")
	minimizeCmd.Flags().DurationVar(&minimizeTimeout, "timeout", 0, "per-probe timeout (0 uses the config default)")
	minimizeCmd.Flags().StringVar(&minimizeOutput, "output", "", "write the minimized input to this file")
	minimizeCmd.Flags().BoolVar(&minimizeJSON, "json", false, "print the result record as JSON")
	_ = minimizeCmd.MarkFlagRequired("input")
	_ = minimizeCmd.MarkFlagRequired("command")
}

func runMinimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	timeout := minimizeTimeout
	if timeout == 0 {
		timeout = cfg.Oracle.Timeout
	}

	data, err := os.ReadFile(minimizeInput)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var candidate domain.Candidate
	switch minimizeUnits {
	case "lines":
		candidate = domain.CandidateFromLines(string(data))
	case "tokens":
		candidate = domain.CandidateFromTokens(string(data))
	case "chars":
		candidate = domain.CandidateFromChars(string(data))
	default:
		return fmt.Errorf("%w: unknown unit kind %q", domain.ErrInvalidConfig, minimizeUnits)
	}

	ctx, cancel := signalContext()
	defer cancel()
	startedAt := time.Now().UTC()

	ui.Stepf("minimizing %d %s from %s", candidate.Len(), candidate.Kind, minimizeInput)
	result, err := ddmin.New().Minimize(ctx, candidate, &oracle.CommandOracle{
		Command: minimizeCommand,
		Timeout: timeout,
	})
	if err != nil {
		// Cancellation still yields the best partial reduction.
		ui.Warnf("interrupted: %v", err)
	}

	if result.ReductionRatio == 0 && result.MinimizedSize == result.OriginalSize {
		ui.Warnf("input did not shrink (oracle may not fail on it)")
	} else {
		ui.Successf("reduced %d -> %d %s in %d oracle runs",
			result.OriginalSize, result.MinimizedSize, result.Minimized.Kind, result.TestRunCount)
	}

	if minimizeOutput != "" {
		if err := os.WriteFile(minimizeOutput, []byte(result.Minimized.Text()), 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		ui.Infof("reproducer written to %s", minimizeOutput)
	}

	if minimizeJSON {
		data, err := report.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(report.MinimizationMarkdown(result))
	}

	summary := fmt.Sprintf("%d -> %d %s", result.OriginalSize, result.MinimizedSize, result.Minimized.Kind)
	recordRun("minimize", summary, result, startedAt)
	return nil
}
