package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/faultline/differential"
	"github.com/example/faultline/internal/ui"
	"github.com/example/faultline/oracle"
	"github.com/example/faultline/report"
)

var (
	compareCommand   string
	compareCheck     string
	compareSamples   int
	compareAlpha     float64
	compareThreshold float64
	compareTimeout   time.Duration
	compareJSON      bool
)

var compareCmd = &cobra.Command{
	Use:   "compare <variant> <variant> [variant...]",
	Short: "Hypothesis-test variants for performance regressions",
	Long: `Compare two or more ordered variants for regressions.

The sampler command runs once per timing sample with FAULTLINE_VARIANT
set to the variant tag; its wall-clock duration is the sample. Every
consecutive pair is compared independently with Welch's t-test; a
regression is declared only when the difference is both statistically
significant (p < alpha) and practically significant (slowdown above
the threshold).

With --check-command, a functional check runs first for each pair:
exit 0 is a pass, a timeout counts as a hang, any other failure as a
crash. A variant that breaks a unanimously passing baseline is
reported as a functional regression before any statistics.

EXAMPLES:
  faultline compare --command './bench.sh' v1.4 v1.5
  faultline compare --command './bench.sh' --check-command './smoke.sh' v1.4 v1.5 v1.6`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareCommand, "command", "", "sampler command, one run per sample (required)")
	compareCmd.Flags().StringVar(&compareCheck, "check-command", "", "functional check command (optional)")
	compareCmd.Flags().IntVar(&compareSamples, "samples", 0, "samples per variant (0 uses the config default)")
	compareCmd.Flags().Float64Var(&compareAlpha, "alpha", 0, "significance level (0 uses the config default)")
	compareCmd.Flags().Float64Var(&compareThreshold, "threshold", 0, "slowdown threshold (0 uses the config default)")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 0, "per-sample timeout (0 uses the config default)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print result records as JSON")
	_ = compareCmd.MarkFlagRequired("command")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dc := cfg.DifferentialConfig()
	if compareSamples > 0 {
		dc.Samples = compareSamples
	}
	if compareAlpha > 0 {
		dc.Alpha = compareAlpha
	}
	if compareThreshold > 0 {
		dc.SlowdownThreshold = compareThreshold
	}
	timeout := compareTimeout
	if timeout == 0 {
		timeout = cfg.Oracle.Timeout
	}

	analyzer := differential.New(dc)
	sampler := oracle.CommandSampler(compareCommand, timeout, "")

	ctx, cancel := signalContext()
	defer cancel()
	startedAt := time.Now().UTC()

	// Functional regressions take precedence over the statistical path.
	if compareCheck != "" {
		check := oracle.CommandFunctionalCheck(compareCheck, timeout, "")
		for i := 1; i < len(args); i++ {
			ui.Stepf("functional check %s -> %s", args[i-1], args[i])
			fr, err := analyzer.CheckFunctional(ctx, args[i-1], args[i], check)
			if err != nil {
				return err
			}
			if fr != nil {
				ui.Errorf("functional regression in %s (%s)", fr.Variant, fr.Outcome)
				fmt.Print(report.FunctionalMarkdown(fr))
				recordRun("compare", fmt.Sprintf("functional regression in %s", fr.Variant), fr, startedAt)
				return nil
			}
		}
	}

	ui.Stepf("sampling %d variants, %d samples each", len(args), dc.Samples)
	verdicts, err := analyzer.CompareSequence(ctx, args, sampler)
	if err != nil {
		return err
	}

	regressions := 0
	for i := range verdicts {
		v := &verdicts[i]
		if v.Regression {
			regressions++
			ui.Errorf("%s -> %s: %.2fx slowdown (p=%.4f, d=%.2f)",
				v.Baseline, v.Variant, v.SlowdownFactor, v.PValue, v.EffectSize)
		} else {
			ui.Successf("%s -> %s: no regression (%.2fx, p=%.4f)",
				v.Baseline, v.Variant, v.SlowdownFactor, v.PValue)
		}
		if compareJSON {
			data, err := report.JSON(v)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
		} else {
			fmt.Print(report.VerdictMarkdown(v))
		}
	}

	summary := fmt.Sprintf("%d pairs, %d regressions", len(verdicts), regressions)
	recordRun("compare", summary, verdicts, startedAt)
	return nil
}
