package cli

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/faultline/differential"
	"github.com/example/faultline/internal/ui"
)

var (
	calibrateTrials      int
	calibrateSamples     int
	calibrateParallelism int
	calibrateSeed        int64
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Measure the comparator's false-positive rate against itself",
	Long: `Repeatedly compare a synthetic variant against itself and report how
often a regression is (wrongly) declared. The rate is bounded by alpha
and in practice far below it, because the slowdown gate must also
trip.

Trials run in parallel; each trial uses its own analyzer and sampler,
so no oracle is ever shared between concurrent searches.`,
	RunE: runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&calibrateTrials, "trials", 200, "number of self-comparison trials")
	calibrateCmd.Flags().IntVar(&calibrateSamples, "samples", 10, "samples per variant per trial")
	calibrateCmd.Flags().IntVar(&calibrateParallelism, "parallelism", 4, "concurrent trials")
	calibrateCmd.Flags().Int64Var(&calibrateSeed, "seed", 1, "base random seed")
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dc := cfg.DifferentialConfig()
	dc.Samples = calibrateSamples

	ctx, cancel := signalContext()
	defer cancel()

	ui.Stepf("running %d self-comparison trials (n=%d, alpha=%.2f)",
		calibrateTrials, dc.Samples, dc.Alpha)
	start := time.Now()

	var positives atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(calibrateParallelism)
	for trial := 0; trial < calibrateTrials; trial++ {
		trial := trial
		g.Go(func() error {
			// Per-trial analyzer and RNG: concurrent trials share nothing.
			analyzer := differential.New(dc)
			rng := rand.New(rand.NewSource(calibrateSeed + int64(trial)))
			sample := func(string) float64 {
				return 100 + rng.NormFloat64()*5
			}
			v, err := analyzer.Compare(ctx, "self", "self", sample)
			if err != nil {
				return err
			}
			if v.Regression {
				positives.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rate := float64(positives.Load()) / float64(calibrateTrials)
	ui.Infof("elapsed: %s", time.Since(start).Round(time.Millisecond))
	if rate <= dc.Alpha {
		ui.Successf("false positive rate %.1f%% (%d/%d), within alpha=%.0f%%",
			rate*100, positives.Load(), calibrateTrials, dc.Alpha*100)
	} else {
		ui.Warnf("false positive rate %.1f%% exceeds alpha=%.0f%%",
			rate*100, dc.Alpha*100)
	}
	return nil
}
