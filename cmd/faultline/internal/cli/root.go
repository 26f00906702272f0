package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/faultline/internal/config"
)

var (
	configPath string
	storePath  string
)

var rootCmd = &cobra.Command{
	Use:   "faultline",
	Short: "Fault isolation and regression detection toolkit",
	Long: `faultline locates bugs: where (minimal input, boundary commit) and
whether (regression verdict, confidence score). It never decides why.

COMMANDS:
  minimize   Shrink a failing input to a 1-minimal reproducer (ddmin)
  bisect     Binary-search a commit range for the good/bad boundary
  status     Show the state of the current bisection session
  reset      Remove the current bisection session
  compare    Hypothesis-test variants for performance regressions
  calibrate  Measure the comparator's false-positive rate against itself
  score      Score a finding's confidence from four evidence axes

All test execution happens through oracle commands you supply; faultline
itself never interprets your program, it only drives the search.

EXAMPLES:
  # Minimize crash.txt down to the lines that still crash ./target
  faultline minimize --input crash.txt --command './target' --timeout 30s

  # Find the commit that broke 'make test' between v1.0 and HEAD
  faultline bisect v1.0 HEAD --command 'make test'

  # Compare two build tags for a slowdown
  faultline compare --command './bench.sh' old new`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to faultline.yaml")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "path to a sqlite run store (optional)")

	rootCmd.AddCommand(minimizeCmd)
	rootCmd.AddCommand(bisectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}
