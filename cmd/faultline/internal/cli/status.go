package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/faultline/internal/session"
	"github.com/example/faultline/internal/ui"
)

var (
	statusRepo    string
	statusVerbose bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the current bisection session",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusRepo, "repo", ".", "path to the git repository")
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "show the probe history")
}

func runStatus(cmd *cobra.Command, args []string) error {
	sess, err := session.Load(statusRepo)
	if err != nil {
		return err
	}

	ui.Headerf("Bisection %s", sess.ID)
	ui.Infof("range:   %s..%s (%d commits)", sess.GoodRef, sess.BadRef, len(sess.Commits))
	ui.Infof("command: %s", sess.TestCommand)
	ui.Infof("status:  %s", sess.Status)
	if sess.Error != "" {
		ui.Errorf("%s", sess.Error)
	}
	if sess.Result != nil {
		ui.Successf("first bad: %s (%s)", sess.Result.FirstBad.ID, sess.Result.FirstBad.Subject)
		ui.Infof("last good: %s", sess.Result.LastGood.ID)
		ui.Infof("probes:    %d", sess.Result.CommitsTested)
		if statusVerbose {
			for i, t := range sess.Result.TestResults {
				fmt.Printf("  %2d. %s  %s\n", i+1, t.Commit.ID, t.Verdict)
			}
		}
	}
	return nil
}
