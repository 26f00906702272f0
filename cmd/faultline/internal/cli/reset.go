package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/faultline/internal/session"
	"github.com/example/faultline/internal/ui"
)

var resetRepo string

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the current bisection session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := session.Delete(resetRepo); err != nil {
			return err
		}
		ui.Successf("session removed")
		return nil
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetRepo, "repo", ".", "path to the git repository")
}
