package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/faultline/bisect"
	"github.com/example/faultline/gitlog"
	"github.com/example/faultline/internal/session"
	"github.com/example/faultline/internal/ui"
	"github.com/example/faultline/oracle"
	"github.com/example/faultline/pkg/id"
	"github.com/example/faultline/report"
)

var (
	bisectRepo    string
	bisectCommand string
	bisectTimeout time.Duration
	bisectJSON    bool
)

var bisectCmd = &cobra.Command{
	Use:   "bisect <good-ref> <bad-ref>",
	Short: "Binary-search a commit range for the good/bad boundary",
	Long: `Binary-search the first-parent history between two refs for the
commit that introduced a failure.

The oracle command runs once per probed commit with FAULTLINE_COMMIT
set to the commit SHA; it is responsible for checking out or building
that commit. Exit 0 marks the commit good, exit 125 (or a timeout)
skips it as untestable, any other exit marks it bad.

Both seeds are re-tested before searching; if the oracle contradicts
them the search aborts instead of reporting a fabricated boundary.
Progress is saved to .faultline/session.json ('faultline status' to
inspect, 'faultline reset' to clean up).

EXAMPLES:
  faultline bisect v1.0 HEAD --command 'git checkout -q $FAULTLINE_COMMIT && make test'
  faultline bisect 4f3c2d1 HEAD --repo ../svc --command ./test-commit.sh --timeout 5m`,
	Args: cobra.ExactArgs(2),
	RunE: runBisect,
}

func init() {
	bisectCmd.Flags().StringVar(&bisectRepo, "repo", ".", "path to the git repository")
	bisectCmd.Flags().StringVar(&bisectCommand, "command", "", "oracle command run per commit (required)")
	bisectCmd.Flags().DurationVar(&bisectTimeout, "timeout", 0, "per-probe timeout (0 uses the config default)")
	bisectCmd.Flags().BoolVar(&bisectJSON, "json", false, "print the result record as JSON")
	_ = bisectCmd.MarkFlagRequired("command")
}

func runBisect(cmd *cobra.Command, args []string) error {
	goodRef, badRef := args[0], args[1]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	timeout := bisectTimeout
	if timeout == 0 {
		timeout = cfg.Oracle.Timeout
	}

	ui.Stepf("reading commits %s..%s from %s", goodRef, badRef, bisectRepo)
	commits, err := gitlog.Commits(bisectRepo, goodRef, badRef)
	if err != nil {
		return err
	}
	ui.Infof("%d commits in range", len(commits))

	sess := &session.Session{
		ID:          id.RunID("bisect"),
		Repository:  bisectRepo,
		GoodRef:     goodRef,
		BadRef:      badRef,
		TestCommand: bisectCommand,
		TestTimeout: timeout,
		Commits:     commits,
		Status:      session.StatusRunning,
		CreatedAt:   time.Now().UTC(),
	}
	if err := sess.Save(bisectRepo); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	startedAt := time.Now().UTC()

	good := commits[0].ID
	bad := commits[len(commits)-1].ID
	result, err := bisect.New().Bisect(ctx, commits, good, bad, &oracle.CommandBisectOracle{
		Command: bisectCommand,
		Timeout: timeout,
		Dir:     bisectRepo,
	})
	if err != nil {
		sess.Status = session.StatusFailed
		sess.Error = err.Error()
		if saveErr := sess.Save(bisectRepo); saveErr != nil {
			ui.Warnf("could not save session: %v", saveErr)
		}
		return err
	}

	sess.Status = session.StatusCompleted
	sess.Result = result
	if err := sess.Save(bisectRepo); err != nil {
		ui.Warnf("could not save session: %v", err)
	}

	ui.Successf("first bad commit: %s (%s)", result.FirstBad.ID, result.FirstBad.Subject)
	if bisectJSON {
		data, err := report.JSON(result)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	} else {
		fmt.Print(report.BisectionMarkdown(result))
	}

	summary := fmt.Sprintf("first bad %s after %d probes", result.FirstBad.ID, result.CommitsTested)
	recordRun("bisect", summary, result, startedAt)
	return nil
}
