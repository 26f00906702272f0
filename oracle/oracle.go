// Package oracle provides the external-collaborator shims the core
// algorithms are driven by: subprocess-backed test oracles with
// timeout handling, and fakes for tests. The core never spawns
// processes itself; timeouts and infra failures are translated here
// into Unresolved/Skip before they reach the algorithms.
package oracle

import (
	"context"
	"errors"
	"math"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/example/faultline/differential"
	"github.com/example/faultline/domain"
)

// CommitEnv is the environment variable carrying the commit under test
// to bisect oracle commands.
const CommitEnv = "FAULTLINE_COMMIT"

// VariantEnv is the environment variable carrying the variant tag to
// sampling and functional-check commands.
const VariantEnv = "FAULTLINE_VARIANT"

// skipExitCode follows the git-bisect convention: a command exiting
// with 125 marks the commit as untestable.
const skipExitCode = 125

// CommandOracle runs a shell command as a ddmin test oracle. The
// candidate text is piped to the command's stdin. Exit 0 means Pass,
// a nonzero exit means Fail, and a timeout or spawn failure means
// Unresolved so minimization never reduces into an untested state.
type CommandOracle struct {
	// Command is run via "sh -c".
	Command string

	// Timeout bounds one invocation; zero means no timeout.
	Timeout time.Duration

	// Dir is the working directory; empty means inherit.
	Dir string
}

// Test implements ddmin.Oracle.
func (o *CommandOracle) Test(candidate string) domain.TestOutcome {
	err := o.run(candidate, nil)
	switch classifyExit(err) {
	case exitOK:
		return domain.OutcomePass
	case exitNonzero:
		return domain.OutcomeFail
	default:
		return domain.OutcomeUnresolved
	}
}

// CommandBisectOracle runs a shell command as a bisect oracle. The
// commit under test is exposed via the FAULTLINE_COMMIT environment
// variable. Exit 0 means Good, exit 125 or a timeout means Skip, and
// any other exit means Bad.
type CommandBisectOracle struct {
	Command string
	Timeout time.Duration
	Dir     string
}

// Test implements bisect.Oracle.
func (o *CommandBisectOracle) Test(id domain.CommitID) domain.BisectVerdict {
	cmd := CommandOracle{Command: o.Command, Timeout: o.Timeout, Dir: o.Dir}
	err := cmd.run("", []string{CommitEnv + "=" + string(id)})
	switch classifyExit(err) {
	case exitOK:
		return domain.VerdictGood
	case exitNonzero:
		if code, ok := exitCode(err); ok && code == skipExitCode {
			return domain.VerdictSkip
		}
		return domain.VerdictBad
	default:
		return domain.VerdictSkip
	}
}

// CommandSampler returns a SampleFunc that runs the command once per
// sample, with the variant tag in FAULTLINE_VARIANT, and reports the
// wall-clock duration in seconds. Failed or timed-out runs yield NaN,
// which the analyzer discards as an uncollected sample.
func CommandSampler(command string, timeout time.Duration, dir string) differential.SampleFunc {
	return func(variant string) float64 {
		cmd := CommandOracle{Command: command, Timeout: timeout, Dir: dir}
		start := time.Now()
		err := cmd.run("", []string{VariantEnv + "=" + variant})
		if classifyExit(err) != exitOK {
			return math.NaN()
		}
		return time.Since(start).Seconds()
	}
}

// CommandFunctionalCheck returns a FunctionalFunc backed by the
// command. Exit 0 is Pass, a timeout is Hang, and any other failure
// is Crash. WrongOutput cannot be inferred from an exit code; commands
// that diff their output should exit nonzero on mismatch.
func CommandFunctionalCheck(command string, timeout time.Duration, dir string) differential.FunctionalFunc {
	return func(variant string) domain.FunctionalOutcome {
		cmd := CommandOracle{Command: command, Timeout: timeout, Dir: dir}
		err := cmd.run("", []string{VariantEnv + "=" + variant})
		switch classifyExit(err) {
		case exitOK:
			return domain.FuncPass
		case exitTimeout:
			return domain.FuncHang
		default:
			return domain.FuncCrash
		}
	}
}

// run executes the command with the candidate on stdin and extra
// environment entries appended to the inherited environment.
func (o *CommandOracle) run(stdin string, extraEnv []string) error {
	ctx := context.Background()
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", o.Command)
	cmd.Dir = o.Dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}
	err := cmd.Run()
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return context.DeadlineExceeded
	}
	return err
}

type exitClass int

const (
	exitOK exitClass = iota
	exitNonzero
	exitTimeout
	exitInfra
)

func classifyExit(err error) exitClass {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.DeadlineExceeded):
		return exitTimeout
	default:
		if _, ok := exitCode(err); ok {
			return exitNonzero
		}
		return exitInfra
	}
}

func exitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
