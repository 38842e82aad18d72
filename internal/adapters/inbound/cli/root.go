package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/tui"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Exit statuses.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitFindings = 2
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopecheck",
		Short: "Run static analysis on what changed",
		Long: "scopecheck resolves the files changed in a working tree, branch or pull request, " +
			"restricts the analyzer to them, and surfaces the findings in a browser or as a pull request review.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newScopeCmd())
	cmd.AddCommand(newFindingsCmd())
	cmd.AddCommand(newReviewCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until completion or SIGINT. "Nothing to check"
// conditions are reported on stdout and are not errors.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Finish(os.Stdout, os.Stderr, newRootCmd().ExecuteContext(ctx))
}

// Finish prints the diagnostic for err and returns what remains an error.
func Finish(stdout, stderr io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsTerminal(err):
		fmt.Fprint(stdout, tui.RenderNotice(terminalNotice(err)))
		return nil
	case errors.Is(err, domain.ErrDefectsFound):
		fmt.Fprint(stderr, tui.RenderNotice(err.Error()))
		return err
	default:
		fmt.Fprint(stderr, tui.RenderError(err))
		return err
	}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil, domain.IsTerminal(err):
		return ExitOK
	case errors.Is(err, domain.ErrDefectsFound):
		return ExitFindings
	default:
		return ExitFailure
	}
}

func terminalNotice(err error) string {
	if errors.Is(err, domain.ErrEmptyScope) {
		return "No changes found after filtering, nothing to analyze."
	}
	return "No changes found, nothing to analyze."
}
