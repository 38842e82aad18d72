// Package execrun runs external processes for the pipeline.
package execrun

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// Runner implements domain.CommandRunner. In verbose mode child output goes
// to the configured writers; otherwise it is discarded.
type Runner struct {
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	log     *slog.Logger
}

func New(verbose bool, stdout, stderr io.Writer, log *slog.Logger) *Runner {
	return &Runner{verbose: verbose, stdout: stdout, stderr: stderr, log: log}
}

func (r *Runner) Run(ctx context.Context, c domain.Command) error {
	if len(c.Args) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	if r.verbose {
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	}
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	r.log.Debug("exec", "cmd", strings.Join(c.Args, " "), "dir", c.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.Args[0], err)
	}
	return nil
}
