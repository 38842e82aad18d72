// Package ghcli posts reviews through the GitHub CLI.
package ghcli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// Poster implements domain.ReviewPoster with `gh pr review --comment`.
type Poster struct {
	runner domain.CommandRunner
	bin    string
	repo   string
	dir    string
}

// New creates a poster running gh in dir, the repository root, so gh can
// resolve the pull request's repository from the checkout. repo is an
// optional owner/name passed as -R.
func New(runner domain.CommandRunner, bin, repo, dir string) *Poster {
	if bin == "" {
		bin = "gh"
	}
	return &Poster{runner: runner, bin: bin, repo: repo, dir: dir}
}

// Args returns the gh invocation for a pull request. The body is read from stdin.
func (p *Poster) Args(pullRequest string) []string {
	args := []string{p.bin, "pr", "review", pullRequest, "--comment", "--body-file", "-"}
	if p.repo != "" {
		args = append(args, "-R", p.repo)
	}
	return args
}

func (p *Poster) PostReview(ctx context.Context, pullRequest, body string) error {
	if pullRequest == "" {
		return fmt.Errorf("no pull request given: %w", domain.ErrPublish)
	}
	var stderr bytes.Buffer
	err := p.runner.Run(ctx, domain.Command{
		Args:   p.Args(pullRequest),
		Dir:    p.dir,
		Stdin:  strings.NewReader(body),
		Stderr: &stderr,
	})
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("pull request %s: %v: %s: %w", pullRequest, err, msg, domain.ErrPublish)
		}
		return fmt.Errorf("pull request %s: %v: %w", pullRequest, err, domain.ErrPublish)
	}
	return nil
}
