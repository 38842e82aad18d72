// Package vcs resolves change sets from git, from a CI-supplied file list, or
// from a unified diff.
package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// GitResolver implements domain.ChangeResolver by running git diff.
type GitResolver struct {
	dir string
}

// NewGit creates a resolver running git in dir, normally the repository root.
func NewGit(dir string) *GitResolver {
	return &GitResolver{dir: dir}
}

// Changes lists files differing between the working tree and HEAD, or between
// HEAD and comparisonRef when one is given.
func (g *GitResolver) Changes(ctx context.Context, comparisonRef string) (domain.ChangeSet, error) {
	args := []string{"diff", "--name-only", "-z"}
	source := domain.SourceWorkingTree
	if comparisonRef != "" {
		args = append(args, comparisonRef, "HEAD")
		source = domain.SourceBranch
	} else {
		args = append(args, "HEAD")
	}

	out, err := g.output(ctx, args...)
	if err != nil {
		return domain.ChangeSet{}, err
	}

	files := splitNUL(out)
	if len(files) == 0 {
		return domain.ChangeSet{}, fmt.Errorf("git %s: %w", strings.Join(args, " "), domain.ErrEmptyChangeSet)
	}
	return domain.NewChangeSet(source, comparisonRef, files), nil
}

func (g *GitResolver) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "),
				strings.TrimSpace(string(exitErr.Stderr)), domain.ErrVCS)
		}
		return "", fmt.Errorf("git %s: %v: %w", strings.Join(args, " "), err, domain.ErrVCS)
	}
	return string(out), nil
}

// splitNUL splits -z output, which carries paths verbatim instead of
// C-quoting names with non-ASCII bytes or special characters.
func splitNUL(out string) []string {
	var files []string
	for _, name := range strings.Split(out, "\x00") {
		if name != "" {
			files = append(files, name)
		}
	}
	return files
}
