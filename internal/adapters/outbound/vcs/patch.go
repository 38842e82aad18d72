package vcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/scopecheck/scopecheck/internal/domain"
)

const devNull = "/dev/null"

// PatchResolver reads a unified diff, such as the output of `gh pr diff`, and
// reports the files it touches. Deleted files are skipped.
type PatchResolver struct {
	path  string
	stdin io.Reader
}

// NewPatch reads the diff from path, or from stdin when path is "-".
func NewPatch(path string, stdin io.Reader) *PatchResolver {
	return &PatchResolver{path: path, stdin: stdin}
}

func (p *PatchResolver) Changes(_ context.Context, comparisonRef string) (domain.ChangeSet, error) {
	r := p.stdin
	if p.path != "-" {
		f, err := os.Open(p.path)
		if err != nil {
			return domain.ChangeSet{}, fmt.Errorf("opening patch %s: %v: %w", p.path, err, domain.ErrIO)
		}
		defer f.Close()
		r = f
	}

	fileDiffs, err := diff.NewMultiFileDiffReader(r).ReadAllFiles()
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("parsing patch %s: %v: %w", p.path, err, domain.ErrVCS)
	}

	var files []string
	seen := make(map[string]bool)
	for _, fd := range fileDiffs {
		name := stripSide(fd.NewName, "b/")
		if name == "" || name == devNull {
			continue
		}
		if !seen[name] {
			seen[name] = true
			files = append(files, name)
		}
	}
	if len(files) == 0 {
		return domain.ChangeSet{}, fmt.Errorf("patch %s: %w", p.path, domain.ErrEmptyChangeSet)
	}
	return domain.NewChangeSet(domain.SourcePatch, comparisonRef, files), nil
}

func stripSide(name, prefix string) string {
	name = strings.TrimSpace(name)
	if name == devNull {
		return name
	}
	return strings.TrimPrefix(name, prefix)
}
