package scope

import (
	"fmt"
	"strings"

	"github.com/scopecheck/scopecheck/internal/domain"
)

const (
	includePrefix = "+*/"
	excludeAll    = "-*/*"
)

// Filter narrows a change set to the files the analyzer should look at.
// A file is kept when it contains marker past its first character and no
// exclusion rule occurs in it. Order is preserved.
func Filter(changes domain.ChangeSet, rules domain.ExclusionRules, marker string) (domain.Scope, error) {
	var kept []string
	for _, f := range changes.Files {
		if !hasMarker(f, marker) {
			continue
		}
		if rules.Excludes(f) {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return domain.Scope{}, fmt.Errorf("%d changed file(s), none eligible: %w", changes.Len(), domain.ErrEmptyScope)
	}
	return domain.Scope{Files: kept}, nil
}

func hasMarker(path, marker string) bool {
	return strings.Index(path, marker) > 0
}

// Lines renders the skip-file rules: one include per file followed by the
// catch-all exclude, which must stay last.
func Lines(s domain.Scope) []string {
	lines := make([]string, 0, len(s.Files)+1)
	for _, f := range s.Files {
		lines = append(lines, includePrefix+f)
	}
	return append(lines, excludeAll)
}

// Render returns the skip file content, newline terminated.
func Render(s domain.Scope) string {
	return strings.Join(Lines(s), "\n") + "\n"
}
