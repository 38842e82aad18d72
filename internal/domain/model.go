package domain

import (
	"encoding/json"
	"strings"
)

// ChangeSource identifies where a change set came from.
type ChangeSource string

const (
	SourceWorkingTree ChangeSource = "working-tree"
	SourceBranch      ChangeSource = "branch"
	SourceFileList    ChangeSource = "file-list"
	SourcePatch       ChangeSource = "patch"
)

// ChangeSet is the ordered list of files reported as modified for one comparison.
type ChangeSet struct {
	Files  []string     `json:"files"`
	Source ChangeSource `json:"source"`
	Ref    string       `json:"ref,omitempty"`
}

// NewChangeSet copies files so later mutation of the caller's slice cannot leak in.
func NewChangeSet(source ChangeSource, ref string, files []string) ChangeSet {
	cp := make([]string, len(files))
	copy(cp, files)
	return ChangeSet{Files: cp, Source: source, Ref: ref}
}

func (c ChangeSet) Len() int { return len(c.Files) }

// ExclusionRules are literal substring patterns. A path is excluded when any
// non-empty pattern occurs anywhere in it.
type ExclusionRules []string

// Excludes reports whether path matches any rule.
func (r ExclusionRules) Excludes(path string) bool {
	for _, p := range r {
		if p == "" {
			continue
		}
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Scope is the filtered, non-empty list of files handed to the analyzer.
type Scope struct {
	Files []string `json:"files"`
}

// AnalysisConfig holds the analyzer flags for its analyze and parse stages.
type AnalysisConfig struct {
	Analyze []string `json:"analyze"`
	Parse   []string `json:"parse"`
}

// ReviewStatus is the acknowledgment state of a finding.
type ReviewStatus string

const (
	StatusUnreviewed    ReviewStatus = "unreviewed"
	StatusConfirmed     ReviewStatus = "confirmed"
	StatusFalsePositive ReviewStatus = "false_positive"
	StatusIntentional   ReviewStatus = "intentional"
)

// Report is the analyzer's JSON export.
type Report struct {
	Reports []Finding `json:"reports"`
}

// Finding is one reported defect instance.
type Finding struct {
	CheckerName   string         `json:"checker_name"`
	Message       string         `json:"message"`
	ReviewStatus  ReviewStatus   `json:"review_status"`
	BugPathEvents []BugPathEvent `json:"bug_path_events"`
}

// UnmarshalJSON defaults a missing or empty review_status to unreviewed.
func (f *Finding) UnmarshalJSON(data []byte) error {
	type plain Finding
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.ReviewStatus == "" {
		p.ReviewStatus = StatusUnreviewed
	}
	*f = Finding(p)
	return nil
}

// Unreviewed reports whether nobody has acknowledged the finding yet.
func (f Finding) Unreviewed() bool {
	return f.ReviewStatus == StatusUnreviewed
}

// BugPathEvent is one file/line location along the trace explaining a finding.
type BugPathEvent struct {
	File EventFile `json:"file"`
	Line int       `json:"line"`
}

type EventFile struct {
	Path string `json:"path"`
}

// Unreviewed returns the findings that still need attention, in report order.
func Unreviewed(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Unreviewed() {
			out = append(out, f)
		}
	}
	return out
}
