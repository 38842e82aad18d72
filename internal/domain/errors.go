package domain

import "errors"

// Error categories. Adapters wrap one of these with fmt.Errorf("...: %w") at
// the point of detection; the CLI inspects them with errors.Is.
var (
	ErrVCS            = errors.New("version control command failed")
	ErrEmptyChangeSet = errors.New("no changes found")
	ErrEmptyScope     = errors.New("no changes found after filtering")
	ErrIO             = errors.New("i/o error")
	ErrReportMissing  = errors.New("report not found")
	ErrReportCorrupt  = errors.New("report could not be parsed")
	ErrPublish        = errors.New("publishing review failed")
	ErrPathResolution = errors.New("path is outside the repository root")
	ErrCommand        = errors.New("external command failed")
	ErrAborted        = errors.New("aborted by user")
	ErrDefectsFound   = errors.New("defects found")
)

// IsTerminal reports whether err means "nothing to do" rather than a failure.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrEmptyChangeSet) || errors.Is(err, ErrEmptyScope)
}

