package domain

import "fmt"

// ExecutionMode is either InteractiveMode or CIMode. It decides whether the
// run prompts before analysis, which report formats are rendered, and where
// findings are surfaced.
type ExecutionMode interface {
	// Name is a short label used in logs.
	Name() string
	// Ref is the comparison ref; empty means the working tree.
	Ref() string
	// Interactive reports whether a developer is at the terminal.
	Interactive() bool

	isExecutionMode()
}

// InteractiveMode is a developer run at a terminal. Findings open in a browser.
type InteractiveMode struct {
	ComparisonRef string
}

func (InteractiveMode) Name() string { return "interactive" }
func (m InteractiveMode) Ref() string { return m.ComparisonRef }
func (InteractiveMode) Interactive() bool { return true }
func (InteractiveMode) isExecutionMode() {}

// CIMode is a non-interactive run for a pull request. Findings are posted
// back to the pull request as a review comment.
type CIMode struct {
	PullRequest   string
	ComparisonRef string
}

func (CIMode) Name() string { return "ci" }
func (m CIMode) Ref() string { return m.ComparisonRef }
func (CIMode) Interactive() bool { return false }
func (CIMode) isExecutionMode() {}

// ModeFor picks CIMode when a pull request identifier is given.
func ModeFor(pullRequest, comparisonRef string) ExecutionMode {
	if pullRequest != "" {
		return CIMode{PullRequest: pullRequest, ComparisonRef: comparisonRef}
	}
	return InteractiveMode{ComparisonRef: comparisonRef}
}

// RunOptions carries run-wide settings explicitly into every service.
type RunOptions struct {
	Mode           ExecutionMode
	Verbose        bool
	FullSetup      bool
	AssumeYes      bool
	FailOnFindings bool
}

// Validate rejects option combinations that cannot run.
func (o RunOptions) Validate() error {
	if o.Mode == nil {
		return fmt.Errorf("execution mode is required")
	}
	return nil
}
