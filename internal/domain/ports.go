package domain

import (
	"context"
	"io"
)

// ChangeResolver produces the change set for a comparison ref.
type ChangeResolver interface {
	Changes(ctx context.Context, comparisonRef string) (ChangeSet, error)
}

// RulesLoader reads exclusion rules from persistent storage.
type RulesLoader interface {
	Load(path string) (ExclusionRules, error)
}

// ScopeWriter materializes a scope into the analyzer's skip file and
// bootstraps the analyzer configuration when none exists yet.
type ScopeWriter interface {
	Materialize(scope Scope, scopePath, configPath string, defaultConfig AnalysisConfig) error
}

// Command is one external process invocation. Stdout and Stderr, when set,
// receive the streams regardless of the runner's verbosity.
type Command struct {
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// CommandRunner executes external processes. A non-zero exit is reported as
// an error that satisfies errors.As(err, **exec.ExitError).
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) error
}

// ReportLoader reads the analyzer's JSON report.
type ReportLoader interface {
	Load(path string) (*Report, error)
}

// ReviewPoster publishes a review body to a pull request.
type ReviewPoster interface {
	PostReview(ctx context.Context, pullRequest, body string) error
}

// ReportOpener shows a rendered report to the developer.
type ReportOpener interface {
	Open(ctx context.Context, target string) error
}

// Confirmer asks the developer whether to proceed.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// RepoInfo describes the local repository.
type RepoInfo interface {
	Root(path string) (string, error)
	CommitHash(path string) (string, error)
	RemoteURL(path string) (string, error)
}

// ConfigLoader reads the project configuration. Load falls back to defaults
// when the project has no configuration file; LoadFile requires one.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
	LoadFile(path string) (ProjectConfig, error)
}
