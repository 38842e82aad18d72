package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/pipeline"
	"github.com/scopecheck/scopecheck/internal/domain/review"
)

// RunService orchestrates a full run:
// scope -> confirm -> pipeline -> evaluate -> publish.
type RunService struct {
	scope    *ScopeService
	pipeline *PipelineService
	review   *ReviewService
	confirm  domain.Confirmer
	repo     domain.RepoInfo
	log      *slog.Logger
	exists   pipeline.Exists
}

func NewRunService(
	scope *ScopeService,
	pipe *PipelineService,
	rev *ReviewService,
	confirm domain.Confirmer,
	repo domain.RepoInfo,
	log *slog.Logger,
) *RunService {
	return &RunService{
		scope:    scope,
		pipeline: pipe,
		review:   rev,
		confirm:  confirm,
		repo:     repo,
		log:      log,
		exists:   fileExists,
	}
}

// WithExists replaces the filesystem probe used to pick the setup mode.
func (s *RunService) WithExists(fn pipeline.Exists) *RunService {
	s.exists = fn
	return s
}

// RunRequest holds the inputs of one run.
type RunRequest struct {
	Options domain.RunOptions
	Config  domain.ProjectConfig
	Layout  domain.Layout
	// Commit pins permalinks; HEAD is used when empty.
	Commit string
	NumCPU int
	// OnScope is called once the scope file is written, before the prompt.
	OnScope func(*ScopeResult, pipeline.SetupMode)
}

// RunResult summarizes a completed run.
type RunResult struct {
	Scope    *ScopeResult     `json:"scope"`
	Setup    string           `json:"setup"`
	Steps    []pipeline.Step  `json:"steps"`
	Findings []domain.Finding `json:"findings"`
	Outcome  Outcome          `json:"outcome"`
}

// Pending returns the number of findings nobody has acknowledged.
func (r *RunResult) Pending() int {
	return len(domain.Unreviewed(r.Findings))
}

// Run executes the pipeline. Terminal "nothing to do" conditions are returned
// as errors satisfying domain.IsTerminal.
func (s *RunService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	opts := req.Options
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	jobs := req.Config.EffectiveJobs(req.NumCPU)
	log := s.log.With("run", uuid.NewString()[:8], "mode", opts.Mode.Name())

	sr, err := s.scope.Prepare(ctx, opts.Mode.Ref(), req.Config, req.Layout, jobs)
	if err != nil {
		return nil, err
	}
	log.Info("scope ready", "changed", sr.Changes.Len(), "eligible", len(sr.Scope.Files))

	setup := pipeline.ChooseSetup(opts.FullSetup, req.Layout, s.exists)
	if req.OnScope != nil {
		req.OnScope(sr, setup)
	}

	if opts.Mode.Interactive() && !opts.AssumeYes {
		ok, err := s.confirm.Confirm(ctx, "Run the analysis on these files?")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	steps := pipeline.Plan(opts.Mode, setup, req.Config, req.Layout, jobs)
	if err := os.MkdirAll(req.Layout.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating work dir: %v: %w", err, domain.ErrIO)
	}
	if err := removeStale(req.Layout.ReportJSON); err != nil {
		return nil, err
	}
	log.Info("starting pipeline", "setup", setup, "steps", len(steps))
	if err := s.pipeline.Run(ctx, steps); err != nil {
		return nil, err
	}

	findings, err := s.review.Evaluate(req.Layout.ReportJSON)
	if err != nil {
		return nil, err
	}

	outcome, err := s.review.Publish(ctx, findings, PublishRequest{
		Mode:      opts.Mode,
		HTMLEntry: req.Layout.ReportHTMLEntry,
		Linker: func() (review.Linker, error) {
			return ResolveLinker(s.repo, req.Config, req.Layout.Root, req.Commit)
		},
	})
	if err != nil {
		return nil, err
	}

	res := &RunResult{
		Scope:    sr,
		Setup:    setup.String(),
		Steps:    steps,
		Findings: findings,
		Outcome:  outcome,
	}
	if opts.FailOnFindings && res.Pending() > 0 {
		return res, fmt.Errorf("%d unreviewed finding(s): %w", res.Pending(), domain.ErrDefectsFound)
	}
	return res, nil
}

// ResolveLinker builds the permalink generator from configuration, falling
// back to repository metadata for the commit and the web URL.
func ResolveLinker(repo domain.RepoInfo, cfg domain.ProjectConfig, root, commit string) (review.Linker, error) {
	if commit == "" {
		c, err := repo.CommitHash(root)
		if err != nil {
			return review.Linker{}, fmt.Errorf("resolving commit for links: %v: %w", err, domain.ErrVCS)
		}
		commit = c
	}
	url := cfg.RepositoryURL
	if url == "" {
		remote, err := repo.RemoteURL(root)
		if err != nil {
			return review.Linker{}, fmt.Errorf("resolving repository URL: %v: %w", err, domain.ErrVCS)
		}
		if url, err = review.WebURL(remote); err != nil {
			return review.Linker{}, fmt.Errorf("%v: %w", err, domain.ErrVCS)
		}
	}
	return review.Linker{RepoURL: url, Commit: commit, Root: root}, nil
}

func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale report %s: %v: %w", path, err, domain.ErrIO)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
