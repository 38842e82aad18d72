package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/scope"
)

// ScopeService resolves the change set, filters it and writes the analyzer's
// scope descriptor: resolve -> load rules -> filter -> materialize.
type ScopeService struct {
	resolver domain.ChangeResolver
	rules    domain.RulesLoader
	writer   domain.ScopeWriter
	log      *slog.Logger
}

func NewScopeService(
	resolver domain.ChangeResolver,
	rules domain.RulesLoader,
	writer domain.ScopeWriter,
	log *slog.Logger,
) *ScopeService {
	return &ScopeService{
		resolver: resolver,
		rules:    rules,
		writer:   writer,
		log:      log,
	}
}

// ScopeResult is the outcome of scope resolution.
type ScopeResult struct {
	Changes domain.ChangeSet `json:"changes"`
	Scope   domain.Scope     `json:"scope"`
}

// Resolve computes the scope without touching the filesystem beyond reading
// the rules file.
func (s *ScopeService) Resolve(ctx context.Context, ref string, cfg domain.ProjectConfig, layout domain.Layout) (*ScopeResult, error) {
	changes, err := s.resolver.Changes(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.log.Debug("resolved change set", "source", changes.Source, "ref", ref, "files", changes.Len())

	rules, err := s.rules.Load(layout.RulesFile)
	if err != nil {
		return nil, err
	}

	sc, err := scope.Filter(changes, rules, cfg.SourceMarker)
	if err != nil {
		return nil, err
	}
	s.log.Debug("filtered scope", "eligible", len(sc.Files), "rules", len(rules))

	return &ScopeResult{Changes: changes, Scope: sc}, nil
}

// Prepare resolves the scope and writes the scope file, bootstrapping the
// analyzer configuration on first use.
func (s *ScopeService) Prepare(ctx context.Context, ref string, cfg domain.ProjectConfig, layout domain.Layout, jobs int) (*ScopeResult, error) {
	res, err := s.Resolve(ctx, ref, cfg, layout)
	if err != nil {
		return nil, err
	}

	def := domain.DefaultAnalysisConfig(layout.ScopeFile, jobs)
	if err := s.writer.Materialize(res.Scope, layout.ScopeFile, layout.AnalyzerConfig, def); err != nil {
		return nil, fmt.Errorf("materializing scope: %w", err)
	}
	s.log.Debug("wrote scope file", "path", layout.ScopeFile)

	return res, nil
}
