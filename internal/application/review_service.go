package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/review"
)

// Outcome says how a run's findings were surfaced.
type Outcome string

const (
	OutcomeClean        Outcome = "clean"
	OutcomeOpened       Outcome = "opened"
	OutcomePosted       Outcome = "posted"
	OutcomeAcknowledged Outcome = "acknowledged"
)

// ReviewService evaluates the analyzer report and surfaces findings.
type ReviewService struct {
	reports domain.ReportLoader
	poster  domain.ReviewPoster
	opener  domain.ReportOpener
	log     *slog.Logger
}

func NewReviewService(
	reports domain.ReportLoader,
	poster domain.ReviewPoster,
	opener domain.ReportOpener,
	log *slog.Logger,
) *ReviewService {
	return &ReviewService{
		reports: reports,
		poster:  poster,
		opener:  opener,
		log:     log,
	}
}

// Evaluate loads the report and returns its findings, possibly none.
func (s *ReviewService) Evaluate(path string) ([]domain.Finding, error) {
	r, err := s.reports.Load(path)
	if err != nil {
		return nil, err
	}
	s.log.Debug("loaded report", "path", path, "findings", len(r.Reports))
	return r.Reports, nil
}

// PublishRequest carries what Publish needs besides the findings.
type PublishRequest struct {
	Mode domain.ExecutionMode
	// HTMLEntry is opened in interactive mode.
	HTMLEntry string
	// Linker is resolved only when CI mode has something to post.
	Linker func() (review.Linker, error)
}

// Publish opens the rendered report (interactive) or posts unreviewed findings
// to the pull request (CI). Nothing happens when there are no findings.
func (s *ReviewService) Publish(ctx context.Context, findings []domain.Finding, req PublishRequest) (Outcome, error) {
	if len(findings) == 0 {
		return OutcomeClean, nil
	}

	switch m := req.Mode.(type) {
	case domain.InteractiveMode:
		if err := s.opener.Open(ctx, req.HTMLEntry); err != nil {
			return "", fmt.Errorf("opening report: %w", err)
		}
		return OutcomeOpened, nil

	case domain.CIMode:
		if len(domain.Unreviewed(findings)) == 0 {
			s.log.Info("all findings already acknowledged", "findings", len(findings))
			return OutcomeAcknowledged, nil
		}
		linker, err := req.Linker()
		if err != nil {
			return "", err
		}
		body, err := review.BuildBody(findings, linker)
		if err != nil {
			return "", err
		}
		if err := s.poster.PostReview(ctx, m.PullRequest, body); err != nil {
			return "", err
		}
		s.log.Info("posted review", "pull_request", m.PullRequest)
		return OutcomePosted, nil

	default:
		return "", fmt.Errorf("unsupported execution mode %T", req.Mode)
	}
}
