package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/report"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneFinding = `{"reports":[{"checker_name":"core.NullDereference","message":"null deref",
"review_status":"unreviewed","bug_path_events":[{"file":{"path":"/repo/src/a.cpp"},"line":42}]}]}`

func staticLinker() (review.Linker, error) {
	return review.Linker{RepoURL: "https://github.com/acme/fusion", Commit: "abc123", Root: "/repo"}, nil
}

func TestReviewService_EvaluateMissingReport(t *testing.T) {
	svc := application.NewReviewService(report.New(), &fakePoster{}, &fakeOpener{}, discard)
	_, err := svc.Evaluate(filepath.Join(t.TempDir(), "reports.json"))
	assert.ErrorIs(t, err, domain.ErrReportMissing)
}

func TestReviewService_CleanReportPublishesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	writeReport(t, path, `{"reports":[]}`)
	poster, opener := &fakePoster{}, &fakeOpener{}
	svc := application.NewReviewService(report.New(), poster, opener, discard)

	findings, err := svc.Evaluate(path)
	require.NoError(t, err)
	assert.Empty(t, findings)

	for _, mode := range []domain.ExecutionMode{domain.InteractiveMode{}, domain.CIMode{PullRequest: "7"}} {
		out, err := svc.Publish(context.Background(), findings, application.PublishRequest{Mode: mode, Linker: staticLinker})
		require.NoError(t, err)
		assert.Equal(t, application.OutcomeClean, out)
	}
	assert.Zero(t, poster.calls)
	assert.Empty(t, opener.targets)
}

func TestReviewService_PostsUnreviewedInCI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.json")
	writeReport(t, path, oneFinding)
	poster := &fakePoster{}
	svc := application.NewReviewService(report.New(), poster, &fakeOpener{}, discard)

	findings, err := svc.Evaluate(path)
	require.NoError(t, err)

	out, err := svc.Publish(context.Background(), findings, application.PublishRequest{
		Mode:   domain.CIMode{PullRequest: "7"},
		Linker: staticLinker,
	})
	require.NoError(t, err)
	assert.Equal(t, application.OutcomePosted, out)
	assert.Equal(t, "7", poster.pr)
	assert.Contains(t, poster.body, "**core.NullDereference**: null deref")
	assert.Contains(t, poster.body, "https://github.com/acme/fusion/blob/abc123/src/a.cpp#L42")
}

func TestReviewService_AcknowledgedFindingsAreNotPosted(t *testing.T) {
	poster := &fakePoster{}
	svc := application.NewReviewService(report.New(), poster, &fakeOpener{}, discard)
	findings := []domain.Finding{{CheckerName: "x", ReviewStatus: domain.StatusFalsePositive}}

	linkerCalled := false
	out, err := svc.Publish(context.Background(), findings, application.PublishRequest{
		Mode: domain.CIMode{PullRequest: "7"},
		Linker: func() (review.Linker, error) {
			linkerCalled = true
			return staticLinker()
		},
	})
	require.NoError(t, err)
	assert.Equal(t, application.OutcomeAcknowledged, out)
	assert.Zero(t, poster.calls)
	assert.False(t, linkerCalled)
}

func TestReviewService_OpensReportInteractively(t *testing.T) {
	opener := &fakeOpener{}
	svc := application.NewReviewService(report.New(), &fakePoster{}, opener, discard)
	findings := []domain.Finding{{CheckerName: "x", ReviewStatus: domain.StatusUnreviewed}}

	out, err := svc.Publish(context.Background(), findings, application.PublishRequest{
		Mode:      domain.InteractiveMode{},
		HTMLEntry: "/repo/build/reports_html/index.html",
	})
	require.NoError(t, err)
	assert.Equal(t, application.OutcomeOpened, out)
	assert.Equal(t, []string{"/repo/build/reports_html/index.html"}, opener.targets)
}

func TestReviewService_PublishFailure(t *testing.T) {
	poster := &fakePoster{err: domain.ErrPublish}
	svc := application.NewReviewService(report.New(), poster, &fakeOpener{}, discard)
	findings := []domain.Finding{{CheckerName: "x", ReviewStatus: domain.StatusUnreviewed,
		BugPathEvents: []domain.BugPathEvent{{File: domain.EventFile{Path: "/repo/a.cpp"}, Line: 1}}}}

	_, err := svc.Publish(context.Background(), findings, application.PublishRequest{
		Mode:   domain.CIMode{PullRequest: "7"},
		Linker: staticLinker,
	})
	assert.ErrorIs(t, err, domain.ErrPublish)
}
