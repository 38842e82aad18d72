package cli

import (
	"fmt"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/report"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/tui"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/review"
	"github.com/scopecheck/scopecheck/internal/logging"
	"github.com/spf13/cobra"
)

func newReviewCmd() *cobra.Command {
	var (
		pf         projectFlags
		reportPath string
		commitSHA  string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Print the review that would be posted for a report",
		Long:  "Build the pull request review body from an existing report without posting it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.open(false)
			if err != nil {
				return err
			}
			if reportPath == "" {
				reportPath = p.Layout.ReportJSON
			}

			svc := application.NewReviewService(report.New(), nil, nil, logging.Discard())
			findings, err := svc.Evaluate(reportPath)
			if err != nil {
				return err
			}

			if len(domain.Unreviewed(findings)) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderNotice("Nothing to post: no unreviewed findings."))
				return nil
			}

			linker, err := application.ResolveLinker(gitinfo.New(), p.Config, p.Root, commitSHA)
			if err != nil {
				return err
			}
			body, err := review.BuildBody(findings, linker)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&reportPath, "report", "", "Report JSON (default from configuration)")
	cmd.Flags().StringVar(&commitSHA, "commit", "", "Commit used in permalinks (default HEAD)")

	return cmd
}
