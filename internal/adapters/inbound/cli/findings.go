package cli

import (
	"fmt"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/report"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/tui"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/logging"
	"github.com/spf13/cobra"
)

func newFindingsCmd() *cobra.Command {
	var (
		pf             projectFlags
		reportPath     string
		jsonOutput     bool
		failOnFindings bool
	)

	cmd := &cobra.Command{
		Use:   "findings",
		Short: "Summarize an existing analyzer report",
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

			if jsonOutput {
				if findings == nil {
					findings = []domain.Finding{}
				}
				if err := renderJSON(cmd, findings); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderFindings(findings))
			}

			if pending := len(domain.Unreviewed(findings)); failOnFindings && pending > 0 {
				return fmt.Errorf("%d unreviewed finding(s): %w", pending, domain.ErrDefectsFound)
			}
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&reportPath, "report", "", "Report JSON (default from configuration)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit 2 when unreviewed findings remain")

	return cmd
}
