package cli

import (
	"fmt"
	"runtime"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/browser"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/execrun"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/ghcli"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/report"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/rules"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/scopefile"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/tui"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/pipeline"
	"github.com/scopecheck/scopecheck/internal/logging"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		pf             projectFlags
		cf             changeFlags
		pullRequest    string
		commitSHA      string
		force          bool
		verbose        bool
		logJSON        bool
		assumeYes      bool
		failOnFindings bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze the changed files and surface the findings",
		Long: "Resolve the changed files, write the analyzer scope, run the analyzer and either open the " +
			"HTML report (interactive) or post the unreviewed findings to a pull request (--pr).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(cmd.ErrOrStderr(), logging.Config{Verbose: verbose, JSON: logJSON})

			p, err := pf.open(true)
			if err != nil {
				return err
			}
			opts := domain.RunOptions{
				Mode:           domain.ModeFor(pullRequest, cf.analyze),
				Verbose:        verbose,
				FullSetup:      force,
				AssumeYes:      assumeYes,
				FailOnFindings: failOnFindings,
			}

			out := cmd.OutOrStdout()
			runner := execrun.New(verbose, out, cmd.ErrOrStderr(), log)
			svc := application.NewRunService(
				application.NewScopeService(cf.resolver(p.Root, cmd.InOrStdin()), rules.New(), scopefile.New(), log),
				application.NewPipelineService(runner, log),
				application.NewReviewService(
					report.New(),
					ghcli.New(runner, p.Config.PRCLI, p.Config.Repository, p.Root),
					browser.New(p.Config.Browser),
					log,
				),
				newConfirmer(cmd),
				gitinfo.New(),
				log,
			)

			res, err := svc.Run(cmd.Context(), application.RunRequest{
				Options: opts,
				Config:  p.Config,
				Layout:  p.Layout,
				Commit:  commitSHA,
				NumCPU:  runtime.NumCPU(),
				OnScope: func(sr *application.ScopeResult, setup pipeline.SetupMode) {
					fmt.Fprint(out, tui.RenderScope(sr.Changes, sr.Scope, setup.String()))
				},
			})
			if res != nil {
				fmt.Fprint(out, tui.RenderOutcome(string(res.Outcome), len(res.Findings), res.Pending()))
			}
			return err
		},
	}

	pf.register(cmd)
	cf.register(cmd)
	cmd.Flags().StringVar(&pullRequest, "pr", "", "Pull request to review; selects CI mode")
	cmd.Flags().StringVar(&commitSHA, "commit", "", "Commit used in permalinks (default HEAD)")
	cmd.Flags().BoolVar(&force, "force", false, "Regenerate code and the compile database before analyzing")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Stream analyzer output and log debug details")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "Exit 2 when unreviewed findings remain")

	return cmd
}
