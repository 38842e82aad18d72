package cli

import (
	"fmt"
	"runtime"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/rules"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/scopefile"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/tui"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/logging"
	"github.com/spf13/cobra"
)

func newScopeCmd() *cobra.Command {
	var (
		pf         projectFlags
		cf         changeFlags
		jsonOutput bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "scope",
		Short: "Write the analyzer scope for the changed files",
		Long: "Resolve and filter the changed files and write the analyzer's skip file, without running " +
			"the analyzer. CI workflows run this before invoking the analyzer themselves.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(cmd.ErrOrStderr(), logging.Config{Verbose: verbose})

			p, err := pf.open(cf.needsRepo())
			if err != nil {
				return err
			}

			svc := application.NewScopeService(cf.resolver(p.Root, cmd.InOrStdin()), rules.New(), scopefile.New(), log)
			sr, err := svc.Prepare(cmd.Context(), cf.analyze, p.Config, p.Layout, p.Config.EffectiveJobs(runtime.NumCPU()))
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderJSON(cmd, sr)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderScope(sr.Changes, sr.Scope, ""))
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderNotice("wrote "+p.Layout.ScopeFile))
			return nil
		},
	}

	pf.register(cmd)
	cf.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details")

	return cmd
}
