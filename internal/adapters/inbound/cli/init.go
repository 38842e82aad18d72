package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/config"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/scopefile"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/spf13/cobra"
)

const rulesHeader = "# One pattern per line. Changed files whose path contains a pattern are not analyzed.\n"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a " + config.FileName + " configuration file",
		Long: "Create " + config.FileName + " with defaults, an empty exclusion rules file and the " +
			"default analyzer configuration in the repository root.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			root, err := gitinfo.New().Root(absPath)
			if err != nil {
				root = absPath
			}

			dest := filepath.Join(root, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			cfg := domain.DefaultConfig()
			content, err := config.Render(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created %s\n", config.FileName)

			layout := cfg.Layout(root)
			created, err := writeIfAbsent(layout.RulesFile, []byte(rulesHeader))
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(out, "Created %s\n", relTo(root, layout.RulesFile))
			}

			def := domain.DefaultAnalysisConfig(layout.ScopeFile, cfg.EffectiveJobs(runtime.NumCPU()))
			created, err = scopefile.New().Bootstrap(layout.AnalyzerConfig, def)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(out, "Created %s\n", relTo(root, layout.AnalyzerConfig))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing "+config.FileName)

	return cmd
}

func writeIfAbsent(path string, data []byte) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("%s: %v: %w", path, err, domain.ErrIO)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("%s: %v: %w", path, err, domain.ErrIO)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("%s: %v: %w", path, err, domain.ErrIO)
	}
	return true, nil
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
