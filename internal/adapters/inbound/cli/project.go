package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/scopecheck/scopecheck/internal/adapters/outbound/config"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/gitinfo"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/prompt"
	"github.com/scopecheck/scopecheck/internal/adapters/outbound/vcs"
	"github.com/scopecheck/scopecheck/internal/application"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/spf13/cobra"
)

// projectFlags locate the repository and its configuration.
type projectFlags struct {
	path       string
	configFile string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Path inside the repository")
	cmd.Flags().StringVar(&f.configFile, "config", "", "Configuration file (default <root>/"+config.FileName+")")
}

func (f *projectFlags) open(requireRepo bool) (*application.Project, error) {
	return application.OpenProject(gitinfo.New(), config.New(), f.path, f.configFile, requireRepo)
}

// changeFlags select where the change set comes from.
type changeFlags struct {
	analyze string
	files   string
	patch   string
}

func (f *changeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.analyze, "analyze", "", "Compare HEAD against this ref instead of the working tree")
	cmd.Flags().StringVar(&f.files, "files", "", "Changed files, comma or whitespace separated (skips git)")
	cmd.Flags().StringVar(&f.patch, "patch", "", "Unified diff to read changed files from (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("files", "patch")
}

// needsRepo reports whether git must be consulted for the change set.
func (f *changeFlags) needsRepo() bool {
	return f.files == "" && f.patch == ""
}

func (f *changeFlags) resolver(root string, stdin io.Reader) domain.ChangeResolver {
	switch {
	case f.files != "":
		return vcs.NewFileList(f.files)
	case f.patch != "":
		return vcs.NewPatch(f.patch, stdin)
	default:
		return vcs.NewGit(root)
	}
}

func newConfirmer(cmd *cobra.Command) domain.Confirmer {
	if in, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.New(in, cmd.OutOrStdout())
	}
	return prompt.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
