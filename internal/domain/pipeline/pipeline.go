// Package pipeline plans the external commands of an analysis run as an
// ordered list of typed steps.
package pipeline

import (
	"github.com/scopecheck/scopecheck/internal/domain"
)

// ExitPolicy says how a non-zero exit status of a step is treated.
type ExitPolicy int

const (
	// ExitRequired aborts the run on a non-zero exit.
	ExitRequired ExitPolicy = iota
	// ExitTolerated logs a non-zero exit and continues. The analyzer's
	// parse stage exits non-zero when it reports defects.
	ExitTolerated
)

func (p ExitPolicy) String() string {
	if p == ExitTolerated {
		return "tolerated"
	}
	return "required"
}

// Phase groups steps for progress output.
type Phase string

const (
	PhaseGenerate Phase = "generate"
	PhaseBuild    Phase = "build"
	PhaseAnalyze  Phase = "analyze"
	PhaseParse    Phase = "parse"
)

// Step is one external command of the pipeline.
type Step struct {
	Name   string     `json:"name"`
	Phase  Phase      `json:"phase"`
	Args   []string   `json:"args"`
	Dir    string     `json:"dir"`
	Policy ExitPolicy `json:"policy"`
}

// SetupMode selects whether generated code and the compile database are rebuilt.
type SetupMode int

const (
	Incremental SetupMode = iota
	FullSetup
)

func (m SetupMode) String() string {
	if m == FullSetup {
		return "full-setup"
	}
	return "incremental"
}

// Exists reports whether a path is present on disk.
type Exists func(path string) bool

// ChooseSetup returns FullSetup when forced or when an artifact the
// incremental run depends on is missing.
func ChooseSetup(force bool, layout domain.Layout, exists Exists) SetupMode {
	if force {
		return FullSetup
	}
	if !exists(layout.CompileDatabase) {
		return FullSetup
	}
	if layout.GeneratedDir != "" && !exists(layout.GeneratedDir) {
		return FullSetup
	}
	return Incremental
}

// Plan builds the ordered step list for a run.
func Plan(mode domain.ExecutionMode, setup SetupMode, cfg domain.ProjectConfig, layout domain.Layout, jobs int) []Step {
	var steps []Step

	if setup == FullSetup {
		for _, argv := range cfg.Setup.Generate {
			steps = append(steps, Step{
				Name:   "generate " + argv[0],
				Phase:  PhaseGenerate,
				Args:   argv,
				Dir:    layout.Root,
				Policy: ExitRequired,
			})
		}
		for _, argv := range cfg.Setup.PreBuild {
			steps = append(steps, Step{
				Name:   "pre-build " + argv[0],
				Phase:  PhaseBuild,
				Args:   argv,
				Dir:    layout.WorkDir,
				Policy: ExitRequired,
			})
		}
		steps = append(steps, Step{
			Name:  "log build",
			Phase: PhaseBuild,
			Args: []string{cfg.Analyzer, "log",
				"--build", cfg.BuildCommand(jobs),
				"--output", layout.CompileDatabase},
			Dir:    layout.WorkDir,
			Policy: ExitRequired,
		})
	}

	steps = append(steps, Step{
		Name:  "analyze",
		Phase: PhaseAnalyze,
		Args: []string{cfg.Analyzer, "analyze", layout.CompileDatabase,
			"--output", layout.ReportsDir,
			"--config", layout.AnalyzerConfig},
		Dir:    layout.WorkDir,
		Policy: ExitRequired,
	})
	steps = append(steps, parseStep(cfg, layout, "json", layout.ReportJSON))
	if mode.Interactive() {
		steps = append(steps, parseStep(cfg, layout, "html", layout.ReportHTMLDir))
	}
	return steps
}

func parseStep(cfg domain.ProjectConfig, layout domain.Layout, format, output string) Step {
	return Step{
		Name:  "parse " + format,
		Phase: PhaseParse,
		Args: []string{cfg.Analyzer, "parse",
			"--export", format,
			"--output", output,
			layout.ReportsDir,
			"--config", layout.AnalyzerConfig},
		Dir:    layout.WorkDir,
		Policy: ExitTolerated,
	}
}
