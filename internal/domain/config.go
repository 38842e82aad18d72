package domain

import (
	"fmt"
	"path/filepath"
)

// ProjectConfig holds project-level configuration loaded from .scopecheck.yaml.
// Relative paths are resolved against the repository root, except the analyzer
// outputs, which are resolved against WorkDir.
type ProjectConfig struct {
	SourceMarker    string      `yaml:"source_marker"     json:"source_marker,omitempty"`
	RulesFile       string      `yaml:"rules_file"        json:"rules_file,omitempty"`
	ScopeFile       string      `yaml:"scope_file"        json:"scope_file,omitempty"`
	AnalyzerConfig  string      `yaml:"analyzer_config"   json:"analyzer_config,omitempty"`
	WorkDir         string      `yaml:"work_dir"          json:"work_dir,omitempty"`
	CompileDatabase string      `yaml:"compile_database"  json:"compile_database,omitempty"`
	ReportsDir      string      `yaml:"reports_dir"       json:"reports_dir,omitempty"`
	ReportJSON      string      `yaml:"report_json"       json:"report_json,omitempty"`
	ReportHTMLDir   string      `yaml:"report_html_dir"   json:"report_html_dir,omitempty"`
	ReportHTMLEntry string      `yaml:"report_html_entry" json:"report_html_entry,omitempty"`
	Analyzer        string      `yaml:"analyzer"          json:"analyzer,omitempty"`
	PRCLI           string      `yaml:"pr_cli"            json:"pr_cli,omitempty"`
	Browser         string      `yaml:"browser"           json:"browser,omitempty"`
	RepositoryURL   string      `yaml:"repository_url"    json:"repository_url,omitempty"`
	Repository      string      `yaml:"repository"        json:"repository,omitempty"`
	Jobs            int         `yaml:"jobs"              json:"jobs,omitempty"`
	Setup           SetupConfig `yaml:"setup"             json:"setup,omitempty"`
}

// SetupConfig describes the full-setup steps run before analysis: code
// generation, pre-build cleanup and the build that is logged into the
// compile-command database.
type SetupConfig struct {
	GeneratedDir string     `yaml:"generated_dir"       json:"generated_dir,omitempty"`
	Generate     [][]string `yaml:"generate,omitempty"  json:"generate,omitempty"`
	PreBuild     [][]string `yaml:"pre_build,omitempty" json:"pre_build,omitempty"`
	Build        string     `yaml:"build"               json:"build,omitempty"`
}

// DefaultConfig returns the configuration used when no .scopecheck.yaml exists.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		SourceMarker:    ".cpp",
		RulesFile:       ".scopecheck/ignores.txt",
		ScopeFile:       ".scopecheck/skipfiles",
		AnalyzerConfig:  ".scopecheck/codechecker.json",
		WorkDir:         "build",
		CompileDatabase: "compile_commands.json",
		ReportsDir:      "reports",
		ReportJSON:      "reports.json",
		ReportHTMLDir:   "reports_html",
		ReportHTMLEntry: "index.html",
		Analyzer:        "CodeChecker",
		PRCLI:           "gh",
		Browser:         "xdg-open",
	}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must be >= 0 (got %d)", c.Jobs)
	}
	for i, argv := range c.Setup.Generate {
		if len(argv) == 0 || argv[0] == "" {
			return fmt.Errorf("setup.generate[%d] must name a command", i)
		}
	}
	for i, argv := range c.Setup.PreBuild {
		if len(argv) == 0 || argv[0] == "" {
			return fmt.Errorf("setup.pre_build[%d] must name a command", i)
		}
	}
	if filepath.IsAbs(c.ReportHTMLEntry) {
		return fmt.Errorf("report_html_entry must be relative to report_html_dir (got %q)", c.ReportHTMLEntry)
	}
	return nil
}

// EffectiveJobs returns the configured parallelism hint, defaulting to two
// fewer than the available CPUs.
func (c ProjectConfig) EffectiveJobs(numCPU int) int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	if numCPU-2 < 1 {
		return 1
	}
	return numCPU - 2
}

// BuildCommand returns the build command logged into the compile database.
func (c ProjectConfig) BuildCommand(jobs int) string {
	if c.Setup.Build != "" {
		return c.Setup.Build
	}
	return fmt.Sprintf("make -j%d", jobs)
}

// Layout holds every artifact path of a run as an absolute path.
type Layout struct {
	Root            string `json:"root"`
	RulesFile       string `json:"rules_file"`
	ScopeFile       string `json:"scope_file"`
	AnalyzerConfig  string `json:"analyzer_config"`
	WorkDir         string `json:"work_dir"`
	CompileDatabase string `json:"compile_database"`
	ReportsDir      string `json:"reports_dir"`
	ReportJSON      string `json:"report_json"`
	ReportHTMLDir   string `json:"report_html_dir"`
	ReportHTMLEntry string `json:"report_html_entry"`
	GeneratedDir    string `json:"generated_dir,omitempty"`
}

// Layout resolves the configured paths against the repository root.
func (c ProjectConfig) Layout(root string) Layout {
	workDir := resolve(root, c.WorkDir)
	l := Layout{
		Root:            root,
		RulesFile:       resolve(root, c.RulesFile),
		ScopeFile:       resolve(root, c.ScopeFile),
		AnalyzerConfig:  resolve(root, c.AnalyzerConfig),
		WorkDir:         workDir,
		CompileDatabase: resolve(workDir, c.CompileDatabase),
		ReportsDir:      resolve(workDir, c.ReportsDir),
		ReportJSON:      resolve(workDir, c.ReportJSON),
		ReportHTMLDir:   resolve(workDir, c.ReportHTMLDir),
	}
	l.ReportHTMLEntry = filepath.Join(l.ReportHTMLDir, c.ReportHTMLEntry)
	if c.Setup.GeneratedDir != "" {
		l.GeneratedDir = resolve(root, c.Setup.GeneratedDir)
	}
	return l
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// DefaultAnalysisConfig returns the analyzer flags written on first run. Both
// stages read the scope file through --ignore.
func DefaultAnalysisConfig(scopeFile string, jobs int) AnalysisConfig {
	ignore := "--ignore=" + scopeFile
	return AnalysisConfig{
		Analyze: []string{
			"--disable-all",
			"--disable=alpha",
			"--disable=bugprone",
			"--disable=cert-err60-cpp",
			"--disable=clang-diagnostic",
			"--disable=google",
			"--disable=performance",
			"--disable=readability",
			"--disable=cppcoreguidelines",
			"--enable=bugprone-unchecked-optional-access",
			fmt.Sprintf("--jobs=%d", jobs),
			"--clean",
			ignore,
		},
		Parse: []string{ignore},
	}
}
