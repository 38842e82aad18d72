package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scopecheck/scopecheck/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the repository root.
const FileName = ".scopecheck.yaml"

// YAMLLoader reads .scopecheck.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .scopecheck.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	return l.load(filepath.Join(projectPath, FileName), true)
}

// LoadFile reads an explicitly named configuration file, which must exist.
func (l *YAMLLoader) LoadFile(path string) (domain.ProjectConfig, error) {
	return l.load(path, false)
}

func (l *YAMLLoader) load(path string, optional bool) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, fmt.Errorf("reading %s: %v: %w", path, err, domain.ErrIO)
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	// Validate before merging so typos in the user's raw input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on top of defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	str(&result.SourceMarker, override.SourceMarker)
	str(&result.RulesFile, override.RulesFile)
	str(&result.ScopeFile, override.ScopeFile)
	str(&result.AnalyzerConfig, override.AnalyzerConfig)
	str(&result.WorkDir, override.WorkDir)
	str(&result.CompileDatabase, override.CompileDatabase)
	str(&result.ReportsDir, override.ReportsDir)
	str(&result.ReportJSON, override.ReportJSON)
	str(&result.ReportHTMLDir, override.ReportHTMLDir)
	str(&result.ReportHTMLEntry, override.ReportHTMLEntry)
	str(&result.Analyzer, override.Analyzer)
	str(&result.PRCLI, override.PRCLI)
	str(&result.Browser, override.Browser)
	str(&result.RepositoryURL, override.RepositoryURL)
	str(&result.Repository, override.Repository)

	if override.Jobs > 0 {
		result.Jobs = override.Jobs
	}

	// Setup has no defaults; take it as written.
	result.Setup = override.Setup

	return result
}

// Render returns cfg as YAML with a short header, for `scopecheck init`.
func Render(cfg domain.ProjectConfig) ([]byte, error) {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	header := "# scopecheck configuration\n" +
		"# Relative paths resolve against the repository root; analyzer outputs\n" +
		"# (compile_database, reports_*) resolve against work_dir.\n\n"
	return append([]byte(header), body...), nil
}
