package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/scopecheck/scopecheck/internal/adapters/outbound/config"
	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".scopecheck.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
source_marker: .cc
work_dir: build/shell/debug
jobs: 4
repository_url: https://github.com/acme/fusion
setup:
  generated_dir: generated-code
  generate:
    - [./ws_generate.sh]
    - [./run-typegen.sh, -dev]
  pre_build:
    - [make, clean]
`)
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, ".cc", cfg.SourceMarker)
	assert.Equal(t, "build/shell/debug", cfg.WorkDir)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "https://github.com/acme/fusion", cfg.RepositoryURL)
	assert.Equal(t, [][]string{{"./ws_generate.sh"}, {"./run-typegen.sh", "-dev"}}, cfg.Setup.Generate)
	assert.Equal(t, [][]string{{"make", "clean"}}, cfg.Setup.PreBuild)
	assert.Equal(t, "generated-code", cfg.Setup.GeneratedDir)
}

func TestYAMLLoader_PartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `analyzer: /opt/codechecker/bin/CodeChecker`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/opt/codechecker/bin/CodeChecker", cfg.Analyzer)
	assert.Equal(t, ".cpp", cfg.SourceMarker)
	assert.Equal(t, "gh", cfg.PRCLI)
	assert.Equal(t, "reports.json", cfg.ReportJSON)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .scopecheck.yaml")
}

func TestYAMLLoader_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `jobs: -2`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .scopecheck.yaml")
}

func TestYAMLLoader_LoadFileRequiresFile(t *testing.T) {
	_, err := appconfig.New().LoadFile(filepath.Join(t.TempDir(), "custom.yaml"))
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestRender_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Jobs = 2
	cfg.Setup.PreBuild = [][]string{{"make", "clean"}}

	data, err := appconfig.Render(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# scopecheck configuration")
	writeConfig(t, dir, string(data))

	got, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
