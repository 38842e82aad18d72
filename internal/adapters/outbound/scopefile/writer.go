package scopefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scopecheck/scopecheck/internal/domain"
	"github.com/scopecheck/scopecheck/internal/domain/scope"
)

// Writer implements domain.ScopeWriter on the local filesystem.
type Writer struct{}

func New() *Writer { return &Writer{} }

// Materialize rewrites the skip file and writes defaultConfig to configPath
// only when nothing exists there yet, so hand-tuned configurations survive.
func (w *Writer) Materialize(s domain.Scope, scopePath, configPath string, defaultConfig domain.AnalysisConfig) error {
	if err := writeFile(scopePath, []byte(scope.Render(s))); err != nil {
		return fmt.Errorf("writing scope file: %w", err)
	}

	_, err := w.Bootstrap(configPath, defaultConfig)
	return err
}

// Bootstrap writes cfg to configPath unless a file is already there. It
// reports whether a file was written.
func (w *Writer) Bootstrap(configPath string, cfg domain.AnalysisConfig) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking analyzer config %s: %v: %w", configPath, err, domain.ErrIO)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encoding analyzer config: %w", err)
	}
	if err := writeFile(configPath, append(data, '\n')); err != nil {
		return false, fmt.Errorf("writing analyzer config: %w", err)
	}
	return true, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrIO)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrIO)
	}
	return nil
}
