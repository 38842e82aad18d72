package application

import (
	"fmt"
	"path/filepath"

	"github.com/scopecheck/scopecheck/internal/domain"
)

// Project is a repository root with its resolved configuration.
type Project struct {
	Root   string               `json:"root"`
	Config domain.ProjectConfig `json:"config"`
	Layout domain.Layout        `json:"layout"`
}

// OpenProject locates the repository root containing path and loads its
// configuration, from configFile when given. Without requireRepo a directory
// outside any repository is used as its own root.
func OpenProject(repo domain.RepoInfo, configs domain.ConfigLoader, path, configFile string, requireRepo bool) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	root, err := repo.Root(abs)
	if err != nil {
		if requireRepo {
			return nil, fmt.Errorf("locating repository root of %s: %v: %w", abs, err, domain.ErrVCS)
		}
		root = abs
	}

	var cfg domain.ProjectConfig
	if configFile != "" {
		cfg, err = configs.LoadFile(configFile)
	} else {
		cfg, err = configs.Load(root)
	}
	if err != nil {
		return nil, err
	}

	return &Project{Root: root, Config: cfg, Layout: cfg.Layout(root)}, nil
}
