package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opennext-tools/nextdeploy-cli/internal/config"
)

// findWorkspaceRoot walks up from the working directory to the directory
// holding the project configuration file.
func findWorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("not a nextdeploy workspace (no %s found)", config.FileName)
}

// loadWorkspace locates the workspace root and parses its configuration.
func loadWorkspace() (string, *config.Config, error) {
	root, err := findWorkspaceRoot()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return "", nil, fmt.Errorf("failed to load %s: %w", config.FileName, err)
	}
	return root, cfg, nil
}

// selectSites returns the configured sites matching args, or all sites when
// args is empty.
func selectSites(cfg *config.Config, args []string) ([]config.Site, error) {
	if len(args) == 0 {
		return cfg.Sites, nil
	}
	sites := make([]config.Site, 0, len(args))
	for _, name := range args {
		site, err := cfg.GetSite(name)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	return sites, nil
}
