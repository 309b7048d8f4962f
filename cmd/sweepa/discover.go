package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sweepa/sweepa/internal/core/config"
)

const configFileName = "sweepa.toml"

// discoverConfig walks upward from startDir looking for sweepa.toml, the
// same "nearest config file" search the teacher's --config flag leaves to
// the caller's shell (circular.toml is always given as an exact relative
// path); this generalizes that into an actual ancestor search so the CLI
// can be invoked from any subdirectory of a project. The directory holding
// the found file becomes the project root.
//
// Once a root is found, every other sweepa.toml nested under it is loaded
// and folded into the root config's Workspaces table, keyed by its
// directory's path relative to the root. A nested file found this way
// overrides an inline [workspaces."..."] section at the same path declared
// in the root file, since a config a maintainer placed directly in that
// directory is the more specific declaration (§6.3's increasing-specificity
// ordering, applied once here instead of at every suppress.ResolveForFile
// call).
func discoverConfig(startDir string) (*config.Config, string, error) {
	root, path, err := findConfigUpward(startDir)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load %s: %w", path, err)
	}

	nested, err := findNestedConfigs(root, path)
	if err != nil {
		return nil, "", err
	}
	if len(nested) > 0 && cfg.Workspaces == nil {
		cfg.Workspaces = make(map[string]*config.Config, len(nested))
	}
	for relDir, nestedPath := range nested {
		nestedCfg, err := config.Load(nestedPath)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", nestedPath, err)
		}
		cfg.Workspaces[relDir] = nestedCfg
	}

	return cfg, root, nil
}

func findConfigUpward(startDir string) (root, path string, err error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", "", err
	}

	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return dir, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", fmt.Errorf("no %s found from %s up to the filesystem root", configFileName, startDir)
		}
		dir = parent
	}
}

// findNestedConfigs returns every sweepa.toml under root other than
// rootConfigPath itself, keyed by its containing directory's slash-separated
// path relative to root.
func findNestedConfigs(root, rootConfigPath string) (map[string]string, error) {
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" || d.Name() == ".git" || d.Name() == "dist" || d.Name() == "build" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != configFileName || path == rootConfigPath {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		out[strings.ReplaceAll(rel, string(filepath.Separator), "/")] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
