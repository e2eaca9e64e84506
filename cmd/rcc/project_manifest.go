package main

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"rcc/internal/codegen"
	"rcc/internal/ir"
)

const manifestName = "rcc.toml"

// projectManifest is a loaded rcc.toml. Root is the directory holding it.
type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build buildConfig `toml:"build"`
}

// buildConfig holds the defaults command line flags override.
type buildConfig struct {
	Target   string `toml:"target"`
	OptLevel *int   `toml:"opt-level"`
	Src      string `toml:"src"`
	Out      string `toml:"out"`
	Jobs     int    `toml:"jobs"`
}

// findManifest walks from startDir up to the filesystem root.
func findManifest(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for ; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, manifestName)
		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			return candidate, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, err
		}
		if filepath.Dir(dir) == dir {
			return "", false, nil
		}
	}
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, found, err := findManifest(startDir)
	if err != nil || !found {
		return nil, found, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err == nil {
		err = cfg.validate(meta)
	} else {
		err = fmt.Errorf("failed to parse TOML: %w", err)
	}
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *projectConfig) validate(meta toml.MetaData) error {
	switch {
	case !meta.IsDefined("package"):
		return errors.New("missing [package]")
	case strings.TrimSpace(c.Package.Name) == "":
		return errors.New("missing [package].name")
	}
	if extra := meta.Undecoded(); len(extra) != 0 {
		return fmt.Errorf("unknown key %s", extra[0])
	}
	b := c.Build
	if b.Target != "" {
		if _, err := codegen.ParseTarget(b.Target); err != nil {
			return fmt.Errorf("[build].target: %w", err)
		}
	}
	if b.OptLevel != nil {
		if _, err := ir.ParseOptimizeLevel(strconv.Itoa(*b.OptLevel)); err != nil {
			return fmt.Errorf("[build].opt-level: %w", err)
		}
	}
	if b.Jobs < 0 {
		return errors.New("[build].jobs must not be negative")
	}
	return nil
}

// srcDir is where build looks for sources.
func (m *projectManifest) srcDir() string { return m.underRoot(m.Config.Build.Src, "src") }

func (m *projectManifest) outDir() string { return m.underRoot(m.Config.Build.Out, "build") }

func (m *projectManifest) underRoot(rel, fallback string) string {
	rel = cmp.Or(strings.TrimSpace(rel), fallback)
	return filepath.Join(m.Root, filepath.FromSlash(rel))
}
