package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CompareBranch != "origin/master" {
		t.Errorf("expected default branch origin/master, got %s", cfg.CompareBranch)
	}
	if cfg.TestRoot != "tests/" {
		t.Errorf("expected default test root tests/, got %s", cfg.TestRoot)
	}
	if cfg.OutputFile != "test_files_to_run.txt" {
		t.Errorf("unexpected output file %s", cfg.OutputFile)
	}
	if cfg.LineCoverage {
		t.Error("branch coverage should be the default")
	}
	if len(cfg.CodeExtensions) != 1 || cfg.CodeExtensions[0] != ".py" {
		t.Errorf("unexpected code extensions %v", cfg.CodeExtensions)
	}
	if cfg.SharedFixtureSuffix != "conftest.py" {
		t.Errorf("unexpected fixture suffix %s", cfg.SharedFixtureSuffix)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	// A config file named explicitly must exist; only the default home
	// lookup is allowed to fall back to defaults silently.
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for explicitly named missing config file")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partialtesting.yaml")
	content := []byte(`
coverage_dir: /srv/coverage
compare_branch: origin/main
line_coverage: true
special_files:
  - setup.py
  - BUILD
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.CoverageDir != "/srv/coverage" {
		t.Errorf("expected coverage dir from file, got %s", cfg.CoverageDir)
	}
	if cfg.CompareBranch != "origin/main" {
		t.Errorf("expected branch from file, got %s", cfg.CompareBranch)
	}
	if !cfg.LineCoverage {
		t.Error("expected line coverage enabled")
	}
	if len(cfg.SpecialFiles) != 2 || cfg.SpecialFiles[1] != "BUILD" {
		t.Errorf("expected special files from file, got %v", cfg.SpecialFiles)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from file, got %s", cfg.Logging.Level)
	}

	// Untouched keys keep their defaults
	if cfg.TestRoot != "tests/" {
		t.Errorf("expected default test root, got %s", cfg.TestRoot)
	}
	if cfg.OutputFile != "test_files_to_run.txt" {
		t.Errorf("expected default output file, got %s", cfg.OutputFile)
	}
}

func TestValidateRejectsBadExtension(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpecialExtensions = append(cfg.SpecialExtensions, "json")
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for extension without dot")
	}
}

func TestProjectDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoverageDir = "/srv/coverage"
	got := cfg.ProjectDir("numpy")
	want := filepath.Join("/srv/coverage", "numpy")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
