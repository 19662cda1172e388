// Package config loads ptest configuration from ~/.partialtesting.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ConfigFileName is the config file looked up in the user's home directory
const ConfigFileName = ".partialtesting"

// Config represents the complete ptest configuration
type Config struct {
	// CoverageDir is the root directory holding per-project coverage data:
	// <coverage_dir>/<project>/<build>/.coverage
	CoverageDir string `mapstructure:"coverage_dir" yaml:"coverage_dir"`

	// CompareBranch is the base ref changes are diffed against
	CompareBranch string `mapstructure:"compare_branch" yaml:"compare_branch"`

	// TestRoot is the path prefix that marks a changed file as a test file
	TestRoot string `mapstructure:"test_root" yaml:"test_root"`

	// OutputFile is where the selected test file list is written
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`

	// LineCoverage is true when the coverage data recorded line coverage
	// instead of branch (arc) coverage
	LineCoverage bool `mapstructure:"line_coverage" yaml:"line_coverage"`

	// SpecialFiles are exact paths that force a full test run when changed
	SpecialFiles []string `mapstructure:"special_files" yaml:"special_files"`

	// SpecialExtensions are extensions that force a full test run when changed
	SpecialExtensions []string `mapstructure:"special_extensions" yaml:"special_extensions"`

	// CodeExtensions mark files as source code; a newly added non-test code
	// file forces a full run
	CodeExtensions []string `mapstructure:"code_extensions" yaml:"code_extensions"`

	// NoTestExtensions are documentation extensions that never require tests
	NoTestExtensions []string `mapstructure:"no_test_extensions" yaml:"no_test_extensions"`

	// TestFilePattern is the file name pattern test files follow
	TestFilePattern string `mapstructure:"test_file_pattern" yaml:"test_file_pattern"`

	// SharedFixtureSuffix names shared test fixture files; changing one
	// always forces a full run
	SharedFixtureSuffix string `mapstructure:"shared_fixture_suffix" yaml:"shared_fixture_suffix"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Level  string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CompareBranch: "origin/master",
		TestRoot:      "tests/",
		OutputFile:    "test_files_to_run.txt",
		LineCoverage:  false,
		SpecialFiles: []string{
			"setup.py",
			"setup.cfg",
			"Jenkinsfile",
		},
		SpecialExtensions: []string{
			".pkl", ".h5", ".csv", ".gz", ".json",
			".png", ".xml", ".p", ".groovy",
		},
		CodeExtensions:      []string{".py"},
		NoTestExtensions:    []string{".md", ".rst", ".tex", ".txt"},
		TestFilePattern:     "test_*.py",
		SharedFixtureSuffix: "conftest.py",
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from the given file, or from
// ~/.partialtesting.yaml when path is empty. A missing config file is not an
// error: the defaults are used as-is.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		// An explicitly named file that is missing is a misconfiguration
		if path == "" && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("compare_branch", cfg.CompareBranch)
	v.SetDefault("test_root", cfg.TestRoot)
	v.SetDefault("output_file", cfg.OutputFile)
	v.SetDefault("line_coverage", cfg.LineCoverage)
	v.SetDefault("special_files", cfg.SpecialFiles)
	v.SetDefault("special_extensions", cfg.SpecialExtensions)
	v.SetDefault("code_extensions", cfg.CodeExtensions)
	v.SetDefault("no_test_extensions", cfg.NoTestExtensions)
	v.SetDefault("test_file_pattern", cfg.TestFilePattern)
	v.SetDefault("shared_fixture_suffix", cfg.SharedFixtureSuffix)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.TestRoot == "" {
		return fmt.Errorf("test_root must not be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.TestFilePattern == "" {
		return fmt.Errorf("test_file_pattern must not be empty")
	}
	for _, ext := range append(append([]string{}, c.SpecialExtensions...), c.CodeExtensions...) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// ProjectDir returns the coverage directory for one project
func (c *Config) ProjectDir(project string) string {
	return filepath.Join(c.CoverageDir, project)
}
