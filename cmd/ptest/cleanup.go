package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ptest/internal/cleanup"
)

var (
	cleanupCoverageDir string
	cleanupBranch      string
	cleanupDryRun      bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stale coverage data",
	Long: `Delete old coverage builds, keeping only the newest build per project.

Only directories of the given branch are pruned; usually the master branch
is the only one that stores coverage data.

Examples:
  ptest cleanup --coverage-dir=/srv/coverage
  ptest cleanup --coverage-dir=/srv/coverage --branch=main --dry-run`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupCoverageDir, "coverage-dir", "",
		"Path to the saved coverage data to clean")
	cleanupCmd.Flags().StringVar(&cleanupBranch, "branch", "master",
		"Branch of builds to clean up")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false,
		"List stale builds without deleting them")

	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("coverage-dir") {
		cfg.CoverageDir = cleanupCoverageDir
	}
	if cfg.CoverageDir == "" {
		return fmt.Errorf("no coverage directory configured; set --coverage-dir or coverage_dir in the config file")
	}

	logger := newLogger(cfg)
	logger.Info("Cleaning coverage data", map[string]interface{}{
		"coverageDir": cfg.CoverageDir,
		"branch":      cleanupBranch,
	})

	removed, err := cleanup.Clean(cleanup.Options{
		CoverageDir: cfg.CoverageDir,
		Branch:      cleanupBranch,
		DryRun:      cleanupDryRun,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("Cleanup finished", map[string]interface{}{
		"removed": len(removed),
	})
	return nil
}
