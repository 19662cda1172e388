package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ptest/internal/classify"
	"ptest/internal/config"
	"ptest/internal/coverage"
	"ptest/internal/diff"
	"ptest/internal/locate"
	"ptest/internal/logging"
	"ptest/internal/selection"
	"ptest/internal/vcs"
)

var (
	runProjectName       string
	runCoverageDir       string
	runBuildID           string
	runGitDiffUseHead    bool
	runCompareToBranch   string
	runSpecialFiles      []string
	runSpecialExtensions []string
	runOutputFile        string
	runLineCoverage      bool
	runDiffFile          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Select the test files affected by the current changes",
	Long: `Determine which test files need to be run for a change set.

The change set comes from 'git diff --name-status' against the configured
base branch (or from a pre-captured unified diff via --diff-file). Changed
files are resolved to tests through the coverage data stored under
<coverage-dir>/<project-name>/<build>/.coverage.

The decision is printed to stdout: the word 'full' when the whole suite must
run, otherwise the selected test files (also written to the output file; an
empty output file means nothing needs to run).

Examples:
  ptest run --project-name=numpy                      # local uncommitted changes
  ptest run --project-name=numpy --git-diff-use-head  # committed changes (CI)
  ptest run --project-name=numpy --diff-file=pr.patch # pre-captured diff`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runProjectName, "project-name", "",
		"Project name; must match the directory holding its coverage data")
	runCmd.Flags().StringVar(&runCoverageDir, "coverage-dir", "",
		"Path to the saved coverage data")
	runCmd.Flags().StringVar(&runBuildID, "build", "",
		"Explicit build to read coverage from (default: latest)")
	runCmd.Flags().BoolVar(&runGitDiffUseHead, "git-diff-use-head", false,
		"Diff committed changes since the merge base instead of uncommitted changes")
	runCmd.Flags().StringVar(&runCompareToBranch, "compare-to-branch", "",
		"Base branch to diff against")
	runCmd.Flags().StringSliceVar(&runSpecialFiles, "special-files", nil,
		"Files that trigger a full test run")
	runCmd.Flags().StringSliceVar(&runSpecialExtensions, "special-extensions", nil,
		"Extensions that trigger a full test run")
	runCmd.Flags().StringVar(&runOutputFile, "output-file", "",
		"Path for the selected test file list")
	runCmd.Flags().BoolVar(&runLineCoverage, "line-coverage", false,
		"Coverage data was recorded as line coverage instead of branch coverage")
	runCmd.Flags().StringVar(&runDiffFile, "diff-file", "",
		"Read a unified diff from this file instead of invoking git")
	_ = runCmd.MarkFlagRequired("project-name")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the config file
	if cmd.Flags().Changed("coverage-dir") {
		cfg.CoverageDir = runCoverageDir
	}
	if cmd.Flags().Changed("compare-to-branch") {
		cfg.CompareBranch = runCompareToBranch
	}
	if cmd.Flags().Changed("output-file") {
		cfg.OutputFile = runOutputFile
	}
	if cmd.Flags().Changed("line-coverage") {
		cfg.LineCoverage = runLineCoverage
	}
	if cmd.Flags().Changed("special-files") {
		cfg.SpecialFiles = runSpecialFiles
	}
	if cmd.Flags().Changed("special-extensions") {
		cfg.SpecialExtensions = runSpecialExtensions
	}

	if cfg.CoverageDir == "" {
		return fmt.Errorf("no coverage directory configured; set --coverage-dir or coverage_dir in ~/%s.yaml", config.ConfigFileName)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg).With(map[string]interface{}{
		"runId":   uuid.NewString(),
		"project": runProjectName,
	})
	ctx := context.Background()

	changed, err := changedFiles(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("Changed files detected", map[string]interface{}{
		"count": len(changed),
	})

	result := decide(cfg, logger, changed)

	if result.FullTest {
		logger.Info("A full test is required", map[string]interface{}{
			"reason": result.Reason,
		})
		fmt.Println("full")
		return nil
	}

	if err := selection.WriteFileList(cfg.OutputFile, result.Files); err != nil {
		return err
	}
	logger.Info("Selection written", map[string]interface{}{
		"output": cfg.OutputFile,
		"files":  len(result.Files),
	})

	for _, f := range result.Files {
		fmt.Println(f)
	}
	return nil
}

// changedFiles obtains the change set from git or from a captured diff file
func changedFiles(ctx context.Context, cfg *config.Config, logger *logging.Logger) ([]diff.ChangedFile, error) {
	if runDiffFile != "" {
		raw, err := os.ReadFile(runDiffFile)
		if err != nil {
			return nil, err
		}
		return diff.ParseUnified(string(raw))
	}

	runner := vcs.NewRunner("", logger)
	out, err := runner.ChangedFiles(ctx, cfg.CompareBranch, runGitDiffUseHead)
	if err != nil {
		return nil, err
	}
	return diff.ParseNameStatus(out)
}

// decide opens the coverage mapping and runs the selection engine. An
// unreachable mapping fails open to a full test: running extra tests is
// always safe, running too few is not.
func decide(cfg *config.Config, logger *logging.Logger, changed []diff.ChangedFile) selection.Result {
	index, err := coverage.OpenProject(runProjectName, cfg.CoverageDir, runBuildID, cfg.LineCoverage, logger)
	if err != nil {
		logger.Error("Could not access coverage data, falling back to full test", map[string]interface{}{
			"error": err.Error(),
		})
		return selection.FullTestResult("coverage data unavailable")
	}
	defer index.Close()

	engine := &selection.Engine{
		Index:    index,
		Locator:  locate.NewLocator(cfg.TestRoot, cfg.TestFilePattern),
		Rules:    rulesFromConfig(cfg),
		TestRoot: cfg.TestRoot,
		Logger:   logger,
	}
	return engine.Select(changed)
}

func rulesFromConfig(cfg *config.Config) classify.Rules {
	return classify.Rules{
		SpecialFiles:        cfg.SpecialFiles,
		SpecialExtensions:   cfg.SpecialExtensions,
		CodeExtensions:      cfg.CodeExtensions,
		NoTestExtensions:    cfg.NoTestExtensions,
		SharedFixtureSuffix: cfg.SharedFixtureSuffix,
	}
}
