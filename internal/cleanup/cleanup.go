// Package cleanup prunes stale coverage artifacts. Only the newest build of
// each project/branch is ever queried, so older builds are dead weight.
package cleanup

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ptest/internal/coverage"
	"ptest/internal/logging"
)

// Options controls a cleanup pass
type Options struct {
	// CoverageDir is the root of the stored coverage data
	CoverageDir string

	// Branch selects which branch directories to prune (usually only the
	// main branch stores coverage data)
	Branch string

	// DryRun lists what would be deleted without deleting it
	DryRun bool
}

// Clean walks the coverage data root and, in every directory belonging to
// the configured branch, deletes all build directories except the newest
// one. Returns the paths removed (or that would be removed under DryRun).
func Clean(opts Options, logger *logging.Logger) ([]string, error) {
	var removed []string

	err := filepath.WalkDir(opts.CoverageDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || !strings.HasSuffix(path, string(os.PathSeparator)+opts.Branch) {
			return nil
		}

		stale, err := staleBuilds(path)
		if err != nil {
			return err
		}

		for _, build := range stale {
			buildPath := filepath.Join(path, build)
			logger.Info("Deleting stale build", map[string]interface{}{
				"path":   buildPath,
				"dryRun": opts.DryRun,
			})
			if !opts.DryRun {
				if err := os.RemoveAll(buildPath); err != nil {
					return err
				}
			}
			removed = append(removed, buildPath)
		}

		// Build directories under this branch are handled; no need to
		// descend into them.
		return filepath.SkipDir
	})
	if err != nil {
		return removed, err
	}

	return removed, nil
}

// staleBuilds returns every build directory except the newest
func staleBuilds(branchDir string) ([]string, error) {
	latest, err := coverage.ResolveBuildDir(branchDir)
	if err != nil || latest == "." {
		// Nothing to prune in directories without builds
		return nil, nil
	}

	entries, err := os.ReadDir(branchDir)
	if err != nil {
		return nil, err
	}

	var stale []string
	for _, entry := range entries {
		if entry.IsDir() && entry.Name() != latest {
			stale = append(stale, entry.Name())
		}
	}
	return stale, nil
}
