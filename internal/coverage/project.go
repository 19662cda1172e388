// Package coverage reads the per-project coverage mapping that a previous CI
// build produced with coverage.py, and answers which tests exercised a file.
package coverage

import (
	"os"
	"path/filepath"
	"sort"

	"ptest/internal/logging"
	"ptest/internal/pterrors"
)

// CoverageFileName is the sqlite database coverage.py writes
const CoverageFileName = ".coverage"

// ResolveBuildDir returns the most recently produced build directory under
// projectDir. When projectDir itself holds a coverage file and no build
// directories exist, "." is returned.
func ResolveBuildDir(projectDir string) (string, error) {
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return "", pterrors.Newf(pterrors.CoverageUnavailable, err,
			"could not find coverage data under %s", projectDir)
	}

	type build struct {
		name    string
		modTime int64
	}
	var builds []build
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		builds = append(builds, build{name: entry.Name(), modTime: info.ModTime().UnixNano()})
	}

	if len(builds) == 0 {
		if fileExists(filepath.Join(projectDir, CoverageFileName)) {
			return ".", nil
		}
		return "", pterrors.Newf(pterrors.CoverageUnavailable, nil,
			"no build directories under %s", projectDir)
	}

	// Newest first, matching the original 'ls -t1 | head -1' resolution
	sort.Slice(builds, func(i, j int) bool {
		return builds[i].modTime > builds[j].modTime
	})

	return builds[0].name, nil
}

// OpenProject resolves and opens the coverage mapping for one project.
//
// The mapping lives at <coverageDir>/<name>/<build>/.coverage; when buildID
// is empty the latest build is used. Any failure here is terminal for the
// run: callers fail open to a full test rather than propagating it.
func OpenProject(name, coverageDir, buildID string, lineCoverage bool, logger *logging.Logger) (*Index, error) {
	projectDir := filepath.Join(coverageDir, name)

	if buildID == "" {
		resolved, err := ResolveBuildDir(projectDir)
		if err != nil {
			return nil, err
		}
		buildID = resolved
	}

	dbPath := filepath.Join(projectDir, buildID, CoverageFileName)
	logger.Info("Using coverage file", map[string]interface{}{
		"path":  dbPath,
		"build": buildID,
	})

	return OpenIndex(dbPath, lineCoverage, logger)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
