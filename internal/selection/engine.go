// Package selection decides which test files must run for a change set.
package selection

import (
	"sort"

	"ptest/internal/classify"
	"ptest/internal/diff"
	"ptest/internal/logging"
)

// CoverageIndex answers which tests exercised a file in a previous build
type CoverageIndex interface {
	TestsForFile(path string) ([]string, error)
}

// TestLocator resolves test identifiers to the files defining them
type TestLocator interface {
	Locate(testNames []string) ([]string, error)
}

// Engine runs the selection pipeline for one change set
type Engine struct {
	Index    CoverageIndex
	Locator  TestLocator
	Rules    classify.Rules
	TestRoot string
	Logger   *logging.Logger
}

// Select maps a change set to a selection decision.
//
// The full-test predicate short-circuits before any coverage query: when it
// fires, coverage data cannot be trusted for this change set, so none is
// read. Otherwise every changed file (test files included, since a file
// under the test root may be a shared helper imported elsewhere) is looked
// up in the coverage mapping, the resulting test identifiers are resolved to
// files, and the changed test files contribute themselves structurally.
//
// A coverage or locator failure mid-run fails open: the caller gets a plain
// full-test decision, never partial results plus an error.
func (e *Engine) Select(files []diff.ChangedFile) Result {
	nonTest, test := classify.Partition(files, e.TestRoot)

	if reason, detail := classify.CheckFullTest(nonTest, test, e.Rules); reason != classify.NoFullTest {
		e.Logger.Info("Full test required", map[string]interface{}{
			"trigger": reason.String(),
			"path":    detail,
		})
		return FullTestResult(reason.String())
	}

	fromCoverage, err := e.coveragePaths(files)
	if err != nil {
		e.Logger.Error("Coverage lookup failed, falling back to full test", map[string]interface{}{
			"error": err.Error(),
		})
		return FullTestResult("coverage data unavailable")
	}

	structural := testFilePaths(test)

	return PartialResult(union(fromCoverage, structural))
}

// coveragePaths queries the coverage index for every changed file and
// resolves the union of test identifiers to file paths
func (e *Engine) coveragePaths(files []diff.ChangedFile) ([]string, error) {
	var testNames []string
	for _, f := range files {
		// Renamed files are looked up under their old path: the recorded
		// coverage predates the rename.
		names, err := e.Index.TestsForFile(f.Path)
		if err != nil {
			return nil, err
		}
		e.Logger.Debug("Coverage lookup", map[string]interface{}{
			"path":  f.Path,
			"tests": len(names),
		})
		testNames = append(testNames, names...)
	}

	if len(testNames) == 0 {
		return nil, nil
	}

	return e.Locator.Locate(testNames)
}

// testFilePaths derives the structural path set from changed test files:
// deleted test files no longer exist and contribute nothing, renamed test
// files contribute only their new path, everything else contributes itself.
func testFilePaths(test []diff.ChangedFile) []string {
	var paths []string
	for _, f := range test {
		switch f.Status {
		case diff.Deleted:
			continue
		case diff.Renamed:
			paths = append(paths, f.RenamedTo)
		default:
			paths = append(paths, f.Path)
		}
	}
	return paths
}

func union(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, p := range a {
		set[p] = struct{}{}
	}
	for _, p := range b {
		set[p] = struct{}{}
	}

	result := make([]string, 0, len(set))
	for p := range set {
		result = append(result, p)
	}
	sort.Strings(result)
	return result
}
