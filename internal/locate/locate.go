// Package locate resolves test identifiers from coverage data to the test
// files that define them.
package locate

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Locator searches a test tree for files defining given test names
type Locator struct {
	// TestRoot is the directory searched recursively
	TestRoot string

	// FilePattern restricts the search to files matching this name pattern,
	// e.g. "test_*.py"
	FilePattern string
}

// NewLocator creates a locator over testRoot
func NewLocator(testRoot, filePattern string) *Locator {
	return &Locator{
		TestRoot:    strings.TrimRight(testRoot, "/"),
		FilePattern: filePattern,
	}
}

// LocalName derives the non-qualified test name from an identifier. Newer
// coverage recorders store dotted fully-qualified names; the defining file
// only contains the final segment.
func LocalName(identifier string) string {
	if i := strings.LastIndex(identifier, "."); i >= 0 {
		return identifier[i+1:]
	}
	return identifier
}

// Locate returns every matching test file whose contents mention at least
// one of the given test identifiers. All identifiers are searched in a
// single pass over the tree. An identifier found nowhere simply contributes
// nothing; a missing test root yields an empty result.
func (l *Locator) Locate(testNames []string) ([]string, error) {
	if len(testNames) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(testNames))
	seen := map[string]struct{}{}
	for _, tn := range testNames {
		local := LocalName(tn)
		if local == "" {
			continue
		}
		if _, ok := seen[local]; ok {
			continue
		}
		seen[local] = struct{}{}
		names = append(names, local)
	}
	if len(names) == 0 {
		return nil, nil
	}

	if _, err := os.Stat(l.TestRoot); os.IsNotExist(err) {
		return nil, nil
	}

	matches := map[string]struct{}{}
	err := filepath.WalkDir(l.TestRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ok, err := doublestar.Match(l.FilePattern, d.Name())
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		found, err := fileContainsAny(path, names)
		if err != nil {
			return err
		}
		if found {
			matches[path] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(matches))
	for path := range matches {
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}

// fileContainsAny reports whether any line of the file contains one of the
// names as a substring
func fileContainsAny(path string, names []string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		for _, name := range names {
			if strings.Contains(line, name) {
				return true, nil
			}
		}
	}
	return false, scanner.Err()
}
