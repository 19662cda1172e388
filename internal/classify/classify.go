// Package classify partitions changed files and decides whether a change set
// is safe to test partially.
package classify

import (
	"path"
	"strings"

	"ptest/internal/diff"
)

// Rules holds the trigger lists for the full-test predicate
type Rules struct {
	// SpecialFiles are exact paths with global blast radius (build,
	// packaging, CI descriptors)
	SpecialFiles []string

	// SpecialExtensions mark data fixtures and binary artifacts that cannot
	// be coverage-mapped reliably
	SpecialExtensions []string

	// CodeExtensions mark source code files
	CodeExtensions []string

	// NoTestExtensions mark documentation files that never require tests
	NoTestExtensions []string

	// SharedFixtureSuffix names shared test fixtures (conftest.py); any
	// change to one affects tests everywhere
	SharedFixtureSuffix string
}

// Reason identifies which full-test trigger fired
type Reason int

const (
	// NoFullTest means partial selection may proceed
	NoFullTest Reason = iota
	// NewCodeFile means a new non-test source file was added; it has no
	// coverage history, so no partial mapping can be trusted
	NewCodeFile
	// SpecialFile means a build/packaging/CI descriptor was changed
	SpecialFile
	// SpecialExtension means a file with a special or unknown extension, or
	// a shared fixture, was changed
	SpecialExtension
)

// String returns the reason name
func (r Reason) String() string {
	switch r {
	case NewCodeFile:
		return "new nontest code file added"
	case SpecialFile:
		return "special file modified"
	case SpecialExtension:
		return "file with special or unknown extension modified"
	default:
		return "no full test required"
	}
}

// IsTestFile reports whether p lies under the test root prefix. The check is
// purely structural; the file's status is irrelevant.
func IsTestFile(p, testRoot string) bool {
	return strings.HasPrefix(p, testRoot)
}

// Partition splits changed files into non-test and test groups by path
func Partition(files []diff.ChangedFile, testRoot string) (nonTest, test []diff.ChangedFile) {
	for _, f := range files {
		if IsTestFile(f.Path, testRoot) {
			test = append(test, f)
		} else {
			nonTest = append(nonTest, f)
		}
	}
	return nonTest, test
}

// CheckFullTest evaluates the full-test predicate over a partitioned change
// set. Triggers are checked in a fixed order and the first hit wins; the
// returned detail names the offending path so the caller can log it.
func CheckFullTest(nonTest, test []diff.ChangedFile, rules Rules) (Reason, string) {
	if p, ok := newCodeFileAdded(nonTest, rules); ok {
		return NewCodeFile, p
	}

	all := make([]diff.ChangedFile, 0, len(nonTest)+len(test))
	all = append(all, nonTest...)
	all = append(all, test...)

	if p, ok := specialFileChanged(all, rules); ok {
		return SpecialFile, p
	}
	if p, ok := specialOrUnknownExtension(all, rules); ok {
		return SpecialExtension, p
	}

	return NoFullTest, ""
}

// newCodeFileAdded reports whether a new non-test source file was added
func newCodeFileAdded(nonTest []diff.ChangedFile, rules Rules) (string, bool) {
	for _, f := range nonTest {
		if f.Status == diff.Added && hasExtensionIn(f.Path, rules.CodeExtensions) {
			return f.Path, true
		}
	}
	return "", false
}

// specialFileChanged reports whether any changed path matches a special file
// name exactly
func specialFileChanged(files []diff.ChangedFile, rules Rules) (string, bool) {
	for _, f := range files {
		for _, special := range rules.SpecialFiles {
			if f.Path == special {
				return f.Path, true
			}
		}
	}
	return "", false
}

// specialOrUnknownExtension reports whether any changed file has a special
// extension, an extension that is neither code nor documentation, or is a
// shared fixture
func specialOrUnknownExtension(files []diff.ChangedFile, rules Rules) (string, bool) {
	for _, f := range files {
		ext := path.Ext(f.Path)

		if extensionIn(ext, rules.SpecialExtensions) {
			return f.Path, true
		}
		if !extensionIn(ext, rules.CodeExtensions) && !extensionIn(ext, rules.NoTestExtensions) {
			return f.Path, true
		}
		if rules.SharedFixtureSuffix != "" && strings.HasSuffix(f.Path, rules.SharedFixtureSuffix) {
			return f.Path, true
		}
	}
	return "", false
}

func hasExtensionIn(p string, exts []string) bool {
	return extensionIn(path.Ext(p), exts)
}

func extensionIn(ext string, exts []string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
