package diff

import (
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"ptest/internal/pterrors"
)

// ParseUnified parses a raw unified git diff into ChangedFile records.
//
// This accepts pre-captured patches (run --diff-file) from callers that do
// not want ptest to invoke git itself. Status is derived from the file
// headers: /dev/null origin means added, /dev/null target means deleted,
// differing names mean renamed.
func ParseUnified(raw string) ([]ChangedFile, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	fileDiffs, err := godiff.ParseMultiFileDiff([]byte(raw))
	if err != nil {
		return nil, pterrors.New(pterrors.DiffMalformed, "failed to parse unified diff", err)
	}

	files := make([]ChangedFile, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		files = append(files, fromFileDiff(fd))
	}

	return files, nil
}

func fromFileDiff(fd *godiff.FileDiff) ChangedFile {
	oldPath := cleanPath(fd.OrigName)
	newPath := cleanPath(fd.NewName)

	switch {
	case oldPath == "":
		return ChangedFile{Path: newPath, Status: Added}
	case newPath == "":
		return ChangedFile{Path: oldPath, Status: Deleted}
	case oldPath != newPath:
		return ChangedFile{Path: oldPath, Status: Renamed, RenamedTo: newPath}
	default:
		return ChangedFile{Path: newPath, Status: Modified}
	}
}

// cleanPath removes the a/ or b/ prefix from git diff paths and normalizes
// /dev/null to the empty string
func cleanPath(path string) string {
	if path == "" || path == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(path, "a/") || strings.HasPrefix(path, "b/") {
		return path[2:]
	}
	return path
}
