package selection

import (
	"os"
	"strings"

	"ptest/internal/pterrors"
)

// WriteFileList writes the selected test files to path, one per line.
//
// The file is created even when the selection is empty: an empty file tells
// the caller "partial testing, nothing to run", distinct from the full-test
// signal. A write failure indicates a misconfigured target and is fatal;
// there is no silent fallback.
func WriteFileList(path string, files []string) error {
	var b strings.Builder
	for _, f := range files {
		b.WriteString(f)
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return pterrors.Newf(pterrors.OutputWriteFailed, err,
			"could not write selection output to %s", path)
	}
	return nil
}
