package diff

import (
	"strings"

	"ptest/internal/pterrors"
)

// ParseNameStatus parses the output of 'git diff --name-status' into
// ChangedFile records, preserving line order.
//
// Each line carries a status token and one path, or two paths for renames.
// The diff is produced by our own git invocation, so a line with fewer than
// two fields is a contract violation and fails loudly instead of being
// skipped.
func ParseNameStatus(raw string) ([]ChangedFile, error) {
	var files []ChangedFile

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, pterrors.Newf(pterrors.DiffMalformed, nil,
				"malformed name-status line %q", line)
		}

		cf := ChangedFile{
			Path:   fields[1],
			Status: StatusFromToken(fields[0]),
		}
		if len(fields) > 2 {
			cf.RenamedTo = fields[2]
		}

		files = append(files, cf)
	}

	return files, nil
}
