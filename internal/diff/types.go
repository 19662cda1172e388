// Package diff models version-control change sets and parses the two diff
// formats ptest accepts: git name-status output and unified diffs.
package diff

// Status classifies a single changed file
type Status int

const (
	// Added is a newly created file
	Added Status = iota
	// Modified is a changed existing file
	Modified
	// Deleted is a removed file
	Deleted
	// Renamed is a moved file; ChangedFile.RenamedTo holds the new path
	Renamed
	// Other covers any unrecognized status token (copied, type change, ...)
	Other
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "other"
	}
}

// StatusFromToken maps a git status token to a Status. Only the first
// character matters: git emits rename/copy scores like R100 or C084.
// Unrecognized tokens map to Other, never to an error.
func StatusFromToken(token string) Status {
	if token == "" {
		return Other
	}
	switch token[0] {
	case 'A':
		return Added
	case 'M':
		return Modified
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	default:
		return Other
	}
}

// ChangedFile represents one changed file from a diff.
//
// For Renamed records Path is the pre-change name and RenamedTo the
// post-change name; every other status leaves RenamedTo empty. Records are
// built once per run and never mutated afterwards.
type ChangedFile struct {
	Path      string
	Status    Status
	RenamedTo string
}
