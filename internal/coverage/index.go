package coverage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"ptest/internal/logging"
	"ptest/internal/pterrors"
)

// Index is a read-only view over one build's coverage mapping.
//
// The mapping follows coverage.py's database schema: a file table (id, path),
// a context table (id, context) naming the test that was running, and an
// association table linking the two per covered arc or line. Branch coverage
// fills the arc table, line coverage fills line_bits; which one to query is
// fixed at open time.
type Index struct {
	conn     *sql.DB
	covTable string
	dbPath   string
	logger   *logging.Logger
}

// OpenIndex opens a coverage database read-only
func OpenIndex(dbPath string, lineCoverage bool, logger *logging.Logger) (*Index, error) {
	if !fileExists(dbPath) {
		return nil, pterrors.Newf(pterrors.CoverageUnavailable, nil,
			"coverage file %s does not exist", dbPath)
	}

	conn, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, pterrors.New(pterrors.CoverageUnavailable, "failed to open coverage database", err)
	}

	// sql.Open is lazy; force the file open so unreadable mappings surface
	// here instead of mid-selection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, pterrors.New(pterrors.CoverageUnavailable, "failed to read coverage database", err)
	}

	covTable := "arc"
	if lineCoverage {
		covTable = "line_bits"
	}

	return &Index{
		conn:     conn,
		covTable: covTable,
		dbPath:   dbPath,
		logger:   logger,
	}, nil
}

// Path returns the location of the opened coverage database
func (ix *Index) Path() string {
	return ix.dbPath
}

// TestsForFile returns the distinct test identifiers whose execution touched
// the given file. Stored paths may carry a build-root prefix the caller's
// relative path lacks, so matching is suffix-based. Empty contexts mean the
// file was touched at collection time rather than inside a test body and are
// excluded.
func (ix *Index) TestsForFile(path string) ([]string, error) {
	query := fmt.Sprintf(`select distinct context.context from %s, file, context `+
		`where %s.file_id = file.id and %s.context_id = context.id `+
		`and file.path like ? and context.context != ''`,
		ix.covTable, ix.covTable, ix.covTable)

	rows, err := ix.conn.Query(query, "%"+path)
	if err != nil {
		return nil, pterrors.Newf(pterrors.CoverageUnavailable, err,
			"coverage query failed for %s", path)
	}
	defer rows.Close()

	var tests []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, pterrors.New(pterrors.CoverageUnavailable, "failed to scan coverage row", err)
		}
		tests = append(tests, name)
	}
	if err := rows.Err(); err != nil {
		return nil, pterrors.New(pterrors.CoverageUnavailable, "failed to read coverage rows", err)
	}

	ix.logger.Debug("Coverage query", map[string]interface{}{
		"path":  path,
		"table": ix.covTable,
		"tests": len(tests),
	})

	return tests, nil
}

// Close closes the underlying database
func (ix *Index) Close() error {
	if ix.conn != nil {
		return ix.conn.Close()
	}
	return nil
}
