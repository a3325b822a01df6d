// Package sqlite provides SQLite-backed storage adapters.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/traceleaf/docrag/internal/core/ports/driven"
)

// Ensure QueryLogStore implements the interface.
var _ driven.QueryLogStore = (*QueryLogStore)(nil)

// schema creates the query log table. Timestamps are stored as RFC 3339
// UTC strings.
const schema = `
CREATE TABLE IF NOT EXISTS query_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	query        TEXT NOT NULL,
	result_count INTEGER NOT NULL,
	top_score    REAL NOT NULL,
	asked_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_query_log_asked_at ON query_log(asked_at);
`

// QueryLogStore records served queries in a SQLite database.
type QueryLogStore struct {
	db   *sql.DB
	path string
}

// NewQueryLogStore opens (or creates) the audit database at dbPath,
// creating parent directories as needed.
func NewQueryLogStore(dbPath string) (*QueryLogStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating audit directory: %w", err)
		}
	}

	// WAL mode keeps readers unblocked while the pipeline appends.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating audit schema: %w", err)
	}

	return &QueryLogStore{
		db:   db,
		path: dbPath,
	}, nil
}

// Record appends one query record.
func (s *QueryLogStore) Record(ctx context.Context, rec driven.QueryRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (query, result_count, top_score, asked_at) VALUES (?, ?, ?, ?)`,
		rec.Query, rec.ResultCount, rec.TopScore, rec.AskedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording query: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *QueryLogStore) Recent(ctx context.Context, limit int) ([]driven.QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT query, result_count, top_score, asked_at FROM query_log ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var records []driven.QueryRecord
	for rows.Next() {
		var rec driven.QueryRecord
		var askedAt string
		if err := rows.Scan(&rec.Query, &rec.ResultCount, &rec.TopScore, &askedAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		rec.AskedAt, err = time.Parse(time.RFC3339Nano, askedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing audit timestamp: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return records, nil
}

// Path returns the database file path.
func (s *QueryLogStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *QueryLogStore) Close() error {
	return s.db.Close()
}
