package driven

import (
	"context"
	"time"
)

// QueryRecord is one served query in the audit log.
type QueryRecord struct {
	// Query is the raw query text.
	Query string

	// ResultCount is the number of contexts the answer was grounded on.
	ResultCount int

	// TopScore is the best similarity score, zero when no results.
	TopScore float64

	// AskedAt is when the query was served.
	AskedAt time.Time
}

// QueryLogStore records served queries for auditability.
// Optional: a nil store disables audit logging. Record failures are
// logged by the pipeline but never fail the ask.
type QueryLogStore interface {
	// Record appends one query record.
	Record(ctx context.Context, rec QueryRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]QueryRecord, error)

	// Close releases resources.
	Close() error
}
