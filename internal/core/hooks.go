package core

import (
	"context"
	"time"
)

// QueryEvent contains information about an executed statement.
// This is passed to QueryHook callbacks for logging, metrics, or tracing.
type QueryEvent struct {
	// SQL is the executed SQL statement
	SQL string
	// Args are the statement parameters
	Args []interface{}
	// Duration is how long the statement took to execute
	Duration time.Duration
	// Rows is the number of result rows consumed: scanned rows for find,
	// one for a count or first, at most one for an existence probe
	Rows int64
	// Error is any error that occurred during execution (nil on success)
	Error error
	// Operation is the specification operation (find, first, count, exists, page, raw)
	Operation string
	// Table is the entity table the specification targeted
	Table string
}

// QueryHook is a callback function invoked after each executed statement.
// Use this for logging, metrics, distributed tracing, or debugging.
//
// Example:
//
//	db, _ := specify.Open("postgres", dsn,
//	    specify.WithQueryHook(func(ctx context.Context, e specify.QueryEvent) {
//	        slog.Info("query", "sql", e.SQL, "op", e.Operation, "duration", e.Duration, "err", e.Error)
//	    }))
type QueryHook func(ctx context.Context, event QueryEvent)

// invokeHook calls the query hook if set.
func (db *DB) invokeHook(ctx context.Context, event QueryEvent) {
	if db.queryHook != nil {
		db.queryHook(ctx, event)
	}
}
