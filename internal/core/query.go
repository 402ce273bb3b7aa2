package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/coregx/specify/internal/tracer"
)

// Query represents an assembled SQL statement ready for execution.
// When tx is not nil, the statement executes within that transaction.
type Query struct {
	sql    string
	params []interface{}
	db     *DB
	tx     *sql.Tx // nil for non-transactional queries
	ctx    context.Context
	op     string // specification operation for logs, spans, and hooks
	table  string
}

// prepareStatement prepares a SQL statement, using transaction or statement cache.
// For transactions, bypasses cache to avoid conflicts.
// For regular queries, uses the LRU statement cache.
func (q *Query) prepareStatement(ctx context.Context) (*sql.Stmt, bool, error) {
	if q.tx != nil {
		// Transactions bypass statement cache
		stmt, err := q.tx.PrepareContext(ctx, q.sql)
		if err != nil {
			return nil, false, err
		}
		return stmt, true, nil // true = needs close
	}

	if stmt, ok := q.db.stmtCache.Get(q.sql); ok {
		return stmt, false, nil // false = cached, don't close
	}

	stmt, err := q.db.sqlDB.PrepareContext(ctx, q.sql)
	if err != nil {
		return nil, false, err
	}
	q.db.stmtCache.Set(q.sql, stmt)
	return stmt, false, nil
}

// finish emits the logging, tracing, and hook signals for one execution.
func (q *Query) finish(ctx context.Context, span tracer.Span, elapsed time.Duration, rows int64, err error) {
	if q.db.logger != nil {
		masked := q.db.sanitizer.FormatParams(q.db.sanitizer.MaskParams(q.sql, q.params))
		if err != nil {
			q.db.logger.Error("query failed",
				"sql", q.sql,
				"params", masked,
				"op", q.op,
				"duration_ms", elapsed.Milliseconds(),
				"database", q.db.driverName,
				"error", err,
			)
		} else {
			q.db.logger.Info("query executed",
				"sql", q.sql,
				"params", masked,
				"op", q.op,
				"duration_ms", elapsed.Milliseconds(),
				"rows", rows,
				"database", q.db.driverName,
			)
		}
	}

	tracer.AddQueryAttributes(span, &tracer.QueryMetadata{
		SQL:       q.sql,
		Duration:  elapsed,
		Rows:      rows,
		Error:     err,
		Database:  q.db.driverName,
		Operation: q.op,
		Table:     q.table,
	})

	q.db.invokeHook(ctx, QueryEvent{
		SQL:       q.sql,
		Args:      q.params,
		Duration:  elapsed,
		Rows:      rows,
		Error:     err,
		Operation: q.op,
		Table:     q.table,
	})
}

// run executes the statement and hands the result rows to scan, which returns
// the number of rows it consumed. All instrumentation happens here.
func (q *Query) run(scan func(*sql.Rows) (int64, error)) error {
	ctx := q.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := q.db.tracer.StartSpan(ctx, "specify."+q.op)
	defer span.End()

	start := time.Now()

	stmt, needsClose, err := q.prepareStatement(ctx)
	if err != nil {
		q.finish(ctx, span, time.Since(start), 0, err)
		return err
	}
	if needsClose {
		defer func() { _ = stmt.Close() }()
	}

	rows, err := stmt.QueryContext(ctx, q.params...)
	if err != nil {
		q.finish(ctx, span, time.Since(start), 0, err)
		return err
	}
	defer func() { _ = rows.Close() }()

	n, err := scan(rows)
	q.finish(ctx, span, time.Since(start), n, err)
	return err
}

// All fetches all rows into a slice of structs.
func (q *Query) All(dest interface{}) error {
	return q.run(func(rows *sql.Rows) (int64, error) {
		return globalScanner.scanRows(rows, dest)
	})
}

// One fetches a single row into a struct.
// Returns ErrNoRows when the statement matches nothing.
func (q *Query) One(dest interface{}) error {
	return q.run(func(rows *sql.Rows) (int64, error) {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return 0, err
			}
			return 0, ErrNoRows
		}
		if err := globalScanner.scanRow(rows, dest); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// Scalar fetches the first column of the first row into dest.
// Returns ErrNoRows when the statement matches nothing.
func (q *Query) Scalar(dest interface{}) error {
	return q.run(func(rows *sql.Rows) (int64, error) {
		if !rows.Next() {
			if err := rows.Err(); err != nil {
				return 0, err
			}
			return 0, ErrNoRows
		}
		if err := rows.Scan(dest); err != nil {
			return 0, err
		}
		return 1, nil
	})
}
