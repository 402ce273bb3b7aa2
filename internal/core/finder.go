package core

import (
	"context"
	"database/sql"
)

// Specification execution. All operations validate their arguments before any
// database call: a nil DB yields ErrNilConnection and a nil specification
// yields ErrNilSpec. Database and driver errors propagate verbatim; nothing
// here retries, wraps, or recovers. None of these operations close the
// connection; its lifetime stays with the caller.

// Find executes the specification and scans all matching rows into dest,
// honoring filter, sort order, projection, and paging window.
// dest must be a pointer to a slice of structs or struct pointers.
func (db *DB) Find(ctx context.Context, spec *Spec, dest interface{}) error {
	return db.find(ctx, nil, spec, dest, "find")
}

// First executes the specification and scans the first matching row into dest.
// Returns ErrNoRows when nothing matches.
func (db *DB) First(ctx context.Context, spec *Spec, dest interface{}) error {
	if err := validate(db, spec); err != nil {
		return err
	}

	table, err := db.tableFor(spec, dest)
	if err != nil {
		return err
	}

	sqlStr, args := buildFind(db.dialect, spec, table)
	return db.query(ctx, nil, sqlStr, args, "first", table).One(dest)
}

// Count returns the number of rows matching the specification's filter.
// Sort order, projection, and paging are ignored: only the filter is forwarded.
func (db *DB) Count(ctx context.Context, spec *Spec) (int64, error) {
	return db.count(ctx, nil, spec)
}

// Exists reports whether at least one row matches the specification's filter.
// Only the filter is forwarded; the check runs as a limit-1 probe and observes
// nothing beyond the presence of a row.
func (db *DB) Exists(ctx context.Context, spec *Spec) (bool, error) {
	return db.exists(ctx, nil, spec)
}

// FindPage executes the specification like Find, but refuses offset paging
// over an undefined order: when the specification has a paging window and no
// sort directives, it fails with ErrUnorderedPage before touching the
// database. Without a paging window it degenerates to a plain Find.
func (db *DB) FindPage(ctx context.Context, spec *Spec, dest interface{}) error {
	if err := validate(db, spec); err != nil {
		return err
	}
	if spec.page != nil && len(spec.sorts) == 0 {
		return ErrUnorderedPage
	}
	return db.find(ctx, nil, spec, dest, "page")
}

// Find executes the specification within the transaction.
func (tx *Tx) Find(ctx context.Context, spec *Spec, dest interface{}) error {
	if tx == nil {
		return ErrNilConnection
	}
	return tx.db.find(ctx, tx.tx, spec, dest, "find")
}

// First executes the specification within the transaction and scans the first row.
func (tx *Tx) First(ctx context.Context, spec *Spec, dest interface{}) error {
	if tx == nil {
		return ErrNilConnection
	}
	if err := validate(tx.db, spec); err != nil {
		return err
	}

	table, err := tx.db.tableFor(spec, dest)
	if err != nil {
		return err
	}

	sqlStr, args := buildFind(tx.db.dialect, spec, table)
	return tx.db.query(ctx, tx.tx, sqlStr, args, "first", table).One(dest)
}

// FindPage executes the specification within the transaction, with the same
// sort-order requirement as DB.FindPage.
func (tx *Tx) FindPage(ctx context.Context, spec *Spec, dest interface{}) error {
	if tx == nil {
		return ErrNilConnection
	}
	if err := validate(tx.db, spec); err != nil {
		return err
	}
	if spec.page != nil && len(spec.sorts) == 0 {
		return ErrUnorderedPage
	}
	return tx.db.find(ctx, tx.tx, spec, dest, "page")
}

// Count returns the matching row count within the transaction.
func (tx *Tx) Count(ctx context.Context, spec *Spec) (int64, error) {
	if tx == nil {
		return 0, ErrNilConnection
	}
	return tx.db.count(ctx, tx.tx, spec)
}

// Exists reports within the transaction whether any row matches the filter.
func (tx *Tx) Exists(ctx context.Context, spec *Spec) (bool, error) {
	if tx == nil {
		return false, ErrNilConnection
	}
	return tx.db.exists(ctx, tx.tx, spec)
}

func validate(db *DB, spec *Spec) error {
	if db == nil {
		return ErrNilConnection
	}
	if spec == nil {
		return ErrNilSpec
	}
	return nil
}

// tableFor resolves the entity table: the specification's own table wins,
// otherwise it is inferred from the destination model.
func (db *DB) tableFor(spec *Spec, dest interface{}) (string, error) {
	if spec.table != "" {
		return spec.table, nil
	}
	if table := GetTableName(dest); table != "" {
		return table, nil
	}
	return "", ErrNoTable
}

func (db *DB) find(ctx context.Context, tx *sql.Tx, spec *Spec, dest interface{}, op string) error {
	if err := validate(db, spec); err != nil {
		return err
	}

	table, err := db.tableFor(spec, dest)
	if err != nil {
		return err
	}

	sqlStr, args := buildFind(db.dialect, spec, table)
	return db.query(ctx, tx, sqlStr, args, op, table).All(dest)
}

func (db *DB) count(ctx context.Context, tx *sql.Tx, spec *Spec) (int64, error) {
	if err := validate(db, spec); err != nil {
		return 0, err
	}
	if spec.table == "" {
		return 0, ErrNoTable
	}

	sqlStr, args := buildCount(db.dialect, spec, spec.table)

	var n int64
	if err := db.query(ctx, tx, sqlStr, args, "count", spec.table).Scalar(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (db *DB) exists(ctx context.Context, tx *sql.Tx, spec *Spec) (bool, error) {
	if err := validate(db, spec); err != nil {
		return false, err
	}
	if spec.table == "" {
		return false, ErrNoTable
	}

	sqlStr, args := buildExists(db.dialect, spec, spec.table)

	var found bool
	q := db.query(ctx, tx, sqlStr, args, "exists", spec.table)
	err := q.run(func(rows *sql.Rows) (int64, error) {
		if rows.Next() {
			found = true
			return 1, nil
		}
		return 0, rows.Err()
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// query assembles a Query bound to this DB (and transaction, when given).
func (db *DB) query(ctx context.Context, tx *sql.Tx, sqlStr string, args []interface{}, op, table string) *Query {
	if ctx == nil {
		ctx = db.ctx
	}
	return &Query{
		sql:    sqlStr,
		params: args,
		db:     db,
		tx:     tx,
		ctx:    ctx,
		op:     op,
		table:  table,
	}
}
