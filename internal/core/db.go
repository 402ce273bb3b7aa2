// Package core provides the core functionality of Specify: the specification
// type and its composition operators, criteria building, SQL assembly, and
// execution against a database/sql connection with statement caching,
// structured logging, and tracing.
package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/coregx/specify/internal/cache"
	"github.com/coregx/specify/internal/dialects"
	"github.com/coregx/specify/internal/logger"
	"github.com/coregx/specify/internal/tracer"
)

// DB represents the database connection specifications execute against.
// It wraps *sql.DB with a prepared statement cache, logging, and tracing.
//
// DB never closes a connection it did not open: WrapDB leaves the lifetime of
// the underlying *sql.DB with the caller.
type DB struct {
	sqlDB      *sql.DB
	driverName string
	dialect    dialects.Dialect
	stmtCache  *cache.StmtCache
	logger     logger.Logger
	sanitizer  *logger.Sanitizer
	tracer     tracer.Tracer
	queryHook  QueryHook
	health     *healthChecker
	healthIntv time.Duration
	owned      bool // true when this DB opened the underlying *sql.DB
	ctx        context.Context
}

// Tx represents a database transaction. Specifications executed through a Tx
// run on the transaction connection and bypass the statement cache.
type Tx struct {
	db  *DB
	tx  *sql.Tx
	ctx context.Context
}

// TxOptions represents transaction options including isolation level.
type TxOptions struct {
	// Isolation level for the transaction (e.g., sql.LevelReadCommitted)
	Isolation sql.IsolationLevel
	// ReadOnly indicates whether the transaction is read-only
	ReadOnly bool
}

// Option is a functional option for configuring DB.
type Option func(*DB)

// WithMaxOpenConns sets the maximum number of open connections.
func WithMaxOpenConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxOpenConns(n)
	}
}

// WithMaxIdleConns sets the maximum number of idle connections.
func WithMaxIdleConns(n int) Option {
	return func(db *DB) {
		db.sqlDB.SetMaxIdleConns(n)
	}
}

// WithStmtCacheCapacity sets the prepared statement cache capacity.
func WithStmtCacheCapacity(capacity int) Option {
	return func(db *DB) {
		db.stmtCache = cache.NewStmtCacheWithCapacity(capacity)
	}
}

// WithLogger sets a structured logger for executed statements.
// Parameters are masked by the sanitizer before they reach the logger.
func WithLogger(log logger.Logger) Option {
	return func(db *DB) {
		db.logger = log
	}
}

// WithTracer sets a tracer for executed statements.
func WithTracer(t tracer.Tracer) Option {
	return func(db *DB) {
		db.tracer = t
	}
}

// WithQueryHook registers a callback invoked after each executed statement.
func WithQueryHook(hook QueryHook) Option {
	return func(db *DB) {
		db.queryHook = hook
	}
}

// WithSensitiveFields overrides the column names whose parameter values are
// masked in logs.
func WithSensitiveFields(fields []string) Option {
	return func(db *DB) {
		db.sanitizer = logger.NewSanitizer(fields)
	}
}

// WithHealthCheck enables a background ping loop at the given interval.
// The loop starts once all options are applied, so it picks up a logger set
// by WithLogger regardless of option order. Use DB.IsHealthy to read the
// last result.
func WithHealthCheck(interval time.Duration) Option {
	return func(db *DB) {
		db.healthIntv = interval
	}
}

// NewDB creates a new DB instance for the given driver and DSN.
func NewDB(driverName, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db := newDB(sqlDB, driverName)
	db.owned = true
	return db, nil
}

// Open creates a new DB instance with options.
func Open(driverName, dsn string, opts ...Option) (*DB, error) {
	db, err := NewDB(driverName, dsn)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(db)
	}
	db.startHealthCheck()

	return db, nil
}

// WrapDB wraps an existing *sql.DB connection. The caller keeps ownership of
// the connection; Close releases Specify's resources but does not close it.
func WrapDB(sqlDB *sql.DB, driverName string, opts ...Option) *DB {
	db := newDB(sqlDB, driverName)
	for _, opt := range opts {
		opt(db)
	}
	db.startHealthCheck()
	return db
}

// startHealthCheck launches the ping loop when WithHealthCheck was given.
// Runs after option application so the logger is final.
func (db *DB) startHealthCheck() {
	if db.healthIntv <= 0 {
		return
	}
	log := db.logger
	if log == nil {
		log = &logger.NoopLogger{}
	}
	db.health = newHealthChecker(db.sqlDB, log, db.healthIntv)
	db.health.start()
}

func newDB(sqlDB *sql.DB, driverName string) *DB {
	return &DB{
		sqlDB:      sqlDB,
		driverName: driverName,
		dialect:    dialects.GetDialect(driverName),
		stmtCache:  cache.NewStmtCache(),
		sanitizer:  logger.NewSanitizer(nil),
		tracer:     &tracer.NoopTracer{},
	}
}

// Close releases Specify's resources: the statement cache and the health
// checker, plus the underlying connection when this DB opened it.
func (db *DB) Close() error {
	if db.health != nil {
		db.health.shutdown()
	}
	db.stmtCache.Clear()
	if db.owned {
		return db.sqlDB.Close()
	}
	return nil
}

// WithContext returns a new DB with the given context.
// The context applies to all operations executed through the returned DB.
func (db *DB) WithContext(ctx context.Context) *DB {
	newDB := *db
	newDB.ctx = ctx
	return &newDB
}

// IsHealthy reports the result of the most recent background health check.
// Without WithHealthCheck it always returns true.
func (db *DB) IsHealthy() bool {
	if db.health == nil {
		return true
	}
	return db.health.isHealthy()
}

// SQLDB exposes the underlying *sql.DB for operations outside this library.
func (db *DB) SQLDB() *sql.DB {
	return db.sqlDB
}

// Begin starts a transaction with default options.
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	return db.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with specified options.
// Options can specify isolation level and read-only mode.
func (db *DB) BeginTx(ctx context.Context, opts *TxOptions) (*Tx, error) {
	var sqlOpts *sql.TxOptions
	if opts != nil {
		sqlOpts = &sql.TxOptions{
			Isolation: opts.Isolation,
			ReadOnly:  opts.ReadOnly,
		}
	}

	tx, err := db.sqlDB.BeginTx(ctx, sqlOpts)
	if err != nil {
		return nil, err
	}

	return &Tx{
		db:  db,
		tx:  tx,
		ctx: ctx,
	}, nil
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	return tx.tx.Commit()
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	return tx.tx.Rollback()
}
