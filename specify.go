// Package specify provides a small specification-pattern layer over database/sql
// for PostgreSQL, MySQL, and SQLite. Reusable, named query objects (filter +
// sort + paging + column projection) are composed with And/Not and handed to a
// connection for execution, counting, or existence checks, with reflection-based
// struct scanning, prepared statement caching, and OpenTelemetry tracing out of
// the box.
package specify

import (
	"github.com/coregx/specify/internal/core"
)

type (
	// DB represents the database connection specifications execute against.
	DB = core.DB
	// Option is a functional option for configuring DB.
	Option = core.Option
	// Tx represents a database transaction.
	Tx = core.Tx
	// TxOptions represents transaction options including isolation level.
	TxOptions = core.TxOptions

	// Spec describes a query against one entity table without executing it.
	Spec = core.Spec
	// SortField is a single sort directive: column name plus direction.
	SortField = core.SortField
	// Page is an offset/limit window over sorted results.
	Page = core.Page

	// Criteria is an ordered list of atomic conditions implicitly joined with AND.
	Criteria = core.Criteria
	// Criterion is a single atomic condition inside a Criteria list.
	Criterion = core.Criterion

	// Params represents named parameter values for raw query binding.
	Params = core.Params
	// RawQuery is a hand-written SQL statement with named parameters.
	RawQuery = core.RawQuery
	// QueryEvent contains information about an executed statement.
	QueryEvent = core.QueryEvent
	// QueryHook is a callback invoked after each executed statement.
	QueryHook = core.QueryHook
	// TableModel lets models provide custom table names.
	TableModel = core.TableModel
)

// Re-export core functions.
var (
	Open                  = core.Open
	NewDB                 = core.NewDB
	WrapDB                = core.WrapDB
	WithMaxOpenConns      = core.WithMaxOpenConns
	WithMaxIdleConns      = core.WithMaxIdleConns
	WithStmtCacheCapacity = core.WithStmtCacheCapacity
	WithLogger            = core.WithLogger
	WithTracer            = core.WithTracer
	WithQueryHook         = core.WithQueryHook
	WithSensitiveFields   = core.WithSensitiveFields
	WithHealthCheck       = core.WithHealthCheck

	// Specification construction and composition
	NewSpec = core.NewSpec
	And     = core.And
	Not     = core.Not

	// Criteria builders
	Where          = core.Where
	Eq             = core.Eq
	NotEq          = core.NotEq
	GreaterThan    = core.GreaterThan
	LessThan       = core.LessThan
	GreaterOrEqual = core.GreaterOrEqual
	LessOrEqual    = core.LessOrEqual
	In             = core.In
	NotIn          = core.NotIn
	Between        = core.Between
	NotBetween     = core.NotBetween
	Like           = core.Like
	NotLike        = core.NotLike
	Null           = core.Null
	NotNull        = core.NotNull
	Raw            = core.Raw
)

// Re-export sentinel errors.
var (
	ErrNilSpec       = core.ErrNilSpec
	ErrNilConnection = core.ErrNilConnection
	ErrUnorderedPage = core.ErrUnorderedPage
	ErrNoRows        = core.ErrNoRows
	ErrNoTable       = core.ErrNoTable
)
