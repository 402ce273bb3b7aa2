package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Params represents named parameter values for raw query binding.
// Named parameters are specified in SQL using {:name} syntax.
//
// Example:
//
//	db.NewQuery("SELECT * FROM {{users}} WHERE [[id]]={:id}").
//	    Bind(specify.Params{"id": 1}).
//	    All(&users)
type Params map[string]interface{}

var (
	// namedPlaceholderRegex matches named parameter placeholders {:name}.
	namedPlaceholderRegex = regexp.MustCompile(`\{:(\w+)\}`)

	// quoteRegex matches table and column quoting syntax.
	// {{table_name}} - quotes table name (double curly braces)
	// [[column_name]] - quotes column name (double square brackets)
	// Pattern matches word characters, hyphens, dots, and spaces to support schema.table format.
	quoteRegex = regexp.MustCompile(`(\{\{[\w\-. ]+\}\}|\[\[[\w\-. ]+\]\])`)
)

// RawQuery is a hand-written SQL statement with named parameters. It is the
// escape hatch for conditions the criteria atoms cannot express, including
// real negation of a composed filter via native "NOT (...)" SQL.
type RawQuery struct {
	db         *DB
	sql        string
	paramNames []string
	params     Params
	ctx        context.Context
}

// NewQuery creates a raw query from hand-written SQL.
// {:name} placeholders bind named parameters, {{table}} and [[column]] quote
// identifiers for the connection's dialect.
func (db *DB) NewQuery(sql string) *RawQuery {
	processed, names := db.processSQL(sql)
	return &RawQuery{
		db:         db,
		sql:        processed,
		paramNames: names,
	}
}

// WithContext sets the context for this query.
func (rq *RawQuery) WithContext(ctx context.Context) *RawQuery {
	rq.ctx = ctx
	return rq
}

// Bind sets the named parameter values for this query.
func (rq *RawQuery) Bind(params Params) *RawQuery {
	rq.params = params
	return rq
}

// build resolves named parameters into a positional Query.
func (rq *RawQuery) build() (*Query, error) {
	values, err := bindParams(rq.params, rq.paramNames)
	if err != nil {
		return nil, err
	}
	return rq.db.query(rq.ctx, nil, rq.sql, values, "raw", ""), nil
}

// All executes the query and scans all rows into dest slice.
func (rq *RawQuery) All(dest interface{}) error {
	q, err := rq.build()
	if err != nil {
		return err
	}
	return q.All(dest)
}

// One executes the query and scans a single row into dest.
// Returns ErrNoRows when nothing matches.
func (rq *RawQuery) One(dest interface{}) error {
	q, err := rq.build()
	if err != nil {
		return err
	}
	return q.One(dest)
}

// Scalar executes the query and scans the first column of the first row into dest.
func (rq *RawQuery) Scalar(dest interface{}) error {
	q, err := rq.build()
	if err != nil {
		return err
	}
	return q.Scalar(dest)
}

// processSQL replaces named parameter placeholders {:name} with dialect-specific
// positional placeholders ($1, $2 for PostgreSQL; ?, ? for MySQL/SQLite).
// It also quotes table names {{table}} and column names [[column]] using the
// dialect-specific quoting.
//
// Returns the rewritten SQL and the parameter names in order of appearance.
// A name appearing multiple times is listed multiple times.
func (db *DB) processSQL(sql string) (string, []string) {
	var paramNames []string
	count := 0

	result := namedPlaceholderRegex.ReplaceAllStringFunc(sql, func(match string) string {
		count++
		// Strip {: and } around the name
		paramName := match[2 : len(match)-1]
		paramNames = append(paramNames, paramName)
		return db.dialect.Placeholder(count)
	})

	result = quoteRegex.ReplaceAllStringFunc(result, func(match string) string {
		// Strip {{ }} or [[ ]] around the identifier
		identifier := match[2 : len(match)-2]
		return db.quoteIdentifier(identifier)
	})

	return result, paramNames
}

// quoteIdentifier quotes an identifier using the dialect-specific quoting.
// For schema-prefixed identifiers like "schema.table", each part is quoted separately.
func (db *DB) quoteIdentifier(identifier string) string {
	if strings.Contains(identifier, ".") {
		parts := strings.Split(identifier, ".")
		quoted := make([]string, len(parts))
		for i, part := range parts {
			quoted[i] = db.dialect.QuoteIdentifier(strings.TrimSpace(part))
		}
		return strings.Join(quoted, ".")
	}

	return db.dialect.QuoteIdentifier(strings.TrimSpace(identifier))
}

// bindParams converts named parameters to positional values based on the parameter order.
// Returns an error if any required parameter is missing from the params map.
func bindParams(params Params, paramNames []string) ([]interface{}, error) {
	values := make([]interface{}, len(paramNames))

	for i, name := range paramNames {
		value, ok := params[name]
		if !ok {
			return nil, fmt.Errorf("missing parameter: %s", name)
		}
		values[i] = value
	}

	return values, nil
}
