package core

import (
	"strings"

	"github.com/coregx/specify/internal/dialects"
)

// buildFind assembles the full SELECT statement for a specification:
// projection, filter, sort order, and paging window.
func buildFind(dialect dialects.Dialect, spec *Spec, table string) (string, []interface{}) {
	cols := "*"
	if len(spec.projection) > 0 {
		quoted := make([]string, len(spec.projection))
		for i, col := range spec.projection {
			quoted[i] = dialect.QuoteIdentifier(col)
		}
		cols = strings.Join(quoted, ", ")
	}

	query := "SELECT " + cols + " FROM " + dialect.QuoteIdentifier(table)

	where, args := whereClause(dialect, spec.filter)
	query += where
	query += orderByClause(dialect, spec.sorts)

	if spec.page != nil {
		query += dialect.LimitOffset(spec.page.Take, spec.page.Skip)
	}

	return query, args
}

// buildCount assembles a COUNT statement honoring only the filter.
// Sort, projection, and paging have no effect on a count.
func buildCount(dialect dialects.Dialect, spec *Spec, table string) (string, []interface{}) {
	query := "SELECT COUNT(*) FROM " + dialect.QuoteIdentifier(table)
	where, args := whereClause(dialect, spec.filter)
	return query + where, args
}

// buildExists assembles a limit-1 probe honoring only the filter.
// Existence is derived by checking whether the probe returns any row.
func buildExists(dialect dialects.Dialect, spec *Spec, table string) (string, []interface{}) {
	query := "SELECT 1 FROM " + dialect.QuoteIdentifier(table)
	where, args := whereClause(dialect, spec.filter)
	return query + where + dialect.LimitOffset(1, 0), args
}

// whereClause builds the WHERE clause from criteria, renumbering placeholders
// for dialects with positional formats ($1, $2 for PostgreSQL).
func whereClause(dialect dialects.Dialect, filter Criteria) (string, []interface{}) {
	sql, args := filter.Build(dialect)
	if sql == "" {
		return "", nil
	}

	clause := " WHERE " + sql
	if dialect.Placeholder(1) != "?" {
		for i := range args {
			clause = strings.Replace(clause, "?", dialect.Placeholder(i+1), 1)
		}
	}

	return clause, args
}

// orderByClause builds the ORDER BY clause from sort directives in precedence order.
func orderByClause(dialect dialects.Dialect, sorts []SortField) string {
	if len(sorts) == 0 {
		return ""
	}

	parts := make([]string, len(sorts))
	for i, s := range sorts {
		parts[i] = dialect.QuoteIdentifier(s.Col)
		if s.Desc {
			parts[i] += " DESC"
		}
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}
