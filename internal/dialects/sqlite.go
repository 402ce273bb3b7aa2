package dialects

import (
	"fmt"
	"strings"
)

// SQLiteDialect implements SQLite-specific SQL dialect.
type SQLiteDialect struct{}

func init() {
	RegisterDialect("sqlite", &SQLiteDialect{})
	RegisterDialect("sqlite3", &SQLiteDialect{})
}

// QuoteIdentifier quotes a SQLite identifier using double quotes.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Placeholder returns SQLite placeholder format (always "?").
func (d *SQLiteDialect) Placeholder(_ int) string {
	return "?"
}

// LimitOffset generates SQLite paging syntax.
// SQLite requires a LIMIT clause before OFFSET; LIMIT -1 means unbounded.
func (d *SQLiteDialect) LimitOffset(take, skip int) string {
	var sb strings.Builder
	if take > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", take)
	} else if skip > 0 {
		sb.WriteString(" LIMIT -1")
	}
	if skip > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", skip)
	}
	return sb.String()
}
