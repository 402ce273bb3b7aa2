package dialects

import (
	"fmt"
	"strings"
)

// MySQLDialect implements MySQL-specific SQL dialect.
type MySQLDialect struct{}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// Placeholder returns MySQL placeholder format (always "?").
func (d *MySQLDialect) Placeholder(_ int) string {
	return "?"
}

// LimitOffset generates MySQL paging syntax.
// MySQL has no OFFSET without LIMIT; the documented workaround is a huge
// LIMIT value (the MySQL manual suggests 18446744073709551615).
func (d *MySQLDialect) LimitOffset(take, skip int) string {
	var sb strings.Builder
	if take > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", take)
	} else if skip > 0 {
		sb.WriteString(" LIMIT 18446744073709551615")
	}
	if skip > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", skip)
	}
	return sb.String()
}

func init() {
	RegisterDialect("mysql", &MySQLDialect{})
}
