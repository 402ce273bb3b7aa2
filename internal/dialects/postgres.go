package dialects

import (
	"fmt"
	"strings"
)

// PostgresDialect implements PostgreSQL-specific SQL dialect.
type PostgresDialect struct{}

func init() {
	RegisterDialect("postgres", &PostgresDialect{})
	RegisterDialect("postgresql", &PostgresDialect{})
	RegisterDialect("pgx", &PostgresDialect{})
}

// QuoteIdentifier quotes a PostgreSQL identifier using double quotes.
func (d *PostgresDialect) QuoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Placeholder returns PostgreSQL placeholder format ($1, $2, etc.).
func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index)
}

// LimitOffset generates PostgreSQL paging syntax.
// PostgreSQL allows OFFSET without LIMIT, so each part is emitted independently.
func (d *PostgresDialect) LimitOffset(take, skip int) string {
	var sb strings.Builder
	if take > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", take)
	}
	if skip > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", skip)
	}
	return sb.String()
}
