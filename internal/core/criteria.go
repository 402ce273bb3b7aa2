// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"strings"

	"github.com/coregx/specify/internal/dialects"
)

// Criterion is a single atomic condition inside a Criteria list.
//
// A Criterion builds into a SQL fragment with "?" placeholders; renumbering to
// dialect-specific placeholders happens at statement assembly time.
type Criterion interface {
	// Build converts the criterion into a SQL fragment and returns parameter values.
	Build(dialect dialects.Dialect) (sql string, args []interface{})
}

// Criteria is an ordered list of atomic conditions implicitly joined with AND.
//
// The flat-list encoding is what makes specification composition a plain
// concatenation: merging two Criteria appends one list to the other. The price
// is that a Raw criterion carrying its own OR logic is joined into the AND
// chain as-is, without grouping, and can change meaning. Callers needing
// grouped boolean logic must spell it out inside a single Raw fragment.
//
// Example:
//
//	core.Where(
//	    core.Eq("status", "active"),
//	    core.GreaterThan("age", 18),
//	)
type Criteria []Criterion

// Where builds a Criteria list from the given atoms.
func Where(atoms ...Criterion) Criteria {
	return Criteria(atoms)
}

// Build converts the criteria list into a SQL fragment.
// Atoms are joined with AND in list order. Empty criteria build to an empty string.
func (c Criteria) Build(dialect dialects.Dialect) (string, []interface{}) {
	if len(c) == 0 {
		return "", nil
	}

	var parts []string
	var args []interface{}

	for _, atom := range c {
		if atom == nil {
			continue
		}
		sql, subArgs := atom.Build(dialect)
		if sql != "" {
			parts = append(parts, sql)
			args = append(args, subArgs...)
		}
	}

	if len(parts) == 0 {
		return "", nil
	}

	return strings.Join(parts, " AND "), args
}

// merge concatenates two criteria lists into a fresh one: left atoms first,
// then right atoms. Both inputs are left untouched. When both sides are empty
// the result is nil, not an empty wrapper.
func (c Criteria) merge(other Criteria) Criteria {
	if len(c) == 0 && len(other) == 0 {
		return nil
	}

	merged := make(Criteria, 0, len(c)+len(other))
	merged = append(merged, c...)
	merged = append(merged, other...)
	return merged
}

// clone returns a copy of the criteria list sharing the (immutable) atoms.
func (c Criteria) clone() Criteria {
	if c == nil {
		return nil
	}
	out := make(Criteria, len(c))
	copy(out, c)
	return out
}

// CompareAtom represents a comparison criterion (=, <>, >, <, >=, <=).
type CompareAtom struct {
	Col      string
	Operator string
	Value    interface{}
}

// Eq generates an equality criterion (column = value).
// If value is nil, generates "column IS NULL" instead.
func Eq(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: "=", Value: value}
}

// NotEq generates an inequality criterion (column <> value).
// If value is nil, generates "column IS NOT NULL" instead.
func NotEq(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: "<>", Value: value}
}

// GreaterThan generates a greater-than criterion (column > value).
func GreaterThan(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: ">", Value: value}
}

// LessThan generates a less-than criterion (column < value).
func LessThan(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: "<", Value: value}
}

// GreaterOrEqual generates a greater-than-or-equal criterion (column >= value).
func GreaterOrEqual(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: ">=", Value: value}
}

// LessOrEqual generates a less-than-or-equal criterion (column <= value).
func LessOrEqual(col string, value interface{}) Criterion {
	return &CompareAtom{Col: col, Operator: "<=", Value: value}
}

// Build converts a comparison criterion into a SQL fragment.
func (a *CompareAtom) Build(dialect dialects.Dialect) (string, []interface{}) {
	col := dialect.QuoteIdentifier(a.Col)

	// Handle NULL comparison
	if a.Value == nil {
		if a.Operator == "=" {
			return col + " IS NULL", nil
		}
		if a.Operator == "<>" {
			return col + " IS NOT NULL", nil
		}
	}

	return col + a.Operator + "?", []interface{}{a.Value}
}

// InAtom represents an IN or NOT IN criterion.
type InAtom struct {
	Col    string
	Values []interface{}
	Not    bool
}

// In generates an IN criterion (column IN (value1, value2, ...)).
// If values is empty, generates "0=1" (always false).
// If values contains a single element, generates "column = value" for optimization.
func In(col string, values ...interface{}) Criterion {
	return &InAtom{Col: col, Values: values, Not: false}
}

// NotIn generates a NOT IN criterion (column NOT IN (value1, value2, ...)).
// If values is empty, generates an empty string (always true).
// If values contains a single element, generates "column <> value" for optimization.
func NotIn(col string, values ...interface{}) Criterion {
	return &InAtom{Col: col, Values: values, Not: true}
}

// buildInSingleValue handles IN criterion with a single value.
func buildInSingleValue(col string, val interface{}, not bool) (string, []interface{}) {
	if val == nil {
		if not {
			return col + " IS NOT NULL", nil
		}
		return col + " IS NULL", nil
	}
	if not {
		return col + "<>?", []interface{}{val}
	}
	return col + "=?", []interface{}{val}
}

// Build converts an IN criterion into a SQL fragment.
func (a *InAtom) Build(dialect dialects.Dialect) (string, []interface{}) {
	if len(a.Values) == 0 {
		// Empty IN clause
		if a.Not {
			return "", nil // NOT IN () → always true
		}
		return "0=1", nil // IN () → always false
	}

	col := dialect.QuoteIdentifier(a.Col)

	// Single value optimization
	if len(a.Values) == 1 {
		return buildInSingleValue(col, a.Values[0], a.Not)
	}

	var placeholders []string
	var args []interface{}

	for _, val := range a.Values {
		if val == nil {
			placeholders = append(placeholders, "NULL")
		} else {
			placeholders = append(placeholders, "?")
			args = append(args, val)
		}
	}

	op := "IN"
	if a.Not {
		op = "NOT IN"
	}

	sql := fmt.Sprintf("%s %s (%s)", col, op, strings.Join(placeholders, ", "))
	return sql, args
}

// BetweenAtom represents a BETWEEN or NOT BETWEEN criterion.
type BetweenAtom struct {
	Col      string
	From, To interface{}
	Not      bool
}

// Between generates a BETWEEN criterion (column BETWEEN from AND to).
func Between(col string, from, to interface{}) Criterion {
	return &BetweenAtom{Col: col, From: from, To: to, Not: false}
}

// NotBetween generates a NOT BETWEEN criterion (column NOT BETWEEN from AND to).
func NotBetween(col string, from, to interface{}) Criterion {
	return &BetweenAtom{Col: col, From: from, To: to, Not: true}
}

// Build converts a BETWEEN criterion into a SQL fragment.
func (a *BetweenAtom) Build(dialect dialects.Dialect) (string, []interface{}) {
	col := dialect.QuoteIdentifier(a.Col)

	op := "BETWEEN"
	if a.Not {
		op = "NOT BETWEEN"
	}

	sql := fmt.Sprintf("%s %s ? AND ?", col, op)
	return sql, []interface{}{a.From, a.To}
}

// LikeAtom represents a LIKE or NOT LIKE criterion with automatic escaping.
type LikeAtom struct {
	Col         string
	Value       string
	Not         bool
	Left, Right bool     // Wildcard matching on left/right
	Escape      []string // Escape character pairs
}

// DefaultLikeEscape specifies the default special character escaping for LIKE criteria.
// The strings at 2i positions are the special characters to be escaped while those at 2i+1
// positions are the corresponding escaped versions.
var DefaultLikeEscape = []string{"\\", "\\\\", "%", "\\%", "_", "\\_"}

// Like generates a LIKE criterion with automatic wildcard and escaping.
// By default, the value is wrapped with % on both sides for partial matching.
//
// Example:
//
//	core.Like("name", "john") // name LIKE '%john%'
func Like(col, value string) *LikeAtom {
	return &LikeAtom{
		Col:    col,
		Value:  value,
		Left:   true,
		Right:  true,
		Escape: DefaultLikeEscape,
	}
}

// NotLike generates a NOT LIKE criterion.
// For example: NotLike("name", "john") → name NOT LIKE '%john%'
func NotLike(col, value string) *LikeAtom {
	atom := Like(col, value)
	atom.Not = true
	return atom
}

// Match sets wildcard matching on the left and/or right of the value.
// By default, both are true (e.g., "%value%").
// Call Match(false, true) to generate "value%" (prefix matching only).
func (a *LikeAtom) Match(left, right bool) *LikeAtom {
	a.Left, a.Right = left, right
	return a
}

// Build converts a LIKE criterion into a SQL fragment.
func (a *LikeAtom) Build(dialect dialects.Dialect) (string, []interface{}) {
	col := dialect.QuoteIdentifier(a.Col)

	val := a.Value
	for j := 0; j+1 < len(a.Escape); j += 2 {
		val = strings.ReplaceAll(val, a.Escape[j], a.Escape[j+1])
	}

	if a.Left {
		val = "%" + val
	}
	if a.Right {
		val += "%"
	}

	op := "LIKE"
	if a.Not {
		op = "NOT LIKE"
	}

	return col + " " + op + " ?", []interface{}{val}
}

// NullAtom represents an IS NULL or IS NOT NULL criterion.
type NullAtom struct {
	Col string
	Not bool
}

// Null generates an IS NULL criterion (column IS NULL).
func Null(col string) Criterion {
	return &NullAtom{Col: col}
}

// NotNull generates an IS NOT NULL criterion (column IS NOT NULL).
func NotNull(col string) Criterion {
	return &NullAtom{Col: col, Not: true}
}

// Build converts a NULL criterion into a SQL fragment.
func (a *NullAtom) Build(dialect dialects.Dialect) (string, []interface{}) {
	col := dialect.QuoteIdentifier(a.Col)
	if a.Not {
		return col + " IS NOT NULL", nil
	}
	return col + " IS NULL", nil
}

// RawAtom represents a raw SQL criterion with optional parameter bindings.
// Use this for conditions not covered by other atoms, including hand-written
// negation such as Raw("NOT (status = ?)", "active").
//
// The fragment is spliced into the AND chain verbatim, without added
// parentheses, so a fragment containing OR must carry its own grouping.
type RawAtom struct {
	SQL  string
	Args []interface{}
}

// Raw creates a raw SQL criterion with optional parameter bindings.
// The SQL string can contain ? placeholders which will be replaced with
// dialect-specific placeholders during statement assembly.
func Raw(sql string, args ...interface{}) Criterion {
	return &RawAtom{
		SQL:  sql,
		Args: args,
	}
}

// Build returns the raw SQL fragment as-is with its args.
func (a *RawAtom) Build(_ dialects.Dialect) (string, []interface{}) {
	return a.SQL, a.Args
}
