// Copyright (c) 2025 COREGX. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package core

// And produces a new specification representing "left matches AND right matches".
//
// Filters fully merge: both atom lists are concatenated into one flat AND
// chain, left atoms first. One-sided empty filters act as identity; two empty
// filters yield an empty filter.
//
// Sort, projection, and paging follow a left-preference rule instead: when the
// left side has a non-empty sort list (or projection, or a paging window), it
// wins outright and the right side's is discarded, not appended. There is no
// way to get "left sorts, then right sorts as tie-break" through this
// operator. Swapping operands can therefore change the result; And is not
// commutative for these three attributes.
//
// Neither input is mutated; a fresh specification is always returned.
// Returns ErrNilSpec when either operand is nil, before anything else happens.
func And(left, right *Spec) (*Spec, error) {
	if left == nil || right == nil {
		return nil, ErrNilSpec
	}

	out := &Spec{
		table:  left.table,
		filter: left.filter.merge(right.filter),
	}
	if out.table == "" {
		out.table = right.table
	}

	if len(left.sorts) > 0 {
		out.sorts = copySorts(left.sorts)
	} else {
		out.sorts = copySorts(right.sorts)
	}

	if len(left.projection) > 0 {
		out.projection = append([]string(nil), left.projection...)
	} else if len(right.projection) > 0 {
		out.projection = append([]string(nil), right.projection...)
	}

	if left.page != nil {
		page := *left.page
		out.page = &page
	} else if right.page != nil {
		page := *right.page
		out.page = &page
	}

	return out, nil
}

// Not produces a copy of the given specification.
//
// Known limitation: the filter is NOT inverted. The flat-list criteria
// encoding has no negation node, so the filter is carried over verbatim and
// Not is effectively a clone operation. Callers needing real negation must
// hand-construct the condition with Raw, e.g. Raw("NOT (status = ?)", v).
//
// Sort list, projection, and paging window are copied through unchanged.
// Returns ErrNilSpec when the input is nil.
func Not(s *Spec) (*Spec, error) {
	if s == nil {
		return nil, ErrNilSpec
	}

	out := &Spec{
		table:  s.table,
		filter: s.filter.clone(),
		sorts:  copySorts(s.sorts),
	}
	if s.page != nil {
		page := *s.page
		out.page = &page
	}
	if s.projection != nil {
		out.projection = append([]string(nil), s.projection...)
	}

	return out, nil
}

// copySorts returns a copy of the sort list, nil for empty input.
func copySorts(sorts []SortField) []SortField {
	if len(sorts) == 0 {
		return nil
	}
	out := make([]SortField, len(sorts))
	copy(out, sorts)
	return out
}
