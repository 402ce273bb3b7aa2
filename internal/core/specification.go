package core

// SortField is a single sort directive: a column name plus direction.
type SortField struct {
	Col  string
	Desc bool
}

// Page is an offset/limit window over sorted results.
// Take <= 0 means unbounded.
type Page struct {
	Skip int
	Take int
}

// Spec describes a query against one entity table: an optional filter, an
// ordered sort list, an optional paging window, and a column projection
// (empty = all columns). It does not execute anything by itself.
//
// A Spec is meant to be configured once, during construction, and treated as
// read-only afterwards. Reusable query shapes embed *Spec and call the setup
// methods in their constructor:
//
//	type ActiveUsers struct{ *core.Spec }
//
//	func NewActiveUsers() *ActiveUsers {
//	    s := core.NewSpec("users")
//	    s.SetFilter(core.Where(core.Eq("status", "active")))
//	    s.AddSort("name")
//	    return &ActiveUsers{s}
//	}
//
// Composition (And, Not) never mutates its inputs; a read-only Spec is safe
// for concurrent use.
type Spec struct {
	table      string
	filter     Criteria
	sorts      []SortField
	page       *Page
	projection []string
}

// NewSpec creates an empty specification bound to the given entity table.
// An empty table name is allowed; execution will then infer the table from
// the destination model.
func NewSpec(table string) *Spec {
	return &Spec{table: table}
}

// SetFilter replaces the current filter criteria with the supplied list.
// No validation is performed beyond what Criteria itself requires.
func (s *Spec) SetFilter(filter Criteria) {
	s.filter = filter
}

// AddSort appends an ascending sort directive for the given column.
// Multiple calls establish a multi-key sort; call order is precedence order.
func (s *Spec) AddSort(col string) {
	s.sorts = append(s.sorts, SortField{Col: col})
}

// AddSortDesc appends a descending sort directive for the given column.
func (s *Spec) AddSortDesc(col string) {
	s.sorts = append(s.sorts, SortField{Col: col, Desc: true})
}

// SetPage records an offset/limit pair. The caller is responsible for
// ensuring skip >= 0 and take >= 0; no validation is performed here.
// Take of 0 means unbounded.
func (s *Spec) SetPage(skip, take int) {
	s.page = &Page{Skip: skip, Take: take}
}

// SetProjection replaces the entire projection list with the given column
// names. Calling it again overwrites rather than appends. An empty call
// resets to "all columns".
func (s *Spec) SetProjection(cols ...string) {
	if len(cols) == 0 {
		s.projection = nil
		return
	}
	s.projection = append([]string(nil), cols...)
}

// Table returns the entity table this specification targets.
func (s *Spec) Table() string {
	return s.table
}

// Filter returns the filter criteria.
// The returned list must not be modified.
func (s *Spec) Filter() Criteria {
	return s.filter
}

// Sorts returns a copy of the sort directives in precedence order.
func (s *Spec) Sorts() []SortField {
	if s.sorts == nil {
		return nil
	}
	out := make([]SortField, len(s.sorts))
	copy(out, s.sorts)
	return out
}

// Page returns a copy of the paging window, or nil when no paging is set.
func (s *Spec) Page() *Page {
	if s.page == nil {
		return nil
	}
	p := *s.page
	return &p
}

// Projection returns a copy of the projected column names; empty means all columns.
func (s *Spec) Projection() []string {
	if s.projection == nil {
		return nil
	}
	out := make([]string, len(s.projection))
	copy(out, s.projection)
	return out
}

// HasFilter reports whether any filter criteria are set.
func (s *Spec) HasFilter() bool { return len(s.filter) > 0 }

// HasSorts reports whether any sort directives are set.
func (s *Spec) HasSorts() bool { return len(s.sorts) > 0 }

// HasPage reports whether a paging window is set.
func (s *Spec) HasPage() bool { return s.page != nil }

// HasProjection reports whether a column projection is set.
func (s *Spec) HasProjection() bool { return len(s.projection) > 0 }
