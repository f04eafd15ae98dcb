// Package query implements the read pipeline for todo listings: filter,
// then sort, then paginate, in that fixed order. Every function is pure and
// returns fresh slices; the store is never mutated through here.
package query

import (
	"sort"
	"time"

	"github.com/frontlab/todo-api/models"
)

// SortField names a sortable todo attribute.
type SortField string

const (
	SortID        SortField = "id"
	SortTitle     SortField = "title"
	SortCompleted SortField = "completed"
	SortDate      SortField = "date"
	SortPriority  SortField = "priority"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseSortField maps a raw query value to a sort field. Unknown values
// fall back to the date field.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortID, SortTitle, SortCompleted, SortDate, SortPriority:
		return SortField(s)
	}
	return SortDate
}

// ParseOrder maps a raw query value to a direction, defaulting to ascending.
func ParseOrder(s string) Order {
	if Order(s) == OrderDesc {
		return OrderDesc
	}
	return OrderAsc
}

// Filter holds the optional criteria for a listing. Nil/empty fields mean
// "no filter"; supplied fields combine with logical AND.
type Filter struct {
	Completed *bool
	Priority  models.Priority
	DateGte   *time.Time
	DateLte   *time.Time
}

func (f Filter) matches(t models.Todo) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority.Valid() && t.Priority != f.Priority {
		return false
	}
	if f.DateGte != nil && t.Date.Before(*f.DateGte) {
		return false
	}
	if f.DateLte != nil && t.Date.After(*f.DateLte) {
		return false
	}
	return true
}

// Sort selects the comparison field and direction.
type Sort struct {
	Field SortField
	Order Order
}

// Apply filters and sorts todos into a fresh slice.
func Apply(todos []models.Todo, f Filter, s Sort) []models.Todo {
	out := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if f.matches(t) {
			out = append(out, t)
		}
	}
	less := lessFunc(s.Field)
	// Descending swaps the operands instead of negating, so ties keep their
	// input order under the stable sort in both directions.
	sort.SliceStable(out, func(i, j int) bool {
		if s.Order == OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field SortField) func(a, b models.Todo) bool {
	switch field {
	case SortID:
		return func(a, b models.Todo) bool { return a.ID < b.ID }
	case SortTitle:
		return func(a, b models.Todo) bool { return a.Title < b.Title }
	case SortCompleted:
		return func(a, b models.Todo) bool { return !a.Completed && b.Completed }
	case SortPriority:
		// Lexicographic, like every other string field.
		return func(a, b models.Todo) bool { return a.Priority < b.Priority }
	default:
		return func(a, b models.Todo) bool { return a.Date.Before(b.Date) }
	}
}

// Page is an offset-mode page request. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// PageResult is one offset-mode page plus its metadata.
type PageResult struct {
	Todos       []models.Todo
	Total       int
	HasNextPage bool
	NextPage    *int
}

// Paginate slices todos into the requested page. A limit of zero or less
// always yields an empty page with no next page; a page beyond the total
// yields the same.
func Paginate(todos []models.Todo, p Page) PageResult {
	res := PageResult{Todos: []models.Todo{}, Total: len(todos)}
	if p.Limit <= 0 {
		return res
	}
	if p.Number < 1 {
		p.Number = 1
	}
	start := (p.Number - 1) * p.Limit
	if start >= len(todos) {
		return res
	}
	end := start + p.Limit
	if end > len(todos) {
		end = len(todos)
	}
	res.Todos = append(res.Todos, todos[start:end]...)
	res.HasNextPage = end < len(todos)
	if res.HasNextPage {
		next := p.Number + 1
		res.NextPage = &next
	}
	return res
}

// Cursor is a cursor-mode page request: a plain offset into the
// filtered+sorted sequence plus a slice cap.
type Cursor struct {
	Offset int
	Limit  int
}

// ScrollResult is one cursor-mode page plus its metadata. NextCursor is nil
// once the end of the sequence has been reached.
type ScrollResult struct {
	Todos       []models.Todo
	NextCursor  *int
	HasNextPage bool
}

// Scroll slices todos starting at the cursor offset.
func Scroll(todos []models.Todo, c Cursor) ScrollResult {
	res := ScrollResult{Todos: []models.Todo{}}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Limit <= 0 || c.Offset >= len(todos) {
		return res
	}
	end := c.Offset + c.Limit
	if end > len(todos) {
		end = len(todos)
	}
	res.Todos = append(res.Todos, todos[c.Offset:end]...)
	res.HasNextPage = end < len(todos)
	if res.HasNextPage {
		next := end
		res.NextCursor = &next
	}
	return res
}
