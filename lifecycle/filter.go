/*
filter.go - Predicate filtering and pagination for list views

PURPOSE:
  Narrows a collection snapshot by a conjunction of predicates and
  partitions the result into pages. Domain filter structs build their
  predicate list from populated (non-default) fields; absent fields impose
  no constraint.

CONVENTIONS:
  - All string search matching is case-insensitive, uniformly.
  - total_pages = ceil(total_items / page_size); 0 when the collection is
    empty, minimum 1 otherwise.
  - current_page is clamped to [1, total_pages] whenever totals change.
*/
package lifecycle

import "strings"

// Predicate is one filter condition over an entity.
type Predicate[E any] func(E) bool

// Filter returns the entities satisfying every predicate. No predicates
// means match-all.
func Filter[E any](items []E, preds ...Predicate[E]) []E {
	if len(preds) == 0 {
		return items
	}
	out := make([]E, 0, len(items))
	for _, e := range items {
		keep := true
		for _, p := range preds {
			if !p(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

// MatchSearch reports whether any of the fields contains the query,
// case-insensitively. An empty query matches everything.
func MatchSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// InDateRange reports whether the ISO date (or timestamp) is within the
// inclusive [from, to] range; empty bounds impose no constraint. ISO-8601
// strings compare correctly lexicographically.
func InDateRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		// A bare date upper bound must still include timestamps on that day.
		if len(date) > len(to) && strings.HasPrefix(date, to) {
			return true
		}
		return false
	}
	return true
}

// =============================================================================
// PAGINATION
// =============================================================================

const DefaultPageSize = 10

type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

func NewPagination(pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Pagination{CurrentPage: 1, PageSize: pageSize}
}

// UpdateTotals recomputes TotalPages from the item count and clamps
// CurrentPage into [1, TotalPages].
func (p *Pagination) UpdateTotals(totalItems int) {
	p.TotalItems = totalItems
	p.TotalPages = (totalItems + p.PageSize - 1) / p.PageSize
	if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
}

// SetPage moves to the requested page, clamped to valid bounds.
func (p *Pagination) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if p.TotalPages > 0 && page > p.TotalPages {
		page = p.TotalPages
	}
	p.CurrentPage = page
}

// Page returns the slice of items for the current page, clamped to
// collection bounds.
func Page[E any](items []E, p Pagination) []E {
	if p.PageSize <= 0 {
		return items
	}
	start := (p.CurrentPage - 1) * p.PageSize
	if start < 0 || start >= len(items) {
		return nil
	}
	end := start + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
