package lifecycle_test

import (
	"testing"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// FILTER TESTS
// =============================================================================

func TestFilter_ConjunctionOfPredicates(t *testing.T) {
	items := []widget{
		{ID: "W-001", Name: "server rack", Total: 100},
		{ID: "W-002", Name: "storage array", Total: 250},
		{ID: "W-003", Name: "rack bolts", Total: 5},
	}

	got := lifecycle.Filter(items,
		func(w widget) bool { return lifecycle.MatchSearch("rack", w.Name) },
		func(w widget) bool { return w.Total >= 50 },
	)

	if len(got) != 1 || got[0].ID != "W-001" {
		t.Errorf("filtered = %+v", got)
	}
}

func TestFilter_NoPredicatesMatchesAll(t *testing.T) {
	items := seedWidgets(4)
	if got := lifecycle.Filter(items); len(got) != 4 {
		t.Errorf("match-all returned %d items", len(got))
	}
}

func TestMatchSearch_CaseInsensitive(t *testing.T) {
	cases := []struct {
		query  string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"TECH", []string{"TechSolutions SA (Pty) Ltd"}, true},
		{"techsolutions", []string{"TechSolutions SA (Pty) Ltd"}, true},
		{"po-2025", []string{"PO-2025-0456", "supplier"}, true},
		{"missing", []string{"PO-2025-0456", "supplier"}, false},
	}
	for _, tc := range cases {
		if got := lifecycle.MatchSearch(tc.query, tc.fields...); got != tc.want {
			t.Errorf("MatchSearch(%q, %v) = %v, want %v", tc.query, tc.fields, got, tc.want)
		}
	}
}

func TestInDateRange(t *testing.T) {
	cases := []struct {
		date, from, to string
		want           bool
	}{
		{"2025-02-10", "", "", true},
		{"2025-02-10", "2025-02-01", "2025-02-28", true},
		{"2025-01-31", "2025-02-01", "", false},
		{"2025-03-01", "", "2025-02-28", false},
		// Timestamps on the upper-bound day are still in range.
		{"2025-02-28T16:00:00Z", "2025-02-01", "2025-02-28", true},
	}
	for _, tc := range cases {
		if got := lifecycle.InDateRange(tc.date, tc.from, tc.to); got != tc.want {
			t.Errorf("InDateRange(%q, %q, %q) = %v, want %v", tc.date, tc.from, tc.to, got, tc.want)
		}
	}
}

// =============================================================================
// PAGINATION TESTS
// =============================================================================

func TestPagination_TotalPagesIsCeil(t *testing.T) {
	cases := []struct {
		total, pageSize, wantPages int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range cases {
		p := lifecycle.NewPagination(tc.pageSize)
		p.UpdateTotals(tc.total)
		if p.TotalPages != tc.wantPages {
			t.Errorf("UpdateTotals(%d) pages = %d, want %d", tc.total, p.TotalPages, tc.wantPages)
		}
	}
}

func TestPagination_CurrentPageClamped(t *testing.T) {
	// GIVEN: 25 items at page size 10 (3 pages)
	p := lifecycle.NewPagination(10)
	p.UpdateTotals(25)

	// WHEN: requesting page 5
	p.SetPage(5)

	// THEN: current page clamps to 3
	if p.CurrentPage != 3 {
		t.Errorf("page = %d, want 3", p.CurrentPage)
	}

	p.SetPage(0)
	if p.CurrentPage != 1 {
		t.Errorf("page = %d, want 1", p.CurrentPage)
	}

	// Shrinking the collection re-clamps.
	p.SetPage(3)
	p.UpdateTotals(12)
	if p.CurrentPage != 2 {
		t.Errorf("page after shrink = %d, want 2", p.CurrentPage)
	}
}

func TestPage_SlicesAndClamps(t *testing.T) {
	items := seedWidgets(25)

	p := lifecycle.NewPagination(10)
	p.UpdateTotals(len(items))

	first := lifecycle.Page(items, p)
	if len(first) != 10 || first[0].ID != "W-001" {
		t.Errorf("page 1 = %d items starting %v", len(first), first[0].ID)
	}

	p.SetPage(3)
	last := lifecycle.Page(items, p)
	if len(last) != 5 || last[0].ID != "W-021" {
		t.Errorf("page 3 = %d items starting %v", len(last), last[0].ID)
	}

	if got := lifecycle.Page([]widget{}, p); len(got) != 0 {
		t.Errorf("empty collection page = %d items", len(got))
	}
}
