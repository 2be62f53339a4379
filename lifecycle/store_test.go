package lifecycle_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// TEST FIXTURES
// =============================================================================

type widget struct {
	ID    string
	Name  string
	Tags  []string
	Total float64
}

func (w widget) EntityID() string { return w.ID }

func (w widget) Clone() widget {
	out := w
	out.Tags = append([]string(nil), w.Tags...)
	return out
}

func seedWidgets(n int) []widget {
	out := make([]widget, n)
	for i := range out {
		out[i] = widget{ID: fmt.Sprintf("W-%03d", i+1), Name: fmt.Sprintf("widget %d", i+1)}
	}
	return out
}

// =============================================================================
// COLLECTION STORE TESTS
// =============================================================================

func TestCollection_ListReturnsClones(t *testing.T) {
	// GIVEN: a seeded collection
	c := lifecycle.NewCollection("widget", []widget{
		{ID: "W-001", Name: "original", Tags: []string{"a"}},
	}, 2)

	// WHEN: mutating a snapshot
	snap := c.List()
	snap[0].Name = "mutated"
	snap[0].Tags[0] = "z"

	// THEN: the store is unaffected
	got, err := c.Get("W-001")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "original" || got.Tags[0] != "a" {
		t.Errorf("store observed snapshot mutation: %+v", got)
	}
}

func TestCollection_GetMissingReturnsNotFound(t *testing.T) {
	c := lifecycle.NewCollection("widget", seedWidgets(2), 3)

	_, err := c.Get("W-999")
	if !lifecycle.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err.Error() != "widget W-999 not found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestCollection_UpdateCommitsOnlyOnSuccess(t *testing.T) {
	c := lifecycle.NewCollection("widget", seedWidgets(1), 2)

	// Failing update leaves the entity untouched.
	wantErr := errors.New("boom")
	_, err := c.Update("W-001", func(w widget) (widget, error) {
		w.Name = "should not stick"
		return w, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected update error, got %v", err)
	}
	got, _ := c.Get("W-001")
	if got.Name != "widget 1" {
		t.Errorf("failed update mutated the store: %q", got.Name)
	}
	if c.Version("W-001") != 1 {
		t.Errorf("failed update bumped version to %d", c.Version("W-001"))
	}

	// Successful update commits and bumps the version.
	updated, err := c.Update("W-001", func(w widget) (widget, error) {
		w.Name = "renamed"
		return w, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "renamed" {
		t.Errorf("returned entity = %+v", updated)
	}
	got, _ = c.Get("W-001")
	if got.Name != "renamed" {
		t.Errorf("store not updated: %q", got.Name)
	}
	if c.Version("W-001") != 2 {
		t.Errorf("version = %d, want 2", c.Version("W-001"))
	}
}

func TestCollection_UpdateMissingReturnsNotFound(t *testing.T) {
	c := lifecycle.NewCollection[widget]("widget", nil, 1)

	_, err := c.Update("W-001", func(w widget) (widget, error) { return w, nil })
	if !lifecycle.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestCollection_InsertPrepends(t *testing.T) {
	c := lifecycle.NewCollection("widget", seedWidgets(2), 3)

	c.Insert(widget{ID: "W-100", Name: "newest"})

	list := c.List()
	if list[0].ID != "W-100" {
		t.Errorf("newest entity not first: %v", list[0].ID)
	}
	if c.Len() != 3 {
		t.Errorf("len = %d", c.Len())
	}
}

func TestCollection_SelectTracksUpdates(t *testing.T) {
	c := lifecycle.NewCollection("widget", seedWidgets(2), 3)

	if _, ok := c.Selected(); ok {
		t.Fatal("nothing should be selected initially")
	}

	if _, err := c.Select("W-002"); err != nil {
		t.Fatal(err)
	}

	// Updating the selected entity refreshes the selection clone.
	_, err := c.Update("W-002", func(w widget) (widget, error) {
		w.Name = "renamed"
		return w, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sel, ok := c.Selected()
	if !ok || sel.Name != "renamed" {
		t.Errorf("selection stale: %+v ok=%v", sel, ok)
	}

	// Removing the selected entity clears the selection.
	if err := c.Remove("W-002"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Selected(); ok {
		t.Error("selection should be cleared after removal")
	}

	// Selecting a non-existent id errors.
	if _, err := c.Select("W-999"); !lifecycle.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestCollection_NextIDSequence(t *testing.T) {
	c := lifecycle.NewCollection[widget]("widget", nil, 457)

	if id := c.NextID("PO-%d-%04d", 2025); id != "PO-2025-0457" {
		t.Errorf("id = %q", id)
	}
	if id := c.NextID("PO-%d-%04d", 2025); id != "PO-2025-0458" {
		t.Errorf("id = %q", id)
	}
}

func TestCollection_SetAllReplacesWholesale(t *testing.T) {
	c := lifecycle.NewCollection("widget", seedWidgets(3), 4)
	if _, err := c.Select("W-001"); err != nil {
		t.Fatal(err)
	}

	c.SetAll([]widget{{ID: "W-001", Name: "kept"}, {ID: "W-009", Name: "new"}})

	if c.Len() != 2 {
		t.Fatalf("len = %d", c.Len())
	}
	// Surviving ids keep a bumped version, new ids start at 1.
	if c.Version("W-001") != 2 {
		t.Errorf("surviving version = %d, want 2", c.Version("W-001"))
	}
	if c.Version("W-009") != 1 {
		t.Errorf("new version = %d, want 1", c.Version("W-009"))
	}
	if _, ok := c.Selected(); ok {
		t.Error("wholesale replace should clear selection")
	}
}

func TestCollection_LoadingAndErrFlags(t *testing.T) {
	c := lifecycle.NewCollection[widget]("widget", nil, 1)

	c.SetLoading(true)
	if !c.Loading() {
		t.Error("loading flag not set")
	}
	c.SetLoading(false)

	c.SetErr("widget W-1 not found")
	if c.Err() != "widget W-1 not found" {
		t.Errorf("err = %q", c.Err())
	}
	c.SetErr("")
	if c.Err() != "" {
		t.Error("err flag not cleared")
	}
}
