package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/govstack/procure-engine/grc"
	"github.com/govstack/procure-engine/purchaseorder"
	"github.com/govstack/procure-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "procure.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestReplaceAndLoadRoundTrip(t *testing.T) {
	// GIVEN the demo purchase orders persisted to a fresh database
	st := newTestStore(t)
	ctx := context.Background()
	seed := purchaseorder.Seed()

	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, seed); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// WHEN the register is loaded back
	loaded, err := sqlite.LoadAll[purchaseorder.PurchaseOrder](ctx, st, sqlite.RegisterPurchaseOrders)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// THEN list order and nested fields survive the round trip
	if len(loaded) != len(seed) {
		t.Fatalf("expected %d orders, got %d", len(seed), len(loaded))
	}
	for i := range seed {
		if loaded[i].ID != seed[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, seed[i].ID, loaded[i].ID)
		}
	}
	if len(loaded[0].LineItems) != len(seed[0].LineItems) {
		t.Fatalf("line items lost: expected %d, got %d", len(seed[0].LineItems), len(loaded[0].LineItems))
	}
	if loaded[0].TotalAmount != seed[0].TotalAmount {
		t.Fatalf("total changed: expected %v, got %v", seed[0].TotalAmount, loaded[0].TotalAmount)
	}
	if loaded[0].Supplier.Name != seed[0].Supplier.Name {
		t.Fatalf("supplier changed: expected %q, got %q", seed[0].Supplier.Name, loaded[0].Supplier.Name)
	}
}

func TestReplaceOverwritesRegister(t *testing.T) {
	// GIVEN a register holding the full demo list
	st := newTestStore(t)
	ctx := context.Background()
	seed := purchaseorder.Seed()

	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, seed); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// WHEN it is replaced with a single order
	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, seed[:1]); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// THEN only that order remains
	n, err := st.Count(ctx, sqlite.RegisterPurchaseOrders)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 document, got %d", n)
	}
}

func TestRegistersAreIndependent(t *testing.T) {
	// GIVEN two registers written to the same database
	st := newTestStore(t)
	ctx := context.Background()

	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, purchaseorder.Seed()); err != nil {
		t.Fatalf("replace orders: %v", err)
	}
	if err := sqlite.Replace(ctx, st, sqlite.RegisterFindings, grc.Seed().Findings); err != nil {
		t.Fatalf("replace findings: %v", err)
	}

	// WHEN one register is cleared
	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, []purchaseorder.PurchaseOrder{}); err != nil {
		t.Fatalf("clear orders: %v", err)
	}

	// THEN the other is untouched
	findings, err := sqlite.LoadAll[grc.Finding](ctx, st, sqlite.RegisterFindings)
	if err != nil {
		t.Fatalf("load findings: %v", err)
	}
	if len(findings) != len(grc.Seed().Findings) {
		t.Fatalf("expected %d findings, got %d", len(grc.Seed().Findings), len(findings))
	}
	if len(findings[0].ActionItems) != 2 {
		t.Fatalf("action items lost: got %d", len(findings[0].ActionItems))
	}
}

func TestEmptyRegisterLoadsEmpty(t *testing.T) {
	// GIVEN a fresh database
	st := newTestStore(t)

	// WHEN an unwritten register is loaded
	loaded, err := sqlite.LoadAll[purchaseorder.PurchaseOrder](context.Background(), st, sqlite.RegisterPurchaseOrders)

	// THEN it is empty without error
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty register, got %d documents", len(loaded))
	}
}

func TestSequencePersistence(t *testing.T) {
	// GIVEN a saved sequence counter
	st := newTestStore(t)
	ctx := context.Background()

	next, err := st.Sequence(ctx, sqlite.RegisterPurchaseOrders, purchaseorder.SeedSequence)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if next != purchaseorder.SeedSequence {
		t.Fatalf("expected fallback %d, got %d", purchaseorder.SeedSequence, next)
	}

	if err := st.SaveSequence(ctx, sqlite.RegisterPurchaseOrders, 461); err != nil {
		t.Fatalf("save sequence: %v", err)
	}
	if err := st.SaveSequence(ctx, sqlite.RegisterPurchaseOrders, 462); err != nil {
		t.Fatalf("save sequence: %v", err)
	}

	// WHEN it is read back
	next, err = st.Sequence(ctx, sqlite.RegisterPurchaseOrders, purchaseorder.SeedSequence)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}

	// THEN the latest save wins over the fallback
	if next != 462 {
		t.Fatalf("expected 462, got %d", next)
	}
}

func TestReset(t *testing.T) {
	// GIVEN documents and sequences on disk
	st := newTestStore(t)
	ctx := context.Background()

	if err := sqlite.Replace(ctx, st, sqlite.RegisterPurchaseOrders, purchaseorder.Seed()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := st.SaveSequence(ctx, sqlite.RegisterPurchaseOrders, 500); err != nil {
		t.Fatalf("save sequence: %v", err)
	}

	// WHEN the store is reset
	if err := st.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// THEN both tables are empty again
	n, err := st.Count(ctx, sqlite.RegisterPurchaseOrders)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d documents", n)
	}
	next, err := st.Sequence(ctx, sqlite.RegisterPurchaseOrders, purchaseorder.SeedSequence)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if next != purchaseorder.SeedSequence {
		t.Fatalf("expected fallback after reset, got %d", next)
	}
}
