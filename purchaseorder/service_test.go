package purchaseorder

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestService(t *testing.T, seed []PurchaseOrder) (*Service, *lifecycle.FixedClock) {
	t.Helper()
	clock := lifecycle.NewFixedClock(time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC))
	return NewService(seed, SeedSequence, clock, zap.NewNop()), clock
}

func draftOrder() CreateOrder {
	return CreateOrder{
		Supplier: Supplier{ID: "sup-100", Name: "Test Supplier (Pty) Ltd", BBBEELevel: 2},
		LineItems: []LineItem{
			{ItemCode: "ITEM-1", Description: "Widget", Quantity: 10, Unit: "each", UnitPrice: 100},
		},
		PaymentTerms:         "30 days",
		ExpectedDeliveryDate: "2025-04-30",
		CreatedBy:            "tester",
	}
}

// advanceTo walks a fresh order to the given status through the legal path.
func advanceTo(t *testing.T, s *Service, id string, target Status) PurchaseOrder {
	t.Helper()
	ctx := context.Background()
	path := []Status{StatusPendingApproval, StatusApproved, StatusSent, StatusAcknowledged}
	var (
		po  PurchaseOrder
		err error
	)
	for _, step := range path {
		po, err = s.UpdateStatus(ctx, id, step)
		if err != nil {
			t.Fatalf("advancing to %s: %v", step, err)
		}
		if step == target {
			return po
		}
	}
	t.Fatalf("target %s not on the standard path", target)
	return po
}

// =============================================================================
// TOTALS
// =============================================================================

func TestCalculateTotals_VATInclusive(t *testing.T) {
	// GIVEN: 10 units at 100.00 with 15% VAT
	po := PurchaseOrder{
		LineItems: []LineItem{{Quantity: 10, UnitPrice: 100, TaxRate: 15}},
	}

	// WHEN: totals are calculated
	po.CalculateTotals()

	// THEN: subtotal 1000, tax 150, total 1150
	if po.Subtotal != 1000 || po.TaxTotal != 150 || po.TotalAmount != 1150 {
		t.Errorf("totals = %v / %v / %v", po.Subtotal, po.TaxTotal, po.TotalAmount)
	}

	// Recalculating is idempotent.
	po.CalculateTotals()
	if po.TotalAmount != 1150 {
		t.Errorf("recalculated total = %v", po.TotalAmount)
	}
}

func TestCalculateTotals_MultipleLineItems(t *testing.T) {
	po := PurchaseOrder{
		LineItems: []LineItem{
			{Quantity: 3, UnitPrice: 199.99, TaxRate: 15},
			{Quantity: 1, UnitPrice: 0.03, TaxRate: 15},
		},
	}
	po.CalculateTotals()

	if po.Subtotal != 600.0 {
		t.Errorf("subtotal = %v, want exactly 600.0", po.Subtotal)
	}
	if po.TaxTotal != 90.0 {
		t.Errorf("tax = %v, want exactly 90.0", po.TaxTotal)
	}
	if po.TotalAmount != 690.0 {
		t.Errorf("total = %v, want exactly 690.0", po.TotalAmount)
	}
}

// =============================================================================
// CREATE / UPDATE / DELETE
// =============================================================================

func TestCreate_AssignsNumberAndComputesTotals(t *testing.T) {
	s, _ := newTestService(t, nil)

	po, err := s.Create(context.Background(), draftOrder())
	if err != nil {
		t.Fatal(err)
	}

	if po.Status != StatusDraft {
		t.Errorf("status = %s", po.Status)
	}
	if po.PONumber != "PO-2025-0459" {
		t.Errorf("po_number = %q", po.PONumber)
	}
	if po.TotalAmount != 1150 {
		t.Errorf("total = %v", po.TotalAmount)
	}
	if po.Currency != "ZAR" {
		t.Errorf("currency = %q", po.Currency)
	}
	if po.LineItems[0].TaxRate != DefaultTaxRate {
		t.Errorf("default tax rate not applied: %v", po.LineItems[0].TaxRate)
	}

	// Sequence advances per create.
	second, _ := s.Create(context.Background(), draftOrder())
	if second.PONumber != "PO-2025-0460" {
		t.Errorf("second po_number = %q", second.PONumber)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	noSupplier := draftOrder()
	noSupplier.Supplier.Name = "  "
	if _, err := s.Create(ctx, noSupplier); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("missing supplier: %v", err)
	}

	noItems := draftOrder()
	noItems.LineItems = nil
	if _, err := s.Create(ctx, noItems); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("missing line items: %v", err)
	}

	badQty := draftOrder()
	badQty.LineItems[0].Quantity = 0
	if _, err := s.Create(ctx, badQty); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("zero quantity: %v", err)
	}

	freeItem := draftOrder()
	freeItem.LineItems[0].UnitPrice = 0
	if _, err := s.Create(ctx, freeItem); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("zero unit price: %v", err)
	}

	negPrice := draftOrder()
	negPrice.LineItems[0].UnitPrice = -10
	if _, err := s.Create(ctx, negPrice); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("negative unit price: %v", err)
	}
}

func TestUpdate_OnlyWhileEditable(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())

	// Draft orders are editable and totals follow the new line items.
	updated, err := s.Update(ctx, po.ID, UpdateOrder{
		LineItems: []LineItem{{Description: "More widgets", Quantity: 20, UnitPrice: 50}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalAmount != 1150 {
		t.Errorf("total after edit = %v", updated.TotalAmount)
	}

	// Once approved, edits are refused.
	advanceTo(t, s, po.ID, StatusApproved)
	_, err = s.Update(ctx, po.ID, UpdateOrder{PaymentTerms: "60 days"})
	if !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("edit after approval: %v", err)
	}
}

func TestDelete_DraftOnly(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	po, _ := s.Create(ctx, draftOrder())
	if err := s.Delete(ctx, po.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, po.ID); !lifecycle.IsNotFound(err) {
		t.Errorf("deleted order still present: %v", err)
	}

	submitted, _ := s.Create(ctx, draftOrder())
	if _, err := s.SubmitForApproval(ctx, submitted.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, submitted.ID); !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("deleting submitted order: %v", err)
	}
}

func TestDuplicate_ResetsLifecycleState(t *testing.T) {
	s, _ := newTestService(t, Seed())
	ctx := context.Background()

	// po-001 is delivered with full delivery quantities and approvals.
	dup, err := s.Duplicate(ctx, "po-001")
	if err != nil {
		t.Fatal(err)
	}

	if dup.Status != StatusDraft {
		t.Errorf("status = %s", dup.Status)
	}
	if dup.PONumber != "PO-2025-0459" {
		t.Errorf("po_number = %q", dup.PONumber)
	}
	if dup.ApprovedBy != "" || dup.SentAt != "" || dup.ActualDeliveryDate != "" {
		t.Error("approval and delivery history should not carry over")
	}
	for _, li := range dup.LineItems {
		if li.DeliveredQuantity != 0 {
			t.Errorf("delivered quantity carried over: %d", li.DeliveredQuantity)
		}
	}

	// Same goods, same value.
	src, _ := s.Get(ctx, "po-001")
	if dup.TotalAmount != src.TotalAmount {
		t.Errorf("total = %v, want %v", dup.TotalAmount, src.TotalAmount)
	}
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

func TestApprovalFlow(t *testing.T) {
	s, clock := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())

	if _, err := s.SubmitForApproval(ctx, po.ID); err != nil {
		t.Fatal(err)
	}

	clock.Advance(time.Hour)
	approved, err := s.Approve(ctx, po.ID, "m.van.wyk")
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("status = %s", approved.Status)
	}
	if approved.ApprovedBy != "m.van.wyk" || approved.ApprovedAt != "2025-03-20T11:00:00Z" {
		t.Errorf("approval audit = %q / %q", approved.ApprovedBy, approved.ApprovedAt)
	}

	sent, err := s.Send(ctx, po.ID)
	if err != nil {
		t.Fatal(err)
	}
	if sent.SentAt == "" {
		t.Error("sent_at not stamped")
	}

	acked, err := s.Acknowledge(ctx, po.ID)
	if err != nil {
		t.Fatal(err)
	}
	if acked.AcknowledgedAt == "" {
		t.Error("acknowledged_at not stamped")
	}
}

func TestReject_ReturnsToDraftWithNote(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())
	if _, err := s.SubmitForApproval(ctx, po.ID); err != nil {
		t.Fatal(err)
	}

	rejected, err := s.Reject(ctx, po.ID, "budget code missing")
	if err != nil {
		t.Fatal(err)
	}

	if rejected.Status != StatusDraft {
		t.Errorf("status = %s", rejected.Status)
	}
	if !strings.Contains(rejected.InternalNotes, "budget code missing") {
		t.Errorf("internal notes = %q", rejected.InternalNotes)
	}

	// A second rejection appends rather than overwrites.
	if _, err := s.SubmitForApproval(ctx, po.ID); err != nil {
		t.Fatal(err)
	}
	rejected, _ = s.Reject(ctx, po.ID, "wrong supplier")
	if !strings.Contains(rejected.InternalNotes, "budget code missing") ||
		!strings.Contains(rejected.InternalNotes, "wrong supplier") {
		t.Errorf("notes trail = %q", rejected.InternalNotes)
	}
}

func TestTransitions_IllegalEdgesRejected(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())

	// Draft cannot go straight to Approved.
	_, err := s.Approve(ctx, po.ID, "m.van.wyk")
	if !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("draft -> approved: %v", err)
	}
	if want := "invalid status transition from Draft to Approved"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	// The failed transition left nothing behind.
	got, _ := s.Get(ctx, po.ID)
	if got.Status != StatusDraft || got.ApprovedBy != "" {
		t.Errorf("failed transition mutated the order: %+v", got)
	}
}

func TestCancel_TableDecidesEligibility(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	po, _ := s.Create(ctx, draftOrder())
	advanceTo(t, s, po.ID, StatusAcknowledged)

	cancelled, err := s.Cancel(ctx, po.ID, "supplier unable to fulfil")
	if err != nil {
		t.Fatal(err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %s", cancelled.Status)
	}
	if !strings.Contains(cancelled.InternalNotes, "supplier unable to fulfil") {
		t.Errorf("internal notes = %q", cancelled.InternalNotes)
	}

	// Cancelled is terminal.
	if _, err := s.SubmitForApproval(ctx, po.ID); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("transition out of cancelled: %v", err)
	}

	// Delivered orders are past the point of cancellation.
	other, _ := s.Create(ctx, draftOrder())
	advanceTo(t, s, other.ID, StatusAcknowledged)
	if _, err := s.RecordItemDelivery(ctx, other.ID, mustLineItemID(t, s, other.ID), 10); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Cancel(ctx, other.ID, ""); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("cancelling delivered order: %v", err)
	}
}

func mustLineItemID(t *testing.T, s *Service, poID string) string {
	t.Helper()
	po, err := s.Get(context.Background(), poID)
	if err != nil {
		t.Fatal(err)
	}
	return po.LineItems[0].ID
}

// =============================================================================
// DELIVERY TRACKING
// =============================================================================

func TestRecordItemDelivery_PartialThenFull(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())
	advanceTo(t, s, po.ID, StatusAcknowledged)
	liID := mustLineItemID(t, s, po.ID)

	// Partial delivery moves to PartiallyDelivered.
	partial, err := s.RecordItemDelivery(ctx, po.ID, liID, 4)
	if err != nil {
		t.Fatal(err)
	}
	if partial.Status != StatusPartiallyDelivered {
		t.Errorf("status = %s", partial.Status)
	}
	if got := partial.DeliveryProgress(); got != 40.0 {
		t.Errorf("progress = %v", got)
	}

	// Completing the quantity moves to Delivered and stamps the date.
	full, err := s.RecordItemDelivery(ctx, po.ID, liID, 6)
	if err != nil {
		t.Fatal(err)
	}
	if full.Status != StatusDelivered {
		t.Errorf("status = %s", full.Status)
	}
	if full.ActualDeliveryDate != "2025-03-20" {
		t.Errorf("actual_delivery_date = %q", full.ActualDeliveryDate)
	}
	if got := full.DeliveryProgress(); got != 100.0 {
		t.Errorf("progress = %v", got)
	}
}

func TestRecordItemDelivery_BoundsAndPreconditions(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	po, _ := s.Create(ctx, draftOrder())

	// Order not yet with the supplier.
	_, err := s.RecordItemDelivery(ctx, po.ID, po.LineItems[0].ID, 1)
	if !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("delivery on draft: %v", err)
	}

	advanceTo(t, s, po.ID, StatusAcknowledged)
	liID := mustLineItemID(t, s, po.ID)

	// Over-delivery is rejected and nothing is committed.
	if _, err := s.RecordItemDelivery(ctx, po.ID, liID, 11); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("over-delivery: %v", err)
	}
	got, _ := s.Get(ctx, po.ID)
	if got.LineItems[0].DeliveredQuantity != 0 || got.Status != StatusAcknowledged {
		t.Errorf("failed delivery mutated the order: %+v", got.LineItems[0])
	}

	// Unknown line item.
	if _, err := s.RecordItemDelivery(ctx, po.ID, "li-missing", 1); !lifecycle.IsNotFound(err) {
		t.Errorf("unknown line item: %v", err)
	}

	// Zero quantity.
	if _, err := s.RecordItemDelivery(ctx, po.ID, liID, 0); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("zero quantity: %v", err)
	}
}

// =============================================================================
// LIST AND FILTER
// =============================================================================

func TestList_FilterAndPaginate(t *testing.T) {
	s, _ := newTestService(t, Seed())
	ctx := context.Background()

	page := lifecycle.NewPagination(10)
	all := s.List(ctx, Filter{}, &page)
	if len(all) != 4 || page.TotalItems != 4 {
		t.Fatalf("unfiltered list = %d items, totals %d", len(all), page.TotalItems)
	}
	if all[0].PONumber != "PO-2025-0455" {
		t.Errorf("first = %q", all[0].PONumber)
	}

	page = lifecycle.NewPagination(10)
	drafts := s.List(ctx, Filter{Status: StatusDraft}, &page)
	if len(drafts) != 1 || drafts[0].PONumber != "PO-2025-0458" {
		t.Errorf("draft filter = %+v", drafts)
	}

	// Search is case-insensitive over number and supplier.
	page = lifecycle.NewPagination(10)
	byName := s.List(ctx, Filter{Search: "khanya"}, &page)
	if len(byName) != 1 || byName[0].SupplierName != "Khanya Office Supplies CC" {
		t.Errorf("search = %+v", byName)
	}

	// Out-of-range page clamps rather than returning empty.
	page = lifecycle.NewPagination(2)
	page.SetPage(9)
	clamped := s.List(ctx, Filter{}, &page)
	if page.CurrentPage != 2 || len(clamped) != 2 {
		t.Errorf("page = %d with %d items", page.CurrentPage, len(clamped))
	}

	// Date range on order date.
	page = lifecycle.NewPagination(10)
	feb := s.List(ctx, Filter{DateFrom: "2025-02-01", DateTo: "2025-02-28"}, &page)
	if len(feb) != 1 || feb[0].PONumber != "PO-2025-0456" {
		t.Errorf("date range = %+v", feb)
	}
}

func TestSummary_ClampsDisplayProgress(t *testing.T) {
	po := PurchaseOrder{
		LineItems: []LineItem{{Quantity: 10, DeliveredQuantity: 13}},
	}
	if got := Summarize(po).DeliveryProgress; got != 100.0 {
		t.Errorf("display progress = %v", got)
	}
	// The raw value stays unclamped.
	if got := po.DeliveryProgress(); got != 130.0 {
		t.Errorf("raw progress = %v", got)
	}
}

// =============================================================================
// KPIS
// =============================================================================

func TestStats(t *testing.T) {
	s, _ := newTestService(t, Seed())

	stats := s.Stats(context.Background())

	if stats.TotalOrders != 4 {
		t.Errorf("total orders = %d", stats.TotalOrders)
	}
	if stats.ByStatus[StatusDelivered] != 1 || stats.ByStatus[StatusDraft] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if stats.PendingApproval != 1 {
		t.Errorf("pending approval = %d", stats.PendingApproval)
	}
	if stats.AwaitingDelivery != 1 {
		t.Errorf("awaiting delivery = %d", stats.AwaitingDelivery)
	}
	// po-001 delivered 2025-02-25 against expected 2025-02-28.
	if stats.OnTimeDeliveryRate != 100.0 {
		t.Errorf("on-time rate = %v", stats.OnTimeDeliveryRate)
	}
	if stats.TotalValue <= 0 {
		t.Errorf("total value = %v", stats.TotalValue)
	}
}

func TestStats_EmptyCollection(t *testing.T) {
	s, _ := newTestService(t, nil)

	stats := s.Stats(context.Background())

	if stats.TotalOrders != 0 || stats.TotalValue != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.OnTimeDeliveryRate != 0 || stats.AverageOrderValue != 0 {
		t.Errorf("zero denominators should yield 0 rates: %+v", stats)
	}
}

// =============================================================================
// STATUS PARSING
// =============================================================================

func TestParseStatus_TotalWithFallback(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"draft", StatusDraft},
		{"Pending Approval", StatusPendingApproval},
		{"PARTIALLY_DELIVERED", StatusPartiallyDelivered},
		{" sent ", StatusSent},
		{"nonsense", StatusDraft},
		{"", StatusDraft},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.in); got != tc.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
