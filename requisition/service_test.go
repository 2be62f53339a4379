package requisition

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestService(t *testing.T, seed []Requisition) (*Service, *lifecycle.FixedClock) {
	t.Helper()
	clock := lifecycle.NewFixedClock(time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC))
	return NewService(seed, SeedSequence, clock, zap.NewNop()), clock
}

func draftRequisition() CreateRequisition {
	return CreateRequisition{
		Title:        "Test procurement",
		Department:   "Finance",
		BudgetCode:   "FIN-TEST-01",
		DateRequired: "2025-05-01",
		RequestedBy:  "tester",
		Items: []Item{
			{Description: "Widget", Quantity: 10, Unit: "each", EstimatedUnitPrice: 100},
		},
	}
}

// =============================================================================
// CREATE AND TOTALS
// =============================================================================

func TestCreate_ComputesEstimates(t *testing.T) {
	s, _ := newTestService(t, nil)

	r, err := s.Create(context.Background(), draftRequisition())
	if err != nil {
		t.Fatal(err)
	}

	if r.Status != StatusDraft {
		t.Errorf("status = %s", r.Status)
	}
	if r.RequisitionNumber != "REQ-2025-1088" {
		t.Errorf("requisition_number = %q", r.RequisitionNumber)
	}
	if r.EstimatedTotal != 1000 {
		t.Errorf("estimated total = %v", r.EstimatedTotal)
	}
	if r.Priority != PriorityMedium {
		t.Errorf("default priority = %s", r.Priority)
	}
	if r.Currency != "ZAR" {
		t.Errorf("currency = %q", r.Currency)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	noTitle := draftRequisition()
	noTitle.Title = " "
	if _, err := s.Create(ctx, noTitle); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("missing title: %v", err)
	}

	noDept := draftRequisition()
	noDept.Department = ""
	if _, err := s.Create(ctx, noDept); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("missing department: %v", err)
	}

	badQty := draftRequisition()
	badQty.Items[0].Quantity = -1
	if _, err := s.Create(ctx, badQty); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("negative quantity: %v", err)
	}
}

// =============================================================================
// APPROVAL FLOW
// =============================================================================

func TestApprovalFlow_EndToEnd(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	r, _ := s.Create(ctx, draftRequisition())

	if _, err := s.Submit(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveToApproval(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	approved, err := s.Approve(ctx, r.ID, "m.van.wyk")
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != StatusApproved || approved.ApprovedBy != "m.van.wyk" {
		t.Errorf("approved = %+v", approved)
	}

	started, err := s.StartFulfilment(ctx, r.ID, "tender-9", "")
	if err != nil {
		t.Fatal(err)
	}
	if started.Status != StatusInProgress || started.TenderRef != "tender-9" {
		t.Errorf("fulfilment = %+v", started)
	}

	done, err := s.Complete(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if done.Status != StatusComplete {
		t.Errorf("status = %s", done.Status)
	}

	// Complete is terminal.
	if _, err := s.Cancel(ctx, r.ID); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("cancel after completion: %v", err)
	}
}

func TestReject_RequiresReasonAndAllowsRework(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	r, _ := s.Create(ctx, draftRequisition())
	if _, err := s.Submit(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveToApproval(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	// A reason is mandatory.
	if _, err := s.Reject(ctx, r.ID, "  "); !errors.Is(err, lifecycle.ErrValidation) {
		t.Fatalf("empty reason: %v", err)
	}

	rejected, err := s.Reject(ctx, r.ID, "budget exceeded")
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != StatusRejected || rejected.RejectionReason != "budget exceeded" {
		t.Errorf("rejected = %+v", rejected)
	}

	// Rejected requisitions can be edited and reworked back to draft.
	if _, err := s.Update(ctx, r.ID, UpdateRequisition{
		Items: []Item{{Description: "Cheaper widget", Quantity: 10, EstimatedUnitPrice: 50}},
	}); err != nil {
		t.Fatal(err)
	}
	reworked, err := s.Rework(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reworked.Status != StatusDraft {
		t.Errorf("status = %s", reworked.Status)
	}
	if reworked.EstimatedTotal != 500 {
		t.Errorf("reworked total = %v", reworked.EstimatedTotal)
	}

	// Approval after resubmission clears the old rejection reason.
	if _, err := s.Submit(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveToApproval(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	approved, _ := s.Approve(ctx, r.ID, "m.van.wyk")
	if approved.RejectionReason != "" {
		t.Errorf("stale rejection reason: %q", approved.RejectionReason)
	}
}

func TestUpdate_LockedOnceSubmitted(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	r, _ := s.Create(ctx, draftRequisition())
	if _, err := s.Submit(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	_, err := s.Update(ctx, r.ID, UpdateRequisition{Title: "changed"})
	if !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("edit after submission: %v", err)
	}
}

func TestDelete_DraftOnly(t *testing.T) {
	s, _ := newTestService(t, Seed())
	ctx := context.Background()

	// req-003 is pending approval.
	if err := s.Delete(ctx, "req-003"); !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("deleting pending requisition: %v", err)
	}

	r, _ := s.Create(ctx, draftRequisition())
	if err := s.Delete(ctx, r.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, r.ID); !lifecycle.IsNotFound(err) {
		t.Errorf("deleted requisition still present: %v", err)
	}
}

// =============================================================================
// LIST AND KPIS
// =============================================================================

func TestList_FilterByDepartmentAndPriority(t *testing.T) {
	s, _ := newTestService(t, Seed())
	ctx := context.Background()

	page := lifecycle.NewPagination(10)
	finance := s.List(ctx, Filter{Department: "finance"}, &page)
	if len(finance) != 1 || finance[0].RequisitionNumber != "REQ-2025-1084" {
		t.Errorf("department filter = %+v", finance)
	}

	page = lifecycle.NewPagination(10)
	urgent := s.List(ctx, Filter{Priority: PriorityUrgent}, &page)
	if len(urgent) != 1 || urgent[0].Title != "Emergency generator maintenance" {
		t.Errorf("priority filter = %+v", urgent)
	}

	page = lifecycle.NewPagination(10)
	byNumber := s.List(ctx, Filter{Search: "req-2025-1086"}, &page)
	if len(byNumber) != 1 {
		t.Errorf("search = %+v", byNumber)
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestService(t, Seed())

	stats := s.Stats(context.Background())

	if stats.TotalRequisitions != 4 {
		t.Errorf("total = %d", stats.TotalRequisitions)
	}
	if stats.AwaitingApproval != 1 {
		t.Errorf("awaiting approval = %d", stats.AwaitingApproval)
	}
	if stats.UrgentOpen != 1 {
		t.Errorf("urgent open = %d", stats.UrgentOpen)
	}
	// 2 approved outcomes (complete, in progress) vs 1 rejected.
	if got := stats.ApprovalRate; got < 66 || got > 67 {
		t.Errorf("approval rate = %v", got)
	}
	if stats.ByDepartment["Finance"] != 1 {
		t.Errorf("by department = %v", stats.ByDepartment)
	}
	// Rejected requisitions do not count toward committed spend.
	rejectedTotal := 65000.0
	full := lifecycle.SumBy(Seed(), func(r Requisition) float64 { return r.EstimatedTotal })
	if stats.TotalEstimated != full-rejectedTotal {
		t.Errorf("estimated total = %v, want %v", stats.TotalEstimated, full-rejectedTotal)
	}
}

func TestParse_TotalWithFallback(t *testing.T) {
	if got := ParseStatus("In Progress"); got != StatusInProgress {
		t.Errorf("status parse = %s", got)
	}
	if got := ParseStatus("???"); got != StatusDraft {
		t.Errorf("status fallback = %s", got)
	}
	if got := ParsePriority("URGENT"); got != PriorityUrgent {
		t.Errorf("priority parse = %s", got)
	}
	if got := ParsePriority(""); got != PriorityMedium {
		t.Errorf("priority fallback = %s", got)
	}
}
