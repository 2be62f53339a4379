package tender

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

func newTestService(t *testing.T, seed []Tender) (*Service, *lifecycle.FixedClock) {
	t.Helper()
	clock := lifecycle.NewFixedClock(time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC))
	return NewService(seed, SeedSequence, clock, zap.NewNop()), clock
}

func draftTender() CreateTender {
	return CreateTender{
		Title:          "Test tender",
		Category:       "ICT",
		Department:     "Information Technology",
		EstimatedValue: 2_000_000,
		ClosingDate:    "2025-05-30",
		CreatedBy:      "tester",
	}
}

// openTender drafts a tender and walks it to the bidding window.
func openTender(t *testing.T, s *Service) Tender {
	t.Helper()
	ctx := context.Background()
	td, err := s.Create(ctx, draftTender())
	if err != nil {
		t.Fatal(err)
	}
	for _, step := range []func(context.Context, string) (Tender, error){
		s.SubmitForApproval, s.Approve,
	} {
		if td, err = step(ctx, td.ID); err != nil {
			t.Fatal(err)
		}
	}
	if td, err = s.Publish(ctx, td.ID, "eTender-TEST-1"); err != nil {
		t.Fatal(err)
	}
	if td, err = s.OpenForBids(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	return td
}

// =============================================================================
// PREFERENCE POINTS
// =============================================================================

func TestPreferencePointSystem(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0, "80/20"},
		{49_999_999, "80/20"},
		{50_000_000, "90/10"},
		{62_000_000, "90/10"},
	}
	for _, tc := range cases {
		if got := PreferencePointSystem(tc.value); got != tc.want {
			t.Errorf("PreferencePointSystem(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestUpdate_RederivesPointSystem(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td, _ := s.Create(ctx, draftTender())
	if td.PointSystem != "80/20" {
		t.Fatalf("initial point system = %q", td.PointSystem)
	}

	big := 55_000_000.0
	updated, err := s.Update(ctx, td.ID, UpdateTender{EstimatedValue: &big})
	if err != nil {
		t.Fatal(err)
	}
	if updated.PointSystem != "90/10" {
		t.Errorf("point system = %q", updated.PointSystem)
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestCreate_AssignsNumber(t *testing.T) {
	s, _ := newTestService(t, nil)

	td, err := s.Create(context.Background(), draftTender())
	if err != nil {
		t.Fatal(err)
	}
	if td.TenderNumber != "TDR-2025-0033" {
		t.Errorf("tender_number = %q", td.TenderNumber)
	}
	if td.Status != StatusDraft || td.Method != MethodOpen {
		t.Errorf("defaults = %s / %s", td.Status, td.Method)
	}
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()

	noClose := draftTender()
	noClose.ClosingDate = ""
	if _, err := s.Create(ctx, noClose); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("missing closing date: %v", err)
	}

	negative := draftTender()
	negative.EstimatedValue = -1
	if _, err := s.Create(ctx, negative); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("negative estimate: %v", err)
	}
}

func TestPublish_StampsPortalReference(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td, _ := s.Create(ctx, draftTender())
	if _, err := s.SubmitForApproval(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Approve(ctx, td.ID); err != nil {
		t.Fatal(err)
	}

	published, err := s.Publish(ctx, td.ID, "eTender-445566")
	if err != nil {
		t.Fatal(err)
	}
	if published.Status != StatusPublished {
		t.Errorf("status = %s", published.Status)
	}
	if published.PortalRef != "eTender-445566" || published.PublicationDate != "2025-03-20" {
		t.Errorf("portal = %q on %q", published.PortalRef, published.PublicationDate)
	}

	// Publication requires prior approval.
	fresh, _ := s.Create(ctx, draftTender())
	if _, err := s.Publish(ctx, fresh.ID, "x"); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("publishing a draft: %v", err)
	}
}

func TestEvaluationChainIsLinear(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td := openTender(t, s)

	// Cannot jump from Open to Adjudication.
	if _, err := s.MoveToAdjudication(ctx, td.ID); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("open -> adjudication: %v", err)
	}

	if _, err := s.CloseBidding(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StartEvaluation(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MoveToAdjudication(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
}

// =============================================================================
// BIDS AND AWARD
// =============================================================================

func TestRecordBid_OnlyWhileOpen(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td := openTender(t, s)

	got, err := s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "Bidder One", BidAmount: 1_900_000, BBBEELevel: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bids) != 1 || !got.Bids[0].Responsive {
		t.Errorf("bids = %+v", got.Bids)
	}
	if got.Bids[0].SubmittedAt != "2025-03-20T10:00:00Z" {
		t.Errorf("submitted_at = %q", got.Bids[0].SubmittedAt)
	}

	if _, err := s.CloseBidding(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	_, err = s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "Late Bidder", BidAmount: 1})
	if !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("bid after close: %v", err)
	}

	if _, err := s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "", BidAmount: 5}); !errors.Is(err, lifecycle.ErrValidation) {
		t.Errorf("anonymous bid: %v", err)
	}
}

func TestAward_RequiresResponsiveBid(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td := openTender(t, s)

	td, _ = s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "Bidder One", BidAmount: 1_900_000})
	td, _ = s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "Bidder Two", BidAmount: 1_500_000})
	bidOne, bidTwo := td.Bids[0].ID, td.Bids[1].ID

	if _, err := s.CloseBidding(ctx, td.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StartEvaluation(ctx, td.ID); err != nil {
		t.Fatal(err)
	}

	// The cheapest bid fails responsiveness screening.
	td, err := s.ScreenBid(ctx, td.ID, bidTwo, false, 0, "no tax clearance")
	if err != nil {
		t.Fatal(err)
	}
	if td.ResponsiveBids() != 1 {
		t.Errorf("responsive bids = %d", td.ResponsiveBids())
	}

	if _, err := s.MoveToAdjudication(ctx, td.ID); err != nil {
		t.Fatal(err)
	}

	// Awarding the non-responsive bid is refused; the tender stays put.
	if _, err := s.Award(ctx, td.ID, bidTwo); !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Fatalf("award to non-responsive bid: %v", err)
	}
	check, _ := s.Get(ctx, td.ID)
	if check.Status != StatusAdjudication || check.AwardedTo != "" {
		t.Errorf("failed award mutated tender: %+v", check)
	}

	awarded, err := s.Award(ctx, td.ID, bidOne)
	if err != nil {
		t.Fatal(err)
	}
	if awarded.Status != StatusAwarded || awarded.AwardedTo != "Bidder One" || awarded.AwardAmount != 1_900_000 {
		t.Errorf("award = %+v", awarded)
	}

	// Awarded is terminal, even for cancellation.
	if _, err := s.Cancel(ctx, td.ID); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("cancel after award: %v", err)
	}
}

func TestScreenBid_OnlyDuringEvaluation(t *testing.T) {
	s, _ := newTestService(t, nil)
	ctx := context.Background()
	td := openTender(t, s)
	td, _ = s.RecordBid(ctx, td.ID, SubmitBid{SupplierName: "Bidder", BidAmount: 100})

	_, err := s.ScreenBid(ctx, td.ID, td.Bids[0].ID, true, 88.5, "")
	if !errors.Is(err, lifecycle.ErrPreconditionFailed) {
		t.Errorf("screening while open: %v", err)
	}
}

// =============================================================================
// LIST AND KPIS
// =============================================================================

func TestList_Filters(t *testing.T) {
	s, _ := newTestService(t, Seed())
	ctx := context.Background()

	page := lifecycle.NewPagination(10)
	open := s.List(ctx, Filter{Status: StatusOpen}, &page)
	if len(open) != 1 || open[0].TenderNumber != "TDR-2025-0031" {
		t.Errorf("status filter = %+v", open)
	}

	page = lifecycle.NewPagination(10)
	byPortal := s.List(ctx, Filter{Search: "etender-889123"}, &page)
	if len(byPortal) != 1 || byPortal[0].TenderNumber != "TDR-2025-0030" {
		t.Errorf("portal search = %+v", byPortal)
	}

	page = lifecycle.NewPagination(10)
	restricted := s.List(ctx, Filter{Method: MethodRestricted}, &page)
	if len(restricted) != 1 || restricted[0].Title != "Panel of quantity surveyors" {
		t.Errorf("method filter = %+v", restricted)
	}

	// Closing-date window.
	page = lifecycle.NewPagination(10)
	closingApril := s.List(ctx, Filter{DateFrom: "2025-04-01", DateTo: "2025-04-30"}, &page)
	if len(closingApril) != 1 || closingApril[0].TenderNumber != "TDR-2025-0031" {
		t.Errorf("date filter = %+v", closingApril)
	}
}

func TestStats(t *testing.T) {
	s, _ := newTestService(t, Seed())

	stats := s.Stats(context.Background())

	if stats.TotalTenders != 3 || stats.Awarded != 1 || stats.OpenForBids != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalAwarded != 4_350_000 {
		t.Errorf("total awarded = %v", stats.TotalAwarded)
	}
	// Two tenders reached bidding (awarded with 3 bids, open with 1).
	if stats.AverageBids != 2.0 {
		t.Errorf("average bids = %v", stats.AverageBids)
	}
	// Award came in under the 4.8M estimate.
	if got := stats.AwardedVsEstimate; got < 90 || got > 91 {
		t.Errorf("awarded vs estimate = %v", got)
	}
}

func TestParse_TotalWithFallback(t *testing.T) {
	if got := ParseStatus("Open for Bids"); got != StatusOpen {
		t.Errorf("status parse = %s", got)
	}
	if got := ParseStatus("garbage"); got != StatusDraft {
		t.Errorf("status fallback = %s", got)
	}
	if got := ParseMethod("RFQ"); got != MethodQuotation {
		t.Errorf("method parse = %s", got)
	}
	if got := ParseMethod(""); got != MethodOpen {
		t.Errorf("method fallback = %s", got)
	}
}
