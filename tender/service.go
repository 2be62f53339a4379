package tender

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	tenders *lifecycle.Collection[Tender]
	clock   lifecycle.Clock
	log     *zap.Logger
}

func NewService(seed []Tender, nextSeq int, clock lifecycle.Clock, log *zap.Logger) *Service {
	return &Service{
		tenders: lifecycle.NewCollection("tender", seed, nextSeq),
		clock:   clock,
		log:     log.Named("tender"),
	}
}

func (s *Service) Collection() *lifecycle.Collection[Tender] { return s.tenders }

// =============================================================================
// QUERIES
// =============================================================================

func (s *Service) List(_ context.Context, f Filter, page *lifecycle.Pagination) []Summary {
	matched := lifecycle.Filter(s.tenders.List(), f.predicates()...)
	page.UpdateTotals(len(matched))

	out := make([]Summary, 0, page.PageSize)
	for _, t := range lifecycle.Page(matched, *page) {
		out = append(out, Summarize(t))
	}
	return out
}

func (s *Service) Get(_ context.Context, id string) (Tender, error) {
	return s.tenders.Get(id)
}

// =============================================================================
// CREATE / UPDATE / DELETE
// =============================================================================

type CreateTender struct {
	Title          string
	Description    string
	Category       string
	Department     string
	Method         Method
	RequisitionRef string
	EstimatedValue float64
	Briefing       Briefing
	ClosingDate    string
	CreatedBy      string
}

func (in CreateTender) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &lifecycle.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(in.ClosingDate) == "" {
		return &lifecycle.ValidationError{Field: "closing_date", Message: "closing date is required"}
	}
	if in.EstimatedValue < 0 {
		return &lifecycle.ValidationError{Field: "estimated_value", Message: "estimated value cannot be negative"}
	}
	return nil
}

// Create drafts a tender. The preference point system is derived from the
// estimated value and kept in sync on every edit.
func (s *Service) Create(_ context.Context, in CreateTender) (Tender, error) {
	if err := in.validate(); err != nil {
		return Tender{}, err
	}

	now := s.clock.Now()
	method := in.Method
	if method == "" {
		method = MethodOpen
	}
	t := Tender{
		ID:             uuid.NewString(),
		TenderNumber:   s.tenders.NextID("TDR-%d-%04d", now.Year()),
		Title:          in.Title,
		Description:    in.Description,
		Category:       in.Category,
		Department:     in.Department,
		Method:         method,
		RequisitionRef: in.RequisitionRef,
		EstimatedValue: in.EstimatedValue,
		Currency:       lifecycle.DefaultCurrency,
		PointSystem:    PreferencePointSystem(in.EstimatedValue),
		Briefing:       in.Briefing,
		ClosingDate:    in.ClosingDate,
		Status:         StatusDraft,
		CreatedBy:      in.CreatedBy,
		CreatedAt:      lifecycle.Stamp(now),
		UpdatedAt:      lifecycle.Stamp(now),
	}

	s.tenders.Insert(t)
	s.log.Info("tender created",
		zap.String("id", t.ID),
		zap.String("tender_number", t.TenderNumber),
		zap.String("point_system", t.PointSystem))
	return t, nil
}

type UpdateTender struct {
	Title          string
	Description    *string
	Category       string
	Department     string
	Method         Method
	EstimatedValue *float64
	Briefing       *Briefing
	ClosingDate    string
	Documents      []string
}

func (s *Service) Update(_ context.Context, id string, in UpdateTender) (Tender, error) {
	return s.tenders.Update(id, func(t Tender) (Tender, error) {
		if !t.CanBeEdited() {
			return t, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("tender in status %s cannot be edited", t.Status.Label()),
			}
		}
		if in.Title != "" {
			t.Title = in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Category != "" {
			t.Category = in.Category
		}
		if in.Department != "" {
			t.Department = in.Department
		}
		if in.Method != "" {
			t.Method = in.Method
		}
		if in.EstimatedValue != nil {
			if *in.EstimatedValue < 0 {
				return t, &lifecycle.ValidationError{Field: "estimated_value", Message: "estimated value cannot be negative"}
			}
			t.EstimatedValue = *in.EstimatedValue
			t.PointSystem = PreferencePointSystem(t.EstimatedValue)
		}
		if in.Briefing != nil {
			t.Briefing = *in.Briefing
		}
		if in.ClosingDate != "" {
			t.ClosingDate = in.ClosingDate
		}
		if in.Documents != nil {
			t.Documents = append([]string(nil), in.Documents...)
		}
		t.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return t, nil
	})
}

func (s *Service) Delete(_ context.Context, id string) error {
	t, err := s.tenders.Get(id)
	if err != nil {
		return err
	}
	if t.Status != StatusDraft {
		return &lifecycle.PreconditionError{
			Message: fmt.Sprintf("only draft tenders can be deleted, status is %s", t.Status.Label()),
		}
	}
	if err := s.tenders.Remove(id); err != nil {
		return err
	}
	s.log.Info("tender deleted", zap.String("id", id), zap.String("tender_number", t.TenderNumber))
	return nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

func (s *Service) transition(id string, target Status, apply func(t *Tender) error) (Tender, error) {
	updated, err := s.tenders.Update(id, func(t Tender) (Tender, error) {
		if err := Transitions.Check(t.Status, target); err != nil {
			return t, err
		}
		if apply != nil {
			if err := apply(&t); err != nil {
				return t, err
			}
		}
		t.Status = target
		t.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return t, nil
	})
	if err != nil {
		return Tender{}, err
	}
	s.log.Info("tender status changed",
		zap.String("id", id), zap.String("status", string(target)))
	return updated, nil
}

func (s *Service) SubmitForApproval(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusPendingApproval, nil)
}

func (s *Service) Approve(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusApproved, nil)
}

// Reject returns a pending tender to Draft for rework.
func (s *Service) Reject(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusDraft, nil)
}

// Publish places the tender on the public portal, stamping the publication
// date and the portal reference it is advertised under.
func (s *Service) Publish(_ context.Context, id, portalRef string) (Tender, error) {
	return s.transition(id, StatusPublished, func(t *Tender) error {
		t.PublicationDate = lifecycle.DateStamp(s.clock.Now())
		t.PortalRef = portalRef
		return nil
	})
}

// OpenForBids starts the bidding window.
func (s *Service) OpenForBids(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusOpen, func(t *Tender) error {
		t.OpeningDate = lifecycle.DateStamp(s.clock.Now())
		return nil
	})
}

func (s *Service) CloseBidding(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusClosed, nil)
}

func (s *Service) StartEvaluation(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusEvaluation, nil)
}

func (s *Service) MoveToAdjudication(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusAdjudication, nil)
}

// Award concludes the tender in favour of a recorded responsive bid.
func (s *Service) Award(_ context.Context, id, bidID string) (Tender, error) {
	return s.transition(id, StatusAwarded, func(t *Tender) error {
		for i := range t.Bids {
			if t.Bids[i].ID != bidID {
				continue
			}
			if !t.Bids[i].Responsive {
				return &lifecycle.PreconditionError{
					Message: fmt.Sprintf("bid from %s was found non-responsive", t.Bids[i].SupplierName),
				}
			}
			t.AwardedTo = t.Bids[i].SupplierName
			t.AwardAmount = t.Bids[i].BidAmount
			t.AwardedAt = lifecycle.Stamp(s.clock.Now())
			return nil
		}
		return &lifecycle.NotFoundError{Kind: "bid", ID: bidID}
	})
}

func (s *Service) Cancel(_ context.Context, id string) (Tender, error) {
	return s.transition(id, StatusCancelled, nil)
}

// =============================================================================
// BIDS
// =============================================================================

// SubmitBid records a supplier submission while the bidding window is open.
// Bids are screened responsive by default; screening can overturn that
// during evaluation.
type SubmitBid struct {
	SupplierName string
	BidAmount    float64
	BBBEELevel   int
}

func (s *Service) RecordBid(_ context.Context, id string, in SubmitBid) (Tender, error) {
	if strings.TrimSpace(in.SupplierName) == "" {
		return Tender{}, &lifecycle.ValidationError{Field: "supplier_name", Message: "supplier name is required"}
	}
	if in.BidAmount <= 0 {
		return Tender{}, &lifecycle.ValidationError{Field: "bid_amount", Message: "bid amount must be positive"}
	}
	updated, err := s.tenders.Update(id, func(t Tender) (Tender, error) {
		if !t.IsAcceptingBids() {
			return t, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("tender is %s and not accepting bids", t.Status.Label()),
			}
		}
		t.Bids = append(t.Bids, Bid{
			ID:           uuid.NewString(),
			SupplierName: in.SupplierName,
			BidAmount:    in.BidAmount,
			BBBEELevel:   in.BBBEELevel,
			SubmittedAt:  lifecycle.Stamp(s.clock.Now()),
			Responsive:   true,
		})
		t.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return t, nil
	})
	if err != nil {
		return Tender{}, err
	}
	s.log.Info("bid recorded",
		zap.String("id", id),
		zap.String("supplier", in.SupplierName),
		zap.Int("bid_count", len(updated.Bids)))
	return updated, nil
}

// ScreenBid records the responsiveness outcome and score for one bid during
// evaluation.
func (s *Service) ScreenBid(_ context.Context, id, bidID string, responsive bool, score float64, notes string) (Tender, error) {
	return s.tenders.Update(id, func(t Tender) (Tender, error) {
		if t.Status != StatusEvaluation {
			return t, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("bids can only be screened during evaluation, tender is %s", t.Status.Label()),
			}
		}
		for i := range t.Bids {
			if t.Bids[i].ID != bidID {
				continue
			}
			t.Bids[i].Responsive = responsive
			t.Bids[i].Score = score
			t.Bids[i].Notes = notes
			t.UpdatedAt = lifecycle.Stamp(s.clock.Now())
			return t, nil
		}
		return t, &lifecycle.NotFoundError{Kind: "bid", ID: bidID}
	})
}
