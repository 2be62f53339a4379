package requisition

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
	requisitions *lifecycle.Collection[Requisition]
	clock        lifecycle.Clock
	log          *zap.Logger
}

func NewService(seed []Requisition, nextSeq int, clock lifecycle.Clock, log *zap.Logger) *Service {
	return &Service{
		requisitions: lifecycle.NewCollection("requisition", seed, nextSeq),
		clock:        clock,
		log:          log.Named("requisition"),
	}
}

func (s *Service) Collection() *lifecycle.Collection[Requisition] { return s.requisitions }

// =============================================================================
// QUERIES
// =============================================================================

func (s *Service) List(_ context.Context, f Filter, page *lifecycle.Pagination) []Summary {
	matched := lifecycle.Filter(s.requisitions.List(), f.predicates()...)
	page.UpdateTotals(len(matched))

	out := make([]Summary, 0, page.PageSize)
	for _, r := range lifecycle.Page(matched, *page) {
		out = append(out, Summarize(r))
	}
	return out
}

func (s *Service) Get(_ context.Context, id string) (Requisition, error) {
	return s.requisitions.Get(id)
}

// =============================================================================
// CREATE / UPDATE / DELETE
// =============================================================================

type CreateRequisition struct {
	Title         string
	Description   string
	Department    string
	BudgetCode    string
	Priority      Priority
	Items         []Item
	DateRequired  string
	Justification string
	RequestedBy   string
}

func (in CreateRequisition) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &lifecycle.ValidationError{Field: "title", Message: "title is required"}
	}
	if strings.TrimSpace(in.Department) == "" {
		return &lifecycle.ValidationError{Field: "department", Message: "department is required"}
	}
	if len(in.Items) == 0 {
		return &lifecycle.ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return &lifecycle.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be positive",
			}
		}
		if item.EstimatedUnitPrice < 0 {
			return &lifecycle.ValidationError{
				Field:   fmt.Sprintf("items[%d].estimated_unit_price", i),
				Message: "estimated price cannot be negative",
			}
		}
	}
	return nil
}

func (s *Service) Create(_ context.Context, in CreateRequisition) (Requisition, error) {
	if err := in.validate(); err != nil {
		return Requisition{}, err
	}

	now := s.clock.Now()
	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	r := Requisition{
		ID:                uuid.NewString(),
		RequisitionNumber: s.requisitions.NextID("REQ-%d-%04d", now.Year()),
		Title:             in.Title,
		Description:       in.Description,
		Department:        in.Department,
		BudgetCode:        in.BudgetCode,
		Priority:          priority,
		Items:             append([]Item(nil), in.Items...),
		Currency:          lifecycle.DefaultCurrency,
		DateRequired:      in.DateRequired,
		Justification:     in.Justification,
		Status:            StatusDraft,
		RequestedBy:       in.RequestedBy,
		CreatedAt:         lifecycle.Stamp(now),
		UpdatedAt:         lifecycle.Stamp(now),
	}
	for i := range r.Items {
		if r.Items[i].ID == "" {
			r.Items[i].ID = uuid.NewString()
		}
	}
	r.CalculateTotals()

	s.requisitions.Insert(r)
	s.log.Info("requisition created",
		zap.String("id", r.ID),
		zap.String("requisition_number", r.RequisitionNumber),
		zap.String("department", r.Department))
	return r, nil
}

type UpdateRequisition struct {
	Title         string
	Description   *string
	BudgetCode    string
	Priority      Priority
	Items         []Item
	DateRequired  string
	Justification *string
}

// Update edits a draft or rejected requisition; rework after rejection keeps
// the rejection reason until resubmission.
func (s *Service) Update(_ context.Context, id string, in UpdateRequisition) (Requisition, error) {
	return s.requisitions.Update(id, func(r Requisition) (Requisition, error) {
		if !r.CanBeEdited() {
			return r, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("requisition in status %s cannot be edited", r.Status.Label()),
			}
		}
		if in.Title != "" {
			r.Title = in.Title
		}
		if in.Description != nil {
			r.Description = *in.Description
		}
		if in.BudgetCode != "" {
			r.BudgetCode = in.BudgetCode
		}
		if in.Priority != "" {
			r.Priority = in.Priority
		}
		if in.Items != nil {
			r.Items = append([]Item(nil), in.Items...)
			for i := range r.Items {
				if r.Items[i].ID == "" {
					r.Items[i].ID = uuid.NewString()
				}
			}
		}
		if in.DateRequired != "" {
			r.DateRequired = in.DateRequired
		}
		if in.Justification != nil {
			r.Justification = *in.Justification
		}
		r.CalculateTotals()
		r.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return r, nil
	})
}

func (s *Service) Delete(_ context.Context, id string) error {
	r, err := s.requisitions.Get(id)
	if err != nil {
		return err
	}
	if r.Status != StatusDraft {
		return &lifecycle.PreconditionError{
			Message: fmt.Sprintf("only draft requisitions can be deleted, status is %s", r.Status.Label()),
		}
	}
	if err := s.requisitions.Remove(id); err != nil {
		return err
	}
	s.log.Info("requisition deleted", zap.String("id", id), zap.String("requisition_number", r.RequisitionNumber))
	return nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

func (s *Service) transition(id string, target Status, apply func(r *Requisition)) (Requisition, error) {
	updated, err := s.requisitions.Update(id, func(r Requisition) (Requisition, error) {
		if err := Transitions.Check(r.Status, target); err != nil {
			return r, err
		}
		r.Status = target
		r.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		if apply != nil {
			apply(&r)
		}
		return r, nil
	})
	if err != nil {
		return Requisition{}, err
	}
	s.log.Info("requisition status changed",
		zap.String("id", id), zap.String("status", string(target)))
	return updated, nil
}

// Submit sends a draft into the approval queue. Submitted and
// PendingApproval are distinct so intake triage can precede the approver.
func (s *Service) Submit(_ context.Context, id string) (Requisition, error) {
	return s.transition(id, StatusSubmitted, nil)
}

func (s *Service) MoveToApproval(_ context.Context, id string) (Requisition, error) {
	return s.transition(id, StatusPendingApproval, nil)
}

func (s *Service) Approve(_ context.Context, id, approver string) (Requisition, error) {
	return s.transition(id, StatusApproved, func(r *Requisition) {
		r.ApprovedBy = approver
		r.ApprovedAt = lifecycle.Stamp(s.clock.Now())
		r.RejectionReason = ""
	})
}

func (s *Service) Reject(_ context.Context, id, reason string) (Requisition, error) {
	if strings.TrimSpace(reason) == "" {
		return Requisition{}, &lifecycle.ValidationError{Field: "reason", Message: "rejection reason is required"}
	}
	return s.transition(id, StatusRejected, func(r *Requisition) {
		r.RejectionReason = reason
	})
}

// Rework returns a rejected requisition to Draft for correction.
func (s *Service) Rework(_ context.Context, id string) (Requisition, error) {
	return s.transition(id, StatusDraft, nil)
}

// StartFulfilment marks the requisition as being sourced, recording the
// downstream tender or purchase order it feeds.
func (s *Service) StartFulfilment(_ context.Context, id, tenderRef, poRef string) (Requisition, error) {
	return s.transition(id, StatusInProgress, func(r *Requisition) {
		if tenderRef != "" {
			r.TenderRef = tenderRef
		}
		if poRef != "" {
			r.PORef = poRef
		}
	})
}

func (s *Service) Complete(_ context.Context, id string) (Requisition, error) {
	return s.transition(id, StatusComplete, nil)
}

func (s *Service) Cancel(_ context.Context, id string) (Requisition, error) {
	return s.transition(id, StatusCancelled, nil)
}
