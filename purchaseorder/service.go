package purchaseorder

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

// Service owns the purchase-order collection and enforces the status machine
// on every mutation. All writes go through the collection's validate-then-apply
// update, so a failed precondition never leaves a partial write behind.
type Service struct {
	orders *lifecycle.Collection[PurchaseOrder]
	clock  lifecycle.Clock
	log    *zap.Logger
}

func NewService(seed []PurchaseOrder, nextSeq int, clock lifecycle.Clock, log *zap.Logger) *Service {
	return &Service{
		orders: lifecycle.NewCollection("purchase order", seed, nextSeq),
		clock:  clock,
		log:    log.Named("purchaseorder"),
	}
}

// Collection exposes the underlying store for persistence snapshots.
func (s *Service) Collection() *lifecycle.Collection[PurchaseOrder] { return s.orders }

// =============================================================================
// QUERIES
// =============================================================================

// List returns summaries matching the filter, paged. The pagination totals
// are updated in place to reflect the filtered count.
func (s *Service) List(_ context.Context, f Filter, page *lifecycle.Pagination) []Summary {
	matched := lifecycle.Filter(s.orders.List(), f.predicates()...)
	page.UpdateTotals(len(matched))

	out := make([]Summary, 0, page.PageSize)
	for _, po := range lifecycle.Page(matched, *page) {
		out = append(out, Summarize(po))
	}
	return out
}

func (s *Service) Get(_ context.Context, id string) (PurchaseOrder, error) {
	return s.orders.Get(id)
}

// =============================================================================
// CREATE / UPDATE / DELETE
// =============================================================================

// CreateOrder is the input for drafting a new purchase order.
type CreateOrder struct {
	ContractRef          string
	RequisitionRef       string
	TenderRef            string
	Supplier             Supplier
	LineItems            []LineItem
	DeliveryAddress      DeliveryAddress
	PaymentTerms         string
	ExpectedDeliveryDate string
	Notes                string
	CreatedBy            string
}

func (in CreateOrder) validate() error {
	if strings.TrimSpace(in.Supplier.Name) == "" {
		return &lifecycle.ValidationError{Field: "supplier", Message: "supplier name is required"}
	}
	if len(in.LineItems) == 0 {
		return &lifecycle.ValidationError{Field: "line_items", Message: "at least one line item is required"}
	}
	for i, li := range in.LineItems {
		if li.Quantity <= 0 {
			return &lifecycle.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].quantity", i),
				Message: "quantity must be positive",
			}
		}
		if li.UnitPrice <= 0 {
			return &lifecycle.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].unit_price", i),
				Message: "unit price must be positive",
			}
		}
	}
	return nil
}

// Create drafts a new order. Line-item and order totals are computed here;
// callers never supply them.
func (s *Service) Create(_ context.Context, in CreateOrder) (PurchaseOrder, error) {
	if err := in.validate(); err != nil {
		return PurchaseOrder{}, err
	}

	now := s.clock.Now()
	po := PurchaseOrder{
		ID:                   uuid.NewString(),
		PONumber:             s.orders.NextID("PO-%d-%04d", now.Year()),
		ContractRef:          in.ContractRef,
		RequisitionRef:       in.RequisitionRef,
		TenderRef:            in.TenderRef,
		Supplier:             in.Supplier,
		LineItems:            append([]LineItem(nil), in.LineItems...),
		DeliveryAddress:      in.DeliveryAddress,
		Status:               StatusDraft,
		Currency:             lifecycle.DefaultCurrency,
		PaymentTerms:         in.PaymentTerms,
		OrderDate:            lifecycle.DateStamp(now),
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		Notes:                in.Notes,
		CreatedBy:            in.CreatedBy,
		CreatedAt:            lifecycle.Stamp(now),
		UpdatedAt:            lifecycle.Stamp(now),
	}
	for i := range po.LineItems {
		if po.LineItems[i].ID == "" {
			po.LineItems[i].ID = uuid.NewString()
		}
		if po.LineItems[i].TaxRate == 0 {
			po.LineItems[i].TaxRate = DefaultTaxRate
		}
	}
	po.CalculateTotals()

	s.orders.Insert(po)
	s.log.Info("purchase order created",
		zap.String("id", po.ID),
		zap.String("po_number", po.PONumber),
		zap.String("supplier", po.Supplier.Name))
	return po, nil
}

// UpdateOrder carries the editable fields. Nil slices and empty strings leave
// the existing value in place, except Notes which is always overwritten.
type UpdateOrder struct {
	Supplier             *Supplier
	LineItems            []LineItem
	DeliveryAddress      *DeliveryAddress
	PaymentTerms         string
	ExpectedDeliveryDate string
	Notes                *string
}

// Update edits a draft or pending order. Totals are recomputed whenever line
// items change.
func (s *Service) Update(_ context.Context, id string, in UpdateOrder) (PurchaseOrder, error) {
	return s.orders.Update(id, func(po PurchaseOrder) (PurchaseOrder, error) {
		if !po.CanBeEdited() {
			return po, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("purchase order in status %s cannot be edited", po.Status.Label()),
			}
		}
		if in.Supplier != nil {
			po.Supplier = *in.Supplier
		}
		if in.LineItems != nil {
			po.LineItems = append([]LineItem(nil), in.LineItems...)
			for i := range po.LineItems {
				if po.LineItems[i].ID == "" {
					po.LineItems[i].ID = uuid.NewString()
				}
				if po.LineItems[i].TaxRate == 0 {
					po.LineItems[i].TaxRate = DefaultTaxRate
				}
			}
		}
		if in.DeliveryAddress != nil {
			po.DeliveryAddress = *in.DeliveryAddress
		}
		if in.PaymentTerms != "" {
			po.PaymentTerms = in.PaymentTerms
		}
		if in.ExpectedDeliveryDate != "" {
			po.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		}
		if in.Notes != nil {
			po.Notes = *in.Notes
		}
		po.CalculateTotals()
		po.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return po, nil
	})
}

// Delete removes a draft order. Orders past Draft stay on record.
func (s *Service) Delete(_ context.Context, id string) error {
	po, err := s.orders.Get(id)
	if err != nil {
		return err
	}
	if po.Status != StatusDraft {
		return &lifecycle.PreconditionError{
			Message: fmt.Sprintf("only draft purchase orders can be deleted, status is %s", po.Status.Label()),
		}
	}
	if err := s.orders.Remove(id); err != nil {
		return err
	}
	s.log.Info("purchase order deleted", zap.String("id", id), zap.String("po_number", po.PONumber))
	return nil
}

// Duplicate copies an order into a fresh draft with a new PO number. Delivery
// progress and approval history are not carried over.
func (s *Service) Duplicate(_ context.Context, id string) (PurchaseOrder, error) {
	src, err := s.orders.Get(id)
	if err != nil {
		return PurchaseOrder{}, err
	}

	now := s.clock.Now()
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.PONumber = s.orders.NextID("PO-%d-%04d", now.Year())
	dup.Status = StatusDraft
	dup.OrderDate = lifecycle.DateStamp(now)
	dup.CreatedAt = lifecycle.Stamp(now)
	dup.UpdatedAt = lifecycle.Stamp(now)
	dup.ActualDeliveryDate = ""
	dup.ApprovedBy = ""
	dup.ApprovedAt = ""
	dup.SentAt = ""
	dup.AcknowledgedAt = ""
	dup.InternalNotes = ""
	for i := range dup.LineItems {
		dup.LineItems[i].ID = uuid.NewString()
		dup.LineItems[i].DeliveredQuantity = 0
	}
	dup.CalculateTotals()

	s.orders.Insert(dup)
	s.log.Info("purchase order duplicated",
		zap.String("source", src.PONumber), zap.String("po_number", dup.PONumber))
	return dup, nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

// transition moves the order to target after checking the edge, then runs the
// optional side effects on the clone before commit.
func (s *Service) transition(id string, target Status, apply func(po *PurchaseOrder)) (PurchaseOrder, error) {
	updated, err := s.orders.Update(id, func(po PurchaseOrder) (PurchaseOrder, error) {
		if err := Transitions.Check(po.Status, target); err != nil {
			return po, err
		}
		po.Status = target
		po.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		if apply != nil {
			apply(&po)
		}
		return po, nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	s.log.Info("purchase order status changed",
		zap.String("id", id), zap.String("status", string(target)))
	return updated, nil
}

func (s *Service) SubmitForApproval(_ context.Context, id string) (PurchaseOrder, error) {
	return s.transition(id, StatusPendingApproval, nil)
}

func (s *Service) Approve(_ context.Context, id, approver string) (PurchaseOrder, error) {
	return s.transition(id, StatusApproved, func(po *PurchaseOrder) {
		po.ApprovedBy = approver
		po.ApprovedAt = lifecycle.Stamp(s.clock.Now())
	})
}

// Reject returns a pending order to Draft and records the reason in the
// internal notes trail.
func (s *Service) Reject(_ context.Context, id, reason string) (PurchaseOrder, error) {
	return s.transition(id, StatusDraft, func(po *PurchaseOrder) {
		note := fmt.Sprintf("Rejected on %s: %s", lifecycle.DateStamp(s.clock.Now()), reason)
		if po.InternalNotes == "" {
			po.InternalNotes = note
		} else {
			po.InternalNotes = po.InternalNotes + "\n" + note
		}
	})
}

func (s *Service) Send(_ context.Context, id string) (PurchaseOrder, error) {
	return s.transition(id, StatusSent, func(po *PurchaseOrder) {
		po.SentAt = lifecycle.Stamp(s.clock.Now())
	})
}

func (s *Service) Acknowledge(_ context.Context, id string) (PurchaseOrder, error) {
	return s.transition(id, StatusAcknowledged, func(po *PurchaseOrder) {
		po.AcknowledgedAt = lifecycle.Stamp(s.clock.Now())
	})
}

func (s *Service) Invoice(_ context.Context, id string) (PurchaseOrder, error) {
	return s.transition(id, StatusInvoiced, nil)
}

func (s *Service) Close(_ context.Context, id string) (PurchaseOrder, error) {
	return s.transition(id, StatusClosed, nil)
}

// Cancel cancels the order and records the reason. The transition table
// decides which statuses are still cancellable.
func (s *Service) Cancel(_ context.Context, id, reason string) (PurchaseOrder, error) {
	return s.transition(id, StatusCancelled, func(po *PurchaseOrder) {
		if reason != "" {
			note := fmt.Sprintf("Cancelled on %s: %s", lifecycle.DateStamp(s.clock.Now()), reason)
			if po.InternalNotes == "" {
				po.InternalNotes = note
			} else {
				po.InternalNotes = po.InternalNotes + "\n" + note
			}
		}
	})
}

// UpdateStatus applies an arbitrary target status with the same side effects
// as the named operations. The API layer routes generic status changes here.
func (s *Service) UpdateStatus(ctx context.Context, id string, target Status) (PurchaseOrder, error) {
	switch target {
	case StatusApproved:
		return s.Approve(ctx, id, "")
	case StatusSent:
		return s.Send(ctx, id)
	case StatusAcknowledged:
		return s.Acknowledge(ctx, id)
	case StatusCancelled:
		return s.Cancel(ctx, id, "")
	case StatusDelivered:
		return s.transition(id, StatusDelivered, func(po *PurchaseOrder) {
			po.ActualDeliveryDate = lifecycle.DateStamp(s.clock.Now())
		})
	default:
		return s.transition(id, target, nil)
	}
}

// =============================================================================
// DELIVERY TRACKING
// =============================================================================

// RecordItemDelivery books a received quantity against a line item and moves
// the order to PartiallyDelivered or Delivered as the totals dictate. The
// order must already be with the supplier.
func (s *Service) RecordItemDelivery(_ context.Context, id, lineItemID string, quantity int) (PurchaseOrder, error) {
	if quantity <= 0 {
		return PurchaseOrder{}, &lifecycle.ValidationError{Field: "quantity", Message: "delivered quantity must be positive"}
	}
	updated, err := s.orders.Update(id, func(po PurchaseOrder) (PurchaseOrder, error) {
		switch po.Status {
		case StatusAcknowledged, StatusPartiallyDelivered:
		default:
			return po, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("cannot record delivery while purchase order is %s", po.Status.Label()),
			}
		}

		idx := -1
		for i := range po.LineItems {
			if po.LineItems[i].ID == lineItemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return po, &lifecycle.NotFoundError{Kind: "line item", ID: lineItemID}
		}

		li := &po.LineItems[idx]
		if li.DeliveredQuantity+quantity > li.Quantity {
			return po, &lifecycle.ValidationError{
				Field: "quantity",
				Message: fmt.Sprintf("delivery of %d exceeds outstanding quantity %d",
					quantity, li.OutstandingQuantity()),
			}
		}
		li.DeliveredQuantity += quantity

		if po.IsFullyDelivered() {
			po.Status = StatusDelivered
			po.ActualDeliveryDate = lifecycle.DateStamp(s.clock.Now())
		} else {
			po.Status = StatusPartiallyDelivered
		}
		po.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return po, nil
	})
	if err != nil {
		return PurchaseOrder{}, err
	}
	s.log.Info("delivery recorded",
		zap.String("id", id),
		zap.String("line_item", lineItemID),
		zap.Int("quantity", quantity),
		zap.String("status", string(updated.Status)))
	return updated, nil
}
