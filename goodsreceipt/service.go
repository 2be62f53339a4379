package goodsreceipt

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

// Service owns the goods receipt collection. Receipt completion is gated on
// inspection: every item must be settled before a receipt can complete.
type Service struct {
	receipts *lifecycle.Collection[GoodsReceipt]
	clock    lifecycle.Clock
	log      *zap.Logger
}

func NewService(seed []GoodsReceipt, nextSeq int, clock lifecycle.Clock, log *zap.Logger) *Service {
	return &Service{
		receipts: lifecycle.NewCollection("goods receipt", seed, nextSeq),
		clock:    clock,
		log:      log.Named("goodsreceipt"),
	}
}

func (s *Service) Collection() *lifecycle.Collection[GoodsReceipt] { return s.receipts }

// =============================================================================
// QUERIES
// =============================================================================

func (s *Service) List(_ context.Context, f Filter, page *lifecycle.Pagination) []Summary {
	matched := lifecycle.Filter(s.receipts.List(), f.predicates()...)
	page.UpdateTotals(len(matched))

	out := make([]Summary, 0, page.PageSize)
	for _, gr := range lifecycle.Page(matched, *page) {
		out = append(out, Summarize(gr))
	}
	return out
}

func (s *Service) Get(_ context.Context, id string) (GoodsReceipt, error) {
	return s.receipts.Get(id)
}

// =============================================================================
// CREATE
// =============================================================================

// CreateReceipt captures a delivery against a purchase order. Items start
// with nothing received and inspections pending.
type CreateReceipt struct {
	PORef              string
	PONumber           string
	SupplierName       string
	DeliveryNoteNumber string
	ReceivedBy         string
	Notes              string
	Items              []ReceivedItem
}

func (in CreateReceipt) validate() error {
	if strings.TrimSpace(in.PONumber) == "" {
		return &lifecycle.ValidationError{Field: "po_number", Message: "purchase order reference is required"}
	}
	if len(in.Items) == 0 {
		return &lifecycle.ValidationError{Field: "received_items", Message: "at least one item is required"}
	}
	for i, item := range in.Items {
		if item.OrderedQuantity <= 0 {
			return &lifecycle.ValidationError{
				Field:   fmt.Sprintf("received_items[%d].ordered_quantity", i),
				Message: "ordered quantity must be positive",
			}
		}
	}
	return nil
}

func (s *Service) Create(_ context.Context, in CreateReceipt) (GoodsReceipt, error) {
	if err := in.validate(); err != nil {
		return GoodsReceipt{}, err
	}

	now := s.clock.Now()
	gr := GoodsReceipt{
		ID:                 uuid.NewString(),
		GRNNumber:          s.receipts.NextID("GRN-%d-%04d", now.Year()),
		PORef:              in.PORef,
		PONumber:           in.PONumber,
		SupplierName:       in.SupplierName,
		DeliveryNoteNumber: in.DeliveryNoteNumber,
		ReceivedItems:      append([]ReceivedItem(nil), in.Items...),
		Status:             StatusDraft,
		InspectionStatus:   InspectionPending,
		ReceiptDate:        lifecycle.DateStamp(now),
		ReceivedBy:         in.ReceivedBy,
		Notes:              in.Notes,
		CreatedAt:          lifecycle.Stamp(now),
		UpdatedAt:          lifecycle.Stamp(now),
	}
	for i := range gr.ReceivedItems {
		if gr.ReceivedItems[i].ID == "" {
			gr.ReceivedItems[i].ID = uuid.NewString()
		}
		gr.ReceivedItems[i].ReceivedQuantity = 0
		gr.ReceivedItems[i].AcceptedQuantity = 0
		gr.ReceivedItems[i].RejectedQuantity = 0
		gr.ReceivedItems[i].InspectionStatus = InspectionPending
	}

	s.receipts.Insert(gr)
	s.log.Info("goods receipt created",
		zap.String("id", gr.ID),
		zap.String("grn_number", gr.GRNNumber),
		zap.String("po_number", gr.PONumber))
	return gr, nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

func (s *Service) transition(id string, target Status, apply func(gr *GoodsReceipt) error) (GoodsReceipt, error) {
	updated, err := s.receipts.Update(id, func(gr GoodsReceipt) (GoodsReceipt, error) {
		if err := Transitions.Check(gr.Status, target); err != nil {
			return gr, err
		}
		if apply != nil {
			if err := apply(&gr); err != nil {
				return gr, err
			}
		}
		gr.Status = target
		gr.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return gr, nil
	})
	if err != nil {
		return GoodsReceipt{}, err
	}
	s.log.Info("goods receipt status changed",
		zap.String("id", id), zap.String("status", string(target)))
	return updated, nil
}

// Submit moves a captured draft into the receiving flow.
func (s *Service) Submit(_ context.Context, id string) (GoodsReceipt, error) {
	return s.transition(id, StatusPending, nil)
}

// Complete closes out the receipt. Every item must be settled by inspection
// first; accepted quantities default to the received quantity for items that
// passed without explicit acceptance counts.
func (s *Service) Complete(_ context.Context, id string) (GoodsReceipt, error) {
	return s.transition(id, StatusCompleted, func(gr *GoodsReceipt) error {
		if pending := gr.PendingInspections(); pending > 0 {
			return &lifecycle.PreconditionError{
				Message: fmt.Sprintf("%d item(s) still pending inspection", pending),
			}
		}
		for i := range gr.ReceivedItems {
			item := &gr.ReceivedItems[i]
			if item.InspectionStatus == InspectionPassed || item.InspectionStatus == InspectionWaived {
				if item.AcceptedQuantity == 0 && item.RejectedQuantity == 0 {
					item.AcceptedQuantity = item.ReceivedQuantity
				}
			}
		}
		gr.CompletedAt = lifecycle.Stamp(s.clock.Now())
		return nil
	})
}

// Reject refuses the delivery as a whole and records the reason.
func (s *Service) Reject(_ context.Context, id, reason string) (GoodsReceipt, error) {
	return s.transition(id, StatusRejected, func(gr *GoodsReceipt) error {
		if reason != "" {
			note := fmt.Sprintf("Rejected on %s: %s", lifecycle.DateStamp(s.clock.Now()), reason)
			if gr.Notes == "" {
				gr.Notes = note
			} else {
				gr.Notes = gr.Notes + "\n" + note
			}
		}
		return nil
	})
}

// Cancel abandons the receipt. The table refuses cancellation of completed
// receipts.
func (s *Service) Cancel(_ context.Context, id string) (GoodsReceipt, error) {
	return s.transition(id, StatusCancelled, nil)
}

// Delete removes a draft receipt.
func (s *Service) Delete(_ context.Context, id string) error {
	gr, err := s.receipts.Get(id)
	if err != nil {
		return err
	}
	if gr.Status != StatusDraft {
		return &lifecycle.PreconditionError{
			Message: fmt.Sprintf("only draft receipts can be deleted, status is %s", gr.Status.Label()),
		}
	}
	if err := s.receipts.Remove(id); err != nil {
		return err
	}
	s.log.Info("goods receipt deleted", zap.String("id", id), zap.String("grn_number", gr.GRNNumber))
	return nil
}

// =============================================================================
// RECEIVING
// =============================================================================

// ItemReceipt books arrived quantities against one item. Batch and serial
// capture is optional and additive.
type ItemReceipt struct {
	Quantity        int
	BatchNumber     string
	SerialNumbers   []string
	ExpiryDate      string
	StorageLocation string
}

// RecordItemReceipt adds received quantity to an item, enforcing the
// received <= ordered bound, and moves the receipt into PartiallyReceived on
// the first booking.
func (s *Service) RecordItemReceipt(_ context.Context, id, itemID string, in ItemReceipt) (GoodsReceipt, error) {
	if in.Quantity <= 0 {
		return GoodsReceipt{}, &lifecycle.ValidationError{Field: "quantity", Message: "received quantity must be positive"}
	}
	updated, err := s.receipts.Update(id, func(gr GoodsReceipt) (GoodsReceipt, error) {
		switch gr.Status {
		case StatusPending, StatusPartiallyReceived:
		default:
			return gr, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("cannot record receipt while goods receipt is %s", gr.Status.Label()),
			}
		}

		item, err := findItem(&gr, itemID)
		if err != nil {
			return gr, err
		}
		if item.ReceivedQuantity+in.Quantity > item.OrderedQuantity {
			return gr, &lifecycle.ValidationError{
				Field: "quantity",
				Message: fmt.Sprintf("receipt of %d exceeds outstanding quantity %d",
					in.Quantity, item.OutstandingQuantity()),
			}
		}

		item.ReceivedQuantity += in.Quantity
		if in.BatchNumber != "" {
			item.BatchNumber = in.BatchNumber
		}
		if len(in.SerialNumbers) > 0 {
			item.SerialNumbers = append(item.SerialNumbers, in.SerialNumbers...)
		}
		if in.ExpiryDate != "" {
			item.ExpiryDate = in.ExpiryDate
		}
		if in.StorageLocation != "" {
			item.StorageLocation = in.StorageLocation
		}

		if gr.Status == StatusPending {
			gr.Status = StatusPartiallyReceived
		}
		gr.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return gr, nil
	})
	if err != nil {
		return GoodsReceipt{}, err
	}
	s.log.Info("item receipt recorded",
		zap.String("id", id),
		zap.String("item", itemID),
		zap.Int("quantity", in.Quantity))
	return updated, nil
}

// =============================================================================
// INSPECTION
// =============================================================================

// InspectionResult records the outcome of inspecting one item. Accepted and
// rejected counts must fit within what has been received.
type InspectionResult struct {
	Status           InspectionStatus
	AcceptedQuantity int
	RejectedQuantity int
	Notes            string
	InspectedBy      string
}

// RecordInspection applies the result to the item and recomputes the
// receipt-level aggregate.
func (s *Service) RecordInspection(_ context.Context, id, itemID string, in InspectionResult) (GoodsReceipt, error) {
	if in.AcceptedQuantity < 0 || in.RejectedQuantity < 0 {
		return GoodsReceipt{}, &lifecycle.ValidationError{Field: "quantities", Message: "inspection quantities cannot be negative"}
	}
	updated, err := s.receipts.Update(id, func(gr GoodsReceipt) (GoodsReceipt, error) {
		if Transitions.IsTerminal(gr.Status) {
			return gr, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("cannot inspect items on a %s goods receipt", gr.Status.Label()),
			}
		}

		item, err := findItem(&gr, itemID)
		if err != nil {
			return gr, err
		}
		if in.AcceptedQuantity+in.RejectedQuantity > item.ReceivedQuantity {
			return gr, &lifecycle.ValidationError{
				Field: "quantities",
				Message: fmt.Sprintf("accepted %d + rejected %d exceeds received quantity %d",
					in.AcceptedQuantity, in.RejectedQuantity, item.ReceivedQuantity),
			}
		}

		item.InspectionStatus = in.Status
		item.AcceptedQuantity = in.AcceptedQuantity
		item.RejectedQuantity = in.RejectedQuantity
		item.InspectionNotes = in.Notes
		item.InspectedBy = in.InspectedBy
		item.InspectedAt = lifecycle.Stamp(s.clock.Now())

		gr.InspectionStatus = AggregateInspection(gr.ReceivedItems)
		gr.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return gr, nil
	})
	if err != nil {
		return GoodsReceipt{}, err
	}
	s.log.Info("inspection recorded",
		zap.String("id", id),
		zap.String("item", itemID),
		zap.String("result", string(in.Status)),
		zap.String("aggregate", string(updated.InspectionStatus)))
	return updated, nil
}

func findItem(gr *GoodsReceipt, itemID string) (*ReceivedItem, error) {
	for i := range gr.ReceivedItems {
		if gr.ReceivedItems[i].ID == itemID {
			return &gr.ReceivedItems[i], nil
		}
	}
	return nil, &lifecycle.NotFoundError{Kind: "received item", ID: itemID}
}
