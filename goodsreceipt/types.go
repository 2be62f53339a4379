// Package goodsreceipt implements goods receipt notes: recording quantities
// delivered against purchase orders, per-item quality inspection with an
// aggregated outcome, and the receipt lifecycle from draft capture to
// completion.
package goodsreceipt

import (
	"strings"

	"github.com/govstack/procure-engine/lifecycle"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// =============================================================================
// RECEIPT STATUS
// =============================================================================

type Status string

const (
	StatusDraft             Status = "draft"
	StatusPending           Status = "pending"
	StatusPartiallyReceived Status = "partially_received"
	StatusCompleted         Status = "completed"
	StatusRejected          Status = "rejected"
	StatusCancelled         Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:             "Draft",
	StatusPending:           "Pending",
	StatusPartiallyReceived: "Partially Received",
	StatusCompleted:         "Completed",
	StatusRejected:          "Rejected",
	StatusCancelled:         "Cancelled",
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus is total: unknown input falls back to Draft.
func ParseStatus(s string) Status {
	switch normalize(s) {
	case "draft":
		return StatusDraft
	case "pending":
		return StatusPending
	case "partially_received", "partially received":
		return StatusPartiallyReceived
	case "completed":
		return StatusCompleted
	case "rejected":
		return StatusRejected
	case "cancelled":
		return StatusCancelled
	default:
		return StatusDraft
	}
}

// Transitions is the receipt status machine. Completed, Rejected and
// Cancelled are terminal; a completed receipt can never be cancelled.
var Transitions = lifecycle.NewTable(map[Status][]Status{
	StatusDraft:             {StatusPending, StatusCancelled},
	StatusPending:           {StatusPartiallyReceived, StatusCompleted, StatusRejected, StatusCancelled},
	StatusPartiallyReceived: {StatusCompleted, StatusRejected, StatusCancelled},
})

// =============================================================================
// INSPECTION STATUS
// =============================================================================

type InspectionStatus string

const (
	InspectionPending     InspectionStatus = "pending"
	InspectionInProgress  InspectionStatus = "in_progress"
	InspectionPassed      InspectionStatus = "passed"
	InspectionFailed      InspectionStatus = "failed"
	InspectionPartialPass InspectionStatus = "partial_pass"
	InspectionWaived      InspectionStatus = "waived"
)

var inspectionLabels = map[InspectionStatus]string{
	InspectionPending:     "Pending Inspection",
	InspectionInProgress:  "Inspection In Progress",
	InspectionPassed:      "Passed",
	InspectionFailed:      "Failed",
	InspectionPartialPass: "Partial Pass",
	InspectionWaived:      "Waived",
}

func (s InspectionStatus) Label() string {
	if l, ok := inspectionLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseInspection is total: unknown input falls back to Pending.
func ParseInspection(s string) InspectionStatus {
	switch normalize(s) {
	case "pending", "pending inspection":
		return InspectionPending
	case "in_progress", "in progress", "inspection in progress":
		return InspectionInProgress
	case "passed":
		return InspectionPassed
	case "failed":
		return InspectionFailed
	case "partial_pass", "partial pass":
		return InspectionPartialPass
	case "waived":
		return InspectionWaived
	default:
		return InspectionPending
	}
}

// Settled reports whether the inspection needs no further action.
func (s InspectionStatus) Settled() bool {
	switch s {
	case InspectionPassed, InspectionFailed, InspectionPartialPass, InspectionWaived:
		return true
	}
	return false
}

// AggregateInspection folds per-item outcomes into the receipt-level status.
// The rules are ordered: unanimous pass (waived counts as passed), unanimous
// fail, then any in-progress, then any pending, and everything else is a
// partial pass. Empty item lists aggregate to Pending.
func AggregateInspection(items []ReceivedItem) InspectionStatus {
	if len(items) == 0 {
		return InspectionPending
	}

	allPassed := true
	allFailed := true
	anyInProgress := false
	anyPending := false
	for i := range items {
		switch items[i].InspectionStatus {
		case InspectionPassed, InspectionWaived:
			allFailed = false
		case InspectionFailed:
			allPassed = false
		case InspectionInProgress:
			allPassed, allFailed = false, false
			anyInProgress = true
		case InspectionPending:
			allPassed, allFailed = false, false
			anyPending = true
		default:
			allPassed, allFailed = false, false
		}
	}

	switch {
	case allPassed:
		return InspectionPassed
	case allFailed:
		return InspectionFailed
	case anyInProgress:
		return InspectionInProgress
	case anyPending:
		return InspectionPending
	default:
		return InspectionPartialPass
	}
}

// =============================================================================
// ENTITIES
// =============================================================================

// ReceivedItem is one purchase-order line as it arrives. Quantities obey
// received <= ordered and accepted + rejected <= received at all times.
type ReceivedItem struct {
	ID               string           `json:"id"`
	POLineItemRef    string           `json:"po_line_item_ref"`
	ItemCode         string           `json:"item_code"`
	Description      string           `json:"description"`
	Unit             string           `json:"unit"`
	OrderedQuantity  int              `json:"ordered_quantity"`
	ReceivedQuantity int              `json:"received_quantity"`
	AcceptedQuantity int              `json:"accepted_quantity"`
	RejectedQuantity int              `json:"rejected_quantity"`
	BatchNumber      string           `json:"batch_number,omitempty"`
	SerialNumbers    []string         `json:"serial_numbers,omitempty"`
	ExpiryDate       string           `json:"expiry_date,omitempty"`
	StorageLocation  string           `json:"storage_location,omitempty"`
	InspectionStatus InspectionStatus `json:"inspection_status"`
	InspectionNotes  string           `json:"inspection_notes,omitempty"`
	InspectedBy      string           `json:"inspected_by,omitempty"`
	InspectedAt      string           `json:"inspected_at,omitempty"`
}

func (ri *ReceivedItem) IsFullyReceived() bool {
	return ri.ReceivedQuantity >= ri.OrderedQuantity
}

func (ri *ReceivedItem) OutstandingQuantity() int {
	if ri.ReceivedQuantity >= ri.OrderedQuantity {
		return 0
	}
	return ri.OrderedQuantity - ri.ReceivedQuantity
}

type GoodsReceipt struct {
	ID                 string           `json:"id"`
	GRNNumber          string           `json:"grn_number"`
	PORef              string           `json:"po_ref"`
	PONumber           string           `json:"po_number"`
	SupplierName       string           `json:"supplier_name"`
	DeliveryNoteNumber string           `json:"delivery_note_number"`
	ReceivedItems      []ReceivedItem   `json:"received_items"`
	Status             Status           `json:"status"`
	InspectionStatus   InspectionStatus `json:"inspection_status"`
	ReceiptDate        string           `json:"receipt_date"`
	ReceivedBy         string           `json:"received_by"`
	Notes              string           `json:"notes,omitempty"`
	CreatedAt          string           `json:"created_at"`
	UpdatedAt          string           `json:"updated_at"`
	CompletedAt        string           `json:"completed_at,omitempty"`
}

func (gr GoodsReceipt) EntityID() string { return gr.ID }

func (gr GoodsReceipt) Clone() GoodsReceipt {
	out := gr
	out.ReceivedItems = make([]ReceivedItem, len(gr.ReceivedItems))
	for i := range gr.ReceivedItems {
		item := gr.ReceivedItems[i]
		item.SerialNumbers = append([]string(nil), gr.ReceivedItems[i].SerialNumbers...)
		out.ReceivedItems[i] = item
	}
	return out
}

var _ lifecycle.Entity[GoodsReceipt] = GoodsReceipt{}

// CompletionPercentage is the received share of the ordered quantity,
// clamped to [0, 100]. Empty receipts are 0.
func (gr *GoodsReceipt) CompletionPercentage() float64 {
	ordered := 0
	received := 0
	for i := range gr.ReceivedItems {
		ordered += gr.ReceivedItems[i].OrderedQuantity
		received += gr.ReceivedItems[i].ReceivedQuantity
	}
	return lifecycle.ClampPercent(lifecycle.Percent(float64(received), float64(ordered)))
}

// PendingInspections counts items whose inspection is not yet settled.
func (gr *GoodsReceipt) PendingInspections() int {
	n := 0
	for i := range gr.ReceivedItems {
		if !gr.ReceivedItems[i].InspectionStatus.Settled() {
			n++
		}
	}
	return n
}

func (gr *GoodsReceipt) IsFullyReceived() bool {
	if len(gr.ReceivedItems) == 0 {
		return false
	}
	for i := range gr.ReceivedItems {
		if !gr.ReceivedItems[i].IsFullyReceived() {
			return false
		}
	}
	return true
}

// =============================================================================
// FILTER AND SUMMARY
// =============================================================================

type Filter struct {
	Status     Status           `json:"status,omitempty"`
	Inspection InspectionStatus `json:"inspection,omitempty"`
	PORef      string           `json:"po_ref,omitempty"`
	DateFrom   string           `json:"date_from,omitempty"`
	DateTo     string           `json:"date_to,omitempty"`
	Search     string           `json:"search,omitempty"`
}

func (f Filter) predicates() []lifecycle.Predicate[GoodsReceipt] {
	var preds []lifecycle.Predicate[GoodsReceipt]
	if f.Status != "" {
		preds = append(preds, func(gr GoodsReceipt) bool { return gr.Status == f.Status })
	}
	if f.Inspection != "" {
		preds = append(preds, func(gr GoodsReceipt) bool { return gr.InspectionStatus == f.Inspection })
	}
	if f.PORef != "" {
		preds = append(preds, func(gr GoodsReceipt) bool {
			return lifecycle.MatchSearch(f.PORef, gr.PORef, gr.PONumber)
		})
	}
	if f.DateFrom != "" || f.DateTo != "" {
		preds = append(preds, func(gr GoodsReceipt) bool {
			return lifecycle.InDateRange(gr.ReceiptDate, f.DateFrom, f.DateTo)
		})
	}
	if f.Search != "" {
		preds = append(preds, func(gr GoodsReceipt) bool {
			return lifecycle.MatchSearch(f.Search,
				gr.GRNNumber, gr.PONumber, gr.SupplierName, gr.DeliveryNoteNumber)
		})
	}
	return preds
}

type Summary struct {
	ID                   string           `json:"id"`
	GRNNumber            string           `json:"grn_number"`
	PONumber             string           `json:"po_number"`
	SupplierName         string           `json:"supplier_name"`
	Status               Status           `json:"status"`
	StatusLabel          string           `json:"status_label"`
	InspectionStatus     InspectionStatus `json:"inspection_status"`
	InspectionLabel      string           `json:"inspection_label"`
	ReceiptDate          string           `json:"receipt_date"`
	ItemCount            int              `json:"item_count"`
	CompletionPercentage float64          `json:"completion_percentage"`
}

func Summarize(gr GoodsReceipt) Summary {
	return Summary{
		ID:                   gr.ID,
		GRNNumber:            gr.GRNNumber,
		PONumber:             gr.PONumber,
		SupplierName:         gr.SupplierName,
		Status:               gr.Status,
		StatusLabel:          gr.Status.Label(),
		InspectionStatus:     gr.InspectionStatus,
		InspectionLabel:      gr.InspectionStatus.Label(),
		ReceiptDate:          gr.ReceiptDate,
		ItemCount:            len(gr.ReceivedItems),
		CompletionPercentage: gr.CompletionPercentage(),
	}
}
