// Package purchaseorder implements the purchase-order lifecycle: drafting,
// approval, dispatch to the supplier, delivery tracking and closure. It
// instantiates the generic lifecycle engine with the PO status machine and
// VAT-inclusive line-item totals.
package purchaseorder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/govstack/procure-engine/lifecycle"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// =============================================================================
// STATUS
// =============================================================================

type Status string

const (
	StatusDraft              Status = "draft"
	StatusPendingApproval    Status = "pending_approval"
	StatusApproved           Status = "approved"
	StatusSent               Status = "sent"
	StatusAcknowledged       Status = "acknowledged"
	StatusPartiallyDelivered Status = "partially_delivered"
	StatusDelivered          Status = "delivered"
	StatusInvoiced           Status = "invoiced"
	StatusClosed             Status = "closed"
	StatusCancelled          Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:              "Draft",
	StatusPendingApproval:    "Pending Approval",
	StatusApproved:           "Approved",
	StatusSent:               "Sent to Supplier",
	StatusAcknowledged:       "Acknowledged",
	StatusPartiallyDelivered: "Partially Delivered",
	StatusDelivered:          "Delivered",
	StatusInvoiced:           "Invoiced",
	StatusClosed:             "Closed",
	StatusCancelled:          "Cancelled",
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
	case "pending_approval", "pending approval":
		return StatusPendingApproval
	case "approved":
		return StatusApproved
	case "sent", "sent to supplier":
		return StatusSent
	case "acknowledged":
		return StatusAcknowledged
	case "partially_delivered", "partially delivered":
		return StatusPartiallyDelivered
	case "delivered":
		return StatusDelivered
	case "invoiced":
		return StatusInvoiced
	case "closed":
		return StatusClosed
	case "cancelled":
		return StatusCancelled
	default:
		return StatusDraft
	}
}

// Transitions is the static edge set for purchase orders. Cancellation is
// reachable from every state up to and including Acknowledged; rejection
// returns a pending order to Draft.
var Transitions = lifecycle.NewTable(map[Status][]Status{
	StatusDraft:              {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval:    {StatusApproved, StatusDraft, StatusCancelled},
	StatusApproved:           {StatusSent, StatusCancelled},
	StatusSent:               {StatusAcknowledged, StatusCancelled},
	StatusAcknowledged:       {StatusPartiallyDelivered, StatusDelivered, StatusCancelled},
	StatusPartiallyDelivered: {StatusDelivered},
	StatusDelivered:          {StatusInvoiced},
	StatusInvoiced:           {StatusClosed},
})

// =============================================================================
// ENTITIES
// =============================================================================

// DefaultTaxRate is the South African VAT rate applied to line items.
const DefaultTaxRate = 15.0

type LineItem struct {
	ID                string  `json:"id"`
	ItemCode          string  `json:"item_code"`
	Description       string  `json:"description"`
	Quantity          int     `json:"quantity"`
	Unit              string  `json:"unit"`
	UnitPrice         float64 `json:"unit_price"`
	TotalPrice        float64 `json:"total_price"`
	TaxRate           float64 `json:"tax_rate"`
	TaxAmount         float64 `json:"tax_amount"`
	DeliveryDate      string  `json:"delivery_date"`
	DeliveredQuantity int     `json:"delivered_quantity"`
	Notes             string  `json:"notes,omitempty"`
}

// CalculateTotals recomputes TotalPrice and TaxAmount from quantity, unit
// price and tax rate. Arithmetic is done in decimal so repeated calls are
// exact and idempotent.
func (li *LineItem) CalculateTotals() {
	qty := decimal.NewFromInt(int64(li.Quantity))
	price := decimal.NewFromFloat(li.UnitPrice)
	rate := decimal.NewFromFloat(li.TaxRate).Div(decimal.NewFromInt(100))

	total := qty.Mul(price)
	li.TotalPrice = total.InexactFloat64()
	li.TaxAmount = total.Mul(rate).InexactFloat64()
}

// OutstandingQuantity is the quantity still to be delivered.
func (li *LineItem) OutstandingQuantity() int {
	if li.DeliveredQuantity >= li.Quantity {
		return 0
	}
	return li.Quantity - li.DeliveredQuantity
}

func (li *LineItem) IsFullyDelivered() bool {
	return li.DeliveredQuantity >= li.Quantity
}

type DeliveryAddress struct {
	AddressLine1         string `json:"address_line1"`
	AddressLine2         string `json:"address_line2,omitempty"`
	City                 string `json:"city"`
	Province             string `json:"province"`
	PostalCode           string `json:"postal_code"`
	Country              string `json:"country"`
	ContactPerson        string `json:"contact_person"`
	ContactPhone         string `json:"contact_phone"`
	ContactEmail         string `json:"contact_email"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

// Supplier is the supplier reference carried on an order. BBBEELevel is the
// B-BBEE compliance level (1-8), treated as an opaque categorical attribute.
type Supplier struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RegistrationNumber string `json:"registration_number"`
	TaxNumber          string `json:"tax_number"`
	BBBEELevel         int    `json:"bbbee_level"`
	ContactPerson      string `json:"contact_person"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Address            string `json:"address"`
}

type PurchaseOrder struct {
	ID                   string          `json:"id"`
	PONumber             string          `json:"po_number"`
	ContractRef          string          `json:"contract_ref,omitempty"`
	RequisitionRef       string          `json:"requisition_ref,omitempty"`
	TenderRef            string          `json:"tender_ref,omitempty"`
	Supplier             Supplier        `json:"supplier"`
	LineItems            []LineItem      `json:"line_items"`
	DeliveryAddress      DeliveryAddress `json:"delivery_address"`
	Status               Status          `json:"status"`
	Subtotal             float64         `json:"subtotal"`
	TaxTotal             float64         `json:"tax_total"`
	TotalAmount          float64         `json:"total_amount"`
	Currency             string          `json:"currency"`
	PaymentTerms         string          `json:"payment_terms"`
	OrderDate            string          `json:"order_date"`
	ExpectedDeliveryDate string          `json:"expected_delivery_date"`
	ActualDeliveryDate   string          `json:"actual_delivery_date,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	InternalNotes        string          `json:"internal_notes,omitempty"`
	Attachments          []string        `json:"attachments,omitempty"`
	CreatedBy            string          `json:"created_by"`
	CreatedAt            string          `json:"created_at"`
	UpdatedAt            string          `json:"updated_at"`
	ApprovedBy           string          `json:"approved_by,omitempty"`
	ApprovedAt           string          `json:"approved_at,omitempty"`
	SentAt               string          `json:"sent_at,omitempty"`
	AcknowledgedAt       string          `json:"acknowledged_at,omitempty"`
}

func (po PurchaseOrder) EntityID() string { return po.ID }

func (po PurchaseOrder) Clone() PurchaseOrder {
	out := po
	out.LineItems = append([]LineItem(nil), po.LineItems...)
	out.Attachments = append([]string(nil), po.Attachments...)
	return out
}

// Compile-time check that PurchaseOrder satisfies the store contract.
var _ lifecycle.Entity[PurchaseOrder] = PurchaseOrder{}

// CalculateTotals recomputes line-item totals and rolls them up into
// Subtotal, TaxTotal and TotalAmount.
func (po *PurchaseOrder) CalculateTotals() {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for i := range po.LineItems {
		po.LineItems[i].CalculateTotals()
		subtotal = subtotal.Add(decimal.NewFromFloat(po.LineItems[i].TotalPrice))
		tax = tax.Add(decimal.NewFromFloat(po.LineItems[i].TaxAmount))
	}
	po.Subtotal = subtotal.InexactFloat64()
	po.TaxTotal = tax.InexactFloat64()
	po.TotalAmount = subtotal.Add(tax).InexactFloat64()
}

func (po *PurchaseOrder) IsFullyDelivered() bool {
	if len(po.LineItems) == 0 {
		return false
	}
	for i := range po.LineItems {
		if !po.LineItems[i].IsFullyDelivered() {
			return false
		}
	}
	return true
}

// DeliveryProgress is the delivered share of ordered quantity as a
// percentage, 0 when there are no line items.
func (po *PurchaseOrder) DeliveryProgress() float64 {
	ordered := 0
	delivered := 0
	for i := range po.LineItems {
		ordered += po.LineItems[i].Quantity
		delivered += po.LineItems[i].DeliveredQuantity
	}
	return lifecycle.Percent(float64(delivered), float64(ordered))
}

func (po *PurchaseOrder) CanBeEdited() bool {
	return po.Status == StatusDraft || po.Status == StatusPendingApproval
}

func (po *PurchaseOrder) CanBeSent() bool {
	return po.Status == StatusApproved
}

func (po *PurchaseOrder) CanBeCancelled() bool {
	return Transitions.Allows(po.Status, StatusCancelled)
}

// =============================================================================
// FILTER AND SUMMARY
// =============================================================================

// Filter narrows the list view; zero-valued fields impose no constraint.
type Filter struct {
	Status          Status `json:"status,omitempty"`
	SupplierID      string `json:"supplier_id,omitempty"`
	ContractRef     string `json:"contract_ref,omitempty"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
	Search          string `json:"search,omitempty"`
	PendingDelivery bool   `json:"pending_delivery,omitempty"`
}

func (f Filter) predicates() []lifecycle.Predicate[PurchaseOrder] {
	var preds []lifecycle.Predicate[PurchaseOrder]
	if f.Status != "" {
		preds = append(preds, func(po PurchaseOrder) bool { return po.Status == f.Status })
	}
	if f.SupplierID != "" {
		preds = append(preds, func(po PurchaseOrder) bool {
			return lifecycle.MatchSearch(f.SupplierID, po.Supplier.ID, po.Supplier.Name)
		})
	}
	if f.ContractRef != "" {
		preds = append(preds, func(po PurchaseOrder) bool {
			return lifecycle.MatchSearch(f.ContractRef, po.ContractRef)
		})
	}
	if f.DateFrom != "" || f.DateTo != "" {
		preds = append(preds, func(po PurchaseOrder) bool {
			return lifecycle.InDateRange(po.OrderDate, f.DateFrom, f.DateTo)
		})
	}
	if f.Search != "" {
		preds = append(preds, func(po PurchaseOrder) bool {
			return lifecycle.MatchSearch(f.Search, po.PONumber, po.Supplier.Name, po.ID, po.ContractRef)
		})
	}
	if f.PendingDelivery {
		preds = append(preds, func(po PurchaseOrder) bool {
			switch po.Status {
			case StatusSent, StatusAcknowledged, StatusPartiallyDelivered:
				return true
			}
			return false
		})
	}
	return preds
}

// Summary is the list-view projection of an order.
type Summary struct {
	ID                   string  `json:"id"`
	PONumber             string  `json:"po_number"`
	ContractRef          string  `json:"contract_ref,omitempty"`
	SupplierName         string  `json:"supplier_name"`
	SupplierBBBEELevel   int     `json:"supplier_bbbee_level"`
	TotalAmount          float64 `json:"total_amount"`
	Currency             string  `json:"currency"`
	Status               Status  `json:"status"`
	StatusLabel          string  `json:"status_label"`
	OrderDate            string  `json:"order_date"`
	ExpectedDeliveryDate string  `json:"expected_delivery_date"`
	DeliveryProgress     float64 `json:"delivery_progress"`
	LineItemCount        int     `json:"line_item_count"`
}

func Summarize(po PurchaseOrder) Summary {
	return Summary{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		ContractRef:          po.ContractRef,
		SupplierName:         po.Supplier.Name,
		SupplierBBBEELevel:   po.Supplier.BBBEELevel,
		TotalAmount:          po.TotalAmount,
		Currency:             po.Currency,
		Status:               po.Status,
		StatusLabel:          po.Status.Label(),
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		DeliveryProgress:     lifecycle.ClampPercent(po.DeliveryProgress()),
		LineItemCount:        len(po.LineItems),
	}
}
