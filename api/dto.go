/*
dto.go - Request and response envelopes for the REST API

PURPOSE:
  JSON structures for API communication. Entities and summaries are
  returned directly (they carry their own json tags); these types cover
  request bodies and the envelopes that wrap lists and errors.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - ListResponse: Paged list wrapper
  - ErrorResponse: Error payload

VALIDATION:
  Handlers convert requests to service inputs; the services validate.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Shared plumbing using these types
*/
package api

import (
	"github.com/govstack/procure-engine/goodsreceipt"
	"github.com/govstack/procure-engine/lifecycle"
	"github.com/govstack/procure-engine/purchaseorder"
	"github.com/govstack/procure-engine/requisition"
	"github.com/govstack/procure-engine/tender"
)

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ListResponse wraps a filtered page of summaries.
type ListResponse[T any] struct {
	Items      []T                  `json:"items"`
	Pagination lifecycle.Pagination `json:"pagination"`
}

// ReasonRequest carries a free-text reason for reject/cancel actions.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// ApproveRequest names the approver for approval actions.
type ApproveRequest struct {
	Approver string `json:"approver"`
}

// =============================================================================
// REQUISITIONS
// =============================================================================

type CreateRequisitionRequest struct {
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Department    string             `json:"department"`
	BudgetCode    string             `json:"budget_code"`
	Priority      string             `json:"priority"`
	Items         []requisition.Item `json:"items"`
	DateRequired  string             `json:"date_required"`
	Justification string             `json:"justification"`
	RequestedBy   string             `json:"requested_by"`
}

type UpdateRequisitionRequest struct {
	Title         string             `json:"title"`
	Description   *string            `json:"description"`
	BudgetCode    string             `json:"budget_code"`
	Priority      string             `json:"priority"`
	Items         []requisition.Item `json:"items"`
	DateRequired  string             `json:"date_required"`
	Justification *string            `json:"justification"`
}

type StartFulfilmentRequest struct {
	TenderRef string `json:"tender_ref"`
	PORef     string `json:"po_ref"`
}

// =============================================================================
// TENDERS
// =============================================================================

type CreateTenderRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       string          `json:"category"`
	Department     string          `json:"department"`
	Method         string          `json:"method"`
	RequisitionRef string          `json:"requisition_ref"`
	EstimatedValue float64         `json:"estimated_value"`
	Briefing       tender.Briefing `json:"briefing"`
	ClosingDate    string          `json:"closing_date"`
	CreatedBy      string          `json:"created_by"`
}

type UpdateTenderRequest struct {
	Title          string           `json:"title"`
	Description    *string          `json:"description"`
	Category       string           `json:"category"`
	Department     string           `json:"department"`
	Method         string           `json:"method"`
	EstimatedValue *float64         `json:"estimated_value"`
	Briefing       *tender.Briefing `json:"briefing"`
	ClosingDate    string           `json:"closing_date"`
	Documents      []string         `json:"documents"`
}

type PublishTenderRequest struct {
	PortalRef string `json:"portal_ref"`
}

type SubmitBidRequest struct {
	SupplierName string  `json:"supplier_name"`
	BidAmount    float64 `json:"bid_amount"`
	BBBEELevel   int     `json:"bbbee_level"`
}

type ScreenBidRequest struct {
	Responsive bool    `json:"responsive"`
	Score      float64 `json:"score"`
	Notes      string  `json:"notes"`
}

type AwardRequest struct {
	BidID string `json:"bid_id"`
}

// =============================================================================
// PURCHASE ORDERS
// =============================================================================

type CreateOrderRequest struct {
	ContractRef          string                        `json:"contract_ref"`
	RequisitionRef       string                        `json:"requisition_ref"`
	TenderRef            string                        `json:"tender_ref"`
	Supplier             purchaseorder.Supplier        `json:"supplier"`
	LineItems            []purchaseorder.LineItem      `json:"line_items"`
	DeliveryAddress      purchaseorder.DeliveryAddress `json:"delivery_address"`
	PaymentTerms         string                        `json:"payment_terms"`
	ExpectedDeliveryDate string                        `json:"expected_delivery_date"`
	Notes                string                        `json:"notes"`
	CreatedBy            string                        `json:"created_by"`
}

type UpdateOrderRequest struct {
	Supplier             *purchaseorder.Supplier        `json:"supplier"`
	LineItems            []purchaseorder.LineItem       `json:"line_items"`
	DeliveryAddress      *purchaseorder.DeliveryAddress `json:"delivery_address"`
	PaymentTerms         string                         `json:"payment_terms"`
	ExpectedDeliveryDate string                         `json:"expected_delivery_date"`
	Notes                *string                        `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type RecordDeliveryRequest struct {
	LineItemID string `json:"line_item_id"`
	Quantity   int    `json:"quantity"`
}

// =============================================================================
// GOODS RECEIPTS
// =============================================================================

type CreateReceiptRequest struct {
	PORef              string                      `json:"po_ref"`
	PONumber           string                      `json:"po_number"`
	SupplierName       string                      `json:"supplier_name"`
	DeliveryNoteNumber string                      `json:"delivery_note_number"`
	ReceivedBy         string                      `json:"received_by"`
	Notes              string                      `json:"notes"`
	Items              []goodsreceipt.ReceivedItem `json:"items"`
}

type ItemReceiptRequest struct {
	Quantity        int      `json:"quantity"`
	BatchNumber     string   `json:"batch_number"`
	SerialNumbers   []string `json:"serial_numbers"`
	ExpiryDate      string   `json:"expiry_date"`
	StorageLocation string   `json:"storage_location"`
}

type InspectionRequest struct {
	Status      string `json:"status"`
	Accepted    int    `json:"accepted"`
	Rejected    int    `json:"rejected"`
	Notes       string `json:"notes"`
	InspectedBy string `json:"inspected_by"`
}

// =============================================================================
// GRC
// =============================================================================

type CreateFindingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	RaisedBy    string `json:"raised_by"`
	AuditYear   string `json:"audit_year"`
	Owner       string `json:"owner"`
	DueDate     string `json:"due_date"`
}

type ResolveFindingRequest struct {
	Resolution string `json:"resolution"`
}

type ActionItemRequest struct {
	Description string `json:"description"`
	Owner       string `json:"owner"`
	DueDate     string `json:"due_date"`
}

type ReviewRequest struct {
	Status     string  `json:"status"`
	Score      float64 `json:"score"`
	ReviewedBy string  `json:"reviewed_by"`
	Notes      string  `json:"notes"`
}

type CreateRiskRequest struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Likelihood  int    `json:"likelihood"`
	Impact      int    `json:"impact"`
	Mitigation  string `json:"mitigation"`
	Owner       string `json:"owner"`
}

type ReassessRequest struct {
	Likelihood int `json:"likelihood"`
	Impact     int `json:"impact"`
}

type ReportViolationRequest struct {
	Policy      string `json:"policy"`
	Description string `json:"description"`
	ReportedBy  string `json:"reported_by"`
	Severity    string `json:"severity"`
}

type ConcludeViolationRequest struct {
	Substantiated bool   `json:"substantiated"`
	Outcome       string `json:"outcome"`
}
