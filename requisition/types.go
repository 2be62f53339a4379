// Package requisition implements internal purchase requisitions: the demand
// side of the procurement pipeline, from draft capture through departmental
// approval to fulfilment.
package requisition

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
	StatusDraft           Status = "draft"
	StatusSubmitted       Status = "submitted"
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusInProgress      Status = "in_progress"
	StatusComplete        Status = "complete"
	StatusCancelled       Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:           "Draft",
	StatusSubmitted:       "Submitted",
	StatusPendingApproval: "Pending Approval",
	StatusApproved:        "Approved",
	StatusRejected:        "Rejected",
	StatusInProgress:      "In Progress",
	StatusComplete:        "Complete",
	StatusCancelled:       "Cancelled",
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
	case "submitted":
		return StatusSubmitted
	case "pending_approval", "pending approval":
		return StatusPendingApproval
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	case "in_progress", "in progress":
		return StatusInProgress
	case "complete", "completed":
		return StatusComplete
	case "cancelled":
		return StatusCancelled
	default:
		return StatusDraft
	}
}

// Transitions is the requisition status machine. A rejected requisition can
// be reworked back into Draft; Complete and Cancelled are terminal.
var Transitions = lifecycle.NewTable(map[Status][]Status{
	StatusDraft:           {StatusSubmitted, StatusCancelled},
	StatusSubmitted:       {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:        {StatusInProgress, StatusCancelled},
	StatusRejected:        {StatusDraft, StatusCancelled},
	StatusInProgress:      {StatusComplete, StatusCancelled},
})

// =============================================================================
// PRIORITY
// =============================================================================

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	}
	return string(p)
}

// ParsePriority is total: unknown input falls back to Medium.
func ParsePriority(s string) Priority {
	switch normalize(s) {
	case "low":
		return PriorityLow
	case "medium":
		return PriorityMedium
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

// =============================================================================
// ENTITIES
// =============================================================================

type Item struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Quantity           int     `json:"quantity"`
	Unit               string  `json:"unit"`
	EstimatedUnitPrice float64 `json:"estimated_unit_price"`
	EstimatedTotal     float64 `json:"estimated_total"`
	Notes              string  `json:"notes,omitempty"`
}

// CalculateTotal recomputes the item estimate in decimal.
func (it *Item) CalculateTotal() {
	it.EstimatedTotal = decimal.NewFromInt(int64(it.Quantity)).
		Mul(decimal.NewFromFloat(it.EstimatedUnitPrice)).
		InexactFloat64()
}

type Requisition struct {
	ID                string   `json:"id"`
	RequisitionNumber string   `json:"requisition_number"`
	Title             string   `json:"title"`
	Description       string   `json:"description,omitempty"`
	Department        string   `json:"department"`
	BudgetCode        string   `json:"budget_code"`
	Priority          Priority `json:"priority"`
	Items             []Item   `json:"items"`
	EstimatedTotal    float64  `json:"estimated_total"`
	Currency          string   `json:"currency"`
	DateRequired      string   `json:"date_required"`
	Justification     string   `json:"justification,omitempty"`
	Status            Status   `json:"status"`
	RequestedBy       string   `json:"requested_by"`
	ApprovedBy        string   `json:"approved_by,omitempty"`
	ApprovedAt        string   `json:"approved_at,omitempty"`
	RejectionReason   string   `json:"rejection_reason,omitempty"`
	TenderRef         string   `json:"tender_ref,omitempty"`
	PORef             string   `json:"po_ref,omitempty"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

func (r Requisition) EntityID() string { return r.ID }

func (r Requisition) Clone() Requisition {
	out := r
	out.Items = append([]Item(nil), r.Items...)
	return out
}

var _ lifecycle.Entity[Requisition] = Requisition{}

// CalculateTotals recomputes per-item estimates and the requisition total.
func (r *Requisition) CalculateTotals() {
	total := decimal.Zero
	for i := range r.Items {
		r.Items[i].CalculateTotal()
		total = total.Add(decimal.NewFromFloat(r.Items[i].EstimatedTotal))
	}
	r.EstimatedTotal = total.InexactFloat64()
}

func (r *Requisition) CanBeEdited() bool {
	return r.Status == StatusDraft || r.Status == StatusRejected
}

// =============================================================================
// FILTER AND SUMMARY
// =============================================================================

type Filter struct {
	Status     Status   `json:"status,omitempty"`
	Department string   `json:"department,omitempty"`
	Priority   Priority `json:"priority,omitempty"`
	DateFrom   string   `json:"date_from,omitempty"`
	DateTo     string   `json:"date_to,omitempty"`
	Search     string   `json:"search,omitempty"`
}

func (f Filter) predicates() []lifecycle.Predicate[Requisition] {
	var preds []lifecycle.Predicate[Requisition]
	if f.Status != "" {
		preds = append(preds, func(r Requisition) bool { return r.Status == f.Status })
	}
	if f.Department != "" {
		preds = append(preds, func(r Requisition) bool {
			return lifecycle.MatchSearch(f.Department, r.Department)
		})
	}
	if f.Priority != "" {
		preds = append(preds, func(r Requisition) bool { return r.Priority == f.Priority })
	}
	if f.DateFrom != "" || f.DateTo != "" {
		preds = append(preds, func(r Requisition) bool {
			return lifecycle.InDateRange(r.CreatedAt, f.DateFrom, f.DateTo)
		})
	}
	if f.Search != "" {
		preds = append(preds, func(r Requisition) bool {
			return lifecycle.MatchSearch(f.Search,
				r.RequisitionNumber, r.Title, r.Department, r.RequestedBy)
		})
	}
	return preds
}

type Summary struct {
	ID                string   `json:"id"`
	RequisitionNumber string   `json:"requisition_number"`
	Title             string   `json:"title"`
	Department        string   `json:"department"`
	Priority          Priority `json:"priority"`
	PriorityLabel     string   `json:"priority_label"`
	Status            Status   `json:"status"`
	StatusLabel       string   `json:"status_label"`
	EstimatedTotal    float64  `json:"estimated_total"`
	Currency          string   `json:"currency"`
	DateRequired      string   `json:"date_required"`
	ItemCount         int      `json:"item_count"`
	RequestedBy       string   `json:"requested_by"`
}

func Summarize(r Requisition) Summary {
	return Summary{
		ID:                r.ID,
		RequisitionNumber: r.RequisitionNumber,
		Title:             r.Title,
		Department:        r.Department,
		Priority:          r.Priority,
		PriorityLabel:     r.Priority.Label(),
		Status:            r.Status,
		StatusLabel:       r.Status.Label(),
		EstimatedTotal:    r.EstimatedTotal,
		Currency:          r.Currency,
		DateRequired:      r.DateRequired,
		ItemCount:         len(r.Items),
		RequestedBy:       r.RequestedBy,
	}
}
