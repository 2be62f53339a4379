// Package tender implements competitive bidding: tender drafting and
// approval, publication to the public portal, the bidding window, and the
// evaluation and adjudication chain through to award.
package tender

import (
	"strings"

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
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusPublished       Status = "published"
	StatusOpen            Status = "open"
	StatusClosed          Status = "closed"
	StatusEvaluation      Status = "evaluation"
	StatusAdjudication    Status = "adjudication"
	StatusAwarded         Status = "awarded"
	StatusCancelled       Status = "cancelled"
)

var statusLabels = map[Status]string{
	StatusDraft:           "Draft",
	StatusPendingApproval: "Pending Approval",
	StatusApproved:        "Approved",
	StatusPublished:       "Published",
	StatusOpen:            "Open for Bids",
	StatusClosed:          "Closed",
	StatusEvaluation:      "Under Evaluation",
	StatusAdjudication:    "At Adjudication",
	StatusAwarded:         "Awarded",
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
	case "pending_approval", "pending approval":
		return StatusPendingApproval
	case "approved":
		return StatusApproved
	case "published":
		return StatusPublished
	case "open", "open for bids":
		return StatusOpen
	case "closed":
		return StatusClosed
	case "evaluation", "under evaluation":
		return StatusEvaluation
	case "adjudication", "at adjudication":
		return StatusAdjudication
	case "awarded":
		return StatusAwarded
	case "cancelled":
		return StatusCancelled
	default:
		return StatusDraft
	}
}

// Transitions is the tender status machine. The evaluation chain is strictly
// linear; cancellation is available at every step before award.
var Transitions = lifecycle.NewTable(map[Status][]Status{
	StatusDraft:           {StatusPendingApproval, StatusCancelled},
	StatusPendingApproval: {StatusApproved, StatusDraft, StatusCancelled},
	StatusApproved:        {StatusPublished, StatusCancelled},
	StatusPublished:       {StatusOpen, StatusCancelled},
	StatusOpen:            {StatusClosed, StatusCancelled},
	StatusClosed:          {StatusEvaluation, StatusCancelled},
	StatusEvaluation:      {StatusAdjudication, StatusCancelled},
	StatusAdjudication:    {StatusAwarded, StatusCancelled},
})

// =============================================================================
// PROCUREMENT METHOD AND PREFERENCE POINTS
// =============================================================================

type Method string

const (
	MethodOpen       Method = "open"
	MethodRestricted Method = "restricted"
	MethodQuotation  Method = "quotation"
)

func (m Method) Label() string {
	switch m {
	case MethodOpen:
		return "Open Tender"
	case MethodRestricted:
		return "Restricted Tender"
	case MethodQuotation:
		return "Request for Quotation"
	}
	return string(m)
}

// ParseMethod is total: unknown input falls back to Open.
func ParseMethod(s string) Method {
	switch normalize(s) {
	case "open", "open tender":
		return MethodOpen
	case "restricted", "restricted tender":
		return MethodRestricted
	case "quotation", "rfq", "request for quotation":
		return MethodQuotation
	default:
		return MethodOpen
	}
}

// PreferenceThreshold is the estimated value at which the preference point
// split changes from 80/20 to 90/10.
const PreferenceThreshold = 50_000_000.0

// PreferencePointSystem returns the price/preference split for the estimated
// value: "80/20" below the threshold, "90/10" at or above it.
func PreferencePointSystem(estimatedValue float64) string {
	if estimatedValue >= PreferenceThreshold {
		return "90/10"
	}
	return "80/20"
}

// =============================================================================
// ENTITIES
// =============================================================================

type Briefing struct {
	Required   bool   `json:"required"`
	Compulsory bool   `json:"compulsory"`
	Date       string `json:"date,omitempty"`
	Venue      string `json:"venue,omitempty"`
}

// Bid is one supplier submission received during the bidding window.
type Bid struct {
	ID           string  `json:"id"`
	SupplierName string  `json:"supplier_name"`
	BidAmount    float64 `json:"bid_amount"`
	BBBEELevel   int     `json:"bbbee_level"`
	SubmittedAt  string  `json:"submitted_at"`
	Responsive   bool    `json:"responsive"`
	Score        float64 `json:"score,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type Tender struct {
	ID              string   `json:"id"`
	TenderNumber    string   `json:"tender_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Department      string   `json:"department"`
	Method          Method   `json:"method"`
	RequisitionRef  string   `json:"requisition_ref,omitempty"`
	EstimatedValue  float64  `json:"estimated_value"`
	Currency        string   `json:"currency"`
	PointSystem     string   `json:"point_system"`
	Briefing        Briefing `json:"briefing"`
	Documents       []string `json:"documents,omitempty"`
	PublicationDate string   `json:"publication_date,omitempty"`
	PortalRef       string   `json:"portal_ref,omitempty"`
	OpeningDate     string   `json:"opening_date,omitempty"`
	ClosingDate     string   `json:"closing_date"`
	Bids            []Bid    `json:"bids,omitempty"`
	Status          Status   `json:"status"`
	AwardedTo       string   `json:"awarded_to,omitempty"`
	AwardAmount     float64  `json:"award_amount,omitempty"`
	AwardedAt       string   `json:"awarded_at,omitempty"`
	CreatedBy       string   `json:"created_by"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

func (t Tender) EntityID() string { return t.ID }

func (t Tender) Clone() Tender {
	out := t
	out.Documents = append([]string(nil), t.Documents...)
	out.Bids = append([]Bid(nil), t.Bids...)
	return out
}

var _ lifecycle.Entity[Tender] = Tender{}

func (t *Tender) CanBeEdited() bool {
	return t.Status == StatusDraft || t.Status == StatusPendingApproval
}

// IsAcceptingBids reports whether submissions may still be recorded.
func (t *Tender) IsAcceptingBids() bool {
	return t.Status == StatusOpen
}

// ResponsiveBids counts submissions that passed responsiveness screening.
func (t *Tender) ResponsiveBids() int {
	n := 0
	for i := range t.Bids {
		if t.Bids[i].Responsive {
			n++
		}
	}
	return n
}

// =============================================================================
// FILTER AND SUMMARY
// =============================================================================

type Filter struct {
	Status     Status `json:"status,omitempty"`
	Category   string `json:"category,omitempty"`
	Department string `json:"department,omitempty"`
	Method     Method `json:"method,omitempty"`
	DateFrom   string `json:"date_from,omitempty"`
	DateTo     string `json:"date_to,omitempty"`
	Search     string `json:"search,omitempty"`
}

func (f Filter) predicates() []lifecycle.Predicate[Tender] {
	var preds []lifecycle.Predicate[Tender]
	if f.Status != "" {
		preds = append(preds, func(t Tender) bool { return t.Status == f.Status })
	}
	if f.Category != "" {
		preds = append(preds, func(t Tender) bool { return lifecycle.MatchSearch(f.Category, t.Category) })
	}
	if f.Department != "" {
		preds = append(preds, func(t Tender) bool { return lifecycle.MatchSearch(f.Department, t.Department) })
	}
	if f.Method != "" {
		preds = append(preds, func(t Tender) bool { return t.Method == f.Method })
	}
	if f.DateFrom != "" || f.DateTo != "" {
		preds = append(preds, func(t Tender) bool {
			return lifecycle.InDateRange(t.ClosingDate, f.DateFrom, f.DateTo)
		})
	}
	if f.Search != "" {
		preds = append(preds, func(t Tender) bool {
			return lifecycle.MatchSearch(f.Search,
				t.TenderNumber, t.Title, t.Category, t.Department, t.PortalRef)
		})
	}
	return preds
}

type Summary struct {
	ID             string  `json:"id"`
	TenderNumber   string  `json:"tender_number"`
	Title          string  `json:"title"`
	Category       string  `json:"category"`
	Department     string  `json:"department"`
	Method         Method  `json:"method"`
	MethodLabel    string  `json:"method_label"`
	EstimatedValue float64 `json:"estimated_value"`
	Currency       string  `json:"currency"`
	PointSystem    string  `json:"point_system"`
	ClosingDate    string  `json:"closing_date"`
	Status         Status  `json:"status"`
	StatusLabel    string  `json:"status_label"`
	BidCount       int     `json:"bid_count"`
	AwardedTo      string  `json:"awarded_to,omitempty"`
}

func Summarize(t Tender) Summary {
	return Summary{
		ID:             t.ID,
		TenderNumber:   t.TenderNumber,
		Title:          t.Title,
		Category:       t.Category,
		Department:     t.Department,
		Method:         t.Method,
		MethodLabel:    t.Method.Label(),
		EstimatedValue: t.EstimatedValue,
		Currency:       t.Currency,
		PointSystem:    t.PointSystem,
		ClosingDate:    t.ClosingDate,
		Status:         t.Status,
		StatusLabel:    t.Status.Label(),
		BidCount:       len(t.Bids),
		AwardedTo:      t.AwardedTo,
	}
}
