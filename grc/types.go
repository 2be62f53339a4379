// Package grc implements governance, risk and compliance tracking: external
// audit findings with remediation action plans, framework compliance checks,
// risk assessments on a likelihood-impact matrix, and policy violations.
package grc

import (
	"strings"

	"github.com/govstack/procure-engine/lifecycle"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// =============================================================================
// FINDING STATUS
// =============================================================================

type FindingStatus string

const (
	FindingOpen       FindingStatus = "open"
	FindingInProgress FindingStatus = "in_progress"
	FindingOverdue    FindingStatus = "overdue"
	FindingResolved   FindingStatus = "resolved"
	FindingRecurring  FindingStatus = "recurring"
	FindingClosed     FindingStatus = "closed"
)

var findingLabels = map[FindingStatus]string{
	FindingOpen:       "Open",
	FindingInProgress: "In Progress",
	FindingOverdue:    "Overdue",
	FindingResolved:   "Resolved",
	FindingRecurring:  "Recurring",
	FindingClosed:     "Closed",
}

func (s FindingStatus) Label() string {
	if l, ok := findingLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseFindingStatus is total: unknown input falls back to Open.
func ParseFindingStatus(s string) FindingStatus {
	switch normalize(s) {
	case "open":
		return FindingOpen
	case "in_progress", "in progress":
		return FindingInProgress
	case "overdue":
		return FindingOverdue
	case "resolved":
		return FindingResolved
	case "recurring":
		return FindingRecurring
	case "closed":
		return FindingClosed
	default:
		return FindingOpen
	}
}

// FindingTransitions is the remediation status machine. A resolved finding
// either closes or resurfaces as recurring, which puts it back into active
// remediation. Closed is the only terminal state.
var FindingTransitions = lifecycle.NewTable(map[FindingStatus][]FindingStatus{
	FindingOpen:       {FindingInProgress, FindingOverdue},
	FindingInProgress: {FindingResolved, FindingOverdue},
	FindingOverdue:    {FindingInProgress, FindingResolved},
	FindingResolved:   {FindingClosed, FindingRecurring},
	FindingRecurring:  {FindingInProgress},
})

// =============================================================================
// SEVERITY
// =============================================================================

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	case SeverityCritical:
		return "Critical"
	}
	return string(s)
}

// ParseSeverity is total: unknown input falls back to Medium.
func ParseSeverity(s string) Severity {
	switch normalize(s) {
	case "low":
		return SeverityLow
	case "medium":
		return SeverityMedium
	case "high":
		return SeverityHigh
	case "critical":
		return SeverityCritical
	default:
		return SeverityMedium
	}
}

// =============================================================================
// FINDINGS
// =============================================================================

type ActionItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// Finding is one external or internal audit finding under remediation.
type Finding struct {
	ID          string        `json:"id"`
	Reference   string        `json:"reference"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Category    string        `json:"category"`
	Severity    Severity      `json:"severity"`
	Status      FindingStatus `json:"status"`
	RaisedBy    string        `json:"raised_by"`
	AuditYear   string        `json:"audit_year"`
	Owner       string        `json:"owner"`
	DueDate     string        `json:"due_date"`
	ActionItems []ActionItem  `json:"action_items,omitempty"`
	Resolution  string        `json:"resolution,omitempty"`
	ResolvedAt  string        `json:"resolved_at,omitempty"`
	Recurrences int           `json:"recurrences"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

func (f Finding) EntityID() string { return f.ID }

func (f Finding) Clone() Finding {
	out := f
	out.ActionItems = append([]ActionItem(nil), f.ActionItems...)
	return out
}

var _ lifecycle.Entity[Finding] = Finding{}

// OpenActionItems counts remediation actions still outstanding.
func (f *Finding) OpenActionItems() int {
	n := 0
	for i := range f.ActionItems {
		if !f.ActionItems[i].Completed {
			n++
		}
	}
	return n
}

// IsActive reports whether the finding still needs remediation work.
func (f *Finding) IsActive() bool {
	switch f.Status {
	case FindingOpen, FindingInProgress, FindingOverdue, FindingRecurring:
		return true
	}
	return false
}

// =============================================================================
// COMPLIANCE CHECKS
// =============================================================================

type ComplianceStatus string

const (
	Compliant          ComplianceStatus = "compliant"
	PartiallyCompliant ComplianceStatus = "partially_compliant"
	NonCompliant       ComplianceStatus = "non_compliant"
	NotAssessed        ComplianceStatus = "not_assessed"
)

func (s ComplianceStatus) Label() string {
	switch s {
	case Compliant:
		return "Compliant"
	case PartiallyCompliant:
		return "Partially Compliant"
	case NonCompliant:
		return "Non-Compliant"
	case NotAssessed:
		return "Not Assessed"
	}
	return string(s)
}

// ParseComplianceStatus is total: unknown input falls back to NotAssessed.
func ParseComplianceStatus(s string) ComplianceStatus {
	switch normalize(s) {
	case "compliant":
		return Compliant
	case "partially_compliant", "partially compliant":
		return PartiallyCompliant
	case "non_compliant", "non compliant", "non-compliant":
		return NonCompliant
	default:
		return NotAssessed
	}
}

// ComplianceCheck tracks adherence to one control within a regulatory
// framework. Score is 0-100.
type ComplianceCheck struct {
	ID           string           `json:"id"`
	Framework    string           `json:"framework"`
	Control      string           `json:"control"`
	Description  string           `json:"description,omitempty"`
	Status       ComplianceStatus `json:"status"`
	Score        float64          `json:"score"`
	LastReviewed string           `json:"last_reviewed,omitempty"`
	ReviewedBy   string           `json:"reviewed_by,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    string           `json:"created_at"`
	UpdatedAt    string           `json:"updated_at"`
}

func (c ComplianceCheck) EntityID() string { return c.ID }
func (c ComplianceCheck) Clone() ComplianceCheck { return c }

var _ lifecycle.Entity[ComplianceCheck] = ComplianceCheck{}

// =============================================================================
// RISK ASSESSMENTS
// =============================================================================

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ScoreRisk maps a likelihood-impact product (1-25) to its band:
// 1-4 low, 5-9 medium, 10-14 high, 15-25 critical.
func ScoreRisk(likelihood, impact int) (int, RiskLevel) {
	score := likelihood * impact
	switch {
	case score >= 15:
		return score, RiskCritical
	case score >= 10:
		return score, RiskHigh
	case score >= 5:
		return score, RiskMedium
	default:
		return score, RiskLow
	}
}

// RiskAssessment is one entry on the risk register. Score and Level are
// always derived from Likelihood and Impact, never stored independently.
type RiskAssessment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Likelihood  int       `json:"likelihood"`
	Impact      int       `json:"impact"`
	Score       int       `json:"score"`
	Level       RiskLevel `json:"level"`
	Mitigation  string    `json:"mitigation,omitempty"`
	Owner       string    `json:"owner"`
	ReviewDate  string    `json:"review_date,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func (r RiskAssessment) EntityID() string { return r.ID }
func (r RiskAssessment) Clone() RiskAssessment { return r }

var _ lifecycle.Entity[RiskAssessment] = RiskAssessment{}

// =============================================================================
// POLICY VIOLATIONS
// =============================================================================

type ViolationStatus string

const (
	ViolationReported      ViolationStatus = "reported"
	ViolationInvestigating ViolationStatus = "investigating"
	ViolationSubstantiated ViolationStatus = "substantiated"
	ViolationDismissed     ViolationStatus = "dismissed"
	ViolationClosed        ViolationStatus = "closed"
)

func (s ViolationStatus) Label() string {
	switch s {
	case ViolationReported:
		return "Reported"
	case ViolationInvestigating:
		return "Under Investigation"
	case ViolationSubstantiated:
		return "Substantiated"
	case ViolationDismissed:
		return "Dismissed"
	case ViolationClosed:
		return "Closed"
	}
	return string(s)
}

// ViolationTransitions: investigation decides between substantiated and
// dismissed; substantiated violations close once remedial action is taken.
var ViolationTransitions = lifecycle.NewTable(map[ViolationStatus][]ViolationStatus{
	ViolationReported:      {ViolationInvestigating},
	ViolationInvestigating: {ViolationSubstantiated, ViolationDismissed},
	ViolationSubstantiated: {ViolationClosed},
})

type PolicyViolation struct {
	ID          string          `json:"id"`
	Policy      string          `json:"policy"`
	Description string          `json:"description"`
	Severity    Severity        `json:"severity"`
	Status      ViolationStatus `json:"status"`
	ReportedBy  string          `json:"reported_by"`
	ReportedAt  string          `json:"reported_at"`
	Outcome     string          `json:"outcome,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

func (v PolicyViolation) EntityID() string { return v.ID }
func (v PolicyViolation) Clone() PolicyViolation { return v }

var _ lifecycle.Entity[PolicyViolation] = PolicyViolation{}

// =============================================================================
// FINDING FILTER AND SUMMARY
// =============================================================================

type FindingFilter struct {
	Status    FindingStatus `json:"status,omitempty"`
	Severity  Severity      `json:"severity,omitempty"`
	Category  string        `json:"category,omitempty"`
	AuditYear string        `json:"audit_year,omitempty"`
	Search    string        `json:"search,omitempty"`
}

func (f FindingFilter) predicates() []lifecycle.Predicate[Finding] {
	var preds []lifecycle.Predicate[Finding]
	if f.Status != "" {
		preds = append(preds, func(fd Finding) bool { return fd.Status == f.Status })
	}
	if f.Severity != "" {
		preds = append(preds, func(fd Finding) bool { return fd.Severity == f.Severity })
	}
	if f.Category != "" {
		preds = append(preds, func(fd Finding) bool { return lifecycle.MatchSearch(f.Category, fd.Category) })
	}
	if f.AuditYear != "" {
		preds = append(preds, func(fd Finding) bool { return fd.AuditYear == f.AuditYear })
	}
	if f.Search != "" {
		preds = append(preds, func(fd Finding) bool {
			return lifecycle.MatchSearch(f.Search, fd.Reference, fd.Title, fd.Category, fd.Owner)
		})
	}
	return preds
}

type FindingSummary struct {
	ID              string        `json:"id"`
	Reference       string        `json:"reference"`
	Title           string        `json:"title"`
	Category        string        `json:"category"`
	Severity        Severity      `json:"severity"`
	SeverityLabel   string        `json:"severity_label"`
	Status          FindingStatus `json:"status"`
	StatusLabel     string        `json:"status_label"`
	Owner           string        `json:"owner"`
	DueDate         string        `json:"due_date"`
	OpenActionItems int           `json:"open_action_items"`
	Recurrences     int           `json:"recurrences"`
}

func SummarizeFinding(f Finding) FindingSummary {
	return FindingSummary{
		ID:              f.ID,
		Reference:       f.Reference,
		Title:           f.Title,
		Category:        f.Category,
		Severity:        f.Severity,
		SeverityLabel:   f.Severity.Label(),
		Status:          f.Status,
		StatusLabel:     f.Status.Label(),
		Owner:           f.Owner,
		DueDate:         f.DueDate,
		OpenActionItems: f.OpenActionItems(),
		Recurrences:     f.Recurrences,
	}
}
