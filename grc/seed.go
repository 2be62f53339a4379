package grc

// =============================================================================
// SEED DATA - Demo fixtures loaded at startup when seeding is enabled
// =============================================================================

// SeedSequence is the next finding reference after the fixtures below.
const SeedSequence = 18

// Seed returns the demo GRC registers.
func Seed() Registers {
	return Registers{
		Findings: []Finding{
			{
				ID:          "fnd-001",
				Reference:   "FND-2024-0014",
				Title:       "Deviations approved without documented justification",
				Description: "Procurement deviations in Q3 lacked the motivation memoranda required by the SCM policy",
				Category:    "Supply Chain Management",
				Severity:    SeverityHigh,
				Status:      FindingInProgress,
				RaisedBy:    "External Audit",
				AuditYear:   "2023/24",
				Owner:       "m.van.wyk",
				DueDate:     "2025-04-30",
				ActionItems: []ActionItem{
					{ID: "act-001", Description: "Retrofit motivation memoranda for Q3 deviations", Owner: "s.naidoo", DueDate: "2025-03-31", Completed: true, CompletedAt: "2025-03-12T10:00:00Z"},
					{ID: "act-002", Description: "Deploy deviation register with mandatory justification field", Owner: "it.support", DueDate: "2025-04-15"},
				},
				CreatedAt: "2024-11-20T09:00:00Z",
				UpdatedAt: "2025-03-12T10:00:00Z",
			},
			{
				ID:         "fnd-002",
				Reference:  "FND-2024-0015",
				Title:      "Contract register incomplete",
				Category:   "Contract Management",
				Severity:   SeverityMedium,
				Status:     FindingOverdue,
				RaisedBy:   "Internal Audit",
				AuditYear:  "2023/24",
				Owner:      "p.botha",
				DueDate:    "2025-02-28",
				CreatedAt:  "2024-12-05T14:30:00Z",
				UpdatedAt:  "2025-03-01T08:00:00Z",
			},
			{
				ID:          "fnd-003",
				Reference:   "FND-2024-0016",
				Title:       "Irregular expenditure not disclosed in interim financials",
				Category:    "Financial Reporting",
				Severity:    SeverityCritical,
				Status:      FindingResolved,
				RaisedBy:    "External Audit",
				AuditYear:   "2023/24",
				Owner:       "cfo.office",
				DueDate:     "2025-01-31",
				Resolution:  "Disclosure note restated and review control added to close-out checklist",
				ResolvedAt:  "2025-01-28T16:45:00Z",
				Recurrences: 1,
				CreatedAt:   "2024-11-20T09:05:00Z",
				UpdatedAt:   "2025-01-28T16:45:00Z",
			},
			{
				ID:        "fnd-004",
				Reference: "FND-2025-0017",
				Title:     "User access reviews not performed quarterly",
				Category:  "Information Technology",
				Severity:  SeverityLow,
				Status:    FindingOpen,
				RaisedBy:  "Internal Audit",
				AuditYear: "2024/25",
				Owner:     "it.support",
				DueDate:   "2025-06-30",
				CreatedAt: "2025-02-14T11:20:00Z",
				UpdatedAt: "2025-02-14T11:20:00Z",
			},
		},
		Compliance: []ComplianceCheck{
			{
				ID: "cmp-001", Framework: "PFMA", Control: "30-day supplier payment",
				Description: "Valid invoices settled within 30 days of receipt",
				Status:      PartiallyCompliant, Score: 72,
				LastReviewed: "2025-02-28", ReviewedBy: "cfo.office",
				Notes:     "Average payment cycle at 36 days for Q3",
				CreatedAt: "2024-07-01T08:00:00Z", UpdatedAt: "2025-02-28T15:00:00Z",
			},
			{
				ID: "cmp-002", Framework: "PPPFA", Control: "Preference point application",
				Description: "Preference point system applied per tender value threshold",
				Status:      Compliant, Score: 96,
				LastReviewed: "2025-01-31", ReviewedBy: "scm.unit",
				CreatedAt: "2024-07-01T08:00:00Z", UpdatedAt: "2025-01-31T12:00:00Z",
			},
			{
				ID: "cmp-003", Framework: "B-BBEE", Control: "Supplier verification certificates",
				Description: "Valid B-BBEE certificates on file for all active suppliers",
				Status:      NonCompliant, Score: 41,
				LastReviewed: "2025-03-10", ReviewedBy: "scm.unit",
				Notes:     "37 of 63 active suppliers have expired certificates",
				CreatedAt: "2024-07-01T08:00:00Z", UpdatedAt: "2025-03-10T09:30:00Z",
			},
			{
				ID: "cmp-004", Framework: "PFMA", Control: "Irregular expenditure reporting",
				Status:    NotAssessed, Score: 0,
				CreatedAt: "2025-03-01T08:00:00Z", UpdatedAt: "2025-03-01T08:00:00Z",
			},
		},
		Risks: []RiskAssessment{
			{
				ID: "rsk-001", Title: "Single supplier dependency for network hardware",
				Category: "Supply Chain", Likelihood: 3, Impact: 4, Score: 12, Level: RiskHigh,
				Mitigation: "Qualify second OEM reseller on the panel",
				Owner:      "scm.unit", ReviewDate: "2025-02-15",
				CreatedAt: "2024-09-10T10:00:00Z", UpdatedAt: "2025-02-15T10:00:00Z",
			},
			{
				ID: "rsk-002", Title: "Budget overrun on facilities contracts",
				Category: "Financial", Likelihood: 4, Impact: 4, Score: 16, Level: RiskCritical,
				Mitigation: "Monthly commitment register review with variance alerts",
				Owner:      "cfo.office",
				CreatedAt:  "2024-09-10T10:05:00Z", UpdatedAt: "2024-09-10T10:05:00Z",
			},
			{
				ID: "rsk-003", Title: "Key person risk in bid adjudication committee",
				Category: "Governance", Likelihood: 2, Impact: 3, Score: 6, Level: RiskMedium,
				Owner:     "m.van.wyk",
				CreatedAt: "2025-01-20T09:00:00Z", UpdatedAt: "2025-01-20T09:00:00Z",
			},
		},
		Violations: []PolicyViolation{
			{
				ID: "vio-001", Policy: "SCM Policy s12: three-quote threshold",
				Description: "Order split into two POs to stay under the quotation threshold",
				Severity:    SeverityHigh, Status: ViolationInvestigating,
				ReportedBy: "internal.audit", ReportedAt: "2025-03-05T10:00:00Z",
				CreatedAt: "2025-03-05T10:00:00Z", UpdatedAt: "2025-03-07T14:00:00Z",
			},
			{
				ID: "vio-002", Policy: "Gift and hospitality register",
				Description: "Undeclared supplier hospitality at industry event",
				Severity:    SeverityLow, Status: ViolationClosed,
				ReportedBy: "line.manager", ReportedAt: "2025-01-15T09:00:00Z",
				Outcome:   "Declared retrospectively, written warning issued",
				CreatedAt: "2025-01-15T09:00:00Z", UpdatedAt: "2025-02-01T11:00:00Z",
			},
		},
	}
}
