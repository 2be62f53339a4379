package grc

import (
	"context"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// KPI AGGREGATION
// =============================================================================

// Kpis is the audit-readiness dashboard aggregate across all four registers.
// ResolutionRate is resolved-or-closed over all findings; ComplianceScore is
// the unweighted mean over assessed controls.
type Kpis struct {
	TotalFindings    int                      `json:"total_findings"`
	ActiveFindings   int                      `json:"active_findings"`
	OverdueFindings  int                      `json:"overdue_findings"`
	RecurringRate    float64                  `json:"recurring_rate"`
	ResolutionRate   float64                  `json:"resolution_rate"`
	BySeverity       map[Severity]int         `json:"by_severity"`
	ByStatus         map[FindingStatus]int    `json:"by_status"`
	ComplianceScore  float64                  `json:"compliance_score"`
	ByCompliance     map[ComplianceStatus]int `json:"by_compliance"`
	NonCompliant     int                      `json:"non_compliant"`
	HighRisks        int                      `json:"high_risks"`
	AverageRiskScore float64                  `json:"average_risk_score"`
	OpenViolations   int                      `json:"open_violations"`
}

func (s *Service) Kpis(_ context.Context) Kpis {
	findings := s.findings.List()
	checks := s.compliance.List()
	risks := s.risks.List()
	violations := s.violations.List()

	resolved := lifecycle.CountWhere(findings, func(f Finding) bool {
		return f.Status == FindingResolved || f.Status == FindingClosed
	})
	recurring := lifecycle.CountWhere(findings, func(f Finding) bool { return f.Recurrences > 0 })

	assessed := lifecycle.Filter(checks, func(c ComplianceCheck) bool { return c.Status != NotAssessed })
	scoreSum := lifecycle.SumBy(assessed, func(c ComplianceCheck) float64 { return c.Score })

	riskSum := lifecycle.SumBy(risks, func(r RiskAssessment) float64 { return float64(r.Score) })

	return Kpis{
		TotalFindings:  len(findings),
		ActiveFindings: lifecycle.CountWhere(findings, func(f Finding) bool { return f.IsActive() }),
		OverdueFindings: lifecycle.CountWhere(findings, func(f Finding) bool {
			return f.Status == FindingOverdue
		}),
		RecurringRate:   lifecycle.Percent(float64(recurring), float64(len(findings))),
		ResolutionRate:  lifecycle.Percent(float64(resolved), float64(len(findings))),
		BySeverity:      lifecycle.CountBy(findings, func(f Finding) Severity { return f.Severity }),
		ByStatus:        lifecycle.CountBy(findings, func(f Finding) FindingStatus { return f.Status }),
		ComplianceScore: lifecycle.Ratio(scoreSum, float64(len(assessed))),
		ByCompliance:    lifecycle.CountBy(checks, func(c ComplianceCheck) ComplianceStatus { return c.Status }),
		NonCompliant: lifecycle.CountWhere(checks, func(c ComplianceCheck) bool {
			return c.Status == NonCompliant
		}),
		HighRisks: lifecycle.CountWhere(risks, func(r RiskAssessment) bool {
			return r.Level == RiskHigh || r.Level == RiskCritical
		}),
		AverageRiskScore: lifecycle.Ratio(riskSum, float64(len(risks))),
		OpenViolations: lifecycle.CountWhere(violations, func(v PolicyViolation) bool {
			return v.Status != ViolationClosed && v.Status != ViolationDismissed
		}),
	}
}
