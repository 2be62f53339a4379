package grc

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

// Service owns the four GRC registers: audit findings, compliance checks,
// the risk register and policy violations.
type Service struct {
	findings   *lifecycle.Collection[Finding]
	compliance *lifecycle.Collection[ComplianceCheck]
	risks      *lifecycle.Collection[RiskAssessment]
	violations *lifecycle.Collection[PolicyViolation]
	clock      lifecycle.Clock
	log        *zap.Logger
}

// Registers bundles the seed data for each register.
type Registers struct {
	Findings   []Finding
	Compliance []ComplianceCheck
	Risks      []RiskAssessment
	Violations []PolicyViolation
}

func NewService(seed Registers, nextFindingSeq int, clock lifecycle.Clock, log *zap.Logger) *Service {
	return &Service{
		findings:   lifecycle.NewCollection("finding", seed.Findings, nextFindingSeq),
		compliance: lifecycle.NewCollection("compliance check", seed.Compliance, 1),
		risks:      lifecycle.NewCollection("risk assessment", seed.Risks, 1),
		violations: lifecycle.NewCollection("policy violation", seed.Violations, 1),
		clock:      clock,
		log:        log.Named("grc"),
	}
}

func (s *Service) Findings() *lifecycle.Collection[Finding]           { return s.findings }
func (s *Service) Compliance() *lifecycle.Collection[ComplianceCheck] { return s.compliance }
func (s *Service) Risks() *lifecycle.Collection[RiskAssessment]       { return s.risks }
func (s *Service) Violations() *lifecycle.Collection[PolicyViolation] { return s.violations }

// =============================================================================
// FINDINGS - queries
// =============================================================================

func (s *Service) ListFindings(_ context.Context, f FindingFilter, page *lifecycle.Pagination) []FindingSummary {
	matched := lifecycle.Filter(s.findings.List(), f.predicates()...)
	page.UpdateTotals(len(matched))

	out := make([]FindingSummary, 0, page.PageSize)
	for _, fd := range lifecycle.Page(matched, *page) {
		out = append(out, SummarizeFinding(fd))
	}
	return out
}

func (s *Service) GetFinding(_ context.Context, id string) (Finding, error) {
	return s.findings.Get(id)
}

// =============================================================================
// FINDINGS - mutations
// =============================================================================

type CreateFinding struct {
	Title       string
	Description string
	Category    string
	Severity    Severity
	RaisedBy    string
	AuditYear   string
	Owner       string
	DueDate     string
}

func (s *Service) CreateFinding(_ context.Context, in CreateFinding) (Finding, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Finding{}, &lifecycle.ValidationError{Field: "title", Message: "title is required"}
	}
	severity := in.Severity
	if severity == "" {
		severity = SeverityMedium
	}

	now := s.clock.Now()
	f := Finding{
		ID:          uuid.NewString(),
		Reference:   s.findings.NextID("FND-%d-%04d", now.Year()),
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Severity:    severity,
		Status:      FindingOpen,
		RaisedBy:    in.RaisedBy,
		AuditYear:   in.AuditYear,
		Owner:       in.Owner,
		DueDate:     in.DueDate,
		CreatedAt:   lifecycle.Stamp(now),
		UpdatedAt:   lifecycle.Stamp(now),
	}

	s.findings.Insert(f)
	s.log.Info("finding created",
		zap.String("id", f.ID),
		zap.String("reference", f.Reference),
		zap.String("severity", string(f.Severity)))
	return f, nil
}

func (s *Service) transitionFinding(id string, target FindingStatus, apply func(f *Finding) error) (Finding, error) {
	updated, err := s.findings.Update(id, func(f Finding) (Finding, error) {
		if err := FindingTransitions.Check(f.Status, target); err != nil {
			return f, err
		}
		if apply != nil {
			if err := apply(&f); err != nil {
				return f, err
			}
		}
		f.Status = target
		f.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return f, nil
	})
	if err != nil {
		return Finding{}, err
	}
	s.log.Info("finding status changed",
		zap.String("id", id), zap.String("status", string(target)))
	return updated, nil
}

// StartRemediation moves an open, overdue or recurring finding into active
// remediation.
func (s *Service) StartRemediation(_ context.Context, id string) (Finding, error) {
	return s.transitionFinding(id, FindingInProgress, nil)
}

// Resolve records the resolution. Every action item must be completed first.
func (s *Service) Resolve(_ context.Context, id, resolution string) (Finding, error) {
	if strings.TrimSpace(resolution) == "" {
		return Finding{}, &lifecycle.ValidationError{Field: "resolution", Message: "resolution is required"}
	}
	return s.transitionFinding(id, FindingResolved, func(f *Finding) error {
		if open := f.OpenActionItems(); open > 0 {
			return &lifecycle.PreconditionError{
				Message: fmt.Sprintf("%d action item(s) still open", open),
			}
		}
		f.Resolution = resolution
		f.ResolvedAt = lifecycle.Stamp(s.clock.Now())
		return nil
	})
}

func (s *Service) CloseFinding(_ context.Context, id string) (Finding, error) {
	return s.transitionFinding(id, FindingClosed, nil)
}

// MarkRecurring reopens a resolved finding that the next audit cycle raised
// again, and increments its recurrence count.
func (s *Service) MarkRecurring(_ context.Context, id string) (Finding, error) {
	return s.transitionFinding(id, FindingRecurring, func(f *Finding) error {
		f.Recurrences++
		f.Resolution = ""
		f.ResolvedAt = ""
		return nil
	})
}

// SweepOverdue flags open and in-progress findings whose due date has passed.
// Returns the number of findings moved to Overdue.
func (s *Service) SweepOverdue(_ context.Context) int {
	today := lifecycle.DateStamp(s.clock.Now())
	moved := 0
	for _, f := range s.findings.List() {
		if f.DueDate == "" || f.DueDate >= today {
			continue
		}
		if !FindingTransitions.Allows(f.Status, FindingOverdue) {
			continue
		}
		if _, err := s.transitionFinding(f.ID, FindingOverdue, nil); err == nil {
			moved++
		}
	}
	if moved > 0 {
		s.log.Info("overdue sweep", zap.Int("moved", moved))
	}
	return moved
}

// AddActionItem attaches a remediation action to an active finding.
func (s *Service) AddActionItem(_ context.Context, id, description, owner, dueDate string) (Finding, error) {
	if strings.TrimSpace(description) == "" {
		return Finding{}, &lifecycle.ValidationError{Field: "description", Message: "description is required"}
	}
	return s.findings.Update(id, func(f Finding) (Finding, error) {
		if !f.IsActive() {
			return f, &lifecycle.PreconditionError{
				Message: fmt.Sprintf("cannot add actions to a %s finding", f.Status.Label()),
			}
		}
		f.ActionItems = append(f.ActionItems, ActionItem{
			ID:          uuid.NewString(),
			Description: description,
			Owner:       owner,
			DueDate:     dueDate,
		})
		f.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return f, nil
	})
}

func (s *Service) CompleteActionItem(_ context.Context, id, actionID string) (Finding, error) {
	return s.findings.Update(id, func(f Finding) (Finding, error) {
		for i := range f.ActionItems {
			if f.ActionItems[i].ID != actionID {
				continue
			}
			f.ActionItems[i].Completed = true
			f.ActionItems[i].CompletedAt = lifecycle.Stamp(s.clock.Now())
			f.UpdatedAt = lifecycle.Stamp(s.clock.Now())
			return f, nil
		}
		return f, &lifecycle.NotFoundError{Kind: "action item", ID: actionID}
	})
}

// =============================================================================
// COMPLIANCE CHECKS
// =============================================================================

func (s *Service) ListCompliance(_ context.Context) []ComplianceCheck {
	return s.compliance.List()
}

// RecordReview stores the outcome of reviewing one control.
func (s *Service) RecordReview(_ context.Context, id string, status ComplianceStatus, score float64, reviewedBy, notes string) (ComplianceCheck, error) {
	if score < 0 || score > 100 {
		return ComplianceCheck{}, &lifecycle.ValidationError{Field: "score", Message: "score must be between 0 and 100"}
	}
	return s.compliance.Update(id, func(c ComplianceCheck) (ComplianceCheck, error) {
		c.Status = status
		c.Score = score
		c.ReviewedBy = reviewedBy
		c.Notes = notes
		c.LastReviewed = lifecycle.DateStamp(s.clock.Now())
		c.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return c, nil
	})
}

// =============================================================================
// RISK REGISTER
// =============================================================================

type CreateRisk struct {
	Title       string
	Category    string
	Description string
	Likelihood  int
	Impact      int
	Mitigation  string
	Owner       string
}

func validateRiskRating(likelihood, impact int) error {
	if likelihood < 1 || likelihood > 5 {
		return &lifecycle.ValidationError{Field: "likelihood", Message: "likelihood must be between 1 and 5"}
	}
	if impact < 1 || impact > 5 {
		return &lifecycle.ValidationError{Field: "impact", Message: "impact must be between 1 and 5"}
	}
	return nil
}

func (s *Service) CreateRisk(_ context.Context, in CreateRisk) (RiskAssessment, error) {
	if strings.TrimSpace(in.Title) == "" {
		return RiskAssessment{}, &lifecycle.ValidationError{Field: "title", Message: "title is required"}
	}
	if err := validateRiskRating(in.Likelihood, in.Impact); err != nil {
		return RiskAssessment{}, err
	}

	now := s.clock.Now()
	score, level := ScoreRisk(in.Likelihood, in.Impact)
	r := RiskAssessment{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Likelihood:  in.Likelihood,
		Impact:      in.Impact,
		Score:       score,
		Level:       level,
		Mitigation:  in.Mitigation,
		Owner:       in.Owner,
		CreatedAt:   lifecycle.Stamp(now),
		UpdatedAt:   lifecycle.Stamp(now),
	}

	s.risks.Insert(r)
	s.log.Info("risk registered",
		zap.String("id", r.ID),
		zap.Int("score", r.Score),
		zap.String("level", string(r.Level)))
	return r, nil
}

// Reassess re-rates the risk and re-derives its score and band.
func (s *Service) Reassess(_ context.Context, id string, likelihood, impact int) (RiskAssessment, error) {
	if err := validateRiskRating(likelihood, impact); err != nil {
		return RiskAssessment{}, err
	}
	return s.risks.Update(id, func(r RiskAssessment) (RiskAssessment, error) {
		r.Likelihood = likelihood
		r.Impact = impact
		r.Score, r.Level = ScoreRisk(likelihood, impact)
		r.ReviewDate = lifecycle.DateStamp(s.clock.Now())
		r.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		return r, nil
	})
}

func (s *Service) ListRisks(_ context.Context) []RiskAssessment {
	return s.risks.List()
}

// =============================================================================
// POLICY VIOLATIONS
// =============================================================================

func (s *Service) ReportViolation(_ context.Context, policy, description, reportedBy string, severity Severity) (PolicyViolation, error) {
	if strings.TrimSpace(policy) == "" {
		return PolicyViolation{}, &lifecycle.ValidationError{Field: "policy", Message: "policy is required"}
	}
	if severity == "" {
		severity = SeverityMedium
	}

	now := s.clock.Now()
	v := PolicyViolation{
		ID:          uuid.NewString(),
		Policy:      policy,
		Description: description,
		Severity:    severity,
		Status:      ViolationReported,
		ReportedBy:  reportedBy,
		ReportedAt:  lifecycle.Stamp(now),
		CreatedAt:   lifecycle.Stamp(now),
		UpdatedAt:   lifecycle.Stamp(now),
	}

	s.violations.Insert(v)
	s.log.Info("policy violation reported",
		zap.String("id", v.ID), zap.String("policy", v.Policy))
	return v, nil
}

func (s *Service) transitionViolation(id string, target ViolationStatus, apply func(v *PolicyViolation)) (PolicyViolation, error) {
	return s.violations.Update(id, func(v PolicyViolation) (PolicyViolation, error) {
		if err := ViolationTransitions.Check(v.Status, target); err != nil {
			return v, err
		}
		v.Status = target
		v.UpdatedAt = lifecycle.Stamp(s.clock.Now())
		if apply != nil {
			apply(&v)
		}
		return v, nil
	})
}

func (s *Service) StartInvestigation(_ context.Context, id string) (PolicyViolation, error) {
	return s.transitionViolation(id, ViolationInvestigating, nil)
}

// ConcludeInvestigation records whether the violation was substantiated.
func (s *Service) ConcludeInvestigation(_ context.Context, id string, substantiated bool, outcome string) (PolicyViolation, error) {
	target := ViolationDismissed
	if substantiated {
		target = ViolationSubstantiated
	}
	return s.transitionViolation(id, target, func(v *PolicyViolation) {
		v.Outcome = outcome
	})
}

func (s *Service) CloseViolation(_ context.Context, id string) (PolicyViolation, error) {
	return s.transitionViolation(id, ViolationClosed, nil)
}

func (s *Service) ListViolations(_ context.Context) []PolicyViolation {
	return s.violations.List()
}
