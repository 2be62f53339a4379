package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govstack/procure-engine/grc"
)

// =============================================================================
// GRC ENDPOINTS - findings, compliance, risks, violations
// =============================================================================

// ListFindings returns a filtered page of audit finding summaries.
// GET /api/v1/grc/findings
func (h *Handler) ListFindings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := grc.FindingFilter{
		Category:  q.Get("category"),
		AuditYear: q.Get("audit_year"),
		Search:    q.Get("search"),
	}
	if v := q.Get("status"); v != "" {
		f.Status = grc.ParseFindingStatus(v)
	}
	if v := q.Get("severity"); v != "" {
		f.Severity = grc.ParseSeverity(v)
	}

	page := pageFromQuery(q)
	items := h.svc.GRC.ListFindings(r.Context(), f, page)
	writeJSON(w, http.StatusOK, ListResponse[grc.FindingSummary]{Items: items, Pagination: *page})
}

// GET /api/v1/grc/findings/{id}
func (h *Handler) GetFinding(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.GRC.GetFinding(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// POST /api/v1/grc/findings
func (h *Handler) CreateFinding(w http.ResponseWriter, r *http.Request) {
	var body CreateFindingRequest
	if !decode(w, r, &body) {
		return
	}

	in := grc.CreateFinding{
		Title:       body.Title,
		Description: body.Description,
		Category:    body.Category,
		RaisedBy:    body.RaisedBy,
		AuditYear:   body.AuditYear,
		Owner:       body.Owner,
		DueDate:     body.DueDate,
	}
	if body.Severity != "" {
		in.Severity = grc.ParseSeverity(body.Severity)
	}

	f, err := h.svc.GRC.CreateFinding(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusCreated, f)
}

func (h *Handler) findingAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (grc.Finding, error)) {
	f, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusOK, f)
}

// POST /api/v1/grc/findings/{id}/start
func (h *Handler) StartFindingRemediation(w http.ResponseWriter, r *http.Request) {
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.StartRemediation(r.Context(), id)
	})
}

// POST /api/v1/grc/findings/{id}/resolve
func (h *Handler) ResolveFinding(w http.ResponseWriter, r *http.Request) {
	var body ResolveFindingRequest
	if !decode(w, r, &body) {
		return
	}
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.Resolve(r.Context(), id, body.Resolution)
	})
}

// POST /api/v1/grc/findings/{id}/close
func (h *Handler) CloseFinding(w http.ResponseWriter, r *http.Request) {
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.CloseFinding(r.Context(), id)
	})
}

// POST /api/v1/grc/findings/{id}/recur
func (h *Handler) MarkFindingRecurring(w http.ResponseWriter, r *http.Request) {
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.MarkRecurring(r.Context(), id)
	})
}

// SweepOverdueFindings moves past-due findings into Overdue.
// POST /api/v1/grc/findings/sweep-overdue
func (h *Handler) SweepOverdueFindings(w http.ResponseWriter, r *http.Request) {
	moved := h.svc.GRC.SweepOverdue(r.Context())
	if moved > 0 {
		h.saveGRC(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]int{"moved": moved})
}

// POST /api/v1/grc/findings/{id}/actions
func (h *Handler) AddFindingAction(w http.ResponseWriter, r *http.Request) {
	var body ActionItemRequest
	if !decode(w, r, &body) {
		return
	}
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.AddActionItem(r.Context(), id, body.Description, body.Owner, body.DueDate)
	})
}

// POST /api/v1/grc/findings/{id}/actions/{actionID}/complete
func (h *Handler) CompleteFindingAction(w http.ResponseWriter, r *http.Request) {
	actionID := chi.URLParam(r, "actionID")
	h.findingAction(w, r, func(id string) (grc.Finding, error) {
		return h.svc.GRC.CompleteActionItem(r.Context(), id, actionID)
	})
}

// GET /api/v1/grc/compliance
func (h *Handler) ListCompliance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GRC.ListCompliance(r.Context()))
}

// POST /api/v1/grc/compliance/{id}/review
func (h *Handler) RecordComplianceReview(w http.ResponseWriter, r *http.Request) {
	var body ReviewRequest
	if !decode(w, r, &body) {
		return
	}
	check, err := h.svc.GRC.RecordReview(r.Context(), chi.URLParam(r, "id"),
		grc.ParseComplianceStatus(body.Status), body.Score, body.ReviewedBy, body.Notes)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusOK, check)
}

// GET /api/v1/grc/risks
func (h *Handler) ListRisks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GRC.ListRisks(r.Context()))
}

// POST /api/v1/grc/risks
func (h *Handler) CreateRisk(w http.ResponseWriter, r *http.Request) {
	var body CreateRiskRequest
	if !decode(w, r, &body) {
		return
	}
	risk, err := h.svc.GRC.CreateRisk(r.Context(), grc.CreateRisk{
		Title:       body.Title,
		Category:    body.Category,
		Description: body.Description,
		Likelihood:  body.Likelihood,
		Impact:      body.Impact,
		Mitigation:  body.Mitigation,
		Owner:       body.Owner,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusCreated, risk)
}

// POST /api/v1/grc/risks/{id}/reassess
func (h *Handler) ReassessRisk(w http.ResponseWriter, r *http.Request) {
	var body ReassessRequest
	if !decode(w, r, &body) {
		return
	}
	risk, err := h.svc.GRC.Reassess(r.Context(), chi.URLParam(r, "id"), body.Likelihood, body.Impact)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusOK, risk)
}

// GET /api/v1/grc/violations
func (h *Handler) ListViolations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GRC.ListViolations(r.Context()))
}

// POST /api/v1/grc/violations
func (h *Handler) ReportViolation(w http.ResponseWriter, r *http.Request) {
	var body ReportViolationRequest
	if !decode(w, r, &body) {
		return
	}
	var severity grc.Severity
	if body.Severity != "" {
		severity = grc.ParseSeverity(body.Severity)
	}
	v, err := h.svc.GRC.ReportViolation(r.Context(), body.Policy, body.Description, body.ReportedBy, severity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) violationAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (grc.PolicyViolation, error)) {
	v, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveGRC(r.Context())
	writeJSON(w, http.StatusOK, v)
}

// POST /api/v1/grc/violations/{id}/investigate
func (h *Handler) StartViolationInvestigation(w http.ResponseWriter, r *http.Request) {
	h.violationAction(w, r, func(id string) (grc.PolicyViolation, error) {
		return h.svc.GRC.StartInvestigation(r.Context(), id)
	})
}

// POST /api/v1/grc/violations/{id}/conclude
func (h *Handler) ConcludeViolationInvestigation(w http.ResponseWriter, r *http.Request) {
	var body ConcludeViolationRequest
	if !decode(w, r, &body) {
		return
	}
	h.violationAction(w, r, func(id string) (grc.PolicyViolation, error) {
		return h.svc.GRC.ConcludeInvestigation(r.Context(), id, body.Substantiated, body.Outcome)
	})
}

// POST /api/v1/grc/violations/{id}/close
func (h *Handler) CloseViolation(w http.ResponseWriter, r *http.Request) {
	h.violationAction(w, r, func(id string) (grc.PolicyViolation, error) {
		return h.svc.GRC.CloseViolation(r.Context(), id)
	})
}

// GET /api/v1/grc/kpis
func (h *Handler) GRCKpis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GRC.Kpis(r.Context()))
}
