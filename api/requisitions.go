package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govstack/procure-engine/requisition"
)

// =============================================================================
// REQUISITION ENDPOINTS
// =============================================================================

// ListRequisitions returns a filtered page of requisition summaries.
// GET /api/v1/requisitions
func (h *Handler) ListRequisitions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := requisition.Filter{
		Department: q.Get("department"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Search:     q.Get("search"),
	}
	if v := q.Get("status"); v != "" {
		f.Status = requisition.ParseStatus(v)
	}
	if v := q.Get("priority"); v != "" {
		f.Priority = requisition.ParsePriority(v)
	}

	page := pageFromQuery(q)
	items := h.svc.Requisitions.List(r.Context(), f, page)
	writeJSON(w, http.StatusOK, ListResponse[requisition.Summary]{Items: items, Pagination: *page})
}

// GetRequisition returns a single requisition.
// GET /api/v1/requisitions/{id}
func (h *Handler) GetRequisition(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Requisitions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// CreateRequisition drafts a new requisition.
// POST /api/v1/requisitions
func (h *Handler) CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var body CreateRequisitionRequest
	if !decode(w, r, &body) {
		return
	}

	in := requisition.CreateRequisition{
		Title:         body.Title,
		Description:   body.Description,
		Department:    body.Department,
		BudgetCode:    body.BudgetCode,
		Items:         body.Items,
		DateRequired:  body.DateRequired,
		Justification: body.Justification,
		RequestedBy:   body.RequestedBy,
	}
	if body.Priority != "" {
		in.Priority = requisition.ParsePriority(body.Priority)
	}

	req, err := h.svc.Requisitions.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveRequisitions(r.Context())
	writeJSON(w, http.StatusCreated, req)
}

// UpdateRequisition edits a draft or rejected requisition.
// PUT /api/v1/requisitions/{id}
func (h *Handler) UpdateRequisition(w http.ResponseWriter, r *http.Request) {
	var body UpdateRequisitionRequest
	if !decode(w, r, &body) {
		return
	}

	in := requisition.UpdateRequisition{
		Title:         body.Title,
		Description:   body.Description,
		BudgetCode:    body.BudgetCode,
		Items:         body.Items,
		DateRequired:  body.DateRequired,
		Justification: body.Justification,
	}
	if body.Priority != "" {
		in.Priority = requisition.ParsePriority(body.Priority)
	}

	req, err := h.svc.Requisitions.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveRequisitions(r.Context())
	writeJSON(w, http.StatusOK, req)
}

// DeleteRequisition removes a draft.
// DELETE /api/v1/requisitions/{id}
func (h *Handler) DeleteRequisition(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Requisitions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveRequisitions(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// requisitionAction runs a status transition and writes the updated entity.
func (h *Handler) requisitionAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (requisition.Requisition, error)) {
	req, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveRequisitions(r.Context())
	writeJSON(w, http.StatusOK, req)
}

// POST /api/v1/requisitions/{id}/submit
func (h *Handler) SubmitRequisition(w http.ResponseWriter, r *http.Request) {
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Submit(r.Context(), id)
	})
}

// POST /api/v1/requisitions/{id}/move-to-approval
func (h *Handler) MoveRequisitionToApproval(w http.ResponseWriter, r *http.Request) {
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.MoveToApproval(r.Context(), id)
	})
}

// POST /api/v1/requisitions/{id}/approve
func (h *Handler) ApproveRequisition(w http.ResponseWriter, r *http.Request) {
	var body ApproveRequest
	if !decode(w, r, &body) {
		return
	}
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Approve(r.Context(), id, body.Approver)
	})
}

// POST /api/v1/requisitions/{id}/reject
func (h *Handler) RejectRequisition(w http.ResponseWriter, r *http.Request) {
	var body ReasonRequest
	if !decode(w, r, &body) {
		return
	}
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Reject(r.Context(), id, body.Reason)
	})
}

// POST /api/v1/requisitions/{id}/rework
func (h *Handler) ReworkRequisition(w http.ResponseWriter, r *http.Request) {
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Rework(r.Context(), id)
	})
}

// POST /api/v1/requisitions/{id}/start-fulfilment
func (h *Handler) StartRequisitionFulfilment(w http.ResponseWriter, r *http.Request) {
	var body StartFulfilmentRequest
	if !decode(w, r, &body) {
		return
	}
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.StartFulfilment(r.Context(), id, body.TenderRef, body.PORef)
	})
}

// POST /api/v1/requisitions/{id}/complete
func (h *Handler) CompleteRequisition(w http.ResponseWriter, r *http.Request) {
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Complete(r.Context(), id)
	})
}

// POST /api/v1/requisitions/{id}/cancel
func (h *Handler) CancelRequisition(w http.ResponseWriter, r *http.Request) {
	h.requisitionAction(w, r, func(id string) (requisition.Requisition, error) {
		return h.svc.Requisitions.Cancel(r.Context(), id)
	})
}

// GET /api/v1/requisitions/stats
func (h *Handler) RequisitionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Requisitions.Stats(r.Context()))
}
