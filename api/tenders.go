package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govstack/procure-engine/tender"
)

// =============================================================================
// TENDER ENDPOINTS
// =============================================================================

// ListTenders returns a filtered page of tender summaries.
// GET /api/v1/tenders
func (h *Handler) ListTenders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := tender.Filter{
		Category:   q.Get("category"),
		Department: q.Get("department"),
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		Search:     q.Get("search"),
	}
	if v := q.Get("status"); v != "" {
		f.Status = tender.ParseStatus(v)
	}
	if v := q.Get("method"); v != "" {
		f.Method = tender.ParseMethod(v)
	}

	page := pageFromQuery(q)
	items := h.svc.Tenders.List(r.Context(), f, page)
	writeJSON(w, http.StatusOK, ListResponse[tender.Summary]{Items: items, Pagination: *page})
}

// GET /api/v1/tenders/{id}
func (h *Handler) GetTender(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Tenders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// POST /api/v1/tenders
func (h *Handler) CreateTender(w http.ResponseWriter, r *http.Request) {
	var body CreateTenderRequest
	if !decode(w, r, &body) {
		return
	}

	in := tender.CreateTender{
		Title:          body.Title,
		Description:    body.Description,
		Category:       body.Category,
		Department:     body.Department,
		RequisitionRef: body.RequisitionRef,
		EstimatedValue: body.EstimatedValue,
		Briefing:       body.Briefing,
		ClosingDate:    body.ClosingDate,
		CreatedBy:      body.CreatedBy,
	}
	if body.Method != "" {
		in.Method = tender.ParseMethod(body.Method)
	}

	t, err := h.svc.Tenders.Create(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveTenders(r.Context())
	writeJSON(w, http.StatusCreated, t)
}

// PUT /api/v1/tenders/{id}
func (h *Handler) UpdateTender(w http.ResponseWriter, r *http.Request) {
	var body UpdateTenderRequest
	if !decode(w, r, &body) {
		return
	}

	in := tender.UpdateTender{
		Title:          body.Title,
		Description:    body.Description,
		Category:       body.Category,
		Department:     body.Department,
		EstimatedValue: body.EstimatedValue,
		Briefing:       body.Briefing,
		ClosingDate:    body.ClosingDate,
		Documents:      body.Documents,
	}
	if body.Method != "" {
		in.Method = tender.ParseMethod(body.Method)
	}

	t, err := h.svc.Tenders.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveTenders(r.Context())
	writeJSON(w, http.StatusOK, t)
}

// DELETE /api/v1/tenders/{id}
func (h *Handler) DeleteTender(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Tenders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveTenders(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) tenderAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (tender.Tender, error)) {
	t, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveTenders(r.Context())
	writeJSON(w, http.StatusOK, t)
}

// POST /api/v1/tenders/{id}/submit
func (h *Handler) SubmitTender(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.SubmitForApproval(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/approve
func (h *Handler) ApproveTender(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.Approve(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/reject
func (h *Handler) RejectTender(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.Reject(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/publish
func (h *Handler) PublishTender(w http.ResponseWriter, r *http.Request) {
	var body PublishTenderRequest
	if !decode(w, r, &body) {
		return
	}
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.Publish(r.Context(), id, body.PortalRef)
	})
}

// POST /api/v1/tenders/{id}/open
func (h *Handler) OpenTenderForBids(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.OpenForBids(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/close-bidding
func (h *Handler) CloseTenderBidding(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.CloseBidding(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/start-evaluation
func (h *Handler) StartTenderEvaluation(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.StartEvaluation(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/move-to-adjudication
func (h *Handler) MoveTenderToAdjudication(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.MoveToAdjudication(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/award
func (h *Handler) AwardTender(w http.ResponseWriter, r *http.Request) {
	var body AwardRequest
	if !decode(w, r, &body) {
		return
	}
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.Award(r.Context(), id, body.BidID)
	})
}

// POST /api/v1/tenders/{id}/cancel
func (h *Handler) CancelTender(w http.ResponseWriter, r *http.Request) {
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.Cancel(r.Context(), id)
	})
}

// POST /api/v1/tenders/{id}/bids
func (h *Handler) SubmitTenderBid(w http.ResponseWriter, r *http.Request) {
	var body SubmitBidRequest
	if !decode(w, r, &body) {
		return
	}
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.RecordBid(r.Context(), id, tender.SubmitBid{
			SupplierName: body.SupplierName,
			BidAmount:    body.BidAmount,
			BBBEELevel:   body.BBBEELevel,
		})
	})
}

// POST /api/v1/tenders/{id}/bids/{bidID}/screen
func (h *Handler) ScreenTenderBid(w http.ResponseWriter, r *http.Request) {
	var body ScreenBidRequest
	if !decode(w, r, &body) {
		return
	}
	bidID := chi.URLParam(r, "bidID")
	h.tenderAction(w, r, func(id string) (tender.Tender, error) {
		return h.svc.Tenders.ScreenBid(r.Context(), id, bidID, body.Responsive, body.Score, body.Notes)
	})
}

// GET /api/v1/tenders/stats
func (h *Handler) TenderStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Tenders.Stats(r.Context()))
}
