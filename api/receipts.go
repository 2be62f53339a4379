package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govstack/procure-engine/goodsreceipt"
)

// =============================================================================
// GOODS RECEIPT ENDPOINTS
// =============================================================================

// ListReceipts returns a filtered page of goods receipt summaries.
// GET /api/v1/goods-receipts
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := goodsreceipt.Filter{
		PORef:    q.Get("po_ref"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Search:   q.Get("search"),
	}
	if v := q.Get("status"); v != "" {
		f.Status = goodsreceipt.ParseStatus(v)
	}
	if v := q.Get("inspection"); v != "" {
		f.Inspection = goodsreceipt.ParseInspection(v)
	}

	page := pageFromQuery(q)
	items := h.svc.Receipts.List(r.Context(), f, page)
	writeJSON(w, http.StatusOK, ListResponse[goodsreceipt.Summary]{Items: items, Pagination: *page})
}

// GET /api/v1/goods-receipts/{id}
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	gr, err := h.svc.Receipts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gr)
}

// POST /api/v1/goods-receipts
func (h *Handler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var body CreateReceiptRequest
	if !decode(w, r, &body) {
		return
	}

	gr, err := h.svc.Receipts.Create(r.Context(), goodsreceipt.CreateReceipt{
		PORef:              body.PORef,
		PONumber:           body.PONumber,
		SupplierName:       body.SupplierName,
		DeliveryNoteNumber: body.DeliveryNoteNumber,
		ReceivedBy:         body.ReceivedBy,
		Notes:              body.Notes,
		Items:              body.Items,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveReceipts(r.Context())
	writeJSON(w, http.StatusCreated, gr)
}

// DELETE /api/v1/goods-receipts/{id}
func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Receipts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveReceipts(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) receiptAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (goodsreceipt.GoodsReceipt, error)) {
	gr, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveReceipts(r.Context())
	writeJSON(w, http.StatusOK, gr)
}

// POST /api/v1/goods-receipts/{id}/submit
func (h *Handler) SubmitReceipt(w http.ResponseWriter, r *http.Request) {
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.Submit(r.Context(), id)
	})
}

// POST /api/v1/goods-receipts/{id}/complete
func (h *Handler) CompleteReceipt(w http.ResponseWriter, r *http.Request) {
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.Complete(r.Context(), id)
	})
}

// POST /api/v1/goods-receipts/{id}/reject
func (h *Handler) RejectReceipt(w http.ResponseWriter, r *http.Request) {
	var body ReasonRequest
	if !decode(w, r, &body) {
		return
	}
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.Reject(r.Context(), id, body.Reason)
	})
}

// POST /api/v1/goods-receipts/{id}/cancel
func (h *Handler) CancelReceipt(w http.ResponseWriter, r *http.Request) {
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.Cancel(r.Context(), id)
	})
}

// POST /api/v1/goods-receipts/{id}/items/{itemID}/receipt
func (h *Handler) RecordItemReceipt(w http.ResponseWriter, r *http.Request) {
	var body ItemReceiptRequest
	if !decode(w, r, &body) {
		return
	}
	itemID := chi.URLParam(r, "itemID")
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.RecordItemReceipt(r.Context(), id, itemID, goodsreceipt.ItemReceipt{
			Quantity:        body.Quantity,
			BatchNumber:     body.BatchNumber,
			SerialNumbers:   body.SerialNumbers,
			ExpiryDate:      body.ExpiryDate,
			StorageLocation: body.StorageLocation,
		})
	})
}

// POST /api/v1/goods-receipts/{id}/items/{itemID}/inspection
func (h *Handler) RecordItemInspection(w http.ResponseWriter, r *http.Request) {
	var body InspectionRequest
	if !decode(w, r, &body) {
		return
	}
	itemID := chi.URLParam(r, "itemID")
	h.receiptAction(w, r, func(id string) (goodsreceipt.GoodsReceipt, error) {
		return h.svc.Receipts.RecordInspection(r.Context(), id, itemID, goodsreceipt.InspectionResult{
			Status:           goodsreceipt.ParseInspection(body.Status),
			AcceptedQuantity: body.Accepted,
			RejectedQuantity: body.Rejected,
			Notes:            body.Notes,
			InspectedBy:      body.InspectedBy,
		})
	})
}

// GET /api/v1/goods-receipts/stats
func (h *Handler) ReceiptStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Receipts.Stats(r.Context()))
}
