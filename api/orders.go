package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/govstack/procure-engine/purchaseorder"
)

// =============================================================================
// PURCHASE ORDER ENDPOINTS
// =============================================================================

// ListOrders returns a filtered page of purchase order summaries.
// GET /api/v1/purchase-orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := purchaseorder.Filter{
		SupplierID:      q.Get("supplier_id"),
		ContractRef:     q.Get("contract_ref"),
		DateFrom:        q.Get("date_from"),
		DateTo:          q.Get("date_to"),
		Search:          q.Get("search"),
		PendingDelivery: q.Get("pending_delivery") == "true",
	}
	if v := q.Get("status"); v != "" {
		f.Status = purchaseorder.ParseStatus(v)
	}

	page := pageFromQuery(q)
	items := h.svc.Orders.List(r.Context(), f, page)
	writeJSON(w, http.StatusOK, ListResponse[purchaseorder.Summary]{Items: items, Pagination: *page})
}

// GET /api/v1/purchase-orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	po, err := h.svc.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, po)
}

// POST /api/v1/purchase-orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var body CreateOrderRequest
	if !decode(w, r, &body) {
		return
	}

	po, err := h.svc.Orders.Create(r.Context(), purchaseorder.CreateOrder{
		ContractRef:          body.ContractRef,
		RequisitionRef:       body.RequisitionRef,
		TenderRef:            body.TenderRef,
		Supplier:             body.Supplier,
		LineItems:            body.LineItems,
		DeliveryAddress:      body.DeliveryAddress,
		PaymentTerms:         body.PaymentTerms,
		ExpectedDeliveryDate: body.ExpectedDeliveryDate,
		Notes:                body.Notes,
		CreatedBy:            body.CreatedBy,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveOrders(r.Context())
	writeJSON(w, http.StatusCreated, po)
}

// PUT /api/v1/purchase-orders/{id}
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var body UpdateOrderRequest
	if !decode(w, r, &body) {
		return
	}

	po, err := h.svc.Orders.Update(r.Context(), chi.URLParam(r, "id"), purchaseorder.UpdateOrder{
		Supplier:             body.Supplier,
		LineItems:            body.LineItems,
		DeliveryAddress:      body.DeliveryAddress,
		PaymentTerms:         body.PaymentTerms,
		ExpectedDeliveryDate: body.ExpectedDeliveryDate,
		Notes:                body.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveOrders(r.Context())
	writeJSON(w, http.StatusOK, po)
}

// DELETE /api/v1/purchase-orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Orders.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveOrders(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/purchase-orders/{id}/duplicate
func (h *Handler) DuplicateOrder(w http.ResponseWriter, r *http.Request) {
	po, err := h.svc.Orders.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveOrders(r.Context())
	writeJSON(w, http.StatusCreated, po)
}

func (h *Handler) orderAction(w http.ResponseWriter, r *http.Request,
	act func(id string) (purchaseorder.PurchaseOrder, error)) {
	po, err := act(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.saveOrders(r.Context())
	writeJSON(w, http.StatusOK, po)
}

// POST /api/v1/purchase-orders/{id}/submit
func (h *Handler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.SubmitForApproval(r.Context(), id)
	})
}

// POST /api/v1/purchase-orders/{id}/approve
func (h *Handler) ApproveOrder(w http.ResponseWriter, r *http.Request) {
	var body ApproveRequest
	if !decode(w, r, &body) {
		return
	}
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Approve(r.Context(), id, body.Approver)
	})
}

// POST /api/v1/purchase-orders/{id}/reject
func (h *Handler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	var body ReasonRequest
	if !decode(w, r, &body) {
		return
	}
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Reject(r.Context(), id, body.Reason)
	})
}

// POST /api/v1/purchase-orders/{id}/send
func (h *Handler) SendOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Send(r.Context(), id)
	})
}

// POST /api/v1/purchase-orders/{id}/acknowledge
func (h *Handler) AcknowledgeOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Acknowledge(r.Context(), id)
	})
}

// POST /api/v1/purchase-orders/{id}/invoice
func (h *Handler) InvoiceOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Invoice(r.Context(), id)
	})
}

// POST /api/v1/purchase-orders/{id}/close
func (h *Handler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Close(r.Context(), id)
	})
}

// POST /api/v1/purchase-orders/{id}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var body ReasonRequest
	if !decode(w, r, &body) {
		return
	}
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.Cancel(r.Context(), id, body.Reason)
	})
}

// PUT /api/v1/purchase-orders/{id}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var body UpdateStatusRequest
	if !decode(w, r, &body) {
		return
	}
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.UpdateStatus(r.Context(), id, purchaseorder.ParseStatus(body.Status))
	})
}

// POST /api/v1/purchase-orders/{id}/deliveries
func (h *Handler) RecordOrderDelivery(w http.ResponseWriter, r *http.Request) {
	var body RecordDeliveryRequest
	if !decode(w, r, &body) {
		return
	}
	h.orderAction(w, r, func(id string) (purchaseorder.PurchaseOrder, error) {
		return h.svc.Orders.RecordItemDelivery(r.Context(), id, body.LineItemID, body.Quantity)
	})
}

// GET /api/v1/purchase-orders/stats
func (h *Handler) OrderStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Orders.Stats(r.Context()))
}
