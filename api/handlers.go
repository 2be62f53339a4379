/*
handlers.go - HTTP handler context and shared plumbing

PURPOSE:
  Exposes the procurement services via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ARCHITECTURE:
  Handler holds the five domain services plus an optional SQLite store.
  When a store is present, every successful mutation flushes the touched
  register so a restart reloads the exact state. Flush failures are
  logged, never surfaced to the client: the in-memory collection is the
  source of truth for the running process.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entity not found
  - 409: Illegal status transition, failed precondition
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/govstack/procure-engine/goodsreceipt"
	"github.com/govstack/procure-engine/grc"
	"github.com/govstack/procure-engine/lifecycle"
	"github.com/govstack/procure-engine/purchaseorder"
	"github.com/govstack/procure-engine/requisition"
	"github.com/govstack/procure-engine/store/sqlite"
	"github.com/govstack/procure-engine/tender"
)

// Services bundles the five domain services the API exposes.
type Services struct {
	Requisitions *requisition.Service
	Tenders      *tender.Service
	Orders       *purchaseorder.Service
	Receipts     *goodsreceipt.Service
	GRC          *grc.Service
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	svc   Services
	store *sqlite.Store // nil when running purely in memory
	log   *zap.Logger
}

// NewHandler creates a handler over the given services. store may be nil.
func NewHandler(svc Services, store *sqlite.Store, log *zap.Logger) *Handler {
	return &Handler{svc: svc, store: store, log: log.Named("api")}
}

// =============================================================================
// PERSISTENCE FLUSHES
// =============================================================================

func (h *Handler) flush(register string, write func() error) {
	if h.store == nil {
		return
	}
	if err := write(); err != nil {
		h.log.Warn("failed to persist register", zap.String("register", register), zap.Error(err))
	}
}

func (h *Handler) saveRequisitions(ctx context.Context) {
	h.flush(sqlite.RegisterRequisitions, func() error {
		c := h.svc.Requisitions.Collection()
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterRequisitions, c.List()); err != nil {
			return err
		}
		return h.store.SaveSequence(ctx, sqlite.RegisterRequisitions, c.Seq())
	})
}

func (h *Handler) saveTenders(ctx context.Context) {
	h.flush(sqlite.RegisterTenders, func() error {
		c := h.svc.Tenders.Collection()
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterTenders, c.List()); err != nil {
			return err
		}
		return h.store.SaveSequence(ctx, sqlite.RegisterTenders, c.Seq())
	})
}

func (h *Handler) saveOrders(ctx context.Context) {
	h.flush(sqlite.RegisterPurchaseOrders, func() error {
		c := h.svc.Orders.Collection()
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterPurchaseOrders, c.List()); err != nil {
			return err
		}
		return h.store.SaveSequence(ctx, sqlite.RegisterPurchaseOrders, c.Seq())
	})
}

func (h *Handler) saveReceipts(ctx context.Context) {
	h.flush(sqlite.RegisterGoodsReceipts, func() error {
		c := h.svc.Receipts.Collection()
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterGoodsReceipts, c.List()); err != nil {
			return err
		}
		return h.store.SaveSequence(ctx, sqlite.RegisterGoodsReceipts, c.Seq())
	})
}

func (h *Handler) saveGRC(ctx context.Context) {
	h.flush(sqlite.RegisterFindings, func() error {
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterFindings, h.svc.GRC.Findings().List()); err != nil {
			return err
		}
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterCompliance, h.svc.GRC.Compliance().List()); err != nil {
			return err
		}
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterRisks, h.svc.GRC.Risks().List()); err != nil {
			return err
		}
		if err := sqlite.Replace(ctx, h.store, sqlite.RegisterViolations, h.svc.GRC.Violations().List()); err != nil {
			return err
		}
		return h.store.SaveSequence(ctx, sqlite.RegisterFindings, h.svc.GRC.Findings().Seq())
	})
}

// =============================================================================
// HEALTH AND ADMIN
// =============================================================================

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetDatabase clears the persisted registers (dev only). The in-memory
// collections keep running; the next mutation re-persists them.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusConflict, "No database configured", nil)
		return
	}
	if err := h.store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SHARED PLUMBING
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case lifecycle.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, lifecycle.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	case lifecycle.IsClientError(err):
		writeError(w, http.StatusConflict, "Operation not allowed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// pageFromQuery builds pagination state from ?page= and ?page_size=.
func pageFromQuery(q url.Values) *lifecycle.Pagination {
	p := lifecycle.NewPagination(atoiDefault(q.Get("page_size"), 0))
	p.SetPage(atoiDefault(q.Get("page"), 1))
	return &p
}

func atoiDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
