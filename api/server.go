/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. requestLogger: zap request log + Prometheus collectors
  4. CORS:       Cross-origin requests for the admin frontend

ROUTE GROUPS:
  /api/v1/requisitions/*     Requisition lifecycle
  /api/v1/tenders/*          Tender lifecycle and bids
  /api/v1/purchase-orders/*  Purchase order lifecycle and deliveries
  /api/v1/goods-receipts/*   Goods receipt, receiving and inspection
  /api/v1/grc/*              Findings, compliance, risks, violations
  /api/v1/admin/*            Database reset (dev only)
  /metrics                   Prometheus scrape endpoint
  /healthz                   Liveness probe

SECURITY NOTE:
  No authentication middleware. All endpoints are public; deploy behind
  a gateway that terminates auth.

SEE ALSO:
  - handlers.go: Handler context and shared plumbing
  - middleware.go: Logging and metrics middleware
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, log *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/requisitions", func(r chi.Router) {
			r.Get("/", h.ListRequisitions)
			r.Post("/", h.CreateRequisition)
			r.Get("/stats", h.RequisitionStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetRequisition)
				r.Put("/", h.UpdateRequisition)
				r.Delete("/", h.DeleteRequisition)
				r.Post("/submit", h.SubmitRequisition)
				r.Post("/move-to-approval", h.MoveRequisitionToApproval)
				r.Post("/approve", h.ApproveRequisition)
				r.Post("/reject", h.RejectRequisition)
				r.Post("/rework", h.ReworkRequisition)
				r.Post("/start-fulfilment", h.StartRequisitionFulfilment)
				r.Post("/complete", h.CompleteRequisition)
				r.Post("/cancel", h.CancelRequisition)
			})
		})

		r.Route("/tenders", func(r chi.Router) {
			r.Get("/", h.ListTenders)
			r.Post("/", h.CreateTender)
			r.Get("/stats", h.TenderStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetTender)
				r.Put("/", h.UpdateTender)
				r.Delete("/", h.DeleteTender)
				r.Post("/submit", h.SubmitTender)
				r.Post("/approve", h.ApproveTender)
				r.Post("/reject", h.RejectTender)
				r.Post("/publish", h.PublishTender)
				r.Post("/open", h.OpenTenderForBids)
				r.Post("/close-bidding", h.CloseTenderBidding)
				r.Post("/start-evaluation", h.StartTenderEvaluation)
				r.Post("/move-to-adjudication", h.MoveTenderToAdjudication)
				r.Post("/award", h.AwardTender)
				r.Post("/cancel", h.CancelTender)
				r.Post("/bids", h.SubmitTenderBid)
				r.Post("/bids/{bidID}/screen", h.ScreenTenderBid)
			})
		})

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Post("/", h.CreateOrder)
			r.Get("/stats", h.OrderStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetOrder)
				r.Put("/", h.UpdateOrder)
				r.Delete("/", h.DeleteOrder)
				r.Put("/status", h.UpdateOrderStatus)
				r.Post("/duplicate", h.DuplicateOrder)
				r.Post("/submit", h.SubmitOrder)
				r.Post("/approve", h.ApproveOrder)
				r.Post("/reject", h.RejectOrder)
				r.Post("/send", h.SendOrder)
				r.Post("/acknowledge", h.AcknowledgeOrder)
				r.Post("/invoice", h.InvoiceOrder)
				r.Post("/close", h.CloseOrder)
				r.Post("/cancel", h.CancelOrder)
				r.Post("/deliveries", h.RecordOrderDelivery)
			})
		})

		r.Route("/goods-receipts", func(r chi.Router) {
			r.Get("/", h.ListReceipts)
			r.Post("/", h.CreateReceipt)
			r.Get("/stats", h.ReceiptStats)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetReceipt)
				r.Delete("/", h.DeleteReceipt)
				r.Post("/submit", h.SubmitReceipt)
				r.Post("/complete", h.CompleteReceipt)
				r.Post("/reject", h.RejectReceipt)
				r.Post("/cancel", h.CancelReceipt)
				r.Post("/items/{itemID}/receipt", h.RecordItemReceipt)
				r.Post("/items/{itemID}/inspection", h.RecordItemInspection)
			})
		})

		r.Route("/grc", func(r chi.Router) {
			r.Get("/kpis", h.GRCKpis)
			r.Route("/findings", func(r chi.Router) {
				r.Get("/", h.ListFindings)
				r.Post("/", h.CreateFinding)
				r.Post("/sweep-overdue", h.SweepOverdueFindings)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetFinding)
					r.Post("/start", h.StartFindingRemediation)
					r.Post("/resolve", h.ResolveFinding)
					r.Post("/close", h.CloseFinding)
					r.Post("/recur", h.MarkFindingRecurring)
					r.Post("/actions", h.AddFindingAction)
					r.Post("/actions/{actionID}/complete", h.CompleteFindingAction)
				})
			})
			r.Route("/compliance", func(r chi.Router) {
				r.Get("/", h.ListCompliance)
				r.Post("/{id}/review", h.RecordComplianceReview)
			})
			r.Route("/risks", func(r chi.Router) {
				r.Get("/", h.ListRisks)
				r.Post("/", h.CreateRisk)
				r.Post("/{id}/reassess", h.ReassessRisk)
			})
			r.Route("/violations", func(r chi.Router) {
				r.Get("/", h.ListViolations)
				r.Post("/", h.ReportViolation)
				r.Route("/{id}", func(r chi.Router) {
					r.Post("/investigate", h.StartViolationInvestigation)
					r.Post("/conclude", h.ConcludeViolationInvestigation)
					r.Post("/close", h.CloseViolation)
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
