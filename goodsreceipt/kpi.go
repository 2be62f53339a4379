package goodsreceipt

import (
	"context"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// KPI AGGREGATION
// =============================================================================

// Stats is the receiving dashboard aggregate. AcceptanceRate is over
// inspected quantities, not receipts, so a large rejected batch weighs more
// than a small one.
type Stats struct {
	TotalReceipts          int                      `json:"total_receipts"`
	ByStatus               map[Status]int           `json:"by_status"`
	ByInspection           map[InspectionStatus]int `json:"by_inspection"`
	PendingInspectionItems int                      `json:"pending_inspection_items"`
	AcceptanceRate         float64                  `json:"acceptance_rate"`
	AverageCompletion      float64                  `json:"average_completion"`
}

func (s *Service) Stats(_ context.Context) Stats {
	receipts := s.receipts.List()

	pendingItems := 0
	accepted := 0
	rejected := 0
	for i := range receipts {
		pendingItems += receipts[i].PendingInspections()
		for j := range receipts[i].ReceivedItems {
			accepted += receipts[i].ReceivedItems[j].AcceptedQuantity
			rejected += receipts[i].ReceivedItems[j].RejectedQuantity
		}
	}

	completion := lifecycle.SumBy(receipts, func(gr GoodsReceipt) float64 {
		return gr.CompletionPercentage()
	})

	return Stats{
		TotalReceipts:          len(receipts),
		ByStatus:               lifecycle.CountBy(receipts, func(gr GoodsReceipt) Status { return gr.Status }),
		ByInspection:           lifecycle.CountBy(receipts, func(gr GoodsReceipt) InspectionStatus { return gr.InspectionStatus }),
		PendingInspectionItems: pendingItems,
		AcceptanceRate:         lifecycle.Percent(float64(accepted), float64(accepted+rejected)),
		AverageCompletion:      lifecycle.Ratio(completion, float64(len(receipts))),
	}
}
