package purchaseorder

import (
	"context"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// KPI AGGREGATION
// =============================================================================

// Stats is the dashboard aggregate over the whole collection. Monetary sums
// exclude cancelled orders; rates are 0 when their denominator is empty.
type Stats struct {
	TotalOrders        int            `json:"total_orders"`
	ByStatus           map[Status]int `json:"by_status"`
	TotalValue         float64        `json:"total_value"`
	Currency           string         `json:"currency"`
	AverageOrderValue  float64        `json:"average_order_value"`
	PendingApproval    int            `json:"pending_approval"`
	AwaitingDelivery   int            `json:"awaiting_delivery"`
	OnTimeDeliveryRate float64        `json:"on_time_delivery_rate"`
}

func (s *Service) Stats(_ context.Context) Stats {
	orders := s.orders.List()

	active := lifecycle.Filter(orders, func(po PurchaseOrder) bool {
		return po.Status != StatusCancelled
	})

	total := lifecycle.SumMoney(active, func(po PurchaseOrder) lifecycle.Money {
		return lifecycle.NewMoney(po.TotalAmount, po.Currency)
	})

	awaiting := lifecycle.CountWhere(orders, func(po PurchaseOrder) bool {
		switch po.Status {
		case StatusSent, StatusAcknowledged, StatusPartiallyDelivered:
			return true
		}
		return false
	})

	delivered := lifecycle.Filter(orders, func(po PurchaseOrder) bool {
		switch po.Status {
		case StatusDelivered, StatusInvoiced, StatusClosed:
			return po.ActualDeliveryDate != ""
		}
		return false
	})
	onTime := lifecycle.CountWhere(delivered, func(po PurchaseOrder) bool {
		return po.ExpectedDeliveryDate == "" || po.ActualDeliveryDate <= po.ExpectedDeliveryDate
	})

	return Stats{
		TotalOrders:        len(orders),
		ByStatus:           lifecycle.CountBy(orders, func(po PurchaseOrder) Status { return po.Status }),
		TotalValue:         total.Float64(),
		Currency:           lifecycle.DefaultCurrency,
		AverageOrderValue:  lifecycle.Ratio(total.Float64(), float64(len(active))),
		PendingApproval:    lifecycle.CountWhere(orders, func(po PurchaseOrder) bool { return po.Status == StatusPendingApproval }),
		AwaitingDelivery:   awaiting,
		OnTimeDeliveryRate: lifecycle.Percent(float64(onTime), float64(len(delivered))),
	}
}
