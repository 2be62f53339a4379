package requisition

import (
	"context"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// KPI AGGREGATION
// =============================================================================

// Stats is the demand-side dashboard aggregate. ApprovalRate is approved
// over decided (approved + rejected); requisitions still in flight do not
// count against it.
type Stats struct {
	TotalRequisitions int              `json:"total_requisitions"`
	ByStatus          map[Status]int   `json:"by_status"`
	ByDepartment      map[string]int   `json:"by_department"`
	ByPriority        map[Priority]int `json:"by_priority"`
	TotalEstimated    float64          `json:"total_estimated"`
	Currency          string           `json:"currency"`
	AwaitingApproval  int              `json:"awaiting_approval"`
	ApprovalRate      float64          `json:"approval_rate"`
	UrgentOpen        int              `json:"urgent_open"`
}

func (s *Service) Stats(_ context.Context) Stats {
	reqs := s.requisitions.List()

	active := lifecycle.Filter(reqs, func(r Requisition) bool {
		return r.Status != StatusCancelled && r.Status != StatusRejected
	})
	total := lifecycle.SumMoney(active, func(r Requisition) lifecycle.Money {
		return lifecycle.NewMoney(r.EstimatedTotal, r.Currency)
	})

	approved := lifecycle.CountWhere(reqs, func(r Requisition) bool {
		switch r.Status {
		case StatusApproved, StatusInProgress, StatusComplete:
			return true
		}
		return false
	})
	rejected := lifecycle.CountWhere(reqs, func(r Requisition) bool { return r.Status == StatusRejected })

	return Stats{
		TotalRequisitions: len(reqs),
		ByStatus:          lifecycle.CountBy(reqs, func(r Requisition) Status { return r.Status }),
		ByDepartment:      lifecycle.CountBy(reqs, func(r Requisition) string { return r.Department }),
		ByPriority:        lifecycle.CountBy(reqs, func(r Requisition) Priority { return r.Priority }),
		TotalEstimated:    total.Float64(),
		Currency:          lifecycle.DefaultCurrency,
		AwaitingApproval: lifecycle.CountWhere(reqs, func(r Requisition) bool {
			return r.Status == StatusSubmitted || r.Status == StatusPendingApproval
		}),
		ApprovalRate: lifecycle.Percent(float64(approved), float64(approved+rejected)),
		UrgentOpen: lifecycle.CountWhere(reqs, func(r Requisition) bool {
			return r.Priority == PriorityUrgent && !Transitions.IsTerminal(r.Status)
		}),
	}
}
