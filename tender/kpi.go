package tender

import (
	"context"

	"github.com/govstack/procure-engine/lifecycle"
)

// =============================================================================
// KPI AGGREGATION
// =============================================================================

// Stats is the sourcing dashboard aggregate. AverageBids is over tenders
// that reached the bidding window (Open onwards); drafts and cancellations
// never dilute it.
type Stats struct {
	TotalTenders      int            `json:"total_tenders"`
	ByStatus          map[Status]int `json:"by_status"`
	ByCategory        map[string]int `json:"by_category"`
	OpenForBids       int            `json:"open_for_bids"`
	InEvaluation      int            `json:"in_evaluation"`
	Awarded           int            `json:"awarded"`
	TotalAwarded      float64        `json:"total_awarded"`
	Currency          string         `json:"currency"`
	AverageBids       float64        `json:"average_bids"`
	AwardedVsEstimate float64        `json:"awarded_vs_estimate"`
}

func (s *Service) Stats(_ context.Context) Stats {
	tenders := s.tenders.List()

	awarded := lifecycle.Filter(tenders, func(t Tender) bool { return t.Status == StatusAwarded })
	awardTotal := lifecycle.SumMoney(awarded, func(t Tender) lifecycle.Money {
		return lifecycle.NewMoney(t.AwardAmount, t.Currency)
	})
	estimateTotal := lifecycle.SumBy(awarded, func(t Tender) float64 { return t.EstimatedValue })

	bidding := lifecycle.Filter(tenders, func(t Tender) bool {
		switch t.Status {
		case StatusOpen, StatusClosed, StatusEvaluation, StatusAdjudication, StatusAwarded:
			return true
		}
		return false
	})
	bidCount := lifecycle.SumBy(bidding, func(t Tender) float64 { return float64(len(t.Bids)) })

	return Stats{
		TotalTenders: len(tenders),
		ByStatus:     lifecycle.CountBy(tenders, func(t Tender) Status { return t.Status }),
		ByCategory:   lifecycle.CountBy(tenders, func(t Tender) string { return t.Category }),
		OpenForBids:  lifecycle.CountWhere(tenders, func(t Tender) bool { return t.Status == StatusOpen }),
		InEvaluation: lifecycle.CountWhere(tenders, func(t Tender) bool {
			return t.Status == StatusEvaluation || t.Status == StatusAdjudication
		}),
		Awarded:           len(awarded),
		TotalAwarded:      awardTotal.Float64(),
		Currency:          lifecycle.DefaultCurrency,
		AverageBids:       lifecycle.Ratio(bidCount, float64(len(bidding))),
		AwardedVsEstimate: lifecycle.Percent(awardTotal.Float64(), estimateTotal),
	}
}
