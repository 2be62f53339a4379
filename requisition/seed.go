package requisition

// =============================================================================
// SEED DATA - Demo fixtures loaded at startup when seeding is enabled
// =============================================================================

// SeedSequence is the next requisition number after the fixtures below.
const SeedSequence = 1088

// Seed returns the demo requisitions. Estimated totals are computed so the
// fixtures stay consistent with the calculation rules.
func Seed() []Requisition {
	reqs := []Requisition{
		{
			ID:                "req-001",
			RequisitionNumber: "REQ-2025-1084",
			Title:             "Laptop refresh for finance directorate",
			Description:       "Replacement of end-of-life laptops for 25 finance staff",
			Department:        "Finance",
			BudgetCode:        "FIN-CAPEX-2025-03",
			Priority:          PriorityHigh,
			Items: []Item{
				{ID: "rqi-001", Description: "Business laptop, 16GB RAM", Quantity: 25, Unit: "each", EstimatedUnitPrice: 19000},
				{ID: "rqi-002", Description: "Docking station", Quantity: 25, Unit: "each", EstimatedUnitPrice: 3500},
			},
			Currency:      "ZAR",
			DateRequired:  "2025-02-28",
			Justification: "Current fleet out of warranty, failure rate rising",
			Status:        StatusComplete,
			RequestedBy:   "s.naidoo",
			ApprovedBy:    "m.van.wyk",
			ApprovedAt:    "2025-01-10T09:00:00Z",
			PORef:         "po-001",
			CreatedAt:     "2025-01-06T08:30:00Z",
			UpdatedAt:     "2025-02-26T10:00:00Z",
		},
		{
			ID:                "req-002",
			RequisitionNumber: "REQ-2025-1085",
			Title:             "Office consumables Q2 replenishment",
			Department:        "Corporate Services",
			BudgetCode:        "CS-OPEX-2025-07",
			Priority:          PriorityMedium,
			Items: []Item{
				{ID: "rqi-003", Description: "A4 copy paper (box)", Quantity: 200, Unit: "box", EstimatedUnitPrice: 300},
				{ID: "rqi-004", Description: "Toner cartridges, assorted", Quantity: 40, Unit: "each", EstimatedUnitPrice: 2200},
			},
			Currency:     "ZAR",
			DateRequired: "2025-03-31",
			Status:       StatusInProgress,
			RequestedBy:  "p.botha",
			ApprovedBy:   "m.van.wyk",
			ApprovedAt:   "2025-02-05T14:20:00Z",
			PORef:        "po-002",
			CreatedAt:    "2025-02-03T11:15:00Z",
			UpdatedAt:    "2025-02-12T08:00:00Z",
		},
		{
			ID:                "req-003",
			RequisitionNumber: "REQ-2025-1086",
			Title:             "Emergency generator maintenance",
			Department:        "Facilities",
			BudgetCode:        "FAC-OPEX-2025-11",
			Priority:          PriorityUrgent,
			Items: []Item{
				{ID: "rqi-005", Description: "Generator service and load test", Quantity: 2, Unit: "service", EstimatedUnitPrice: 28000},
			},
			Currency:      "ZAR",
			DateRequired:  "2025-04-05",
			Justification: "Backup generator failed the March load test",
			Status:        StatusPendingApproval,
			RequestedBy:   "t.mabaso",
			CreatedAt:     "2025-03-14T07:45:00Z",
			UpdatedAt:     "2025-03-14T09:30:00Z",
		},
		{
			ID:                "req-004",
			RequisitionNumber: "REQ-2025-1087",
			Title:             "Conference venue hire, strategy workshop",
			Department:        "Office of the CEO",
			BudgetCode:        "CEO-OPEX-2025-02",
			Priority:          PriorityLow,
			Items: []Item{
				{ID: "rqi-006", Description: "Venue hire, 2 days, 40 delegates", Quantity: 1, Unit: "booking", EstimatedUnitPrice: 65000},
			},
			Currency:        "ZAR",
			DateRequired:    "2025-06-15",
			Status:          StatusRejected,
			RequestedBy:     "l.pillay",
			RejectionReason: "Use internal facilities per cost containment circular",
			CreatedAt:       "2025-03-02T13:00:00Z",
			UpdatedAt:       "2025-03-05T16:40:00Z",
		},
	}
	for i := range reqs {
		reqs[i].CalculateTotals()
	}
	return reqs
}
