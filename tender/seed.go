package tender

// =============================================================================
// SEED DATA - Demo fixtures loaded at startup when seeding is enabled
// =============================================================================

// SeedSequence is the next tender number after the fixtures below.
const SeedSequence = 33

// Seed returns the demo tenders.
func Seed() []Tender {
	return []Tender{
		{
			ID:             "tdr-001",
			TenderNumber:   "TDR-2025-0030",
			Title:          "Supply and delivery of network infrastructure equipment",
			Description:    "Core switching and fibre uplinks for the head office refresh",
			Category:       "ICT Infrastructure",
			Department:     "Information Technology",
			Method:         MethodOpen,
			RequisitionRef: "req-001",
			EstimatedValue: 4_800_000,
			Currency:       "ZAR",
			PointSystem:    "80/20",
			Briefing:       Briefing{Required: true, Compulsory: true, Date: "2025-01-22", Venue: "Auditorium, 240 Madiba Street"},
			Documents:      []string{"TDR-2025-0030-spec.pdf", "TDR-2025-0030-sbd-forms.pdf"},
			PublicationDate: "2025-01-15",
			PortalRef:       "eTender-889123",
			OpeningDate:     "2025-01-15",
			ClosingDate:     "2025-02-14",
			Bids: []Bid{
				{ID: "bid-001", SupplierName: "Mzansi IT Distributors", BidAmount: 4_350_000, BBBEELevel: 3, SubmittedAt: "2025-02-10T09:12:00Z", Responsive: true, Score: 92.4},
				{ID: "bid-002", SupplierName: "TechSolutions SA (Pty) Ltd", BidAmount: 4_690_000, BBBEELevel: 1, SubmittedAt: "2025-02-13T15:40:00Z", Responsive: true, Score: 90.1},
				{ID: "bid-003", SupplierName: "Budget Networks CC", BidAmount: 3_100_000, BBBEELevel: 4, SubmittedAt: "2025-02-14T11:55:00Z", Responsive: false, Notes: "No tax clearance certificate"},
			},
			Status:      StatusAwarded,
			AwardedTo:   "Mzansi IT Distributors",
			AwardAmount: 4_350_000,
			AwardedAt:   "2025-03-10T10:00:00Z",
			CreatedBy:   "s.naidoo",
			CreatedAt:   "2025-01-06T10:00:00Z",
			UpdatedAt:   "2025-03-10T10:00:00Z",
		},
		{
			ID:              "tdr-002",
			TenderNumber:    "TDR-2025-0031",
			Title:           "Security services for regional offices",
			Category:        "Facilities",
			Department:      "Corporate Services",
			Method:          MethodOpen,
			EstimatedValue:  62_000_000,
			Currency:        "ZAR",
			PointSystem:     "90/10",
			Briefing:        Briefing{Required: true, Compulsory: true, Date: "2025-03-25", Venue: "Regional Office, Durban"},
			PublicationDate: "2025-03-12",
			PortalRef:       "eTender-901476",
			OpeningDate:     "2025-03-12",
			ClosingDate:     "2025-04-30",
			Bids: []Bid{
				{ID: "bid-004", SupplierName: "Shield Security Group", BidAmount: 58_500_000, BBBEELevel: 2, SubmittedAt: "2025-03-18T08:30:00Z", Responsive: true},
			},
			Status:    StatusOpen,
			CreatedBy: "p.botha",
			CreatedAt: "2025-02-20T09:00:00Z",
			UpdatedAt: "2025-03-18T08:30:00Z",
		},
		{
			ID:             "tdr-003",
			TenderNumber:   "TDR-2025-0032",
			Title:          "Panel of quantity surveyors",
			Category:       "Professional Services",
			Department:     "Infrastructure",
			Method:         MethodRestricted,
			EstimatedValue: 12_500_000,
			Currency:       "ZAR",
			PointSystem:    "80/20",
			Briefing:       Briefing{Required: false},
			ClosingDate:    "2025-06-13",
			Status:         StatusPendingApproval,
			CreatedBy:      "t.mabaso",
			CreatedAt:      "2025-03-15T14:20:00Z",
			UpdatedAt:      "2025-03-16T08:05:00Z",
		},
	}
}
