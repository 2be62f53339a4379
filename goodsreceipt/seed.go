package goodsreceipt

// =============================================================================
// SEED DATA - Demo fixtures loaded at startup when seeding is enabled
// =============================================================================

// SeedSequence is the next GRN number after the fixtures below.
const SeedSequence = 213

// Seed returns the demo goods receipts.
func Seed() []GoodsReceipt {
	return []GoodsReceipt{
		{
			ID:                 "gr-001",
			GRNNumber:          "GRN-2025-0211",
			PORef:              "po-001",
			PONumber:           "PO-2025-0455",
			SupplierName:       "TechSolutions SA (Pty) Ltd",
			DeliveryNoteNumber: "DN-88341",
			ReceivedItems: []ReceivedItem{
				{
					ID: "ri-001", POLineItemRef: "li-001", ItemCode: "LAPTOP-D5520",
					Description: "Dell Latitude 5520 laptop", Unit: "each",
					OrderedQuantity: 25, ReceivedQuantity: 25, AcceptedQuantity: 25,
					BatchNumber: "B-2025-014", StorageLocation: "IT Store A1",
					InspectionStatus: InspectionPassed,
					InspectedBy:      "j.khumalo", InspectedAt: "2025-02-25T13:30:00Z",
				},
				{
					ID: "ri-002", POLineItemRef: "li-002", ItemCode: "DOCK-WD19",
					Description: "Dell WD19 docking station", Unit: "each",
					OrderedQuantity: 25, ReceivedQuantity: 25, AcceptedQuantity: 25,
					BatchNumber: "B-2025-014", StorageLocation: "IT Store A1",
					InspectionStatus: InspectionPassed,
					InspectedBy:      "j.khumalo", InspectedAt: "2025-02-25T13:45:00Z",
				},
			},
			Status:           StatusCompleted,
			InspectionStatus: InspectionPassed,
			ReceiptDate:      "2025-02-25",
			ReceivedBy:       "j.khumalo",
			CreatedAt:        "2025-02-25T11:00:00Z",
			UpdatedAt:        "2025-02-25T14:00:00Z",
			CompletedAt:      "2025-02-25T14:00:00Z",
		},
		{
			ID:                 "gr-002",
			GRNNumber:          "GRN-2025-0212",
			PORef:              "po-002",
			PONumber:           "PO-2025-0456",
			SupplierName:       "Khanya Office Supplies CC",
			DeliveryNoteNumber: "DN-90177",
			ReceivedItems: []ReceivedItem{
				{
					ID: "ri-003", POLineItemRef: "li-003", ItemCode: "PAPER-A4-80",
					Description: "A4 copy paper 80gsm (box of 5 reams)", Unit: "box",
					OrderedQuantity: 200, ReceivedQuantity: 120,
					StorageLocation:  "Stationery Store B2",
					InspectionStatus: InspectionPassed,
					AcceptedQuantity: 118, RejectedQuantity: 2,
					InspectionNotes: "2 boxes water damaged in transit",
					InspectedBy:     "j.khumalo", InspectedAt: "2025-03-08T09:00:00Z",
				},
				{
					ID: "ri-004", POLineItemRef: "li-004", ItemCode: "TONER-HP26A",
					Description: "HP 26A black toner cartridge", Unit: "each",
					OrderedQuantity: 40, ReceivedQuantity: 0,
					InspectionStatus: InspectionPending,
				},
			},
			Status:           StatusPartiallyReceived,
			InspectionStatus: InspectionPending,
			ReceiptDate:      "2025-03-07",
			ReceivedBy:       "j.khumalo",
			Notes:            "Toner back-ordered, balance of paper expected with next drop",
			CreatedAt:        "2025-03-07T15:20:00Z",
			UpdatedAt:        "2025-03-08T09:05:00Z",
		},
	}
}
