package purchaseorder

// =============================================================================
// SEED DATA - Demo fixtures loaded at startup when seeding is enabled
// =============================================================================

// SeedSequence is the next PO number after the fixtures below.
const SeedSequence = 459

// Seed returns the demo purchase orders. Totals are computed, not hardcoded,
// so the fixtures stay consistent with the calculation rules.
func Seed() []PurchaseOrder {
	orders := []PurchaseOrder{
		{
			ID:          "po-001",
			PONumber:    "PO-2025-0455",
			ContractRef: "CNTR-2025-0087",
			Supplier: Supplier{
				ID:                 "sup-001",
				Name:               "TechSolutions SA (Pty) Ltd",
				RegistrationNumber: "2015/123456/07",
				TaxNumber:          "9012345678",
				BBBEELevel:         1,
				ContactPerson:      "Thabo Mokoena",
				ContactEmail:       "thabo@techsolutions.co.za",
				ContactPhone:       "+27 11 555 0101",
				Address:            "45 Rivonia Road, Sandton, Johannesburg",
			},
			LineItems: []LineItem{
				{
					ID: "li-001", ItemCode: "LAPTOP-D5520", Description: "Dell Latitude 5520 laptop",
					Quantity: 25, Unit: "each", UnitPrice: 18500, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-02-28", DeliveredQuantity: 25,
				},
				{
					ID: "li-002", ItemCode: "DOCK-WD19", Description: "Dell WD19 docking station",
					Quantity: 25, Unit: "each", UnitPrice: 3200, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-02-28", DeliveredQuantity: 25,
				},
			},
			DeliveryAddress: headOfficeAddress(),
			Status:          StatusDelivered,
			Currency:        "ZAR",
			PaymentTerms:    "30 days from invoice",
			OrderDate:       "2025-01-15",
			ExpectedDeliveryDate: "2025-02-28",
			ActualDeliveryDate:   "2025-02-25",
			CreatedBy:            "s.naidoo",
			CreatedAt:            "2025-01-15T09:30:00Z",
			UpdatedAt:            "2025-02-25T14:10:00Z",
			ApprovedBy:           "m.van.wyk",
			ApprovedAt:           "2025-01-17T11:00:00Z",
			SentAt:               "2025-01-18T08:15:00Z",
			AcknowledgedAt:       "2025-01-20T10:45:00Z",
		},
		{
			ID:          "po-002",
			PONumber:    "PO-2025-0456",
			ContractRef: "CNTR-2025-0092",
			Supplier: Supplier{
				ID:                 "sup-002",
				Name:               "Khanya Office Supplies CC",
				RegistrationNumber: "2018/987654/23",
				TaxNumber:          "9087654321",
				BBBEELevel:         2,
				ContactPerson:      "Nomvula Dlamini",
				ContactEmail:       "orders@khanyaoffice.co.za",
				ContactPhone:       "+27 12 555 0202",
				Address:            "12 Church Street, Pretoria Central",
			},
			LineItems: []LineItem{
				{
					ID: "li-003", ItemCode: "PAPER-A4-80", Description: "A4 copy paper 80gsm (box of 5 reams)",
					Quantity: 200, Unit: "box", UnitPrice: 285, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-03-15", DeliveredQuantity: 120,
				},
				{
					ID: "li-004", ItemCode: "TONER-HP26A", Description: "HP 26A black toner cartridge",
					Quantity: 40, Unit: "each", UnitPrice: 2150, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-03-15", DeliveredQuantity: 0,
				},
			},
			DeliveryAddress: headOfficeAddress(),
			Status:          StatusPartiallyDelivered,
			Currency:        "ZAR",
			PaymentTerms:    "30 days from statement",
			OrderDate:       "2025-02-10",
			ExpectedDeliveryDate: "2025-03-15",
			CreatedBy:            "s.naidoo",
			CreatedAt:            "2025-02-10T13:05:00Z",
			UpdatedAt:            "2025-03-08T09:20:00Z",
			ApprovedBy:           "m.van.wyk",
			ApprovedAt:           "2025-02-11T16:30:00Z",
			SentAt:               "2025-02-12T08:00:00Z",
			AcknowledgedAt:       "2025-02-13T11:25:00Z",
		},
		{
			ID:          "po-003",
			PONumber:    "PO-2025-0457",
			ContractRef: "CNTR-2024-0311",
			Supplier: Supplier{
				ID:                 "sup-003",
				Name:               "Ubuntu Facilities Management (Pty) Ltd",
				RegistrationNumber: "2012/456789/07",
				TaxNumber:          "9055544433",
				BBBEELevel:         1,
				ContactPerson:      "Sipho Ndlovu",
				ContactEmail:       "sipho@ubuntufm.co.za",
				ContactPhone:       "+27 31 555 0303",
				Address:            "8 Umhlanga Rocks Drive, Durban",
			},
			LineItems: []LineItem{
				{
					ID: "li-005", ItemCode: "CLEAN-Q2", Description: "Quarterly deep cleaning service, regional offices",
					Quantity: 4, Unit: "service", UnitPrice: 45000, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-06-30",
				},
			},
			DeliveryAddress: headOfficeAddress(),
			Status:          StatusPendingApproval,
			Currency:        "ZAR",
			PaymentTerms:    "Per service completion",
			OrderDate:       "2025-03-01",
			ExpectedDeliveryDate: "2025-06-30",
			CreatedBy:            "p.botha",
			CreatedAt:            "2025-03-01T10:00:00Z",
			UpdatedAt:            "2025-03-01T10:00:00Z",
		},
		{
			ID:       "po-004",
			PONumber: "PO-2025-0458",
			Supplier: Supplier{
				ID:                 "sup-004",
				Name:               "Mzansi IT Distributors",
				RegistrationNumber: "2020/222333/07",
				TaxNumber:          "9033322211",
				BBBEELevel:         3,
				ContactPerson:      "Lerato Molefe",
				ContactEmail:       "lerato@mzansiit.co.za",
				ContactPhone:       "+27 21 555 0404",
				Address:            "Unit 14, Montague Park, Cape Town",
			},
			LineItems: []LineItem{
				{
					ID: "li-006", ItemCode: "SWITCH-C9300", Description: "Cisco Catalyst 9300 48-port switch",
					Quantity: 6, Unit: "each", UnitPrice: 87500, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-05-20",
				},
				{
					ID: "li-007", ItemCode: "SFP-10G", Description: "10G SFP+ transceiver module",
					Quantity: 24, Unit: "each", UnitPrice: 1850, TaxRate: DefaultTaxRate,
					DeliveryDate: "2025-05-20",
				},
			},
			DeliveryAddress: headOfficeAddress(),
			Status:          StatusDraft,
			Currency:        "ZAR",
			PaymentTerms:    "50% deposit, balance on delivery",
			OrderDate:       "2025-03-12",
			ExpectedDeliveryDate: "2025-05-20",
			Notes:                "Network refresh phase 2, pending budget confirmation",
			CreatedBy:            "p.botha",
			CreatedAt:            "2025-03-12T15:40:00Z",
			UpdatedAt:            "2025-03-12T15:40:00Z",
		},
	}
	for i := range orders {
		orders[i].CalculateTotals()
	}
	return orders
}

func headOfficeAddress() DeliveryAddress {
	return DeliveryAddress{
		AddressLine1:  "240 Madiba Street",
		AddressLine2:  "Central Government Complex, Block C",
		City:          "Pretoria",
		Province:      "Gauteng",
		PostalCode:    "0002",
		Country:       "South Africa",
		ContactPerson: "Receiving Office",
		ContactPhone:  "+27 12 555 0100",
		ContactEmail:  "receiving@entity.gov.za",
	}
}
