package model

import "time"

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// SeedInventory returns the demo stock loaded into an empty database.
func SeedInventory() []InventoryRecord {
	return []InventoryRecord{
		{ItemID: "ITM001", Name: "MacBook Pro M2", Category: "Laptop", Quantity: 15, Unit: "Unit", Location: LocationMain, LastUpdated: day("2023-10-25")},
		{ItemID: "ITM002", Name: "Dell UltraSharp Monitor", Category: "Monitor", Quantity: 20, Unit: "Unit", Location: LocationMain, LastUpdated: day("2023-10-24")},
		{ItemID: "ITM003", Name: "Logitech MX Master 3S", Category: "Peripheral", Quantity: 50, Unit: "Unit", Location: LocationSecondary, LastUpdated: day("2023-10-20")},
		{ItemID: "ITM004", Name: "Mechanical Keyboard G-Pro", Category: "Peripheral", Quantity: 30, Unit: "Unit", Location: LocationSecondary, LastUpdated: day("2023-10-21")},
		{ItemID: "ITM005", Name: "Cisco Router ASR1000", Category: "Networking", Quantity: 5, Unit: "Unit", Location: LocationMain, LastUpdated: day("2023-10-22")},
		{ItemID: "ITM006", Name: "Ubiquiti Access Point", Category: "Networking", Quantity: 12, Unit: "Unit", Location: LocationSecondary, LastUpdated: day("2023-10-23")},
	}
}

// SeedHandovers returns the demo handover log loaded into an empty database.
func SeedHandovers() []HandoverRecord {
	return []HandoverRecord{
		{
			ID:   "HND-2023-001",
			Date: time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC),
			From: LocationMain,
			To:   LocationSecondary,
			Lines: []HandoverLine{
				{ItemID: "ITM001", ItemName: "MacBook Pro M2", Quantity: 5},
			},
			ReceiverName: "Budi Santoso",
			SenderName:   "Andi Pratama",
			Status:       HandoverStatusCompleted,
			Summary:      "Handover of 5 high-end laptops for regional marketing team expansion.",
		},
	}
}
