package model

import "time"

// LowStockThreshold is the quantity below which a record counts as low stock.
const LowStockThreshold = 10

// InventoryRecord is the stock of one item at one location.
type InventoryRecord struct {
	ItemID      string    `json:"item_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`
	Location    Location  `json:"location"`
	Quantity    int       `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
}

// LowStock reports whether the record is below LowStockThreshold.
func (r InventoryRecord) LowStock() bool {
	return r.Quantity < LowStockThreshold
}
