package inventory

import (
	"sort"

	"github.com/slocops/handover/internal/model"
)

// CategoryTotal is the stock of one category split by location.
type CategoryTotal struct {
	Category   string                 `json:"category"`
	ByLocation map[model.Location]int `json:"by_location"`
	Total      int                    `json:"total"`
}

// Stats are the dashboard aggregates over the whole inventory.
type Stats struct {
	TotalUnits    int                     `json:"total_units"`
	ByLocation    map[model.Location]int  `json:"by_location"`
	DistinctItems int                     `json:"distinct_items"`
	LowStockCount int                     `json:"low_stock_count"`
	LowStock      []model.InventoryRecord `json:"low_stock"`
	Categories    []CategoryTotal         `json:"categories"`
}

// Stats computes dashboard aggregates from the current inventory.
func (s *Store) Stats() Stats {
	records := s.List()

	st := Stats{
		ByLocation: make(map[model.Location]int, len(model.Locations)),
		LowStock:   []model.InventoryRecord{},
	}
	for _, loc := range model.Locations {
		st.ByLocation[loc] = 0
	}

	items := make(map[string]struct{})
	categories := make(map[string]*CategoryTotal)
	for _, r := range records {
		st.TotalUnits += r.Quantity
		st.ByLocation[r.Location] += r.Quantity
		items[r.ItemID] = struct{}{}
		if r.LowStock() {
			st.LowStock = append(st.LowStock, r)
		}

		c, ok := categories[r.Category]
		if !ok {
			c = &CategoryTotal{Category: r.Category, ByLocation: make(map[model.Location]int)}
			categories[r.Category] = c
		}
		c.ByLocation[r.Location] += r.Quantity
		c.Total += r.Quantity
	}
	st.DistinctItems = len(items)
	st.LowStockCount = len(st.LowStock)

	for _, c := range categories {
		st.Categories = append(st.Categories, *c)
	}
	sort.Slice(st.Categories, func(i, j int) bool {
		return st.Categories[i].Category < st.Categories[j].Category
	})

	return st
}
