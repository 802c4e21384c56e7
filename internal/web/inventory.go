package web

import (
	"net/http"

	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
)

// InventoryPage handles GET /inventory. Optional query parameters:
// location, q. An unknown location shows all locations.
func (s *Server) InventoryPage(w http.ResponseWriter, r *http.Request) {
	f := inventory.Filter{Query: r.URL.Query().Get("q")}
	if loc, err := model.ParseLocation(r.URL.Query().Get("location")); err == nil {
		f.Location = loc
	}

	s.Templates.Render(w, "inventory.html", &struct {
		PageData
		Records   []model.InventoryRecord
		Filter    inventory.Filter
		Locations []model.Location
	}{
		PageData:  PageData{Title: "Inventory", Active: "inventory"},
		Records:   s.Store.Search(f),
		Filter:    f,
		Locations: model.Locations,
	})
}
