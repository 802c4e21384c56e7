package api

import (
	"net/http"

	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	Store *inventory.Store
}

// List handles GET /api/inventory. Optional query parameters: location, q.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var f inventory.Filter
	if v := r.URL.Query().Get("location"); v != "" {
		loc, err := model.ParseLocation(v)
		if err != nil {
			jsonErrorCode(w, http.StatusBadRequest, "invalid_location", err.Error())
			return
		}
		f.Location = loc
	}
	f.Query = r.URL.Query().Get("q")

	jsonResponse(w, http.StatusOK, h.Store.Search(f))
}

// Stats handles GET /api/inventory/stats.
func (h *InventoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Store.Stats())
}
