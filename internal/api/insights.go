package api

import (
	"context"
	"net/http"

	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
)

// Insighter produces advisory insights over an inventory snapshot.
type Insighter interface {
	InventoryInsights(ctx context.Context, records []model.InventoryRecord) string
}

// InsightsHandler handles the advisory insights endpoint.
type InsightsHandler struct {
	Store   *inventory.Store
	Advisor Insighter
}

type insightsResponse struct {
	Insights string `json:"insights"`
}

// Get handles GET /api/insights.
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	text := h.Advisor.InventoryInsights(r.Context(), h.Store.List())
	jsonResponse(w, http.StatusOK, insightsResponse{Insights: text})
}
