package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/inventory"
)

// Deps are the collaborators the API serves.
type Deps struct {
	Store     *inventory.Store
	Log       *handover.Log
	Processor *handover.Processor
	Advisor   Insighter
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	inventoryHandler := &InventoryHandler{Store: d.Store}
	handoversHandler := &HandoversHandler{Processor: d.Processor, Log: d.Log}
	insightsHandler := &InsightsHandler{Store: d.Store, Advisor: d.Advisor}

	mux.HandleFunc("GET /api/inventory", inventoryHandler.List)
	mux.HandleFunc("GET /api/inventory/stats", inventoryHandler.Stats)
	mux.HandleFunc("GET /api/insights", insightsHandler.Get)

	mux.HandleFunc("POST /api/handovers", handoversHandler.Create)
	mux.HandleFunc("GET /api/handovers", handoversHandler.List)
	mux.HandleFunc("GET /api/handovers/{id}", handoversHandler.Get)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}
