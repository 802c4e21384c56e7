package web

import (
	"net/http"

	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
)

// recentHandovers is how many log entries the dashboard shows.
const recentHandovers = 5

// Dashboard handles GET /. Insights are generated only when the insights
// query parameter is set, since each call goes to the text generation
// service.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	var insights string
	if r.URL.Query().Has("insights") {
		insights = s.Advisor.InventoryInsights(r.Context(), s.Store.List())
	}

	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		Stats     inventory.Stats
		Recent    []model.HandoverRecord
		Insights  string
		Locations []model.Location
	}{
		PageData:  PageData{Title: "Dashboard", Active: "dashboard"},
		Stats:     s.Store.Stats(),
		Recent:    s.Log.Recent(recentHandovers),
		Insights:  insights,
		Locations: model.Locations,
	})
}
