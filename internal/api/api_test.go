package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/model"
)

type staticAdvisor string

func (s staticAdvisor) HandoverSummary(context.Context, model.HandoverRecord) string {
	return string(s)
}

func (s staticAdvisor) InventoryInsights(context.Context, []model.InventoryRecord) string {
	return string(s)
}

type testServer struct {
	*httptest.Server
	store *inventory.Store
	log   *handover.Log
	proc  *handover.Processor
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store := inventory.New(model.SeedInventory())
	log := handover.NewLog(model.SeedHandovers())
	proc := &handover.Processor{
		Store:      store,
		Log:        log,
		Summarizer: staticAdvisor("ringkasan"),
	}

	router := NewRouter(Deps{
		Store:     store,
		Log:       log,
		Processor: proc,
		Advisor:   staticAdvisor("tiga insight"),
	})
	server := httptest.NewServer(LoggingMiddleware(router))
	t.Cleanup(server.Close)
	t.Cleanup(proc.Wait)

	return &testServer{Server: server, store: store, log: log, proc: proc}
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, target any) int {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp.StatusCode
}

func validRequest() model.HandoverRequest {
	return model.HandoverRequest{
		SenderName:   "Andi",
		ReceiverName: "Budi",
		From:         model.LocationMain,
		To:           model.LocationSecondary,
		Lines:        []model.RequestLine{{ItemID: "ITM001", Quantity: 3}},
	}
}

func TestInventoryList(t *testing.T) {
	s := setupTestServer(t)

	var all []model.InventoryRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/inventory", &all))
	assert.Len(t, all, 6)

	var secondary []model.InventoryRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/inventory?location=1001", &secondary))
	require.Len(t, secondary, 3)
	for _, r := range secondary {
		assert.Equal(t, model.LocationSecondary, r.Location)
	}

	var found []model.InventoryRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/inventory?q=networking", &found))
	assert.Len(t, found, 2)
}

func TestInventoryListInvalidLocation(t *testing.T) {
	s := setupTestServer(t)

	var body errorBody
	assert.Equal(t, http.StatusBadRequest, getJSON(t, s.URL+"/api/inventory?location=2000", &body))
	assert.Equal(t, "invalid_location", body.Code)
}

func TestInventoryStats(t *testing.T) {
	s := setupTestServer(t)

	var stats inventory.Stats
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/inventory/stats", &stats))
	assert.Equal(t, 132, stats.TotalUnits)
	assert.Equal(t, 40, stats.ByLocation[model.LocationMain])
	assert.Equal(t, 92, stats.ByLocation[model.LocationSecondary])
	assert.Equal(t, 1, stats.LowStockCount)
}

func TestInsights(t *testing.T) {
	s := setupTestServer(t)

	var body insightsResponse
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/insights", &body))
	assert.Equal(t, "tiga insight", body.Insights)
}

func TestCreateHandover(t *testing.T) {
	s := setupTestServer(t)

	var rec model.HandoverRecord
	assert.Equal(t, http.StatusCreated, postJSON(t, s.URL+"/api/handovers", validRequest(), &rec))
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, model.HandoverStatusCompleted, rec.Status)
	require.Len(t, rec.Lines, 1)
	assert.Equal(t, "MacBook Pro M2", rec.Lines[0].ItemName)

	src, _ := s.store.Find("ITM001", model.LocationMain)
	dst, ok := s.store.Find("ITM001", model.LocationSecondary)
	require.True(t, ok)
	assert.Equal(t, 12, src.Quantity)
	assert.Equal(t, 3, dst.Quantity)

	s.proc.Wait()
	var got model.HandoverRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/handovers/"+rec.ID, &got))
	assert.Equal(t, "ringkasan", got.Summary)
}

func TestCreateHandoverValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.HandoverRequest)
		code   string
	}{
		{"missing sender", func(r *model.HandoverRequest) { r.SenderName = " " }, "missing_sender"},
		{"missing receiver", func(r *model.HandoverRequest) { r.ReceiverName = "" }, "missing_receiver"},
		{"no lines", func(r *model.HandoverRequest) { r.Lines = nil }, "no_lines"},
		{"same location", func(r *model.HandoverRequest) { r.To = model.LocationMain }, "same_location"},
		{"bad location", func(r *model.HandoverRequest) { r.From = "9999" }, "invalid_location"},
		{"zero quantity", func(r *model.HandoverRequest) { r.Lines[0].Quantity = 0 }, "invalid_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)
			req := validRequest()
			tt.mutate(&req)

			var body errorBody
			assert.Equal(t, http.StatusBadRequest, postJSON(t, s.URL+"/api/handovers", req, &body))
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, 1, s.log.Len())
		})
	}
}

func TestCreateHandoverInsufficientStock(t *testing.T) {
	s := setupTestServer(t)
	req := validRequest()
	req.Lines[0].Quantity = 16

	var body errorBody
	assert.Equal(t, http.StatusConflict, postJSON(t, s.URL+"/api/handovers", req, &body))
	assert.Equal(t, "insufficient_stock", body.Code)

	src, _ := s.store.Find("ITM001", model.LocationMain)
	assert.Equal(t, 15, src.Quantity)
	assert.Equal(t, 1, s.log.Len())
}

func TestCreateHandoverInvalidBody(t *testing.T) {
	s := setupTestServer(t)

	resp, err := http.Post(s.URL+"/api/handovers", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListHandoversNewestFirst(t *testing.T) {
	s := setupTestServer(t)

	var created model.HandoverRecord
	require.Equal(t, http.StatusCreated, postJSON(t, s.URL+"/api/handovers", validRequest(), &created))

	var list []model.HandoverRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/handovers", &list))
	require.Len(t, list, 2)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, "HND-2023-001", list[1].ID)

	var limited []model.HandoverRecord
	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/api/handovers?limit=1", &limited))
	assert.Len(t, limited, 1)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, s.URL+"/api/handovers?limit=x", nil))
}

func TestGetHandoverNotFound(t *testing.T) {
	s := setupTestServer(t)

	var body errorBody
	assert.Equal(t, http.StatusNotFound, getJSON(t, s.URL+"/api/handovers/HND-missing", &body))
	assert.Equal(t, "handover not found", body.Error)
}

func TestHealthAndMetrics(t *testing.T) {
	s := setupTestServer(t)

	assert.Equal(t, http.StatusOK, getJSON(t, s.URL+"/healthz", nil))

	resp, err := http.Get(s.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
