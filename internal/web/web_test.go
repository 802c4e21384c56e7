package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
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
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store := inventory.New(model.SeedInventory())
	log := handover.NewLog(model.SeedHandovers())
	proc := &handover.Processor{Store: store, Log: log, Summarizer: staticAdvisor("ringkasan")}

	router, err := NewRouter(store, log, proc, staticAdvisor("Insight pertama"))
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	t.Cleanup(proc.Wait)
	return &testServer{Server: server, store: store, log: log}
}

func noRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestLoadTemplates(t *testing.T) {
	_, err := LoadTemplates()
	require.NoError(t, err)
}

func TestDashboard(t *testing.T) {
	s := setupTestServer(t)

	status, body := get(t, s.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "132")
	assert.Contains(t, body, "Cisco Router ASR1000")
	assert.Contains(t, body, "HND-2023-001")
	assert.NotContains(t, body, "Insight pertama")

	_, body = get(t, s.URL+"/?insights=1")
	assert.Contains(t, body, "Insight pertama")
}

func TestInventoryPageFilters(t *testing.T) {
	s := setupTestServer(t)

	status, body := get(t, s.URL+"/inventory?location=1001&q=logitech")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Logitech MX Master 3S")
	assert.NotContains(t, body, "MacBook Pro M2")

	_, body = get(t, s.URL+"/inventory?q=nothing-matches")
	assert.Contains(t, body, "Tidak ada data inventory ditemukan")
}

func TestStaticAssets(t *testing.T) {
	s := setupTestServer(t)

	status, _ := get(t, s.URL+"/static/style.css")
	assert.Equal(t, http.StatusOK, status)
}

func TestHandoverSubmit(t *testing.T) {
	s := setupTestServer(t)
	client := &http.Client{CheckRedirect: noRedirect}

	form := url.Values{
		"sender_name":   {"Andi"},
		"receiver_name": {"Budi"},
		"from_location": {"1000"},
		"to_location":   {"1001"},
		"item_id":       {"ITM002", "", ""},
		"quantity":      {"4", "", ""},
	}
	resp, err := client.PostForm(s.URL+"/handovers/new", form)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/handovers#HND-"))

	src, _ := s.store.Find("ITM002", model.LocationMain)
	assert.Equal(t, 16, src.Quantity)
	assert.Equal(t, 2, s.log.Len())

	status, body := get(t, s.URL+"/handovers")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Dell UltraSharp Monitor")
}

func TestHandoverSubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		status  int
		message string
	}{
		{
			name: "same location",
			form: url.Values{
				"sender_name": {"Andi"}, "receiver_name": {"Budi"},
				"from_location": {"1000"}, "to_location": {"1000"},
				"item_id": {"ITM001"}, "quantity": {"1"},
			},
			status:  http.StatusBadRequest,
			message: "SLOC asal dan tujuan tidak boleh sama.",
		},
		{
			name: "no lines",
			form: url.Values{
				"sender_name": {"Andi"}, "receiver_name": {"Budi"},
				"from_location": {"1000"}, "to_location": {"1001"},
				"item_id": {"", ""}, "quantity": {"", ""},
			},
			status:  http.StatusBadRequest,
			message: "Tambahkan minimal satu barang.",
		},
		{
			name: "insufficient stock",
			form: url.Values{
				"sender_name": {"Andi"}, "receiver_name": {"Budi"},
				"from_location": {"1000"}, "to_location": {"1001"},
				"item_id": {"ITM005"}, "quantity": {"6"},
			},
			status:  http.StatusConflict,
			message: "Stok di SLOC asal tidak mencukupi.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupTestServer(t)

			resp, err := http.PostForm(s.URL+"/handovers/new", tt.form)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, string(body), tt.message)
			assert.Equal(t, 1, s.log.Len())
			// Submitted values are kept on the re-rendered form.
			assert.Contains(t, string(body), `value="Andi"`)
		})
	}
}

func TestCatalog(t *testing.T) {
	records := []model.InventoryRecord{
		{ItemID: "A", Name: "Alpha", Location: model.LocationMain, Quantity: 3},
		{ItemID: "A", Name: "Alpha", Location: model.LocationSecondary, Quantity: 4},
		{ItemID: "B", Name: "Beta", Location: model.LocationSecondary, Quantity: 9},
	}

	ids := func(items []catalogItem) []string {
		var out []string
		for _, c := range items {
			out = append(out, c.ItemID)
		}
		return out
	}

	fromMain := catalog(records, model.LocationMain)
	assert.Equal(t, []string{"A"}, ids(fromMain))
	assert.Equal(t, 3, fromMain[0].Main)
	assert.Equal(t, 4, fromMain[0].Second)

	assert.Equal(t, []string{"A", "B"}, ids(catalog(records, model.LocationSecondary)))
	assert.Equal(t, []string{"A", "B"}, ids(catalog(records, "")))
}

func TestHandoverFormOffersItemsAtSender(t *testing.T) {
	s := setupTestServer(t)

	status, body := get(t, s.URL+"/handovers/new")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="ITM001"`)
	assert.NotContains(t, body, `value="ITM003"`, "ITM003 is only held at 1001")

	_, body = get(t, s.URL+"/handovers/new?from=1001")
	assert.Contains(t, body, `value="ITM003"`)
	assert.NotContains(t, body, `value="ITM001"`)
	assert.Contains(t, body, `href="/handovers/new?from=1000"`)
}
