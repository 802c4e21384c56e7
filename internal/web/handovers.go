package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/model"
)

// formLines is the number of item rows the handover form offers.
const formLines = 5

var errorMessages = map[string]string{
	"missing_sender":     "Nama pengirim wajib diisi.",
	"missing_receiver":   "Nama penerima wajib diisi.",
	"no_lines":           "Tambahkan minimal satu barang.",
	"invalid_location":   "SLOC harus 1000 atau 1001.",
	"same_location":      "SLOC asal dan tujuan tidak boleh sama.",
	"missing_item_id":    "Pilih barang untuk setiap baris.",
	"invalid_quantity":   "Jumlah harus minimal 1.",
	"insufficient_stock": "Stok di SLOC asal tidak mencukupi.",
}

// errorMessage returns the localized message for a rejected handover.
func errorMessage(err error) string {
	if msg, ok := errorMessages[handover.Reason(err)]; ok {
		return msg
	}
	return "Serah terima gagal diproses."
}

type formRow struct {
	ItemID   string
	Quantity string
}

type handoverForm struct {
	SenderName   string
	ReceiverName string
	From         model.Location
	To           model.Location
	Rows         []formRow
}

func emptyForm(from model.Location) handoverForm {
	if !from.Valid() {
		from = model.LocationMain
	}
	return handoverForm{
		From: from,
		To:   from.Other(),
		Rows: make([]formRow, formLines),
	}
}

// parseForm reads the submitted form. Rows with neither an item nor a
// quantity are dropped; everything else is left to the processor's
// validation.
func parseForm(r *http.Request) (handoverForm, model.HandoverRequest) {
	form := handoverForm{
		SenderName:   r.FormValue("sender_name"),
		ReceiverName: r.FormValue("receiver_name"),
		From:         model.Location(r.FormValue("from_location")),
		To:           model.Location(r.FormValue("to_location")),
	}
	req := model.HandoverRequest{
		SenderName:   form.SenderName,
		ReceiverName: form.ReceiverName,
		From:         form.From,
		To:           form.To,
	}

	items := r.Form["item_id"]
	quantities := r.Form["quantity"]
	for i, itemID := range items {
		var qty string
		if i < len(quantities) {
			qty = quantities[i]
		}
		form.Rows = append(form.Rows, formRow{ItemID: itemID, Quantity: qty})

		if strings.TrimSpace(itemID) == "" && strings.TrimSpace(qty) == "" {
			continue
		}
		n, _ := strconv.Atoi(strings.TrimSpace(qty))
		req.Lines = append(req.Lines, model.RequestLine{ItemID: itemID, Quantity: n})
	}
	for len(form.Rows) < formLines {
		form.Rows = append(form.Rows, formRow{})
	}
	return form, req
}

// catalogItem is one selectable item with its stock at each location.
type catalogItem struct {
	ItemID string
	Name   string
	Main   int
	Second int

	held map[model.Location]bool
}

// catalog folds inventory records (sorted by item ID) into one entry per
// item, keeping only items with a record at from. An invalid from keeps
// every item.
func catalog(records []model.InventoryRecord, from model.Location) []catalogItem {
	var all []catalogItem
	for _, r := range records {
		if len(all) == 0 || all[len(all)-1].ItemID != r.ItemID {
			all = append(all, catalogItem{ItemID: r.ItemID, Name: r.Name, held: map[model.Location]bool{}})
		}
		c := &all[len(all)-1]
		c.held[r.Location] = true
		switch r.Location {
		case model.LocationMain:
			c.Main = r.Quantity
		case model.LocationSecondary:
			c.Second = r.Quantity
		}
	}
	if !from.Valid() {
		return all
	}

	out := make([]catalogItem, 0, len(all))
	for _, c := range all {
		if c.held[from] {
			out = append(out, c)
		}
	}
	return out
}

// HistoryPage handles GET /handovers.
func (s *Server) HistoryPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "history.html", &struct {
		PageData
		Handovers []model.HandoverRecord
	}{
		PageData:  PageData{Title: "Riwayat Serah Terima", Active: "history"},
		Handovers: s.Log.Recent(0),
	})
}

// HandoverNewPage handles GET /handovers/new. The optional from query
// parameter selects the sending location whose items are offered.
func (s *Server) HandoverNewPage(w http.ResponseWriter, r *http.Request) {
	from := model.Location(r.URL.Query().Get("from"))
	s.renderForm(w, http.StatusOK, emptyForm(from), "")
}

// HandoverCreateSubmit handles POST /handovers/new.
func (s *Server) HandoverCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderForm(w, http.StatusBadRequest, emptyForm(""), "Formulir tidak valid.")
		return
	}
	form, req := parseForm(r)

	rec, err := s.Processor.Process(r.Context(), req)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, handover.ErrInsufficientStock):
			status = http.StatusConflict
		case !errors.Is(err, handover.ErrInvalidRequest):
			slog.Error("failed to process handover", "error", err)
			status = http.StatusInternalServerError
		}
		s.renderForm(w, status, form, errorMessage(err))
		return
	}

	http.Redirect(w, r, "/handovers#"+rec.ID, http.StatusSeeOther)
}

func (s *Server) renderForm(w http.ResponseWriter, status int, form handoverForm, message string) {
	s.Templates.RenderStatus(w, status, "handover_new.html", &struct {
		PageData
		Form      handoverForm
		Items     []catalogItem
		Locations []model.Location
	}{
		PageData:  PageData{Title: "Formulir Serah Terima Barang", Active: "handover", Error: message},
		Form:      form,
		Items:     catalog(s.Store.List(), form.From),
		Locations: model.Locations,
	})
}
