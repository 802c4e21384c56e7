package advisory

import (
	"encoding/json"
	"fmt"

	"github.com/slocops/handover/internal/model"
)

// Fallback texts shown when generation fails or returns nothing.
const (
	FallbackHandoverSummary = "Gagal menghasilkan ringkasan otomatis."
	FallbackInsights        = "Gagal menganalisis inventory."
	EmptyHandoverSummary    = "Summary generated successfully."
	EmptyInsights           = "Analisis selesai."
)

func handoverPrompt(rec model.HandoverRecord) string {
	items, _ := json.Marshal(rec.Lines)
	return fmt.Sprintf(`Generate a professional, concise summary for an inventory handover report.
Sender: %s
Receiver: %s
From SLOC: %s
To SLOC: %s
Items: %s
Context: Handover for official assignment between storage locations.
Please write it in a professional Indonesian formal tone.`,
		rec.SenderName, rec.ReceiverName, rec.From, rec.To, items)
}

type insightRow struct {
	ItemID   string         `json:"id"`
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Location model.Location `json:"sloc"`
	Quantity int            `json:"quantity"`
	Unit     string         `json:"unit"`
}

func insightRows(records []model.InventoryRecord) []insightRow {
	rows := make([]insightRow, len(records))
	for i, r := range records {
		rows[i] = insightRow{
			ItemID:   r.ItemID,
			Name:     r.Name,
			Category: r.Category,
			Location: r.Location,
			Quantity: r.Quantity,
			Unit:     r.Unit,
		}
	}
	return rows
}

func insightsPrompt(data []byte) string {
	return fmt.Sprintf(`Analyze this inventory data and provide 3 brief strategic insights or warnings.
Data: %s
Identify low stock or imbalances between SLOC 1000 (Main) and 1001 (Secondary).
Language: Indonesian.`, data)
}
