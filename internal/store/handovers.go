package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slocops/handover/internal/model"
)

// InsertHandover records a handover and its lines in a single transaction.
func InsertHandover(ctx context.Context, db *sql.DB, rec model.HandoverRecord) error {
	return SaveHandover(ctx, db, rec, nil)
}

// SaveHandover records a handover together with the inventory rows it
// changed, so the database never holds one without the other.
func SaveHandover(ctx context.Context, db *sql.DB, rec model.HandoverRecord, touched []model.InventoryRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary sql.NullString
	if rec.Summary != "" {
		summary = sql.NullString{String: rec.Summary, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO handovers (id, date, from_location, to_location, sender_name, receiver_name, status, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date.UTC(), string(rec.From), string(rec.To), rec.SenderName, rec.ReceiverName, string(rec.Status), summary,
	)
	if err != nil {
		return fmt.Errorf("recording handover: %w", err)
	}

	for i, l := range rec.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO handover_lines (handover_id, position, item_id, item_name, quantity)
			 VALUES (?, ?, ?, ?, ?)`,
			rec.ID, i, l.ItemID, l.ItemName, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("recording handover line %d: %w", i, err)
		}
	}

	if err := upsertInventory(ctx, tx, touched); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing handover: %w", err)
	}
	return nil
}

// SetHandoverSummary fills in the summary of a handover that has none.
// It is a no-op when a summary is already stored.
func SetHandoverSummary(ctx context.Context, db *sql.DB, id, summary string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE handovers SET summary = ? WHERE id = ? AND (summary IS NULL OR summary = '')`,
		summary, id,
	)
	if err != nil {
		return fmt.Errorf("setting handover summary: %w", err)
	}
	return nil
}

// GetHandover returns a handover by ID, or nil if it does not exist.
func GetHandover(ctx context.Context, db *sql.DB, id string) (*model.HandoverRecord, error) {
	rows, err := db.QueryContext(ctx, handoverQuery+` WHERE h.id = ? ORDER BY l.position`, id)
	if err != nil {
		return nil, fmt.Errorf("getting handover: %w", err)
	}
	defer rows.Close()

	records, err := scanHandovers(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListHandovers returns all handovers in the order they were recorded.
func ListHandovers(ctx context.Context, db *sql.DB) ([]model.HandoverRecord, error) {
	rows, err := db.QueryContext(ctx, handoverQuery+` ORDER BY h.seq, l.position`)
	if err != nil {
		return nil, fmt.Errorf("listing handovers: %w", err)
	}
	defer rows.Close()

	return scanHandovers(rows)
}

const handoverQuery = `SELECT h.id, h.date, h.from_location, h.to_location, h.sender_name, h.receiver_name,
                              h.status, h.summary, l.item_id, l.item_name, l.quantity
                       FROM handovers h
                       LEFT JOIN handover_lines l ON l.handover_id = h.id`

// scanHandovers folds joined handover/line rows into records. Rows must be
// grouped by handover.
func scanHandovers(rows *sql.Rows) ([]model.HandoverRecord, error) {
	var records []model.HandoverRecord
	for rows.Next() {
		var h model.HandoverRecord
		var summary, itemID, itemName sql.NullString
		var quantity sql.NullInt64
		if err := rows.Scan(&h.ID, &h.Date, &h.From, &h.To, &h.SenderName, &h.ReceiverName,
			&h.Status, &summary, &itemID, &itemName, &quantity); err != nil {
			return nil, fmt.Errorf("scanning handover: %w", err)
		}

		if n := len(records); n == 0 || records[n-1].ID != h.ID {
			h.Summary = summary.String
			h.Lines = []model.HandoverLine{}
			records = append(records, h)
		}
		if itemID.Valid {
			last := &records[len(records)-1]
			last.Lines = append(last.Lines, model.HandoverLine{
				ItemID:   itemID.String,
				ItemName: itemName.String,
				Quantity: int(quantity.Int64),
			})
		}
	}
	return records, rows.Err()
}
