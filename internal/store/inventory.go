package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slocops/handover/internal/model"
)

// LoadInventory returns every inventory record.
func LoadInventory(ctx context.Context, db *sql.DB) ([]model.InventoryRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT item_id, location, name, category, unit, quantity, last_updated
		 FROM inventory
		 ORDER BY item_id, location`,
	)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		var r model.InventoryRecord
		if err := rows.Scan(&r.ItemID, &r.Location, &r.Name, &r.Category, &r.Unit, &r.Quantity, &r.LastUpdated); err != nil {
			return nil, fmt.Errorf("scanning inventory: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadInventoryByLocation returns the inventory records at one location.
func LoadInventoryByLocation(ctx context.Context, db *sql.DB, loc model.Location) ([]model.InventoryRecord, error) {
	all, err := LoadInventory(ctx, db)
	if err != nil {
		return nil, err
	}
	var out []model.InventoryRecord
	for _, r := range all {
		if r.Location == loc {
			out = append(out, r)
		}
	}
	return out, nil
}

// SaveInventoryRecords upserts the given records in a single transaction.
func SaveInventoryRecords(ctx context.Context, db *sql.DB, records []model.InventoryRecord) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertInventory(ctx, tx, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing inventory: %w", err)
	}
	return nil
}

func upsertInventory(ctx context.Context, tx *sql.Tx, records []model.InventoryRecord) error {
	for _, r := range records {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO inventory (item_id, location, name, category, unit, quantity, last_updated)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (item_id, location) DO UPDATE SET
			     name = excluded.name,
			     category = excluded.category,
			     unit = excluded.unit,
			     quantity = excluded.quantity,
			     last_updated = excluded.last_updated`,
			r.ItemID, string(r.Location), r.Name, r.Category, r.Unit, r.Quantity, r.LastUpdated.UTC(),
		)
		if err != nil {
			return fmt.Errorf("saving inventory %s at %s: %w", r.ItemID, r.Location, err)
		}
	}
	return nil
}
