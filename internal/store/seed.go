package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/slocops/handover/internal/model"
)

// Seed loads the demo inventory and handover log into an empty database.
// It reports whether anything was inserted.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM inventory) + (SELECT COUNT(*) FROM handovers)`,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking for existing data: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if err := SaveInventoryRecords(ctx, db, model.SeedInventory()); err != nil {
		return false, fmt.Errorf("seeding inventory: %w", err)
	}
	for _, h := range model.SeedHandovers() {
		if err := InsertHandover(ctx, db, h); err != nil {
			return false, fmt.Errorf("seeding handovers: %w", err)
		}
	}
	return true, nil
}
