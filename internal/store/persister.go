package store

import (
	"context"
	"database/sql"

	"github.com/slocops/handover/internal/model"
)

// Persister writes processed handovers to the database.
type Persister struct {
	DB *sql.DB
}

// SaveHandover records the handover and the inventory rows it touched.
func (p *Persister) SaveHandover(ctx context.Context, rec model.HandoverRecord, touched []model.InventoryRecord) error {
	return SaveHandover(ctx, p.DB, rec, touched)
}

// SetSummary stores the advisory summary of a handover.
func (p *Persister) SetSummary(ctx context.Context, id, summary string) error {
	return SetHandoverSummary(ctx, p.DB, id, summary)
}
