package inventory

import (
	"strings"

	"github.com/slocops/handover/internal/model"
)

// Filter narrows Search results. Zero values match everything.
type Filter struct {
	Location model.Location
	// Query matches case-insensitively against item ID, name or category.
	Query string
}

func (f Filter) match(r *model.InventoryRecord) bool {
	if f.Location != "" && r.Location != f.Location {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ItemID), q) ||
		strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Category), q)
}

// Search returns copies of the records matching f, sorted by item ID.
func (s *Store) Search(f Filter) []model.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.InventoryRecord, 0, len(s.records))
	for _, r := range s.records {
		if f.match(r) {
			out = append(out, *r)
		}
	}
	sortRecords(out)
	return out
}
