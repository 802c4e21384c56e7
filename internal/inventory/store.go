// Package inventory holds current stock levels per item and location.
package inventory

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slocops/handover/internal/model"
)

var (
	// ErrUnknownItem is returned when a record must be created but no
	// record for the item exists at any location to clone metadata from.
	ErrUnknownItem = errors.New("unknown item")
	// ErrRecordNotFound is returned when stock is removed from a missing record.
	ErrRecordNotFound = errors.New("inventory record not found")
	// ErrInsufficientStock is returned when a delta would make quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

type key struct {
	itemID   string
	location model.Location
}

// Store is an in-memory inventory keyed by (item, location).
type Store struct {
	mu      sync.RWMutex
	records map[key]*model.InventoryRecord
	now     func() time.Time
}

// New creates a store holding copies of the given records.
// Later duplicates of the same (item, location) replace earlier ones.
func New(records []model.InventoryRecord) *Store {
	s := &Store{
		records: make(map[key]*model.InventoryRecord, len(records)),
		now:     time.Now,
	}
	for _, r := range records {
		rec := r
		s.records[key{r.ItemID, r.Location}] = &rec
	}
	return s
}

// SetClock overrides the time source used for LastUpdated.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Find returns the record for an exact (item, location) match.
func (s *Store) Find(itemID string, loc model.Location) (model.InventoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.find(itemID, loc)
}

// FindAny returns a record for the item at any location, preferring the
// main location.
func (s *Store) FindAny(itemID string) (model.InventoryRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findAny(itemID)
}

// ListByLocation returns the records at one location, sorted by item ID.
func (s *Store) ListByLocation(loc model.Location) []model.InventoryRecord {
	return s.Search(Filter{Location: loc})
}

// List returns all records sorted by item ID, then location.
func (s *Store) List() []model.InventoryRecord {
	return s.Search(Filter{})
}

// ApplyDelta adds delta to the quantity at (item, location) and refreshes
// LastUpdated. A missing record is created for positive deltas by cloning
// name, category and unit from the item's record at the other location.
func (s *Store) ApplyDelta(itemID string, loc model.Location, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyDelta(itemID, loc, delta)
}

// Batch runs fn with exclusive access to the store. All reads and writes
// made through tx happen inside one critical section.
func (s *Store) Batch(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

// Tx is the view of the store passed to Batch callbacks.
// It must not be retained after the callback returns.
type Tx struct {
	s *Store
}

// Find is Store.Find without locking.
func (tx *Tx) Find(itemID string, loc model.Location) (model.InventoryRecord, bool) {
	return tx.s.find(itemID, loc)
}

// FindAny is Store.FindAny without locking.
func (tx *Tx) FindAny(itemID string) (model.InventoryRecord, bool) {
	return tx.s.findAny(itemID)
}

// ApplyDelta is Store.ApplyDelta without locking.
func (tx *Tx) ApplyDelta(itemID string, loc model.Location, delta int) error {
	return tx.s.applyDelta(itemID, loc, delta)
}

func (s *Store) find(itemID string, loc model.Location) (model.InventoryRecord, bool) {
	r, ok := s.records[key{itemID, loc}]
	if !ok {
		return model.InventoryRecord{}, false
	}
	return *r, true
}

func (s *Store) findAny(itemID string) (model.InventoryRecord, bool) {
	for _, loc := range model.Locations {
		if r, ok := s.records[key{itemID, loc}]; ok {
			return *r, true
		}
	}
	return model.InventoryRecord{}, false
}

func (s *Store) applyDelta(itemID string, loc model.Location, delta int) error {
	if delta == 0 {
		return nil
	}

	r, ok := s.records[key{itemID, loc}]
	if ok {
		if r.Quantity+delta < 0 {
			return fmt.Errorf("%w: %s at %s: have %d, need %d", ErrInsufficientStock, itemID, loc, r.Quantity, -delta)
		}
		r.Quantity += delta
		r.LastUpdated = s.now()
		return nil
	}

	if delta < 0 {
		return fmt.Errorf("%w: %s at %s", ErrRecordNotFound, itemID, loc)
	}

	src, ok := s.records[key{itemID, loc.Other()}]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	s.records[key{itemID, loc}] = &model.InventoryRecord{
		ItemID:      itemID,
		Name:        src.Name,
		Category:    src.Category,
		Unit:        src.Unit,
		Location:    loc,
		Quantity:    delta,
		LastUpdated: s.now(),
	}
	return nil
}

func sortRecords(records []model.InventoryRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].ItemID != records[j].ItemID {
			return records[i].ItemID < records[j].ItemID
		}
		return records[i].Location < records[j].Location
	})
}
