package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slocops/handover/internal/model"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(model.SeedInventory())
	s.SetClock(func() time.Time { return fixedNow })
	return s
}

func TestFindExactMatch(t *testing.T) {
	s := newTestStore(t)

	r, ok := s.Find("ITM001", model.LocationMain)
	require.True(t, ok)
	assert.Equal(t, 15, r.Quantity)

	_, ok = s.Find("ITM001", model.LocationSecondary)
	assert.False(t, ok, "ITM001 has no record at 1001")

	_, ok = s.Find("itm001", model.LocationMain)
	assert.False(t, ok, "lookup must be exact")
}

func TestListByLocation(t *testing.T) {
	s := newTestStore(t)

	main := s.ListByLocation(model.LocationMain)
	require.Len(t, main, 3)
	assert.Equal(t, "ITM001", main[0].ItemID)
	assert.Equal(t, "ITM002", main[1].ItemID)
	assert.Equal(t, "ITM005", main[2].ItemID)

	for _, r := range s.ListByLocation(model.LocationSecondary) {
		assert.Equal(t, model.LocationSecondary, r.Location)
	}
}

func TestApplyDeltaUpdatesQuantity(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ApplyDelta("ITM002", model.LocationMain, -4))

	r, _ := s.Find("ITM002", model.LocationMain)
	assert.Equal(t, 16, r.Quantity)
	assert.Equal(t, fixedNow, r.LastUpdated)
}

func TestApplyDeltaClonesFromOtherLocation(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ApplyDelta("ITM001", model.LocationSecondary, 5))

	r, ok := s.Find("ITM001", model.LocationSecondary)
	require.True(t, ok)
	assert.Equal(t, "MacBook Pro M2", r.Name)
	assert.Equal(t, "Laptop", r.Category)
	assert.Equal(t, "Unit", r.Unit)
	assert.Equal(t, 5, r.Quantity)
	assert.Equal(t, fixedNow, r.LastUpdated)
}

func TestApplyDeltaUnknownItemCreatesNothing(t *testing.T) {
	s := newTestStore(t)
	before := len(s.List())

	err := s.ApplyDelta("NOPE", model.LocationMain, 3)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Len(t, s.List(), before)
}

func TestApplyDeltaNegativeMissingRecord(t *testing.T) {
	s := newTestStore(t)

	err := s.ApplyDelta("ITM001", model.LocationSecondary, -1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestApplyDeltaRejectsNegativeResult(t *testing.T) {
	s := newTestStore(t)

	err := s.ApplyDelta("ITM005", model.LocationMain, -6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	r, _ := s.Find("ITM005", model.LocationMain)
	assert.Equal(t, 5, r.Quantity, "failed delta must not change quantity")
}

func TestFindReturnsCopy(t *testing.T) {
	s := newTestStore(t)

	r, _ := s.Find("ITM001", model.LocationMain)
	r.Quantity = 0

	again, _ := s.Find("ITM001", model.LocationMain)
	assert.Equal(t, 15, again.Quantity)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)

	got := s.Search(Filter{Query: "network"})
	require.Len(t, got, 2)

	got = s.Search(Filter{Query: "network", Location: model.LocationSecondary})
	require.Len(t, got, 1)
	assert.Equal(t, "ITM006", got[0].ItemID)

	got = s.Search(Filter{Query: "itm003"})
	require.Len(t, got, 1)
	assert.Equal(t, "Logitech MX Master 3S", got[0].Name)
}

func TestBatchIsExclusive(t *testing.T) {
	s := newTestStore(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Batch(func(tx *Tx) error {
			close(entered)
			<-release
			if err := tx.ApplyDelta("ITM001", model.LocationMain, -5); err != nil {
				return err
			}
			return tx.ApplyDelta("ITM001", model.LocationSecondary, 5)
		})
	}()
	<-entered

	var seen int
	secondDone := make(chan error, 1)
	go func() {
		secondDone <- s.Batch(func(tx *Tx) error {
			r, _ := tx.Find("ITM001", model.LocationMain)
			seen = r.Quantity
			return nil
		})
	}()

	select {
	case <-secondDone:
		t.Fatal("second batch ran while the first held the store")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
	assert.Equal(t, 10, seen, "second batch observes the first batch's writes")

	from, _ := s.Find("ITM001", model.LocationMain)
	to, _ := s.Find("ITM001", model.LocationSecondary)
	assert.Equal(t, 15, from.Quantity+to.Quantity)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	st := s.Stats()
	assert.Equal(t, 132, st.TotalUnits)
	assert.Equal(t, 40, st.ByLocation[model.LocationMain])
	assert.Equal(t, 92, st.ByLocation[model.LocationSecondary])
	assert.Equal(t, 6, st.DistinctItems)
	assert.Equal(t, 1, st.LowStockCount)
	assert.Equal(t, "ITM005", st.LowStock[0].ItemID)

	require.Len(t, st.Categories, 4)
	assert.Equal(t, "Laptop", st.Categories[0].Category)
	net := st.Categories[2]
	assert.Equal(t, "Networking", net.Category)
	assert.Equal(t, 5, net.ByLocation[model.LocationMain])
	assert.Equal(t, 12, net.ByLocation[model.LocationSecondary])
	assert.Equal(t, 17, net.Total)
}
