package handover

import (
	"errors"
	"fmt"

	"github.com/slocops/handover/internal/inventory"
)

// ErrInvalidRequest is wrapped by every validation failure.
var ErrInvalidRequest = errors.New("invalid handover request")

// Validation failures, one per violated precondition.
var (
	ErrMissingSender   = fmt.Errorf("%w: sender name is required", ErrInvalidRequest)
	ErrMissingReceiver = fmt.Errorf("%w: receiver name is required", ErrInvalidRequest)
	ErrNoLines         = fmt.Errorf("%w: at least one item is required", ErrInvalidRequest)
	ErrInvalidLocation = fmt.Errorf("%w: location must be 1000 or 1001", ErrInvalidRequest)
	ErrSameLocation    = fmt.Errorf("%w: from and to locations must differ", ErrInvalidRequest)
	ErrMissingItemID   = fmt.Errorf("%w: item id is required", ErrInvalidRequest)
	ErrInvalidQuantity = fmt.Errorf("%w: quantity must be at least 1", ErrInvalidRequest)
)

// ErrInsufficientStock is returned when the sending location cannot cover
// the requested quantity of an item. The request is rejected as a whole.
var ErrInsufficientStock = inventory.ErrInsufficientStock

var reasons = []struct {
	err  error
	code string
}{
	{ErrMissingSender, "missing_sender"},
	{ErrMissingReceiver, "missing_receiver"},
	{ErrNoLines, "no_lines"},
	{ErrInvalidLocation, "invalid_location"},
	{ErrSameLocation, "same_location"},
	{ErrMissingItemID, "missing_item_id"},
	{ErrInvalidQuantity, "invalid_quantity"},
	{ErrInsufficientStock, "insufficient_stock"},
	{ErrInvalidRequest, "invalid_request"},
}

// Reason returns a stable machine-readable code for a rejection error,
// or "internal" for anything else.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.code
		}
	}
	return "internal"
}
