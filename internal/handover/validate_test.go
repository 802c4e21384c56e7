package handover

import (
	"errors"
	"testing"

	"github.com/slocops/handover/internal/model"
)

func TestValidate(t *testing.T) {
	valid := func() model.HandoverRequest {
		return request(model.LocationMain, model.LocationSecondary, line("ITM001", 1))
	}

	tests := []struct {
		name   string
		mutate func(r *model.HandoverRequest)
		want   error
	}{
		{"valid", func(r *model.HandoverRequest) {}, nil},
		{"missing sender", func(r *model.HandoverRequest) { r.SenderName = "" }, ErrMissingSender},
		{"missing receiver", func(r *model.HandoverRequest) { r.ReceiverName = "" }, ErrMissingReceiver},
		{"missing from", func(r *model.HandoverRequest) { r.From = "" }, ErrInvalidLocation},
		{"unknown to", func(r *model.HandoverRequest) { r.To = "2000" }, ErrInvalidLocation},
		{"same location", func(r *model.HandoverRequest) { r.To = r.From }, ErrSameLocation},
		{"nil lines", func(r *model.HandoverRequest) { r.Lines = nil }, ErrNoLines},
		{"missing item id", func(r *model.HandoverRequest) { r.Lines[0].ItemID = "" }, ErrMissingItemID},
		{"zero quantity", func(r *model.HandoverRequest) { r.Lines[0].Quantity = 0 }, ErrInvalidQuantity},
		{"negative quantity", func(r *model.HandoverRequest) { r.Lines[0].Quantity = -3 }, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		req := valid()
		tt.mutate(&req)
		err := Validate(req)
		if tt.want == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: %v does not wrap ErrInvalidRequest", tt.name, err)
		}
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrMissingSender, "missing_sender"},
		{ErrSameLocation, "same_location"},
		{ErrInsufficientStock, "insufficient_stock"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := Reason(tt.err); got != tt.want {
			t.Errorf("Reason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
