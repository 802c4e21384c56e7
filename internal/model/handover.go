package model

import "time"

// HandoverStatus is the lifecycle state of a handover.
type HandoverStatus string

// Handover statuses.
const (
	HandoverStatusDraft     HandoverStatus = "Draft"
	HandoverStatusCompleted HandoverStatus = "Completed"
)

// UnknownItemName is recorded for lines whose item cannot be resolved.
const UnknownItemName = "Unknown"

// HandoverLine is one item moved by a handover.
type HandoverLine struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// HandoverRecord is an entry in the handover log.
type HandoverRecord struct {
	ID           string         `json:"id"`
	Date         time.Time      `json:"date"`
	From         Location       `json:"from_location"`
	To           Location       `json:"to_location"`
	Lines        []HandoverLine `json:"lines"`
	SenderName   string         `json:"sender_name"`
	ReceiverName string         `json:"receiver_name"`
	Status       HandoverStatus `json:"status"`
	Summary      string         `json:"summary,omitempty"`
}

// TotalQuantity returns the sum of all line quantities.
func (h HandoverRecord) TotalQuantity() int {
	total := 0
	for _, l := range h.Lines {
		total += l.Quantity
	}
	return total
}

// Clone returns a deep copy so callers cannot alias log storage.
func (h HandoverRecord) Clone() HandoverRecord {
	c := h
	c.Lines = append([]HandoverLine(nil), h.Lines...)
	return c
}

// RequestLine is a requested item and quantity.
type RequestLine struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// HandoverRequest is a proposed handover before it is processed.
type HandoverRequest struct {
	SenderName   string        `json:"sender_name" validate:"required"`
	ReceiverName string        `json:"receiver_name" validate:"required"`
	From         Location      `json:"from_location" validate:"required,location"`
	To           Location      `json:"to_location" validate:"required,location,nefield=From"`
	Lines        []RequestLine `json:"lines" validate:"required,min=1,dive"`
}
