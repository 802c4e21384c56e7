// Package events publishes handover notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/slocops/handover/internal/model"
)

// DefaultTopic is used when no topic is configured.
const DefaultTopic = "handover.completed"

// HandoverCompleted is the payload published for every completed handover.
type HandoverCompleted struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Date       time.Time            `json:"date"`
	From       model.Location       `json:"from_location"`
	To         model.Location       `json:"to_location"`
	Sender     string               `json:"sender_name"`
	Receiver   string               `json:"receiver_name"`
	Lines      []model.HandoverLine `json:"lines"`
	TotalUnits int                  `json:"total_units"`
	Summary    string               `json:"summary"`
}

// NewHandoverCompleted builds the event payload for a record.
func NewHandoverCompleted(rec model.HandoverRecord) HandoverCompleted {
	return HandoverCompleted{
		Type:       "HandoverCompleted",
		ID:         rec.ID,
		Date:       rec.Date,
		From:       rec.From,
		To:         rec.To,
		Sender:     rec.SenderName,
		Receiver:   rec.ReceiverName,
		Lines:      rec.Lines,
		TotalUnits: rec.TotalQuantity(),
		Summary:    rec.Summary,
	}
}

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes handover events keyed by handover ID.
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a publisher writing to topic on the given brokers.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish sends a HandoverCompleted event for rec.
func (p *KafkaPublisher) Publish(ctx context.Context, rec model.HandoverRecord) error {
	value, err := json.Marshal(NewHandoverCompleted(rec))
	if err != nil {
		return fmt.Errorf("encoding handover event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(rec.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("HandoverCompleted")},
		},
	})
	if err != nil {
		return fmt.Errorf("writing handover event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
