// Package handover applies stock transfers between storage locations and
// keeps the handover log.
package handover

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/slocops/handover/internal/advisory"
	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/metrics"
	"github.com/slocops/handover/internal/model"
)

var tracer = otel.Tracer("handover")

// Summarizer produces the advisory summary attached to a handover.
// It must always return text, substituting a fallback on failure.
type Summarizer interface {
	HandoverSummary(ctx context.Context, rec model.HandoverRecord) string
}

// Persister records handovers and the inventory rows they touched.
type Persister interface {
	SaveHandover(ctx context.Context, rec model.HandoverRecord, touched []model.InventoryRecord) error
	SetSummary(ctx context.Context, id, summary string) error
}

// Publisher announces completed handovers to other systems.
type Publisher interface {
	Publish(ctx context.Context, rec model.HandoverRecord) error
}

// Processor validates and applies handovers. Store and Log are required;
// the remaining collaborators are optional.
type Processor struct {
	Store      *inventory.Store
	Log        *Log
	Summarizer Summarizer
	Persister  Persister
	Publisher  Publisher

	now   func() time.Time
	newID func() string
	wg    sync.WaitGroup
}

// Process validates req, moves stock from req.From to req.To and appends
// a Completed record to the log. Rejected requests leave the store and log
// untouched. The advisory summary is attached asynchronously; see Wait.
func (p *Processor) Process(ctx context.Context, req model.HandoverRequest) (model.HandoverRecord, error) {
	ctx, span := tracer.Start(ctx, "handover.Process",
		trace.WithAttributes(
			attribute.String("handover.from", string(req.From)),
			attribute.String("handover.to", string(req.To)),
			attribute.Int("handover.lines", len(req.Lines)),
		),
	)
	defer span.End()

	req = Normalize(req)
	rec, err := p.apply(context.WithoutCancel(ctx), req)
	if err != nil {
		reason := Reason(err)
		metrics.HandoversRejected.WithLabelValues(reason).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
		return model.HandoverRecord{}, err
	}
	span.SetAttributes(attribute.String("handover.id", rec.ID))

	metrics.HandoversCompleted.Inc()
	metrics.UnitsTransferred.WithLabelValues(string(rec.From), string(rec.To)).Add(float64(rec.TotalQuantity()))
	slog.Info("handover completed", "id", rec.ID,
		"from", rec.From, "to", rec.To, "lines", len(rec.Lines), "units", rec.TotalQuantity(),
		"sender", rec.SenderName, "receiver", rec.ReceiverName)

	p.wg.Add(1)
	go p.enrich(context.WithoutCancel(ctx), rec.Clone())

	return rec, nil
}

// Wait blocks until all pending summary enrichments have finished.
func (p *Processor) Wait() {
	p.wg.Wait()
}

// apply runs validation, the stock check, the mutation and the database
// write inside one critical section of the store, so rows reach the
// database in the order they changed in memory.
func (p *Processor) apply(ctx context.Context, req model.HandoverRequest) (model.HandoverRecord, error) {
	if err := Validate(req); err != nil {
		return model.HandoverRecord{}, err
	}

	var rec model.HandoverRecord

	err := p.Store.Batch(func(tx *inventory.Tx) error {
		id := p.nextID()
		if p.Log.Has(id) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}

		lines := make([]model.HandoverLine, len(req.Lines))
		demand := make(map[string]int, len(req.Lines))
		var order []string
		for i, l := range req.Lines {
			name := model.UnknownItemName
			if r, ok := tx.FindAny(l.ItemID); ok {
				name = r.Name
			}
			lines[i] = model.HandoverLine{ItemID: l.ItemID, ItemName: name, Quantity: l.Quantity}

			src, ok := tx.Find(l.ItemID, req.From)
			if !ok {
				return fmt.Errorf("%w: %s has no stock at %s", ErrInsufficientStock, l.ItemID, req.From)
			}
			// Compared against what is left so the running demand never
			// exceeds the stock and cannot overflow.
			if l.Quantity > src.Quantity-demand[l.ItemID] {
				return fmt.Errorf("%w: %s at %s: have %d, need %d more after %d",
					ErrInsufficientStock, l.ItemID, req.From, src.Quantity, l.Quantity, demand[l.ItemID])
			}
			if _, seen := demand[l.ItemID]; !seen {
				order = append(order, l.ItemID)
			}
			demand[l.ItemID] += l.Quantity
		}

		for _, l := range lines {
			if err := tx.ApplyDelta(l.ItemID, req.From, -l.Quantity); err != nil {
				return fmt.Errorf("decrementing %s at %s: %w", l.ItemID, req.From, err)
			}
			if err := tx.ApplyDelta(l.ItemID, req.To, l.Quantity); err != nil {
				return fmt.Errorf("incrementing %s at %s: %w", l.ItemID, req.To, err)
			}
		}

		var touched []model.InventoryRecord
		for _, itemID := range order {
			for _, loc := range []model.Location{req.From, req.To} {
				if r, ok := tx.Find(itemID, loc); ok {
					touched = append(touched, r)
				}
			}
		}

		rec = model.HandoverRecord{
			ID:           id,
			Date:         p.clock(),
			From:         req.From,
			To:           req.To,
			Lines:        lines,
			SenderName:   req.SenderName,
			ReceiverName: req.ReceiverName,
			Status:       model.HandoverStatusCompleted,
		}
		if err := p.Log.Append(rec); err != nil {
			return err
		}

		if p.Persister != nil {
			if err := p.Persister.SaveHandover(ctx, rec, touched); err != nil {
				slog.Error("failed to persist handover", "id", rec.ID, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return model.HandoverRecord{}, err
	}
	return rec, nil
}

// enrich fetches the advisory summary, attaches it to the logged record and
// announces the handover. Failures here never affect the stored outcome.
func (p *Processor) enrich(ctx context.Context, rec model.HandoverRecord) {
	defer p.wg.Done()

	ctx, span := tracer.Start(ctx, "handover.enrich",
		trace.WithAttributes(attribute.String("handover.id", rec.ID)),
	)
	defer span.End()

	summary := advisory.FallbackHandoverSummary
	if p.Summarizer != nil {
		summary = p.Summarizer.HandoverSummary(ctx, rec)
	}
	if summary == "" {
		summary = advisory.EmptyHandoverSummary
	}
	if !p.Log.AttachSummary(rec.ID, summary) {
		slog.Warn("handover summary not attached", "id", rec.ID)
		return
	}
	rec.Summary = summary

	if p.Persister != nil {
		if err := p.Persister.SetSummary(ctx, rec.ID, summary); err != nil {
			slog.Error("failed to persist handover summary", "id", rec.ID, "error", err)
		}
	}

	if p.Publisher != nil {
		if err := p.Publisher.Publish(ctx, rec); err != nil {
			metrics.EventsPublished.WithLabelValues("error").Inc()
			slog.Error("failed to publish handover event", "id", rec.ID, "error", err)
			return
		}
		metrics.EventsPublished.WithLabelValues("ok").Inc()
	}
}

func (p *Processor) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func (p *Processor) nextID() string {
	if p.newID != nil {
		return p.newID()
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "HND-" + uuid.NewString()
	}
	return "HND-" + id.String()
}
