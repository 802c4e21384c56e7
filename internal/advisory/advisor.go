package advisory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/slocops/handover/internal/metrics"
	"github.com/slocops/handover/internal/model"
)

var tracer = otel.Tracer("handover.advisory")

// Cache stores generated insights between calls.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Advisor produces handover summaries and inventory insights. Its methods
// never fail: errors are logged and replaced by fixed fallback text.
type Advisor struct {
	Generator Generator
	// Cache is optional.
	Cache Cache
	// Timeout bounds each generation call. Zero means no extra bound.
	Timeout time.Duration
	// CacheTTL is how long cached insights stay valid.
	CacheTTL time.Duration
}

// HandoverSummary returns a prose summary of a handover.
func (a *Advisor) HandoverSummary(ctx context.Context, rec model.HandoverRecord) string {
	ctx, span := tracer.Start(ctx, "advisory.HandoverSummary",
		trace.WithAttributes(
			attribute.String("handover.id", rec.ID),
			attribute.Int("handover.lines", len(rec.Lines)),
		),
	)
	defer span.End()

	text, err := a.generate(ctx, "summary", handoverPrompt(rec))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("handover summary generation failed", "id", rec.ID, "error", err)
		metrics.AdvisoryRequests.WithLabelValues("summary", "fallback").Inc()
		return FallbackHandoverSummary
	}
	metrics.AdvisoryRequests.WithLabelValues("summary", "ok").Inc()
	if text == "" {
		return EmptyHandoverSummary
	}
	return text
}

// InventoryInsights returns short observations on stock levels and the
// balance between locations.
func (a *Advisor) InventoryInsights(ctx context.Context, records []model.InventoryRecord) string {
	ctx, span := tracer.Start(ctx, "advisory.InventoryInsights",
		trace.WithAttributes(attribute.Int("inventory.records", len(records))),
	)
	defer span.End()

	data, err := json.Marshal(insightRows(records))
	if err != nil {
		slog.Error("failed to encode inventory for insights", "error", err)
		return FallbackInsights
	}
	key := insightsKey(data)

	if a.Cache != nil {
		cached, ok, err := a.Cache.Get(ctx, key)
		if err != nil {
			slog.Warn("insights cache lookup failed", "error", err)
		} else if ok {
			metrics.AdvisoryRequests.WithLabelValues("insights", "cached").Inc()
			return cached
		}
	}

	text, err := a.generate(ctx, "insights", insightsPrompt(data))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Warn("inventory insights generation failed", "error", err)
		metrics.AdvisoryRequests.WithLabelValues("insights", "fallback").Inc()
		return FallbackInsights
	}
	metrics.AdvisoryRequests.WithLabelValues("insights", "ok").Inc()
	if text == "" {
		return EmptyInsights
	}

	if a.Cache != nil {
		if err := a.Cache.Set(ctx, key, text, a.CacheTTL); err != nil {
			slog.Warn("insights cache store failed", "error", err)
		}
	}
	return text
}

func (a *Advisor) generate(ctx context.Context, kind, prompt string) (string, error) {
	gen := a.Generator
	if gen == nil {
		gen = Unavailable{}
	}
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := gen.Generate(ctx, prompt)
	metrics.AdvisoryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	return text, err
}

func insightsKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "handover:insights:" + hex.EncodeToString(sum[:])
}
