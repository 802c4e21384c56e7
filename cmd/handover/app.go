package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/slocops/handover/internal/advisory"
	"github.com/slocops/handover/internal/cache"
	"github.com/slocops/handover/internal/config"
	"github.com/slocops/handover/internal/db"
	"github.com/slocops/handover/internal/events"
	"github.com/slocops/handover/internal/handover"
	"github.com/slocops/handover/internal/inventory"
	"github.com/slocops/handover/internal/store"
)

// app is the wired service: database, in-memory state and collaborators.
type app struct {
	db        *sql.DB
	store     *inventory.Store
	log       *handover.Log
	advisor   *advisory.Advisor
	processor *handover.Processor

	closers []io.Closer
}

// openDatabase opens the database, ensures the schema and seeds demo data
// into an empty database.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	seeded, err := store.Seed(ctx, database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("seeding database: %w", err)
	}
	if seeded {
		slog.Info("database seeded with demo data", "path", path)
	}
	return database, nil
}

// newApp loads persisted state into memory and wires the processor.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	database, err := openDatabase(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a := &app{db: database, closers: []io.Closer{database}}

	records, err := store.LoadInventory(ctx, database)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading inventory: %w", err)
	}
	history, err := store.ListHandovers(ctx, database)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading handovers: %w", err)
	}
	a.store = inventory.New(records)
	a.log = handover.NewLog(history)
	slog.Info("state loaded", "path", cfg.DBPath, "records", len(records), "handovers", len(history))

	a.advisor = a.newAdvisor(ctx, cfg)

	a.processor = &handover.Processor{
		Store:      a.store,
		Log:        a.log,
		Summarizer: a.advisor,
		Persister:  &store.Persister{DB: database},
	}
	if len(cfg.Kafka.Brokers) > 0 {
		pub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		a.processor.Publisher = pub
		// Closed before the database so pending writes flush first.
		a.closers = append([]io.Closer{pub}, a.closers...)
		slog.Info("handover events enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	return a, nil
}

// newAdvisor builds the advisor. A missing API key or an unreachable cache
// degrade the advisor rather than failing startup.
func (a *app) newAdvisor(ctx context.Context, cfg *config.Config) *advisory.Advisor {
	adv := &advisory.Advisor{
		Generator: advisory.Unavailable{},
		Timeout:   cfg.Advisory.Timeout,
		CacheTTL:  cfg.Advisory.InsightsTTL,
	}

	if cfg.Advisory.APIKey == "" {
		slog.Warn("no advisory API key configured, summaries will use fallback text")
	} else {
		gen, err := advisory.NewOpenAIGenerator(cfg.Advisory.APIKey, cfg.Advisory.BaseURL, cfg.Advisory.Model)
		if err != nil {
			slog.Error("failed to configure advisory generator", "error", err)
		} else {
			adv.Generator = gen
		}
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("insights cache disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			adv.Cache = rdb
			a.closers = append(a.closers, rdb)
			slog.Info("insights cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Advisory.InsightsTTL)
		}
	}

	return adv
}

// Close waits for pending enrichments and releases resources in order.
func (a *app) Close() error {
	if a.processor != nil {
		a.processor.Wait()
	}
	var errs error
	for _, c := range a.closers {
		errs = errors.Join(errs, c.Close())
	}
	return errs
}
