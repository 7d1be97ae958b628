package main

import (
	"context"
	"fmt"
	"log/slog"

	"healthhub/internal/adapter/memory"
	"healthhub/internal/adapter/natsbus"
	"healthhub/internal/adapter/s3store"
	"healthhub/internal/adapter/sqldb"
	"healthhub/internal/config"
	"healthhub/internal/domain"
)

// backend bundles the driven adapters selected by configuration.
type backend struct {
	health    domain.HealthRepository
	users     domain.UserRepository
	artifacts domain.ArtifactStore
	events    domain.EventPublisher
	closers   []func() error
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{events: domain.NopPublisher{}}

	switch cfg.Store.Driver {
	case "memory":
		db := memory.New(memory.WithLatency(cfg.Store.FetchLatency.Std()))
		b.health, b.users = db, db
	default:
		db, err := sqldb.Open(ctx, cfg.Store.Driver, cfg.Store.DSN, sqldb.WithDemoSeed())
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		b.health, b.users = db, db
		b.closers = append(b.closers, db.Close)
	}
	slog.Info("store initialized", "driver", cfg.Store.Driver)

	if cfg.S3.Enabled() {
		st, err := s3store.New(ctx, s3store.Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
		})
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open s3: %w", err)
		}
		b.artifacts = st
		slog.Info("export artifacts in s3", "bucket", cfg.S3.Bucket)
	} else {
		b.artifacts = memory.NewArtifacts()
	}

	if cfg.NATS.URL != "" {
		bus, err := natsbus.Connect(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		b.events = bus
		b.closers = append(b.closers, bus.Close)
		slog.Info("publishing events to nats", "url", cfg.NATS.URL)
	}
	return b, nil
}

// Close releases adapters in reverse order of opening.
func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			slog.Error("close backend", "error", err)
		}
	}
	b.closers = nil
}
