package app

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"healthhub/internal/domain"
	"healthhub/internal/export"
	"healthhub/internal/task"
)

// Exporter encodes a user's data and stores it as an artifact.
type Exporter struct {
	repo      domain.HealthRepository
	artifacts domain.ArtifactStore
	prefix    string
	now       func() time.Time
}

// NewExporter creates an Exporter. Artifacts are stored under prefix.
func NewExporter(repo domain.HealthRepository, artifacts domain.ArtifactStore, prefix string) *Exporter {
	return &Exporter{repo: repo, artifacts: artifacts, prefix: prefix, now: time.Now}
}

// ExportService produces export artifacts in the background.
type ExportService struct {
	*Exporter
	runner *task.Runner
	delay  time.Duration
}

// NewExportService creates an ExportService. Artifacts are stored under prefix.
func NewExportService(repo domain.HealthRepository, artifacts domain.ArtifactStore, runner *task.Runner, delay time.Duration, prefix string) *ExportService {
	return &ExportService{
		Exporter: NewExporter(repo, artifacts, prefix),
		runner:   runner,
		delay:    delay,
	}
}

// Start validates format and range and starts an export task. The range is
// recorded on the artifact but does not filter the data.
func (s *ExportService) Start(ctx context.Context, format domain.ExportFormat, rng domain.ExportRange) (*task.Handle, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := export.Lookup(format); err != nil {
		return nil, err
	}
	if _, err := domain.ParseExportRange(string(rng)); err != nil {
		return nil, err
	}
	if rng == "" {
		rng = domain.RangeAll
	}
	u := *user
	return s.runner.Start(KindExport, user.ID, func(ctx context.Context) (any, error) {
		if err := task.Sleep(ctx, s.delay); err != nil {
			return nil, err
		}
		return s.Produce(ctx, &u, format, rng)
	})
}

// Produce builds and stores one artifact synchronously.
func (s *Exporter) Produce(ctx context.Context, user *domain.User, format domain.ExportFormat, rng domain.ExportRange) (domain.Artifact, error) {
	data, err := s.repo.Snapshot(ctx, user.ID, domain.DefaultPeriod)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("load export data: %w", err)
	}
	meta := export.Meta{Username: user.Username, Range: rng, GeneratedAt: s.now()}
	f, body, err := export.Encode(format, data, meta)
	if err != nil {
		return domain.Artifact{}, err
	}
	key := path.Join(s.prefix, fmt.Sprint(user.ID), uuid.NewString()+"."+f.Ext)
	if err := s.artifacts.Put(ctx, key, f.ContentType, body); err != nil {
		return domain.Artifact{}, fmt.Errorf("store export: %w", err)
	}
	return domain.Artifact{
		Key:         key,
		Format:      format,
		Range:       rng,
		ContentType: f.ContentType,
		Filename:    f.Filename(meta),
		Size:        len(body),
		CreatedAt:   meta.GeneratedAt,
	}, nil
}

// Download returns the artifact and contents of a finished export task owned
// by the user in ctx.
func (s *ExportService) Download(ctx context.Context, taskID string) (domain.Artifact, []byte, error) {
	user, err := requireUser(ctx)
	if err != nil {
		return domain.Artifact{}, nil, err
	}
	h, err := s.runner.GetOwned(taskID, user.ID)
	if err != nil {
		return domain.Artifact{}, nil, err
	}
	info := h.Info()
	art, ok := info.Result.(domain.Artifact)
	if info.Kind != KindExport || info.Status != task.StatusSucceeded || !ok {
		return domain.Artifact{}, nil, domain.ErrArtifactNotFound
	}
	body, err := s.artifacts.Get(ctx, art.Key)
	if err != nil {
		return domain.Artifact{}, nil, err
	}
	return art, body, nil
}
