package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	analytics "github.com/smallbiznis/shopdesk/internal/analytics/domain"
	catalog "github.com/smallbiznis/shopdesk/internal/catalog/domain"
	"github.com/smallbiznis/shopdesk/internal/clock"
	"github.com/smallbiznis/shopdesk/internal/config"
	"github.com/smallbiznis/shopdesk/internal/export/domain"
	"github.com/smallbiznis/shopdesk/internal/export/registry"
	"github.com/smallbiznis/shopdesk/internal/export/render"
	"github.com/smallbiznis/shopdesk/internal/export/rows"
	"github.com/smallbiznis/shopdesk/internal/observability/logger"
	"github.com/smallbiznis/shopdesk/internal/observability/metrics"
	"github.com/smallbiznis/shopdesk/internal/observability/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Config   *config.ExportConfigHolder
	GenID    *snowflake.Node
	Registry *registry.Registry
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	clock   clock.Clock
	cfg     *config.ExportConfigHolder
	genID   *snowflake.Node
	metrics *metrics.Metrics
	tracer  trace.Tracer

	workbook *render.Workbook
	document *render.Document
	archive  *render.Archive

	// mu serializes every registry access.
	mu       sync.Mutex
	registry *registry.Registry
}

func New(p Params) domain.Service {
	return &Service{
		log:      p.Log.Named("export.service"),
		clock:    p.Clock,
		cfg:      p.Config,
		genID:    p.GenID,
		metrics:  p.Metrics,
		tracer:   otel.Tracer("shopdesk/export"),
		workbook: render.NewWorkbook(),
		document: render.NewDocument(),
		archive:  render.NewArchive(p.Clock),
		registry: p.Registry,
	}
}

func (s *Service) DefaultRange() analytics.DateRange {
	return analytics.LastDays(clock.Today(s.clock), s.cfg.Get().DefaultRangeDays)
}

// Run executes one export. The registry is only touched when serialization
// succeeds, so every non-success outcome leaves it unchanged.
func (s *Service) Run(ctx context.Context, snapshot catalog.Snapshot, req domain.Request) domain.Outcome {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "export.run", trace.WithAttributes(tracing.SafeAttributes(
		attribute.String("export.format", string(req.Format)),
		attribute.String("export.range_start", req.Range.StartLabel()),
		attribute.String("export.range_end", req.Range.EndLabel()),
	)...))
	defer span.End()

	out := s.run(ctx, snapshot, req)

	s.metrics.RecordExport(ctx, string(req.Format), string(out.Status), time.Since(start))
	span.SetAttributes(attribute.String("export.outcome", string(out.Status)))

	log := logger.WithContext(ctx, s.log).With(
		zap.String("format", string(req.Format)),
		zap.String("outcome", string(out.Status)),
	)
	switch out.Status {
	case domain.StatusSucceeded:
		log.Info("export completed",
			logger.Artifact(out.Artifact.ID, out.Artifact.Name),
			zap.Int64("size_bytes", out.Artifact.SizeBytes),
		)
	case domain.StatusFailed:
		span.RecordError(tracing.SafeError(out.Err))
		span.SetStatus(codes.Error, "export failed")
		log.Error("export failed", zap.Error(out.Err))
	default:
		log.Warn("export rejected", zap.Error(out.Err))
	}
	return out
}

func (s *Service) run(ctx context.Context, snapshot catalog.Snapshot, req domain.Request) domain.Outcome {
	cfg := s.cfg.Get()

	if err := s.validate(cfg, req); err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidDateRange):
			return domain.Outcome{Status: domain.StatusInvalidRange, Message: "The selected date range is not valid.", Err: err}
		case errors.Is(err, domain.ErrNothingSelected):
			return domain.Outcome{Status: domain.StatusNothingSelected, Message: "Select at least one dataset to export.", Err: err}
		default:
			return failed(err)
		}
	}
	selection := domain.NormalizeSelection(req.Categories)

	money, err := rows.NewMoneyFormatter(cfg.Currency)
	if err != nil {
		return failed(err)
	}
	sets, err := buildRowSets(rows.NewBuilder(money), snapshot, selection, req.Range, cfg.TopLimit)
	if err != nil {
		return failed(err)
	}

	title := fmt.Sprintf("%s %s to %s", cfg.ReportTitle, req.Range.StartLabel(), req.Range.EndLabel())
	payload, err := s.serialize(ctx, req.Format, title, sets)
	switch {
	case errors.Is(err, render.ErrEmptyExport), errors.Is(err, render.ErrEmptyArchive):
		return domain.Outcome{Status: domain.StatusEmpty, Message: "There is no data to export for the selected range.", Err: err}
	case err != nil:
		return failed(err)
	}

	rec := registry.Record{
		ID:              s.genID.Generate().String(),
		Name:            Filename(cfg.FilenamePrefix, req.Range, req.Format),
		Kind:            req.Format,
		CreatedAt:       s.clock.Now(),
		ContentsSummary: contentsSummary(sets),
	}
	stored, err := s.insert(ctx, rec, payload)
	if err != nil {
		return failed(err)
	}

	s.metrics.RecordArtifactBytes(ctx, string(req.Format), stored.Size)
	view := stored.View()
	return domain.Outcome{Status: domain.StatusSucceeded, Message: "Export ready.", Artifact: &view}
}

func (s *Service) Validate(req domain.Request) error {
	return s.validate(s.cfg.Get(), req)
}

func (s *Service) validate(cfg config.ExportConfig, req domain.Request) error {
	if err := req.Range.Validate(cfg.EpochDate(), clock.Today(s.clock)); err != nil {
		return err
	}
	if len(domain.NormalizeSelection(req.Categories)) == 0 {
		return domain.ErrNothingSelected
	}
	if !req.Format.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFormat, req.Format)
	}
	return nil
}

func failed(err error) domain.Outcome {
	return domain.Outcome{Status: domain.StatusFailed, Message: "The export could not be generated.", Err: err}
}

func (s *Service) serialize(ctx context.Context, format domain.Format, title string, sets []rows.RowSet) ([]byte, error) {
	switch format {
	case domain.FormatWorkbook:
		return s.workbook.Serialize(sets)
	case domain.FormatDocument:
		return s.document.SerializeSections(title, sets)
	case domain.FormatArchive:
		return s.serializeArchive(ctx, title, sets)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidFormat, format)
	}
}

// serializeArchive renders one document per non-empty set concurrently and
// packs them once all have finished.
func (s *Service) serializeArchive(ctx context.Context, title string, sets []rows.RowSet) ([]byte, error) {
	nonEmpty := make([]rows.RowSet, 0, len(sets))
	for _, set := range sets {
		if !set.Empty() {
			nonEmpty = append(nonEmpty, set)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, render.ErrEmptyExport
	}

	entries := make([]render.Entry, len(nonEmpty))
	g, _ := errgroup.WithContext(ctx)
	for i, set := range nonEmpty {
		g.Go(func() error {
			payload, err := s.document.Serialize(set, title+" - "+set.Name)
			if err != nil {
				return fmt.Errorf("render %s: %w", set.Name, err)
			}
			entries[i] = render.Entry{Name: slug.Make(set.Name) + ".pdf", Payload: payload}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return s.archive.Serialize(entries)
}

func (s *Service) insert(ctx context.Context, rec registry.Record, payload []byte) (registry.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, evicted, err := s.registry.Insert(rec, payload)
	if err != nil {
		return registry.Record{}, err
	}
	if evicted != nil {
		s.metrics.RecordEviction(ctx)
		logger.WithContext(ctx, s.log).Info("artifact evicted", logger.Artifact(evicted.ID, evicted.Name))
		return stored, nil
	}
	s.metrics.AddRegistryArtifacts(ctx, 1)
	return stored, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.ArtifactView, error) {
	s.mu.Lock()
	records, err := s.registry.List(req.SortBy, req.OrderBy)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	views := make([]domain.ArtifactView, 0, len(records))
	for _, rec := range records {
		views = append(views, rec.View())
	}
	return views, nil
}

func (s *Service) Download(ctx context.Context, id string) (*domain.Download, error) {
	s.mu.Lock()
	rec, payload, err := s.registry.Open(strings.TrimSpace(id))
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return &domain.Download{
		Filename:    rec.Name,
		ContentType: rec.Kind.ContentType(),
		Payload:     payload,
	}, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.registry.Remove(strings.TrimSpace(id))
	if err != nil {
		logger.WithContext(ctx, s.log).Error("artifact release failed", zap.String("artifact_id", id), zap.Error(err))
		return err
	}
	if !removed {
		return domain.ErrArtifactNotFound
	}
	s.metrics.AddRegistryArtifacts(ctx, -1)
	return nil
}

func (s *Service) RemoveMany(ctx context.Context, ids []string) domain.BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.registry.RemoveMany(ids)
	s.metrics.AddRegistryArtifacts(ctx, -int64(result.Succeeded))
	if result.Failed > 0 {
		logger.WithContext(ctx, s.log).Warn("bulk remove partially failed",
			zap.Int("succeeded", result.Succeeded),
			zap.Int("failed", result.Failed),
		)
	}
	return result
}

func (s *Service) Clear(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.registry.Clear()
	s.metrics.AddRegistryArtifacts(ctx, -int64(n))
	if err != nil {
		logger.WithContext(ctx, s.log).Error("artifact release failed during clear", zap.Error(err))
	}
	return n
}

// Filename builds "<prefix>_<start>_to_<end>.<ext>".
func Filename(prefix string, r analytics.DateRange, format domain.Format) string {
	return fmt.Sprintf("%s_%s_to_%s.%s", prefix, r.StartLabel(), r.EndLabel(), format.Ext())
}

func contentsSummary(sets []rows.RowSet) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		if !set.Empty() {
			parts = append(parts, rows.Summary(set))
		}
	}
	return strings.Join(parts, ", ")
}
