package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/plot/vg"

	"emrdash/internal/config"
	"emrdash/internal/dashboard"
	"emrdash/internal/dataprocessing"
	"emrdash/internal/exporter"
	"emrdash/internal/infrastructure"
	api "emrdash/pkg/contracts/api/v1"
	"emrdash/pkg/contracts/domain"
	"emrdash/pkg/contracts/events"
)

// DashboardService runs the filter, aggregate and present cycle for the
// dashboard session.
type DashboardService struct {
	loader  DatasetLoader
	session *dashboard.Session
	hub     Broadcaster

	chartWidth  vg.Length
	chartHeight vg.Length

	tracer  trace.Tracer
	metrics *infrastructure.DashboardMetrics
	logger  *slog.Logger
}

// NewDashboardService wires the service. hub may be nil when nothing
// listens for rendered events.
func NewDashboardService(loader DatasetLoader, cfg config.DashboardConfig, hub Broadcaster, providers *infrastructure.OTelProviders, logger *slog.Logger) (*DashboardService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = infrastructure.NoopProviders(logger)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}

	previewLimit := cfg.PreviewLimit
	if previewLimit <= 0 {
		previewLimit = dashboard.DefaultPreviewLimit
	}

	return &DashboardService{
		loader:      loader,
		session:     dashboard.NewSession(previewLimit),
		hub:         hub,
		chartWidth:  vg.Length(cfg.ChartWidth) * vg.Inch,
		chartHeight: vg.Length(cfg.ChartHeight) * vg.Inch,
		tracer:      providers.Tracer,
		metrics:     metrics,
		logger:      logger.With(slog.String("component", "dashboard_service")),
	}, nil
}

// Options returns the cascade option lists for a pending selection and
// records it as the selection being edited.
func (s *DashboardService) Options(ctx context.Context, sel domain.Selection) (api.OptionsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Options")
	defer span.End()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return api.OptionsResponse{}, err
	}

	sel = sel.Normalize()
	s.session.SetPending(sel)
	options := dataprocessing.Cascade(ds, sel)

	span.SetAttributes(
		attribute.Int("options.states", len(options.States)),
		attribute.Int("options.lgas", len(options.LGAs)),
		attribute.Int("options.facilities", len(options.Facilities)),
	)
	return api.OptionsResponse{Selection: sel, Options: options}, nil
}

// Pending returns the selection being edited.
func (s *DashboardService) Pending(ctx context.Context) domain.Selection {
	return s.session.Pending()
}

// Apply filters the dataset by sel, replaces the current view and notifies
// websocket listeners.
func (s *DashboardService) Apply(ctx context.Context, sel domain.Selection) (*domain.DashboardView, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Apply")
	defer span.End()
	start := time.Now()

	ds, err := s.loader.Load(ctx)
	if err != nil {
		s.metrics.RecordApply(ctx, 0, time.Since(start), err)
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	sel = sel.Normalize()
	view := s.session.Apply(ds, sel)
	duration := time.Since(start)
	s.metrics.RecordApply(ctx, view.Metrics.RowCount, duration, nil)

	span.SetAttributes(
		attribute.Int("selection.states", len(sel.States)),
		attribute.Int("selection.lgas", len(sel.LGAs)),
		attribute.Int("selection.facilities", len(sel.Facilities)),
		attribute.Int("subset.rows", view.Metrics.RowCount),
	)

	s.logger.InfoContext(ctx, "Selection applied",
		slog.Any("states", sel.States),
		slog.Any("lgas", sel.LGAs),
		slog.Any("facilities", sel.Facilities),
		slog.Int("rows", view.Metrics.RowCount),
		slog.Int("facilities_count", view.Metrics.FacilityCount),
		slog.Duration("duration", duration))

	if s.hub != nil {
		s.hub.Broadcast(events.NewDashboardRendered(uuid.New().String(), infrastructure.GetTraceID(ctx), view))
	}
	return view, nil
}

// State returns the Idle prompt or the current view.
func (s *DashboardService) State(ctx context.Context) domain.DashboardState {
	return s.session.State()
}

// Export encodes the current filtered subset as CSV. It returns
// dashboard.ErrNotApplied while Idle.
func (s *DashboardService) Export(ctx context.Context) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Export")
	defer span.End()

	view := s.session.View()
	if view == nil {
		return nil, dashboard.ErrNotApplied
	}

	ds, err := s.loader.Load(ctx)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	subset := dataprocessing.Apply(ds, view.Selection)
	data, err := exporter.EncodeCSV(ds.Columns, subset)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}

	s.metrics.ExportsTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Int("export.rows", len(subset)), attribute.Int("export.bytes", len(data)))
	s.logger.InfoContext(ctx, "Filtered data exported",
		slog.Int("rows", len(subset)),
		slog.Int("bytes", len(data)))
	return data, nil
}

// Chart renders the chart with the given id from the current view as PNG.
func (s *DashboardService) Chart(ctx context.Context, id string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "DashboardService.Chart", trace.WithAttributes(attribute.String("chart.id", id)))
	defer span.End()

	view := s.session.View()
	if view == nil {
		return nil, dashboard.ErrNotApplied
	}
	series, ok := view.Chart(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", dashboard.ErrUnknownChart, id)
	}

	png, err := dashboard.RenderChart(series, s.chartWidth, s.chartHeight)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to render chart %s: %w", id, err)
	}

	s.metrics.ChartsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("chart", id)))
	return png, nil
}

// DatasetStatus reports the outcome of the dataset load.
func (s *DashboardService) DatasetStatus() dataprocessing.LoadStatus {
	return s.loader.Status()
}
