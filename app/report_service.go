package app

import (
	"context"
	"time"

	"datareport/domain/core"
	"datareport/domain/report"
	"datareport/domain/table"
	"datareport/internal"
	"datareport/internal/analysis"
	apperrors "datareport/internal/errors"
	"datareport/internal/insight"
	"datareport/ports"

	"golang.org/x/sync/errgroup"
)

// maxChartsPerKind caps how many histograms and bar charts one report gets
const maxChartsPerKind = 6

// ReportService runs the full analysis pipeline for one table: overview,
// quality, statistics, correlation, insights, then chart rendering. Each
// call produces a fresh bundle; the service holds no per-run state.
type ReportService struct {
	charts    ports.ChartRenderer
	generator *insight.Generator
	logger    *internal.Logger
}

// NewReportService creates a report service. charts may be nil, in which
// case reports simply carry no visualizations.
func NewReportService(charts ports.ChartRenderer) *ReportService {
	return &ReportService{
		charts:    charts,
		generator: insight.NewGenerator(),
		logger:    internal.DefaultLogger,
	}
}

// Generate runs the pipeline and assembles the report bundle
func (s *ReportService) Generate(ctx context.Context, t *table.Table) (*report.Bundle, error) {
	if t == nil || t.RowCount() == 0 {
		return nil, apperrors.EmptyInput("dataset has no rows to analyze")
	}

	startTime := time.Now()
	s.logger.Info("[ReportService] Analyzing %q (%d rows, %d columns)",
		t.Name(), t.RowCount(), t.ColumnCount())

	overview := analysis.Overview(t)
	quality := analysis.Quality(t)
	statistics := analysis.Statistics(t)
	correlation := analysis.Correlation(t)

	insights := s.generator.Generate(t, overview, quality, statistics, correlation)

	charts := s.renderCharts(ctx, t)

	s.logger.Info("[ReportService] Report for %q ready in %.2fms (%d insights, %d charts)",
		t.Name(), float64(time.Since(startTime).Nanoseconds())/1e6,
		len(insights), len(charts.Histograms)+len(charts.BarCharts))

	return &report.Bundle{
		ID:          core.NewReportID(),
		Source:      t.Name(),
		GeneratedAt: core.Now(),
		Overview:    overview,
		Quality:     quality,
		Statistics:  statistics,
		Correlation: correlation,
		Insights:    insights,
		Charts:      charts,
	}, nil
}

// renderCharts fans chart rendering out across columns. Each chart depends
// on a single column, so renders run concurrently; a failed render drops
// that chart and nothing else.
func (s *ReportService) renderCharts(ctx context.Context, t *table.Table) report.ChartSet {
	set := report.ChartSet{
		Histograms: make([]report.Chart, 0),
		BarCharts:  make([]report.Chart, 0),
	}
	if s.charts == nil {
		return set
	}

	numeric := capColumns(t.NumericColumns(), maxChartsPerKind)
	categorical := capColumns(t.CategoricalColumns(), maxChartsPerKind)

	histograms := make([]*report.Chart, len(numeric))
	barCharts := make([]*report.Chart, len(categorical))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range numeric {
		i, name := i, name
		g.Go(func() error {
			col, _ := t.Column(name)
			values := col.NumericValues()
			if len(values) == 0 {
				return nil
			}
			chart, err := s.charts.Histogram(gctx, name, values)
			if err != nil {
				s.logger.Warn("[ReportService] Histogram for %q skipped: %v", name, err)
				return nil
			}
			histograms[i] = &chart
			return nil
		})
	}
	for i, name := range categorical {
		i, name := i, name
		g.Go(func() error {
			col, _ := t.Column(name)
			counts := col.ValueCounts()
			if len(counts) == 0 {
				return nil
			}
			chart, err := s.charts.BarChart(gctx, name, counts)
			if err != nil {
				s.logger.Warn("[ReportService] Bar chart for %q skipped: %v", name, err)
				return nil
			}
			barCharts[i] = &chart
			return nil
		})
	}
	// Workers never return errors; failed charts are simply absent
	_ = g.Wait()

	for _, chart := range histograms {
		if chart != nil {
			set.Histograms = append(set.Histograms, *chart)
		}
	}
	for _, chart := range barCharts {
		if chart != nil {
			set.BarCharts = append(set.BarCharts, *chart)
		}
	}
	return set
}

func capColumns(names []string, limit int) []string {
	if len(names) > limit {
		return names[:limit]
	}
	return names
}
