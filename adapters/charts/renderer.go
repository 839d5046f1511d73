// Package charts renders report visualizations as PNG artifacts using
// go-chart. It sits behind ports.ChartRenderer; render failures are
// reported to the caller, which drops the affected chart.
package charts

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"

	"datareport/domain/report"
	"datareport/domain/table"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	defaultWidth   = 800
	defaultHeight  = 500
	histogramBins  = 20
	barChartValues = 10
)

// Renderer renders histograms and bar charts as PNG images
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer with default dimensions
func NewRenderer() *Renderer {
	return &Renderer{width: defaultWidth, height: defaultHeight}
}

// Histogram bins the values and renders the frequency distribution
func (r *Renderer) Histogram(ctx context.Context, column string, values []float64) (report.Chart, error) {
	if err := ctx.Err(); err != nil {
		return report.Chart{}, err
	}
	if len(values) == 0 {
		return report.Chart{}, fmt.Errorf("no values to plot for column %q", column)
	}

	bars := binValues(values)

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Distribution of %s", column),
		Width:    r.width,
		Height:   r.height,
		BarWidth: 24,
		Bars:     bars,
	}

	return renderPNG(graph, column, report.ChartHistogram)
}

// BarChart renders the most frequent values of a categorical column
func (r *Renderer) BarChart(ctx context.Context, column string, counts []table.ValueCount) (report.Chart, error) {
	if err := ctx.Err(); err != nil {
		return report.Chart{}, err
	}
	if len(counts) == 0 {
		return report.Chart{}, fmt.Errorf("no values to plot for column %q", column)
	}

	if len(counts) > barChartValues {
		counts = counts[:barChartValues]
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, vc := range counts {
		bars = append(bars, chart.Value{
			Label: truncateLabel(vc.Value),
			Value: float64(vc.Count),
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Top Values in %s", column),
		Width:    r.width,
		Height:   r.height,
		BarWidth: 40,
		Bars:     bars,
	}

	return renderPNG(graph, column, report.ChartBar)
}

// binValues splits the value range into equal-width bins and counts
// occupancy. A zero-width range collapses to a single bin.
func binValues(values []float64) []chart.Value {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []chart.Value{{
			Label: strconv.FormatFloat(min, 'g', 4, 64),
			Value: float64(len(values)),
		}}
	}

	bins := histogramBins
	if len(values) < bins {
		bins = len(values)
	}
	width := (max - min) / float64(bins)

	counts := make([]int, bins)
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, bins)
	for i, count := range counts {
		bars[i] = chart.Value{
			Label: strconv.FormatFloat(min+float64(i)*width, 'g', 3, 64),
			Value: float64(count),
		}
	}
	return bars
}

func renderPNG(graph chart.BarChart, column string, kind report.ChartKind) (report.Chart, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return report.Chart{}, fmt.Errorf("rendering %s for %q: %w", kind, column, err)
	}
	return report.Chart{Column: column, Kind: kind, PNG: buf.Bytes()}, nil
}

func truncateLabel(label string) string {
	const maxLabel = 18
	if len(label) > maxLabel {
		return label[:maxLabel-1] + "…"
	}
	return label
}
