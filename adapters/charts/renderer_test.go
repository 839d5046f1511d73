package charts

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datareport/domain/report"
	"datareport/domain/table"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestHistogramRendersPNG(t *testing.T) {
	r := NewRenderer()
	values := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 10, 12, 15, 20, 21, 22, 30, 31, 40, 45, 50, 60, 70}

	chart, err := r.Histogram(context.Background(), "amount", values)
	require.NoError(t, err)

	assert.Equal(t, "amount", chart.Column)
	assert.Equal(t, report.ChartHistogram, chart.Kind)
	require.NotEmpty(t, chart.PNG)
	assert.True(t, bytes.HasPrefix(chart.PNG, pngMagic), "output should be a PNG")
}

func TestHistogramConstantValues(t *testing.T) {
	r := NewRenderer()

	chart, err := r.Histogram(context.Background(), "flat", []float64{7, 7, 7, 7})
	require.NoError(t, err)
	assert.NotEmpty(t, chart.PNG, "zero-width range collapses to one bin")
}

func TestHistogramEmptyValues(t *testing.T) {
	r := NewRenderer()
	_, err := r.Histogram(context.Background(), "empty", nil)
	require.Error(t, err)
}

func TestHistogramCanceledContext(t *testing.T) {
	r := NewRenderer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Histogram(ctx, "amount", []float64{1, 2, 3})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBarChartRendersPNG(t *testing.T) {
	r := NewRenderer()
	counts := []table.ValueCount{
		{Value: "North", Count: 40},
		{Value: "South", Count: 30},
		{Value: "East", Count: 20},
	}

	chart, err := r.BarChart(context.Background(), "region", counts)
	require.NoError(t, err)

	assert.Equal(t, report.ChartBar, chart.Kind)
	assert.True(t, bytes.HasPrefix(chart.PNG, pngMagic))
}

func TestBarChartCapsValues(t *testing.T) {
	r := NewRenderer()
	counts := make([]table.ValueCount, 25)
	for i := range counts {
		counts[i] = table.ValueCount{Value: string(rune('a' + i)), Count: 25 - i}
	}

	chart, err := r.BarChart(context.Background(), "tag", counts)
	require.NoError(t, err)
	assert.NotEmpty(t, chart.PNG)
}

func TestBarChartEmptyCounts(t *testing.T) {
	r := NewRenderer()
	_, err := r.BarChart(context.Background(), "empty", nil)
	require.Error(t, err)
}

func TestBinValuesOccupancy(t *testing.T) {
	bars := binValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	total := 0.0
	for _, bar := range bars {
		total += bar.Value
	}
	assert.Equal(t, 10.0, total, "every value lands in exactly one bin")
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", truncateLabel("short"))

	long := truncateLabel("a very long categorical label")
	assert.LessOrEqual(t, len([]rune(long)), 18)
}
