package ports

import (
	"context"

	"datareport/domain/report"
	"datareport/domain/table"
)

// ChartRenderer produces opaque image artifacts for report columns. The
// pipeline treats it as a pure function; a failed render only drops that
// column's visualization, never the report.
type ChartRenderer interface {
	// Histogram renders the distribution of a numeric column's non-missing values
	Histogram(ctx context.Context, column string, values []float64) (report.Chart, error)

	// BarChart renders the top value counts of a categorical column
	BarChart(ctx context.Context, column string, counts []table.ValueCount) (report.Chart, error)
}
