// Package analysis implements the descriptive analyzers that feed report
// generation: dataset overview, data quality, statistical summaries and
// numeric correlation. Every function here is a pure computation over an
// immutable table.
package analysis

import (
	"datareport/domain/report"
	"datareport/domain/table"

	"github.com/montanaflynn/stats"
)

// Approximate per-cell storage costs for the memory estimate
const (
	numericCellBytes = 8
	textCellOverhead = 16
	bytesPerMB       = 1024 * 1024
)

// Overview computes the shape and type composition of the table
func Overview(t *table.Table) report.OverviewResult {
	kinds := make(map[string]table.ValueKind, t.ColumnCount())
	for _, col := range t.Columns() {
		kinds[col.Name] = col.Kind
	}

	numeric := t.NumericColumns()
	categorical := t.CategoricalColumns()

	return report.OverviewResult{
		Rows:               t.RowCount(),
		Columns:            t.ColumnCount(),
		ColumnNames:        t.ColumnNames(),
		Kinds:              kinds,
		NumericColumns:     numeric,
		CategoricalColumns: categorical,
		NumericCount:       len(numeric),
		CategoricalCount:   len(categorical),
		MemoryUsageMB:      round2(estimateMemoryBytes(t) / bytesPerMB),
	}
}

// estimateMemoryBytes approximates the in-memory footprint: 8 bytes per
// numeric cell, string length plus header overhead per text cell
func estimateMemoryBytes(t *table.Table) float64 {
	var total float64
	for _, col := range t.Columns() {
		if col.Kind == table.KindNumeric {
			total += float64(col.Len() * numericCellBytes)
			continue
		}
		for _, cell := range col.Cells {
			total += float64(len(cell.Raw) + textCellOverhead)
		}
	}
	return total
}

// round2 rounds to 2 decimals, mapping NaN/Inf to 0 so results stay
// serializable
func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return rounded
}
