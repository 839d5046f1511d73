package analysis

import (
	"datareport/domain/report"
	"datareport/domain/table"
)

// Near-constant threshold: one value covering at least this share of the
// non-missing entries
const nearConstantShare = 0.95

// Quality computes missing-value, duplicate-row and constancy diagnostics
func Quality(t *table.Table) report.QualityResult {
	rows := t.RowCount()

	missing := make(map[string]report.MissingStat)
	totalMissing := 0
	for _, col := range t.Columns() {
		count := col.MissingCount()
		totalMissing += count
		if count == 0 {
			continue
		}
		missing[col.Name] = report.MissingStat{
			Count:      count,
			Percentage: round2(float64(count) / float64(rows) * 100),
		}
	}

	duplicates := countDuplicateRows(t)
	duplicatePct := round2(float64(duplicates) / float64(rows) * 100)

	constant := make([]string, 0)
	constantSet := make(map[string]bool)
	for _, col := range t.Columns() {
		if col.DistinctCount() <= 1 {
			constant = append(constant, col.Name)
			constantSet[col.Name] = true
		}
	}

	nearConstant := make([]report.NearConstantColumn, 0)
	for _, col := range t.Columns() {
		if constantSet[col.Name] {
			continue
		}
		counts := col.ValueCounts()
		if len(counts) == 0 {
			continue
		}
		share := float64(counts[0].Count) / float64(col.NonMissingCount())
		if share >= nearConstantShare {
			nearConstant = append(nearConstant, report.NearConstantColumn{
				Column:        col.Name,
				DominantValue: counts[0].Value,
				Percentage:    round2(share * 100),
			})
		}
	}

	return report.QualityResult{
		MissingValues:       missing,
		TotalMissingCells:   totalMissing,
		TotalCells:          rows * t.ColumnCount(),
		DuplicateRows:       duplicates,
		DuplicatePercentage: duplicatePct,
		ConstantColumns:     constant,
		NearConstantColumns: nearConstant,
	}
}

// countDuplicateRows counts rows identical to an earlier row across all
// columns; missing cells match other missing cells
func countDuplicateRows(t *table.Table) int {
	seen := make(map[string]bool, t.RowCount())
	duplicates := 0
	for i := 0; i < t.RowCount(); i++ {
		key := t.RowKey(i)
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true
	}
	return duplicates
}
