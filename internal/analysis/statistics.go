package analysis

import (
	"math"
	"sort"

	"datareport/domain/report"
	"datareport/domain/table"

	"github.com/montanaflynn/stats"
)

// topValueLimit caps the frequent-value list per categorical column
const topValueLimit = 5

// Statistics computes per-column descriptive summaries. Numeric columns
// whose values are all missing are omitted entirely.
func Statistics(t *table.Table) report.StatisticsResult {
	numerical := make(map[string]report.NumericSummary)
	for _, name := range t.NumericColumns() {
		col, _ := t.Column(name)
		values := col.NumericValues()
		if len(values) == 0 {
			continue
		}
		numerical[name] = summarizeNumeric(values)
	}

	categorical := make(map[string]report.CategoricalSummary)
	for _, name := range t.CategoricalColumns() {
		col, _ := t.Column(name)
		categorical[name] = summarizeCategorical(col, t.RowCount())
	}

	return report.StatisticsResult{
		Numerical:   numerical,
		Categorical: categorical,
	}
}

func summarizeNumeric(values []float64) report.NumericSummary {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	// Sample standard deviation (ddof=1); undefined for a single value
	stdDev := 0.0
	if len(values) > 1 {
		stdDev, _ = stats.StandardDeviationSample(values)
	}

	return report.NumericSummary{
		Mean:   round2(mean),
		Median: round2(median),
		StdDev: round2(stdDev),
		Min:    round2(min),
		Max:    round2(max),
		Q1:     round2(quantile(values, 0.25)),
		Q3:     round2(quantile(values, 0.75)),
	}
}

func summarizeCategorical(col table.Column, totalRows int) report.CategoricalSummary {
	counts := col.ValueCounts()

	top := make([]report.TopValue, 0, topValueLimit)
	for i, vc := range counts {
		if i == topValueLimit {
			break
		}
		top = append(top, report.TopValue{
			Value:      vc.Value,
			Count:      vc.Count,
			Percentage: round2(float64(vc.Count) / float64(totalRows) * 100),
		})
	}

	return report.CategoricalSummary{
		UniqueCount: len(counts),
		TopValues:   top,
	}
}

// quantile computes the p-quantile with linear interpolation at rank
// (n-1)*p, the spreadsheet convention. The stats library's Percentile uses
// nearest-rank, which differs for small samples.
func quantile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
