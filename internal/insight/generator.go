// Package insight turns analyzer results into an ordered list of
// classified, human-readable findings. Generation is a pure, deterministic
// function of its inputs: identical results always produce the identical
// insight sequence.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"datareport/domain/report"
	"datareport/domain/table"
)

// Thresholds for the insight rules
const (
	smallDatasetRows     = 100
	largeDatasetRows     = 100000
	highMissingPct       = 20.0
	moderateMissingPct   = 5.0
	manyMissingColumns   = 3
	highDuplicatePct     = 10.0
	imbalancedSharePct   = 80.0
	dominantSharePct     = 50.0
	skewRatio            = 0.3
	highVariabilityRatio = 1.0
	veryStrongCorr       = 0.9
	manyStrongPairs      = 3
)

// Generator produces report insights from analyzer results
type Generator struct{}

// NewGenerator creates a new insight generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate builds the full ordered insight list: dataset size, missing
// values, duplicates, distributions, correlations.
func (g *Generator) Generate(
	t *table.Table,
	overview report.OverviewResult,
	quality report.QualityResult,
	statistics report.StatisticsResult,
	correlation report.CorrelationResult,
) []report.Insight {
	insights := make([]report.Insight, 0)
	insights = append(insights, g.sizeInsights(overview)...)
	insights = append(insights, g.missingValueInsights(t, quality)...)
	insights = append(insights, g.duplicateInsights(quality)...)
	insights = append(insights, g.distributionInsights(overview, statistics)...)
	insights = append(insights, g.correlationInsights(correlation)...)
	return insights
}

func (g *Generator) sizeInsights(overview report.OverviewResult) []report.Insight {
	insights := make([]report.Insight, 0, 2)

	switch {
	case overview.Rows < smallDatasetRows:
		insights = append(insights, report.Warning(fmt.Sprintf(
			"Small dataset (%s rows) - statistical conclusions may have limited reliability.",
			formatCount(overview.Rows))))
	case overview.Rows > largeDatasetRows:
		insights = append(insights, report.Info(fmt.Sprintf(
			"Large dataset (%s rows) - consider sampling for initial exploration or use scalable processing methods.",
			formatCount(overview.Rows))))
	default:
		insights = append(insights, report.Info(fmt.Sprintf(
			"Dataset contains %s rows and %d columns, suitable for standard analysis approaches.",
			formatCount(overview.Rows), overview.Columns)))
	}

	insights = append(insights, report.Info(fmt.Sprintf(
		"Column composition: %d numerical and %d categorical features.",
		overview.NumericCount, overview.CategoricalCount)))

	return insights
}

func (g *Generator) missingValueInsights(t *table.Table, quality report.QualityResult) []report.Insight {
	if len(quality.MissingValues) == 0 {
		return []report.Insight{report.Success(
			"No missing values detected in any column - dataset is complete.")}
	}

	insights := make([]report.Insight, 0)

	type colMissing struct {
		name string
		stat report.MissingStat
	}

	// Table column order keeps map iteration deterministic and is the
	// tie-break for equal percentages
	high := make([]colMissing, 0)
	moderate := make([]colMissing, 0)
	for _, name := range t.ColumnNames() {
		stat, ok := quality.MissingValues[name]
		if !ok {
			continue
		}
		switch {
		case stat.Percentage > highMissingPct:
			high = append(high, colMissing{name, stat})
		case stat.Percentage >= moderateMissingPct:
			moderate = append(moderate, colMissing{name, stat})
		}
	}

	sort.SliceStable(high, func(i, j int) bool {
		return high[i].stat.Percentage > high[j].stat.Percentage
	})
	for _, cm := range high {
		insights = append(insights, report.Warning(fmt.Sprintf(
			"Column '%s' has %s%% missing values (%s rows), which may significantly impact analysis reliability.",
			cm.name, formatPercent(cm.stat.Percentage), formatCount(cm.stat.Count))))
	}

	for _, cm := range moderate {
		insights = append(insights, report.Info(fmt.Sprintf(
			"Column '%s' has %s%% missing values - consider imputation or exclusion strategy.",
			cm.name, formatPercent(cm.stat.Percentage))))
	}

	if len(quality.MissingValues) > manyMissingColumns {
		overall := float64(quality.TotalMissingCells) / float64(quality.TotalCells) * 100
		insights = append(insights, report.Info(fmt.Sprintf(
			"Overall, %d columns contain missing data, representing %s%% of all data cells.",
			len(quality.MissingValues), formatPercent(overall))))
	}

	return insights
}

func (g *Generator) duplicateInsights(quality report.QualityResult) []report.Insight {
	switch {
	case quality.DuplicateRows == 0:
		return []report.Insight{report.Success(
			"No duplicate rows detected - each record is unique.")}
	case quality.DuplicatePercentage > highDuplicatePct:
		return []report.Insight{report.Warning(fmt.Sprintf(
			"Dataset contains %s duplicate rows (%s%%), which may indicate data collection issues or require deduplication.",
			formatCount(quality.DuplicateRows), formatPercent(quality.DuplicatePercentage)))}
	default:
		return []report.Insight{report.Info(fmt.Sprintf(
			"Dataset contains %s duplicate rows (%s%%) - review for potential data quality issues.",
			formatCount(quality.DuplicateRows), formatPercent(quality.DuplicatePercentage)))}
	}
}

func (g *Generator) distributionInsights(overview report.OverviewResult, statistics report.StatisticsResult) []report.Insight {
	insights := make([]report.Insight, 0)

	for _, name := range overview.CategoricalColumns {
		summary, ok := statistics.Categorical[name]
		if !ok || len(summary.TopValues) == 0 {
			continue
		}
		top := summary.TopValues[0]
		switch {
		case top.Percentage > imbalancedSharePct:
			insights = append(insights, report.Warning(fmt.Sprintf(
				"Column '%s' is highly imbalanced - '%s' represents %s%% of values. This may affect model training if used as a target variable.",
				name, top.Value, formatPercent(top.Percentage))))
		case top.Percentage > dominantSharePct:
			insights = append(insights, report.Info(fmt.Sprintf(
				"Category '%s' dominates column '%s' (%s%%), indicating potential class imbalance.",
				top.Value, name, formatPercent(top.Percentage))))
		}
	}

	for _, name := range overview.NumericColumns {
		summary, ok := statistics.Numerical[name]
		if !ok {
			continue
		}

		if summary.Mean != 0 && math.Abs(summary.Mean-summary.Median)/math.Abs(summary.Mean) > skewRatio {
			direction := "right-skewed"
			if summary.Mean < summary.Median {
				direction = "left-skewed"
			}
			insights = append(insights, report.Info(fmt.Sprintf(
				"Column '%s' appears %s (mean: %s, median: %s). Consider transformation for normality if required.",
				name, direction, formatStat(summary.Mean), formatStat(summary.Median))))
		}

		if summary.Mean != 0 && summary.StdDev/math.Abs(summary.Mean) > highVariabilityRatio {
			insights = append(insights, report.Info(fmt.Sprintf(
				"Column '%s' has high variability (CV > 100%%), indicating diverse or potentially outlier-prone data.",
				name)))
		}
	}

	return insights
}

func (g *Generator) correlationInsights(correlation report.CorrelationResult) []report.Insight {
	if len(correlation.StrongPairs) == 0 {
		return []report.Insight{report.Info(
			"No strong correlations (|r| > 0.7) detected between numerical variables.")}
	}

	insights := make([]report.Insight, 0, len(correlation.StrongPairs)+1)
	for _, pair := range correlation.StrongPairs {
		strength := "Strong"
		if math.Abs(pair.Coefficient) > veryStrongCorr {
			strength = "Very strong"
		}
		direction := "positive"
		if pair.Coefficient < 0 {
			direction = "negative"
		}
		insights = append(insights, report.Info(fmt.Sprintf(
			"%s %s correlation detected between '%s' and '%s' (r = %.2f). These variables may be redundant or causally related.",
			strength, direction, pair.ColumnA, pair.ColumnB, pair.Coefficient)))
	}

	if len(correlation.StrongPairs) > manyStrongPairs {
		insights = append(insights, report.Info(fmt.Sprintf(
			"Multiple strong correlations detected (%d pairs) - consider feature selection or dimensionality reduction for modeling.",
			len(correlation.StrongPairs))))
	}

	return insights
}

// formatCount renders an integer with thousand separators (1234 -> "1,234")
func formatCount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatPercent renders a percentage with up to 2 decimals but at least 1,
// so 25 reads "25.0" and 33.33 stays "33.33"
func formatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	if strings.HasSuffix(s, "0") {
		s = s[:len(s)-1]
	}
	return s
}

// formatStat renders an already-rounded statistic compactly
func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
