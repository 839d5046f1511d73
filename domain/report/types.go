package report

import (
	"datareport/domain/core"
	"datareport/domain/table"
)

// OverviewResult describes the shape and type composition of a table
type OverviewResult struct {
	Rows               int                        `json:"rows"`
	Columns            int                        `json:"columns"`
	ColumnNames        []string                   `json:"column_names"`
	Kinds              map[string]table.ValueKind `json:"dtypes"`
	NumericColumns     []string                   `json:"numerical_columns"`
	CategoricalColumns []string                   `json:"categorical_columns"`
	NumericCount       int                        `json:"numerical_count"`
	CategoricalCount   int                        `json:"categorical_count"`
	MemoryUsageMB      float64                    `json:"memory_usage_mb"`
}

// MissingStat is the missing-value tally for one column
type MissingStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NearConstantColumn records a column where one value covers >=95% of
// non-missing entries
type NearConstantColumn struct {
	Column        string  `json:"column"`
	DominantValue string  `json:"dominant_value"`
	Percentage    float64 `json:"percentage"`
}

// QualityResult holds missing-value, duplicate and constancy diagnostics
type QualityResult struct {
	MissingValues       map[string]MissingStat `json:"missing_values"`
	TotalMissingCells   int                    `json:"total_missing_cells"`
	TotalCells          int                    `json:"total_cells"`
	DuplicateRows       int                    `json:"duplicate_rows"`
	DuplicatePercentage float64                `json:"duplicate_percentage"`
	ConstantColumns     []string               `json:"constant_columns"`
	NearConstantColumns []NearConstantColumn   `json:"near_constant_columns"`
}

// NumericSummary holds descriptive statistics for one numeric column,
// each value rounded to 2 decimals
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// TopValue is one frequent categorical value. Percentage is of total rows,
// not of non-missing entries.
type TopValue struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoricalSummary holds the distinct count and top values of one
// categorical column
type CategoricalSummary struct {
	UniqueCount int        `json:"unique_count"`
	TopValues   []TopValue `json:"top_values"`
}

// StatisticsResult holds per-column descriptive statistics
type StatisticsResult struct {
	Numerical   map[string]NumericSummary     `json:"numerical"`
	Categorical map[string]CategoricalSummary `json:"categorical"`
}

// StrongPair is a numeric column pair with |Pearson r| > 0.7. ColumnA
// always precedes ColumnB in table order.
type StrongPair struct {
	ColumnA     string  `json:"column_1"`
	ColumnB     string  `json:"column_2"`
	Coefficient float64 `json:"correlation"`
}

// CorrelationResult holds the pairwise Pearson matrix and its strong pairs.
// Both are empty when fewer than 2 numeric columns exist.
type CorrelationResult struct {
	Matrix      map[string]map[string]float64 `json:"matrix"`
	StrongPairs []StrongPair                  `json:"strong_pairs"`
}

// InsightLevel classifies an insight for presentation styling. It is
// structured data carried with the insight, never re-derived from text.
type InsightLevel string

const (
	LevelInfo    InsightLevel = "info"
	LevelWarning InsightLevel = "warning"
	LevelSuccess InsightLevel = "success"
)

// Insight is one classified human-readable finding
type Insight struct {
	Level InsightLevel `json:"level"`
	Text  string       `json:"text"`
}

// Insight constructors
func Info(text string) Insight    { return Insight{Level: LevelInfo, Text: text} }
func Warning(text string) Insight { return Insight{Level: LevelWarning, Text: text} }
func Success(text string) Insight { return Insight{Level: LevelSuccess, Text: text} }

// ChartKind distinguishes chart artifact types
type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartBar       ChartKind = "bar"
)

// Chart is an opaque rendered image keyed by the column it visualizes
type Chart struct {
	Column string    `json:"column"`
	Kind   ChartKind `json:"kind"`
	PNG    []byte    `json:"image"`
}

// ChartSet groups all chart artifacts for a report
type ChartSet struct {
	Histograms []Chart `json:"histograms"`
	BarCharts  []Chart `json:"bar_charts"`
}

// Bundle is the complete immutable output of one report run. Every request
// gets its own bundle; nothing here is shared between runs.
type Bundle struct {
	ID          core.ReportID     `json:"id"`
	Source      string            `json:"source"`
	GeneratedAt core.Timestamp    `json:"generated_at"`
	Overview    OverviewResult    `json:"overview"`
	Quality     QualityResult     `json:"quality"`
	Statistics  StatisticsResult  `json:"statistics"`
	Correlation CorrelationResult `json:"correlation"`
	Insights    []Insight         `json:"insights"`
	Charts      ChartSet          `json:"charts"`
}
