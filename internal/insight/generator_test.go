package insight

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"datareport/domain/report"
	"datareport/domain/table"
	"datareport/internal/analysis"
	"datareport/internal/testkit"
)

func generateFor(t *table.Table) []report.Insight {
	g := NewGenerator()
	overview := analysis.Overview(t)
	quality := analysis.Quality(t)
	statistics := analysis.Statistics(t)
	correlation := analysis.Correlation(t)
	return g.Generate(t, overview, quality, statistics, correlation)
}

func findInsight(insights []report.Insight, fragment string) (report.Insight, bool) {
	for _, in := range insights {
		if strings.Contains(in.Text, fragment) {
			return in, true
		}
	}
	return report.Insight{}, false
}

// A clean dataset gets success insights for completeness and uniqueness
func TestGenerateCleanDataset(t *testing.T) {
	cols := make([]table.Column, 0, 3)
	a := make([]float64, 120)
	b := make([]string, 120)
	for i := range a {
		a[i] = float64(i)
		b[i] = fmt.Sprintf("id-%d", i)
	}
	cols = append(cols,
		testkit.NumericColumn("seq", a...),
		testkit.TextColumn("id", b...),
	)
	tbl := testkit.MustTable("clean.csv", cols...)

	insights := generateFor(tbl)

	complete, ok := findInsight(insights, "No missing values detected")
	if !ok {
		t.Fatal("expected a completeness insight")
	}
	if complete.Level != report.LevelSuccess {
		t.Errorf("completeness level = %v, want success", complete.Level)
	}

	unique, ok := findInsight(insights, "No duplicate rows detected")
	if !ok {
		t.Fatal("expected a uniqueness insight")
	}
	if unique.Level != report.LevelSuccess {
		t.Errorf("uniqueness level = %v, want success", unique.Level)
	}
}

// A column with 25% missing values is flagged with the exact percentage
// and row count
func TestGenerateHighMissingColumn(t *testing.T) {
	values := make([]string, 200)
	for i := range values {
		if i < 50 {
			values[i] = "" // 50 of 200 missing: 25%
		} else {
			values[i] = fmt.Sprintf("v-%d", i)
		}
	}
	seq := make([]float64, 200)
	for i := range seq {
		seq[i] = float64(i)
	}
	tbl := testkit.MustTable("test.csv",
		testkit.NumericColumn("seq", seq...),
		testkit.TextColumn("sparse", values...),
	)

	insights := generateFor(tbl)

	in, ok := findInsight(insights, "Column 'sparse' has 25.0% missing values (50 rows)")
	if !ok {
		t.Fatalf("missing-value warning not found in %+v", insights)
	}
	if in.Level != report.LevelWarning {
		t.Errorf("level = %v, want warning", in.Level)
	}
}

func TestGenerateModerateMissingColumn(t *testing.T) {
	values := make([]string, 100)
	for i := range values {
		if i < 10 {
			values[i] = "" // 10%: moderate, not high
		} else {
			values[i] = fmt.Sprintf("v-%d", i)
		}
	}
	tbl := testkit.MustTable("test.csv",
		testkit.TextColumn("sparse", values...),
	)

	insights := generateFor(tbl)

	in, ok := findInsight(insights, "Column 'sparse' has 10.0% missing values - consider imputation")
	if !ok {
		t.Fatalf("moderate missing insight not found in %+v", insights)
	}
	if in.Level != report.LevelInfo {
		t.Errorf("level = %v, want info", in.Level)
	}
}

// A very strong pair (r = 0.95) names both columns, strength and direction
func TestGenerateCorrelationInsights(t *testing.T) {
	g := NewGenerator()
	correlation := report.CorrelationResult{
		Matrix: map[string]map[string]float64{},
		StrongPairs: []report.StrongPair{
			{ColumnA: "height", ColumnB: "weight", Coefficient: 0.95},
			{ColumnA: "age", ColumnB: "income", Coefficient: -0.75},
		},
	}

	insights := g.correlationInsights(correlation)

	in, ok := findInsight(insights, "Very strong positive correlation detected between 'height' and 'weight' (r = 0.95)")
	if !ok {
		t.Fatalf("very strong pair insight not found in %+v", insights)
	}
	if in.Level != report.LevelInfo {
		t.Errorf("level = %v, want info", in.Level)
	}

	if _, ok := findInsight(insights, "Strong negative correlation detected between 'age' and 'income' (r = -0.75)"); !ok {
		t.Errorf("strong negative pair insight not found in %+v", insights)
	}
}

func TestGenerateNoStrongCorrelations(t *testing.T) {
	g := NewGenerator()
	insights := g.correlationInsights(report.CorrelationResult{
		Matrix:      map[string]map[string]float64{},
		StrongPairs: []report.StrongPair{},
	})
	if len(insights) != 1 {
		t.Fatalf("expected a single fallback insight, got %+v", insights)
	}
	if !strings.Contains(insights[0].Text, "No strong correlations (|r| > 0.7) detected") {
		t.Errorf("unexpected text: %s", insights[0].Text)
	}
}

func TestGenerateManyStrongPairs(t *testing.T) {
	g := NewGenerator()
	pairs := make([]report.StrongPair, 4)
	for i := range pairs {
		pairs[i] = report.StrongPair{
			ColumnA:     fmt.Sprintf("a%d", i),
			ColumnB:     fmt.Sprintf("b%d", i),
			Coefficient: 0.8,
		}
	}
	insights := g.correlationInsights(report.CorrelationResult{StrongPairs: pairs})
	if _, ok := findInsight(insights, "Multiple strong correlations detected (4 pairs)"); !ok {
		t.Errorf("expected a feature-selection hint with 4 pairs: %+v", insights)
	}
}

// A category holding 85% of the values triggers the imbalance warning
func TestGenerateImbalancedCategorical(t *testing.T) {
	values := make([]string, 200)
	for i := range values {
		if i < 170 {
			values[i] = "common"
		} else {
			values[i] = fmt.Sprintf("rare-%d", i)
		}
	}
	tbl := testkit.MustTable("test.csv",
		testkit.TextColumn("status", values...),
	)

	insights := generateFor(tbl)

	in, ok := findInsight(insights, "Column 'status' is highly imbalanced - 'common' represents 85.0% of values")
	if !ok {
		t.Fatalf("imbalance warning not found in %+v", insights)
	}
	if in.Level != report.LevelWarning {
		t.Errorf("level = %v, want warning", in.Level)
	}
}

func TestGenerateDominantCategorical(t *testing.T) {
	// 60%: dominant but not imbalanced
	values := make([]string, 100)
	for i := range values {
		switch {
		case i < 60:
			values[i] = "big"
		case i < 85:
			values[i] = "mid"
		default:
			values[i] = "small"
		}
	}
	tbl := testkit.MustTable("test.csv",
		testkit.TextColumn("segment", values...),
	)

	insights := generateFor(tbl)
	if _, ok := findInsight(insights, "Category 'big' dominates column 'segment' (60.0%)"); !ok {
		t.Fatalf("dominance insight not found in %+v", insights)
	}
}

// Fewer than 100 rows yields the small-dataset warning
func TestGenerateSmallDataset(t *testing.T) {
	tbl := testkit.MustTable("tiny.csv",
		testkit.NumericColumn("v", 1, 2, 3, 4, 5),
	)

	insights := generateFor(tbl)

	in, ok := findInsight(insights, "Small dataset (5 rows)")
	if !ok {
		t.Fatalf("small-dataset warning not found in %+v", insights)
	}
	if in.Level != report.LevelWarning {
		t.Errorf("level = %v, want warning", in.Level)
	}
	if insights[0] != in {
		t.Error("size insight must lead the list")
	}
}

func TestGenerateSizeInsightFormatsThousands(t *testing.T) {
	g := NewGenerator()
	insights := g.sizeInsights(report.OverviewResult{Rows: 5000, Columns: 4})
	if _, ok := findInsight(insights, "Dataset contains 5,000 rows and 4 columns"); !ok {
		t.Errorf("expected thousands separator in %+v", insights)
	}
}

func TestGenerateDuplicateWarning(t *testing.T) {
	g := NewGenerator()
	insights := g.duplicateInsights(report.QualityResult{
		DuplicateRows:       150,
		DuplicatePercentage: 15,
	})
	in, ok := findInsight(insights, "Dataset contains 150 duplicate rows (15.0%)")
	if !ok {
		t.Fatalf("duplicate warning not found in %+v", insights)
	}
	if in.Level != report.LevelWarning {
		t.Errorf("level = %v, want warning", in.Level)
	}
}

func TestGenerateSkewedColumn(t *testing.T) {
	g := NewGenerator()
	overview := report.OverviewResult{NumericColumns: []string{"income"}}
	statistics := report.StatisticsResult{
		Numerical: map[string]report.NumericSummary{
			"income": {Mean: 100, Median: 50, StdDev: 10},
		},
	}

	insights := g.distributionInsights(overview, statistics)
	if _, ok := findInsight(insights, "Column 'income' appears right-skewed (mean: 100, median: 50)"); !ok {
		t.Fatalf("skew insight not found in %+v", insights)
	}
}

func TestGenerateHighVariability(t *testing.T) {
	g := NewGenerator()
	overview := report.OverviewResult{NumericColumns: []string{"noise"}}
	statistics := report.StatisticsResult{
		Numerical: map[string]report.NumericSummary{
			"noise": {Mean: 10, Median: 10, StdDev: 25},
		},
	}

	insights := g.distributionInsights(overview, statistics)
	if _, ok := findInsight(insights, "Column 'noise' has high variability (CV > 100%)"); !ok {
		t.Fatalf("variability insight not found in %+v", insights)
	}
}

// Identical inputs must always yield the identical insight sequence
func TestGenerateDeterministic(t *testing.T) {
	tbl := testkit.SalesTable(500)

	first := generateFor(tbl)
	for i := 0; i < 5; i++ {
		if got := generateFor(tbl); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

// High-missing columns are reported worst-first regardless of table order
func TestGenerateMissingOrderedByPercentage(t *testing.T) {
	mild := make([]string, 100)
	severe := make([]string, 100)
	for i := range mild {
		if i < 30 {
			mild[i] = ""
		} else {
			mild[i] = "x"
		}
		if i < 60 {
			severe[i] = ""
		} else {
			severe[i] = "y"
		}
	}
	tbl := testkit.MustTable("test.csv",
		testkit.TextColumn("mild", mild...),
		testkit.TextColumn("severe", severe...),
	)

	insights := generateFor(tbl)

	severeIdx, mildIdx := -1, -1
	for i, in := range insights {
		if strings.Contains(in.Text, "Column 'severe'") {
			severeIdx = i
		}
		if strings.Contains(in.Text, "Column 'mild'") {
			mildIdx = i
		}
	}
	if severeIdx == -1 || mildIdx == -1 {
		t.Fatalf("both columns should be flagged: %+v", insights)
	}
	if severeIdx > mildIdx {
		t.Error("higher missing percentage should be reported first")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		p    float64
		want string
	}{
		{25, "25.0"},
		{33.33, "33.33"},
		{85, "85.0"},
		{12.5, "12.5"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.p); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
