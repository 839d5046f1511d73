package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"datareport/domain/report"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownRenderer produces a Markdown rendition of a report bundle,
// suitable for pasting into docs or converting to HTML
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a Markdown renderer
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render writes the bundle as a Markdown document
func (r *MarkdownRenderer) Render(bundle *report.Bundle) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Report — %s\n\n", bundle.Source)
	fmt.Fprintf(&b, "Generated %s\n\n", bundle.GeneratedAt.Time().Format(time.DateTime))

	b.WriteString("## Dataset Overview\n\n")
	fmt.Fprintf(&b, "| Rows | Columns | Numerical | Categorical | Memory |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %d | %d | %d | %v MB |\n\n",
		FormatCount(bundle.Overview.Rows), bundle.Overview.Columns,
		bundle.Overview.NumericCount, bundle.Overview.CategoricalCount,
		bundle.Overview.MemoryUsageMB)

	b.WriteString("## Data Quality\n\n")
	fmt.Fprintf(&b, "- Duplicate rows: %s (%v%%)\n",
		FormatCount(bundle.Quality.DuplicateRows), bundle.Quality.DuplicatePercentage)
	fmt.Fprintf(&b, "- Missing cells: %s of %s\n",
		FormatCount(bundle.Quality.TotalMissingCells), FormatCount(bundle.Quality.TotalCells))
	if len(bundle.Quality.ConstantColumns) > 0 {
		fmt.Fprintf(&b, "- Constant columns: %s\n", strings.Join(bundle.Quality.ConstantColumns, ", "))
	}
	b.WriteString("\n")

	if len(bundle.Statistics.Numerical) > 0 {
		b.WriteString("## Numerical Columns\n\n")
		b.WriteString("| Column | Mean | Median | Std | Min | Max | Q1 | Q3 |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, name := range bundle.Overview.NumericColumns {
			s, ok := bundle.Statistics.Numerical[name]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "| %s | %v | %v | %v | %v | %v | %v | %v |\n",
				name, s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.Q1, s.Q3)
		}
		b.WriteString("\n")
	}

	if len(bundle.Statistics.Categorical) > 0 {
		b.WriteString("## Categorical Columns\n\n")
		b.WriteString("| Column | Unique | Top Value | Top % |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, name := range bundle.Overview.CategoricalColumns {
			s, ok := bundle.Statistics.Categorical[name]
			if !ok {
				continue
			}
			top, topPct := "N/A", 0.0
			if len(s.TopValues) > 0 {
				top = s.TopValues[0].Value
				topPct = s.TopValues[0].Percentage
			}
			fmt.Fprintf(&b, "| %s | %d | %s | %v%% |\n", name, s.UniqueCount, top, topPct)
		}
		b.WriteString("\n")
	}

	if len(bundle.Correlation.StrongPairs) > 0 {
		b.WriteString("## Strong Correlations\n\n")
		for _, pair := range bundle.Correlation.StrongPairs {
			fmt.Fprintf(&b, "- %s / %s: r = %s\n",
				pair.ColumnA, pair.ColumnB, strconv.FormatFloat(pair.Coefficient, 'f', 3, 64))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Insights\n\n")
	for _, ins := range bundle.Insights {
		fmt.Fprintf(&b, "- **[%s]** %s\n", ins.Level, ins.Text)
	}

	return []byte(b.String())
}

// ToHTML converts a Markdown rendition to an HTML fragment for previewing
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
