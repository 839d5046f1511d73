// Package render assembles report bundles into human-facing documents: a
// standalone HTML export with inline chart images and a Markdown rendition.
package render

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"datareport/domain/report"
)

//go:embed templates/report.html
var templateFS embed.FS

// HTMLRenderer expands report bundles into standalone HTML documents
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded report template
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("report.html").Funcs(template.FuncMap{
		"count": FormatCount,
	}).ParseFS(templateFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the complete HTML document for a bundle. Rendering goes
// to a buffer first so errors never produce a half-written document.
func (r *HTMLRenderer) Render(bundle *report.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, newReportView(bundle)); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

// View model types consumed by the template

type reportView struct {
	Source      string
	GeneratedAt string
	Overview    report.OverviewResult
	Quality     report.QualityResult
	Missing     []missingView
	Numeric     []numericView
	Categorical []categoricalView
	Histograms  []chartView
	BarCharts   []chartView
	CorrColumns []string
	CorrRows    []corrRow
	StrongPairs []report.StrongPair
	Insights    []insightView
}

type missingView struct {
	Column     string
	Count      int
	Percentage float64
}

type numericView struct {
	Column  string
	Summary report.NumericSummary
}

type categoricalView struct {
	Column   string
	Summary  report.CategoricalSummary
	TopValue string
	TopPct   float64
}

type chartView struct {
	Column string
	B64    string
}

type corrCell struct {
	Display string
	Style   template.CSS
}

type corrRow struct {
	Name  string
	Cells []corrCell
}

type insightView struct {
	Class string
	Text  string
}

func newReportView(bundle *report.Bundle) reportView {
	view := reportView{
		Source:      bundle.Source,
		GeneratedAt: bundle.GeneratedAt.Time().Format(time.DateTime),
		Overview:    bundle.Overview,
		Quality:     bundle.Quality,
		StrongPairs: bundle.Correlation.StrongPairs,
	}

	for _, name := range bundle.Overview.ColumnNames {
		if stat, ok := bundle.Quality.MissingValues[name]; ok {
			view.Missing = append(view.Missing, missingView{name, stat.Count, stat.Percentage})
		}
	}
	sort.SliceStable(view.Missing, func(i, j int) bool {
		return view.Missing[i].Percentage > view.Missing[j].Percentage
	})

	for _, name := range bundle.Overview.NumericColumns {
		if summary, ok := bundle.Statistics.Numerical[name]; ok {
			view.Numeric = append(view.Numeric, numericView{name, summary})
		}
	}
	for _, name := range bundle.Overview.CategoricalColumns {
		summary, ok := bundle.Statistics.Categorical[name]
		if !ok {
			continue
		}
		cv := categoricalView{Column: name, Summary: summary, TopValue: "N/A"}
		if len(summary.TopValues) > 0 {
			cv.TopValue = summary.TopValues[0].Value
			cv.TopPct = summary.TopValues[0].Percentage
		}
		view.Categorical = append(view.Categorical, cv)
	}

	for _, chart := range bundle.Charts.Histograms {
		view.Histograms = append(view.Histograms, chartView{chart.Column, base64.StdEncoding.EncodeToString(chart.PNG)})
	}
	for _, chart := range bundle.Charts.BarCharts {
		view.BarCharts = append(view.BarCharts, chartView{chart.Column, base64.StdEncoding.EncodeToString(chart.PNG)})
	}

	if len(bundle.Correlation.Matrix) > 0 {
		view.CorrColumns = bundle.Overview.NumericColumns
		for _, a := range view.CorrColumns {
			row := corrRow{Name: a}
			for _, b := range view.CorrColumns {
				row.Cells = append(row.Cells, correlationCell(bundle.Correlation.Matrix, a, b))
			}
			view.CorrRows = append(view.CorrRows, row)
		}
	}

	for _, ins := range bundle.Insights {
		view.Insights = append(view.Insights, insightView{Class: string(ins.Level), Text: ins.Text})
	}

	return view
}

// correlationCell formats one heatmap cell, shading from red (negative)
// through white to indigo (positive)
func correlationCell(matrix map[string]map[string]float64, a, b string) corrCell {
	r, ok := matrix[a][b]
	if !ok {
		return corrCell{Display: "–", Style: "background:#F3F4F6"}
	}

	var style string
	if r >= 0 {
		style = fmt.Sprintf("background:rgba(79,70,229,%.2f)", absFloat(r)*0.85)
	} else {
		style = fmt.Sprintf("background:rgba(220,38,38,%.2f)", absFloat(r)*0.85)
	}

	return corrCell{
		Display: strconv.FormatFloat(r, 'f', 2, 64),
		Style:   template.CSS(style),
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatCount renders an integer with thousand separators
func FormatCount(n int) string {
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
