package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"datareport/adapters/charts"
	"datareport/adapters/tabular"
	"datareport/app"
	"datareport/internal/render"
	"datareport/ports"
)

func main() {
	input := flag.String("input", "", "path to the CSV or XLSX file to analyze")
	output := flag.String("output", "report.html", "path for the generated report")
	format := flag.String("format", "html", "output format: html, md or json")
	noCharts := flag.Bool("no-charts", false, "skip chart rendering")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: datareport -input data.csv [-output report.html] [-format html|md|json]")
		os.Exit(2)
	}

	t, err := tabular.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *input, err)
	}

	service := app.NewReportService(chartRenderer(*noCharts, *format))
	bundle, err := service.Generate(context.Background(), t)
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}

	var document []byte
	switch *format {
	case "html":
		renderer, err := render.NewHTMLRenderer()
		if err != nil {
			log.Fatalf("Failed to initialize renderer: %v", err)
		}
		document, err = renderer.Render(bundle)
		if err != nil {
			log.Fatalf("Failed to render report: %v", err)
		}
	case "md":
		document = render.NewMarkdownRenderer().Render(bundle)
	case "json":
		document, err = json.MarshalIndent(bundle, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
	default:
		log.Fatalf("Unknown format %q (want html, md or json)", *format)
	}

	if err := os.WriteFile(*output, document, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	log.Printf("Report written to %s (%d insights)", *output, len(bundle.Insights))
}

// chartRenderer returns a nil interface when charts are skipped; only the
// HTML format embeds them anyway
func chartRenderer(noCharts bool, format string) ports.ChartRenderer {
	if noCharts || format != "html" {
		return nil
	}
	return charts.NewRenderer()
}
