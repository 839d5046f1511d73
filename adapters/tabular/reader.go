// Package tabular reads delimited-text and spreadsheet sources into the
// domain table model, inferring a value kind per column and normalizing
// missing markers. Everything downstream assumes its output is well formed.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"datareport/domain/table"
	apperrors "datareport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Missing-value markers recognized in source cells (compared lowercased
// after trimming)
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nan":  true,
	"none": true,
	"-":    true,
}

// ReadFile loads a CSV or XLSX file from disk, dispatching on extension
func ReadFile(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.MalformedSource(fmt.Sprintf("cannot open %s", path), err)
	}
	defer file.Close()

	return Read(file, filepath.Base(path))
}

// Read loads a table from a reader; the source name's extension selects the
// format (.xlsx for spreadsheets, anything else is parsed as CSV)
func Read(r io.Reader, name string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ReadXLSX(r, name)
	}
	return ReadCSV(r, name)
}

// ReadCSV parses delimited text with a header row
func ReadCSV(r io.Reader, name string) (*table.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, pad later

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.MalformedSource("unable to parse CSV data", err)
	}

	return buildTable(name, records)
}

// ReadXLSX parses the first sheet of a spreadsheet
func ReadXLSX(r io.Reader, name string) (*table.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.MalformedSource("unable to open spreadsheet", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.MalformedSource("spreadsheet has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.MalformedSource(fmt.Sprintf("unable to read sheet %s", sheets[0]), err)
	}

	return buildTable(name, rows)
}

// buildTable turns header + data rows into a typed table
func buildTable(name string, records [][]string) (*table.Table, error) {
	if len(records) == 0 {
		return nil, apperrors.EmptyInput("the source contains no data")
	}

	headers := normalizeHeaders(records[0])
	dataRows := records[1:]
	if len(dataRows) == 0 {
		return nil, apperrors.EmptyInput("the source has a header row but no data rows")
	}

	columns := make([]table.Column, len(headers))
	for ci, header := range headers {
		raw := make([]string, len(dataRows))
		for ri, row := range dataRows {
			if ci < len(row) {
				raw[ri] = strings.TrimSpace(row[ci])
			}
		}
		columns[ci] = buildColumn(header, raw)
	}

	t, err := table.New(name, columns)
	if err != nil {
		if errors.Is(err, table.ErrNoRows) || errors.Is(err, table.ErrNoColumns) {
			return nil, apperrors.EmptyInput("the source contains no data")
		}
		return nil, apperrors.MalformedSource("invalid table structure", err)
	}
	return t, nil
}

// buildColumn infers the column kind and materializes cells. A column is
// numeric when every non-missing value parses as a float and at least one
// value is present.
func buildColumn(name string, raw []string) table.Column {
	parsed := make([]float64, len(raw))
	missing := make([]bool, len(raw))
	for i, value := range raw {
		missing[i] = isMissing(value)
	}

	allNumeric := true
	present := 0
	for i, value := range raw {
		if missing[i] {
			continue
		}
		present++
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			allNumeric = false
			break
		}
		parsed[i] = v
	}
	numeric := allNumeric && present > 0

	cells := make([]table.Cell, len(raw))
	for i, value := range raw {
		switch {
		case missing[i]:
			cells[i] = table.MissingCell()
		case numeric:
			cells[i] = table.Cell{Raw: value, Number: parsed[i]}
		default:
			cells[i] = table.TextCell(value)
		}
	}

	kind := table.KindCategorical
	if numeric {
		kind = table.KindNumeric
	}
	return table.Column{Name: name, Kind: kind, Cells: cells}
}

func isMissing(value string) bool {
	return missingMarkers[strings.ToLower(value)]
}

// normalizeHeaders trims header names and fills in blanks so every column
// has a usable name
func normalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		normalized[i] = h
	}
	return normalized
}
