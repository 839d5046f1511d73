// Package testkit provides deterministic synthetic tables for tests. All
// generators use fixed seeds so assertions stay stable across runs.
package testkit

import (
	"fmt"
	"math/rand"

	"datareport/domain/table"
)

// SalesTable builds a synthetic retail dataset with a mix of numeric and
// categorical columns, a strongly correlated numeric pair, and some missing
// values in the notes column.
func SalesTable(rows int) *table.Table {
	rng := rand.New(rand.NewSource(42))

	regions := []string{"North", "South", "East", "West"}

	units := make([]table.Cell, rows)
	revenue := make([]table.Cell, rows)
	region := make([]table.Cell, rows)
	notes := make([]table.Cell, rows)

	for i := 0; i < rows; i++ {
		u := float64(rng.Intn(90) + 10)
		units[i] = table.NumericCell(u)
		// Revenue tracks units almost exactly, giving a strong correlation
		revenue[i] = table.NumericCell(u*19.99 + rng.Float64()*5)
		region[i] = table.TextCell(regions[rng.Intn(len(regions))])
		if i%5 == 0 {
			notes[i] = table.MissingCell()
		} else {
			notes[i] = table.TextCell(fmt.Sprintf("order-%d", i))
		}
	}

	t, err := table.New("sales.csv", []table.Column{
		{Name: "units", Kind: table.KindNumeric, Cells: units},
		{Name: "revenue", Kind: table.KindNumeric, Cells: revenue},
		{Name: "region", Kind: table.KindCategorical, Cells: region},
		{Name: "notes", Kind: table.KindCategorical, Cells: notes},
	})
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid sales table: %v", err))
	}
	return t
}

// NumericColumn builds a numeric column from raw values, treating NaN
// markers as missing
func NumericColumn(name string, values ...float64) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		cells[i] = table.NumericCell(v)
	}
	return table.Column{Name: name, Kind: table.KindNumeric, Cells: cells}
}

// TextColumn builds a categorical column; empty strings become missing cells
func TextColumn(name string, values ...string) table.Column {
	cells := make([]table.Cell, len(values))
	for i, v := range values {
		if v == "" {
			cells[i] = table.MissingCell()
		} else {
			cells[i] = table.TextCell(v)
		}
	}
	return table.Column{Name: name, Kind: table.KindCategorical, Cells: cells}
}

// MustTable builds a table or panics; for test fixtures only
func MustTable(name string, columns ...table.Column) *table.Table {
	t, err := table.New(name, columns)
	if err != nil {
		panic(fmt.Sprintf("testkit: invalid table %s: %v", name, err))
	}
	return t
}
