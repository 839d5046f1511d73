package table

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind classifies the values a column carries
type ValueKind string

const (
	KindNumeric     ValueKind = "numeric"
	KindCategorical ValueKind = "categorical"
)

// Validation errors for table construction
var (
	ErrNoRows        = errors.New("table has no rows")
	ErrNoColumns     = errors.New("table has no columns")
	ErrRaggedColumns = errors.New("columns have differing lengths")
	ErrDuplicateName = errors.New("duplicate column name")
)

// Cell is a single value in a column. Raw always holds the original source
// text; Number is only meaningful for numeric columns with Missing == false.
type Cell struct {
	Raw     string
	Number  float64
	Missing bool
}

// Display returns the human-readable form of the cell
func (c Cell) Display() string {
	if c.Missing {
		return ""
	}
	return c.Raw
}

// MissingCell returns a cell flagged as missing
func MissingCell() Cell {
	return Cell{Missing: true}
}

// NumericCell returns a numeric cell with a canonical raw representation
func NumericCell(v float64) Cell {
	return Cell{Raw: FormatNumber(v), Number: v}
}

// TextCell returns a categorical cell
func TextCell(s string) Cell {
	return Cell{Raw: s}
}

// FormatNumber renders a float the way the rest of the system stringifies
// numeric values (shortest exact representation)
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Column is an ordered sequence of cells of a single kind
type Column struct {
	Name  string
	Kind  ValueKind
	Cells []Cell
}

// Len returns the number of cells including missing ones
func (c Column) Len() int { return len(c.Cells) }

// MissingCount returns the number of missing cells
func (c Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			n++
		}
	}
	return n
}

// NonMissingCount returns the number of present cells
func (c Column) NonMissingCount() int {
	return len(c.Cells) - c.MissingCount()
}

// NumericValues returns the non-missing numeric values in row order
func (c Column) NumericValues() []float64 {
	values := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Missing {
			continue
		}
		values = append(values, cell.Number)
	}
	return values
}

// ValueCount is one distinct value and how often it occurs
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts tallies non-missing values in descending count order. Ties
// keep first-encountered order, so results are deterministic for a fixed
// table ordering.
func (c Column) ValueCounts() []ValueCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, cell := range c.Cells {
		if cell.Missing {
			continue
		}
		key := c.valueKey(cell)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	rank := make(map[string]int, len(order))
	for i, key := range order {
		rank[key] = i
	}

	result := make([]ValueCount, 0, len(order))
	for _, key := range order {
		result = append(result, ValueCount{Value: key, Count: counts[key]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return rank[result[i].Value] < rank[result[j].Value]
	})
	return result
}

// DistinctCount returns the number of distinct non-missing values
func (c Column) DistinctCount() int {
	return len(c.ValueCounts())
}

// valueKey canonicalizes a cell for counting and duplicate detection.
// Numeric cells key on the parsed value so "1" and "1.0" collapse.
func (c Column) valueKey(cell Cell) string {
	if c.Kind == KindNumeric {
		return FormatNumber(cell.Number)
	}
	return cell.Raw
}

// Table is the immutable in-memory dataset under analysis
type Table struct {
	name    string
	columns []Column
	index   map[string]int
}

// New validates and builds a table. A table with zero rows or zero columns
// is rejected; the analysis pipeline never sees one.
func New(name string, columns []Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	rows := len(columns[0].Cells)
	if rows == 0 {
		return nil, ErrNoRows
	}

	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if len(col.Cells) != rows {
			return nil, fmt.Errorf("%w: column %q has %d cells, expected %d",
				ErrRaggedColumns, col.Name, len(col.Cells), rows)
		}
		if _, exists := index[col.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, col.Name)
		}
		index[col.Name] = i
	}

	return &Table{name: name, columns: columns, index: index}, nil
}

// Name returns the source name of the table (typically the uploaded filename)
func (t *Table) Name() string { return t.name }

// RowCount returns the number of rows
func (t *Table) RowCount() int { return len(t.columns[0].Cells) }

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int { return len(t.columns) }

// Columns returns the ordered columns
func (t *Table) Columns() []Column { return t.columns }

// ColumnNames returns the ordered column names
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// NumericColumns returns numeric column names in table order
func (t *Table) NumericColumns() []string {
	return t.columnsOfKind(KindNumeric)
}

// CategoricalColumns returns categorical column names in table order
func (t *Table) CategoricalColumns() []string {
	return t.columnsOfKind(KindCategorical)
}

func (t *Table) columnsOfKind(kind ValueKind) []string {
	names := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		if col.Kind == kind {
			names = append(names, col.Name)
		}
	}
	return names
}

// RowKey returns a canonical fingerprint of row i. Two rows with equal keys
// are duplicates; missing cells match other missing cells.
func (t *Table) RowKey(i int) string {
	var b strings.Builder
	for ci, col := range t.columns {
		if ci > 0 {
			b.WriteByte(0x1f)
		}
		cell := col.Cells[i]
		if cell.Missing {
			b.WriteByte(0x00)
			continue
		}
		b.WriteString(col.valueKey(cell))
	}
	return b.String()
}

// PairwiseComplete returns the aligned values of two numeric columns using
// only rows where both are non-missing
func (t *Table) PairwiseComplete(a, b string) (x, y []float64) {
	colA, okA := t.Column(a)
	colB, okB := t.Column(b)
	if !okA || !okB {
		return nil, nil
	}
	for i := range colA.Cells {
		ca, cb := colA.Cells[i], colB.Cells[i]
		if ca.Missing || cb.Missing {
			continue
		}
		x = append(x, ca.Number)
		y = append(y, cb.Number)
	}
	return x, y
}
