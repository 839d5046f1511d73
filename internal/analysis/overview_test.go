package analysis

import (
	"testing"

	"datareport/domain/table"
	"datareport/internal/testkit"
)

func TestOverviewShape(t *testing.T) {
	tbl := testkit.MustTable("shop.csv",
		testkit.NumericColumn("price", 9.99, 19.99, 4.5),
		testkit.NumericColumn("qty", 1, 2, 3),
		testkit.TextColumn("sku", "A-1", "B-2", "C-3"),
	)

	overview := Overview(tbl)

	if overview.Rows != 3 {
		t.Errorf("Rows = %d, want 3", overview.Rows)
	}
	if overview.Columns != 3 {
		t.Errorf("Columns = %d, want 3", overview.Columns)
	}
	if overview.NumericCount+overview.CategoricalCount != overview.Columns {
		t.Errorf("kind counts %d+%d do not sum to column count %d",
			overview.NumericCount, overview.CategoricalCount, overview.Columns)
	}

	wantNames := []string{"price", "qty", "sku"}
	for i, name := range wantNames {
		if overview.ColumnNames[i] != name {
			t.Errorf("ColumnNames[%d] = %q, want %q", i, overview.ColumnNames[i], name)
		}
	}

	if overview.Kinds["price"] != table.KindNumeric {
		t.Errorf("price kind = %v, want numeric", overview.Kinds["price"])
	}
	if overview.Kinds["sku"] != table.KindCategorical {
		t.Errorf("sku kind = %v, want categorical", overview.Kinds["sku"])
	}

	if overview.MemoryUsageMB < 0 {
		t.Errorf("memory estimate should be non-negative, got %v", overview.MemoryUsageMB)
	}
}

func TestOverviewKindCountsAlwaysSum(t *testing.T) {
	tbl := testkit.SalesTable(200)
	overview := Overview(tbl)
	if overview.NumericCount+overview.CategoricalCount != overview.Columns {
		t.Errorf("kind counts must partition the columns: %d + %d != %d",
			overview.NumericCount, overview.CategoricalCount, overview.Columns)
	}
	if len(overview.NumericColumns) != overview.NumericCount {
		t.Errorf("NumericColumns length %d != NumericCount %d",
			len(overview.NumericColumns), overview.NumericCount)
	}
}
