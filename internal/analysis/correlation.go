package analysis

import (
	"math"

	"datareport/domain/report"
	"datareport/domain/table"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// strongCorrelation is the |r| threshold above which a pair is reported
const strongCorrelation = 0.7

// Correlation computes the pairwise-complete Pearson matrix over numeric
// columns and extracts strong pairs from its upper triangle. Fewer than 2
// numeric columns yields empty results, not an error.
func Correlation(t *table.Table) report.CorrelationResult {
	result := report.CorrelationResult{
		Matrix:      make(map[string]map[string]float64),
		StrongPairs: make([]report.StrongPair, 0),
	}

	numeric := t.NumericColumns()
	if len(numeric) < 2 {
		return result
	}

	for i, a := range numeric {
		for j := i; j < len(numeric); j++ {
			b := numeric[j]

			r := 1.0
			if i != j {
				x, y := t.PairwiseComplete(a, b)
				r = pearson(x, y)
			}
			if math.IsNaN(r) {
				// Zero-variance or empty pair; leave the entry out so the
				// matrix stays serializable
				continue
			}

			setMatrix(result.Matrix, a, b, r)
			setMatrix(result.Matrix, b, a, r)

			if i != j && math.Abs(r) > strongCorrelation {
				rounded, err := stats.Round(r, 3)
				if err != nil {
					continue
				}
				result.StrongPairs = append(result.StrongPairs, report.StrongPair{
					ColumnA:     a,
					ColumnB:     b,
					Coefficient: rounded,
				})
			}
		}
	}

	return result
}

func pearson(x, y []float64) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

func setMatrix(m map[string]map[string]float64, a, b string, r float64) {
	if m[a] == nil {
		m[a] = make(map[string]float64)
	}
	m[a][b] = r
}
