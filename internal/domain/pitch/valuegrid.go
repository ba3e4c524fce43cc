package pitch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/pitchsight/pitchsight/internal/domain/event"
)

// ValueGrid is the static pitch-value lookup table (an expected-threat
// style grid): rows span the pitch width, columns the length, in raw
// provider axes. It is loaded once at process start and treated as
// read-only shared state afterwards.
type ValueGrid struct {
	rows   int
	cols   int
	values [][]float64
}

// LoadValueGrid reads the grid from a CSV resource. The file is required:
// momentum computation cannot proceed without it, so a missing or malformed
// file is a configuration error surfaced at startup, not per match.
func LoadValueGrid(path string) (*ValueGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pitch value grid %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read pitch value grid %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pitch value grid %s is empty", path)
	}

	// A leading header row of column labels is tolerated and skipped.
	start := 0
	if _, err := strconv.ParseFloat(records[0][0], 64); err != nil {
		start = 1
	}
	if start >= len(records) {
		return nil, fmt.Errorf("pitch value grid %s has no data rows", path)
	}

	values := make([][]float64, 0, len(records)-start)
	cols := len(records[start])
	for i, record := range records[start:] {
		if len(record) != cols {
			return nil, fmt.Errorf("pitch value grid %s: row %d has %d columns, want %d", path, i+start+1, len(record), cols)
		}
		row := make([]float64, cols)
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("pitch value grid %s: row %d col %d: %w", path, i+start+1, j+1, err)
			}
			row[j] = v
		}
		values = append(values, row)
	}

	return &ValueGrid{
		rows:   len(values),
		cols:   cols,
		values: values,
	}, nil
}

// NewValueGrid wraps an in-memory table, used by tests and embedded
// defaults. Rows must be rectangular.
func NewValueGrid(values [][]float64) (*ValueGrid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("pitch value grid must be non-empty")
	}
	cols := len(values[0])
	for i, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("pitch value grid row %d has %d columns, want %d", i, len(row), cols)
		}
	}
	return &ValueGrid{rows: len(values), cols: cols, values: values}, nil
}

func (g *ValueGrid) Rows() int { return g.rows }
func (g *ValueGrid) Cols() int { return g.cols }

// ValueAt looks up the cell containing a raw location, binning the length
// axis into the grid's columns and the width axis into its rows.
// Out-of-range coordinates clamp to the boundary cells.
func (g *ValueGrid) ValueAt(loc event.Location) float64 {
	col := binIndex(loc.X, Length, g.cols)
	row := binIndex(loc.Y, Width, g.rows)
	return g.values[row][col]
}

// Delta is the change in positional value of moving the ball from start to
// end, the per-action quantity the momentum series accumulates.
func (g *ValueGrid) Delta(start, end event.Location) float64 {
	return g.ValueAt(end) - g.ValueAt(start)
}

func binIndex(v, extent float64, bins int) int {
	idx := int(v / ((extent + binEpsilon) / float64(bins)))
	if idx < 0 {
		return 0
	}
	if idx >= bins {
		return bins - 1
	}
	return idx
}
