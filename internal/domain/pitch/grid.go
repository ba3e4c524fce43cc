package pitch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// binEpsilon widens the top edge of the last bin so points sitting exactly
// on the pitch boundary (x=80, y=120 in plot space) still land in range.
const binEpsilon = 1e-6

// Default resolutions and smoothing widths, rows along the pitch length and
// columns along the width.
const (
	DominanceRows = 24
	DominanceCols = 16
	ActivityRows  = 48
	ActivityCols  = 32

	DominanceSigma = 1.5
	ActivitySigma  = 2.5

	// NormalizePercentile caps the activity-map scale at the 95th
	// percentile of positive cells so one hot cell cannot flatten the rest.
	NormalizePercentile = 0.95
)

// BinSpec fixes a grid resolution: Rows bins over the length axis (plot Y,
// 0-120) and Cols bins over the width axis (plot X, 0-80).
type BinSpec struct {
	Rows int
	Cols int
}

// Grid is a dense rows x cols matrix of cell values, row index increasing
// with plot Y.
type Grid struct {
	Rows   int
	Cols   int
	Values [][]float64
}

func NewGrid(rows, cols int) Grid {
	values := make([][]float64, rows)
	for i := range values {
		values[i] = make([]float64, cols)
	}
	return Grid{Rows: rows, Cols: cols, Values: values}
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := NewGrid(g.Rows, g.Cols)
	for i := range g.Values {
		copy(out.Values[i], g.Values[i])
	}
	return out
}

// BinCenters returns the cell-center coordinates for a resolution:
// x centers across the width (0-80) and y centers along the length (0-120).
func BinCenters(spec BinSpec) (xCenters, yCenters []float64) {
	xCenters = centers(Width, spec.Cols)
	yCenters = centers(Length, spec.Rows)
	return xCenters, yCenters
}

func centers(extent float64, bins int) []float64 {
	out := make([]float64, bins)
	step := (extent + binEpsilon) / float64(bins)
	for i := range out {
		out[i] = step * (float64(i) + 0.5)
	}
	return out
}

// Histogram2D bins plot-space points into a counts grid. Bins are half-open
// with the final upper edge stretched by binEpsilon; anything outside
// [0,Width]x[0,Length] is dropped.
func Histogram2D(points []PlotPoint, spec BinSpec) Grid {
	g := NewGrid(spec.Rows, spec.Cols)
	colStep := (Width + binEpsilon) / float64(spec.Cols)
	rowStep := (Length + binEpsilon) / float64(spec.Rows)

	for _, p := range points {
		if p.X < 0 || p.X > Width || p.Y < 0 || p.Y > Length {
			continue
		}
		col := int(p.X / colStep)
		row := int(p.Y / rowStep)
		if col >= spec.Cols {
			col = spec.Cols - 1
		}
		if row >= spec.Rows {
			row = spec.Rows - 1
		}
		g.Values[row][col]++
	}
	return g
}

// GaussianSmooth applies a separable Gaussian blur with reflected borders,
// matching the behaviour of the usual ndimage filter (kernel radius
// 4*sigma rounded, reflect boundary mode).
func GaussianSmooth(g Grid, sigma float64) Grid {
	if sigma <= 0 {
		return g.Clone()
	}

	kernel := gaussianKernel(sigma)
	tmp := NewGrid(g.Rows, g.Cols)
	out := NewGrid(g.Rows, g.Cols)

	// Horizontal pass.
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			tmp.Values[r][c] = convolveAt(g.Values[r], c, kernel)
		}
	}

	// Vertical pass over a column view.
	column := make([]float64, g.Rows)
	for c := 0; c < g.Cols; c++ {
		for r := 0; r < g.Rows; r++ {
			column[r] = tmp.Values[r][c]
		}
		for r := 0; r < g.Rows; r++ {
			out.Values[r][c] = convolveAt(column, r, kernel)
		}
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolveAt(line []float64, idx int, kernel []float64) float64 {
	radius := len(kernel) / 2
	acc := 0.0
	for k := -radius; k <= radius; k++ {
		acc += kernel[k+radius] * line[reflectIndex(idx+k, len(line))]
	}
	return acc
}

// reflectIndex mirrors out-of-range indexes back into [0,n) without
// repeating the edge sample twice in a row (scipy's "reflect" mode).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// PercentileNormalize rescales an activity grid by the pct quantile of its
// positive cells and clips to [0,1]. With no positive cells the divisor is
// 1.0, leaving an all-zero grid untouched.
func PercentileNormalize(g Grid, pct float64) Grid {
	positives := make([]float64, 0, g.Rows*g.Cols)
	for _, row := range g.Values {
		for _, v := range row {
			if v > 0 {
				positives = append(positives, v)
			}
		}
	}

	divisor := 1.0
	if len(positives) > 0 {
		sort.Float64s(positives)
		divisor = stat.Quantile(pct, stat.LinInterp, positives, nil)
		if divisor <= 0 {
			divisor = 1.0
		}
	}

	out := NewGrid(g.Rows, g.Cols)
	for r, row := range g.Values {
		for c, v := range row {
			out.Values[r][c] = clamp(v/divisor, 0, 1)
		}
	}
	return out
}

// MinMaxNormalize rescales into [0,1]; a flat grid passes through unchanged.
func MinMaxNormalize(g Grid) Grid {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if !(hi > lo) {
		return g.Clone()
	}

	out := NewGrid(g.Rows, g.Cols)
	for r, row := range g.Values {
		for c, v := range row {
			out.Values[r][c] = (v - lo) / (hi - lo)
		}
	}
	return out
}

// DominanceRatio computes the cellwise share a/(a+b), defaulting empty
// cells to the neutral 0.5 before any smoothing. Grids must share a
// resolution.
func DominanceRatio(a, b Grid) Grid {
	out := NewGrid(a.Rows, a.Cols)
	for r := 0; r < a.Rows; r++ {
		for c := 0; c < a.Cols; c++ {
			total := a.Values[r][c] + b.Values[r][c]
			if total == 0 {
				out.Values[r][c] = 0.5
				continue
			}
			out.Values[r][c] = a.Values[r][c] / total
		}
	}
	return out
}

// Clip bounds every cell into [lo, hi].
func Clip(g Grid, lo, hi float64) Grid {
	out := NewGrid(g.Rows, g.Cols)
	for r, row := range g.Values {
		for c, v := range row {
			out.Values[r][c] = clamp(v, lo, hi)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
