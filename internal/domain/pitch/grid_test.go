package pitch

import (
	"math"
	"testing"
)

func gridSum(g Grid) float64 {
	total := 0.0
	for _, row := range g.Values {
		for _, v := range row {
			total += v
		}
	}
	return total
}

func TestHistogram2D(t *testing.T) {
	t.Parallel()

	spec := BinSpec{Rows: 4, Cols: 4}
	points := []PlotPoint{
		{X: 0, Y: 0},       // first cell
		{X: 5, Y: 5},       // also first cell
		{X: 80, Y: 120},    // boundary point, last cell
		{X: -1, Y: 10},     // out of range, dropped
		{X: 10, Y: 120.01}, // out of range, dropped
	}

	g := Histogram2D(points, spec)

	if got := g.Values[0][0]; got != 2 {
		t.Fatalf("first cell count = %v, want 2", got)
	}
	if got := g.Values[3][3]; got != 1 {
		t.Fatalf("boundary cell count = %v, want 1", got)
	}
	if got := gridSum(g); got != 3 {
		t.Fatalf("total binned points = %v, want 3", got)
	}
}

func TestGaussianSmooth_PreservesMass(t *testing.T) {
	t.Parallel()

	g := NewGrid(12, 8)
	g.Values[3][4] = 7
	g.Values[10][1] = 2

	smoothed := GaussianSmooth(g, 1.5)

	// Reflected borders keep the blur mass-preserving.
	if got, want := gridSum(smoothed), gridSum(g); math.Abs(got-want) > 1e-9 {
		t.Fatalf("smoothed mass = %v, want %v", got, want)
	}
	if smoothed.Values[3][4] >= 7 {
		t.Fatalf("peak cell = %v, want spread below 7", smoothed.Values[3][4])
	}
	if smoothed.Values[3][5] <= 0 {
		t.Fatalf("neighbor cell = %v, want positive after blur", smoothed.Values[3][5])
	}
}

func TestGaussianSmooth_NonPositiveSigmaIsIdentity(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 2)
	g.Values[0][1] = 3

	out := GaussianSmooth(g, 0)
	if out.Values[0][1] != 3 || out.Values[1][0] != 0 {
		t.Fatalf("zero-sigma smooth changed values: %+v", out.Values)
	}

	out.Values[0][1] = 99
	if g.Values[0][1] != 3 {
		t.Fatal("zero-sigma smooth returned a shared backing array")
	}
}

func TestReflectIndex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{-1, 5, 0},
		{-2, 5, 1},
		{5, 5, 4},
		{6, 5, 3},
		{-1, 1, 0},
		{7, 1, 0},
	}
	for _, tc := range cases {
		if got := reflectIndex(tc.i, tc.n); got != tc.want {
			t.Fatalf("reflectIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestPercentileNormalize(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 2)
	g.Values[0][0] = 2
	g.Values[0][1] = 2
	g.Values[1][0] = 4

	out := PercentileNormalize(g, 0.5)

	// Median of the positive cells {2, 2, 4} is 2.
	if got := out.Values[0][0]; got != 1 {
		t.Fatalf("cell at divisor = %v, want 1", got)
	}
	if got := out.Values[1][0]; got != 1 {
		t.Fatalf("cell above divisor = %v, want clamped to 1", got)
	}
	if got := out.Values[1][1]; got != 0 {
		t.Fatalf("empty cell = %v, want 0", got)
	}
}

func TestPercentileNormalize_NoPositiveCells(t *testing.T) {
	t.Parallel()

	g := NewGrid(3, 3)
	out := PercentileNormalize(g, NormalizePercentile)
	if got := gridSum(out); got != 0 {
		t.Fatalf("all-zero grid changed, sum = %v", got)
	}
}

func TestMinMaxNormalize(t *testing.T) {
	t.Parallel()

	g := NewGrid(1, 3)
	g.Values[0][0] = 2
	g.Values[0][1] = 4
	g.Values[0][2] = 6

	out := MinMaxNormalize(g)
	want := []float64{0, 0.5, 1}
	for i, v := range want {
		if math.Abs(out.Values[0][i]-v) > 1e-12 {
			t.Fatalf("cell %d = %v, want %v", i, out.Values[0][i], v)
		}
	}

	flat := NewGrid(1, 2)
	flat.Values[0][0] = 3
	flat.Values[0][1] = 3
	if out := MinMaxNormalize(flat); out.Values[0][0] != 3 {
		t.Fatalf("flat grid changed: %v", out.Values[0][0])
	}
}

func TestDominanceRatio(t *testing.T) {
	t.Parallel()

	a := NewGrid(1, 3)
	b := NewGrid(1, 3)
	a.Values[0][0] = 3
	b.Values[0][0] = 1
	b.Values[0][1] = 2

	out := DominanceRatio(a, b)

	if got := out.Values[0][0]; got != 0.75 {
		t.Fatalf("contested cell = %v, want 0.75", got)
	}
	if got := out.Values[0][1]; got != 0 {
		t.Fatalf("away-only cell = %v, want 0", got)
	}
	if got := out.Values[0][2]; got != 0.5 {
		t.Fatalf("empty cell = %v, want neutral 0.5", got)
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	g := NewGrid(1, 3)
	g.Values[0][0] = -0.2
	g.Values[0][1] = 0.4
	g.Values[0][2] = 1.7

	out := Clip(g, 0, 1)
	want := []float64{0, 0.4, 1}
	for i, v := range want {
		if out.Values[0][i] != v {
			t.Fatalf("cell %d = %v, want %v", i, out.Values[0][i], v)
		}
	}
}

func TestBinCenters(t *testing.T) {
	t.Parallel()

	xCenters, yCenters := BinCenters(BinSpec{Rows: 24, Cols: 16})

	if len(xCenters) != 16 || len(yCenters) != 24 {
		t.Fatalf("center counts = %d/%d, want 16/24", len(xCenters), len(yCenters))
	}
	if math.Abs(xCenters[0]-2.5) > 1e-3 {
		t.Fatalf("first x center = %v, want 2.5", xCenters[0])
	}
	if math.Abs(xCenters[15]-77.5) > 1e-3 {
		t.Fatalf("last x center = %v, want 77.5", xCenters[15])
	}
	if math.Abs(yCenters[0]-2.5) > 1e-3 {
		t.Fatalf("first y center = %v, want 2.5", yCenters[0])
	}
	if math.Abs(yCenters[23]-117.5) > 1e-3 {
		t.Fatalf("last y center = %v, want 117.5", yCenters[23])
	}
}

func TestGridClone(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 2)
	g.Values[1][1] = 5

	clone := g.Clone()
	clone.Values[1][1] = 9

	if g.Values[1][1] != 5 {
		t.Fatalf("clone shares backing array, original = %v", g.Values[1][1])
	}
}
