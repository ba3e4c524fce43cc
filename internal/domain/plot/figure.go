// Package plot defines the abstract artifact descriptors the analytics
// engine produces. They are plain data shapes meant for direct JSON
// serialization and for rendering by whatever charting layer sits
// downstream; nothing here depends on a particular charting library.
package plot

// ColorStop anchors a color at a position in [0,1] of a gradient scale.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// AxisVisibility toggles axis rendering per dimension.
type AxisVisibility struct {
	X bool `json:"x"`
	Y bool `json:"y"`
}

// Shape is a geometric annotation in plot coordinates (pitch markings,
// phase shading). Type is one of "rect", "line" or "circle"; circles are
// described by their bounding box.
type Shape struct {
	Type      string  `json:"type"`
	X0        float64 `json:"x0"`
	Y0        float64 `json:"y0"`
	X1        float64 `json:"x1"`
	Y1        float64 `json:"y1"`
	LineColor string  `json:"line_color,omitempty"`
	FillColor string  `json:"fill_color,omitempty"`
}

// Annotation is a free-floating text label.
type Annotation struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Color string  `json:"color,omitempty"`
}

// HeatmapTrace is one binned-and-smoothed grid with its cell-center axes.
// The field shapes here are a downstream compatibility contract.
type HeatmapTrace struct {
	GridValues   [][]float64  `json:"grid_values"`
	XAxisCenters []float64    `json:"x_axis_centers"`
	YAxisCenters []float64    `json:"y_axis_centers"`
	ColorScale   []ColorStop  `json:"color_scale"`
	ValueRange   [2]float64   `json:"value_range"`
}

// HeatmapLayout carries the title, axis flags and the fixed pitch outline.
type HeatmapLayout struct {
	Title              string         `json:"title"`
	AxisVisibility     AxisVisibility `json:"axis_visibility"`
	PitchOutlineShapes []Shape        `json:"pitch_outline_shapes"`
}

// HeatmapFigure is the full heatmap artifact descriptor.
type HeatmapFigure struct {
	Data   []HeatmapTrace `json:"data"`
	Layout HeatmapLayout  `json:"layout"`
}

// SeriesTrace is an ordered line/step series keyed by match minute.
type SeriesTrace struct {
	Name    string    `json:"name"`
	Team    string    `json:"team,omitempty"`
	Minutes []int     `json:"minutes"`
	Values  []float64 `json:"values"`
	Dashed  bool      `json:"dashed,omitempty"`
}

// SeriesLayout decorates a time-series chart; Shapes and Annotations mark
// match phases (extra time, penalties).
type SeriesLayout struct {
	Title       string       `json:"title"`
	XAxisTitle  string       `json:"x_axis_title,omitempty"`
	YAxisRange  *[2]float64  `json:"y_axis_range,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// SeriesFigure is the xG-over-time artifact descriptor.
type SeriesFigure struct {
	Data   []SeriesTrace `json:"data"`
	Layout SeriesLayout  `json:"layout"`
}

// BarTrace is a per-minute bar series for the momentum chart.
type BarTrace struct {
	Name    string    `json:"name"`
	Team    string    `json:"team"`
	Minutes []int     `json:"minutes"`
	Values  []float64 `json:"values"`
	Color   string    `json:"color,omitempty"`
}

// BarFigure is the momentum artifact descriptor; the y range is symmetric
// around zero so the two teams mirror each other.
type BarFigure struct {
	Data   []BarTrace   `json:"data"`
	Layout SeriesLayout `json:"layout"`
}

// RadarTrace is one team's polygon over the fixed metric vocabulary.
type RadarTrace struct {
	Name    string    `json:"name"`
	Metrics []string  `json:"metrics"`
	Values  []float64 `json:"values"`
}

// RadarFigure is the team-comparison artifact descriptor; radial values are
// already normalized into the display range.
type RadarFigure struct {
	Data        []RadarTrace `json:"data"`
	Title       string       `json:"title"`
	RadialRange [2]float64   `json:"radial_range"`
}
