package plot

// Pitch geometry in plot coordinates: width 0-80 horizontal, length 0-120
// vertical. These are display constants reproduced from the standard pitch
// dimensions, not derived from event data.
const (
	pitchWidth       = 80.0
	pitchLength      = 120.0
	centreCircleR    = 9.15
	penaltySpotY     = 12.0
	penaltyAreaDepth = 18.0
	sixYardDepth     = 6.0
	goalHalfWidth    = 3.66
	lineColor        = "black"
)

// PitchOutlineShapes returns the fixed fourteen-element pitch marking set:
// outline, halfway line, centre circle and spot, both penalty areas, both
// six-yard boxes, both penalty spots, both penalty arcs and both goals.
// The order is stable because downstream rendering indexes into it.
func PitchOutlineShapes() []Shape {
	return []Shape{
		{Type: "rect", X0: 0, Y0: 0, X1: pitchWidth, Y1: pitchLength, LineColor: lineColor},
		{Type: "line", X0: 0, Y0: pitchLength / 2, X1: pitchWidth, Y1: pitchLength / 2, LineColor: lineColor},
		circle(pitchWidth/2, pitchLength/2, centreCircleR),
		spot(pitchWidth/2, pitchLength/2),
		{Type: "rect", X0: 30, Y0: 0, X1: 50, Y1: penaltyAreaDepth, LineColor: lineColor},
		{Type: "rect", X0: 30, Y0: pitchLength - penaltyAreaDepth, X1: 50, Y1: pitchLength, LineColor: lineColor},
		{Type: "rect", X0: 36, Y0: 0, X1: 44, Y1: sixYardDepth, LineColor: lineColor},
		{Type: "rect", X0: 36, Y0: pitchLength - sixYardDepth, X1: 44, Y1: pitchLength, LineColor: lineColor},
		spot(pitchWidth/2, penaltySpotY),
		spot(pitchWidth/2, pitchLength-penaltySpotY),
		arc(pitchWidth/2, penaltySpotY, centreCircleR),
		arc(pitchWidth/2, pitchLength-penaltySpotY, centreCircleR),
		{Type: "rect", X0: pitchWidth/2 - goalHalfWidth, Y0: -2, X1: pitchWidth/2 + goalHalfWidth, Y1: 0, LineColor: lineColor},
		{Type: "rect", X0: pitchWidth/2 - goalHalfWidth, Y0: pitchLength, X1: pitchWidth/2 + goalHalfWidth, Y1: pitchLength + 2, LineColor: lineColor},
	}
}

func circle(cx, cy, r float64) Shape {
	return Shape{Type: "circle", X0: cx - r, Y0: cy - r, X1: cx + r, Y1: cy + r, LineColor: lineColor}
}

// arc uses the same bounding box as a circle; renderers clip it to the
// segment outside the adjacent penalty area.
func arc(cx, cy, r float64) Shape {
	s := circle(cx, cy, r)
	s.Type = "arc"
	return s
}

func spot(cx, cy float64) Shape {
	s := circle(cx, cy, 0.3)
	s.FillColor = lineColor
	return s
}
