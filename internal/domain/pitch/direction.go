package pitch

import (
	"github.com/pitchsight/pitchsight/internal/domain/event"
)

// Provider pitch extents: X runs 0-120 along the length, Y runs 0-80 along
// the width. Plot space swaps the axes so the pitch renders vertically.
const (
	Length   = 120.0
	Width    = 80.0
	MidlineX = Length / 2
)

// Direction is the end a team is attacking toward in raw provider
// coordinates: "right" means toward x=120, "left" toward x=0.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// parityDirection is the fallback when a team took no shots in a period:
// teams switch ends each period, and the provider's convention has the
// first-period attack running right.
func parityDirection(period int) Direction {
	if period%2 == 1 {
		return DirectionRight
	}
	return DirectionLeft
}

// AttackPlan maps team -> period -> detected attacking direction.
type AttackPlan map[string]map[int]Direction

// Direction resolves a team's attacking direction for a period, falling back
// to period parity for teams or periods the plan never saw a shot in.
func (p AttackPlan) Direction(team string, period int) Direction {
	if periods, ok := p[team]; ok {
		if dir, ok := periods[period]; ok {
			return dir
		}
	}
	return parityDirection(period)
}

// DetectAttackingDirections infers each team's attacking direction per
// period from its shot locations: an average shot x past the midline means
// the team is shooting at the right-hand goal. Periods without shots fall
// back to parity. A table with no located shots at all yields an empty plan,
// which resolves everything by parity.
func DetectAttackingDirections(table *event.Table) AttackPlan {
	plan := make(AttackPlan, 2)

	sumX := make(map[string]map[int]float64)
	count := make(map[string]map[int]int)
	for _, e := range table.Events() {
		if e.Type != event.TypeShot || e.Location == nil {
			continue
		}
		if sumX[e.Team] == nil {
			sumX[e.Team] = make(map[int]float64)
			count[e.Team] = make(map[int]int)
		}
		sumX[e.Team][e.Period] += e.Location.X
		count[e.Team][e.Period]++
	}

	for team, periods := range sumX {
		plan[team] = make(map[int]Direction, len(periods))
		for period, sum := range periods {
			avg := sum / float64(count[team][period])
			if avg > MidlineX {
				plan[team][period] = DirectionRight
			} else {
				plan[team][period] = DirectionLeft
			}
		}
	}

	return plan
}

// PlotPoint is a direction-normalized coordinate in plot space: X along the
// pitch width (0-80), Y along the length (0-120), with the normalized attack
// running toward Y=120.
type PlotPoint struct {
	X float64
	Y float64
}

// NormalizePoint maps a raw location into plot space, reflecting both axes
// whenever the detected direction disagrees with the canonical one. With
// canonical DirectionRight the team's attack always runs toward Y=Length;
// with canonical DirectionLeft it always runs toward Y=0, which is how the
// dominance map keeps the two sides on opposite ends.
func NormalizePoint(loc event.Location, detected, canonical Direction) PlotPoint {
	x, y := loc.X, loc.Y
	if detected != canonical {
		x = Length - x
		y = Width - y
	}
	return PlotPoint{X: y, Y: x}
}
