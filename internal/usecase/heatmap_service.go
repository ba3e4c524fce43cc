package usecase

import (
	"context"
	"fmt"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
	"github.com/pitchsight/pitchsight/internal/domain/plot"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// HeatmapKind selects which spatial aggregation a heatmap shows.
type HeatmapKind string

const (
	HeatmapDominance  HeatmapKind = "dominance"
	HeatmapPossession HeatmapKind = "possession"
	HeatmapAttack     HeatmapKind = "attack"
	HeatmapDefense    HeatmapKind = "defense"
)

// HeatmapWindow selects the slice of the match a heatmap covers. First and
// second address the normal-time halves only; extra-time periods are not
// reachable through a window, which is a documented limitation of the
// half-based breakdown.
type HeatmapWindow string

const (
	WindowFull   HeatmapWindow = "full"
	WindowFirst  HeatmapWindow = "first"
	WindowSecond HeatmapWindow = "second"
)

// attackTypes and defenseTypes are the event-type whitelists for the phase
// heatmaps. Possession maps take every located event.
var attackTypes = map[event.Type]struct{}{
	event.TypePass:    {},
	event.TypeCarry:   {},
	event.TypeDribble: {},
	event.TypeShot:    {},
	event.TypeFoulWon: {},
}

var defenseTypes = map[event.Type]struct{}{
	event.TypeInterception:  {},
	event.TypeClearance:     {},
	event.TypeBlock:         {},
	event.TypeBallRecovery:  {},
	event.TypeDuel:          {},
	event.TypeFoulCommitted: {},
}

var windowTitles = map[HeatmapWindow]string{
	WindowFull:   "Full Match",
	WindowFirst:  "First Half",
	WindowSecond: "Second Half",
}

var kindTitles = map[HeatmapKind]string{
	HeatmapDominance:  "Pitch Dominance",
	HeatmapPossession: "Possession Map",
	HeatmapAttack:     "Attacking Actions",
	HeatmapDefense:    "Defensive Actions",
}

// HeatmapService turns a match's event table into the binned, smoothed
// heatmap figures. All methods are pure over their inputs; the service
// carries only a logger for data-quality warnings.
type HeatmapService struct {
	logger *logging.Logger
}

func NewHeatmapService(logger *logging.Logger) *HeatmapService {
	if logger == nil {
		logger = logging.Default()
	}
	return &HeatmapService{logger: logger}
}

// Generate produces one heatmap figure. Dominance figures carry a single
// home-share trace over the coarse grid; possession, attack and defense
// figures carry one fine-grid trace per team, home first.
func (s *HeatmapService) Generate(ctx context.Context, table *event.Table, kind HeatmapKind, window HeatmapWindow) (plot.HeatmapFigure, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HeatmapService.Generate")
	defer span.End()

	if _, ok := kindTitles[kind]; !ok {
		return plot.HeatmapFigure{}, fmt.Errorf("%w: unknown heatmap kind %q", ErrInvalidInput, kind)
	}
	if _, ok := windowTitles[window]; !ok {
		return plot.HeatmapFigure{}, fmt.Errorf("%w: unknown heatmap window %q", ErrInvalidInput, window)
	}

	events := windowEvents(table, window)
	if len(events) == 0 {
		s.logger.WarnContext(ctx, "no events in heatmap window",
			"kind", string(kind), "window", string(window),
			"home_team", table.HomeTeam(), "away_team", table.AwayTeam())
	}

	plan := pitch.DetectAttackingDirections(table)

	if kind == HeatmapDominance {
		return s.dominanceFigure(table, events, plan, window), nil
	}
	return s.teamFigure(table, events, plan, kind, window), nil
}

// dominanceFigure bins both teams onto one coarse grid, home normalized to
// attack the far end and away the near end, and shows the smoothed home
// share per cell.
func (s *HeatmapService) dominanceFigure(table *event.Table, events []event.Event, plan pitch.AttackPlan, window HeatmapWindow) plot.HeatmapFigure {
	spec := pitch.BinSpec{Rows: pitch.DominanceRows, Cols: pitch.DominanceCols}

	homePoints := normalizedPoints(events, table.HomeTeam(), plan, pitch.DirectionRight, nil)
	awayPoints := normalizedPoints(events, table.AwayTeam(), plan, pitch.DirectionLeft, nil)

	ratio := pitch.DominanceRatio(pitch.Histogram2D(homePoints, spec), pitch.Histogram2D(awayPoints, spec))
	grid := pitch.Clip(pitch.GaussianSmooth(ratio, pitch.DominanceSigma), 0, 1)

	xCenters, yCenters := pitch.BinCenters(spec)
	return plot.HeatmapFigure{
		Data: []plot.HeatmapTrace{{
			GridValues:   grid.Values,
			XAxisCenters: xCenters,
			YAxisCenters: yCenters,
			ColorScale:   plot.DominanceColorScale(),
			ValueRange:   [2]float64{0, 1},
		}},
		Layout: heatmapLayout(HeatmapDominance, window, table),
	}
}

// teamFigure builds one fine-grid activity trace per team, each normalized
// so the team attacks the far end.
func (s *HeatmapService) teamFigure(table *event.Table, events []event.Event, plan pitch.AttackPlan, kind HeatmapKind, window HeatmapWindow) plot.HeatmapFigure {
	spec := pitch.BinSpec{Rows: pitch.ActivityRows, Cols: pitch.ActivityCols}

	var whitelist map[event.Type]struct{}
	switch kind {
	case HeatmapAttack:
		whitelist = attackTypes
	case HeatmapDefense:
		whitelist = defenseTypes
	}

	xCenters, yCenters := pitch.BinCenters(spec)
	traces := make([]plot.HeatmapTrace, 0, 2)
	for _, team := range []string{table.HomeTeam(), table.AwayTeam()} {
		points := normalizedPoints(events, team, plan, pitch.DirectionRight, whitelist)
		grid := pitch.PercentileNormalize(
			pitch.GaussianSmooth(pitch.Histogram2D(points, spec), pitch.ActivitySigma),
			pitch.NormalizePercentile,
		)
		traces = append(traces, plot.HeatmapTrace{
			GridValues:   grid.Values,
			XAxisCenters: xCenters,
			YAxisCenters: yCenters,
			ColorScale:   plot.DominanceColorScale(),
			ValueRange:   [2]float64{0, 1},
		})
	}

	return plot.HeatmapFigure{
		Data:   traces,
		Layout: heatmapLayout(kind, window, table),
	}
}

// normalizedPoints selects a team's located events, optionally filtered by a
// type whitelist, and maps them into direction-neutral plot space.
func normalizedPoints(events []event.Event, team string, plan pitch.AttackPlan, canonical pitch.Direction, whitelist map[event.Type]struct{}) []pitch.PlotPoint {
	points := make([]pitch.PlotPoint, 0, len(events))
	for _, e := range events {
		if e.Team != team || e.Location == nil {
			continue
		}
		if whitelist != nil {
			if _, ok := whitelist[e.Type]; !ok {
				continue
			}
		}
		detected := plan.Direction(team, e.Period)
		points = append(points, pitch.NormalizePoint(*e.Location, detected, canonical))
	}
	return points
}

func windowEvents(table *event.Table, window HeatmapWindow) []event.Event {
	switch window {
	case WindowFirst:
		return table.FilterPeriod(event.PeriodFirstHalf)
	case WindowSecond:
		return table.FilterPeriod(event.PeriodSecondHalf)
	default:
		return table.Events()
	}
}

func heatmapLayout(kind HeatmapKind, window HeatmapWindow, table *event.Table) plot.HeatmapLayout {
	return plot.HeatmapLayout{
		Title:              fmt.Sprintf("%s vs %s: %s (%s)", table.HomeTeam(), table.AwayTeam(), kindTitles[kind], windowTitles[window]),
		AxisVisibility:     plot.AxisVisibility{X: false, Y: false},
		PitchOutlineShapes: plot.PitchOutlineShapes(),
	}
}
