package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
	"github.com/pitchsight/pitchsight/internal/domain/plot"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

const (
	normalTimeEndMinute = 90
	extraTimeEndMinute  = 120

	homeSeriesColor = "blue"
	awaySeriesColor = "red"
)

// SeriesService builds the time-keyed figures: the cumulative xG/goals chart
// and the per-minute momentum chart. The pitch-value grid is loaded once at
// startup and shared read-only across matches.
type SeriesService struct {
	logger    *logging.Logger
	valueGrid *pitch.ValueGrid
}

func NewSeriesService(logger *logging.Logger, valueGrid *pitch.ValueGrid) *SeriesService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeriesService{logger: logger, valueGrid: valueGrid}
}

// XGFigure renders both teams' cumulative goals and xG over the match
// clock, with shaded phases when the match ran past normal time.
func (s *SeriesService) XGFigure(ctx context.Context, table *event.Table) (plot.SeriesFigure, error) {
	_, span := startUsecaseSpan(ctx, "usecase.SeriesService.XGFigure")
	defer span.End()

	traces := make([]plot.SeriesTrace, 0, 4)
	yMax := 0.0
	for _, team := range []string{table.HomeTeam(), table.AwayTeam()} {
		minutes, goals, xg := cumulativeShotSeries(table.TeamEvents(team))
		traces = append(traces,
			plot.SeriesTrace{Name: team + " xG", Team: team, Minutes: minutes, Values: xg, Dashed: true},
			plot.SeriesTrace{Name: team + " Goals", Team: team, Minutes: minutes, Values: goals},
		)
		if n := len(minutes); n > 0 {
			if xg[n-1] > yMax {
				yMax = xg[n-1]
			}
			if goals[n-1] > yMax {
				yMax = goals[n-1]
			}
		}
	}

	layout := plot.SeriesLayout{
		Title:      "xG and Goals per Game",
		XAxisTitle: "Minutes",
		YAxisRange: &[2]float64{0, yMax + 1},
	}
	s.applyPhaseShading(&layout, table, yMax)

	return plot.SeriesFigure{Data: traces, Layout: layout}, nil
}

// applyPhaseShading marks extra time and a penalty shootout on the minute
// axis when the match's periods show either happened.
func (s *SeriesService) applyPhaseShading(layout *plot.SeriesLayout, table *event.Table, yMax float64) {
	maxPeriod := table.MaxPeriod()
	if maxPeriod <= event.PeriodSecondHalf {
		return
	}
	maxMinute := float64(table.MaxMinute())

	layout.Shapes = append(layout.Shapes, plot.Shape{
		Type: "rect",
		X0:   normalTimeEndMinute, Y0: 0,
		X1: maxMinute, Y1: yMax + 0.5,
		FillColor: "rgba(0, 255, 0, 0.2)",
		LineColor: "rgba(0, 255, 0, 0)",
	})
	layout.Annotations = append(layout.Annotations, plot.Annotation{
		X:     (normalTimeEndMinute + maxMinute) / 2,
		Y:     yMax + 0.5,
		Text:  "Extra Time",
		Color: "green",
	})

	if maxPeriod == event.PeriodPenaltyShootout {
		layout.Shapes = append(layout.Shapes, plot.Shape{
			Type: "rect",
			X0:   extraTimeEndMinute, Y0: 0,
			X1: maxMinute, Y1: yMax + 0.5,
			FillColor: "rgba(255, 0, 0, 0.2)",
			LineColor: "rgba(255, 0, 0, 0)",
		})
		layout.Annotations = append(layout.Annotations, plot.Annotation{
			X:     (extraTimeEndMinute + maxMinute) / 2,
			Y:     yMax + 0.5,
			Text:  "Penalties",
			Color: "red",
		})
	}
}

// cumulativeShotSeries walks one team's shots in minute order and emits the
// running goal and xG totals, starting from an explicit zero point so the
// step series renders from kickoff.
func cumulativeShotSeries(events []event.Event) (minutes []int, goals, xg []float64) {
	shots := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.Type == event.TypeShot {
			shots = append(shots, e)
		}
	}
	sort.SliceStable(shots, func(i, j int) bool { return shots[i].Minute < shots[j].Minute })

	minutes = make([]int, 0, len(shots)+1)
	goals = make([]float64, 0, len(shots)+1)
	xg = make([]float64, 0, len(shots)+1)

	minutes = append(minutes, 0)
	goals = append(goals, 0)
	xg = append(xg, 0)

	cumGoals, cumXG := 0.0, 0.0
	for _, shot := range shots {
		if shot.IsGoal() {
			cumGoals++
		}
		cumXG += shot.XG()
		minutes = append(minutes, shot.Minute)
		goals = append(goals, cumGoals)
		xg = append(xg, cumXG)
	}
	return minutes, goals, xg
}

// MomentumFigure sums the positional value gained by completed passes and
// carries per minute per possession side. The home side renders upward and
// the away side downward; a side's value-losing minutes clamp to zero so
// each half of the chart only shows that side's gains.
func (s *SeriesService) MomentumFigure(ctx context.Context, table *event.Table) (plot.BarFigure, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeriesService.MomentumFigure")
	defer span.End()

	if s.valueGrid == nil {
		return plot.BarFigure{}, fmt.Errorf("%w: pitch value grid not loaded", ErrDependencyUnavailable)
	}

	type minuteKey struct {
		minute int
		team   string
	}
	sums := make(map[minuteKey]float64)
	for _, e := range table.Events() {
		var end *event.Location
		switch e.Type {
		case event.TypePass:
			if !e.PassCompleted() {
				continue
			}
			end = e.PassEndLocation
		case event.TypeCarry:
			end = e.CarryEndLocation
		default:
			continue
		}
		if e.Location == nil || end == nil {
			continue
		}
		team := e.PossessionTeam
		if team == "" {
			team = e.Team
		}
		sums[minuteKey{minute: e.Minute, team: team}] += s.valueGrid.Delta(*e.Location, *end)
	}

	buildSide := func(team string, away bool) plot.BarTrace {
		minutes := make([]int, 0, len(sums))
		for key := range sums {
			if key.team == team {
				minutes = append(minutes, key.minute)
			}
		}
		sort.Ints(minutes)

		values := make([]float64, len(minutes))
		for i, minute := range minutes {
			v := sums[minuteKey{minute: minute, team: team}]
			if away {
				if v > 0 {
					values[i] = -v
				}
			} else if v > 0 {
				values[i] = v
			}
		}

		color := homeSeriesColor
		if away {
			color = awaySeriesColor
		}
		return plot.BarTrace{Name: team, Team: team, Minutes: minutes, Values: values, Color: color}
	}

	home := buildSide(table.HomeTeam(), false)
	away := buildSide(table.AwayTeam(), true)
	if len(home.Minutes) == 0 && len(away.Minutes) == 0 {
		s.logger.WarnContext(ctx, "no pass or carry events for momentum chart",
			"home_team", table.HomeTeam(), "away_team", table.AwayTeam())
	}

	maxAbs := 0.0
	for _, trace := range []plot.BarTrace{home, away} {
		for _, v := range trace.Values {
			if v < 0 {
				v = -v
			}
			if v > maxAbs {
				maxAbs = v
			}
		}
	}
	maxRange := maxAbs * 1.1

	return plot.BarFigure{
		Data: []plot.BarTrace{home, away},
		Layout: plot.SeriesLayout{
			Title:      "Match Momentum",
			XAxisTitle: "Minutes",
			YAxisRange: &[2]float64{-maxRange, maxRange},
		},
	}, nil
}
