package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/pitchsight/pitchsight/internal/domain/plot"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// Radar display range. Values are affine-mapped into it so neither side
// renders a zero-area or fully saturated polygon.
const (
	radarFloor   = 0.2
	radarCeiling = 0.95
)

// radarMetrics is the fixed comparison vocabulary, in display order.
var radarMetrics = []string{
	StatGoals,
	StatXG,
	StatTotalShots,
	StatShotsOnTarget,
	StatKeyPasses,
	StatProgressivePasses,
	StatCarriesFinalThird,
	StatFinalThirdEntries,
	StatTacklesWon,
	StatInterceptions,
}

// radarBounds fixes a plausible single-match range per metric. Normalizing
// against fixed bounds rather than the two teams' own min and max keeps two
// similar teams from degenerating to a 0/1 split. This is presentation
// configuration, not derived data.
var radarBounds = map[string][2]float64{
	StatGoals:             {0, 6},
	StatXG:                {0, 5},
	StatTotalShots:        {0, 30},
	StatShotsOnTarget:     {0, 15},
	StatKeyPasses:         {0, 20},
	StatProgressivePasses: {0, 80},
	StatCarriesFinalThird: {0, 40},
	StatFinalThirdEntries: {0, 80},
	StatTacklesWon:        {0, 25},
	StatInterceptions:     {0, 25},
}

// RadarService normalizes two teams' stat tables onto a shared radar scale.
type RadarService struct {
	logger *logging.Logger
}

func NewRadarService(logger *logging.Logger) *RadarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RadarService{logger: logger}
}

// Compare builds the two-polygon comparison figure over the fixed metric
// vocabulary. Metrics absent from a side's table fall back to the scale
// midpoint so one missing value cannot collapse a polygon.
func (s *RadarService) Compare(ctx context.Context, home, away TeamStats) (plot.RadarFigure, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RadarService.Compare")
	defer span.End()

	traces := make([]plot.RadarTrace, 0, 2)
	for _, stats := range []TeamStats{home, away} {
		values := make([]float64, len(radarMetrics))
		for i, metric := range radarMetrics {
			raw, ok := s.metricValue(ctx, stats, metric)
			scaled := 0.5
			if ok {
				scaled = logScale(raw, radarBounds[metric])
			}
			values[i] = radarFloor + scaled*(radarCeiling-radarFloor)
		}
		traces = append(traces, plot.RadarTrace{
			Name:    stats.TeamName,
			Metrics: append([]string(nil), radarMetrics...),
			Values:  values,
		})
	}

	return plot.RadarFigure{
		Data:        traces,
		Title:       "Team Performance Comparison",
		RadialRange: [2]float64{0, 1},
	}, nil
}

// metricValue parses one stat value, accepting plain numbers and
// percentage strings.
func (s *RadarService) metricValue(ctx context.Context, stats TeamStats, metric string) (float64, bool) {
	raw, ok := stats.Value(metric)
	if !ok {
		s.logger.WarnContext(ctx, "radar metric missing from stat table",
			"team", stats.TeamName, "metric", metric)
		return 0, false
	}
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.WarnContext(ctx, "radar metric not numeric",
			"team", stats.TeamName, "metric", metric, "value", raw)
		return 0, false
	}
	return v, true
}

// logScale min-max normalizes a value against its metric bounds in log1p
// space, clamped to [0,1]. The log keeps count-heavy metrics from pinning
// everything near the bottom of the range.
func logScale(v float64, bounds [2]float64) float64 {
	lo, hi := math.Log1p(bounds[0]), math.Log1p(bounds[1])
	if !(hi > lo) {
		return 0.5
	}
	if v < 0 {
		v = 0
	}
	return clampFloat((math.Log1p(v)-lo)/(hi-lo), 0, 1)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
