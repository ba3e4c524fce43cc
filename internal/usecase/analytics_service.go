package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/plot"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// MatchSummary is the serialized scoreboard: contribution rows per side,
// the score breakdown and a rendered scoreline.
type MatchSummary struct {
	Home     []PlayerContribution `json:"home"`
	Away     []PlayerContribution `json:"away"`
	HomeTeam string               `json:"home_team"`
	AwayTeam string               `json:"away_team"`
	Score    ScoreBreakdown       `json:"score"`
	// Scoreline shows the normal-time score; ExtraTimeDetails carries the
	// "(ET: h - a), (Pen: h - a)" suffix when the match went long.
	Scoreline        string `json:"scoreline"`
	ExtraTimeDetails string `json:"extra_time_details,omitempty"`
}

// ArtifactBundle is everything the engine derives from one match: twelve
// heatmap figures keyed by kind and window, the two time-series figures,
// the radar, both stat tables and the summary. All members are plain
// serializable structures.
type ArtifactBundle struct {
	Heatmaps  map[artifact.Kind]plot.HeatmapFigure
	XGGraph   plot.SeriesFigure
	Momentum  plot.BarFigure
	Radar     plot.RadarFigure
	Summary   MatchSummary
	HomeStats TeamStats
	AwayStats TeamStats
}

var allHeatmapKinds = []HeatmapKind{HeatmapDominance, HeatmapPossession, HeatmapAttack, HeatmapDefense}
var allHeatmapWindows = []HeatmapWindow{WindowFull, WindowFirst, WindowSecond}

// AnalyticsService composes the per-concern services into the one-call
// per-match computation.
type AnalyticsService struct {
	heatmaps      *HeatmapService
	contributions *ContributionService
	series        *SeriesService
	teamStats     *TeamStatsService
	radar         *RadarService
	logger        *logging.Logger
}

func NewAnalyticsService(
	heatmaps *HeatmapService,
	contributions *ContributionService,
	series *SeriesService,
	teamStats *TeamStatsService,
	radar *RadarService,
	logger *logging.Logger,
) *AnalyticsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalyticsService{
		heatmaps:      heatmaps,
		contributions: contributions,
		series:        series,
		teamStats:     teamStats,
		radar:         radar,
		logger:        logger,
	}
}

// ComputeBundle produces the full artifact bundle for one match. The four
// artifact families are independent given the event table, so they run on a
// small fan-out pool; within a family the steps stay sequential because
// later ones consume earlier results (stat tables feed the radar).
func (s *AnalyticsService) ComputeBundle(ctx context.Context, table *event.Table) (ArtifactBundle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService.ComputeBundle")
	defer span.End()

	if table == nil {
		return ArtifactBundle{}, fmt.Errorf("%w: event table is required", ErrInvalidInput)
	}

	var bundle ArtifactBundle

	p := pool.New().WithContext(ctx).WithCancelOnError()

	p.Go(func(ctx context.Context) error {
		heatmaps := make(map[artifact.Kind]plot.HeatmapFigure, len(allHeatmapKinds)*len(allHeatmapWindows))
		for _, kind := range allHeatmapKinds {
			for _, window := range allHeatmapWindows {
				fig, err := s.heatmaps.Generate(ctx, table, kind, window)
				if err != nil {
					return fmt.Errorf("generate %s %s heatmap: %w", kind, window, err)
				}
				heatmaps[artifact.HeatmapKind("", string(kind), string(window))] = fig
			}
		}
		bundle.Heatmaps = heatmaps
		return nil
	})

	p.Go(func(ctx context.Context) error {
		xg, err := s.series.XGFigure(ctx, table)
		if err != nil {
			return fmt.Errorf("build xg figure: %w", err)
		}
		momentum, err := s.series.MomentumFigure(ctx, table)
		if err != nil {
			return fmt.Errorf("build momentum figure: %w", err)
		}
		bundle.XGGraph = xg
		bundle.Momentum = momentum
		return nil
	})

	p.Go(func(ctx context.Context) error {
		home, away, score, err := s.contributions.Compute(ctx, table)
		if err != nil {
			return fmt.Errorf("compute contributions: %w", err)
		}
		bundle.Summary = buildSummary(table, home, away, score)
		return nil
	})

	p.Go(func(ctx context.Context) error {
		home, away, err := s.teamStats.Compute(ctx, table)
		if err != nil {
			return fmt.Errorf("compute team stats: %w", err)
		}
		radar, err := s.radar.Compare(ctx, home, away)
		if err != nil {
			return fmt.Errorf("compare teams: %w", err)
		}
		bundle.HomeStats = home
		bundle.AwayStats = away
		bundle.Radar = radar
		return nil
	})

	if err := p.Wait(); err != nil {
		return ArtifactBundle{}, err
	}
	return bundle, nil
}

func buildSummary(table *event.Table, home, away []PlayerContribution, score ScoreBreakdown) MatchSummary {
	summary := MatchSummary{
		Home:      home,
		Away:      away,
		HomeTeam:  table.HomeTeam(),
		AwayTeam:  table.AwayTeam(),
		Score:     score,
		Scoreline: fmt.Sprintf("%s %d - %d %s", table.HomeTeam(), score.HomeNormal, score.AwayNormal, table.AwayTeam()),
	}

	var extra string
	if score.HomeExtra > 0 || score.AwayExtra > 0 {
		extra = fmt.Sprintf("(ET: %d - %d)", score.HomeExtra, score.AwayExtra)
	}
	if score.HomePenalty > 0 || score.AwayPenalty > 0 {
		pens := fmt.Sprintf("(Pen: %d - %d)", score.HomePenalty, score.AwayPenalty)
		if extra != "" {
			extra = extra + ", " + pens
		} else {
			extra = pens
		}
	}
	summary.ExtraTimeDetails = extra
	return summary
}
