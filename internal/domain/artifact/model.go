package artifact

import "time"

// Kind names one derived artifact of a match. The values double as the
// persistence keys, so they must stay stable across recomputes.
type Kind string

const (
	KindXGGraph       Kind = "xg_graph"
	KindMomentumGraph Kind = "momentum_graph"
	KindRadar         Kind = "team_radar"
	KindMatchSummary  Kind = "match_summary"
	KindTeamStatsHome Kind = "team_stats_home"
	KindTeamStatsAway Kind = "team_stats_away"
)

// HeatmapKind builds the artifact kind for a heatmap variant, e.g.
// "dominance_full" or "home_attack_second".
func HeatmapKind(prefix, heatmapType, window string) Kind {
	if prefix == "" {
		return Kind(heatmapType + "_" + window)
	}
	return Kind(prefix + "_" + heatmapType + "_" + window)
}

// Artifact is one serialized plot/summary descriptor for one match.
type Artifact struct {
	MatchID    int64
	Kind       Kind
	Payload    []byte
	ComputedAt time.Time
}

// Match is a worklist row: a match whose artifacts can be (re)computed.
type Match struct {
	ID            int64
	CompetitionID int64
	SeasonID      int64
	HomeTeam      string
	AwayTeam      string
	KickoffAt     time.Time
	ProcessedAt   *time.Time
}
