package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// Stat names as the serving layer and the radar expose them. These are part
// of the serialized vocabulary, so renames break stored artifacts.
const (
	StatPossession        = "Possession"
	StatGoals             = "Goals"
	StatXG                = "xG"
	StatTotalShots        = "Total Shots"
	StatShotsOnTarget     = "Shots on Target"
	StatPasses            = "Passes"
	StatPassAccuracy      = "Pass Accuracy"
	StatKeyPasses         = "Key Passes"
	StatProgressivePasses = "Progressive Passes"
	StatCarriesFinalThird = "Carries into Final Third"
	StatFinalThirdEntries = "Final Third Entries"
	StatTacklesWon        = "Tackles Won"
	StatInterceptions     = "Interceptions"
	StatCorners           = "Corners"
	StatFouls             = "Fouls"
)

// Progression thresholds in pitch-length units, measured in the team's
// attacking frame.
const (
	progressivePassGain = 10.0
	finalThirdStartX    = 80.0
)

// TeamStat is one name/value row. Values are strings because the vocabulary
// mixes counts, decimals and percentages.
type TeamStat struct {
	Name  string `json:"stat_name"`
	Value string `json:"value"`
}

// TeamStats is one side's full stat table in display order.
type TeamStats struct {
	TeamName string     `json:"team_name"`
	Stats    []TeamStat `json:"stats"`
}

// Value looks a stat up by name.
func (t TeamStats) Value(name string) (string, bool) {
	for _, s := range t.Stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return "", false
}

// TeamStatsService computes both sides' raw stat tables from the event
// table. The tables feed the radar comparison and the serving layer's stats
// endpoint.
type TeamStatsService struct {
	logger *logging.Logger
}

func NewTeamStatsService(logger *logging.Logger) *TeamStatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamStatsService{logger: logger}
}

// Compute builds the home and away stat tables.
func (s *TeamStatsService) Compute(ctx context.Context, table *event.Table) (home, away TeamStats, err error) {
	_, span := startUsecaseSpan(ctx, "usecase.TeamStatsService.Compute")
	defer span.End()

	plan := pitch.DetectAttackingDirections(table)
	totalPasses := 0
	for _, e := range table.Events() {
		if e.Type == event.TypePass {
			totalPasses++
		}
	}

	home = s.teamStats(table, table.HomeTeam(), plan, totalPasses)
	away = s.teamStats(table, table.AwayTeam(), plan, totalPasses)
	return home, away, nil
}

func (s *TeamStatsService) teamStats(table *event.Table, team string, plan pitch.AttackPlan, totalPasses int) TeamStats {
	var (
		goals, shots, shotsOnTarget          int
		passes, completedPasses, keyPasses   int
		progressivePasses, finalThirdCarries int
		finalThirdEntries                    int
		tacklesWon, interceptions            int
		corners, fouls                       int
		xg                                   float64
	)

	for _, e := range table.TeamEvents(team) {
		switch e.Type {
		case event.TypeShot:
			shots++
			xg += e.XG()
			switch e.ShotOutcome {
			case event.ShotOutcomeGoal:
				goals++
				shotsOnTarget++
			case event.ShotOutcomeSaved:
				shotsOnTarget++
			}
		case event.TypePass:
			passes++
			if e.PassCompleted() {
				completedPasses++
			}
			if e.PassShotAssist || e.PassGoalAssist {
				keyPasses++
			}
			if e.PassCompleted() && e.Location != nil && e.PassEndLocation != nil {
				dir := plan.Direction(team, e.Period)
				start := attackFrameX(*e.Location, dir)
				end := attackFrameX(*e.PassEndLocation, dir)
				if end-start >= progressivePassGain {
					progressivePasses++
				}
				if start < finalThirdStartX && end >= finalThirdStartX {
					finalThirdEntries++
				}
			}
		case event.TypeCarry:
			if e.Location != nil && e.CarryEndLocation != nil {
				dir := plan.Direction(team, e.Period)
				start := attackFrameX(*e.Location, dir)
				end := attackFrameX(*e.CarryEndLocation, dir)
				if start < finalThirdStartX && end >= finalThirdStartX {
					finalThirdCarries++
					finalThirdEntries++
				}
			}
		case event.TypeDuel:
			if e.DuelOutcome == event.DuelOutcomeWon || e.DuelOutcome == event.DuelOutcomeSuccess {
				tacklesWon++
			}
		case event.TypeInterception:
			interceptions++
		case event.TypeCorner:
			corners++
		case event.TypeFoulCommitted:
			fouls++
		}
	}

	possession := percentage(passes, totalPasses)
	accuracy := percentage(completedPasses, passes)

	return TeamStats{
		TeamName: team,
		Stats: []TeamStat{
			{Name: StatPossession, Value: possession},
			{Name: StatGoals, Value: strconv.Itoa(goals)},
			{Name: StatXG, Value: fmt.Sprintf("%.2f", xg)},
			{Name: StatTotalShots, Value: strconv.Itoa(shots)},
			{Name: StatShotsOnTarget, Value: strconv.Itoa(shotsOnTarget)},
			{Name: StatPasses, Value: strconv.Itoa(passes)},
			{Name: StatPassAccuracy, Value: accuracy},
			{Name: StatKeyPasses, Value: strconv.Itoa(keyPasses)},
			{Name: StatProgressivePasses, Value: strconv.Itoa(progressivePasses)},
			{Name: StatCarriesFinalThird, Value: strconv.Itoa(finalThirdCarries)},
			{Name: StatFinalThirdEntries, Value: strconv.Itoa(finalThirdEntries)},
			{Name: StatTacklesWon, Value: strconv.Itoa(tacklesWon)},
			{Name: StatInterceptions, Value: strconv.Itoa(interceptions)},
			{Name: StatCorners, Value: strconv.Itoa(corners)},
			{Name: StatFouls, Value: strconv.Itoa(fouls)},
		},
	}
}

// attackFrameX maps a raw length coordinate so larger always means closer
// to the goal the team is attacking.
func attackFrameX(loc event.Location, dir pitch.Direction) float64 {
	if dir == pitch.DirectionRight {
		return loc.X
	}
	return pitch.Length - loc.X
}

func percentage(part, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
