package statsbomb

import (
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/event"
)

// Wire models for the open-data feeds. The provider nests every attribute
// under typed objects; the domain event model flattens them.

type namedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawPass struct {
	EndLocation []float64 `json:"end_location"`
	Outcome     *namedRef `json:"outcome"`
	GoalAssist  bool      `json:"goal_assist"`
	ShotAssist  bool      `json:"shot_assist"`
}

type rawCarry struct {
	EndLocation []float64 `json:"end_location"`
}

type rawShot struct {
	StatsBombXG *float64  `json:"statsbomb_xg"`
	Outcome     *namedRef `json:"outcome"`
}

type rawDuel struct {
	Outcome *namedRef `json:"outcome"`
}

type rawBadBehaviour struct {
	Card *namedRef `json:"card"`
}

type rawSubstitution struct {
	Replacement *namedRef `json:"replacement"`
}

type rawLineupEntry struct {
	Player namedRef `json:"player"`
}

type rawTactics struct {
	Lineup []rawLineupEntry `json:"lineup"`
}

type rawEvent struct {
	Period         int       `json:"period"`
	Minute         int       `json:"minute"`
	Type           namedRef  `json:"type"`
	Team           namedRef  `json:"team"`
	Player         *namedRef `json:"player"`
	PossessionTeam namedRef  `json:"possession_team"`
	Location       []float64 `json:"location"`

	Pass         *rawPass         `json:"pass"`
	Carry        *rawCarry        `json:"carry"`
	Shot         *rawShot         `json:"shot"`
	Duel         *rawDuel         `json:"duel"`
	BadBehaviour *rawBadBehaviour `json:"bad_behaviour"`
	Substitution *rawSubstitution `json:"substitution"`
	Tactics      *rawTactics      `json:"tactics"`
}

// flattenEvent maps one nested provider row onto the flat domain event.
// Present-but-malformed locations fail the whole feed, matching the rule
// that coordinate consumers never see short tuples.
func flattenEvent(row rawEvent) (event.Event, error) {
	out := event.Event{
		Type:           event.Type(row.Type.Name),
		Team:           row.Team.Name,
		PossessionTeam: row.PossessionTeam.Name,
		Minute:         row.Minute,
		Period:         row.Period,
	}
	if row.Player != nil {
		out.Player = row.Player.Name
	}

	if len(row.Location) > 0 {
		loc, err := event.LocationFromSlice(row.Location)
		if err != nil {
			return event.Event{}, err
		}
		out.Location = &loc
	}

	if row.Pass != nil {
		if row.Pass.Outcome != nil {
			out.PassOutcome = row.Pass.Outcome.Name
		}
		out.PassGoalAssist = row.Pass.GoalAssist
		out.PassShotAssist = row.Pass.ShotAssist
		if len(row.Pass.EndLocation) > 0 {
			loc, err := event.LocationFromSlice(row.Pass.EndLocation)
			if err != nil {
				return event.Event{}, err
			}
			out.PassEndLocation = &loc
		}
	}

	if row.Carry != nil && len(row.Carry.EndLocation) > 0 {
		loc, err := event.LocationFromSlice(row.Carry.EndLocation)
		if err != nil {
			return event.Event{}, err
		}
		out.CarryEndLocation = &loc
	}

	if row.Shot != nil {
		out.ShotXG = row.Shot.StatsBombXG
		if row.Shot.Outcome != nil {
			out.ShotOutcome = row.Shot.Outcome.Name
		}
	}

	if row.Duel != nil && row.Duel.Outcome != nil {
		out.DuelOutcome = row.Duel.Outcome.Name
	}
	if row.BadBehaviour != nil && row.BadBehaviour.Card != nil {
		out.BadBehaviourCard = row.BadBehaviour.Card.Name
	}
	if row.Substitution != nil && row.Substitution.Replacement != nil {
		out.SubstitutionReplacement = row.Substitution.Replacement.Name
	}

	if row.Tactics != nil && len(row.Tactics.Lineup) > 0 {
		lineup := make([]string, 0, len(row.Tactics.Lineup))
		for _, entry := range row.Tactics.Lineup {
			lineup = append(lineup, entry.Player.Name)
		}
		out.Lineup = lineup
	}

	return out, nil
}

type rawMatchTeam struct {
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`
}

type rawMatch struct {
	MatchID   int64        `json:"match_id"`
	MatchDate string       `json:"match_date"`
	KickOff   string       `json:"kick_off"`
	HomeTeam  rawMatchTeam `json:"home_team"`
	AwayTeam  rawMatchTeam `json:"away_team"`
}

func (m rawMatch) toDomain(competitionID, seasonID int64) artifact.Match {
	return artifact.Match{
		ID:            m.MatchID,
		CompetitionID: competitionID,
		SeasonID:      seasonID,
		HomeTeam:      m.HomeTeam.HomeTeamName,
		AwayTeam:      m.AwayTeam.AwayTeamName,
		KickoffAt:     parseKickoff(m.MatchDate, m.KickOff),
	}
}

// parseKickoff combines the provider's separate date and time columns. The
// time part occasionally carries millisecond precision and is sometimes
// absent entirely.
func parseKickoff(date, kickOff string) time.Time {
	if date == "" {
		return time.Time{}
	}
	if kickOff != "" {
		for _, layout := range []string{"2006-01-02 15:04:05.000", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, date+" "+kickOff); err == nil {
				return t.UTC()
			}
		}
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
