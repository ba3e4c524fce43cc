package event

import (
	"fmt"

	sonic "github.com/bytedance/sonic"
)

// Type is the provider's event type name. The constants below cover the
// types the analytics pipeline dispatches on; unknown types pass through
// untouched.
type Type string

const (
	TypePass          Type = "Pass"
	TypeCarry         Type = "Carry"
	TypeDribble       Type = "Dribble"
	TypeShot          Type = "Shot"
	TypeSubstitution  Type = "Substitution"
	TypeStartingXI    Type = "Starting XI"
	TypeFoulCommitted Type = "Foul Committed"
	TypeFoulWon       Type = "Foul Won"
	TypeBadBehaviour  Type = "Bad Behaviour"
	TypeInterception  Type = "Interception"
	TypeClearance     Type = "Clearance"
	TypeBlock         Type = "Block"
	TypeBallRecovery  Type = "Ball Recovery"
	TypeDuel          Type = "Duel"
	TypePressure      Type = "Pressure"
	TypeCorner        Type = "Corner"
	TypeOffside       Type = "Offside"
)

const (
	ShotOutcomeGoal    = "Goal"
	ShotOutcomeSaved   = "Saved"
	ShotOutcomePost    = "Post"
	CardYellow         = "Yellow Card"
	CardRed            = "Red Card"
	DuelOutcomeWon     = "Won"
	DuelOutcomeSuccess = "Success"
)

// Periods as recorded by the provider: 1-2 normal time, 3-4 extra time,
// 5 penalty shootout.
const (
	PeriodFirstHalf       = 1
	PeriodSecondHalf      = 2
	PeriodFirstExtraTime  = 3
	PeriodSecondExtraTime = 4
	PeriodPenaltyShootout = 5
)

// SentinelXG is the fill value some upstream exports use for absent xG.
const SentinelXG = -999.0

// Location is a raw provider coordinate: X runs along the pitch length
// (0-120, goal to goal), Y along the width (0-80). It serializes as the
// provider's two-element array form.
type Location struct {
	X float64
	Y float64
}

func (l Location) MarshalJSON() ([]byte, error) {
	return sonic.Marshal([2]float64{l.X, l.Y})
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var raw []float64
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLocation, err)
	}
	parsed, err := LocationFromSlice(raw)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// LocationFromSlice validates the provider's list form. Callers that bin or
// normalize coordinates rely on this rejecting short or empty slices up
// front, so downstream code can treat every present location as well formed.
func LocationFromSlice(raw []float64) (Location, error) {
	if len(raw) < 2 {
		return Location{}, fmt.Errorf("%w: need 2 coordinates, got %d", ErrMalformedLocation, len(raw))
	}
	return Location{X: raw[0], Y: raw[1]}, nil
}

// Event is one atomic match occurrence. Field names follow the provider's
// flattened column vocabulary so serialized events stay compatible with the
// upstream schema. Optional type-specific fields are pointers or zero values
// rather than dynamically-probed columns.
type Event struct {
	Type           Type   `json:"type"`
	Team           string `json:"team"`
	Player         string `json:"player,omitempty"`
	PossessionTeam string `json:"possession_team,omitempty"`
	Minute         int    `json:"minute"`
	Period         int    `json:"period"`

	Location *Location `json:"location,omitempty"`

	ShotOutcome string   `json:"shot_outcome,omitempty"`
	ShotXG      *float64 `json:"shot_statsbomb_xg,omitempty"`

	PassOutcome     string    `json:"pass_outcome,omitempty"`
	PassEndLocation *Location `json:"pass_end_location,omitempty"`
	PassGoalAssist  bool      `json:"pass_goal_assist,omitempty"`
	PassShotAssist  bool      `json:"pass_shot_assist,omitempty"`

	CarryEndLocation *Location `json:"carry_end_location,omitempty"`

	DuelOutcome string `json:"duel_outcome,omitempty"`

	BadBehaviourCard        string `json:"bad_behaviour_card,omitempty"`
	SubstitutionReplacement string `json:"substitution_replacement,omitempty"`

	// Lineup holds the starting player names for Starting XI events
	// (the provider's tactics.lineup[].player.name values, in order).
	Lineup []string `json:"tactics_lineup,omitempty"`
}

// IsGoal reports whether the event is a shot that scored.
func (e Event) IsGoal() bool {
	return e.Type == TypeShot && e.ShotOutcome == ShotOutcomeGoal
}

// XG returns the shot's expected-goals value with the export sentinel and
// missing values collapsed to zero.
func (e Event) XG() float64 {
	if e.ShotXG == nil || *e.ShotXG == SentinelXG || *e.ShotXG < 0 {
		return 0
	}
	return *e.ShotXG
}

// PassCompleted reports whether a pass reached a teammate. The provider only
// records failure outcomes; absence of an outcome means the pass was
// completed.
func (e Event) PassCompleted() bool {
	return e.Type == TypePass && e.PassOutcome == ""
}

// Table is the read-only, chronologically ordered event collection for one
// match. It is built once per match-processing request and holds exactly two
// distinct teams; the first team seen is treated as the home side, matching
// the provider's feed ordering.
type Table struct {
	events []Event
	home   string
	away   string
}

// NewTable validates and wraps a match's events. It fails with
// ErrUnexpectedTeamCount unless exactly two distinct non-empty team names
// appear, since every downstream aggregation assumes a two-sided match.
func NewTable(events []Event) (*Table, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}

	teams := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)
	for _, e := range events {
		if e.Team == "" {
			continue
		}
		if _, ok := seen[e.Team]; ok {
			continue
		}
		seen[e.Team] = struct{}{}
		teams = append(teams, e.Team)
	}
	if len(teams) != 2 {
		return nil, fmt.Errorf("%w: expected 2 teams, found %d %v", ErrUnexpectedTeamCount, len(teams), teams)
	}

	copied := make([]Event, len(events))
	copy(copied, events)

	return &Table{
		events: copied,
		home:   teams[0],
		away:   teams[1],
	}, nil
}

func (t *Table) Len() int {
	return len(t.events)
}

// Events returns the underlying slice. Callers must treat it as read-only.
func (t *Table) Events() []Event {
	return t.events
}

func (t *Table) HomeTeam() string {
	return t.home
}

func (t *Table) AwayTeam() string {
	return t.away
}

// TeamEvents returns the subset of events belonging to one team, preserving
// chronological order.
func (t *Table) TeamEvents(team string) []Event {
	out := make([]Event, 0, len(t.events)/2)
	for _, e := range t.events {
		if e.Team == team {
			out = append(out, e)
		}
	}
	return out
}

// FilterPeriod returns the events recorded in the given period.
func (t *Table) FilterPeriod(period int) []Event {
	out := make([]Event, 0, len(t.events)/2)
	for _, e := range t.events {
		if e.Period == period {
			out = append(out, e)
		}
	}
	return out
}

// MaxPeriod reports the highest period present, used to detect extra time
// and penalty shootouts.
func (t *Table) MaxPeriod() int {
	max := 0
	for _, e := range t.events {
		if e.Period > max {
			max = e.Period
		}
	}
	return max
}

// MaxMinute reports the last recorded minute.
func (t *Table) MaxMinute() int {
	max := 0
	for _, e := range t.events {
		if e.Minute > max {
			max = e.Minute
		}
	}
	return max
}
