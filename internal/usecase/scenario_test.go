package usecase

import (
	"context"
	"testing"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
)

// Shared fixtures for the service tests. derbyEvents is a compact but
// complete match feed: lineups, shots with xG, passes and carries with
// locations, defensive actions, a substitution and a booking.

const (
	homeTeam = "Arsenal"
	awayTeam = "Chelsea"
)

func loc(x, y float64) *event.Location {
	return &event.Location{X: x, Y: y}
}

func xg(v float64) *float64 { return &v }

func mustTable(t *testing.T, events []event.Event) *event.Table {
	t.Helper()
	table, err := event.NewTable(events)
	if err != nil {
		t.Fatalf("build event table: %v", err)
	}
	return table
}

// testValueGrid has value 0 in the left half of the pitch and 1 in the
// right half, so moving the ball past the halfway line gains exactly 1.
func testValueGrid(t *testing.T) *pitch.ValueGrid {
	t.Helper()
	grid, err := pitch.NewValueGrid([][]float64{{0, 1}})
	if err != nil {
		t.Fatalf("build value grid: %v", err)
	}
	return grid
}

func derbyEvents() []event.Event {
	return []event.Event{
		{Type: event.TypeStartingXI, Team: homeTeam, Period: 1,
			Lineup: []string{"Raya", "Saliba", "Rice", "Saka"}},
		{Type: event.TypeStartingXI, Team: awayTeam, Period: 1,
			Lineup: []string{"Sanchez", "Silva", "Fernandez", "Palmer"}},

		// Home attacks right in period 1, away left.
		{Type: event.TypePass, Team: homeTeam, Player: "Rice", PossessionTeam: homeTeam,
			Period: 1, Minute: 3, Location: loc(60, 40), PassEndLocation: loc(75, 40)},
		{Type: event.TypePass, Team: homeTeam, Player: "Rice", PossessionTeam: homeTeam,
			Period: 1, Minute: 8, Location: loc(70, 40), PassEndLocation: loc(85, 40),
			PassShotAssist: true},
		{Type: event.TypePass, Team: homeTeam, Player: "Saka", PossessionTeam: homeTeam,
			Period: 1, Minute: 11, Location: loc(90, 30), PassEndLocation: loc(100, 38),
			PassGoalAssist: true},
		{Type: event.TypeCarry, Team: homeTeam, Player: "Saka", PossessionTeam: homeTeam,
			Period: 1, Minute: 10, Location: loc(75, 35), CarryEndLocation: loc(90, 32)},
		{Type: event.TypeShot, Team: homeTeam, Player: "Saka", Period: 1, Minute: 12,
			Location: loc(105, 38), ShotOutcome: event.ShotOutcomeGoal, ShotXG: xg(0.35)},
		{Type: event.TypeShot, Team: homeTeam, Player: "Rice", Period: 1, Minute: 28,
			Location: loc(95, 44), ShotOutcome: event.ShotOutcomeSaved, ShotXG: xg(0.1)},
		{Type: event.TypeDuel, Team: homeTeam, Player: "Saliba", Period: 1, Minute: 19,
			Location: loc(40, 50), DuelOutcome: event.DuelOutcomeWon},
		{Type: event.TypeInterception, Team: homeTeam, Player: "Rice", Period: 1, Minute: 22,
			Location: loc(45, 20)},
		{Type: event.TypeCorner, Team: homeTeam, Period: 1, Minute: 27},

		{Type: event.TypePass, Team: awayTeam, Player: "Palmer", PossessionTeam: awayTeam,
			Period: 1, Minute: 15, Location: loc(55, 40), PassEndLocation: loc(40, 42)},
		{Type: event.TypeShot, Team: awayTeam, Player: "Palmer", Period: 1, Minute: 33,
			Location: loc(18, 40), ShotOutcome: event.ShotOutcomeSaved, ShotXG: xg(0.2)},
		{Type: event.TypeFoulCommitted, Team: awayTeam, Player: "Fernandez", Period: 1,
			Minute: 35, Location: loc(50, 30)},
		{Type: event.TypeBadBehaviour, Team: awayTeam, Player: "Fernandez", Period: 1,
			Minute: 35, BadBehaviourCard: event.CardYellow},

		// Second half, teams switch ends.
		{Type: event.TypeShot, Team: awayTeam, Player: "Palmer", Period: 2, Minute: 61,
			Location: loc(102, 36), ShotOutcome: event.ShotOutcomeGoal, ShotXG: xg(0.25)},
		{Type: event.TypeShot, Team: homeTeam, Player: "Saka", Period: 2, Minute: 74,
			Location: loc(20, 44), ShotOutcome: "Off T", ShotXG: xg(0.05)},
		{Type: event.TypeSubstitution, Team: homeTeam, Player: "Saka", Period: 2, Minute: 80,
			SubstitutionReplacement: "Trossard"},
		{Type: event.TypePass, Team: homeTeam, Player: "Trossard", PossessionTeam: homeTeam,
			Period: 2, Minute: 85, Location: loc(50, 40), PassEndLocation: loc(30, 40)},
	}
}

func derbyTable(t *testing.T) *event.Table {
	t.Helper()
	return mustTable(t, derbyEvents())
}

// stubEventFeed serves canned event feeds keyed by match id.
type stubEventFeed struct {
	feeds map[int64][]event.Event
	errs  map[int64]error
}

func (s *stubEventFeed) MatchEvents(_ context.Context, matchID int64) ([]event.Event, error) {
	if err, ok := s.errs[matchID]; ok {
		return nil, err
	}
	events, ok := s.feeds[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	return events, nil
}
