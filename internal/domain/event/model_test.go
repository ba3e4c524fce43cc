package event

import (
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func ptrFloat(v float64) *float64 { return &v }

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		if _, err := NewTable(nil); !errors.Is(err, ErrNoEvents) {
			t.Fatalf("error = %v, want ErrNoEvents", err)
		}
	})

	t.Run("single team", func(t *testing.T) {
		t.Parallel()
		_, err := NewTable([]Event{
			{Type: TypePass, Team: "Arsenal"},
			{Type: TypePass, Team: "Arsenal"},
		})
		if !errors.Is(err, ErrUnexpectedTeamCount) {
			t.Fatalf("error = %v, want ErrUnexpectedTeamCount", err)
		}
	})

	t.Run("three teams", func(t *testing.T) {
		t.Parallel()
		_, err := NewTable([]Event{
			{Type: TypePass, Team: "Arsenal"},
			{Type: TypePass, Team: "Chelsea"},
			{Type: TypePass, Team: "Spurs"},
		})
		if !errors.Is(err, ErrUnexpectedTeamCount) {
			t.Fatalf("error = %v, want ErrUnexpectedTeamCount", err)
		}
	})

	t.Run("first team seen is home", func(t *testing.T) {
		t.Parallel()
		table, err := NewTable([]Event{
			{Type: TypePass, Team: "Chelsea"},
			{Type: TypePass, Team: "Arsenal"},
			{Type: TypePass, Team: "Chelsea"},
		})
		if err != nil {
			t.Fatalf("NewTable: %v", err)
		}
		if table.HomeTeam() != "Chelsea" || table.AwayTeam() != "Arsenal" {
			t.Fatalf("teams = %s/%s, want Chelsea/Arsenal", table.HomeTeam(), table.AwayTeam())
		}
	})

	t.Run("teamless events are tolerated", func(t *testing.T) {
		t.Parallel()
		table, err := NewTable([]Event{
			{Type: TypePass, Team: "Arsenal"},
			{Type: TypePressure},
			{Type: TypePass, Team: "Chelsea"},
		})
		if err != nil {
			t.Fatalf("NewTable: %v", err)
		}
		if table.Len() != 3 {
			t.Fatalf("table len = %d, want 3", table.Len())
		}
	})
}

func TestTable_CopiesInput(t *testing.T) {
	t.Parallel()

	events := []Event{
		{Type: TypePass, Team: "Arsenal", Minute: 1},
		{Type: TypePass, Team: "Chelsea", Minute: 2},
	}
	table, err := NewTable(events)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	events[0].Minute = 99
	if table.Events()[0].Minute != 1 {
		t.Fatal("table shares the caller's event slice")
	}
}

func TestTable_Filters(t *testing.T) {
	t.Parallel()

	table, err := NewTable([]Event{
		{Type: TypePass, Team: "Arsenal", Period: 1, Minute: 12},
		{Type: TypeShot, Team: "Chelsea", Period: 2, Minute: 88},
		{Type: TypePass, Team: "Arsenal", Period: 2, Minute: 50},
		{Type: TypeShot, Team: "Arsenal", Period: 3, Minute: 102},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if got := len(table.TeamEvents("Arsenal")); got != 3 {
		t.Fatalf("Arsenal events = %d, want 3", got)
	}
	if got := len(table.FilterPeriod(2)); got != 2 {
		t.Fatalf("period 2 events = %d, want 2", got)
	}
	if got := table.MaxPeriod(); got != 3 {
		t.Fatalf("MaxPeriod = %d, want 3", got)
	}
	if got := table.MaxMinute(); got != 102 {
		t.Fatalf("MaxMinute = %d, want 102", got)
	}
}

func TestLocation_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := sonic.Marshal(Location{X: 12.5, Y: 44})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[12.5,44]" {
		t.Fatalf("marshal = %s, want [12.5,44]", raw)
	}

	var parsed Location
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.X != 12.5 || parsed.Y != 44 {
		t.Fatalf("round trip = %+v", parsed)
	}
}

func TestLocation_UnmarshalRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []string{`{}`, `"12,44"`, `[5]`, `[]`}
	for _, raw := range cases {
		var parsed Location
		if err := sonic.Unmarshal([]byte(raw), &parsed); !errors.Is(err, ErrMalformedLocation) {
			t.Fatalf("unmarshal %s: error = %v, want ErrMalformedLocation", raw, err)
		}
	}
}

func TestLocationFromSlice_KeepsExtraCoordinates(t *testing.T) {
	t.Parallel()

	// Shot locations sometimes carry a third z coordinate.
	parsed, err := LocationFromSlice([]float64{100, 40, 0.7})
	if err != nil {
		t.Fatalf("LocationFromSlice: %v", err)
	}
	if parsed.X != 100 || parsed.Y != 40 {
		t.Fatalf("parsed = %+v, want X=100 Y=40", parsed)
	}
}

func TestEvent_XG(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		xg   *float64
		want float64
	}{
		{"missing", nil, 0},
		{"sentinel", ptrFloat(SentinelXG), 0},
		{"negative", ptrFloat(-0.1), 0},
		{"present", ptrFloat(0.42), 0.42},
	}
	for _, tc := range cases {
		e := Event{Type: TypeShot, ShotXG: tc.xg}
		if got := e.XG(); got != tc.want {
			t.Fatalf("%s: XG = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestEvent_PassCompleted(t *testing.T) {
	t.Parallel()

	if !(Event{Type: TypePass}).PassCompleted() {
		t.Fatal("pass without outcome should count as completed")
	}
	if (Event{Type: TypePass, PassOutcome: "Incomplete"}).PassCompleted() {
		t.Fatal("pass with an outcome should not count as completed")
	}
	if (Event{Type: TypeCarry}).PassCompleted() {
		t.Fatal("non-pass event should not count as completed pass")
	}
}

func TestEvent_IsGoal(t *testing.T) {
	t.Parallel()

	if !(Event{Type: TypeShot, ShotOutcome: ShotOutcomeGoal}).IsGoal() {
		t.Fatal("scored shot should be a goal")
	}
	if (Event{Type: TypeShot, ShotOutcome: ShotOutcomeSaved}).IsGoal() {
		t.Fatal("saved shot should not be a goal")
	}
	if (Event{Type: TypePass, ShotOutcome: ShotOutcomeGoal}).IsGoal() {
		t.Fatal("non-shot should not be a goal")
	}
}
