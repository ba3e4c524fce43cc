package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

func TestSeriesService_XGFigure(t *testing.T) {
	t.Parallel()

	// Shots arrive out of minute order to exercise the sort.
	table := mustTable(t, []event.Event{
		{Type: event.TypeShot, Team: homeTeam, Period: 1, Minute: 30,
			ShotOutcome: event.ShotOutcomeSaved, ShotXG: xg(0.3)},
		{Type: event.TypeShot, Team: homeTeam, Period: 1, Minute: 10,
			ShotOutcome: event.ShotOutcomeGoal, ShotXG: xg(0.5)},
		{Type: event.TypePass, Team: awayTeam, Period: 1, Minute: 5},
	})

	svc := NewSeriesService(logging.NewNop(), nil)
	fig, err := svc.XGFigure(context.Background(), table)
	if err != nil {
		t.Fatalf("XGFigure: %v", err)
	}

	if len(fig.Data) != 4 {
		t.Fatalf("figure has %d traces, want 4", len(fig.Data))
	}
	wantNames := []string{"Arsenal xG", "Arsenal Goals", "Chelsea xG", "Chelsea Goals"}
	for i, name := range wantNames {
		if fig.Data[i].Name != name {
			t.Fatalf("trace %d name = %q, want %q", i, fig.Data[i].Name, name)
		}
	}
	if !fig.Data[0].Dashed || fig.Data[1].Dashed {
		t.Fatal("xG traces should be dashed and goal traces solid")
	}

	homeXG := fig.Data[0]
	wantMinutes := []int{0, 10, 30}
	wantXG := []float64{0, 0.5, 0.8}
	if len(homeXG.Minutes) != len(wantMinutes) {
		t.Fatalf("home xG series has %d points, want %d", len(homeXG.Minutes), len(wantMinutes))
	}
	for i := range wantMinutes {
		if homeXG.Minutes[i] != wantMinutes[i] {
			t.Fatalf("minute[%d] = %d, want %d", i, homeXG.Minutes[i], wantMinutes[i])
		}
		if math.Abs(homeXG.Values[i]-wantXG[i]) > 1e-9 {
			t.Fatalf("xG[%d] = %v, want %v", i, homeXG.Values[i], wantXG[i])
		}
	}

	homeGoals := fig.Data[1]
	wantGoals := []float64{0, 1, 1}
	for i := range wantGoals {
		if homeGoals.Values[i] != wantGoals[i] {
			t.Fatalf("goals[%d] = %v, want %v", i, homeGoals.Values[i], wantGoals[i])
		}
	}

	// A shotless side still gets the kickoff zero point.
	awayXG := fig.Data[2]
	if len(awayXG.Minutes) != 1 || awayXG.Minutes[0] != 0 || awayXG.Values[0] != 0 {
		t.Fatalf("away xG series = %v/%v, want single zero point", awayXG.Minutes, awayXG.Values)
	}

	if fig.Layout.YAxisRange == nil || *fig.Layout.YAxisRange != [2]float64{0, 2} {
		t.Fatalf("y range = %v, want [0,2]", fig.Layout.YAxisRange)
	}
	if len(fig.Layout.Shapes) != 0 {
		t.Fatalf("normal-time match has %d shapes, want 0", len(fig.Layout.Shapes))
	}
}

func TestSeriesService_XGFigure_PhaseShading(t *testing.T) {
	t.Parallel()

	t.Run("extra time", func(t *testing.T) {
		t.Parallel()
		table := mustTable(t, []event.Event{
			{Type: event.TypePass, Team: homeTeam, Period: 1, Minute: 10},
			{Type: event.TypePass, Team: awayTeam, Period: 4, Minute: 118},
		})

		svc := NewSeriesService(logging.NewNop(), nil)
		fig, err := svc.XGFigure(context.Background(), table)
		if err != nil {
			t.Fatalf("XGFigure: %v", err)
		}

		if len(fig.Layout.Shapes) != 1 {
			t.Fatalf("shapes = %d, want 1", len(fig.Layout.Shapes))
		}
		rect := fig.Layout.Shapes[0]
		if rect.X0 != 90 || rect.X1 != 118 {
			t.Fatalf("extra-time rect spans %v-%v, want 90-118", rect.X0, rect.X1)
		}
		if len(fig.Layout.Annotations) != 1 || fig.Layout.Annotations[0].Text != "Extra Time" {
			t.Fatalf("annotations = %+v, want one Extra Time label", fig.Layout.Annotations)
		}
	})

	t.Run("penalty shootout", func(t *testing.T) {
		t.Parallel()
		table := mustTable(t, []event.Event{
			{Type: event.TypePass, Team: homeTeam, Period: 1, Minute: 10},
			{Type: event.TypeShot, Team: awayTeam, Period: 5, Minute: 125,
				ShotOutcome: event.ShotOutcomeGoal},
		})

		svc := NewSeriesService(logging.NewNop(), nil)
		fig, err := svc.XGFigure(context.Background(), table)
		if err != nil {
			t.Fatalf("XGFigure: %v", err)
		}

		if len(fig.Layout.Shapes) != 2 {
			t.Fatalf("shapes = %d, want extra-time and penalty rects", len(fig.Layout.Shapes))
		}
		if fig.Layout.Shapes[1].X0 != 120 || fig.Layout.Shapes[1].X1 != 125 {
			t.Fatalf("penalty rect spans %v-%v, want 120-125",
				fig.Layout.Shapes[1].X0, fig.Layout.Shapes[1].X1)
		}
		if len(fig.Layout.Annotations) != 2 || fig.Layout.Annotations[1].Text != "Penalties" {
			t.Fatalf("annotations = %+v, want Extra Time then Penalties", fig.Layout.Annotations)
		}
	})
}

func TestSeriesService_MomentumFigure_RequiresValueGrid(t *testing.T) {
	t.Parallel()

	svc := NewSeriesService(logging.NewNop(), nil)
	_, err := svc.MomentumFigure(context.Background(), derbyTable(t))
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("error = %v, want ErrDependencyUnavailable", err)
	}
}

func TestSeriesService_MomentumFigure(t *testing.T) {
	t.Parallel()

	table := mustTable(t, []event.Event{
		// Home gains value at minute 5, loses it back at minute 7.
		{Type: event.TypePass, Team: homeTeam, PossessionTeam: homeTeam, Minute: 5,
			Location: loc(10, 40), PassEndLocation: loc(100, 40)},
		{Type: event.TypeCarry, Team: homeTeam, PossessionTeam: homeTeam, Minute: 7,
			Location: loc(100, 40), CarryEndLocation: loc(10, 40)},
		// Away gains value at minute 12.
		{Type: event.TypePass, Team: awayTeam, PossessionTeam: awayTeam, Minute: 12,
			Location: loc(10, 40), PassEndLocation: loc(100, 40)},
		// Incomplete passes and unlocated actions contribute nothing.
		{Type: event.TypePass, Team: homeTeam, PossessionTeam: homeTeam, Minute: 9,
			Location: loc(10, 40), PassEndLocation: loc(100, 40), PassOutcome: "Incomplete"},
		{Type: event.TypeCarry, Team: awayTeam, PossessionTeam: awayTeam, Minute: 14,
			Location: loc(10, 40)},
	})

	svc := NewSeriesService(logging.NewNop(), testValueGrid(t))
	fig, err := svc.MomentumFigure(context.Background(), table)
	if err != nil {
		t.Fatalf("MomentumFigure: %v", err)
	}

	if len(fig.Data) != 2 {
		t.Fatalf("figure has %d traces, want 2", len(fig.Data))
	}
	home, away := fig.Data[0], fig.Data[1]

	if home.Color != "blue" || away.Color != "red" {
		t.Fatalf("colors = %q/%q, want blue/red", home.Color, away.Color)
	}
	if len(home.Minutes) != 2 || home.Minutes[0] != 5 || home.Minutes[1] != 7 {
		t.Fatalf("home minutes = %v, want [5 7]", home.Minutes)
	}
	if home.Values[0] != 1 {
		t.Fatalf("home gain at minute 5 = %v, want 1", home.Values[0])
	}
	if home.Values[1] != 0 {
		t.Fatalf("home losing minute = %v, want clamped to 0", home.Values[1])
	}
	if len(away.Minutes) != 1 || away.Minutes[0] != 12 {
		t.Fatalf("away minutes = %v, want [12]", away.Minutes)
	}
	if away.Values[0] != -1 {
		t.Fatalf("away gain = %v, want mirrored to -1", away.Values[0])
	}

	if fig.Layout.YAxisRange == nil {
		t.Fatal("momentum layout has no y range")
	}
	want := 1 * 1.1
	if got := *fig.Layout.YAxisRange; math.Abs(got[0]+want) > 1e-9 || math.Abs(got[1]-want) > 1e-9 {
		t.Fatalf("y range = %v, want symmetric ±%v", got, want)
	}
}

func TestSeriesService_MomentumFigure_PossessionTeamOverridesActor(t *testing.T) {
	t.Parallel()

	// A home defender's clearance-like carry during an away possession is
	// credited to the possession side.
	table := mustTable(t, []event.Event{
		{Type: event.TypeCarry, Team: homeTeam, PossessionTeam: awayTeam, Minute: 20,
			Location: loc(10, 40), CarryEndLocation: loc(100, 40)},
		{Type: event.TypePass, Team: awayTeam, Minute: 1},
	})

	svc := NewSeriesService(logging.NewNop(), testValueGrid(t))
	fig, err := svc.MomentumFigure(context.Background(), table)
	if err != nil {
		t.Fatalf("MomentumFigure: %v", err)
	}

	home, away := fig.Data[0], fig.Data[1]
	if len(home.Minutes) != 0 {
		t.Fatalf("home minutes = %v, want none", home.Minutes)
	}
	if len(away.Minutes) != 1 || away.Values[0] != -1 {
		t.Fatalf("away trace = %v/%v, want minute 20 at -1", away.Minutes, away.Values)
	}
}
