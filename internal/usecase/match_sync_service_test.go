package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/infrastructure/repository/memory"
)

type stubMatchCatalog struct {
	matches []artifact.Match
	err     error
}

func (s *stubMatchCatalog) CompetitionMatches(context.Context, int64, int64) ([]artifact.Match, error) {
	return s.matches, s.err
}

func TestMatchSyncService_SyncCompetition(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	catalog := &stubMatchCatalog{matches: []artifact.Match{
		{ID: 101, CompetitionID: 2, SeasonID: 27, HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: kickoff},
		{ID: 102, CompetitionID: 2, SeasonID: 27, KickoffAt: kickoff.Add(2 * time.Hour)},
	}}
	repo := memory.NewMatchRepository()

	svc := NewMatchSyncService(catalog, repo, nil)
	count, err := svc.SyncCompetition(context.Background(), 2, 27)
	if err != nil {
		t.Fatalf("SyncCompetition: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	stored, err := repo.ListByCompetition(context.Background(), 2, 27)
	if err != nil {
		t.Fatalf("ListByCompetition: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored matches = %d, want 2", len(stored))
	}
	if stored[0].ProcessedAt != nil {
		t.Fatal("new matches must land unprocessed")
	}
}

func TestMatchSyncService_SyncCompetition_InvalidIDs(t *testing.T) {
	t.Parallel()

	svc := NewMatchSyncService(&stubMatchCatalog{}, memory.NewMatchRepository(), nil)

	if _, err := svc.SyncCompetition(context.Background(), 0, 27); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("zero competition error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.SyncCompetition(context.Background(), 2, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative season error = %v, want ErrInvalidInput", err)
	}
}

func TestMatchSyncService_SyncCompetition_FeedFailure(t *testing.T) {
	t.Parallel()

	feedErr := errors.New("feed down")
	svc := NewMatchSyncService(&stubMatchCatalog{err: feedErr}, memory.NewMatchRepository(), nil)

	if _, err := svc.SyncCompetition(context.Background(), 2, 27); !errors.Is(err, feedErr) {
		t.Fatalf("error = %v, want wrapped feed error", err)
	}
}

func TestMatchSyncService_SyncCompetition_EmptySeason(t *testing.T) {
	t.Parallel()

	repo := memory.NewMatchRepository()
	svc := NewMatchSyncService(&stubMatchCatalog{}, repo, nil)

	count, err := svc.SyncCompetition(context.Background(), 2, 27)
	if err != nil {
		t.Fatalf("SyncCompetition: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}
