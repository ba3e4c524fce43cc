package usecase

import (
	"context"
	"fmt"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// MatchCatalogProvider lists the matches of a competition season from the
// upstream feed.
type MatchCatalogProvider interface {
	CompetitionMatches(ctx context.Context, competitionID, seasonID int64) ([]artifact.Match, error)
}

// MatchSyncService refreshes the local match worklist from the feed.
// Newly discovered matches land unprocessed so the next ETL batch picks
// them up.
type MatchSyncService struct {
	catalog MatchCatalogProvider
	matches artifact.MatchRepository
	logger  *logging.Logger
}

func NewMatchSyncService(
	catalog MatchCatalogProvider,
	matches artifact.MatchRepository,
	logger *logging.Logger,
) *MatchSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchSyncService{
		catalog: catalog,
		matches: matches,
		logger:  logger,
	}
}

// SyncCompetition upserts all matches of one competition season and
// returns how many rows the feed reported.
func (s *MatchSyncService) SyncCompetition(ctx context.Context, competitionID, seasonID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchSyncService.SyncCompetition")
	defer span.End()

	if competitionID <= 0 || seasonID <= 0 {
		return 0, fmt.Errorf("%w: competition id and season id must be positive", ErrInvalidInput)
	}

	items, err := s.catalog.CompetitionMatches(ctx, competitionID, seasonID)
	if err != nil {
		return 0, fmt.Errorf("fetch competition matches: %w", err)
	}
	if len(items) == 0 {
		s.logger.WarnContext(ctx, "competition season has no matches",
			"competition_id", competitionID,
			"season_id", seasonID,
		)
		return 0, nil
	}

	if err := s.matches.UpsertBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert matches: %w", err)
	}

	s.logger.InfoContext(ctx, "match worklist synced",
		"competition_id", competitionID,
		"season_id", seasonID,
		"match_count", len(items),
	)
	return len(items), nil
}
