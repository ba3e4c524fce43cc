package usecase

import (
	"context"
	"fmt"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/platform/cache"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

// ArtifactQueryService serves precomputed artifacts to the transport layer.
// Reads go through a TTL cache because the payloads only change when an ETL
// run rewrites them; a recompute invalidates the match's keys.
type ArtifactQueryService struct {
	artifacts artifact.Repository
	matches   artifact.MatchRepository
	cache     *cache.Store
	logger    *logging.Logger
}

func NewArtifactQueryService(
	artifacts artifact.Repository,
	matches artifact.MatchRepository,
	store *cache.Store,
	logger *logging.Logger,
) *ArtifactQueryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ArtifactQueryService{
		artifacts: artifacts,
		matches:   matches,
		cache:     store,
		logger:    logger,
	}
}

func artifactCacheKey(matchID int64, kind artifact.Kind) string {
	return fmt.Sprintf("artifact:%d:%s", matchID, kind)
}

func matchCachePrefix(matchID int64) string {
	return fmt.Sprintf("artifact:%d:", matchID)
}

// GetArtifact returns one artifact's serialized payload.
func (s *ArtifactQueryService) GetArtifact(ctx context.Context, matchID int64, kind artifact.Kind) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArtifactQueryService.GetArtifact")
	defer span.End()

	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	if kind == "" {
		return nil, fmt.Errorf("%w: artifact kind is required", ErrInvalidInput)
	}

	loader := func(ctx context.Context) (any, error) {
		item, exists, err := s.artifacts.Get(ctx, matchID, kind)
		if err != nil {
			return nil, fmt.Errorf("get artifact: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: artifact %s for match %d", ErrNotFound, kind, matchID)
		}
		return item.Payload, nil
	}

	var (
		value any
		err   error
	)
	if s.cache != nil {
		value, err = s.cache.GetOrLoad(ctx, artifactCacheKey(matchID, kind), loader)
	} else {
		value, err = loader(ctx)
	}
	if err != nil {
		return nil, err
	}

	payload, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected cached artifact type %T", value)
	}
	return payload, nil
}

// ListMatchArtifacts returns every stored artifact row for a match,
// uncached since it is a dashboard/debug surface.
func (s *ArtifactQueryService) ListMatchArtifacts(ctx context.Context, matchID int64) ([]artifact.Artifact, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArtifactQueryService.ListMatchArtifacts")
	defer span.End()

	if matchID <= 0 {
		return nil, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	items, err := s.artifacts.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts by match: %w", err)
	}
	return items, nil
}

// GetMatch returns one worklist row.
func (s *ArtifactQueryService) GetMatch(ctx context.Context, matchID int64) (artifact.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArtifactQueryService.GetMatch")
	defer span.End()

	if matchID <= 0 {
		return artifact.Match{}, fmt.Errorf("%w: match id must be positive", ErrInvalidInput)
	}
	item, exists, err := s.matches.Get(ctx, matchID)
	if err != nil {
		return artifact.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return artifact.Match{}, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}
	return item, nil
}

// ListMatches returns the matches of one competition season.
func (s *ArtifactQueryService) ListMatches(ctx context.Context, competitionID, seasonID int64) ([]artifact.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ArtifactQueryService.ListMatches")
	defer span.End()

	if competitionID <= 0 || seasonID <= 0 {
		return nil, fmt.Errorf("%w: competition id and season id must be positive", ErrInvalidInput)
	}
	items, err := s.matches.ListByCompetition(ctx, competitionID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list matches by competition: %w", err)
	}
	return items, nil
}

// InvalidateMatch drops a match's cached artifacts after a recompute.
func (s *ArtifactQueryService) InvalidateMatch(ctx context.Context, matchID int64) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, matchCachePrefix(matchID))
}
