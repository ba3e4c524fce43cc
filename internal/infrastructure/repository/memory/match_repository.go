package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[int64]artifact.Match
	now   func() time.Time
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{
		items: make(map[int64]artifact.Match),
		now:   time.Now,
	}
}

func (r *MatchRepository) Get(_ context.Context, matchID int64) (artifact.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return artifact.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) ListUnprocessed(_ context.Context, limit int) ([]artifact.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifact.Match, 0, len(r.items))
	for _, item := range r.items {
		if item.ProcessedAt == nil {
			out = append(out, cloneMatch(item))
		}
	}
	sortMatches(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MatchRepository) ListByCompetition(_ context.Context, competitionID, seasonID int64) ([]artifact.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifact.Match, 0, len(r.items))
	for _, item := range r.items {
		if item.CompetitionID == competitionID && item.SeasonID == seasonID {
			out = append(out, cloneMatch(item))
		}
	}
	sortMatches(out)
	return out, nil
}

func (r *MatchRepository) UpsertBatch(_ context.Context, items []artifact.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		existing, ok := r.items[item.ID]
		if ok {
			// Processing state survives metadata refreshes.
			item.ProcessedAt = existing.ProcessedAt
		}
		r.items[item.ID] = cloneMatch(item)
	}
	return nil
}

func (r *MatchRepository) MarkProcessed(_ context.Context, matchID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[matchID]
	if !ok {
		return nil
	}
	processedAt := r.now().UTC()
	item.ProcessedAt = &processedAt
	r.items[matchID] = item
	return nil
}

func sortMatches(items []artifact.Match) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].KickoffAt.Equal(items[j].KickoffAt) {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		}
		return items[i].ID < items[j].ID
	})
}

func cloneMatch(item artifact.Match) artifact.Match {
	copied := item
	if item.ProcessedAt != nil {
		processedAt := *item.ProcessedAt
		copied.ProcessedAt = &processedAt
	}
	return copied
}
