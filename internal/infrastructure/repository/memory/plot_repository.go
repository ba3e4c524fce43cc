package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
)

type PlotRepository struct {
	mu    sync.RWMutex
	items map[string]artifact.Artifact
}

func NewPlotRepository() *PlotRepository {
	return &PlotRepository{items: make(map[string]artifact.Artifact)}
}

func (r *PlotRepository) Get(_ context.Context, matchID int64, kind artifact.Kind) (artifact.Artifact, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[plotKey(matchID, kind)]
	if !ok {
		return artifact.Artifact{}, false, nil
	}
	return clonePlot(item), true, nil
}

func (r *PlotRepository) ListByMatch(_ context.Context, matchID int64) ([]artifact.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]artifact.Artifact, 0, len(r.items))
	for _, item := range r.items {
		if item.MatchID == matchID {
			out = append(out, clonePlot(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func (r *PlotRepository) UpsertBatch(_ context.Context, items []artifact.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.items[plotKey(item.MatchID, item.Kind)] = clonePlot(item)
	}
	return nil
}

func (r *PlotRepository) DeleteByMatch(_ context.Context, matchID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.items {
		if item.MatchID == matchID {
			delete(r.items, key)
		}
	}
	return nil
}

func plotKey(matchID int64, kind artifact.Kind) string {
	return fmt.Sprintf("%d::%s", matchID, kind)
}

func clonePlot(item artifact.Artifact) artifact.Artifact {
	copied := item
	copied.Payload = append([]byte(nil), item.Payload...)
	return copied
}
