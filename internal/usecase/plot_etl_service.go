package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
)

const (
	etlStatusSuccess = "success"
	etlStatusFailed  = "failed"

	etlDefaultWorkers  = 4
	etlDefaultBatchCap = 50
)

// EventFeedProvider fetches one match's flattened event feed from the
// upstream data provider.
type EventFeedProvider interface {
	MatchEvents(ctx context.Context, matchID int64) ([]event.Event, error)
}

type ETLInput struct {
	// MatchIDs selects explicit matches; empty means "every unprocessed
	// match in the worklist", capped at BatchSize.
	MatchIDs   []int64
	BatchSize  int
	MaxWorkers int
	// DryRun computes every bundle but skips persistence.
	DryRun bool
}

type ETLResult struct {
	RunID        string          `json:"run_id"`
	MatchCount   int             `json:"match_count"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
	WorkerCount  int             `json:"worker_count"`
	Tasks        []ETLTaskResult `json:"tasks"`
}

type ETLTaskResult struct {
	MatchID    int64  `json:"match_id"`
	Status     string `json:"status"`
	Artifacts  int    `json:"artifacts"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// PlotETLService recomputes and persists the artifact bundles for batches
// of matches. Matches are independent computations, so the batch fans out
// over a worker pool; a failure in one match is recorded on its task row
// and never aborts the rest of the batch.
type PlotETLService struct {
	analytics *AnalyticsService
	provider  EventFeedProvider
	artifacts artifact.Repository
	matches   artifact.MatchRepository
	logger    *logging.Logger
	now       func() time.Time
}

func NewPlotETLService(
	analytics *AnalyticsService,
	provider EventFeedProvider,
	artifacts artifact.Repository,
	matches artifact.MatchRepository,
	logger *logging.Logger,
) *PlotETLService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlotETLService{
		analytics: analytics,
		provider:  provider,
		artifacts: artifacts,
		matches:   matches,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one ETL batch and reports per-match task rows.
func (s *PlotETLService) Run(ctx context.Context, input ETLInput) (ETLResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlotETLService.Run")
	defer span.End()

	matchIDs, err := s.resolveMatchIDs(ctx, input)
	if err != nil {
		return ETLResult{}, err
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = etlDefaultWorkers
	}
	if workerCount > len(matchIDs) && len(matchIDs) > 0 {
		workerCount = len(matchIDs)
	}

	result := ETLResult{
		RunID:       uuid.NewString(),
		MatchCount:  len(matchIDs),
		WorkerCount: workerCount,
	}
	if len(matchIDs) == 0 {
		s.logger.InfoContext(ctx, "etl run has no matches to process", "run_id", result.RunID)
		return result, nil
	}

	s.logger.InfoContext(ctx, "starting etl run",
		"run_id", result.RunID, "matches", len(matchIDs), "workers", workerCount, "dry_run", input.DryRun)

	var successCount, failedCount atomic.Int32
	results := make(chan ETLTaskResult, len(matchIDs))

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return ETLResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, matchID := range matchIDs {
		matchID := matchID
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ETLTaskResult{MatchID: matchID, Status: etlStatusSuccess}

			count, err := s.processMatch(ctx, matchID, input.DryRun)
			row.Artifacts = count
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = etlStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "match processing failed",
					"run_id", result.RunID, "match_id", matchID, "error", err)
			} else {
				successCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return ETLResult{}, fmt.Errorf("submit match to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].MatchID < result.Tasks[j].MatchID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "etl run finished",
		"run_id", result.RunID, "success", result.SuccessCount, "failed", result.FailedCount)
	return result, nil
}

func (s *PlotETLService) resolveMatchIDs(ctx context.Context, input ETLInput) ([]int64, error) {
	if len(input.MatchIDs) > 0 {
		return input.MatchIDs, nil
	}

	limit := input.BatchSize
	if limit <= 0 {
		limit = etlDefaultBatchCap
	}
	matches, err := s.matches.ListUnprocessed(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list unprocessed matches: %w", err)
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids, nil
}

// processMatch runs the whole pipeline for one match: fetch the feed, build
// the table, compute the bundle, serialize and persist. The returned count
// is the number of artifacts written (or that would be written on dry run).
func (s *PlotETLService) processMatch(ctx context.Context, matchID int64, dryRun bool) (int, error) {
	events, err := s.provider.MatchEvents(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("fetch events for match %d: %w", matchID, err)
	}
	table, err := event.NewTable(events)
	if err != nil {
		return 0, fmt.Errorf("build event table for match %d: %w", matchID, err)
	}

	bundle, err := s.analytics.ComputeBundle(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("compute bundle for match %d: %w", matchID, err)
	}

	items, err := s.serializeBundle(matchID, bundle)
	if err != nil {
		return 0, err
	}
	if dryRun {
		return len(items), nil
	}

	if err := s.artifacts.UpsertBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("persist artifacts for match %d: %w", matchID, err)
	}
	if err := s.matches.MarkProcessed(ctx, matchID); err != nil {
		return 0, fmt.Errorf("mark match %d processed: %w", matchID, err)
	}
	return len(items), nil
}

// serializeBundle flattens the bundle into persistable artifact rows, one
// JSON payload per kind.
func (s *PlotETLService) serializeBundle(matchID int64, bundle ArtifactBundle) ([]artifact.Artifact, error) {
	computedAt := s.now().UTC()
	items := make([]artifact.Artifact, 0, len(bundle.Heatmaps)+6)

	add := func(kind artifact.Kind, payload any) error {
		data, err := marshalArtifact(payload)
		if err != nil {
			return fmt.Errorf("marshal %s artifact: %w", kind, err)
		}
		items = append(items, artifact.Artifact{
			MatchID:    matchID,
			Kind:       kind,
			Payload:    data,
			ComputedAt: computedAt,
		})
		return nil
	}

	kinds := make([]artifact.Kind, 0, len(bundle.Heatmaps))
	for kind := range bundle.Heatmaps {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		if err := add(kind, bundle.Heatmaps[kind]); err != nil {
			return nil, err
		}
	}

	if err := add(artifact.KindXGGraph, bundle.XGGraph); err != nil {
		return nil, err
	}
	if err := add(artifact.KindMomentumGraph, bundle.Momentum); err != nil {
		return nil, err
	}
	if err := add(artifact.KindRadar, bundle.Radar); err != nil {
		return nil, err
	}
	if err := add(artifact.KindMatchSummary, bundle.Summary); err != nil {
		return nil, err
	}
	if err := add(artifact.KindTeamStatsHome, bundle.HomeStats); err != nil {
		return nil, err
	}
	if err := add(artifact.KindTeamStatsAway, bundle.AwayStats); err != nil {
		return nil, err
	}
	return items, nil
}

// marshalArtifact serializes through a pooled buffer so batch runs do not
// churn large one-off allocations per figure.
func marshalArtifact(payload any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return nil, err
	}
	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}
