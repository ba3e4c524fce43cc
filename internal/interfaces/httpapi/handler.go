package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/pitchsight/pitchsight/internal/usecase"
)

const maxRecomputeBodyBytes = 1 << 20

type Handler struct {
	queryService *usecase.ArtifactQueryService
	etlService   *usecase.PlotETLService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(
	queryService *usecase.ArtifactQueryService,
	etlService *usecase.PlotETLService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		queryService: queryService,
		etlService:   etlService,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type matchDTO struct {
	MatchID       int64      `json:"match_id"`
	CompetitionID int64      `json:"competition_id"`
	SeasonID      int64      `json:"season_id"`
	HomeTeam      string     `json:"home_team"`
	AwayTeam      string     `json:"away_team"`
	KickoffAt     time.Time  `json:"kickoff_at"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
}

func matchToDTO(item artifact.Match) matchDTO {
	return matchDTO{
		MatchID:       item.ID,
		CompetitionID: item.CompetitionID,
		SeasonID:      item.SeasonID,
		HomeTeam:      item.HomeTeam,
		AwayTeam:      item.AwayTeam,
		KickoffAt:     item.KickoffAt,
		ProcessedAt:   item.ProcessedAt,
	}
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	competitionID, err := pathInt64(r, "competitionID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	seasonID, err := pathInt64(r, "seasonID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.queryService.ListMatches(ctx, competitionID, seasonID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(matches))
	for _, item := range matches {
		out = append(out, matchToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.queryService.GetMatch(ctx, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchSummary")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	payload, err := h.queryService.GetArtifact(ctx, matchID, artifact.KindMatchSummary)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, json.RawMessage(payload))
}

type plotMetaDTO struct {
	Kind       string    `json:"kind"`
	ComputedAt time.Time `json:"computed_at"`
	SizeBytes  int       `json:"size_bytes"`
}

func (h *Handler) ListMatchPlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchPlots")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.queryService.ListMatchArtifacts(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list match plots failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]plotMetaDTO, 0, len(items))
	for _, item := range items {
		out = append(out, plotMetaDTO{
			Kind:       string(item.Kind),
			ComputedAt: item.ComputedAt,
			SizeBytes:  len(item.Payload),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatchPlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchPlot")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	kind := r.PathValue("kind")

	payload, err := h.queryService.GetArtifact(ctx, matchID, artifact.Kind(kind))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, json.RawMessage(payload))
}

type recomputeRequestDTO struct {
	MatchIDs   []int64 `json:"match_ids" validate:"omitempty,dive,gt=0"`
	BatchSize  int     `json:"batch_size" validate:"gte=0,lte=500"`
	MaxWorkers int     `json:"max_workers" validate:"gte=0,lte=64"`
	DryRun     bool    `json:"dry_run"`
}

func (h *Handler) RunRecomputeJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputeJob")
	defer span.End()

	var req recomputeRequestDTO
	body := http.MaxBytesReader(w, r.Body, maxRecomputeBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.etlService.Run(ctx, usecase.ETLInput{
		MatchIDs:   req.MatchIDs,
		BatchSize:  req.BatchSize,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if !req.DryRun {
		for _, task := range result.Tasks {
			h.queryService.InvalidateMatch(ctx, task.MatchID)
		}
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
