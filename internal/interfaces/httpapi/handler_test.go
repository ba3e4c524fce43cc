package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/event"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
	"github.com/pitchsight/pitchsight/internal/infrastructure/repository/memory"
	"github.com/pitchsight/pitchsight/internal/platform/cache"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/pitchsight/pitchsight/internal/usecase"
)

const testJobToken = "test-job-token"

type testEnvelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
	} `json:"error"`
}

type fixedEventFeed struct {
	events []event.Event
}

func (f *fixedEventFeed) MatchEvents(context.Context, int64) ([]event.Event, error) {
	return f.events, nil
}

func testMatchEvents() []event.Event {
	shotXG := 0.4
	locate := func(x, y float64) *event.Location { return &event.Location{X: x, Y: y} }
	return []event.Event{
		{Type: event.TypeStartingXI, Team: "Arsenal", Period: 1, Lineup: []string{"Saka"}},
		{Type: event.TypeStartingXI, Team: "Chelsea", Period: 1, Lineup: []string{"Palmer"}},
		{Type: event.TypePass, Team: "Arsenal", Period: 1, Minute: 3,
			Location: locate(40, 40), PassEndLocation: locate(70, 40)},
		{Type: event.TypeShot, Team: "Arsenal", Player: "Saka", Period: 1, Minute: 12,
			Location: locate(105, 38), ShotOutcome: event.ShotOutcomeGoal, ShotXG: &shotXG},
		{Type: event.TypePass, Team: "Chelsea", Period: 2, Minute: 50,
			Location: locate(60, 30), PassEndLocation: locate(45, 30)},
	}
}

type routerFixture struct {
	router  http.Handler
	plots   *memory.PlotRepository
	matches *memory.MatchRepository
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()

	logger := logging.NewNop()
	plots := memory.NewPlotRepository()
	matches := memory.NewMatchRepository()

	valueGrid, err := pitch.NewValueGrid([][]float64{{0, 1}})
	if err != nil {
		t.Fatalf("build value grid: %v", err)
	}
	analytics := usecase.NewAnalyticsService(
		usecase.NewHeatmapService(logger),
		usecase.NewContributionService(logger),
		usecase.NewSeriesService(logger, valueGrid),
		usecase.NewTeamStatsService(logger),
		usecase.NewRadarService(logger),
		logger,
	)
	etl := usecase.NewPlotETLService(analytics, &fixedEventFeed{events: testMatchEvents()}, plots, matches, logger)
	query := usecase.NewArtifactQueryService(plots, matches, cache.NewStore(time.Minute), logger)

	handler := NewHandler(query, etl, logger)
	router := NewRouter(handler, logger, []string{"*"}, testJobToken)
	return routerFixture{router: router, plots: plots, matches: matches}
}

func (fx routerFixture) do(t *testing.T, method, path, body string, header map[string]string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)

	var envelope testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope from %s %s: %v (body %s)", method, path, err, rec.Body.String())
	}
	return rec, envelope
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)
	rec, envelope := fx.do(t, http.MethodGet, "/healthz", "", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if envelope.APIVersion != "2.0" {
		t.Fatalf("apiVersion = %q, want 2.0", envelope.APIVersion)
	}
	if !strings.Contains(string(envelope.Data), `"status":"ok"`) {
		t.Fatalf("data = %s", envelope.Data)
	}
}

func TestRouter_GetMatch(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)
	kickoff := time.Date(2024, 3, 2, 15, 0, 0, 0, time.UTC)
	if err := fx.matches.UpsertBatch(context.Background(), []artifact.Match{
		{ID: 101, CompetitionID: 2, SeasonID: 27, HomeTeam: "Arsenal", AwayTeam: "Chelsea", KickoffAt: kickoff},
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	rec, envelope := fx.do(t, http.MethodGet, "/v1/matches/101", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var dto struct {
		MatchID  int64  `json:"match_id"`
		HomeTeam string `json:"home_team"`
	}
	if err := json.Unmarshal(envelope.Data, &dto); err != nil {
		t.Fatalf("decode match: %v", err)
	}
	if dto.MatchID != 101 || dto.HomeTeam != "Arsenal" {
		t.Fatalf("match = %+v", dto)
	}
}

func TestRouter_GetMatch_Errors(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)

	rec, envelope := fx.do(t, http.MethodGet, "/v1/matches/abc", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id status = %d, want 400", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("error = %+v, want INVALID_ARGUMENT", envelope.Error)
	}

	rec, envelope = fx.do(t, http.MethodGet, "/v1/matches/999", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing match status = %d, want 404", rec.Code)
	}
	if envelope.Error == nil || envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("error = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestRouter_ListMatches(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)
	if err := fx.matches.UpsertBatch(context.Background(), []artifact.Match{
		{ID: 101, CompetitionID: 2, SeasonID: 27},
		{ID: 102, CompetitionID: 2, SeasonID: 27},
		{ID: 103, CompetitionID: 2, SeasonID: 90},
	}); err != nil {
		t.Fatalf("seed matches: %v", err)
	}

	rec, envelope := fx.do(t, http.MethodGet, "/v1/competitions/2/seasons/27/matches", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Data, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
}

func TestRouter_MatchPlots(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)
	if err := fx.plots.UpsertBatch(context.Background(), []artifact.Artifact{{
		MatchID:    101,
		Kind:       "dominance_full",
		Payload:    []byte(`{"grid":true}`),
		ComputedAt: time.Now().UTC(),
	}}); err != nil {
		t.Fatalf("seed plot: %v", err)
	}

	rec, envelope := fx.do(t, http.MethodGet, "/v1/matches/101/plots/dominance_full", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if string(envelope.Data) != `{"grid":true}` {
		t.Fatalf("data = %s, want stored payload passed through", envelope.Data)
	}

	rec, _ = fx.do(t, http.MethodGet, "/v1/matches/101/plots/xg_graph", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing plot status = %d, want 404", rec.Code)
	}

	rec, envelope = fx.do(t, http.MethodGet, "/v1/matches/101/plots", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	var metas []struct {
		Kind      string `json:"kind"`
		SizeBytes int    `json:"size_bytes"`
	}
	if err := json.Unmarshal(envelope.Data, &metas); err != nil {
		t.Fatalf("decode plot list: %v", err)
	}
	if len(metas) != 1 || metas[0].Kind != "dominance_full" || metas[0].SizeBytes == 0 {
		t.Fatalf("metas = %+v", metas)
	}
}

func TestRouter_RecomputeJob(t *testing.T) {
	t.Parallel()

	fx := newRouterFixture(t)

	rec, _ := fx.do(t, http.MethodPost, "/v1/internal/jobs/recompute", `{"match_ids":[101]}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("tokenless status = %d, want 401", rec.Code)
	}

	auth := map[string]string{"X-Internal-Job-Token": testJobToken}

	rec, _ = fx.do(t, http.MethodPost, "/v1/internal/jobs/recompute", `{"match_ids":[-1]}`, auth)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid body status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}

	rec, envelope := fx.do(t, http.MethodPost, "/v1/internal/jobs/recompute", `{"match_ids":[101]}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("recompute status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var result struct {
		SuccessCount int `json:"success_count"`
		FailedCount  int `json:"failed_count"`
	}
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.SuccessCount != 1 || result.FailedCount != 0 {
		t.Fatalf("result = %+v, want one success", result)
	}

	stored, err := fx.plots.ListByMatch(context.Background(), 101)
	if err != nil {
		t.Fatalf("ListByMatch: %v", err)
	}
	if len(stored) == 0 {
		t.Fatal("recompute persisted no artifacts")
	}
}
