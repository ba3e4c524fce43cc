package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	artifactmock "github.com/pitchsight/pitchsight/internal/mocks/domain/artifact"
	usecasemock "github.com/pitchsight/pitchsight/internal/mocks/usecase"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestArtifactQueryService_GetArtifact_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	artifacts := artifactmock.NewRepository(t)
	matches := artifactmock.NewMatchRepository(t)
	service := NewArtifactQueryService(artifacts, matches, nil, logging.NewNop())

	stored := artifact.Artifact{
		MatchID:    3895302,
		Kind:       artifact.KindRadar,
		Payload:    []byte(`{"traces":2}`),
		ComputedAt: time.Date(2024, 3, 2, 17, 0, 0, 0, time.UTC),
	}
	artifacts.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil }), int64(3895302), artifact.KindRadar).
		Return(stored, true, nil).
		Once()

	payload, err := service.GetArtifact(context.Background(), 3895302, artifact.KindRadar)
	if err != nil {
		t.Fatalf("get artifact: %v", err)
	}
	if string(payload) != `{"traces":2}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
}

func TestArtifactQueryService_GetArtifact_RepositoryErrorUsingMockery(t *testing.T) {
	t.Parallel()

	artifacts := artifactmock.NewRepository(t)
	matches := artifactmock.NewMatchRepository(t)
	service := NewArtifactQueryService(artifacts, matches, nil, logging.NewNop())

	storeErr := errors.New("connection reset")
	artifacts.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil }), int64(3895302), artifact.KindRadar).
		Return(artifact.Artifact{}, false, storeErr).
		Once()

	_, err := service.GetArtifact(context.Background(), 3895302, artifact.KindRadar)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestPlotETLService_Run_FeedFailureUsingMockery(t *testing.T) {
	t.Parallel()

	provider := usecasemock.NewEventFeedProvider(t)
	artifacts := artifactmock.NewRepository(t)
	matches := artifactmock.NewMatchRepository(t)

	logger := logging.NewNop()
	analytics := NewAnalyticsService(
		NewHeatmapService(logger),
		NewContributionService(logger),
		NewSeriesService(logger, testValueGrid(t)),
		NewTeamStatsService(logger),
		NewRadarService(logger),
		logger,
	)
	service := NewPlotETLService(analytics, provider, artifacts, matches, logger)

	feedErr := errors.New("feed timeout")
	provider.
		On("MatchEvents", mock.MatchedBy(func(v context.Context) bool { return v != nil }), int64(3895302)).
		Return(nil, feedErr).
		Once()

	result, err := service.Run(context.Background(), ETLInput{MatchIDs: []int64{3895302}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.SuccessCount != 0 || result.FailedCount != 1 {
		t.Fatalf("result = %+v, want one failed task", result)
	}
	if result.Tasks[0].Status != etlStatusFailed || result.Tasks[0].Message == "" {
		t.Fatalf("task = %+v, want failed with a message", result.Tasks[0])
	}
}
