package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/valyala/fasthttp"

	"github.com/pitchsight/pitchsight/external/statsbomb"
	"github.com/pitchsight/pitchsight/internal/config"
	"github.com/pitchsight/pitchsight/internal/domain/artifact"
	"github.com/pitchsight/pitchsight/internal/domain/pitch"
	"github.com/pitchsight/pitchsight/internal/infrastructure/repository/memory"
	"github.com/pitchsight/pitchsight/internal/infrastructure/repository/postgres"
	"github.com/pitchsight/pitchsight/internal/interfaces/httpapi"
	"github.com/pitchsight/pitchsight/internal/platform/cache"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/pitchsight/pitchsight/internal/platform/resilience"
	"github.com/pitchsight/pitchsight/internal/usecase"
)

const dbPingTimeout = 5 * time.Second

// Application bundles everything the binaries need: the wired HTTP server,
// the ETL entry point for the CLI, and the handles required for shutdown.
type Application struct {
	Config      config.Config
	Logger      *logging.Logger
	HTTPServer  *http.Server
	ETLService  *usecase.PlotETLService
	SyncService *usecase.MatchSyncService

	db *sqlx.DB
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	// The momentum figure depends on the grid for every match, so a missing
	// grid file refuses startup instead of failing each bundle later.
	valueGrid, err := pitch.LoadValueGrid(cfg.XTGridPath)
	if err != nil {
		return nil, fmt.Errorf("load expected threat grid %s: %w", cfg.XTGridPath, err)
	}

	artifactRepo, matchRepo, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	feed := statsbomb.NewClient(statsbomb.ClientConfig{
		HTTPClient: &fasthttp.Client{},
		BaseURL:    cfg.StatsBombBaseURL,
		Timeout:    cfg.StatsBombTimeout,
		MaxRetries: cfg.StatsBombMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsBombCircuitEnabled,
			FailureThreshold: cfg.StatsBombCircuitFailureCount,
			OpenTimeout:      cfg.StatsBombCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsBombCircuitHalfOpenMaxReq,
		},
	})

	analytics := usecase.NewAnalyticsService(
		usecase.NewHeatmapService(logger),
		usecase.NewContributionService(logger),
		usecase.NewSeriesService(logger, valueGrid),
		usecase.NewTeamStatsService(logger),
		usecase.NewRadarService(logger),
		logger,
	)
	etlService := usecase.NewPlotETLService(analytics, feed, artifactRepo, matchRepo, logger)
	syncService := usecase.NewMatchSyncService(feed, matchRepo, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}
	queryService := usecase.NewArtifactQueryService(artifactRepo, matchRepo, store, logger)

	handler := httpapi.NewHandler(queryService, etlService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Application{
		Config:      cfg,
		Logger:      logger,
		HTTPServer:  server,
		ETLService:  etlService,
		SyncService: syncService,
		db:          db,
	}, nil
}

func (a *Application) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// buildRepositories wires postgres when DB_URL is set and the in-memory pair
// otherwise. A configured but unreachable database is an error, never a
// silent fallback.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (artifact.Repository, artifact.MatchRepository, *sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("no DB_URL configured, using in-memory repositories")
		return memory.NewPlotRepository(), memory.NewMatchRepository(), nil, nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("postgres repositories ready", "db", dbNameFromURL(cfg.DBURL))
	return postgres.NewPlotRepository(db), postgres.NewMatchRepository(db), db, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
