package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"

	_ "github.com/lib/pq"

	"github.com/moviedraft/movie-auction/external/boxoffice"
	"github.com/moviedraft/movie-auction/external/metacritic"
	"github.com/moviedraft/movie-auction/external/omdb"
	"github.com/moviedraft/movie-auction/external/resend"
	"github.com/moviedraft/movie-auction/internal/config"
	"github.com/moviedraft/movie-auction/internal/domain/aggregate"
	"github.com/moviedraft/movie-auction/internal/domain/auction"
	"github.com/moviedraft/movie-auction/internal/domain/batch"
	"github.com/moviedraft/movie-auction/internal/domain/movie"
	"github.com/moviedraft/movie-auction/internal/domain/player"
	"github.com/moviedraft/movie-auction/internal/domain/stats"
	cacherepo "github.com/moviedraft/movie-auction/internal/infrastructure/repository/cache"
	"github.com/moviedraft/movie-auction/internal/infrastructure/repository/memory"
	"github.com/moviedraft/movie-auction/internal/infrastructure/repository/postgres"
	"github.com/moviedraft/movie-auction/internal/interfaces/httpapi"
	"github.com/moviedraft/movie-auction/internal/platform/cache"
	"github.com/moviedraft/movie-auction/internal/platform/logging"
	"github.com/moviedraft/movie-auction/internal/platform/resilience"
	"github.com/moviedraft/movie-auction/internal/usecase"
)

// App owns the wired service graph and the resources that need explicit
// shutdown (the database handle in particular — no package-level globals).
type App struct {
	Server *http.Server

	db *sqlx.DB
}

type repositories struct {
	movies    movie.Repository
	stats     stats.Repository
	players   player.Repository
	auctions  auction.Repository
	aggregate aggregate.Repository
	lock      batch.LockRepository
	pinger    httpapi.DBPinger
}

func New(cfg config.Config, slogger *slog.Logger, logger *logging.Logger) (*App, error) {
	if slogger == nil {
		slogger = slog.Default()
	}
	if logger == nil {
		logger = logging.Default()
	}

	var db *sqlx.DB
	var repos repositories
	var err error

	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, repos, err = newPostgresRepositories(cfg)
		if err != nil {
			return nil, err
		}
	case config.StorageDriverMemory:
		repos = newMemoryRepositories(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	cacheStore := cache.NewStore(cfg.CacheTTL)
	repos.movies = cacherepo.NewMovieRepository(repos.movies, cacheStore)
	repos.players = cacherepo.NewPlayerRepository(repos.players, cacheStore)

	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.AdapterCircuitEnabled,
		FailureThreshold: cfg.AdapterCircuitFailureCount,
		OpenTimeout:      cfg.AdapterCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.AdapterCircuitHalfOpenMaxReq,
	}

	criticClient := metacritic.NewClient(metacritic.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.MetacriticTimeout},
		BaseURL:        cfg.MetacriticBaseURL,
		MaxRetries:     cfg.MetacriticMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	boxOfficeClient := boxoffice.NewClient(boxoffice.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.BoxOfficeTimeout},
		BaseURL:        cfg.BoxOfficeBaseURL,
		MaxRetries:     cfg.BoxOfficeMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})
	omdbClient := omdb.NewClient(omdb.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.OMDBTimeout},
		BaseURL:        cfg.OMDBBaseURL,
		APIKey:         cfg.OMDBAPIKey,
		MaxRetries:     cfg.OMDBMaxRetries,
		Logger:         logger,
		CircuitBreaker: breakerCfg,
	})

	notifier := usecase.NewNoopReportNotifier()
	if cfg.ResendEnabled {
		resendNotifier, err := resend.NewNotifier(resend.NotifierConfig{
			APIKey:  cfg.ResendAPIKey,
			From:    cfg.ResendFrom,
			To:      cfg.ResendTo,
			Timeout: cfg.ResendTimeout,
			Logger:  logger,
		})
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("build resend notifier: %w", err)
		}
		notifier = resendNotifier
	}

	scoreCfg := usecase.ScoreConfig{AwardThreshold: cfg.AwardThreshold}

	reconciler := usecase.NewReconcilerService(
		repos.movies,
		repos.stats,
		criticClient,
		boxOfficeClient,
		omdbClient,
		omdbClient,
		logger,
	)
	aggregateSvc := usecase.NewAggregateService(
		repos.aggregate,
		repos.auctions,
		cacheStore,
		scoreCfg,
		cfg.AggregateWorkers,
		logger,
	)
	batchSvc := usecase.NewBatchService(
		repos.movies,
		reconciler,
		aggregateSvc,
		repos.lock,
		notifier,
		usecase.BatchConfig{
			InterMovieDelay: cfg.BatchInterMovieDelay,
			RunTimeout:      cfg.BatchRunTimeout,
		},
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(repos.aggregate, repos.auctions, cacheStore, scoreCfg, logger)
	catalogSvc := usecase.NewCatalogService(repos.movies, repos.players, repos.stats)

	handler := httpapi.NewHandler(catalogSvc, leaderboardSvc, batchSvc, repos.pinger, slogger)
	router := httpapi.NewRouter(handler, slogger, cfg.CORSAllowedOrigins, cfg.CronSecret)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db}, nil
}

// Close releases resources held by the app. Safe to call after the HTTP
// server has shut down.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func newPostgresRepositories(cfg config.Config) (*sqlx.DB, repositories, error) {
	dbURL := normalizeDBURL(cfg.DBURL, true)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	return db, repositories{
		movies:    postgres.NewMovieRepository(db),
		stats:     postgres.NewStatsRepository(db),
		players:   postgres.NewPlayerRepository(db),
		auctions:  postgres.NewAuctionRepository(db),
		aggregate: postgres.NewAggregateRepository(db),
		lock:      postgres.NewBatchLockRepository(db),
		pinger:    db,
	}, nil
}

func newMemoryRepositories(cfg config.Config) repositories {
	movieRepo := memory.NewMovieRepository(memory.SeedMovies())
	statsRepo := memory.NewStatsRepository(memory.SeedStats())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	auctionRepo := memory.NewAuctionRepository(memory.SeedAuctions(), memory.SeedPicks(), memory.SeedPlayerEntries())
	aggregateRepo := memory.NewAggregateRepository(movieRepo, statsRepo, playerRepo, auctionRepo)

	return repositories{
		movies:    movieRepo,
		stats:     statsRepo,
		players:   playerRepo,
		auctions:  auctionRepo,
		aggregate: aggregateRepo,
		lock:      memory.NewBatchLockRepository(cfg.BatchLockTTL),
	}
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
