// Package app assembles the service from configuration.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fieldgames/domination/internal/config"
	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/domain/participant"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
	"github.com/fieldgames/domination/internal/infrastructure/notify"
	"github.com/fieldgames/domination/internal/infrastructure/repository/memory"
	"github.com/fieldgames/domination/internal/infrastructure/repository/postgres"
	"github.com/fieldgames/domination/internal/interfaces/httpapi"
	"github.com/fieldgames/domination/internal/platform/cache"
	idgen "github.com/fieldgames/domination/internal/platform/id"
	"github.com/fieldgames/domination/internal/platform/keylock"
	"github.com/fieldgames/domination/internal/platform/logging"
	"github.com/fieldgames/domination/internal/platform/resilience"
	"github.com/fieldgames/domination/internal/scheduler"
	"github.com/fieldgames/domination/internal/usecase"
)

type repositories struct {
	games          game.Repository
	controlPoints  controlpoint.Repository
	gameEvents     gameevent.Repository
	participants   participant.Repository
	scoreSnapshots scoreboard.Repository
	close          func() error
}

// App holds the wired service with its background scheduler.
type App struct {
	Server    *http.Server
	Scheduler *scheduler.Scheduler

	closeStore func() error
}

func New(cfg config.Config, logger *logging.Logger, edgeLogger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if edgeLogger == nil {
		edgeLogger = slog.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	liveCache := cache.NewStore(cfg.ScoreCacheTTL)
	locks := keylock.New()
	ids := idgen.NewRandomGenerator()

	scoring := usecase.NewScoringService(
		repos.games,
		repos.gameEvents,
		repos.participants,
		repos.scoreSnapshots,
		cfg.CaptureBonusPoints,
		liveCache,
		logger,
	)
	capture := usecase.NewCaptureService(repos.games, repos.controlPoints, repos.gameEvents, ids, locks, logger)

	publisher := notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
		URL:       cfg.FinalScoreWebhookURL,
		AuthToken: cfg.FinalScoreWebhookToken,
		Timeout:   cfg.FinalScoreWebhookTimeout,
		Breaker:   resilience.DefaultCircuitBreakerConfig(),
	}, logger)

	lifecycle := usecase.NewLifecycleService(
		repos.games,
		repos.controlPoints,
		repos.gameEvents,
		scoring,
		publisher,
		ids,
		locks,
		logger,
	)
	refresh := usecase.NewLiveRefreshService(repos.games, scoring, cfg.LiveRefreshWorkers, logger)

	handler := httpapi.NewHandler(capture, lifecycle, scoring, refresh, repos.games, repos.controlPoints, edgeLogger)
	router := httpapi.NewRouter(handler, edgeLogger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:     server,
		Scheduler:  scheduler.New(refresh, cfg.LiveRefreshInterval, logger),
		closeStore: repos.close,
	}, nil
}

func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no database configured, using seeded in-memory storage")
		fixtures := memory.NewSeeded(time.Now())
		return repositories{
			games:          fixtures.Games,
			controlPoints:  fixtures.ControlPoints,
			gameEvents:     fixtures.GameEvents,
			participants:   fixtures.Participants,
			scoreSnapshots: fixtures.ScoreSnapshots,
			close:          func() error { return nil },
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	logger.Info("postgres storage configured", "db_name", dbNameFromURL(cfg.DatabaseURL))
	return repositories{
		games:          postgres.NewGameRepository(db),
		controlPoints:  postgres.NewControlPointRepository(db),
		gameEvents:     postgres.NewGameEventRepository(db),
		participants:   postgres.NewParticipantRepository(db),
		scoreSnapshots: postgres.NewScoreSnapshotRepository(db),
		close:          db.Close,
	}, nil
}
