package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/platform/logging"
)

const defaultRefreshWorkers = 4

// RefreshSummary reports what one recompute pass did.
type RefreshSummary struct {
	ActiveGames int
	Succeeded   int
	Failed      int
}

// LiveRefreshService recomputes and republishes the scoreboard of every
// Active game. One game's failure never aborts the others and never escapes
// the pass.
type LiveRefreshService struct {
	games   game.Repository
	scorer  finalScorer
	workers int
	logger  *logging.Logger
}

func NewLiveRefreshService(games game.Repository, scorer *ScoringService, workers int, logger *logging.Logger) *LiveRefreshService {
	if workers <= 0 {
		workers = defaultRefreshWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LiveRefreshService{
		games:   games,
		scorer:  scorer,
		workers: workers,
		logger:  logger,
	}
}

// RefreshActiveGames runs one recompute pass over all Active games.
func (s *LiveRefreshService) RefreshActiveGames(ctx context.Context) (RefreshSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "LiveRefreshService.RefreshActiveGames")
	defer span.End()

	active, err := s.games.ListByStatus(ctx, game.StatusActive)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list active games: %w", err)
	}
	if len(active) == 0 {
		s.logger.DebugContext(ctx, "no active games to refresh")
		return RefreshSummary{}, nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var succeeded, failed atomic.Int32
	var wg sync.WaitGroup

	for _, g := range active {
		g := g
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := s.refreshGame(ctx, g.ID); err != nil {
				failed.Add(1)
				s.logger.ErrorContext(ctx, "live score refresh failed",
					"game_id", g.ID,
					"error", err,
				)
				return
			}
			succeeded.Add(1)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit refresh task failed",
				"game_id", g.ID,
				"error", submitErr,
			)
		}
	}
	wg.Wait()

	summary := RefreshSummary{
		ActiveGames: len(active),
		Succeeded:   int(succeeded.Load()),
		Failed:      int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "live score refresh pass done",
		"active_games", summary.ActiveGames,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)
	return summary, nil
}

func (s *LiveRefreshService) refreshGame(ctx context.Context, gameID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh panicked: %v", r)
		}
	}()

	_, err = s.scorer.ComputeAndStore(ctx, gameID)
	return err
}
