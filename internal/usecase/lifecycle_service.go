package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
	"github.com/fieldgames/domination/internal/platform/id"
	"github.com/fieldgames/domination/internal/platform/keylock"
	"github.com/fieldgames/domination/internal/platform/logging"
)

type finalScorer interface {
	ComputeAndStore(ctx context.Context, gameID string) ([]scoreboard.TeamScore, error)
}

// FinalScorePublisher pushes a finished game's scoreboard to an external
// consumer. Publishing is best-effort and never blocks finalization.
type FinalScorePublisher interface {
	PublishFinalScores(ctx context.Context, g game.Game, scores []scoreboard.TeamScore) error
}

// LifecycleService drives the Scheduled, Active, Finished state machine and
// the end-of-game finalization that goes with it.
type LifecycleService struct {
	games  game.Repository
	points controlpoint.Repository
	events gameevent.Repository

	scorer    finalScorer
	publisher FinalScorePublisher

	ids    id.Generator
	locks  *keylock.KeyedMutex
	logger *logging.Logger
	now    func() time.Time
}

func NewLifecycleService(
	games game.Repository,
	points controlpoint.Repository,
	events gameevent.Repository,
	scorer *ScoringService,
	publisher FinalScorePublisher,
	ids id.Generator,
	locks *keylock.KeyedMutex,
	logger *logging.Logger,
) *LifecycleService {
	if locks == nil {
		locks = keylock.New()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LifecycleService{
		games:     games,
		points:    points,
		events:    events,
		scorer:    scorer,
		publisher: publisher,
		ids:       ids,
		locks:     locks,
		logger:    logger,
		now:       time.Now,
	}
}

// Start activates a Scheduled game. At most one game may be Active at a time;
// starting while another game runs is rejected without side effects.
func (s *LifecycleService) Start(ctx context.Context, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "LifecycleService.Start")
	defer span.End()

	g, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g.Status != game.StatusScheduled {
		return fmt.Errorf("%w: game %s is %s, want %s", ErrWrongState, gameID, g.Status, game.StatusScheduled)
	}

	active, err := s.games.ListByStatus(ctx, game.StatusActive)
	if err != nil {
		return fmt.Errorf("list active games: %w", err)
	}
	if len(active) > 0 {
		s.logger.WarnContext(ctx, "start rejected, another game is active",
			"game_id", gameID,
			"active_game_id", active[0].ID,
		)
		return fmt.Errorf("%w: game %s", ErrAnotherGameActive, active[0].ID)
	}

	if err := s.games.UpdateStatus(ctx, gameID, game.StatusActive); err != nil {
		return fmt.Errorf("update game status: %w", err)
	}

	s.logger.InfoContext(ctx, "game started", "game_id", gameID)
	return nil
}

// End finishes an Active game. It first writes a game-end event for every
// owned control point so all holding intervals close, then marks the game
// Finished. The final scoring pass and snapshot save run afterwards and are
// not rolled back on failure: the closed history and the Finished status
// stand even when the scoreboard could not be saved.
func (s *LifecycleService) End(ctx context.Context, gameID string) error {
	ctx, span := startUsecaseSpan(ctx, "LifecycleService.End")
	defer span.End()

	g, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}
	if g.Status != game.StatusActive {
		return fmt.Errorf("%w: game %s is %s, want %s", ErrWrongState, gameID, g.Status, game.StatusActive)
	}

	points, err := s.points.ListByGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("list control points: %w", err)
	}

	endedAt := s.now()
	for _, point := range points {
		if point.OwnerTeamID == nil {
			continue
		}
		if err := s.closeOwnership(ctx, point, endedAt); err != nil {
			return err
		}
	}

	if err := s.games.UpdateStatus(ctx, gameID, game.StatusFinished); err != nil {
		return fmt.Errorf("update game status: %w", err)
	}
	g.Status = game.StatusFinished

	scores, err := s.scorer.ComputeAndStore(ctx, gameID)
	if err != nil {
		s.logger.ErrorContext(ctx, "final scoring failed, game stays finished without saved scores",
			"game_id", gameID,
			"error", err,
		)
		s.deactivatePoints(ctx, points)
		return fmt.Errorf("finalize scores for game %s: %w", gameID, err)
	}

	s.deactivatePoints(ctx, points)
	s.publishFinalScores(ctx, g, scores)

	s.logger.InfoContext(ctx, "game finished", "game_id", gameID, "teams", len(scores))
	return nil
}

// Reset is an alias for End kept as its own admin action name.
func (s *LifecycleService) Reset(ctx context.Context, gameID string) error {
	return s.End(ctx, gameID)
}

func (s *LifecycleService) getGame(ctx context.Context, gameID string) (game.Game, error) {
	if strings.TrimSpace(gameID) == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, found, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !found {
		return game.Game{}, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}
	return g, nil
}

func (s *LifecycleService) closeOwnership(ctx context.Context, point controlpoint.ControlPoint, endedAt time.Time) error {
	return s.locks.WithLock(point.ID, func() error {
		eventID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}

		event := gameevent.GameEvent{
			ID:                  eventID,
			GameID:              point.GameID,
			ControlPointID:      point.ID,
			Type:                gameevent.TypeGameEnd,
			OccurredAt:          endedAt,
			ActingTeamID:        nil,
			PreviousOwnerTeamID: point.OwnerTeamID,
		}
		if err := s.events.Append(ctx, event); err != nil {
			return fmt.Errorf("append game end event: %w", err)
		}
		return nil
	})
}

func (s *LifecycleService) deactivatePoints(ctx context.Context, points []controlpoint.ControlPoint) {
	for _, point := range points {
		err := s.locks.WithLock(point.ID, func() error {
			return s.points.UpdateOwner(ctx, point.ID, nil, controlpoint.StatusInactive)
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "deactivate control point failed",
				"control_point_id", point.ID,
				"error", err,
			)
		}
	}
}

func (s *LifecycleService) publishFinalScores(ctx context.Context, g game.Game, scores []scoreboard.TeamScore) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFinalScores(ctx, g, scores); err != nil {
		s.logger.WarnContext(ctx, "publish final scores failed",
			"game_id", g.ID,
			"error", err,
		)
	}
}
