package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/platform/id"
	"github.com/fieldgames/domination/internal/platform/keylock"
	"github.com/fieldgames/domination/internal/platform/logging"
)

// CaptureService performs ownership transitions on control points. Every
// transition appends exactly one capture event and updates the point's owner
// under a per-point lock, so the event log and the live state never diverge.
type CaptureService struct {
	games  game.Repository
	points controlpoint.Repository
	events gameevent.Repository

	ids    id.Generator
	locks  *keylock.KeyedMutex
	logger *logging.Logger
	now    func() time.Time
}

func NewCaptureService(
	games game.Repository,
	points controlpoint.Repository,
	events gameevent.Repository,
	ids id.Generator,
	locks *keylock.KeyedMutex,
	logger *logging.Logger,
) *CaptureService {
	if locks == nil {
		locks = keylock.New()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CaptureService{
		games:  games,
		points: points,
		events: events,
		ids:    ids,
		locks:  locks,
		logger: logger,
		now:    time.Now,
	}
}

// Capture assigns ownership of a control point to ownerTeamID, or makes the
// point neutral when ownerTeamID is nil. Capturing a point the team already
// owns is a no-op: no event is appended and nothing changes.
func (s *CaptureService) Capture(ctx context.Context, controlPointID string, ownerTeamID *string) (controlpoint.ControlPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "CaptureService.Capture")
	defer span.End()

	if strings.TrimSpace(controlPointID) == "" {
		return controlpoint.ControlPoint{}, fmt.Errorf("%w: control point id is required", ErrInvalidInput)
	}
	ownerTeamID = normalizeTeamID(ownerTeamID)

	var result controlpoint.ControlPoint
	err := s.locks.WithLock(controlPointID, func() error {
		point, found, err := s.points.GetByID(ctx, controlPointID)
		if err != nil {
			return fmt.Errorf("get control point: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: control point %s", ErrNotFound, controlPointID)
		}

		if sameTeam(point.OwnerTeamID, ownerTeamID) {
			result = point
			return nil
		}

		eventID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}

		event := gameevent.GameEvent{
			ID:                  eventID,
			GameID:              point.GameID,
			ControlPointID:      point.ID,
			Type:                gameevent.TypeCapture,
			OccurredAt:          s.now(),
			ActingTeamID:        ownerTeamID,
			PreviousOwnerTeamID: point.OwnerTeamID,
		}
		if err := s.events.Append(ctx, event); err != nil {
			return fmt.Errorf("append capture event: %w", err)
		}

		status := controlpoint.StatusForOwner(ownerTeamID)
		if err := s.points.UpdateOwner(ctx, point.ID, ownerTeamID, status); err != nil {
			return fmt.Errorf("update control point owner: %w", err)
		}

		point.OwnerTeamID = ownerTeamID
		point.Status = status
		result = point

		s.logger.InfoContext(ctx, "control point captured",
			"game_id", point.GameID,
			"control_point_id", point.ID,
			"owner_team_id", teamIDForLog(ownerTeamID),
		)
		return nil
	})
	if err != nil {
		return controlpoint.ControlPoint{}, err
	}

	return result, nil
}

// CaptureByCode lets a team capture a point in the active game by presenting
// the point's capture code. The code only resolves within the active game.
func (s *CaptureService) CaptureByCode(ctx context.Context, captureCode, teamID string) (controlpoint.ControlPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "CaptureService.CaptureByCode")
	defer span.End()

	captureCode = strings.TrimSpace(captureCode)
	teamID = strings.TrimSpace(teamID)
	if captureCode == "" || teamID == "" {
		return controlpoint.ControlPoint{}, fmt.Errorf("%w: capture code and team id are required", ErrInvalidInput)
	}

	active, err := s.games.ListByStatus(ctx, game.StatusActive)
	if err != nil {
		return controlpoint.ControlPoint{}, fmt.Errorf("list active games: %w", err)
	}
	if len(active) == 0 {
		return controlpoint.ControlPoint{}, fmt.Errorf("%w: no game is active", ErrWrongState)
	}

	point, found, err := s.points.GetByCode(ctx, active[0].ID, captureCode)
	if err != nil {
		return controlpoint.ControlPoint{}, fmt.Errorf("get control point by code: %w", err)
	}
	if !found {
		return controlpoint.ControlPoint{}, fmt.Errorf("%w: no control point matches the code", ErrNotFound)
	}

	return s.Capture(ctx, point.ID, &teamID)
}

func normalizeTeamID(teamID *string) *string {
	if teamID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*teamID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func sameTeam(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func teamIDForLog(teamID *string) string {
	if teamID == nil {
		return "none"
	}
	return *teamID
}
