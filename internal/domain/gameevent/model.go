package gameevent

import (
	"fmt"
	"time"
)

const (
	TypeCapture = "CAPTURE"
	TypeGameEnd = "GAME_END"
)

// GameEvent is one append-only entry in a game's ownership history.
// ActingTeamID is nil when the point was made neutral; GameEnd events always
// carry a nil acting team so they can never open a holding interval.
type GameEvent struct {
	ID                  string
	GameID              string
	ControlPointID      string
	Type                string
	OccurredAt          time.Time
	ActingTeamID        *string
	PreviousOwnerTeamID *string
}

func (e GameEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("game event id is required")
	}
	if e.GameID == "" {
		return fmt.Errorf("game event game id is required")
	}
	if e.ControlPointID == "" {
		return fmt.Errorf("game event control point id is required")
	}
	switch e.Type {
	case TypeCapture:
	case TypeGameEnd:
		if e.ActingTeamID != nil {
			return fmt.Errorf("game end event must not have an acting team")
		}
	default:
		return fmt.Errorf("invalid game event type %q", e.Type)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("game event timestamp is required")
	}

	return nil
}
