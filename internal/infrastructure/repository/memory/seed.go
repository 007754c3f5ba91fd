package memory

import (
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/participant"
)

// Fixtures bundles the in-memory repositories for one process.
type Fixtures struct {
	Games          *GameRepository
	ControlPoints  *ControlPointRepository
	GameEvents     *GameEventRepository
	Participants   *ParticipantRepository
	ScoreSnapshots *ScoreSnapshotRepository
}

// NewSeeded returns repositories preloaded with a small demo game so the
// service is usable without a database.
func NewSeeded(now time.Time) *Fixtures {
	start := now.Add(time.Hour).Truncate(time.Minute)

	games := []game.Game{
		{
			ID:               "demo-game",
			Name:             "Demo Skirmish",
			ScheduledStartAt: start,
			ScheduledEndAt:   start.Add(2 * time.Hour),
			Status:           game.StatusScheduled,
		},
	}

	points := []controlpoint.ControlPoint{
		{ID: "cp-north", GameID: "demo-game", Name: "North Tower", GridRow: 0, GridCol: 2, CaptureCode: "1111", Status: controlpoint.StatusInactive},
		{ID: "cp-bridge", GameID: "demo-game", Name: "Bridge", GridRow: 2, GridCol: 2, CaptureCode: "2222", Status: controlpoint.StatusInactive},
		{ID: "cp-south", GameID: "demo-game", Name: "South Gate", GridRow: 4, GridCol: 1, CaptureCode: "3333", Status: controlpoint.StatusInactive},
	}

	roster := []participant.Participant{
		{GameID: "demo-game", TeamID: "team-red", TeamName: "Red"},
		{GameID: "demo-game", TeamID: "team-blue", TeamName: "Blue"},
	}

	return &Fixtures{
		Games:          NewGameRepository(games...),
		ControlPoints:  NewControlPointRepository(points...),
		GameEvents:     NewGameEventRepository(),
		Participants:   NewParticipantRepository(roster...),
		ScoreSnapshots: NewScoreSnapshotRepository(),
	}
}
