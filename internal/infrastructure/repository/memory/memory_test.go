package memory

import (
	"context"
	"testing"
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
)

func TestGameRepositoryUpdateStatus(t *testing.T) {
	t.Parallel()

	repo := NewGameRepository(game.Game{ID: "g1", Name: "Friday", Status: game.StatusScheduled})
	ctx := context.Background()

	if err := repo.UpdateStatus(ctx, "g1", game.StatusActive); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	g, found, err := repo.GetByID(ctx, "g1")
	if err != nil || !found {
		t.Fatalf("GetByID() = %v, %v, %v", g, found, err)
	}
	if g.Status != game.StatusActive {
		t.Fatalf("status = %s, want %s", g.Status, game.StatusActive)
	}

	active, err := repo.ListByStatus(ctx, game.StatusActive)
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != "g1" {
		t.Fatalf("ListByStatus() = %+v, want g1", active)
	}
}

func TestControlPointRepositoryGetByCode(t *testing.T) {
	t.Parallel()

	repo := NewControlPointRepository(
		controlpoint.ControlPoint{ID: "cp1", GameID: "g1", CaptureCode: "1111", Status: controlpoint.StatusInactive},
		controlpoint.ControlPoint{ID: "cp2", GameID: "g2", CaptureCode: "1111", Status: controlpoint.StatusInactive},
	)
	ctx := context.Background()

	p, found, err := repo.GetByCode(ctx, "g1", "1111")
	if err != nil || !found {
		t.Fatalf("GetByCode() = %v, %v, %v", p, found, err)
	}
	if p.ID != "cp1" {
		t.Fatalf("GetByCode() resolved %s, want cp1 (codes are scoped per game)", p.ID)
	}

	if _, found, _ := repo.GetByCode(ctx, "g1", "9999"); found {
		t.Fatal("GetByCode() found a point for an unknown code")
	}
}

func TestControlPointRepositoryUpdateOwner(t *testing.T) {
	t.Parallel()

	repo := NewControlPointRepository(
		controlpoint.ControlPoint{ID: "cp1", GameID: "g1", Status: controlpoint.StatusInactive},
	)
	ctx := context.Background()

	team := "team-red"
	if err := repo.UpdateOwner(ctx, "cp1", &team, controlpoint.StatusControlled); err != nil {
		t.Fatalf("UpdateOwner() error = %v", err)
	}

	p, _, _ := repo.GetByID(ctx, "cp1")
	if p.Status != controlpoint.StatusControlled || p.OwnerTeamID == nil || *p.OwnerTeamID != team {
		t.Fatalf("point = %+v, want controlled by %s", p, team)
	}
}

func TestGameEventRepositoryAppendKeepsOrder(t *testing.T) {
	t.Parallel()

	repo := NewGameEventRepository()
	ctx := context.Background()
	t0 := time.Unix(1_700_000_000, 0)

	for i, id := range []string{"e1", "e2", "e3"} {
		event := gameevent.GameEvent{
			ID:             id,
			GameID:         "g1",
			ControlPointID: "cp1",
			Type:           gameevent.TypeCapture,
			OccurredAt:     t0.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Append(ctx, event); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	events, err := repo.ListByGame(ctx, "g1")
	if err != nil {
		t.Fatalf("ListByGame() error = %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("ListByGame() returned %d events, want 3", len(events))
	}
	for i, id := range []string{"e1", "e2", "e3"} {
		if events[i].ID != id {
			t.Fatalf("events[%d].ID = %s, want %s", i, events[i].ID, id)
		}
	}
}

func TestScoreSnapshotRepositoryReplace(t *testing.T) {
	t.Parallel()

	repo := NewScoreSnapshotRepository()
	ctx := context.Background()

	first := []scoreboard.ScoreSnapshot{{GameID: "g1", TeamID: "A", Points: 10}}
	if err := repo.ReplaceByGame(ctx, "g1", first); err != nil {
		t.Fatalf("ReplaceByGame() error = %v", err)
	}

	second := []scoreboard.ScoreSnapshot{
		{GameID: "g1", TeamID: "A", Points: 130},
		{GameID: "g1", TeamID: "B", Points: 160},
	}
	if err := repo.ReplaceByGame(ctx, "g1", second); err != nil {
		t.Fatalf("ReplaceByGame() error = %v", err)
	}

	rows, err := repo.ListByGame(ctx, "g1")
	if err != nil {
		t.Fatalf("ListByGame() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ListByGame() returned %d rows, want full replacement with 2", len(rows))
	}
}

func TestNewSeededIsSelfConsistent(t *testing.T) {
	t.Parallel()

	fixtures := NewSeeded(time.Unix(1_700_000_000, 0))
	ctx := context.Background()

	games, err := fixtures.Games.List(ctx)
	if err != nil || len(games) != 1 {
		t.Fatalf("List() = %v, %v, want one seeded game", games, err)
	}
	if err := games[0].Validate(); err != nil {
		t.Fatalf("seeded game invalid: %v", err)
	}

	points, err := fixtures.ControlPoints.ListByGame(ctx, games[0].ID)
	if err != nil || len(points) == 0 {
		t.Fatalf("ListByGame() = %v, %v, want seeded control points", points, err)
	}
	for _, p := range points {
		if err := p.Validate(); err != nil {
			t.Fatalf("seeded control point %s invalid: %v", p.ID, err)
		}
	}

	roster, err := fixtures.Participants.ListByGame(ctx, games[0].ID)
	if err != nil || len(roster) == 0 {
		t.Fatalf("ListByGame() = %v, %v, want seeded roster", roster, err)
	}
}
