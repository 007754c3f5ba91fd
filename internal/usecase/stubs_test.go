package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/domain/participant"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
)

type stubGameRepo struct {
	mu              sync.Mutex
	games           map[string]game.Game
	listByStatusErr error
	updateStatusErr error
}

func newStubGameRepo(games ...game.Game) *stubGameRepo {
	repo := &stubGameRepo{games: make(map[string]game.Game)}
	for _, g := range games {
		repo.games[g.ID] = g
	}
	return repo
}

func (r *stubGameRepo) List(ctx context.Context) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	return out, nil
}

func (r *stubGameRepo) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[gameID]
	return g, ok, nil
}

func (r *stubGameRepo) ListByStatus(ctx context.Context, status string) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listByStatusErr != nil {
		return nil, r.listByStatusErr
	}
	var out []game.Game
	for _, g := range r.games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGameRepo) UpdateStatus(ctx context.Context, gameID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateStatusErr != nil {
		return r.updateStatusErr
	}
	g, ok := r.games[gameID]
	if !ok {
		return fmt.Errorf("game %s not found", gameID)
	}
	g.Status = status
	r.games[gameID] = g
	return nil
}

func (r *stubGameRepo) status(gameID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.games[gameID].Status
}

type stubPointRepo struct {
	mu     sync.Mutex
	points map[string]controlpoint.ControlPoint
	getErr error
}

func newStubPointRepo(points ...controlpoint.ControlPoint) *stubPointRepo {
	repo := &stubPointRepo{points: make(map[string]controlpoint.ControlPoint)}
	for _, p := range points {
		repo.points[p.ID] = p
	}
	return repo
}

func (r *stubPointRepo) ListByGame(ctx context.Context, gameID string) ([]controlpoint.ControlPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []controlpoint.ControlPoint
	for _, p := range r.points {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPointRepo) GetByID(ctx context.Context, controlPointID string) (controlpoint.ControlPoint, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return controlpoint.ControlPoint{}, false, r.getErr
	}
	p, ok := r.points[controlPointID]
	return p, ok, nil
}

func (r *stubPointRepo) GetByCode(ctx context.Context, gameID, captureCode string) (controlpoint.ControlPoint, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.points {
		if p.GameID == gameID && p.CaptureCode == captureCode {
			return p, true, nil
		}
	}
	return controlpoint.ControlPoint{}, false, nil
}

func (r *stubPointRepo) UpdateOwner(ctx context.Context, controlPointID string, ownerTeamID *string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.points[controlPointID]
	if !ok {
		return fmt.Errorf("control point %s not found", controlPointID)
	}
	p.OwnerTeamID = ownerTeamID
	p.Status = status
	r.points[controlPointID] = p
	return nil
}

func (r *stubPointRepo) get(controlPointID string) controlpoint.ControlPoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[controlPointID]
}

type stubEventRepo struct {
	mu        sync.Mutex
	events    []gameevent.GameEvent
	appendErr error
	listErr   error
}

func (r *stubEventRepo) Append(ctx context.Context, event gameevent.GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.events = append(r.events, event)
	return nil
}

func (r *stubEventRepo) ListByGame(ctx context.Context, gameID string) ([]gameevent.GameEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []gameevent.GameEvent
	for _, e := range r.events {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEventRepo) appended() []gameevent.GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gameevent.GameEvent, len(r.events))
	copy(out, r.events)
	return out
}

type stubParticipantRepo struct {
	roster  map[string][]participant.Participant
	listErr error
}

func newStubParticipantRepo(gameID string, teams ...participant.Participant) *stubParticipantRepo {
	return &stubParticipantRepo{roster: map[string][]participant.Participant{gameID: teams}}
}

func (r *stubParticipantRepo) ListByGame(ctx context.Context, gameID string) ([]participant.Participant, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.roster[gameID], nil
}

type stubSnapshotRepo struct {
	mu         sync.Mutex
	byGame     map[string][]scoreboard.ScoreSnapshot
	replaceErr map[string]error
	replaces   int
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{
		byGame:     make(map[string][]scoreboard.ScoreSnapshot),
		replaceErr: make(map[string]error),
	}
}

func (r *stubSnapshotRepo) ListByGame(ctx context.Context, gameID string) ([]scoreboard.ScoreSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byGame[gameID], nil
}

func (r *stubSnapshotRepo) ReplaceByGame(ctx context.Context, gameID string, rows []scoreboard.ScoreSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.replaceErr[gameID]; err != nil {
		return err
	}
	r.byGame[gameID] = rows
	r.replaces++
	return nil
}

func (r *stubSnapshotRepo) rows(gameID string) []scoreboard.ScoreSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byGame[gameID]
}

type stubIDGenerator struct {
	mu   sync.Mutex
	next int
	err  error
}

func (g *stubIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return "", g.err
	}
	g.next++
	return fmt.Sprintf("id-%d", g.next), nil
}

type stubPublisher struct {
	mu     sync.Mutex
	calls  int
	scores []scoreboard.TeamScore
	err    error
}

func (p *stubPublisher) PublishFinalScores(ctx context.Context, g game.Game, scores []scoreboard.TeamScore) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.scores = scores
	return p.err
}

func strPtr(s string) *string {
	return &s
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("err = %v, want %v", err, target)
	}
}
