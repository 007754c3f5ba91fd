// Package memory holds in-process repository implementations used for local
// development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldgames/domination/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[string]game.Game
}

func NewGameRepository(seed ...game.Game) *GameRepository {
	repo := &GameRepository{games: make(map[string]game.Game)}
	for _, g := range seed {
		repo.games[g.ID] = g
	}
	return repo
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameID]
	return g, ok, nil
}

func (r *GameRepository) ListByStatus(ctx context.Context, status string) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []game.Game
	for _, g := range r.games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, gameID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[gameID]
	if !ok {
		return nil
	}
	g.Status = status
	r.games[gameID] = g
	return nil
}
