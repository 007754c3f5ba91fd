package memory

import (
	"context"
	"sync"

	"github.com/fieldgames/domination/internal/domain/gameevent"
)

type GameEventRepository struct {
	mu     sync.RWMutex
	events []gameevent.GameEvent
}

func NewGameEventRepository() *GameEventRepository {
	return &GameEventRepository{}
}

func (r *GameEventRepository) Append(ctx context.Context, event gameevent.GameEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return nil
}

func (r *GameEventRepository) ListByGame(ctx context.Context, gameID string) ([]gameevent.GameEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []gameevent.GameEvent
	for _, e := range r.events {
		if e.GameID == gameID {
			out = append(out, e)
		}
	}
	return out, nil
}
