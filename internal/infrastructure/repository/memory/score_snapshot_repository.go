package memory

import (
	"context"
	"sync"

	"github.com/fieldgames/domination/internal/domain/scoreboard"
)

type ScoreSnapshotRepository struct {
	mu     sync.RWMutex
	byGame map[string][]scoreboard.ScoreSnapshot
}

func NewScoreSnapshotRepository() *ScoreSnapshotRepository {
	return &ScoreSnapshotRepository{byGame: make(map[string][]scoreboard.ScoreSnapshot)}
}

func (r *ScoreSnapshotRepository) ListByGame(ctx context.Context, gameID string) ([]scoreboard.ScoreSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byGame[gameID]
	out := make([]scoreboard.ScoreSnapshot, len(rows))
	copy(out, rows)
	return out, nil
}

func (r *ScoreSnapshotRepository) ReplaceByGame(ctx context.Context, gameID string, rows []scoreboard.ScoreSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replacement := make([]scoreboard.ScoreSnapshot, len(rows))
	copy(replacement, rows)
	r.byGame[gameID] = replacement
	return nil
}
