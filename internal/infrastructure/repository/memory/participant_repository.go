package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldgames/domination/internal/domain/participant"
)

type ParticipantRepository struct {
	mu     sync.RWMutex
	roster []participant.Participant
}

func NewParticipantRepository(seed ...participant.Participant) *ParticipantRepository {
	return &ParticipantRepository{roster: seed}
}

func (r *ParticipantRepository) ListByGame(ctx context.Context, gameID string) ([]participant.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []participant.Participant
	for _, p := range r.roster {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}
