package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
)

type ControlPointRepository struct {
	mu     sync.RWMutex
	points map[string]controlpoint.ControlPoint
}

func NewControlPointRepository(seed ...controlpoint.ControlPoint) *ControlPointRepository {
	repo := &ControlPointRepository{points: make(map[string]controlpoint.ControlPoint)}
	for _, p := range seed {
		repo.points[p.ID] = p
	}
	return repo
}

func (r *ControlPointRepository) ListByGame(ctx context.Context, gameID string) ([]controlpoint.ControlPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []controlpoint.ControlPoint
	for _, p := range r.points {
		if p.GameID == gameID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ControlPointRepository) GetByID(ctx context.Context, controlPointID string) (controlpoint.ControlPoint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.points[controlPointID]
	return p, ok, nil
}

func (r *ControlPointRepository) GetByCode(ctx context.Context, gameID, captureCode string) (controlpoint.ControlPoint, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.points {
		if p.GameID == gameID && p.CaptureCode == captureCode {
			return p, true, nil
		}
	}
	return controlpoint.ControlPoint{}, false, nil
}

func (r *ControlPointRepository) UpdateOwner(ctx context.Context, controlPointID string, ownerTeamID *string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.points[controlPointID]
	if !ok {
		return nil
	}
	p.OwnerTeamID = ownerTeamID
	p.Status = status
	r.points[controlPointID] = p
	return nil
}
