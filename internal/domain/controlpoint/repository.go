package controlpoint

import "context"

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]ControlPoint, error)
	GetByID(ctx context.Context, controlPointID string) (ControlPoint, bool, error)
	GetByCode(ctx context.Context, gameID, captureCode string) (ControlPoint, bool, error)
	UpdateOwner(ctx context.Context, controlPointID string, ownerTeamID *string, status string) error
}
