package game

import "context"

type Repository interface {
	List(ctx context.Context) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByStatus(ctx context.Context, status string) ([]Game, error)
	UpdateStatus(ctx context.Context, gameID, status string) error
}
