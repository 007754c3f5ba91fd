package gameevent

import "context"

// Repository is append-only: events are never updated or deleted once written.
type Repository interface {
	Append(ctx context.Context, event GameEvent) error
	ListByGame(ctx context.Context, gameID string) ([]GameEvent, error)
}
