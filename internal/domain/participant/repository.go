package participant

import "context"

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Participant, error)
}
