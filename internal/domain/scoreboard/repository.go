package scoreboard

import "context"

type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]ScoreSnapshot, error)
	// ReplaceByGame removes every snapshot row for the game and writes the
	// given rows in their place.
	ReplaceByGame(ctx context.Context, gameID string, rows []ScoreSnapshot) error
}
