package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fieldgames/domination/internal/domain/participant"
	qb "github.com/fieldgames/domination/internal/platform/querybuilder"
)

type ParticipantRepository struct {
	db *sqlx.DB
}

func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

func (r *ParticipantRepository) ListByGame(ctx context.Context, gameID string) ([]participant.Participant, error) {
	query, args, err := qb.Select("*").
		From("participants").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list participants query: %w", err)
	}

	var rows []participantTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	out := make([]participant.Participant, 0, len(rows))
	for _, row := range rows {
		out = append(out, participant.Participant{
			GameID:   row.GameID,
			TeamID:   row.TeamID,
			TeamName: row.TeamName,
		})
	}
	return out, nil
}
