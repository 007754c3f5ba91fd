package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fieldgames/domination/internal/domain/game"
	qb "github.com/fieldgames/domination/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := qb.Select("*").
		From("games").
		Where(qb.IsNull("deleted_at")).
		OrderBy("scheduled_start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameToDomain(row))
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := qb.Select("*").
		From("games").
		Where(
			qb.Eq("id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	return gameToDomain(row), true, nil
}

func (r *GameRepository) ListByStatus(ctx context.Context, status string) ([]game.Game, error) {
	query, args, err := qb.Select("*").
		From("games").
		Where(
			qb.Eq("status", status),
			qb.IsNull("deleted_at"),
		).
		OrderBy("scheduled_start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by status query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by status: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameToDomain(row))
	}
	return out, nil
}

func (r *GameRepository) UpdateStatus(ctx context.Context, gameID, status string) error {
	query, args, err := qb.Update("games").
		Set("status", status).
		Set("updated_at", timeToUnixMilli(time.Now())).
		Where(
			qb.Eq("id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game status query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update game status: %w", err)
	}
	return nil
}

func gameToDomain(row gameTableModel) game.Game {
	return game.Game{
		ID:               row.ID,
		Name:             row.Name,
		ScheduledStartAt: unixMilliToTime(row.ScheduledStartAt),
		ScheduledEndAt:   unixMilliToTime(row.ScheduledEndAt),
		Status:           row.Status,
	}
}
