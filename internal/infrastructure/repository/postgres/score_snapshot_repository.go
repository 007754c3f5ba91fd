package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fieldgames/domination/internal/domain/scoreboard"
	qb "github.com/fieldgames/domination/internal/platform/querybuilder"
)

type ScoreSnapshotRepository struct {
	db *sqlx.DB
}

func NewScoreSnapshotRepository(db *sqlx.DB) *ScoreSnapshotRepository {
	return &ScoreSnapshotRepository{db: db}
}

func (r *ScoreSnapshotRepository) ListByGame(ctx context.Context, gameID string) ([]scoreboard.ScoreSnapshot, error) {
	query, args, err := qb.Select("*").
		From("score_snapshots").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("points DESC", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list score snapshots query: %w", err)
	}

	var rows []scoreSnapshotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list score snapshots: %w", err)
	}

	out := make([]scoreboard.ScoreSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoreboard.ScoreSnapshot{
			GameID:       row.GameID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Points:       row.Points,
			CalculatedAt: unixMilliToTime(row.CalculatedAt),
		})
	}
	return out, nil
}

// ReplaceByGame swaps the whole scoreboard for a game in one transaction so
// readers never observe a partially written scoreboard.
func (r *ScoreSnapshotRepository) ReplaceByGame(ctx context.Context, gameID string, rows []scoreboard.ScoreSnapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace score snapshots: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("score_snapshots").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete score snapshots query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete score snapshots: %w", err)
	}

	for _, row := range rows {
		insertModel := scoreSnapshotInsertModel{
			GameID:       row.GameID,
			TeamID:       row.TeamID,
			TeamName:     row.TeamName,
			Points:       row.Points,
			CalculatedAt: timeToUnixMilli(row.CalculatedAt),
		}
		query, args, err := qb.InsertModel("score_snapshots", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert score snapshot query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert score snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace score snapshots tx: %w", err)
	}
	return nil
}
