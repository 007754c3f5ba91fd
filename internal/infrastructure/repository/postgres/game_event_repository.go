package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fieldgames/domination/internal/domain/gameevent"
	qb "github.com/fieldgames/domination/internal/platform/querybuilder"
)

// GameEventRepository is append-only. There is no update or delete path and
// the table carries no soft-delete column.
type GameEventRepository struct {
	db *sqlx.DB
}

func NewGameEventRepository(db *sqlx.DB) *GameEventRepository {
	return &GameEventRepository{db: db}
}

func (r *GameEventRepository) Append(ctx context.Context, event gameevent.GameEvent) error {
	insertModel := gameEventInsertModel{
		ID:                  event.ID,
		GameID:              event.GameID,
		ControlPointID:      event.ControlPointID,
		Type:                event.Type,
		OccurredAt:          timeToUnixMilli(event.OccurredAt),
		ActingTeamID:        event.ActingTeamID,
		PreviousOwnerTeamID: event.PreviousOwnerTeamID,
	}
	query, args, err := qb.InsertModel("game_events", insertModel, "")
	if err != nil {
		return fmt.Errorf("build append game event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append game event: %w", err)
	}
	return nil
}

func (r *GameEventRepository) ListByGame(ctx context.Context, gameID string) ([]gameevent.GameEvent, error) {
	query, args, err := listGameEventsQuery(gameID)
	if err != nil {
		return nil, fmt.Errorf("build list game events query: %w", err)
	}

	var rows []gameEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}

	out := make([]gameevent.GameEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameevent.GameEvent{
			ID:                  row.ID,
			GameID:              row.GameID,
			ControlPointID:      row.ControlPointID,
			Type:                row.Type,
			OccurredAt:          unixMilliToTime(row.OccurredAt),
			ActingTeamID:        row.ActingTeamID,
			PreviousOwnerTeamID: row.PreviousOwnerTeamID,
		})
	}
	return out, nil
}

// Events sharing an occurred_at millisecond come back in insertion order via
// the database-assigned seq column.
func listGameEventsQuery(gameID string) (string, []any, error) {
	return qb.Select("*").
		From("game_events").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("occurred_at", "seq").
		ToSQL()
}
