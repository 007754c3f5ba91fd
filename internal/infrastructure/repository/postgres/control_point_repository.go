package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	qb "github.com/fieldgames/domination/internal/platform/querybuilder"
)

type ControlPointRepository struct {
	db *sqlx.DB
}

func NewControlPointRepository(db *sqlx.DB) *ControlPointRepository {
	return &ControlPointRepository{db: db}
}

func (r *ControlPointRepository) ListByGame(ctx context.Context, gameID string) ([]controlpoint.ControlPoint, error) {
	query, args, err := qb.Select("*").
		From("control_points").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("grid_row", "grid_col", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list control points query: %w", err)
	}

	var rows []controlPointTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list control points: %w", err)
	}

	out := make([]controlpoint.ControlPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, controlPointToDomain(row))
	}
	return out, nil
}

func (r *ControlPointRepository) GetByID(ctx context.Context, controlPointID string) (controlpoint.ControlPoint, bool, error) {
	query, args, err := qb.Select("*").
		From("control_points").
		Where(
			qb.Eq("id", controlPointID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return controlpoint.ControlPoint{}, false, fmt.Errorf("build get control point query: %w", err)
	}

	var row controlPointTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return controlpoint.ControlPoint{}, false, nil
		}
		return controlpoint.ControlPoint{}, false, fmt.Errorf("get control point: %w", err)
	}

	return controlPointToDomain(row), true, nil
}

func (r *ControlPointRepository) GetByCode(ctx context.Context, gameID, captureCode string) (controlpoint.ControlPoint, bool, error) {
	query, args, err := qb.Select("*").
		From("control_points").
		Where(
			qb.Eq("game_id", gameID),
			qb.Eq("capture_code", captureCode),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return controlpoint.ControlPoint{}, false, fmt.Errorf("build get control point by code query: %w", err)
	}

	var row controlPointTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return controlpoint.ControlPoint{}, false, nil
		}
		return controlpoint.ControlPoint{}, false, fmt.Errorf("get control point by code: %w", err)
	}

	return controlPointToDomain(row), true, nil
}

func (r *ControlPointRepository) UpdateOwner(ctx context.Context, controlPointID string, ownerTeamID *string, status string) error {
	query, args, err := qb.Update("control_points").
		Set("owner_team_id", ownerTeamID).
		Set("status", status).
		Set("updated_at", timeToUnixMilli(time.Now())).
		Where(
			qb.Eq("id", controlPointID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update control point owner query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update control point owner: %w", err)
	}
	return nil
}

func controlPointToDomain(row controlPointTableModel) controlpoint.ControlPoint {
	return controlpoint.ControlPoint{
		ID:          row.ID,
		GameID:      row.GameID,
		Name:        row.Name,
		GridRow:     row.GridRow,
		GridCol:     row.GridCol,
		CaptureCode: row.CaptureCode,
		Status:      row.Status,
		OwnerTeamID: row.OwnerTeamID,
	}
}
