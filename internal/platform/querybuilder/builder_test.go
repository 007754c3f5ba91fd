package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "name", "status").
		From("games").
		Where(Eq("status", "ACTIVE"), IsNull("deleted_at")).
		OrderBy("created_at ASC").
		Limit(10).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t,
		"SELECT id, name, status FROM games WHERE status = $1 AND deleted_at IS NULL ORDER BY created_at ASC LIMIT 10",
		query,
	)
	require.Equal(t, []any{"ACTIVE"}, args)
}

func TestSelectMissingTable(t *testing.T) {
	t.Parallel()

	_, _, err := Select("id").ToSQL()
	require.Error(t, err)
}

func TestInCondition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("game_events").
		Where(In("type", "CAPTURE", "GAME_END")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM game_events WHERE type IN ($1, $2)", query)
	require.Equal(t, []any{"CAPTURE", "GAME_END"}, args)
}

func TestInConditionEmptyMatchesNothing(t *testing.T) {
	t.Parallel()

	query, _, err := Select("id").From("game_events").Where(In("type")).ToSQL()
	require.NoError(t, err)
	require.Equal(t, "SELECT id FROM game_events WHERE 1 = 0", query)
}

func TestInsertToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("score_snapshots").
		Columns("game_id", "team_id", "points").
		Values("g1", "t1", 130).
		Values("g1", "t2", 160).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t,
		"INSERT INTO score_snapshots (game_id, team_id, points) VALUES ($1, $2, $3), ($4, $5, $6)",
		query,
	)
	require.Equal(t, []any{"g1", "t1", 130, "g1", "t2", 160}, args)
}

func TestInsertRowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("score_snapshots").
		Columns("game_id", "team_id").
		Values("g1").
		ToSQL()
	require.Error(t, err)
}

func TestInsertSuffix(t *testing.T) {
	t.Parallel()

	query, _, err := InsertInto("games").
		Columns("id", "name").
		Values("g1", "Friday Night").
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSQL()
	require.NoError(t, err)
	require.Equal(t,
		"INSERT INTO games (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING",
		query,
	)
}

func TestUpdateToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := Update("control_points").
		Set("owner_team_id", "t1").
		Set("status", "CONTROLLED").
		SetExpr("updated_at", "?", int64(1700000000)).
		Where(Eq("id", "cp1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t,
		"UPDATE control_points SET owner_team_id = $1, status = $2, updated_at = $3 WHERE id = $4",
		query,
	)
	require.Equal(t, []any{"t1", "CONTROLLED", int64(1700000000), "cp1"}, args)
}

func TestUpdateWithoutWhereRefused(t *testing.T) {
	t.Parallel()

	_, _, err := Update("control_points").Set("status", "INACTIVE").ToSQL()
	require.Error(t, err)
}

func TestDeleteToSQL(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("score_snapshots").
		Where(Eq("game_id", "g1")).
		ToSQL()
	require.NoError(t, err)
	require.Equal(t, "DELETE FROM score_snapshots WHERE game_id = $1", query)
	require.Equal(t, []any{"g1"}, args)
}

func TestDeleteWithoutWhereRefused(t *testing.T) {
	t.Parallel()

	_, _, err := DeleteFrom("score_snapshots").ToSQL()
	require.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      string `db:"id"`
		GameID  string `db:"game_id"`
		Ignored string `db:"-"`
		private string
	}

	query, args, err := InsertModel("game_events", row{ID: "e1", GameID: "g1", private: "x"}, "")
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO game_events (id, game_id) VALUES ($1, $2)", query)
	require.Equal(t, []any{"e1", "g1"}, args)
}

func TestInsertModelRejectsNonStruct(t *testing.T) {
	t.Parallel()

	_, _, err := InsertModel("game_events", 42, "")
	require.Error(t, err)
}
