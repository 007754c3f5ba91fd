package postgres

type gameTableModel struct {
	ID               string `db:"id"`
	Name             string `db:"name"`
	ScheduledStartAt int64  `db:"scheduled_start_at"`
	ScheduledEndAt   int64  `db:"scheduled_end_at"`
	Status           string `db:"status"`
	CreatedAt        int64  `db:"created_at"`
	UpdatedAt        int64  `db:"updated_at"`
	DeletedAt        *int64 `db:"deleted_at"`
}

type controlPointTableModel struct {
	ID          string  `db:"id"`
	GameID      string  `db:"game_id"`
	Name        string  `db:"name"`
	GridRow     int     `db:"grid_row"`
	GridCol     int     `db:"grid_col"`
	CaptureCode string  `db:"capture_code"`
	Status      string  `db:"status"`
	OwnerTeamID *string `db:"owner_team_id"`
	CreatedAt   int64   `db:"created_at"`
	UpdatedAt   int64   `db:"updated_at"`
	DeletedAt   *int64  `db:"deleted_at"`
}

type gameEventTableModel struct {
	ID                  string  `db:"id"`
	GameID              string  `db:"game_id"`
	ControlPointID      string  `db:"control_point_id"`
	Type                string  `db:"type"`
	OccurredAt          int64   `db:"occurred_at"`
	ActingTeamID        *string `db:"acting_team_id"`
	PreviousOwnerTeamID *string `db:"previous_owner_team_id"`
	// Seq is database-assigned and breaks occurred_at ties in insertion order.
	Seq int64 `db:"seq"`
}

type gameEventInsertModel struct {
	ID                  string  `db:"id"`
	GameID              string  `db:"game_id"`
	ControlPointID      string  `db:"control_point_id"`
	Type                string  `db:"type"`
	OccurredAt          int64   `db:"occurred_at"`
	ActingTeamID        *string `db:"acting_team_id"`
	PreviousOwnerTeamID *string `db:"previous_owner_team_id"`
}

type participantTableModel struct {
	GameID    string `db:"game_id"`
	TeamID    string `db:"team_id"`
	TeamName  string `db:"team_name"`
	CreatedAt int64  `db:"created_at"`
	DeletedAt *int64 `db:"deleted_at"`
}

type scoreSnapshotTableModel struct {
	GameID       string `db:"game_id"`
	TeamID       string `db:"team_id"`
	TeamName     string `db:"team_name"`
	Points       int    `db:"points"`
	CalculatedAt int64  `db:"calculated_at"`
}

type scoreSnapshotInsertModel struct {
	GameID       string `db:"game_id"`
	TeamID       string `db:"team_id"`
	TeamName     string `db:"team_name"`
	Points       int    `db:"points"`
	CalculatedAt int64  `db:"calculated_at"`
}
