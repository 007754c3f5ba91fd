package scoreboard

import "time"

// TeamScore is a derived scoreboard row. It is recomputed from the event log
// on every scoring pass and has no lifecycle beyond "most recent result".
type TeamScore struct {
	TeamID            string
	TeamName          string
	CaptureBonusScore int
	HoldingScore      int
	TotalScore        int
}

// ScoreSnapshot is the persisted point total for one team in one game. The
// full set of rows for a game is replaced on every scoring pass.
type ScoreSnapshot struct {
	GameID       string
	TeamID       string
	TeamName     string
	Points       int
	CalculatedAt time.Time
}
