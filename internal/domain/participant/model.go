package participant

import "fmt"

// Participant marks a team as counting toward a game's scoreboard.
type Participant struct {
	GameID   string
	TeamID   string
	TeamName string
}

func (p Participant) Validate() error {
	if p.GameID == "" {
		return fmt.Errorf("participant game id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("participant team id is required")
	}

	return nil
}
