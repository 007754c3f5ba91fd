package game

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusActive    = "ACTIVE"
	StatusFinished  = "FINISHED"
)

// Game is one scheduled round of domination play.
type Game struct {
	ID               string
	Name             string
	ScheduledStartAt time.Time
	ScheduledEndAt   time.Time
	Status           string
}

func (g Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("game name is required")
	}
	if !IsValidStatus(g.Status) {
		return fmt.Errorf("invalid game status %q", g.Status)
	}

	return nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusScheduled, StatusActive, StatusFinished:
		return true
	default:
		return false
	}
}
