package httpapi

import (
	"time"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
)

type gameDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ScheduledStartAt time.Time `json:"scheduledStartAt"`
	ScheduledEndAt   time.Time `json:"scheduledEndAt"`
	Status           string    `json:"status"`
}

func gameToDTO(g game.Game) gameDTO {
	return gameDTO{
		ID:               g.ID,
		Name:             g.Name,
		ScheduledStartAt: g.ScheduledStartAt,
		ScheduledEndAt:   g.ScheduledEndAt,
		Status:           g.Status,
	}
}

type controlPointDTO struct {
	ID          string  `json:"id"`
	GameID      string  `json:"gameId"`
	Name        string  `json:"name"`
	GridRow     int     `json:"gridRow"`
	GridCol     int     `json:"gridCol"`
	Status      string  `json:"status"`
	OwnerTeamID *string `json:"ownerTeamId"`
}

func controlPointToDTO(p controlpoint.ControlPoint) controlPointDTO {
	return controlPointDTO{
		ID:          p.ID,
		GameID:      p.GameID,
		Name:        p.Name,
		GridRow:     p.GridRow,
		GridCol:     p.GridCol,
		Status:      p.Status,
		OwnerTeamID: p.OwnerTeamID,
	}
}

type teamScoreDTO struct {
	TeamID            string `json:"teamId"`
	TeamName          string `json:"teamName"`
	CaptureBonusScore int    `json:"captureBonusScore"`
	HoldingScore      int    `json:"holdingScore"`
	TotalScore        int    `json:"totalScore"`
}

func teamScoreToDTO(score scoreboard.TeamScore) teamScoreDTO {
	return teamScoreDTO{
		TeamID:            score.TeamID,
		TeamName:          score.TeamName,
		CaptureBonusScore: score.CaptureBonusScore,
		HoldingScore:      score.HoldingScore,
		TotalScore:        score.TotalScore,
	}
}

type captureByCodeRequest struct {
	CaptureCode string `json:"captureCode" validate:"required"`
	TeamID      string `json:"teamId" validate:"required"`
}

type setOwnerRequest struct {
	// OwnerTeamID null makes the point neutral.
	OwnerTeamID *string `json:"ownerTeamId"`
}
