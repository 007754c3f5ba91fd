package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/domain/gameevent"
	"github.com/fieldgames/domination/internal/domain/participant"
	"github.com/fieldgames/domination/internal/domain/scoreboard"
	"github.com/fieldgames/domination/internal/platform/cache"
	"github.com/fieldgames/domination/internal/platform/logging"
)

// DefaultCaptureBonusPoints is awarded to a participating team for every
// capture it performs.
const DefaultCaptureBonusPoints = 100

// ScoringService turns a game's event log into per-team point totals and
// keeps the persisted scoreboard rows in sync with them.
type ScoringService struct {
	games        game.Repository
	events       gameevent.Repository
	participants participant.Repository
	snapshots    scoreboard.Repository

	captureBonus int
	liveCache    *cache.Store
	logger       *logging.Logger
	now          func() time.Time
}

func NewScoringService(
	games game.Repository,
	events gameevent.Repository,
	participants participant.Repository,
	snapshots scoreboard.Repository,
	captureBonus int,
	liveCache *cache.Store,
	logger *logging.Logger,
) *ScoringService {
	if captureBonus <= 0 {
		captureBonus = DefaultCaptureBonusPoints
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		games:        games,
		events:       events,
		participants: participants,
		snapshots:    snapshots,
		captureBonus: captureBonus,
		liveCache:    liveCache,
		logger:       logger,
		now:          time.Now,
	}
}

// Calculate replays the event log against the roster. It is pure: the same
// events and roster always produce the same rows in the same order.
//
// Capture bonus goes to the acting team of every capture event whose actor is
// on the roster. Holding score walks consecutive events per control point and
// credits the whole-second gap to the earlier event's acting team, again only
// when that team is on the roster. Non-roster actors are dropped silently.
func (s *ScoringService) Calculate(events []gameevent.GameEvent, roster []participant.Participant) []scoreboard.TeamScore {
	scores := make([]scoreboard.TeamScore, 0, len(roster))
	index := make(map[string]int, len(roster))
	for _, p := range roster {
		if _, ok := index[p.TeamID]; ok {
			continue
		}
		index[p.TeamID] = len(scores)
		scores = append(scores, scoreboard.TeamScore{TeamID: p.TeamID, TeamName: p.TeamName})
	}

	ordered := make([]gameevent.GameEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OccurredAt.Before(ordered[j].OccurredAt)
	})

	byPoint := make(map[string][]gameevent.GameEvent)
	pointOrder := make([]string, 0)
	for _, event := range ordered {
		if event.Type == gameevent.TypeCapture && event.ActingTeamID != nil {
			if i, ok := index[*event.ActingTeamID]; ok {
				scores[i].CaptureBonusScore += s.captureBonus
			}
		}

		if _, ok := byPoint[event.ControlPointID]; !ok {
			pointOrder = append(pointOrder, event.ControlPointID)
		}
		byPoint[event.ControlPointID] = append(byPoint[event.ControlPointID], event)
	}

	for _, pointID := range pointOrder {
		history := byPoint[pointID]
		for i := 1; i < len(history); i++ {
			prev := history[i-1]
			if prev.ActingTeamID == nil {
				continue
			}
			teamIdx, ok := index[*prev.ActingTeamID]
			if !ok {
				continue
			}
			held := history[i].OccurredAt.Sub(prev.OccurredAt)
			if held <= 0 {
				continue
			}
			scores[teamIdx].HoldingScore += int(held / time.Second)
		}
	}

	for i := range scores {
		scores[i].TotalScore = scores[i].CaptureBonusScore + scores[i].HoldingScore
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	return scores
}

// ComputeAndStore runs a scoring pass for the game and replaces its persisted
// scoreboard rows with the result. Every roster team gets a row, including
// teams that scored nothing.
func (s *ScoringService) ComputeAndStore(ctx context.Context, gameID string) ([]scoreboard.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.ComputeAndStore")
	defer span.End()

	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	events, err := s.events.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}
	roster, err := s.participants.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	scores := s.Calculate(events, roster)

	calculatedAt := s.now()
	rows := make([]scoreboard.ScoreSnapshot, 0, len(scores))
	for _, score := range scores {
		rows = append(rows, scoreboard.ScoreSnapshot{
			GameID:       gameID,
			TeamID:       score.TeamID,
			TeamName:     score.TeamName,
			Points:       score.TotalScore,
			CalculatedAt: calculatedAt,
		})
	}

	if err := s.snapshots.ReplaceByGame(ctx, gameID, rows); err != nil {
		return nil, fmt.Errorf("replace score snapshots: %w", err)
	}

	if s.liveCache != nil {
		s.liveCache.Delete(liveScoreCacheKey(gameID))
	}

	return scores, nil
}

// GetLiveOrFinalScore returns the scoreboard for a game. Finished games serve
// their persisted totals verbatim with an empty breakdown; other games are
// recomputed from the event log.
func (s *ScoringService) GetLiveOrFinalScore(ctx context.Context, gameID string) ([]scoreboard.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "ScoringService.GetLiveOrFinalScore")
	defer span.End()

	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, found, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, gameID)
	}

	if g.Status == game.StatusFinished {
		return s.persistedScores(ctx, gameID)
	}

	if s.liveCache == nil {
		return s.liveScores(ctx, gameID)
	}

	cached, err := s.liveCache.GetOrLoad(liveScoreCacheKey(gameID), func() (any, error) {
		return s.liveScores(ctx, gameID)
	})
	if err != nil {
		return nil, err
	}
	scores, ok := cached.([]scoreboard.TeamScore)
	if !ok {
		return s.liveScores(ctx, gameID)
	}
	return scores, nil
}

func (s *ScoringService) liveScores(ctx context.Context, gameID string) ([]scoreboard.TeamScore, error) {
	events, err := s.events.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}
	roster, err := s.participants.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return s.Calculate(events, roster), nil
}

func (s *ScoringService) persistedScores(ctx context.Context, gameID string) ([]scoreboard.TeamScore, error) {
	rows, err := s.snapshots.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list score snapshots: %w", err)
	}

	scores := make([]scoreboard.TeamScore, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, scoreboard.TeamScore{
			TeamID:     row.TeamID,
			TeamName:   row.TeamName,
			TotalScore: row.Points,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	return scores, nil
}

func liveScoreCacheKey(gameID string) string {
	return "scoreboard:" + gameID
}
