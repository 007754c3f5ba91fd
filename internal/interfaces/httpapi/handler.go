package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/fieldgames/domination/internal/domain/controlpoint"
	"github.com/fieldgames/domination/internal/domain/game"
	"github.com/fieldgames/domination/internal/usecase"
)

type Handler struct {
	captureService   *usecase.CaptureService
	lifecycleService *usecase.LifecycleService
	scoringService   *usecase.ScoringService
	refreshService   *usecase.LiveRefreshService
	games            game.Repository
	points           controlpoint.Repository
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	captureService *usecase.CaptureService,
	lifecycleService *usecase.LifecycleService,
	scoringService *usecase.ScoringService,
	refreshService *usecase.LiveRefreshService,
	games game.Repository,
	points controlpoint.Repository,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		captureService:   captureService,
		lifecycleService: lifecycleService,
		scoringService:   scoringService,
		refreshService:   refreshService,
		games:            games,
		points:           points,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	games, err := h.games.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list games failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, gameToDTO(g))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	g, found, err := h.games.GetByID(ctx, gameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: game %s", usecase.ErrNotFound, gameID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g))
}

func (h *Handler) ListControlPointsByGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListControlPointsByGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	if _, found, err := h.games.GetByID(ctx, gameID); err != nil {
		h.logger.ErrorContext(ctx, "get game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	} else if !found {
		writeError(ctx, w, fmt.Errorf("%w: game %s", usecase.ErrNotFound, gameID))
		return
	}

	points, err := h.points.ListByGame(ctx, gameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list control points failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]controlPointDTO, 0, len(points))
	for _, p := range points {
		items = append(items, controlPointToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	gameID := r.PathValue("gameID")
	scores, err := h.scoringService.GetLiveOrFinalScore(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scoreboard failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, teamScoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CaptureByCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CaptureByCode")
	defer span.End()

	var req captureByCodeRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.StructCtx(ctx, req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	point, err := h.captureService.CaptureByCode(ctx, req.CaptureCode, req.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "capture by code failed", "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, controlPointToDTO(point))
}

func (h *Handler) SetControlPointOwner(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetControlPointOwner")
	defer span.End()

	controlPointID := r.PathValue("controlPointID")

	var req setOwnerRequest
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	point, err := h.captureService.Capture(ctx, controlPointID, req.OwnerTeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "set control point owner failed", "control_point_id", controlPointID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, controlPointToDTO(point))
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	if err := h.lifecycleService.Start(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "start game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"gameId": gameID, "status": game.StatusActive})
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	if err := h.lifecycleService.End(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "end game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"gameId": gameID, "status": game.StatusFinished})
}

func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetGame")
	defer span.End()

	gameID := r.PathValue("gameID")
	if err := h.lifecycleService.Reset(ctx, gameID); err != nil {
		h.logger.WarnContext(ctx, "reset game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"gameId": gameID, "status": game.StatusFinished})
}

func (h *Handler) RunScoreRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreRefreshJob")
	defer span.End()

	summary, err := h.refreshService.RefreshActiveGames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "score refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"activeGames": summary.ActiveGames,
		"succeeded":   summary.Succeeded,
		"failed":      summary.Failed,
	})
}
