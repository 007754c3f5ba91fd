package httpapi

import (
	"log/slog"
	"net/http"
)

func NewRouter(
	handler *Handler,
	logger *slog.Logger,
	corsAllowedOrigins []string,
	adminToken string,
) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicRoutes(mux, handler)
	registerAdminRoutes(mux, handler, adminToken)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("GET /v1/games/{gameID}/control-points", handler.ListControlPointsByGame)
	mux.HandleFunc("GET /v1/games/{gameID}/scoreboard", handler.GetScoreboard)
	mux.HandleFunc("POST /v1/captures", handler.CaptureByCode)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/games/{gameID}/start", RequireAdminToken(adminToken, http.HandlerFunc(handler.StartGame)))
	mux.Handle("POST /v1/admin/games/{gameID}/end", RequireAdminToken(adminToken, http.HandlerFunc(handler.EndGame)))
	mux.Handle("POST /v1/admin/games/{gameID}/reset", RequireAdminToken(adminToken, http.HandlerFunc(handler.ResetGame)))
	mux.Handle("PUT /v1/admin/control-points/{controlPointID}/owner", RequireAdminToken(adminToken, http.HandlerFunc(handler.SetControlPointOwner)))
	mux.Handle("POST /v1/admin/jobs/refresh-scores", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunScoreRefreshJob)))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
