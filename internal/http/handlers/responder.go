package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	appteams "github.com/preston-bernstein/nba-roster-service/internal/app/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get("X-Request-ID")
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

// writeTeamFailure maps team store errors. Business-rule failures are sent as a Result.
func writeTeamFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, teams.ErrInvalidForm):
		writeJSON(w, http.StatusBadRequest, teams.Failed(err), logger)
	case teams.IsConflict(err):
		writeJSON(w, http.StatusConflict, teams.Failed(err), logger)
	case errors.Is(err, teams.ErrTeamNotFound):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	default:
		writeUnexpected(w, r, err, logger)
	}
}

// writeDirectoryFailure maps upstream player errors.
func writeDirectoryFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if rl, ok := providers.AsRateLimitError(err); ok {
		w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfterSeconds()))
		writeError(w, r, http.StatusTooManyRequests, rl.Error(), logger)
		return
	}
	if isCanceled(err) || errors.Is(err, appteams.ErrClosed) || errors.Is(err, appteams.ErrLoad) || errors.Is(err, appteams.ErrPersist) {
		writeUnexpected(w, r, err, logger)
		return
	}
	logging.Warn(loggerFromContext(r, logger), "player directory request failed", slog.String(logging.FieldError, err.Error()))
	writeError(w, r, http.StatusBadGateway, err.Error(), logger)
}

// writeSessionFailure maps login and logout errors.
func writeSessionFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, session.ErrMissingFields):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, appsession.ErrInvalidCredentials):
		writeError(w, r, http.StatusUnauthorized, err.Error(), logger)
	default:
		writeUnexpected(w, r, err, logger)
	}
}

func writeUnexpected(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case isCanceled(err), errors.Is(err, appteams.ErrClosed):
		writeError(w, r, http.StatusServiceUnavailable, "service unavailable", logger)
	default:
		logging.Error(loggerFromContext(r, logger), "request failed", err)
		writeError(w, r, http.StatusInternalServerError, err.Error(), logger)
	}
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
