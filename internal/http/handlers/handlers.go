package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	appplayers "github.com/preston-bernstein/nba-roster-service/internal/app/players"
	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	appteams "github.com/preston-bernstein/nba-roster-service/internal/app/teams"
)

const (
	defaultSearchPageSize = 20
	defaultLookupPageSize = 100
	maxBodyBytes          = 1 << 20
)

// Options wires the stores a Handler serves.
type Options struct {
	Teams          *appteams.Store
	Directory      *appplayers.Directory
	Sessions       *appsession.Store
	Logger         *slog.Logger
	SearchPageSize int
	LookupPageSize int
}

// Handler exposes the roster stores over HTTP.
type Handler struct {
	teams          *appteams.Store
	directory      *appplayers.Directory
	sessions       *appsession.Store
	logger         *slog.Logger
	searchPageSize int
	lookupPageSize int
}

// NewHandler constructs a Handler with defaults.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		teams:          opts.Teams,
		directory:      opts.Directory,
		sessions:       opts.Sessions,
		logger:         opts.Logger,
		searchPageSize: opts.SearchPageSize,
		lookupPageSize: opts.LookupPageSize,
	}
	if h.searchPageSize <= 0 {
		h.searchPageSize = defaultSearchPageSize
	}
	if h.lookupPageSize <= 0 {
		h.lookupPageSize = defaultLookupPageSize
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness once the session has been rehydrated.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil && h.sessions.Guard().State() == appsession.StateLoading {
		writeError(w, r, http.StatusServiceUnavailable, "session is loading", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
