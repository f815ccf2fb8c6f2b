package handlers

import (
	"net/http"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

// DashboardResponse is the landing view for a signed-in user.
type DashboardResponse struct {
	User  *session.Profile `json:"user"`
	Teams []teams.Team     `json:"teams"`
}

// LoginPage describes the login form. It is only reachable while signed out.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"view":   "login",
		"action": "/session/login",
		"fields": []string{"email", "password"},
	}, h.logger)
}

// Login runs the simulated login form.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds session.Credentials
	if err := decodeBody(w, r, &creds); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	rec, err := h.sessions.Authenticate(r.Context(), creds)
	if err != nil {
		writeSessionFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, rec, h.logger)
}

// Logout clears the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeSessionFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, h.sessions.Current(), h.logger)
}

// Session returns the current session record.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Current(), h.logger)
}

// Dashboard shows the signed-in user with their teams.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	items, err := h.teams.List(r.Context())
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, DashboardResponse{User: h.sessions.Current().User, Teams: items}, h.logger)
}
