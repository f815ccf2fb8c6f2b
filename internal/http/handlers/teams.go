package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
)

// ListTeams returns every team in stored order.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	items, err := h.teams.List(r.Context())
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items, h.logger)
}

// GetTeam returns one team.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.teams.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, team, h.logger)
}

// CreateTeam validates the form and stores a new team.
func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var form teams.FormData
	if err := decodeBody(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	team, err := h.teams.Create(r.Context(), form)
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, teams.Succeeded(team), h.logger)
}

// UpdateTeam replaces the editable fields of a team.
func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var form teams.FormData
	if err := decodeBody(w, r, &form); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	team, err := h.teams.Update(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, teams.Succeeded(team), h.logger)
}

// DeleteTeam removes a team. Deleting an unknown id succeeds.
func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.teams.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, teams.Result{Success: true}, h.logger)
}
