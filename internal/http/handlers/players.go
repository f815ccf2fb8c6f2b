package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/http/requestutil"
)

// AvailableResponse is the team editor's player picker: the players already chosen
// followed by the search results that can still be added.
type AvailableResponse struct {
	Selected   []players.Player `json:"selected"`
	Available  []players.Player `json:"available"`
	NextCursor *int             `json:"nextCursor"`
}

// PlayerTeamResponse reports which team, if any, holds a player.
type PlayerTeamResponse struct {
	PlayerID int         `json:"playerId"`
	Team     *teams.Team `json:"team"`
}

// SearchPlayers returns one cursor page of the player directory.
func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cursor, err := requestutil.OptionalInt(q, "cursor")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	perPage, err := requestutil.IntOrDefault(q, "per_page", h.searchPageSize)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	filters, err := filtersFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	page, err := h.directory.FetchPage(r.Context(), cursor, filters, perPage)
	if err != nil {
		writeDirectoryFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page, h.logger)
}

// LookupPlayers resolves player ids, as the editor does for a team's current members.
func (h *Handler) LookupPlayers(w http.ResponseWriter, r *http.Request) {
	ids, err := requestutil.IntList(r.URL.Query(), "id", "ids", "player_ids[]")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	page, err := h.directory.FetchByIDs(r.Context(), ids, h.lookupPageSize)
	if err != nil {
		writeDirectoryFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page, h.logger)
}

// AvailablePlayers composes the picker: selected players are looked up, search results
// are fetched, and players already chosen or owned by another team are filtered out.
func (h *Handler) AvailablePlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	selected, err := requestutil.IntList(q, "selected")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	cursor, err := requestutil.OptionalInt(q, "cursor")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	ctx := r.Context()

	chosen, err := h.directory.FetchByIDs(ctx, selected, h.lookupPageSize)
	if err != nil {
		writeDirectoryFailure(w, r, err, h.logger)
		return
	}
	search, err := h.directory.FetchPage(ctx, cursor, players.Filters{Search: strings.TrimSpace(q.Get("search"))}, h.searchPageSize)
	if err != nil {
		writeDirectoryFailure(w, r, err, h.logger)
		return
	}
	available, err := h.teams.AvailablePlayers(ctx, search.Data, selected, q.Get("team"))
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, AvailableResponse{
		Selected:   players.MergeUnique(chosen.Data),
		Available:  available,
		NextCursor: search.Meta.NextCursor,
	}, h.logger)
}

// PlayerTeam reports the first team that lists the player.
func (h *Handler) PlayerTeam(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	team, found, err := h.teams.PlayerTeam(r.Context(), id)
	if err != nil {
		writeTeamFailure(w, r, err, h.logger)
		return
	}
	resp := PlayerTeamResponse{PlayerID: id}
	if found {
		resp.Team = &team
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

func filtersFromQuery(r *http.Request) (players.Filters, error) {
	q := r.URL.Query()
	teamIDs, err := requestutil.IntList(q, "team_ids", "team_ids[]")
	if err != nil {
		return players.Filters{}, err
	}
	playerIDs, err := requestutil.IntList(q, "player_ids", "player_ids[]")
	if err != nil {
		return players.Filters{}, err
	}
	return players.Filters{
		Search:    strings.TrimSpace(q.Get("search")),
		FirstName: strings.TrimSpace(q.Get("first_name")),
		LastName:  strings.TrimSpace(q.Get("last_name")),
		TeamIDs:   teamIDs,
		PlayerIDs: playerIDs,
	}, nil
}
