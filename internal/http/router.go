package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nba-roster-service/internal/app/session"
	"github.com/preston-bernstein/nba-roster-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-roster-service/internal/http/middleware"
)

// NewRouter registers every route. Login routes are public-only, everything under
// the dashboard is protected, and health probes bypass the guard.
func NewRouter(h *handlers.Handler, guard *session.Guard, logger *slog.Logger) nethttp.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = nethttp.HandlerFunc(func(w nethttp.ResponseWriter, req *nethttp.Request) {
		writeStatus(w, nethttp.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(func(w nethttp.ResponseWriter, req *nethttp.Request) {
		writeStatus(w, nethttp.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)

	public := func(fn nethttp.HandlerFunc) nethttp.Handler {
		return middleware.RequireView(guard, session.ViewPublic, fn)
	}
	protected := func(fn nethttp.HandlerFunc) nethttp.Handler {
		return middleware.RequireView(guard, session.ViewProtected, fn)
	}

	r.Handle(session.LoginPath, public(h.LoginPage)).Methods(nethttp.MethodGet)
	r.Handle("/session/login", public(h.Login)).Methods(nethttp.MethodPost)

	r.Handle(session.DashboardPath, protected(h.Dashboard)).Methods(nethttp.MethodGet)
	r.Handle("/session", protected(h.Session)).Methods(nethttp.MethodGet)
	r.Handle("/session/logout", protected(h.Logout)).Methods(nethttp.MethodPost)

	r.Handle("/players", protected(h.SearchPlayers)).Methods(nethttp.MethodGet)
	r.Handle("/players/lookup", protected(h.LookupPlayers)).Methods(nethttp.MethodGet)
	r.Handle("/players/available", protected(h.AvailablePlayers)).Methods(nethttp.MethodGet)
	r.Handle("/players/{id:[0-9]+}/team", protected(h.PlayerTeam)).Methods(nethttp.MethodGet)

	r.Handle("/teams", protected(h.ListTeams)).Methods(nethttp.MethodGet)
	r.Handle("/teams", protected(h.CreateTeam)).Methods(nethttp.MethodPost)
	r.Handle("/teams/{id}", protected(h.GetTeam)).Methods(nethttp.MethodGet)
	r.Handle("/teams/{id}", protected(h.UpdateTeam)).Methods(nethttp.MethodPut)
	r.Handle("/teams/{id}", protected(h.DeleteTeam)).Methods(nethttp.MethodDelete)

	return middleware.RecoveryMiddleware(logger, r)
}

func writeStatus(w nethttp.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}` + "\n"))
}
