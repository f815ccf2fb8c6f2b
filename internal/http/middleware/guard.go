package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/preston-bernstein/nba-roster-service/internal/app/session"
)

// RequireView gates next behind the session guard. Redirects use 303 so a POST is
// followed by a GET. While the session is still loading the request is refused with 503.
func RequireView(guard *session.Guard, view session.View, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := guard.Decide(view)
		switch decision.Action {
		case session.ActionWait:
			w.Header().Set("Retry-After", "1")
			writeError(w, r, http.StatusServiceUnavailable, "session is loading")
		case session.ActionRedirect:
			http.Redirect(w, r, decision.Location, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	body := map[string]string{"error": message}
	if reqID := RequestIDFromContext(r.Context()); reqID != "" {
		body["requestId"] = reqID
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
