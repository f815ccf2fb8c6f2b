package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/preston-bernstein/nba-roster-service/internal/logging"
)

// RecoveryMiddleware turns a panicking handler into a 500 response.
func RecoveryMiddleware(baseLogger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger := logging.FromContext(r.Context(), baseLogger)
			logging.Error(logger, "handler panic", nil,
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}()
		next.ServeHTTP(w, r)
	})
}
