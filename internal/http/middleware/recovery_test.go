package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

func TestRecoveryMiddlewareReturns500(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := testutil.Serve(RecoveryMiddleware(logger, panicky), http.MethodGet, "/teams", nil)

	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
	var body map[string]string
	testutil.DecodeJSON(t, rr, &body)
	if body["error"] != "internal server error" {
		t.Fatalf("unexpected body %v", body)
	}
	if !strings.Contains(buf.String(), "handler panic") {
		t.Fatalf("expected panic to be logged, got %s", buf.String())
	}
}

func TestRecoveryMiddlewarePassesThrough(t *testing.T) {
	rr := testutil.Serve(RecoveryMiddleware(nil, okHandler()), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}
