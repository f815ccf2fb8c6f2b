package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	appplayers "github.com/preston-bernstein/nba-roster-service/internal/app/players"
	appsession "github.com/preston-bernstein/nba-roster-service/internal/app/session"
	appteams "github.com/preston-bernstein/nba-roster-service/internal/app/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/memory"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/providers"
	"github.com/preston-bernstein/nba-roster-service/internal/providers/fixture"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

type testEnv struct {
	h        *Handler
	teams    *appteams.Store
	sessions *appsession.Store
	kv       *memory.Store
}

func newTestEnv(t *testing.T, provider providers.PlayerProvider) testEnv {
	t.Helper()
	if provider == nil {
		provider = fixture.New()
	}
	kv := memory.New()
	logger, _ := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	teamStore := appteams.NewStore(kv, logger, rec, appteams.Options{})
	t.Cleanup(func() { _ = teamStore.Close() })
	sessions := appsession.NewStore(kv, logger, rec, appsession.Options{})
	h := NewHandler(Options{
		Teams:     teamStore,
		Directory: appplayers.NewDirectory(provider, logger, rec, appplayers.Config{}),
		Sessions:  sessions,
		Logger:    logger,
	})
	return testEnv{h: h, teams: teamStore, sessions: sessions, kv: kv}
}

func serveWithVars(fn http.HandlerFunc, method, path, body string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return testutil.ServeRequest(fn, req)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := testutil.Serve(http.HandlerFunc(env.h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(env.h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReadyWaitsForSession(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := testutil.Serve(http.HandlerFunc(env.h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

	env.sessions.Rehydrate(context.Background())
	rr = testutil.Serve(http.HandlerFunc(env.h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestCreateTeam(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := serveWithVars(env.h.CreateTeam, http.MethodPost, "/teams",
		`{"name":"Splash Bros","region":"West","country":"USA","playerIds":[115]}`, nil)
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var res teams.Result
	testutil.DecodeJSON(t, rr, &res)
	require.True(t, res.Success)
	require.NotNil(t, res.Team)
	require.Equal(t, "Splash Bros", res.Team.Name)
	require.Equal(t, []int{115}, res.Team.PlayerIDs)

	rr = serveWithVars(env.h.CreateTeam, http.MethodPost, "/teams",
		`{"name":" splash bros ","region":"West","country":"USA","playerIds":[]}`, nil)
	testutil.AssertStatus(t, rr, http.StatusConflict)
	testutil.DecodeJSON(t, rr, &res)
	require.False(t, res.Success)
	require.Equal(t, "Team name already exists", res.Error)
}

func TestCreateTeamValidation(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := serveWithVars(env.h.CreateTeam, http.MethodPost, "/teams", `{"name":"ab","region":"","country":"USA"}`, nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	var res teams.Result
	testutil.DecodeJSON(t, rr, &res)
	require.False(t, res.Success)
	require.Equal(t, map[string]string{
		"name":   teams.MsgNameTooShort,
		"region": teams.MsgRegionRequired,
	}, res.FieldErrors)

	rr = serveWithVars(env.h.CreateTeam, http.MethodPost, "/teams", `{"name":`, nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestTeamReadUpdateDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	team, err := env.teams.Create(ctx, teams.FormData{Name: "Lakers", Region: "West", Country: "USA", PlayerIDs: []int{237}})
	require.NoError(t, err)
	vars := map[string]string{"id": team.ID}

	rr := serveWithVars(env.h.GetTeam, http.MethodGet, "/teams/"+team.ID, "", vars)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = serveWithVars(env.h.UpdateTeam, http.MethodPut, "/teams/"+team.ID,
		`{"name":"Showtime","region":"West","country":"USA","playerIds":[237,117]}`, vars)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var res teams.Result
	testutil.DecodeJSON(t, rr, &res)
	require.Equal(t, "Showtime", res.Team.Name)
	require.Equal(t, []int{237, 117}, res.Team.PlayerIDs)

	rr = serveWithVars(env.h.UpdateTeam, http.MethodPut, "/teams/missing",
		`{"name":"Ghosts","region":"West","country":"USA"}`, map[string]string{"id": "missing"})
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = serveWithVars(env.h.DeleteTeam, http.MethodDelete, "/teams/"+team.ID, "", vars)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = serveWithVars(env.h.GetTeam, http.MethodGet, "/teams/"+team.ID, "", vars)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	rr = serveWithVars(env.h.ListTeams, http.MethodGet, "/teams", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestSearchPlayersPaginates(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?per_page=5", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var first players.Page
	testutil.DecodeJSON(t, rr, &first)
	require.Len(t, first.Data, 5)
	require.NotNil(t, first.Meta.NextCursor)

	rr = serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?per_page=5&cursor="+strconv.Itoa(*first.Meta.NextCursor), "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var second players.Page
	testutil.DecodeJSON(t, rr, &second)
	require.Len(t, second.Data, 5)
	for _, id := range players.IDs(second.Data) {
		require.NotContains(t, players.IDs(first.Data), id)
	}

	rr = serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?team_ids[]=10&search=d", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var warriors players.Page
	testutil.DecodeJSON(t, rr, &warriors)
	require.ElementsMatch(t, []int{140, 185}, players.IDs(warriors.Data))
}

func TestSearchPlayersRejectsBadQuery(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, path := range []string{"/players?cursor=abc", "/players?per_page=-1", "/players?team_ids=x"} {
		rr := serveWithVars(env.h.SearchPlayers, http.MethodGet, path, "", nil)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	}
}

func TestSearchPlayersRateLimited(t *testing.T) {
	limited := providers.PlayerProviderFunc(func(context.Context, players.Query) (players.Page, error) {
		return players.Page{}, &providers.RateLimitError{Provider: "balldontlie", StatusCode: 429, RetryAfter: 5 * time.Second}
	})
	env := newTestEnv(t, limited)

	rr := serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?search=curry", "", nil)
	testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	require.Equal(t, "5", rr.Header().Get("Retry-After"))
	require.Contains(t, rr.Body.String(), "Please wait 5 seconds")
}

func TestSearchPlayersUpstreamFailure(t *testing.T) {
	cases := []struct {
		name     string
		provider providers.PlayerProvider
	}{
		{"unavailable", testutil.UnavailableProvider{}},
		{"status", testutil.ErrProvider{Err: &providers.StatusError{Provider: "balldontlie", StatusCode: 500}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.provider)
			rr := serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?search=curry", "", nil)
			testutil.AssertStatus(t, rr, http.StatusBadGateway)
		})
	}
}

func TestSearchPlayersServesCachedPage(t *testing.T) {
	next := 2
	static := &testutil.StaticProvider{Page: testutil.SamplePage(&next, testutil.SamplePlayer(1, "Trae", "Young"))}
	env := newTestEnv(t, static)

	for i := 0; i < 2; i++ {
		rr := serveWithVars(env.h.SearchPlayers, http.MethodGet, "/players?search=trae", "", nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		var page players.Page
		testutil.DecodeJSON(t, rr, &page)
		require.Equal(t, []int{1}, players.IDs(page.Data))
		require.Equal(t, &next, page.Meta.NextCursor)
	}
	require.Equal(t, 1, static.Calls())
}

func TestLookupPlayers(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := serveWithVars(env.h.LookupPlayers, http.MethodGet, "/players/lookup?id=237&id=115", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var page players.Page
	testutil.DecodeJSON(t, rr, &page)
	require.ElementsMatch(t, []int{115, 237}, players.IDs(page.Data))

	rr = serveWithVars(env.h.LookupPlayers, http.MethodGet, "/players/lookup", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.DecodeJSON(t, rr, &page)
	require.Empty(t, page.Data)
}

func TestAvailablePlayersHidesSelectedAndAssigned(t *testing.T) {
	env := newTestEnv(t, nil)
	warriors, err := env.teams.Create(context.Background(), teams.FormData{Name: "Warriors", Region: "West", Country: "USA", PlayerIDs: []int{115}})
	require.NoError(t, err)

	rr := serveWithVars(env.h.AvailablePlayers, http.MethodGet, "/players/available?selected=237", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp AvailableResponse
	testutil.DecodeJSON(t, rr, &resp)
	require.Equal(t, []int{237}, players.IDs(resp.Selected))
	available := players.IDs(resp.Available)
	require.NotContains(t, available, 237, "selected players are not offered again")
	require.NotContains(t, available, 115, "players on another team are hidden")
	require.Contains(t, available, 140)

	rr = serveWithVars(env.h.AvailablePlayers, http.MethodGet, "/players/available?team="+warriors.ID, "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.DecodeJSON(t, rr, &resp)
	require.Contains(t, players.IDs(resp.Available), 115, "the team being edited keeps its own players")
}

func TestPlayerTeam(t *testing.T) {
	env := newTestEnv(t, nil)
	team, err := env.teams.Create(context.Background(), teams.FormData{Name: "Nuggets", Region: "West", Country: "USA", PlayerIDs: []int{246}})
	require.NoError(t, err)

	rr := serveWithVars(env.h.PlayerTeam, http.MethodGet, "/players/246/team", "", map[string]string{"id": "246"})
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp PlayerTeamResponse
	testutil.DecodeJSON(t, rr, &resp)
	require.NotNil(t, resp.Team)
	require.Equal(t, team.ID, resp.Team.ID)

	rr = serveWithVars(env.h.PlayerTeam, http.MethodGet, "/players/15/team", "", map[string]string{"id": "15"})
	testutil.AssertStatus(t, rr, http.StatusOK)
	resp = PlayerTeamResponse{}
	testutil.DecodeJSON(t, rr, &resp)
	require.Nil(t, resp.Team)
}

func TestSessionFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	env.sessions.Rehydrate(context.Background())

	rr := serveWithVars(env.h.Login, http.MethodPost, "/session/login", `{"email":"","password":""}`, nil)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	require.Contains(t, rr.Body.String(), session.MsgMissingFields)

	rr = serveWithVars(env.h.Login, http.MethodPost, "/session/login", `{"email":"steph@example.com","password":"splash"}`, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var rec session.Record
	testutil.DecodeJSON(t, rr, &rec)
	require.True(t, rec.IsAuthenticated)
	require.Equal(t, "steph", rec.User.Name)

	rr = serveWithVars(env.h.Dashboard, http.MethodGet, "/dashboard", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var dash DashboardResponse
	testutil.DecodeJSON(t, rr, &dash)
	require.Equal(t, "steph@example.com", dash.User.Email)
	require.Empty(t, dash.Teams)

	rr = serveWithVars(env.h.Logout, http.MethodPost, "/session/logout", "", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = serveWithVars(env.h.Session, http.MethodGet, "/session", "", nil)
	testutil.DecodeJSON(t, rr, &rec)
	require.False(t, rec.IsAuthenticated)
}
