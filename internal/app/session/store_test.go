package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore/memory"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
	"github.com/preston-bernstein/nba-roster-service/internal/testutil"
)

func newTestStore(t *testing.T, kv *memory.Store, opts Options) (*Store, *metrics.Recorder) {
	t.Helper()
	if kv == nil {
		kv = memory.New()
	}
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	return NewStore(kv, logger, rec, opts), rec
}

var lebron = session.Profile{ID: "user-1", Email: "lebron@example.com", Name: "lebron"}

func TestRehydrateGoesStraightToAuthenticated(t *testing.T) {
	kv := memory.New()
	kv.Put(StorageKey, []byte(`{"user":{"id":"user-1","email":"lebron@example.com","name":"lebron"},"isAuthenticated":true}`))
	store, _ := newTestStore(t, kv, Options{})

	require.Equal(t, Decision{Action: ActionWait}, store.Guard().Decide(ViewProtected))

	rec := store.Rehydrate(context.Background())
	require.True(t, rec.IsAuthenticated)
	require.Equal(t, lebron, *rec.User)
	require.Equal(t, []State{StateLoading, StateAuthenticated}, store.Guard().Transitions(),
		"a persisted session must never pass through unauthenticated")
	require.Equal(t, Decision{Action: ActionAllow}, store.Guard().Decide(ViewProtected))
}

func TestRehydrateWithoutRecordIsSignedOut(t *testing.T) {
	store, rec := newTestStore(t, nil, Options{})

	got := store.Rehydrate(context.Background())
	require.False(t, got.IsAuthenticated)
	require.Nil(t, got.User)
	require.Equal(t, StateUnauthenticated, store.Guard().State())
	require.Zero(t, rec.StorageFailures(metrics.OpLoad))
}

func TestRehydrateFailsClosed(t *testing.T) {
	cases := map[string]string{
		"malformed json":        `{"user":`,
		"authenticated no user": `{"user":null,"isAuthenticated":true}`,
		"unknown field":         `{"user":null,"isAuthenticated":false,"token":"x"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			kv := memory.New()
			kv.Put(StorageKey, []byte(payload))
			store, rec := newTestStore(t, kv, Options{})

			got := store.Rehydrate(context.Background())
			require.False(t, got.IsAuthenticated)
			require.Equal(t, StateUnauthenticated, store.Guard().State())
			require.EqualValues(t, 1, rec.StorageFailures(metrics.OpDecode))
		})
	}
}

func TestRehydrateReadFailureFailsClosed(t *testing.T) {
	kv := memory.New()
	kv.Put(StorageKey, []byte(`{"user":{"id":"user-1","email":"lebron@example.com","name":"lebron"},"isAuthenticated":true}`))
	kv.FailOn(memory.OpGet, errors.New("disk gone"))
	store, rec := newTestStore(t, kv, Options{})

	require.False(t, store.Rehydrate(context.Background()).IsAuthenticated)
	require.EqualValues(t, 1, rec.StorageFailures(metrics.OpLoad))
}

func TestRehydrateRunsOnce(t *testing.T) {
	kv := memory.New()
	store, _ := newTestStore(t, kv, Options{})
	ctx := context.Background()

	store.Rehydrate(ctx)
	kv.Put(StorageKey, []byte(`{"user":{"id":"user-1","email":"lebron@example.com","name":"lebron"},"isAuthenticated":true}`))
	require.False(t, store.Rehydrate(ctx).IsAuthenticated, "storage is only read once")
	require.Equal(t, []State{StateLoading, StateUnauthenticated}, store.Guard().Transitions())
}

func TestLoginPersistsAndLogoutClears(t *testing.T) {
	kv := memory.New()
	store, _ := newTestStore(t, kv, Options{})
	ctx := context.Background()

	rec, err := store.Login(ctx, lebron)
	require.NoError(t, err)
	require.True(t, rec.IsAuthenticated)

	raw, ok := kv.Raw(StorageKey)
	require.True(t, ok)
	persisted, err := session.DecodeRecord(raw)
	require.NoError(t, err)
	require.Equal(t, lebron, *persisted.User)

	// A fresh process sees the same session.
	restarted, _ := newTestStore(t, kv, Options{})
	require.True(t, restarted.Rehydrate(ctx).IsAuthenticated)

	require.NoError(t, store.Logout(ctx))
	_, ok = kv.Raw(StorageKey)
	require.False(t, ok)
	require.False(t, store.Current().IsAuthenticated)
	require.Equal(t, []State{StateLoading, StateUnauthenticated, StateAuthenticated, StateUnauthenticated}, store.Guard().Transitions())
	require.Equal(t, Decision{Action: ActionRedirect, Location: LoginPath}, store.Guard().Decide(ViewProtected))
}

func TestLoginPersistFailureKeepsSignedOut(t *testing.T) {
	kv := memory.New()
	kv.FailOn(memory.OpSet, errors.New("read-only"))
	store, rec := newTestStore(t, kv, Options{})

	_, err := store.Login(context.Background(), lebron)
	require.ErrorIs(t, err, ErrPersist)
	require.False(t, store.Current().IsAuthenticated)
	require.Equal(t, StateUnauthenticated, store.Guard().State())
	require.EqualValues(t, 1, rec.StorageFailures(metrics.OpPersist))
}

func TestLogoutDeleteFailureStillSignsOut(t *testing.T) {
	kv := memory.New()
	store, rec := newTestStore(t, kv, Options{})
	ctx := context.Background()
	_, err := store.Login(ctx, lebron)
	require.NoError(t, err)

	kv.FailOn(memory.OpDelete, errors.New("read-only"))
	require.ErrorIs(t, store.Logout(ctx), ErrPersist)
	require.False(t, store.Current().IsAuthenticated)
	require.EqualValues(t, 1, rec.StorageFailures(metrics.OpDelete))
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hoops"), bcrypt.MinCost)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		store, _ := newTestStore(t, nil, Options{})
		_, err := store.Authenticate(ctx, session.Credentials{Email: " ", Password: "x"})
		require.ErrorIs(t, err, session.ErrMissingFields)
		require.EqualError(t, err, "Please fill in all fields")
	})

	t.Run("any password without hash", func(t *testing.T) {
		store, _ := newTestStore(t, nil, Options{})
		rec, err := store.Authenticate(ctx, session.Credentials{Email: "steph@example.com", Password: "whatever"})
		require.NoError(t, err)
		require.Equal(t, "steph", rec.User.Name)
		require.NotEmpty(t, rec.User.ID)
	})

	t.Run("hash mismatch", func(t *testing.T) {
		store, _ := newTestStore(t, nil, Options{PasswordHash: string(hash)})
		_, err := store.Authenticate(ctx, session.Credentials{Email: "steph@example.com", Password: "nope"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.False(t, store.Current().IsAuthenticated)
	})

	t.Run("hash match", func(t *testing.T) {
		store, _ := newTestStore(t, nil, Options{PasswordHash: string(hash)})
		rec, err := store.Authenticate(ctx, session.Credentials{Email: "steph@example.com", Password: "hoops"})
		require.NoError(t, err)
		require.True(t, rec.IsAuthenticated)
	})
}

func TestCurrentReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t, nil, Options{})
	_, err := store.Login(context.Background(), lebron)
	require.NoError(t, err)

	rec := store.Current()
	rec.User.Name = "mutated"
	require.Equal(t, "lebron", store.Current().User.Name)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hoops")
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hoops")))
}
