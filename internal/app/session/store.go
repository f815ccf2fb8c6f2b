// Package session keeps the signed-in user across restarts and drives the route guard.
// Authentication is simulated: there are no tokens and nothing expires.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/session"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

// StorageKey is where the session record is persisted.
const StorageKey = "auth"

var (
	// ErrInvalidCredentials is returned when a password hash is configured and the password does not match it.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPersist wraps storage failures while saving or clearing the session.
	ErrPersist = errors.New("failed to save session")
)

// Options tunes a Store.
type Options struct {
	// PasswordHash is a bcrypt hash every login must match. Empty accepts any password.
	PasswordHash string
}

// Store holds the current session record. Reads are served from memory after Rehydrate.
type Store struct {
	kv      kvstore.Store
	logger  *slog.Logger
	metrics *metrics.Recorder
	hash    []byte
	guard   *Guard

	once   sync.Once
	mu     sync.RWMutex
	record session.Record
}

// NewStore builds a store in the loading state. Call Rehydrate before serving requests.
func NewStore(kv kvstore.Store, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Store {
	s := &Store{
		kv:      kv,
		logger:  logger,
		metrics: recorder,
		guard:   NewGuard(),
	}
	if opts.PasswordHash != "" {
		s.hash = []byte(opts.PasswordHash)
	}
	return s
}

// Guard returns the route guard driven by this store.
func (s *Store) Guard() *Guard {
	return s.guard
}

// Rehydrate restores the persisted session on its first call. Anything unreadable
// leaves the user signed out. Later calls return the current record.
func (s *Store) Rehydrate(ctx context.Context) session.Record {
	s.once.Do(func() {
		rec := s.load(ctx)
		s.mu.Lock()
		s.record = rec
		s.mu.Unlock()
		s.guard.settle(rec.IsAuthenticated)
		logging.Info(s.logger, "session rehydrated", slog.Bool("authenticated", rec.IsAuthenticated))
	})
	return s.Current()
}

func (s *Store) load(ctx context.Context) session.Record {
	raw, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return session.Record{}
	}
	if err != nil {
		s.metrics.RecordStorageFailure(metrics.OpLoad)
		logging.Error(s.logger, "session load failed, starting signed out", err, slog.String(logging.FieldKey, StorageKey))
		return session.Record{}
	}
	rec, err := session.DecodeRecord(raw)
	if err != nil {
		s.metrics.RecordStorageFailure(metrics.OpDecode)
		logging.Warn(s.logger, "persisted session is invalid, starting signed out",
			slog.String(logging.FieldKey, StorageKey),
			slog.String(logging.FieldError, err.Error()),
		)
		return session.Record{}
	}
	if !rec.IsAuthenticated {
		return session.Record{}
	}
	return rec
}

// Current returns a copy of the in-memory record.
func (s *Store) Current() session.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.record
	if out.User != nil {
		user := *out.User
		out.User = &user
	}
	return out
}

// Login marks profile as signed in and persists it. Memory is only updated once the write succeeds.
func (s *Store) Login(ctx context.Context, profile session.Profile) (session.Record, error) {
	s.Rehydrate(ctx)
	rec := session.Record{User: &profile, IsAuthenticated: true}
	raw, err := session.EncodeRecord(rec)
	if err != nil {
		return session.Record{}, fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey, raw); err != nil {
		s.metrics.RecordStorageFailure(metrics.OpPersist)
		logging.Error(s.logger, "session persist failed", err, slog.String(logging.FieldKey, StorageKey))
		return session.Record{}, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.mu.Lock()
	s.record = rec
	s.mu.Unlock()
	s.guard.settle(true)
	logging.Info(s.logger, "signed in", slog.String("email", profile.Email))
	return s.Current(), nil
}

// Authenticate runs the login form: validate, check the configured password hash, then Login.
func (s *Store) Authenticate(ctx context.Context, creds session.Credentials) (session.Record, error) {
	if err := creds.Validate(); err != nil {
		return session.Record{}, err
	}
	if s.hash != nil {
		if err := bcrypt.CompareHashAndPassword(s.hash, []byte(creds.Password)); err != nil {
			logging.Warn(s.logger, "login rejected", slog.String("email", creds.Email))
			return session.Record{}, ErrInvalidCredentials
		}
	}
	return s.Login(ctx, session.ProfileFromCredentials(creds))
}

// Logout clears the session in memory and in storage.
func (s *Store) Logout(ctx context.Context) error {
	s.Rehydrate(ctx)
	s.mu.Lock()
	s.record = session.Record{}
	s.mu.Unlock()
	s.guard.settle(false)
	if err := s.kv.Delete(ctx, StorageKey); err != nil {
		s.metrics.RecordStorageFailure(metrics.OpDelete)
		logging.Error(s.logger, "session delete failed", err, slog.String(logging.FieldKey, StorageKey))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	logging.Info(s.logger, "signed out")
	return nil
}

// HashPassword returns a bcrypt hash suitable for Options.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
