// Package teams owns the persisted roster of user-defined teams.
package teams

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nba-roster-service/internal/domain/players"
	"github.com/preston-bernstein/nba-roster-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-roster-service/internal/kvstore"
	"github.com/preston-bernstein/nba-roster-service/internal/logging"
	"github.com/preston-bernstein/nba-roster-service/internal/metrics"
)

const (
	// StorageKey is where the team collection is persisted.
	StorageKey = "nba_teams"
	// CorruptSuffix is appended to StorageKey when an unreadable payload is set aside.
	CorruptSuffix = ".corrupt"
)

var (
	// ErrPersist wraps storage write failures. The in-memory collection is rolled back when it is returned.
	ErrPersist = errors.New("failed to save teams")
	// ErrLoad wraps storage read failures other than a missing key.
	ErrLoad = errors.New("failed to load teams")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("team store closed")
)

// Options tunes a Store. Zero values pick defaults.
type Options struct {
	Policy MembershipPolicy
	Now    func() time.Time
	NewID  func() string
}

// Store serializes every operation through a single goroutine that owns the collection,
// so reads and writes are applied and persisted in call order.
type Store struct {
	kv      kvstore.Store
	logger  *slog.Logger
	metrics *metrics.Recorder
	policy  MembershipPolicy
	now     func() time.Time
	newID   func() string

	cmds     chan *command
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once

	// owned by the loop goroutine
	items  []teams.Team
	loaded bool
}

type command struct {
	ctx      context.Context
	fn       func(ctx context.Context) error
	err      error
	finished chan struct{}
}

// NewStore starts the store loop. The collection is loaded lazily on the first operation.
func NewStore(kv kvstore.Store, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Store {
	if opts.Policy == "" {
		opts.Policy = PolicyReject
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	s := &Store{
		kv:      kv,
		logger:  logger,
		metrics: recorder,
		policy:  opts.Policy,
		now:     opts.Now,
		newID:   opts.NewID,
		cmds:    make(chan *command),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Close stops the loop. Operations issued afterwards fail with ErrClosed.
func (s *Store) Close() error {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
	return nil
}

func (s *Store) loop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.cmds:
			if err := s.ensureLoaded(cmd.ctx); err != nil {
				cmd.err = err
			} else {
				cmd.err = cmd.fn(cmd.ctx)
			}
			close(cmd.finished)
		}
	}
}

// exec hands fn to the loop and waits for it to finish. Once accepted a command always runs to completion.
func (s *Store) exec(ctx context.Context, fn func(ctx context.Context) error) error {
	cmd := &command{ctx: ctx, fn: fn, finished: make(chan struct{})}
	select {
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case s.cmds <- cmd:
	}
	<-cmd.finished
	return cmd.err
}

// List returns a copy of the collection in stored order.
func (s *Store) List(ctx context.Context) ([]teams.Team, error) {
	var out []teams.Team
	err := s.exec(ctx, func(context.Context) error {
		out = teams.CloneAll(s.items)
		return nil
	})
	return out, err
}

// Get returns the team with the given id or teams.ErrTeamNotFound.
func (s *Store) Get(ctx context.Context, id string) (teams.Team, error) {
	var out teams.Team
	err := s.exec(ctx, func(context.Context) error {
		idx := s.indexOf(id)
		if idx < 0 {
			return teams.ErrTeamNotFound
		}
		out = s.items[idx].Clone()
		return nil
	})
	return out, err
}

// Create validates the form, enforces name uniqueness and the membership policy, then appends and persists.
func (s *Store) Create(ctx context.Context, form teams.FormData) (teams.Team, error) {
	var out teams.Team
	err := s.exec(ctx, func(ctx context.Context) error {
		if err := form.Validate(); err != nil {
			return err
		}
		if s.nameTaken(form.Name, "") {
			return teams.ErrNameTaken
		}

		before := teams.CloneAll(s.items)
		now := s.now().UTC()
		if err := s.applyPolicy(form.PlayerIDs, "", now); err != nil {
			return err
		}

		team := teams.Team{ID: s.newID(), CreatedAt: now}
		team.Apply(form, now)
		s.items = append(s.items, team)

		if err := s.persist(ctx, before); err != nil {
			return err
		}
		out = team.Clone()
		logging.Info(s.logger, "team created",
			slog.String(logging.FieldTeamID, team.ID),
			slog.Int(logging.FieldCount, len(team.PlayerIDs)),
		)
		return nil
	})
	return out, err
}

// Update replaces the mutable fields of an existing team. The team's own name does not count as a conflict.
func (s *Store) Update(ctx context.Context, id string, form teams.FormData) (teams.Team, error) {
	var out teams.Team
	err := s.exec(ctx, func(ctx context.Context) error {
		idx := s.indexOf(id)
		if idx < 0 {
			return teams.ErrTeamNotFound
		}
		if err := form.Validate(); err != nil {
			return err
		}
		if s.nameTaken(form.Name, id) {
			return teams.ErrNameTaken
		}

		before := teams.CloneAll(s.items)
		now := s.now().UTC()
		if err := s.applyPolicy(form.PlayerIDs, id, now); err != nil {
			return err
		}

		s.items[idx].Apply(form, now)
		if err := s.persist(ctx, before); err != nil {
			return err
		}
		out = s.items[idx].Clone()
		logging.Info(s.logger, "team updated", slog.String(logging.FieldTeamID, id))
		return nil
	})
	return out, err
}

// Delete removes the team if present and persists. Deleting an unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.exec(ctx, func(ctx context.Context) error {
		before := teams.CloneAll(s.items)
		if idx := s.indexOf(id); idx >= 0 {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			logging.Info(s.logger, "team deleted", slog.String(logging.FieldTeamID, id))
		}
		return s.persist(ctx, before)
	})
}

// PlayerTeam returns the first team in stored order that lists the player.
func (s *Store) PlayerTeam(ctx context.Context, playerID int) (teams.Team, bool, error) {
	var (
		out   teams.Team
		found bool
	)
	err := s.exec(ctx, func(context.Context) error {
		for _, t := range s.items {
			if t.HasPlayer(playerID) {
				out, found = t.Clone(), true
				return nil
			}
		}
		return nil
	})
	return out, found, err
}

// IsPlayerInTeam reports whether any team lists the player.
func (s *Store) IsPlayerInTeam(ctx context.Context, playerID int) (bool, error) {
	_, found, err := s.PlayerTeam(ctx, playerID)
	return found, err
}

// AvailablePlayers filters candidates for a team editor: players already selected are dropped,
// as are players that belong to any team other than excludeTeamID.
func (s *Store) AvailablePlayers(ctx context.Context, candidates []players.Player, selected []int, excludeTeamID string) ([]players.Player, error) {
	out := []players.Player{}
	err := s.exec(ctx, func(context.Context) error {
		chosen := make(map[int]struct{}, len(selected))
		for _, id := range selected {
			chosen[id] = struct{}{}
		}
		taken := make(map[int]struct{})
		for _, t := range s.items {
			if t.ID == excludeTeamID {
				continue
			}
			for _, id := range t.PlayerIDs {
				taken[id] = struct{}{}
			}
		}
		for _, p := range candidates {
			if _, ok := chosen[p.ID]; ok {
				continue
			}
			if _, ok := taken[p.ID]; ok {
				continue
			}
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nameTaken(name, selfID string) bool {
	for _, t := range s.items {
		if t.ID != selfID && teams.SameName(t.Name, name) {
			return true
		}
	}
	return false
}

// applyPolicy enforces the membership policy for a write to selfID ("" for a new team).
// Under PolicyEvict the other teams are modified in place; callers roll back on later failure.
func (s *Store) applyPolicy(playerIDs []int, selfID string, now time.Time) error {
	if s.policy == PolicyAllow {
		return nil
	}
	for _, pid := range playerIDs {
		for i := range s.items {
			other := &s.items[i]
			if other.ID == selfID || !other.HasPlayer(pid) {
				continue
			}
			if s.policy == PolicyReject {
				return &teams.PlayerAssignedError{PlayerID: pid, TeamID: other.ID, TeamName: other.Name}
			}
			other.RemovePlayer(pid)
			other.UpdatedAt = now
			logging.Info(s.logger, "player moved between teams",
				slog.Int(logging.FieldPlayerID, pid),
				slog.String("from_team_id", other.ID),
			)
		}
	}
	return nil
}

// persist writes the whole collection. On failure the collection is restored to before.
func (s *Store) persist(ctx context.Context, before []teams.Team) error {
	raw, err := teams.EncodeCollection(s.items)
	if err == nil {
		err = s.kv.Set(ctx, StorageKey, raw)
	}
	if err != nil {
		s.items = before
		s.metrics.RecordStorageFailure(metrics.OpPersist)
		logging.Error(s.logger, "team persist failed", err, slog.String(logging.FieldKey, StorageKey))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, err := s.kv.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		s.items = []teams.Team{}
		s.loaded = true
		return nil
	case err != nil:
		s.metrics.RecordStorageFailure(metrics.OpLoad)
		logging.Error(s.logger, "team load failed", err, slog.String(logging.FieldKey, StorageKey))
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	items, decodeErr := teams.DecodeCollection(raw)
	if decodeErr != nil {
		s.metrics.RecordStorageFailure(metrics.OpDecode)
		logging.Error(s.logger, "stored teams unreadable, starting empty", decodeErr,
			slog.String(logging.FieldKey, StorageKey),
		)
		if backupErr := s.kv.Set(ctx, StorageKey+CorruptSuffix, raw); backupErr != nil {
			logging.Error(s.logger, "corrupt teams backup failed", backupErr)
		}
		items = []teams.Team{}
	}

	s.items = items
	s.loaded = true
	logging.Debug(s.logger, "teams loaded", slog.Int(logging.FieldCount, len(items)))
	return nil
}
