// Package profile manages the player's login lifecycle: resuming or
// creating a profile, saving it, autosaving it and wiping it.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/brickmath/internal/config"
	"github.com/abhisek/brickmath/internal/game"
	"github.com/abhisek/brickmath/internal/store"
)

var (
	// ErrEmptyName is returned when logging in with a blank name.
	ErrEmptyName = errors.New("player name is empty")

	// ErrNotLoggedIn is returned by operations that need a player.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrLoggedIn is returned by operations that need no player.
	ErrLoggedIn = errors.New("already logged in")
)

// State is the lifecycle state of the manager.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Manager owns the current player's profile and game session and keeps them
// in sync with the store.
type Manager struct {
	mu          sync.Mutex
	profile     *store.ProfileData
	session     *game.Session
	accountedAt time.Time

	schedMu sync.Mutex
	sched   gocron.Scheduler

	repo          store.SnapshotRepo
	log           zerolog.Logger
	now           func() time.Time
	interval      time.Duration
	defaultTables []int
	gameOpts      []game.Option
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithClock sets the clock used for profile dates and play time.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithAutosaveInterval sets how often a logged-in profile is saved.
func WithAutosaveInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

// WithDefaultTables sets the table selection of newly created profiles.
func WithDefaultTables(tables []int) Option {
	return func(m *Manager) { m.defaultTables = tables }
}

// WithGameOptions passes options to every game session the manager creates.
func WithGameOptions(opts ...game.Option) Option {
	return func(m *Manager) { m.gameOpts = append(m.gameOpts, opts...) }
}

// NewManager creates a logged-out manager backed by repo.
func NewManager(repo store.SnapshotRepo, opts ...Option) *Manager {
	m := &Manager{
		repo:     repo,
		log:      zerolog.Nop(),
		now:      time.Now,
		interval: config.DefaultAutosaveSeconds * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resume logs in with the stored profile, if there is one. It reports
// whether a profile was resumed.
func (m *Manager) Resume(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if m.profile != nil {
		m.mu.Unlock()
		return false, ErrLoggedIn
	}

	snap, err := m.repo.Load(ctx)
	if err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("resume profile: %w", err)
	}
	if snap == nil {
		m.mu.Unlock()
		return false, nil
	}
	m.enterLocked(snap)
	m.mu.Unlock()

	m.log.Info().Str("player", snap.Profile.Name).Msg("resumed profile")
	m.StartAutosave()
	return true, nil
}

// Login logs in as name. A stored profile with the same name (ignoring
// case) is resumed as-is; any other name starts a fresh profile that
// replaces the stored one and is saved at once.
func (m *Manager) Login(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	if m.profile != nil {
		m.mu.Unlock()
		return ErrLoggedIn
	}

	snap, err := m.repo.Load(ctx)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("login: %w", err)
	}

	if snap != nil && strings.EqualFold(snap.Profile.Name, name) {
		m.enterLocked(snap)
		m.mu.Unlock()
		m.log.Info().Str("player", snap.Profile.Name).Msg("logged in")
		m.StartAutosave()
		return nil
	}

	now := m.now()
	m.enterLocked(&store.Snapshot{
		Profile: &store.ProfileData{
			Name:         name,
			LoginDate:    now,
			LastPlayDate: now,
		},
		SelectedTables: m.defaultTables,
	})
	if err := m.saveLocked(ctx); err != nil {
		m.clearLocked()
		m.mu.Unlock()
		return fmt.Errorf("create profile: %w", err)
	}
	m.mu.Unlock()

	m.log.Info().Str("player", name).Bool("replaced", snap != nil).Msg("created profile")
	m.StartAutosave()
	return nil
}

// Save writes the current profile and session. It updates the last play
// date and adds the play time since the previous save.
func (m *Manager) Save(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return ErrNotLoggedIn
	}
	if err := m.saveLocked(ctx); err != nil {
		m.log.Error().Err(err).Str("player", m.profile.Name).Msg("save profile")
		return err
	}
	return nil
}

// Logout stops autosave, saves and forgets the in-memory state. The save and
// the clear happen under one lock, so of two overlapping logouts exactly one
// succeeds and the other returns ErrNotLoggedIn.
func (m *Manager) Logout(ctx context.Context) error {
	// Stop before locking: a running autosave job needs m.mu to finish.
	m.StopAutosave()

	m.mu.Lock()
	if m.profile == nil {
		m.mu.Unlock()
		return ErrNotLoggedIn
	}
	if err := m.saveLocked(ctx); err != nil {
		m.mu.Unlock()
		m.StartAutosave()
		return fmt.Errorf("logout: %w", err)
	}
	name := m.profile.Name
	m.clearLocked()
	m.mu.Unlock()

	m.log.Info().Str("player", name).Msg("logged out")
	return nil
}

// Wipe deletes every stored record and logs out without saving. It cannot
// be undone.
func (m *Manager) Wipe(ctx context.Context) error {
	m.StopAutosave()

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	m.clearLocked()
	m.log.Warn().Msg("wiped all player data")
	return nil
}

// ResetProgress clears stats, bricks, builds and achievements but keeps
// the profile, then saves.
func (m *Manager) ResetProgress(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return ErrNotLoggedIn
	}
	m.session.ResetProgress()
	if err := m.saveLocked(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	m.log.Info().Str("player", m.profile.Name).Msg("reset progress")
	return nil
}

// ToggleTable adds or removes table n from the saved selection.
func (m *Manager) ToggleTable(ctx context.Context, n int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return ErrNotLoggedIn
	}
	if err := m.session.ToggleTable(n); err != nil {
		return err
	}
	return m.saveLocked(ctx)
}

// Export returns the current player's full snapshot without saving it.
func (m *Manager) Export() (*store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile == nil {
		return nil, ErrNotLoggedIn
	}
	snap := m.session.Export()
	p := *m.profile
	snap.Profile = &p
	return snap, nil
}

// Import replaces the stored records with snap. It is only allowed while
// logged out; the imported profile is picked up by the next Resume.
func (m *Manager) Import(ctx context.Context, snap *store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.profile != nil {
		return ErrLoggedIn
	}
	if err := m.repo.Wipe(ctx); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := m.repo.Save(ctx, snap); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	m.log.Info().Str("player", snap.Profile.Name).Msg("imported profile")
	return nil
}

// State returns whether a player is logged in.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return LoggedOut
	}
	return LoggedIn
}

// Profile returns a copy of the current profile.
func (m *Manager) Profile() (store.ProfileData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return store.ProfileData{}, false
	}
	return *m.profile, true
}

// Session returns the current game session, or nil when logged out.
func (m *Manager) Session() *game.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Close stops autosave. It does not save.
func (m *Manager) Close() {
	m.StopAutosave()
}

func (m *Manager) enterLocked(snap *store.Snapshot) {
	p := *snap.Profile
	m.profile = &p
	m.session = game.Restore(snap, m.gameOpts...)
	m.accountedAt = m.now()
}

func (m *Manager) clearLocked() {
	m.profile = nil
	m.session = nil
	m.accountedAt = time.Time{}
}

func (m *Manager) saveLocked(ctx context.Context) error {
	now := m.now()
	played := now.Sub(m.accountedAt) / time.Second
	if played < 0 {
		played = 0
	}

	p := *m.profile
	p.LastPlayDate = now
	p.TotalPlayTime += int64(played)

	snap := m.session.Export()
	snap.Profile = &p
	if err := m.repo.Save(ctx, snap); err != nil {
		return err
	}

	// Partial seconds carry over to the next save.
	m.profile = &p
	m.accountedAt = m.accountedAt.Add(played * time.Second)
	m.log.Debug().Str("player", p.Name).Int("bricks", len(snap.Bricks)).Msg("saved profile")
	return nil
}
