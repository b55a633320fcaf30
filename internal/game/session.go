// Package game ties question generation, scoring, the brick ledger, the
// achievement engine and the model builder into one player session.
package game

import (
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/brickmath/internal/achievements"
	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/problemgen"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/store"
)

// ErrNoQuestion is returned when an answer is submitted with no question
// awaiting one.
var ErrNoQuestion = errors.New("no question in progress")

// Session is the in-memory state of a logged-in player. All methods are
// safe for concurrent use; each one finishes its scoring or ledger change
// and the follow-up achievement evaluation before returning.
type Session struct {
	mu sync.Mutex

	gen     *problemgen.Generator
	stats   *scoring.Stats
	ledger  *bricks.Ledger
	engine  *achievements.Engine
	builds  []builder.CompletedBuild
	tables  []int
	mode    scoring.Mode
	current *problemgen.Question

	now func() time.Time
}

type options struct {
	src rand.Source
	now func() time.Time
}

// Option configures a Session.
type Option func(*options)

// WithRand sets the random source for questions and brick colors.
func WithRand(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New starts a fresh session: zeroed stats, an empty ledger, a fresh
// achievement catalog and no builds.
func New(opts ...Option) *Session {
	return Restore(nil, opts...)
}

// Restore rebuilds a session from a snapshot. Missing slices start from
// defaults. The stored brick total is ignored in favor of the ledger.
func Restore(snap *store.Snapshot, opts ...Option) *Session {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if snap == nil {
		snap = &store.Snapshot{}
	}

	ledgerOpts := []bricks.Option{bricks.WithClock(o.now)}
	if o.src != nil {
		ledgerOpts = append(ledgerOpts, bricks.WithRand(o.src))
	}

	return &Session{
		gen:    problemgen.New(o.src),
		stats:  scoring.StatsFromData(snap.Stats),
		ledger: bricks.NewLedger(snap.Bricks, ledgerOpts...),
		engine: achievements.NewEngine(snap.Achievements, achievements.WithClock(o.now)),
		builds: builder.BuildsFromData(snap.Builds),
		tables: normalizeTables(snap.SelectedTables),
		mode:   scoring.ModePractice,
		now:    o.now,
	}
}

// StartGame begins a game in mode m and returns its first question.
func (s *Session) StartGame(m scoring.Mode) problemgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = m
	s.stats.StartGame(m)
	return s.nextLocked()
}

// NextQuestion draws a new question from the selected tables, replacing
// any unanswered one.
func (s *Session) NextQuestion() problemgen.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextLocked()
}

func (s *Session) nextLocked() problemgen.Question {
	q := s.gen.Generate(s.tables)
	s.current = &q
	return q
}

// CurrentQuestion returns the question awaiting an answer.
func (s *Session) CurrentQuestion() (problemgen.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return problemgen.Question{}, false
	}
	return *s.current, true
}

// SubmitAnswer checks input against the current question and applies the
// result. A correct answer mints one normal brick. The question is consumed
// either way.
func (s *Session) SubmitAnswer(input string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Outcome{}, ErrNoQuestion
	}
	q := *s.current
	s.current = nil

	correct := problemgen.CheckAnswer(input, q)
	res := s.stats.Record(q, correct)

	out := Outcome{
		Question:      q,
		Correct:       correct,
		NewlyMastered: res.NewlyMastered,
		RoundComplete: res.RoundComplete,
		PerfectRound:  res.PerfectRound,
	}
	if correct {
		b := s.ledger.Mint("Correct: "+q.Text(), bricks.SizeNormal)
		out.Brick = &b
	}
	out.Unlocked, out.RewardBricks = s.evaluateLocked(res.PerfectRound)
	return out, nil
}

// Build spends bricks on the model with the given id, records the build and
// pays the building bonus. Nothing changes when the model is unknown or the
// ledger holds too few bricks.
func (s *Session) Build(modelID string) (BuildResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := builder.Lookup(modelID)
	if err != nil {
		return BuildResult{}, fmt.Errorf("build %q: %w", modelID, err)
	}
	if err := s.ledger.Spend(m.Cost); err != nil {
		return BuildResult{}, err
	}

	b := builder.NewCompletedBuild(m, s.now())
	s.builds = append(s.builds, b)

	res := BuildResult{
		Model: m,
		Build: b,
		Bonus: s.ledger.MintN(m.Bonus(), "Building Bonus: "+m.Name, bricks.SizeLarge),
	}
	res.Unlocked, res.RewardBricks = s.evaluateLocked(false)
	return res, nil
}

// evaluateLocked runs the achievement engine, mints rewards for every
// unlock and repeats until nothing new unlocks. Reward bricks can complete
// brick-count achievements.
func (s *Session) evaluateLocked(perfectRound bool) ([]achievements.Achievement, int) {
	var (
		all    []achievements.Achievement
		reward int
	)
	for {
		unlocked := s.engine.Evaluate(achievements.State{
			Stats:           s.stats,
			PerfectRound:    perfectRound,
			TotalBricks:     s.ledger.Total(),
			CompletedBuilds: len(s.builds),
		})
		if len(unlocked) == 0 {
			return all, reward
		}
		for _, a := range unlocked {
			reward += len(s.ledger.MintN(a.Reward, "Achievement: "+a.Name, bricks.SizeLarge))
		}
		all = append(all, unlocked...)
	}
}

// ToggleTable adds n to the table selection, or removes it if present.
func (s *Session) ToggleTable(n int) error {
	if !problemgen.ValidTable(n) {
		return fmt.Errorf("toggle table %d: out of range %d-%d", n, problemgen.MinTable, problemgen.MaxTable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.tables, n); i >= 0 {
		s.tables = slices.Delete(s.tables, i, i+1)
		return nil
	}
	s.tables = normalizeTables(append(s.tables, n))
	return nil
}

// SetSelectedTables replaces the table selection.
func (s *Session) SetSelectedTables(tables []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = normalizeTables(tables)
}

// SelectedTables returns the selected tables in ascending order. An empty
// selection plays every table.
func (s *Session) SelectedTables() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tables)
}

// ResetProgress zeroes stats, empties the ledger and build history and
// resets every achievement. The table selection is kept.
func (s *Session) ResetProgress() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.Reset()
	s.ledger.Reset()
	s.engine.Reset()
	s.builds = nil
	s.current = nil
}

// Mode returns the mode of the current game.
func (s *Session) Mode() scoring.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Stats returns a copy of the current counters.
func (s *Session) Stats() scoring.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *s.stats
	cp.TablesMastered = maps.Clone(s.stats.TablesMastered)
	return cp
}

// TotalBricks returns the number of unspent bricks.
func (s *Session) TotalBricks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Total()
}

// Bricks returns the unspent bricks, oldest first.
func (s *Session) Bricks() []bricks.Brick {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Bricks()
}

// BrickCounts returns unspent bricks tallied by size and by color.
func (s *Session) BrickCounts() (map[bricks.Size]int, map[bricks.Color]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CountBySize(), s.ledger.CountByColor()
}

// Achievements returns every achievement with its progress.
func (s *Session) Achievements() []achievements.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.All()
}

// Builds returns the completed builds, oldest first.
func (s *Session) Builds() []builder.CompletedBuild {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.builds)
}

// CanAfford reports whether the ledger covers model m.
func (s *Session) CanAfford(m builder.Model) bool {
	return s.TotalBricks() >= m.Cost
}

// Export returns a consistent copy of the session's persisted slices. The
// profile is left nil for the caller to fill in.
func (s *Session) Export() *store.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &store.Snapshot{
		Stats:          s.stats.SnapshotData(s.ledger.Total()),
		Bricks:         s.ledger.SnapshotData(),
		Achievements:   s.engine.SnapshotData(),
		Builds:         builder.BuildsData(s.builds),
		SelectedTables: slices.Clone(s.tables),
	}
}

// normalizeTables keeps valid, distinct tables in ascending order.
func normalizeTables(tables []int) []int {
	out := make([]int, 0, len(tables))
	for _, n := range tables {
		if problemgen.ValidTable(n) && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	slices.Sort(out)
	return out
}
