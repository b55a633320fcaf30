package achievements

import (
	"time"

	"github.com/abhisek/brickmath/internal/store"
)

// Achievement is a catalog rule together with the player's progress on it.
type Achievement struct {
	Rule
	Progress   int
	Unlocked   bool
	UnlockedAt *time.Time
}

// Complete returns progress as a fraction of MaxProgress.
func (a Achievement) Complete() float64 {
	if a.MaxProgress <= 0 {
		return 0
	}
	return float64(a.Progress) / float64(a.MaxProgress)
}

// Engine tracks progress and unlocks across the whole catalog.
type Engine struct {
	entries []*Achievement
	byID    map[string]*Achievement
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to stamp unlocks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine builds the catalog and merges saved entries into it by id.
// Saved ids that are no longer in the catalog are dropped; catalog entries
// missing from data start fresh. A nil data starts everything fresh.
func NewEngine(data []store.AchievementData, opts ...Option) *Engine {
	e := &Engine{
		byID: make(map[string]*Achievement),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, r := range Catalog() {
		a := &Achievement{Rule: r}
		e.entries = append(e.entries, a)
		e.byID[r.ID] = a
	}

	for _, d := range data {
		a, ok := e.byID[d.ID]
		if !ok {
			continue
		}
		a.Progress = min(max(d.Progress, 0), a.MaxProgress)
		a.Unlocked = d.Unlocked
		if a.Unlocked {
			a.Progress = a.MaxProgress
			if d.UnlockedAt != nil {
				at := *d.UnlockedAt
				a.UnlockedAt = &at
			}
		}
	}
	return e
}

// Evaluate updates progress for every rule and returns the achievements
// unlocked by this call, in catalog order. Already unlocked achievements
// are never returned again.
func (e *Engine) Evaluate(s State) []Achievement {
	var unlocked []Achievement
	for _, a := range e.entries {
		if a.Unlocked {
			continue
		}
		computed := min(max(a.Rule.Progress(s), 0), a.MaxProgress)
		a.Progress = max(a.Progress, computed)
		if a.Progress >= a.MaxProgress {
			at := e.now()
			a.Unlocked = true
			a.UnlockedAt = &at
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}

// All returns a copy of every achievement in catalog order.
func (e *Engine) All() []Achievement {
	out := make([]Achievement, len(e.entries))
	for i, a := range e.entries {
		out[i] = *a
	}
	return out
}

// Get returns the achievement with the given id.
func (e *Engine) Get(id string) (Achievement, bool) {
	a, ok := e.byID[id]
	if !ok {
		return Achievement{}, false
	}
	return *a, true
}

// UnlockedCount returns how many achievements are unlocked.
func (e *Engine) UnlockedCount() int {
	n := 0
	for _, a := range e.entries {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// Reset clears all progress and unlocks.
func (e *Engine) Reset() {
	for _, a := range e.entries {
		a.Progress = 0
		a.Unlocked = false
		a.UnlockedAt = nil
	}
}

// SnapshotData builds the achievement records for persistence.
func (e *Engine) SnapshotData() []store.AchievementData {
	out := make([]store.AchievementData, len(e.entries))
	for i, a := range e.entries {
		out[i] = store.AchievementData{
			ID:           a.ID,
			Name:         a.Name,
			Description:  a.Description,
			Icon:         a.Icon,
			BricksEarned: a.Reward,
			Unlocked:     a.Unlocked,
			Progress:     a.Progress,
			MaxProgress:  a.MaxProgress,
			UnlockedAt:   a.UnlockedAt,
		}
	}
	return out
}
