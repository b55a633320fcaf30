package scoring

import (
	"maps"
	"slices"

	"github.com/abhisek/brickmath/internal/problemgen"
	"github.com/abhisek/brickmath/internal/store"
)

// MasteryStreak is the streak length at which the in-flight table is
// marked mastered.
const MasteryStreak = 5

// Stats holds the aggregate counters for a player.
type Stats struct {
	Correct        int
	Incorrect      int
	Streak         int
	BestStreak     int
	SessionsPlayed int
	PerfectRounds  int

	// TablesMastered is the set of tables (1-12) mastered so far.
	TablesMastered map[int]bool

	Round Round
}

// Outcome describes what a single submission changed.
type Outcome struct {
	Correct bool

	// NewlyMastered is the table mastered by this submission, or 0.
	NewlyMastered int

	// RoundComplete is true when this submission finished a round.
	RoundComplete bool

	// PerfectRound is true when the finished round was all correct.
	PerfectRound bool
}

// NewStats returns zeroed stats.
func NewStats() *Stats {
	return &Stats{TablesMastered: make(map[int]bool)}
}

// Record applies one submission for q.
func (s *Stats) Record(q problemgen.Question, correct bool) Outcome {
	out := Outcome{Correct: correct}

	if correct {
		s.Correct++
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)

		// Mastery goes to the table being answered, not the tables that
		// built the earlier part of the streak.
		if s.Streak >= MasteryStreak && problemgen.ValidTable(q.Multiplicand) && !s.TablesMastered[q.Multiplicand] {
			s.TablesMastered[q.Multiplicand] = true
			out.NewlyMastered = q.Multiplicand
		}
	} else {
		s.Incorrect++
		s.Streak = 0
	}

	out.RoundComplete, out.PerfectRound = s.Round.record(correct)
	if out.PerfectRound {
		s.PerfectRounds++
	}
	return out
}

// Mastered reports whether table n is mastered.
func (s *Stats) Mastered(n int) bool {
	return s.TablesMastered[n]
}

// MasteredTables returns the mastered tables in ascending order.
func (s *Stats) MasteredTables() []int {
	return slices.Sorted(maps.Keys(s.TablesMastered))
}

// Accuracy returns correct/(correct+incorrect), or 0 with no answers.
func (s *Stats) Accuracy() float64 {
	total := s.Correct + s.Incorrect
	if total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(total)
}

// Reset zeroes every counter and forgets mastered tables.
func (s *Stats) Reset() {
	*s = *NewStats()
}

// StatsFromData restores stats from a persisted record. A nil record
// yields zeroed stats. Out-of-range tables are dropped.
func StatsFromData(d *store.StatsData) *Stats {
	s := NewStats()
	if d == nil {
		return s
	}
	s.Correct = d.Correct
	s.Incorrect = d.Incorrect
	s.Streak = d.Streak
	s.BestStreak = max(d.BestStreak, d.Streak)
	s.SessionsPlayed = d.SessionsPlayed
	s.PerfectRounds = d.PerfectRounds
	for _, n := range d.TablesCompleted {
		if problemgen.ValidTable(n) {
			s.TablesMastered[n] = true
		}
	}
	return s
}

// SnapshotData builds the persisted stats record. totalBricks is owned by
// the ledger and passed in.
func (s *Stats) SnapshotData(totalBricks int) *store.StatsData {
	return &store.StatsData{
		Correct:         s.Correct,
		Incorrect:       s.Incorrect,
		Streak:          s.Streak,
		BestStreak:      s.BestStreak,
		TotalBricks:     totalBricks,
		SessionsPlayed:  s.SessionsPlayed,
		PerfectRounds:   s.PerfectRounds,
		TablesCompleted: s.MasteredTables(),
	}
}
