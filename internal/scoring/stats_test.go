package scoring

import (
	"slices"
	"testing"

	"github.com/abhisek/brickmath/internal/problemgen"
	"github.com/abhisek/brickmath/internal/store"
)

func TestRecordCorrect(t *testing.T) {
	s := NewStats()
	q := problemgen.NewQuestion(7, 8)

	out := s.Record(q, true)

	if !out.Correct {
		t.Error("Outcome.Correct = false, want true")
	}
	if s.Correct != 1 || s.Streak != 1 || s.BestStreak != 1 {
		t.Errorf("Correct/Streak/BestStreak = %d/%d/%d, want 1/1/1", s.Correct, s.Streak, s.BestStreak)
	}
	if s.Incorrect != 0 {
		t.Errorf("Incorrect = %d, want 0", s.Incorrect)
	}
}

func TestRecordIncorrectResetsStreak(t *testing.T) {
	s := NewStats()
	q := problemgen.NewQuestion(3, 4)
	for range 3 {
		s.Record(q, true)
	}

	s.Record(q, false)

	if s.Streak != 0 {
		t.Errorf("Streak = %d, want 0", s.Streak)
	}
	if s.BestStreak != 3 {
		t.Errorf("BestStreak = %d, want 3", s.BestStreak)
	}
	if s.Incorrect != 1 {
		t.Errorf("Incorrect = %d, want 1", s.Incorrect)
	}
}

func TestBestStreakMonotone(t *testing.T) {
	s := NewStats()
	q := problemgen.NewQuestion(2, 2)
	pattern := []bool{true, true, true, false, true, false, true, true, true, true, false, true}

	best, run := 0, 0
	for i, ok := range pattern {
		prev := s.BestStreak
		s.Record(q, ok)
		if ok {
			run++
		} else {
			run = 0
		}
		best = max(best, run)
		if s.BestStreak < prev {
			t.Fatalf("step %d: BestStreak decreased %d -> %d", i, prev, s.BestStreak)
		}
		if s.BestStreak != best {
			t.Fatalf("step %d: BestStreak = %d, want %d", i, s.BestStreak, best)
		}
	}
}

func TestMasteryAttributedToCurrentTable(t *testing.T) {
	s := NewStats()

	// Four correct on table 3, the fifth on table 9.
	for range 4 {
		if out := s.Record(problemgen.NewQuestion(3, 2), true); out.NewlyMastered != 0 {
			t.Fatalf("mastered %d before streak reached %d", out.NewlyMastered, MasteryStreak)
		}
	}
	out := s.Record(problemgen.NewQuestion(9, 2), true)

	if out.NewlyMastered != 9 {
		t.Errorf("NewlyMastered = %d, want 9", out.NewlyMastered)
	}
	if s.Mastered(3) {
		t.Error("table 3 mastered, want only the in-flight table")
	}

	// Already mastered tables are not reported again.
	out = s.Record(problemgen.NewQuestion(9, 3), true)
	if out.NewlyMastered != 0 {
		t.Errorf("NewlyMastered = %d on repeat, want 0", out.NewlyMastered)
	}
	out = s.Record(problemgen.NewQuestion(4, 3), true)
	if out.NewlyMastered != 4 {
		t.Errorf("NewlyMastered = %d, want 4", out.NewlyMastered)
	}
	if got := s.MasteredTables(); !slices.Equal(got, []int{4, 9}) {
		t.Errorf("MasteredTables = %v, want [4 9]", got)
	}
}

func TestIncorrectKeepsMastery(t *testing.T) {
	s := NewStats()
	for range 5 {
		s.Record(problemgen.NewQuestion(6, 6), true)
	}
	s.Record(problemgen.NewQuestion(6, 7), false)
	if !s.Mastered(6) {
		t.Error("incorrect answer removed mastery")
	}
}

func TestRounds(t *testing.T) {
	q := problemgen.NewQuestion(5, 5)

	t.Run("perfect", func(t *testing.T) {
		s := NewStats()
		var out Outcome
		for i := range RoundSize {
			out = s.Record(q, true)
			if i < RoundSize-1 && out.RoundComplete {
				t.Fatalf("round complete after %d answers", i+1)
			}
		}
		if !out.RoundComplete || !out.PerfectRound {
			t.Errorf("final outcome = %+v, want complete and perfect", out)
		}
		if s.PerfectRounds != 1 {
			t.Errorf("PerfectRounds = %d, want 1", s.PerfectRounds)
		}

		// The next submission starts a new round.
		s.Record(q, true)
		if s.Round.Answered != 1 || s.Round.Correct != 1 {
			t.Errorf("Round = %+v, want 1/1", s.Round)
		}
	})

	t.Run("imperfect", func(t *testing.T) {
		s := NewStats()
		var out Outcome
		for i := range RoundSize {
			out = s.Record(q, i != 4)
		}
		if !out.RoundComplete || out.PerfectRound {
			t.Errorf("final outcome = %+v, want complete, not perfect", out)
		}
		if s.PerfectRounds != 0 {
			t.Errorf("PerfectRounds = %d, want 0", s.PerfectRounds)
		}
	})
}

func TestStartGame(t *testing.T) {
	tests := []struct {
		mode         Mode
		wantCorrect  int
		wantSessions int
	}{
		{ModePractice, 6, 0},
		{ModeQuiz, 0, 1},
		{ModeChallenge, 0, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := NewStats()
			for range 6 {
				s.Record(problemgen.NewQuestion(8, 2), true)
			}

			s.StartGame(tt.mode)

			if s.Correct != tt.wantCorrect {
				t.Errorf("Correct = %d, want %d", s.Correct, tt.wantCorrect)
			}
			if s.SessionsPlayed != tt.wantSessions {
				t.Errorf("SessionsPlayed = %d, want %d", s.SessionsPlayed, tt.wantSessions)
			}
			if s.Round != (Round{}) {
				t.Errorf("Round = %+v, want reset", s.Round)
			}
			if s.BestStreak != 6 {
				t.Errorf("BestStreak = %d, want 6", s.BestStreak)
			}
			if !s.Mastered(8) {
				t.Error("StartGame cleared mastered tables")
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range AllModes() {
		got, err := ParseMode(string(m))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMode("marathon"); err == nil {
		t.Error("ParseMode(marathon) = nil error")
	}
}

func TestStatsDataRoundTrip(t *testing.T) {
	s := NewStats()
	for range 7 {
		s.Record(problemgen.NewQuestion(12, 2), true)
	}
	s.Record(problemgen.NewQuestion(1, 2), false)
	s.SessionsPlayed = 3

	data := s.SnapshotData(9)
	if data.TotalBricks != 9 {
		t.Errorf("TotalBricks = %d, want 9", data.TotalBricks)
	}
	if !slices.Equal(data.TablesCompleted, []int{12}) {
		t.Errorf("TablesCompleted = %v, want [12]", data.TablesCompleted)
	}

	got := StatsFromData(data)
	if got.Correct != 7 || got.Incorrect != 1 || got.BestStreak != 7 || got.SessionsPlayed != 3 {
		t.Errorf("restored = %+v", got)
	}
	if !got.Mastered(12) {
		t.Error("restored stats lost mastery")
	}
}

func TestStatsFromDataDefaults(t *testing.T) {
	s := StatsFromData(nil)
	if s.Correct != 0 || len(s.TablesMastered) != 0 {
		t.Errorf("StatsFromData(nil) = %+v, want zero", s)
	}

	s = StatsFromData(&store.StatsData{Streak: 4, BestStreak: 2, TablesCompleted: []int{0, 5, 13}})
	if s.BestStreak != 4 {
		t.Errorf("BestStreak = %d, want 4", s.BestStreak)
	}
	if got := s.MasteredTables(); !slices.Equal(got, []int{5}) {
		t.Errorf("MasteredTables = %v, want [5]", got)
	}
}

func TestAccuracy(t *testing.T) {
	s := NewStats()
	if s.Accuracy() != 0 {
		t.Errorf("Accuracy with no answers = %v, want 0", s.Accuracy())
	}
	q := problemgen.NewQuestion(2, 3)
	s.Record(q, true)
	s.Record(q, true)
	s.Record(q, true)
	s.Record(q, false)
	if s.Accuracy() != 0.75 {
		t.Errorf("Accuracy = %v, want 0.75", s.Accuracy())
	}
}
