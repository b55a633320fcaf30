package game

import (
	"errors"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/store"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testOpts() []Option {
	return []Option{
		WithRand(rand.NewPCG(7, 11)),
		WithClock(func() time.Time { return fixedNow }),
	}
}

func newTestSession(snap *store.Snapshot) *Session {
	return Restore(snap, testOpts()...)
}

// answer draws a question and submits a right or wrong answer for it.
func answer(t *testing.T, s *Session, correct bool) Outcome {
	t.Helper()
	q := s.NextQuestion()
	input := strconv.Itoa(q.Answer)
	if !correct {
		input = strconv.Itoa(q.Answer + 1)
	}
	out, err := s.SubmitAnswer(input)
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if out.Correct != correct {
		t.Fatalf("Correct = %v, want %v", out.Correct, correct)
	}
	return out
}

func withBricks(n int) *store.Snapshot {
	data := make([]store.BrickData, n)
	for i := range data {
		data[i] = store.BrickData{
			ID:        "seed-" + strconv.Itoa(i),
			Color:     "red",
			Size:      "normal",
			EarnedFor: "seed",
			Timestamp: fixedNow,
		}
	}
	return &store.Snapshot{Bricks: data}
}

func unlockedIDs(o Outcome) []string {
	var ids []string
	for _, a := range o.Unlocked {
		ids = append(ids, a.ID)
	}
	return ids
}

func assertLedgerConsistent(t *testing.T, s *Session) {
	t.Helper()
	if s.TotalBricks() != len(s.Bricks()) {
		t.Errorf("TotalBricks = %d, ledger has %d", s.TotalBricks(), len(s.Bricks()))
	}
	if got := s.Export().Stats.TotalBricks; got != s.TotalBricks() {
		t.Errorf("exported totalBricks = %d, want %d", got, s.TotalBricks())
	}
}

func TestFiveStreakOnTableSeven(t *testing.T) {
	s := newTestSession(nil)
	s.SetSelectedTables([]int{7})

	var unlocked []string
	for range 5 {
		out := answer(t, s, true)
		if out.Question.Multiplicand != 7 {
			t.Fatalf("multiplicand = %d, want 7", out.Question.Multiplicand)
		}
		if out.Brick == nil || out.Brick.Size != bricks.SizeNormal {
			t.Fatalf("Brick = %+v, want a normal brick", out.Brick)
		}
		unlocked = append(unlocked, unlockedIDs(out)...)
	}

	st := s.Stats()
	if st.Streak != 5 || st.BestStreak != 5 {
		t.Errorf("Streak/BestStreak = %d/%d, want 5/5", st.Streak, st.BestStreak)
	}
	if !st.Mastered(7) {
		t.Error("table 7 not mastered")
	}
	if !slices.Equal(unlocked, []string{"first_correct", "streak_5"}) {
		t.Errorf("unlocked = %v, want [first_correct streak_5]", unlocked)
	}
	// 5 answer bricks + 1 for first_correct + 3 for streak_5.
	if s.TotalBricks() != 9 {
		t.Errorf("TotalBricks = %d, want 9", s.TotalBricks())
	}
	assertLedgerConsistent(t, s)
}

func TestFiveStreakWithFirstCorrectAlreadyUnlocked(t *testing.T) {
	at := fixedNow.Add(-time.Hour)
	s := newTestSession(&store.Snapshot{
		Achievements: []store.AchievementData{
			{ID: "first_correct", Unlocked: true, Progress: 1, MaxProgress: 1, UnlockedAt: &at},
		},
	})
	s.SetSelectedTables([]int{7})

	for range 5 {
		answer(t, s, true)
	}

	if s.TotalBricks() != 8 {
		t.Errorf("TotalBricks = %d, want 8", s.TotalBricks())
	}
}

func TestWrongAnswer(t *testing.T) {
	s := newTestSession(nil)
	answer(t, s, true)
	answer(t, s, true)

	out := answer(t, s, false)

	if out.Brick != nil {
		t.Error("wrong answer minted a brick")
	}
	st := s.Stats()
	if st.Streak != 0 || st.BestStreak != 2 || st.Incorrect != 1 {
		t.Errorf("Streak/BestStreak/Incorrect = %d/%d/%d, want 0/2/1", st.Streak, st.BestStreak, st.Incorrect)
	}
}

func TestNonNumericAnswerIsIncorrect(t *testing.T) {
	s := newTestSession(nil)
	s.NextQuestion()

	out, err := s.SubmitAnswer("twelve")
	if err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if out.Correct {
		t.Error("non-numeric answer accepted")
	}
	if s.Stats().Incorrect != 1 {
		t.Errorf("Incorrect = %d, want 1", s.Stats().Incorrect)
	}
}

func TestSubmitWithoutQuestion(t *testing.T) {
	s := newTestSession(nil)
	if _, err := s.SubmitAnswer("4"); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("SubmitAnswer with no question = %v, want ErrNoQuestion", err)
	}

	// A question is consumed by its answer.
	answer(t, s, true)
	if _, err := s.SubmitAnswer("4"); !errors.Is(err, ErrNoQuestion) {
		t.Errorf("second SubmitAnswer = %v, want ErrNoQuestion", err)
	}
	if s.Stats().Correct != 1 {
		t.Errorf("Correct = %d, want 1", s.Stats().Correct)
	}
}

func TestBuildInsufficient(t *testing.T) {
	s := newTestSession(withBricks(10))
	before := s.Bricks()

	_, err := s.Build("car")

	var ie *bricks.InsufficientBricksError
	if !errors.As(err, &ie) {
		t.Fatalf("Build(car) error = %v, want *InsufficientBricksError", err)
	}
	if ie.Need != 12 || ie.Have != 10 {
		t.Errorf("Need/Have = %d/%d, want 12/10", ie.Need, ie.Have)
	}
	if !errors.Is(err, bricks.ErrInsufficientBricks) {
		t.Error("error does not match ErrInsufficientBricks")
	}
	if !slices.Equal(s.Bricks(), before) {
		t.Error("failed build changed the ledger")
	}
	if len(s.Builds()) != 0 {
		t.Errorf("Builds = %d, want 0", len(s.Builds()))
	}
}

func TestBuildExact(t *testing.T) {
	s := newTestSession(withBricks(15))

	res, err := s.Build("house")
	if err != nil {
		t.Fatalf("Build(house): %v", err)
	}

	if len(res.Bonus) != 3 {
		t.Errorf("bonus bricks = %d, want 3", len(res.Bonus))
	}
	for _, b := range res.Bonus {
		if b.Size != bricks.SizeLarge || b.Reason != "Building Bonus: Cozy House" {
			t.Errorf("bonus brick = %+v", b)
		}
	}
	if s.TotalBricks() != 3 {
		t.Errorf("TotalBricks = %d, want 3", s.TotalBricks())
	}
	builds := s.Builds()
	if len(builds) != 1 || builds[0].ModelID != "house" || builds[0].BricksUsed != 15 {
		t.Errorf("Builds = %+v", builds)
	}
	if !builds[0].CompletedAt.Equal(fixedNow) {
		t.Errorf("CompletedAt = %v, want %v", builds[0].CompletedAt, fixedNow)
	}
	assertLedgerConsistent(t, s)
}

func TestBuildUnknownModel(t *testing.T) {
	s := newTestSession(withBricks(50))
	if _, err := s.Build("spaceship"); !errors.Is(err, builder.ErrUnknownModel) {
		t.Errorf("Build(spaceship) = %v, want ErrUnknownModel", err)
	}
	if s.TotalBricks() != 50 {
		t.Errorf("TotalBricks = %d, want 50", s.TotalBricks())
	}
}

func TestMasterBuilder(t *testing.T) {
	s := newTestSession(withBricks(50))

	var unlocked []string
	for range 5 {
		res, err := s.Build("dog")
		if err != nil {
			t.Fatalf("Build(dog): %v", err)
		}
		for _, a := range res.Unlocked {
			unlocked = append(unlocked, a.ID)
		}
	}

	if !slices.Contains(unlocked, "master_builder") {
		t.Errorf("unlocked = %v, want master_builder", unlocked)
	}
	// 50 - 5×10 + 5×2 bonus, plus 3 for brick_collector after the first
	// build and 8 for master_builder.
	if s.TotalBricks() != 21 {
		t.Errorf("TotalBricks = %d, want 21", s.TotalBricks())
	}
}

func TestHundredCorrect(t *testing.T) {
	s := newTestSession(nil)
	s.SetSelectedTables([]int{7})

	champion := 0
	perfect := 0
	for range 100 {
		out := answer(t, s, true)
		for _, a := range out.Unlocked {
			if a.ID == "math_champion" {
				champion++
			}
		}
		if out.PerfectRound {
			perfect++
		}
	}

	if champion != 1 {
		t.Errorf("math_champion unlocked %d times, want 1", champion)
	}
	if perfect != 10 || s.Stats().PerfectRounds != 10 {
		t.Errorf("perfect rounds = %d (stats %d), want 10", perfect, s.Stats().PerfectRounds)
	}
	// 100 answer bricks + rewards: first_correct 1, streak_5 3, streak_10 5,
	// perfect_round 4, speed_demon 6, brick_collector 3, math_champion 10.
	if s.TotalBricks() != 132 {
		t.Errorf("TotalBricks = %d, want 132", s.TotalBricks())
	}
	assertLedgerConsistent(t, s)

	// One more correct answer unlocks nothing new.
	if out := answer(t, s, true); len(out.Unlocked) != 0 {
		t.Errorf("unlocked after 101 = %v, want none", unlockedIDs(out))
	}
}

func TestRewardBricksCascade(t *testing.T) {
	s := newTestSession(withBricks(23))

	out := answer(t, s, true)

	// 23 + 1 answer brick + 1 first_correct reaches 25, unlocking
	// brick_collector in the same submission.
	if got := unlockedIDs(out); !slices.Equal(got, []string{"first_correct", "brick_collector"}) {
		t.Errorf("unlocked = %v, want [first_correct brick_collector]", got)
	}
	if out.RewardBricks != 4 {
		t.Errorf("RewardBricks = %d, want 4", out.RewardBricks)
	}
	if out.BricksEarned() != 5 {
		t.Errorf("BricksEarned = %d, want 5", out.BricksEarned())
	}
	if s.TotalBricks() != 28 {
		t.Errorf("TotalBricks = %d, want 28", s.TotalBricks())
	}
}

func TestStartGame(t *testing.T) {
	s := newTestSession(nil)
	for range 3 {
		answer(t, s, true)
	}

	q := s.StartGame(scoring.ModeQuiz)

	if cur, ok := s.CurrentQuestion(); !ok || cur != q {
		t.Errorf("CurrentQuestion = %v/%v, want %v", cur, ok, q)
	}
	st := s.Stats()
	if st.Correct != 0 || st.Streak != 0 || st.SessionsPlayed != 1 || st.BestStreak != 3 {
		t.Errorf("stats after quiz start = %+v", st)
	}
	if s.Mode() != scoring.ModeQuiz {
		t.Errorf("Mode = %s, want quiz", s.Mode())
	}
	if s.TotalBricks() != 4 {
		t.Errorf("TotalBricks = %d, want 4 (bricks survive a new game)", s.TotalBricks())
	}
}

func TestToggleTable(t *testing.T) {
	s := newTestSession(nil)

	for _, n := range []int{9, 3, 12} {
		if err := s.ToggleTable(n); err != nil {
			t.Fatalf("ToggleTable(%d): %v", n, err)
		}
	}
	if got := s.SelectedTables(); !slices.Equal(got, []int{3, 9, 12}) {
		t.Errorf("SelectedTables = %v, want [3 9 12]", got)
	}
	if err := s.ToggleTable(9); err != nil {
		t.Fatalf("ToggleTable(9): %v", err)
	}
	if got := s.SelectedTables(); !slices.Equal(got, []int{3, 12}) {
		t.Errorf("SelectedTables = %v, want [3 12]", got)
	}
	if err := s.ToggleTable(13); err == nil {
		t.Error("ToggleTable(13) = nil, want error")
	}

	for range 20 {
		q := s.NextQuestion()
		if q.Multiplicand != 3 && q.Multiplicand != 12 {
			t.Fatalf("multiplicand %d outside selection", q.Multiplicand)
		}
	}
}

func TestResetProgress(t *testing.T) {
	s := newTestSession(nil)
	s.SetSelectedTables([]int{4})
	for range 6 {
		answer(t, s, true)
	}

	s.ResetProgress()

	st := s.Stats()
	if st.Correct != 0 || st.BestStreak != 0 || len(st.TablesMastered) != 0 {
		t.Errorf("stats after reset = %+v", st)
	}
	if s.TotalBricks() != 0 || len(s.Builds()) != 0 {
		t.Errorf("ledger/builds after reset = %d/%d", s.TotalBricks(), len(s.Builds()))
	}
	for _, a := range s.Achievements() {
		if a.Unlocked || a.Progress != 0 {
			t.Errorf("%s not reset", a.ID)
		}
	}
	if got := s.SelectedTables(); !slices.Equal(got, []int{4}) {
		t.Errorf("SelectedTables = %v, want [4]", got)
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	s := newTestSession(withBricks(20))
	s.SetSelectedTables([]int{2, 5})
	for range 7 {
		answer(t, s, true)
	}
	answer(t, s, false)
	if _, err := s.Build("car"); err != nil {
		t.Fatalf("Build(car): %v", err)
	}

	snap := s.Export()
	restored := newTestSession(snap)

	if !slices.Equal(restored.Bricks(), s.Bricks()) {
		t.Error("ledger order not preserved")
	}
	if got, want := restored.Stats(), s.Stats(); got.Correct != want.Correct ||
		got.Incorrect != want.Incorrect || got.BestStreak != want.BestStreak ||
		!slices.Equal(got.MasteredTables(), want.MasteredTables()) {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
	if !slices.Equal(restored.Builds(), s.Builds()) {
		t.Errorf("builds = %+v, want %+v", restored.Builds(), s.Builds())
	}
	if !slices.Equal(restored.SelectedTables(), []int{2, 5}) {
		t.Errorf("SelectedTables = %v, want [2 5]", restored.SelectedTables())
	}
	orig := s.Achievements()
	for i, a := range restored.Achievements() {
		if a.ID != orig[i].ID || a.Unlocked != orig[i].Unlocked || a.Progress != orig[i].Progress {
			t.Errorf("achievement %s = %d/%v, want %d/%v", a.ID, a.Progress, a.Unlocked, orig[i].Progress, orig[i].Unlocked)
		}
	}
}

func TestRestoreIgnoresStoredTotal(t *testing.T) {
	snap := withBricks(4)
	snap.Stats = &store.StatsData{TotalBricks: 99}

	s := newTestSession(snap)

	if s.TotalBricks() != 4 {
		t.Errorf("TotalBricks = %d, want 4", s.TotalBricks())
	}
	assertLedgerConsistent(t, s)
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestSession(nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			q := s.NextQuestion()
			_, _ = s.SubmitAnswer(strconv.Itoa(q.Answer))
		}
	}()
	go func() {
		defer wg.Done()
		for range 200 {
			snap := s.Export()
			if snap.Stats.TotalBricks != len(snap.Bricks) {
				t.Errorf("export totalBricks %d != ledger %d", snap.Stats.TotalBricks, len(snap.Bricks))
				return
			}
		}
	}()
	wg.Wait()
}
