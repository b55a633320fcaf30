package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/game"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/store"
)

func newLoggedIn(t *testing.T) *profile.Manager {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	mgr := profile.NewManager(s.SnapshotRepo(),
		profile.WithGameOptions(game.WithRand(rand.NewPCG(1, 2))))
	t.Cleanup(mgr.Close)
	if err := mgr.Login(context.Background(), "Ana"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return mgr
}

func newQuiz(t *testing.T, mode scoring.Mode) (*QuizScreen, *profile.Manager) {
	t.Helper()
	mgr := newLoggedIn(t)
	s := New(mgr, mode)
	s.Init()
	return s, mgr
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestTitleIsMode(t *testing.T) {
	s, _ := newQuiz(t, scoring.ModeChallenge)
	if s.Title() != "Challenge" {
		t.Errorf("Title = %q, want Challenge", s.Title())
	}
}

func TestInitStartsGame(t *testing.T) {
	s, mgr := newQuiz(t, scoring.ModeQuiz)

	if s.question.Answer == 0 {
		t.Fatal("no question after Init")
	}
	if got := mgr.Session().Stats().SessionsPlayed; got != 1 {
		t.Errorf("SessionsPlayed = %d, want 1", got)
	}

	// Re-running Init must not start a second game.
	s.Init()
	if got := mgr.Session().Stats().SessionsPlayed; got != 1 {
		t.Errorf("SessionsPlayed after second Init = %d, want 1", got)
	}
}

func TestCorrectAnswer(t *testing.T) {
	s, mgr := newQuiz(t, scoring.ModePractice)
	q := s.question

	s.input.Model.SetValue(strconv.Itoa(q.Answer))
	_, cmd := s.Update(enter())

	if s.last == nil || !s.last.Correct {
		t.Fatal("expected a correct outcome")
	}
	if cmd == nil {
		t.Error("expected a toast command for first_correct")
	}
	if !s.toast.Visible() {
		t.Error("toast not shown after the first correct answer")
	}
	// One answer brick plus the first_correct reward.
	if got := mgr.Session().TotalBricks(); got != 2 {
		t.Errorf("TotalBricks = %d, want 2", got)
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
	if !strings.Contains(s.feedback(), "Correct!") {
		t.Errorf("feedback = %q", s.feedback())
	}
}

func TestWrongAnswerReveal(t *testing.T) {
	tests := []struct {
		mode   scoring.Mode
		reveal bool
	}{
		{scoring.ModePractice, true},
		{scoring.ModeQuiz, false},
		{scoring.ModeChallenge, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			s, mgr := newQuiz(t, tc.mode)
			q := s.question

			s.input.Model.SetValue(strconv.Itoa(q.Answer + 1))
			s.Update(enter())

			if s.last == nil || s.last.Correct {
				t.Fatal("expected an incorrect outcome")
			}
			want := fmt.Sprintf("= %d", q.Answer)
			if got := strings.Contains(s.feedback(), want); got != tc.reveal {
				t.Errorf("feedback reveals answer = %v, want %v (%q)", got, tc.reveal, s.feedback())
			}
			if mgr.Session().TotalBricks() != 0 {
				t.Error("wrong answer minted bricks")
			}
		})
	}
}

func TestEmptyEnterIgnored(t *testing.T) {
	s, _ := newQuiz(t, scoring.ModeQuiz)
	q := s.question

	if _, cmd := s.Update(enter()); cmd != nil {
		t.Error("empty submit produced a command")
	}
	if s.last != nil {
		t.Error("empty submit recorded an outcome")
	}
	if s.question != q {
		t.Error("empty submit changed the question")
	}
}

func TestViewShowsQuestion(t *testing.T) {
	s, _ := newQuiz(t, scoring.ModeQuiz)
	view := s.View(100, 30)
	if !strings.Contains(view, s.question.Text()) {
		t.Errorf("view missing question %q", s.question.Text())
	}
	if !strings.Contains(view, "Streak") {
		t.Error("view missing stats line")
	}
}

func tab() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyTab}
}

func TestShowAnswerInPractice(t *testing.T) {
	s, mgr := newQuiz(t, scoring.ModePractice)
	q := s.question
	before := mgr.Session().Stats()

	if _, cmd := s.Update(tab()); cmd != nil {
		t.Error("show answer produced a command")
	}
	if !s.revealed {
		t.Fatal("answer not revealed")
	}
	if s.question != q {
		t.Error("show answer changed the question")
	}
	if after := mgr.Session().Stats(); after.Correct != before.Correct || after.Incorrect != before.Incorrect {
		t.Errorf("show answer changed counters: %+v -> %+v", before, after)
	}
	if want := fmt.Sprintf("Answer: %d", q.Answer); !strings.Contains(s.View(100, 30), want) {
		t.Errorf("view missing %q", want)
	}

	// The reveal belongs to one question only.
	s.input.Model.SetValue(strconv.Itoa(q.Answer))
	s.Update(enter())
	if s.revealed {
		t.Error("reveal carried over to the next question")
	}
}

func TestShowAnswerOnlyInPractice(t *testing.T) {
	for _, mode := range []scoring.Mode{scoring.ModeQuiz, scoring.ModeChallenge} {
		t.Run(string(mode), func(t *testing.T) {
			s, _ := newQuiz(t, mode)
			s.Update(tab())
			if s.revealed {
				t.Error("answer revealed outside practice")
			}
			if strings.Contains(s.View(100, 30), "Answer:") {
				t.Error("view shows the answer outside practice")
			}
		})
	}
}

func TestSaveFailureShown(t *testing.T) {
	s, _ := newQuiz(t, scoring.ModeQuiz)

	s.Update(savedMsg{err: errors.New("disk full")})
	if view := s.View(100, 30); !strings.Contains(view, "Saving failed: disk full") {
		t.Errorf("view missing save error: %q", view)
	}

	s.Update(savedMsg{})
	if strings.Contains(s.View(100, 30), "Saving failed") {
		t.Error("save error still shown after a good save")
	}
}
