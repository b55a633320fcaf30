// Package quiz runs a game: one multiplication question at a time, with
// feedback, brick rewards and achievement notifications.
package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/game"
	"github.com/abhisek/brickmath/internal/problemgen"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/ui/components"
	"github.com/abhisek/brickmath/internal/ui/layout"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// QuizScreen asks questions in one game mode until the player leaves.
type QuizScreen struct {
	mgr  *profile.Manager
	sess *game.Session
	mode scoring.Mode

	question problemgen.Question
	input    components.TextInput
	toast    components.Toast

	// last is the outcome of the previous answer, shown as feedback.
	last     *game.Outcome
	revealed bool
	saveErr  error
	started  bool
}

type savedMsg struct {
	err error
}

var _ screen.Screen = (*QuizScreen)(nil)

// New creates a QuizScreen for the logged-in player. The game starts when
// the screen is pushed.
func New(mgr *profile.Manager, mode scoring.Mode) *QuizScreen {
	return &QuizScreen{
		mgr:   mgr,
		sess:  mgr.Session(),
		mode:  mode,
		input: components.NewTextInput("?", true, 4),
	}
}

func (s *QuizScreen) Title() string {
	return s.mode.DisplayName()
}

func (s *QuizScreen) Init() tea.Cmd {
	if !s.started && s.sess != nil {
		s.question = s.sess.StartGame(s.mode)
		s.started = true
	}
	return s.input.Init()
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.toast.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case savedMsg:
		s.saveErr = msg.err
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "tab", "?":
			if s.mode.RevealsAnswer() {
				s.revealed = true
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submit() tea.Cmd {
	if s.sess == nil || strings.TrimSpace(s.input.Value()) == "" {
		return nil
	}

	out, err := s.sess.SubmitAnswer(s.input.Value())
	if err != nil {
		// The question was consumed elsewhere; ask a fresh one.
		s.revealed = false
		s.question = s.sess.NextQuestion()
		s.input.Clear()
		return nil
	}

	s.last = &out
	s.revealed = false
	s.question = s.sess.NextQuestion()
	s.input.Clear()

	var cmds []tea.Cmd
	cmds = append(cmds, s.toast.Show(out.Unlocked))
	if len(out.Unlocked) > 0 {
		cmds = append(cmds, s.save())
	}
	return tea.Batch(cmds...)
}

// save persists right after an unlock so a crash cannot lose it.
func (s *QuizScreen) save() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: s.mgr.Save(context.Background())}
	}
}

func (s *QuizScreen) feedback() string {
	if s.last == nil {
		return theme.Hint.Render("Type your answer and press Enter.")
	}
	out := s.last

	var lines []string
	if out.Correct {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Correct! %s = %d   +%d bricks",
			out.Question.Text(), out.Question.Answer, out.BricksEarned())))
	} else if s.mode.RevealsAnswer() {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("Not quite. %s = %d",
			out.Question.Text(), out.Question.Answer)))
	} else {
		lines = append(lines, theme.Incorrect.Render("Not quite. Keep going!"))
	}

	if out.NewlyMastered != 0 {
		lines = append(lines, theme.Unlocked.Render(fmt.Sprintf("★ You mastered the %d times table!", out.NewlyMastered)))
	}
	if out.PerfectRound {
		lines = append(lines, theme.Unlocked.Render("Perfect round: 10 out of 10!"))
	} else if out.RoundComplete {
		lines = append(lines, theme.Body.Render("Round complete."))
	}
	return strings.Join(lines, "\n")
}

func (s *QuizScreen) View(width, height int) string {
	if s.sess == nil {
		return ""
	}
	stats := s.sess.Stats()

	round := components.ProgressBar{
		Label:     "Round",
		Value:     stats.Round.Answered,
		Max:       scoring.RoundSize,
		ShowCount: true,
		Width:     40,
	}
	if stats.Round.Complete() {
		round.Value = 0
	}

	statLine := theme.Hint.Render(fmt.Sprintf(
		"Correct %d   Wrong %d   Streak %d   Best %d   Accuracy %.0f%%",
		stats.Correct, stats.Incorrect, stats.Streak, stats.BestStreak, stats.Accuracy()*100,
	))

	question := theme.Question.Render(s.question.Text() + " = ") + s.input.View()
	if s.revealed {
		question += "   " + theme.Unlocked.Render(fmt.Sprintf("Answer: %d", s.question.Answer))
	}

	feedback := s.feedback()
	if s.saveErr != nil {
		feedback += "\n" + theme.Incorrect.Render("Saving failed: "+s.saveErr.Error())
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		question,
		"",
		feedback,
		"",
		round.View(),
		statLine,
		"",
		theme.Body.Render("Latest bricks: ")+components.RenderBrickRow(s.sess.Bricks(), 10),
	)

	sections := []string{theme.Card.Render(body)}
	if s.toast.Visible() {
		sections = append(sections, "", s.toast.View())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "0-9", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
	}
	if s.mode.RevealsAnswer() {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Show answer"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}
