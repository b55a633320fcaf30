// Package home is the main menu shown while a player is logged in.
package home

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/achievements"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/router"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/screens/collection"
	"github.com/abhisek/brickmath/internal/screens/quiz"
	"github.com/abhisek/brickmath/internal/screens/tables"
	"github.com/abhisek/brickmath/internal/screens/workshop"
	"github.com/abhisek/brickmath/internal/ui/components"
	"github.com/abhisek/brickmath/internal/ui/layout"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

type statusMsg struct {
	text string
	err  error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	mgr          *profile.Manager
	login        func() screen.Screen
	menu         components.Menu
	status       string
	statusErr    bool
	confirmReset bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a HomeScreen. login builds the screen shown after logout.
func New(mgr *profile.Manager, login func() screen.Screen) *HomeScreen {
	h := &HomeScreen{mgr: mgr, login: login}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}
	play := func(m scoring.Mode) func() tea.Cmd {
		return push(func() screen.Screen { return quiz.New(mgr, m) })
	}

	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "Practice", Note: "answers are shown when you miss", Action: play(scoring.ModePractice)},
		{Label: "Quiz", Note: "a fresh score sheet", Action: play(scoring.ModeQuiz)},
		{Label: "Challenge", Note: "how long can your streak go?", Action: play(scoring.ModeChallenge)},
		{Label: "Builder", Action: push(func() screen.Screen { return workshop.New(mgr) })},
		{Label: "Collection", Action: push(func() screen.Screen { return collection.New(mgr) })},
		{Label: "Tables", Action: push(func() screen.Screen { return tables.New(mgr) })},
		{Label: "Save", Action: h.save},
		{Label: "Reset progress", Action: h.askReset},
		{Label: "Logout", Action: h.logout},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) save() tea.Cmd {
	return func() tea.Msg {
		if err := h.mgr.Save(context.Background()); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Progress saved."}
	}
}

func (h *HomeScreen) askReset() tea.Cmd {
	h.confirmReset = true
	return nil
}

func (h *HomeScreen) reset() tea.Cmd {
	return func() tea.Msg {
		if err := h.mgr.ResetProgress(context.Background()); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Progress reset. Time for a fresh start!"}
	}
}

func (h *HomeScreen) logout() tea.Cmd {
	return func() tea.Msg {
		err := h.mgr.Logout(context.Background())
		switch {
		case errors.Is(err, profile.ErrNotLoggedIn):
			// An earlier logout already won; its reset is on the way.
			return nil
		case err != nil:
			return statusMsg{err: err}
		}
		return router.ResetScreenMsg{Screen: h.login()}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		h.statusErr = msg.err != nil
		h.status = msg.text
		if msg.err != nil {
			h.status = msg.err.Error()
		}
		return h, nil

	case tea.KeyPressMsg:
		if h.confirmReset {
			h.confirmReset = false
			if msg.String() == "y" || msg.String() == "Y" {
				return h, h.reset()
			}
			h.status = ""
			return h, nil
		}
		h.status = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sess := h.mgr.Session()
	p, ok := h.mgr.Profile()
	if !ok || sess == nil {
		return ""
	}

	stats := sess.Stats()
	all := sess.Achievements()

	summary := lipgloss.JoinVertical(lipgloss.Left,
		RenderMascot(mascotFor(sess, stats)),
		"",
		theme.Title.Render(fmt.Sprintf("Hi, %s!", p.Name)),
		"",
		theme.Body.Render(fmt.Sprintf("Bricks        %d", sess.TotalBricks())),
		theme.Body.Render(fmt.Sprintf("Best streak   %d", stats.BestStreak)),
		theme.Body.Render(fmt.Sprintf("Builds        %d", len(sess.Builds()))),
		theme.Body.Render(fmt.Sprintf("Achievements  %d/%d", unlockedCount(all), len(all))),
		theme.Body.Render("Tables        "+tables.Describe(sess.SelectedTables())),
	)

	menu := h.menu.View()
	switch {
	case h.confirmReset:
		menu += "\n" + theme.Incorrect.Render("Reset all bricks, builds and achievements? (y/n)")
	case h.status != "" && h.statusErr:
		menu += "\n" + theme.Incorrect.Render(h.status)
	case h.status != "":
		menu += "\n" + theme.Correct.Render(h.status)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Card.Width(36).Render(summary),
		"   ",
		menu,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func unlockedCount(all []achievements.Achievement) int {
	n := 0
	for _, a := range all {
		if a.Unlocked {
			n++
		}
	}
	return n
}
