// Package login asks for the player's name and logs them in.
package login

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/router"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/ui/components"
	"github.com/abhisek/brickmath/internal/ui/layout"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// maxNameLen caps the typed name.
const maxNameLen = 24

type loginFailedMsg struct {
	err error
}

// LoginScreen reads a name and logs in through the profile manager. On
// success the stack is reset to the screen built by home.
type LoginScreen struct {
	mgr     *profile.Manager
	home    func() screen.Screen
	input   components.TextInput
	errMsg  string
	pending bool
}

var _ screen.Screen = (*LoginScreen)(nil)

// New creates a LoginScreen.
func New(mgr *profile.Manager, home func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		mgr:   mgr,
		home:  home,
		input: components.NewTextInput("your name", false, maxNameLen),
	}
}

func (s *LoginScreen) Title() string {
	return "Login"
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		s.pending = false
		if errors.Is(msg.err, profile.ErrEmptyName) {
			s.errMsg = "Please type your name first."
		} else {
			s.errMsg = "Could not log in: " + msg.err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
		s.errMsg = ""
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) submit() tea.Cmd {
	if s.pending {
		return nil
	}
	s.pending = true
	name := s.input.Value()
	return func() tea.Msg {
		if err := s.mgr.Login(context.Background(), name); err != nil {
			return loginFailedMsg{err: err}
		}
		return router.ResetScreenMsg{Screen: s.home()}
	}
}

func (s *LoginScreen) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("Welcome, builder!"),
		"",
		theme.Body.Render("What's your name?"),
		"",
		s.input.View(),
	)
	if s.errMsg != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Width(48).Render(body))
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Log in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
