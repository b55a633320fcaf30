// Package app wires the screens together into the Bubble Tea program.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/router"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/screens/home"
	"github.com/abhisek/brickmath/internal/screens/login"
	"github.com/abhisek/brickmath/internal/screens/welcome"
	"github.com/abhisek/brickmath/internal/ui/layout"
)

// Options configures Run.
type Options struct {
	Manager *profile.Manager
	Logger  zerolog.Logger

	// SkipSplash starts directly on the login or home screen.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	mgr    *profile.Manager
	width  int
	height int
}

// screens builds the login and home screens, which refer to each other.
type screens struct {
	mgr *profile.Manager
}

func (s screens) login() screen.Screen { return login.New(s.mgr, s.home) }
func (s screens) home() screen.Screen  { return home.New(s.mgr, s.login) }

// first returns the screen for the manager's current state.
func (s screens) first() screen.Screen {
	if s.mgr.State() == profile.LoggedIn {
		return s.home()
	}
	return s.login()
}

// newAppModel creates the root model. Logged-in players land on the home
// screen, everyone else on login.
func newAppModel(mgr *profile.Manager, splash bool) AppModel {
	s := screens{mgr: mgr}
	var root screen.Screen
	if splash {
		root = welcome.New(s.first)
	} else {
		root = s.first()
	}
	return AppModel{
		router: router.New(root),
		mgr:    mgr,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var player string
	var bricks int
	if p, ok := m.mgr.Profile(); ok {
		player = p.Name
		if sess := m.mgr.Session(); sess != nil {
			bricks = sess.TotalBricks()
		}
	}
	header := layout.RenderHeader(title, player, bricks, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits. A logged-in
// player is saved on the way out.
func Run(ctx context.Context, opts Options) error {
	defer opts.Manager.Close()

	p := tea.NewProgram(newAppModel(opts.Manager, !opts.SkipSplash), tea.WithContext(ctx))
	_, runErr := p.Run()
	if runErr != nil {
		opts.Logger.Error().Err(runErr).Msg("tui exited with error")
	}

	if opts.Manager.State() == profile.LoggedIn {
		if err := opts.Manager.Save(context.WithoutCancel(ctx)); err != nil {
			opts.Logger.Error().Err(err).Msg("save on exit")
			if runErr == nil {
				return fmt.Errorf("save on exit: %w", err)
			}
		}
	}

	if runErr != nil {
		return fmt.Errorf("run tui: %w", runErr)
	}
	return nil
}
