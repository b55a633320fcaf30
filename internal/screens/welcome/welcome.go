// Package welcome shows the start-up splash: a tower of bricks that stacks
// up one row at a time, then the banner.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/router"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	rowInterval  = 300 * time.Millisecond
	totalDur     = 2400 * time.Millisecond
)

// towerRows is the number of brick rows in the splash tower.
const towerRows = 6

type tickMsg time.Time

// WelcomeScreen stacks a brick tower, shows the banner and waits for a key
// before handing over to the next screen.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with the screen built by
// next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// rows returns how many tower rows are stacked so far.
func (w *WelcomeScreen) rows() int {
	return min(int(w.elapsed/rowInterval), towerRows)
}

// done reports whether the tower is complete and the banner is showing.
func (w *WelcomeScreen) done() bool {
	return w.rows() == towerRows
}

func (w *WelcomeScreen) View(width, height int) string {
	palette := bricks.Palette()

	// Rows stack from the bottom; row i uses two palette colors, offset
	// every other row like a brick wall.
	tower := make([]string, towerRows)
	for i := range towerRows {
		if i < towerRows-w.rows() {
			tower[i] = ""
			continue
		}
		var b strings.Builder
		if i%2 == 1 {
			b.WriteString("  ")
		}
		for j := range 4 {
			c := palette[(i*2+j)%len(palette)]
			b.WriteString(theme.BrickStyle(c).Render("████"))
			b.WriteString(" ")
		}
		tower[i] = b.String()
	}

	sections := []string{strings.Join(tower, "\n")}

	if w.done() {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Answer times tables. Earn bricks. Build cool stuff!"),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
