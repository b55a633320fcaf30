// Package tables lets the player pick which times tables questions are
// drawn from.
package tables

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/problemgen"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/ui/layout"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// columns of the table grid.
const columns = 4

type toggledMsg struct {
	err error
}

// TablesScreen shows tables 1-12 in a grid. Space or Enter toggles the
// table under the cursor and saves the selection.
type TablesScreen struct {
	mgr    *profile.Manager
	cursor int // index into 0..11
	errMsg string
}

var _ screen.Screen = (*TablesScreen)(nil)

// New creates a TablesScreen.
func New(mgr *profile.Manager) *TablesScreen {
	return &TablesScreen{mgr: mgr}
}

// Describe summarizes a selection for display; an empty one means every
// table.
func Describe(selected []int) string {
	return problemgen.FormatTables(selected, "all")
}

func (s *TablesScreen) Title() string {
	return "Tables"
}

func (s *TablesScreen) Init() tea.Cmd {
	return nil
}

func (s *TablesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case toggledMsg:
		s.errMsg = ""
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}

	case tea.KeyPressMsg:
		last := problemgen.MaxTable - problemgen.MinTable
		switch msg.String() {
		case "left", "h":
			s.cursor = max(s.cursor-1, 0)
		case "right", "l":
			s.cursor = min(s.cursor+1, last)
		case "up", "k":
			if s.cursor-columns >= 0 {
				s.cursor -= columns
			}
		case "down", "j":
			if s.cursor+columns <= last {
				s.cursor += columns
			}
		case "space", " ", "enter":
			return s, s.toggle(problemgen.MinTable + s.cursor)
		}
	}
	return s, nil
}

func (s *TablesScreen) toggle(n int) tea.Cmd {
	return func() tea.Msg {
		return toggledMsg{err: s.mgr.ToggleTable(context.Background(), n)}
	}
}

func (s *TablesScreen) View(width, height int) string {
	sess := s.mgr.Session()
	if sess == nil {
		return ""
	}
	selected := sess.SelectedTables()
	stats := sess.Stats()

	var rows []string
	var row []string
	for i, n := range problemgen.AllTables() {
		mark := "[ ]"
		if slices.Contains(selected, n) {
			mark = "[x]"
		}
		cell := fmt.Sprintf("%s %2d×", mark, n)
		if stats.Mastered(n) {
			cell += " ★"
		} else {
			cell += "  "
		}

		style := theme.Unselected
		if i == s.cursor {
			style = theme.Selected
		}
		row = append(row, style.Render(cell))
		if len(row) == columns {
			rows = append(rows, strings.Join(row, "    "))
			row = nil
		}
	}

	body := []string{
		theme.Title.Render("Pick your tables"),
		"",
		strings.Join(rows, "\n\n"),
		"",
		theme.Hint.Render("Practising: " + Describe(selected) + "   ★ mastered"),
	}
	if s.errMsg != "" {
		body = append(body, "", theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
}

func (s *TablesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Space", Description: "Toggle"},
		{Key: "Esc", Description: "Back"},
	}
}
