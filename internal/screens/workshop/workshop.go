// Package workshop is the builder screen: browse the model catalog and
// spend bricks to build one.
package workshop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/profile"
	"github.com/abhisek/brickmath/internal/screen"
	"github.com/abhisek/brickmath/internal/ui/components"
	"github.com/abhisek/brickmath/internal/ui/layout"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

type savedMsg struct {
	err error
}

// WorkshopScreen lists every model with its cost and whether the player can
// afford it. Enter builds the selected model.
type WorkshopScreen struct {
	mgr    *profile.Manager
	models []builder.Model
	cursor int
	toast  components.Toast

	message string
	isError bool
}

var _ screen.Screen = (*WorkshopScreen)(nil)

// New creates a WorkshopScreen.
func New(mgr *profile.Manager) *WorkshopScreen {
	return &WorkshopScreen{
		mgr:    mgr,
		models: builder.Catalog(),
	}
}

func (s *WorkshopScreen) Title() string {
	return "Builder"
}

func (s *WorkshopScreen) Init() tea.Cmd {
	return nil
}

func (s *WorkshopScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.toast.Update(msg) {
		return s, nil
	}

	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			s.message = "Built, but saving failed: " + msg.err.Error()
			s.isError = true
		}

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
			s.message = ""
		case "down", "j":
			s.cursor = min(s.cursor+1, len(s.models)-1)
			s.message = ""
		case "enter":
			return s, s.build()
		}
	}
	return s, nil
}

func (s *WorkshopScreen) build() tea.Cmd {
	sess := s.mgr.Session()
	if sess == nil {
		return nil
	}
	m := s.models[s.cursor]

	res, err := sess.Build(m.ID)
	if err != nil {
		s.isError = true
		var short *bricks.InsufficientBricksError
		if errors.As(err, &short) {
			s.message = short.Error()
		} else {
			s.message = err.Error()
		}
		return nil
	}

	s.isError = false
	s.message = fmt.Sprintf("You built the %s! +%d bonus bricks", res.Model.Name, len(res.Bonus))
	return tea.Batch(s.toast.Show(res.Unlocked), s.save())
}

func (s *WorkshopScreen) save() tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: s.mgr.Save(context.Background())}
	}
}

func (s *WorkshopScreen) View(width, height int) string {
	sess := s.mgr.Session()
	if sess == nil {
		return ""
	}
	built := builder.CountByModel(sess.Builds())

	var list strings.Builder
	for i, m := range s.models {
		afford := theme.Correct.Render("✓")
		if !sess.CanAfford(m) {
			afford = theme.Disabled.Render(fmt.Sprintf("need %d more", m.Cost-sess.TotalBricks()))
		}
		line := fmt.Sprintf("%s %-14s %3d bricks  %-6s", m.Icon, m.Name, m.Cost, m.Difficulty.DisplayName())
		style := theme.Unselected
		prefix := "  "
		if i == s.cursor {
			style = theme.Selected
			prefix = "▸ "
		}
		list.WriteString(style.Render(prefix+line) + "  " + afford)
		if n := built[m.ID]; n > 0 {
			list.WriteString(theme.Hint.Render(fmt.Sprintf("  built ×%d", n)))
		}
		list.WriteString("\n")
	}

	m := s.models[s.cursor]
	detail := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render(m.Icon+" "+m.Name),
		theme.Hint.Render(m.Description),
		"",
		components.RenderPattern(m),
		"",
		theme.Body.Render(fmt.Sprintf("Cost %d   Bonus +%d", m.Cost, m.Bonus())),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		list.String(),
		"  ",
		theme.Card.Render(detail),
	)

	sections := []string{body}
	if s.message != "" {
		style := theme.Correct
		if s.isError {
			style = theme.Incorrect
		}
		sections = append(sections, "", style.Render(s.message))
	}
	if s.toast.Visible() {
		sections = append(sections, "", s.toast.View())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (s *WorkshopScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Build"},
		{Key: "Esc", Description: "Back"},
	}
}
