// Package collection shows what the player has earned: bricks by size and
// color, achievement progress and finished builds.
package collection

import (
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

type tab int

const (
	tabBricks tab = iota
	tabAchievements
	tabBuilds
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabBricks:
		return "Bricks"
	case tabAchievements:
		return "Achievements"
	default:
		return "Builds"
	}
}

// CollectionScreen has one tab per kind of collectible.
type CollectionScreen struct {
	mgr *profile.Manager
	tab tab
}

var _ screen.Screen = (*CollectionScreen)(nil)

// New creates a CollectionScreen.
func New(mgr *profile.Manager) *CollectionScreen {
	return &CollectionScreen{mgr: mgr}
}

func (s *CollectionScreen) Title() string {
	return "Collection"
}

func (s *CollectionScreen) Init() tea.Cmd {
	return nil
}

func (s *CollectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "right", "l":
			s.tab = (s.tab + 1) % tabCount
		case "shift+tab", "left", "h":
			s.tab = (s.tab + tabCount - 1) % tabCount
		}
	}
	return s, nil
}

func (s *CollectionScreen) View(width, height int) string {
	if s.mgr.Session() == nil {
		return ""
	}

	tabs := make([]string, tabCount)
	for t := range tabCount {
		style := theme.Unselected
		if t == s.tab {
			style = theme.Selected.Underline(true)
		}
		tabs[t] = style.Render(t.String())
	}

	var body string
	switch s.tab {
	case tabBricks:
		body = s.bricksView()
	case tabAchievements:
		body = s.achievementsView()
	default:
		body = s.buildsView()
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "   "),
		"",
		body,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}

func (s *CollectionScreen) bricksView() string {
	sess := s.mgr.Session()
	bySize, byColor := sess.BrickCounts()

	lines := []string{theme.Body.Render(fmt.Sprintf("%d bricks in total", sess.TotalBricks())), ""}
	for _, size := range bricks.AllSizes() {
		lines = append(lines, fmt.Sprintf("%-8s %s %d",
			size.DisplayName(), components.BrickGlyph(size), bySize[size]))
	}
	lines = append(lines, "")

	var colors []string
	for _, c := range bricks.Palette() {
		colors = append(colors, theme.BrickStyle(c).Render(fmt.Sprintf("██ %-7s %3d", c.DisplayName(), byColor[c])))
		if len(colors) == 2 {
			lines = append(lines, strings.Join(colors, "    "))
			colors = nil
		}
	}
	if len(colors) > 0 {
		lines = append(lines, strings.Join(colors, "    "))
	}
	return strings.Join(lines, "\n")
}

func (s *CollectionScreen) achievementsView() string {
	var lines []string
	for _, a := range s.mgr.Session().Achievements() {
		name := theme.Body.Render(fmt.Sprintf("%s %-16s", a.Icon, a.Name))
		if a.Unlocked {
			name = theme.Unlocked.Render(fmt.Sprintf("%s %-16s", a.Icon, a.Name))
		}
		bar := components.ProgressBar{Value: a.Progress, Max: a.MaxProgress, ShowCount: true, Width: 24}
		lines = append(lines, name+" "+bar.View()+"  "+theme.Hint.Render(fmt.Sprintf("+%d", a.Reward)))
	}
	return strings.Join(lines, "\n")
}

func (s *CollectionScreen) buildsView() string {
	builds := s.mgr.Session().Builds()
	if len(builds) == 0 {
		return theme.Hint.Render("Nothing built yet. Visit the Builder!")
	}

	counts := builder.CountByModel(builds)
	var lines []string
	for _, m := range builder.Catalog() {
		if counts[m.ID] == 0 {
			continue
		}
		lines = append(lines, theme.Body.Render(fmt.Sprintf("%s %-14s ×%d", m.Icon, m.Name, counts[m.ID])))
	}

	last := builds[len(builds)-1]
	lines = append(lines, "", theme.Hint.Render(fmt.Sprintf("Latest: %s on %s",
		last.Name(), last.CompletedAt.Local().Format("Jan 2, 15:04"))))
	return strings.Join(lines, "\n")
}

func (s *CollectionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next tab"},
		{Key: "Esc", Description: "Back"},
	}
}
