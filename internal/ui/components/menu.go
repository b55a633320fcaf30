package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Note is rendered dimmed after the label.
type MenuItem struct {
	Label    string
	Note     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are skipped by the
// cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		Items:    items,
		Selected: selected,
	}
}

// Update handles keyboard navigation. Enter runs the selected item's action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		label := "    " + item.Label
		style := theme.Unselected
		switch {
		case item.Disabled:
			style = theme.Disabled
		case i == m.Selected:
			label = "  ▸ " + item.Label
			style = theme.Selected
		}
		b.WriteString(style.Render(label))
		if item.Note != "" {
			b.WriteString("  " + theme.Hint.Render(item.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}
