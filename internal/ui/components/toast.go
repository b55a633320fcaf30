package components

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/achievements"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// ToastDuration is how long an achievement notification stays visible.
const ToastDuration = 3 * time.Second

// toastSeq is shared by every Toast so an expiry message never matches a
// toast it was not scheduled for.
var toastSeq atomic.Int64

// ToastExpiredMsg hides the toast that was shown with Seq.
type ToastExpiredMsg struct {
	Seq int64
}

// Toast shows newly unlocked achievements for ToastDuration.
type Toast struct {
	items []achievements.Achievement
	seq   int64
}

// Show replaces the visible achievements and schedules their removal.
// It returns nil when there is nothing to show.
func (t *Toast) Show(items []achievements.Achievement) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	seq := toastSeq.Add(1)
	t.items = items
	t.seq = seq
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{Seq: seq}
	})
}

// Update hides the toast if msg is its expiry. It reports whether msg was
// consumed.
func (t *Toast) Update(msg tea.Msg) bool {
	m, ok := msg.(ToastExpiredMsg)
	if !ok {
		return false
	}
	if m.Seq == t.seq {
		t.items = nil
	}
	return true
}

// Visible reports whether any achievement is shown.
func (t Toast) Visible() bool {
	return len(t.items) > 0
}

// View renders the toast, or "" when hidden.
func (t Toast) View() string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, len(t.items))
	for i, a := range t.items {
		lines[i] = fmt.Sprintf("%s Achievement unlocked: %s  +%d bricks", a.Icon, a.Name, a.Reward)
	}
	return theme.Toast.Render(strings.Join(lines, "\n"))
}
