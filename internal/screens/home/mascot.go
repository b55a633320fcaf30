package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/game"
	"github.com/abhisek/brickmath/internal/scoring"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// MascotVariant selects the builder mascot's mood.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // on a mastery streak
	MascotEager                     // enough bricks to build something
)

const mascotIdle = `  ▄▄▄▄▄
┌───────┐
│ ◉   ◉ │
│   ▽   │
└─┬───┬─┘`

const mascotCelebrating = `  ▄▄▄▄▄
┌───────┐
│ ★   ★ │
│   ◡   │
└─┬───┬─┘
 \o/ \o/`

const mascotEager = `  ▄▄▄▄▄
┌───────┐
│ ◉   ◉ │ !
│   ○   │
└─┬───┬─┘`

// mascotFor picks the mood for the session's current state.
func mascotFor(sess *game.Session, stats scoring.Stats) MascotVariant {
	if stats.Streak >= scoring.MasteryStreak {
		return MascotCelebrating
	}
	for _, m := range builder.Catalog() {
		if sess.CanAfford(m) {
			return MascotEager
		}
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotEager:
		art = mascotEager
		fg = theme.Accent
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
