// Package screen defines what the router stacks: one full-window view of
// the game such as login, home, a quiz or the builder.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/ui/layout"
)

// Screen is a view the router can push. The app frame draws the header with
// the player and brick total around it.
type Screen interface {
	// Init starts the screen when it becomes the top of the stack. Screens
	// that begin a game do it here, once.
	Init() tea.Cmd

	// Update handles a message. Navigation is requested by returning a
	// router message from the command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body for a width × height area below the header.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens whose keys differ from the
// default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
