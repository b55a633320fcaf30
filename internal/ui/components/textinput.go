package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/brickmath/internal/ui/theme"
)

// TextInput wraps bubbles/textinput. With NumericOnly set, printable keys
// other than digits and a leading minus are dropped.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	submitted   bool
	valid       bool
}

// NewTextInput creates a focused text input. charLimit <= 0 means no limit.
func NewTextInput(placeholder string, numericOnly bool, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
	}
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			key := kmsg.String()
			if len(key) == 1 && (key[0] < '0' || key[0] > '9') && key != "-" {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input followed by a ✓ or ✗ once submitted.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + theme.Correct.Render("✓")
		} else {
			view += " " + theme.Incorrect.Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Clear empties the input and forgets the last submission.
func (t *TextInput) Clear() {
	t.Model.SetValue("")
	t.submitted = false
	t.valid = false
}
