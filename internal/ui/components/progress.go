package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/brickmath/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar of Value out of Max.
type ProgressBar struct {
	Label     string
	Value     int
	Max       int
	ShowCount bool
	Width     int
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(float64(p.Value)/float64(p.Max), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = theme.Body.Render(p.Label) + "  "
	}

	count := ""
	if p.ShowCount {
		count = fmt.Sprintf("  %d/%d", p.Value, p.Max)
	}

	barWidth := max(p.Width-len([]rune(p.Label))-2-len(count), 4)
	filled := int(float64(barWidth) * p.Fraction())

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if count != "" {
		result += theme.Hint.Render(count)
	}
	return result
}
