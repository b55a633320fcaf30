package bricks

import "strings"

// Size is the physical size of a brick. Answer rewards are normal; bonus
// and achievement rewards are large.
type Size string

const (
	SizeSmall  Size = "small"
	SizeNormal Size = "normal"
	SizeLarge  Size = "large"
)

// AllSizes returns all sizes from smallest to largest.
func AllSizes() []Size {
	return []Size{SizeSmall, SizeNormal, SizeLarge}
}

// Valid reports whether s is a known size.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeNormal, SizeLarge:
		return true
	default:
		return false
	}
}

// DisplayName returns a human-readable label for the size.
func (s Size) DisplayName() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeNormal:
		return "Normal"
	case SizeLarge:
		return "Large"
	default:
		return string(s)
	}
}

// Color is one of the fixed brick colors.
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorPink   Color = "pink"
	ColorIndigo Color = "indigo"
	ColorTeal   Color = "teal"
	ColorLime   Color = "lime"
)

// Palette returns the colors a minted brick can take, in display order.
func Palette() []Color {
	return []Color{
		ColorRed, ColorBlue, ColorYellow, ColorGreen, ColorPurple,
		ColorOrange, ColorPink, ColorIndigo, ColorTeal, ColorLime,
	}
}

// Hex returns the terminal color used to draw the brick.
func (c Color) Hex() string {
	switch c {
	case ColorRed:
		return "#EF4444"
	case ColorBlue:
		return "#3B82F6"
	case ColorYellow:
		return "#EAB308"
	case ColorGreen:
		return "#22C55E"
	case ColorPurple:
		return "#A855F7"
	case ColorOrange:
		return "#F97316"
	case ColorPink:
		return "#EC4899"
	case ColorIndigo:
		return "#6366F1"
	case ColorTeal:
		return "#14B8A6"
	case ColorLime:
		return "#84CC16"
	default:
		return "#94A3B8"
	}
}

// DisplayName returns a capitalized label for the color.
func (c Color) DisplayName() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}
