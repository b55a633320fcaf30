package components

import (
	"strings"

	"github.com/abhisek/brickmath/internal/bricks"
	"github.com/abhisek/brickmath/internal/builder"
	"github.com/abhisek/brickmath/internal/ui/theme"
)

// BrickGlyph returns the block drawn for a brick of the given size.
func BrickGlyph(size bricks.Size) string {
	switch size {
	case bricks.SizeSmall:
		return "▪"
	case bricks.SizeLarge:
		return "███"
	default:
		return "██"
	}
}

// RenderBrick draws a single colored brick.
func RenderBrick(b bricks.Brick) string {
	return theme.BrickStyle(b.Color).Render(BrickGlyph(b.Size))
}

// RenderBrickRow draws the last limit bricks of bs on one line, newest last.
func RenderBrickRow(bs []bricks.Brick, limit int) string {
	if limit > 0 && len(bs) > limit {
		bs = bs[len(bs)-limit:]
	}
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = RenderBrick(b)
	}
	return strings.Join(parts, " ")
}

// RenderPattern draws a model's picture. Every cell is padded to the width
// of a large brick so rows line up.
func RenderPattern(m builder.Model) string {
	rows := make([]string, len(m.Pattern))
	for i, row := range m.Pattern {
		var b strings.Builder
		for _, c := range row {
			glyph := BrickGlyph(c.Size)
			b.WriteString(theme.CellStyle(c.Color).Render(glyph))
			b.WriteString(strings.Repeat(" ", 4-len([]rune(glyph))))
		}
		rows[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(rows, "\n")
}
