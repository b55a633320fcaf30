package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗ ██████╗██╗  ██╗███╗   ███╗ █████╗ ████████╗██╗  ██╗
 ██╔══██╗██╔══██╗██║██╔════╝██║ ██╔╝████╗ ████║██╔══██╗╚══██╔══╝██║  ██║
 ██████╔╝██████╔╝██║██║     █████╔╝ ██╔████╔██║███████║   ██║   ███████║
 ██╔══██╗██╔══██╗██║██║     ██╔═██╗ ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║
 ██████╔╝██║  ██║██║╚██████╗██║  ██╗██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║
 ╚═════╝ ╚═╝  ╚═╝╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝`

const bannerCompact = "B R I C K M A T H"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 74

// RenderBanner returns the banner in the primary color, falling back to a
// compact form when the terminal is narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
