package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗ █████╗ ████████╗██╗  ██╗██╗    ██╗██╗  ██╗███████╗███████╗██╗
 ████╗ ████║██╔══██╗╚══██╔══╝██║  ██║██║    ██║██║  ██║██╔════╝██╔════╝██║
 ██╔████╔██║███████║   ██║   ███████║██║ █╗ ██║███████║█████╗  █████╗  ██║
 ██║╚██╔╝██║██╔══██║   ██║   ██╔══██║██║███╗██║██╔══██║██╔══╝  ██╔══╝  ██║
 ██║ ╚═╝ ██║██║  ██║   ██║   ██║  ██║╚███╔███╔╝██║  ██║███████╗███████╗███████╗
 ╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝ ╚══╝╚══╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝`

const bannerCompact = "M A T H W H E E L"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 79

// RenderBanner returns the MATHWHEEL banner styled in the primary color.
// Narrow terminals get a compact fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
