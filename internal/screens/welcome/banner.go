package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

const bannerArt = `╔╦╗╔═╗╔╦╗╦ ╦  ╔═╗╔═╗╦═╗╔═╗╔═╗╔╦╗
║║║╠═╣ ║ ╠═╣  ╠╣ ║ ║╠╦╝║╣ ╚═╗ ║ 
╩ ╩╩ ╩ ╩ ╩ ╩  ╚  ╚═╝╩╚═╚═╝╚═╝ ╩ `

const bannerCompact = "M A T H   F O R E S T"

// RenderBanner returns the title banner, falling back to spaced letters on
// terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
