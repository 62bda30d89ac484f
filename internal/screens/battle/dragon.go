package battle

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

const dragonIdle = `      __====-_  _-====__
   _--^^^#####//  \\#####^^^--_
 _-^##########// (  ) \\##########^-_
-############//  |\^^/|  \\############-
    ~~~~~~~~~   (\  o o  /)  ~~~~~~~~~
                 \  \/  /
                  ^^^^^^`

const dragonHurt = `      __====-_  _-====__
   _--^^^#####//  \\#####^^^--_
 _-^##########// (  ) \\##########^-_
-############//  |\^^/|  \\############-
    ~~~~~~~~~   (\  x x  /)  ~~~~~~~~~
                 \  ~~  /
                  ^^^^^^`

const dragonSleeping = `
        z z z
     (\  - -  /)
      \  ..  /
       ^^^^^^`

// renderDragon draws the dragon, flinching after a hit.
func renderDragon(hurt, defeated bool) string {
	switch {
	case defeated:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(dragonSleeping)
	case hurt:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render(dragonHurt)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error).Render(dragonIdle)
	}
}
