package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

// MascotVariant selects which owl art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // badge earned today
	MascotAlert                     // the dragon is awake
)

const mascotIdle = `  ,___,
  (◉,◉)
  /)  )
───"─"───`

const mascotCelebrating = ` \,___,/
  (★,★)
  /)  )
───"─"───`

const mascotAlert = `  ,___,  !
  (◉,◉)
  /)  )
───"─"───`

// RenderMascot returns the owl art for the given variant.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Secondary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Gold
	case MascotAlert:
		art, fg = mascotAlert, theme.Accent
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
