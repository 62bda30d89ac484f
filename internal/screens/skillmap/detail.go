package skillmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	sessionscreen "github.com/abhisek/mathforest/internal/screens/session"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

var samples = problemgen.New(nil)

// SkillDetailScreen shows one skill with a sample problem at its level.
type SkillDetailScreen struct {
	g      *game.Game
	card   game.SkillCard
	sample *problemgen.Problem
}

var _ screen.Screen = (*SkillDetailScreen)(nil)
var _ screen.KeyHintProvider = (*SkillDetailScreen)(nil)

func newSkillDetail(g *game.Game, card game.SkillCard) *SkillDetailScreen {
	return &SkillDetailScreen{g: g, card: card, sample: samples.Generate(card.ID, card.Level)}
}

func (d *SkillDetailScreen) Init() tea.Cmd { return nil }
func (d *SkillDetailScreen) Title() string { return d.card.Name }

func (d *SkillDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && !d.card.Locked {
		next := sessionscreen.New(d.g, d.card.ID)
		return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return d, nil
}

func (d *SkillDetailScreen) KeyHints() []layout.KeyHint {
	if d.card.Locked {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Practice"},
		{Key: "Esc", Description: "Back"},
	}
}

// answerMode describes how answers are given at the card's level.
func answerMode(c game.SkillCard) string {
	if c.ID != skills.TellingTime && c.Level >= session.TypedInputLevel {
		return "Type the answer"
	}
	return "Pick one of four answers"
}

func (d *SkillDetailScreen) View(width, height int) string {
	c := d.card
	state := stateOf(c)
	cw := min(width-8, 70)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s %s", state.Icon(), c.Icon, c.Name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("  " + state.Label()))
	b.WriteString("\n\n")

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	if c.Locked {
		b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(2).Foreground(theme.Text).
			Render("Defeat the dragon to open the Clock Tower. Reach level 2 in any math skill to wake it."))
		b.WriteString("\n")
		return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
	}

	b.WriteString(dimStyle.Render("  Level:     ") + valStyle.Render(fmt.Sprintf("%d of %d", c.Level, c.MaxLevel)) + "\n")
	b.WriteString(dimStyle.Render("  Answers:   ") + valStyle.Render(answerMode(c)) + "\n")
	if c.Level < c.MaxLevel {
		bar := components.NewProgressBar("  XP       ", c.XP, c.XPNeeded, cw/2)
		b.WriteString(bar.View() + "\n")
	}
	b.WriteString("\n")

	if p := d.sample; p != nil {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  A taste of this level"))
		b.WriteString("\n")
		if p.Kind == problemgen.KindClock && p.Clock != nil {
			b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(components.ClockFace(p.Clock.Hour, p.Clock.Minute)))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Width(cw).PaddingLeft(2).Foreground(theme.Text).Render(p.Text))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
