package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// renderGreeting is the rank line under the mascot.
func renderGreeting(v game.HomeView) string {
	name := v.Name
	if name == "" {
		name = "friend"
	}
	hello := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Hello, " + name + "!")
	rank := lipgloss.NewStyle().Foreground(theme.Magic).Render(v.Rank.Icon + " " + v.Rank.Title)
	return hello + "\n" + rank
}

// renderStats draws the dashboard counters in a card at content width.
func renderStats(v game.HomeView, cw int, compact bool) string {
	num := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	cells := []string{
		num.Render(fmt.Sprint(v.TotalLevel)) + dim.Render(" levels"),
		num.Render(fmt.Sprint(v.BestStreak)) + dim.Render(" best streak"),
		num.Render(fmt.Sprint(len(v.Badges))) + dim.Render(" badges"),
	}
	if !compact {
		cells = append(cells, num.Render(fmt.Sprint(v.Prizes))+dim.Render(" prizes"))
	}
	return components.Card(strings.Join(cells, dim.Render("  │  ")), cw)
}

// skillDetail is the dim text after a skill in the menu.
func skillDetail(c game.SkillCard) string {
	if c.Locked {
		return "🔒 Beat the dragon"
	}
	if c.Level >= c.MaxLevel {
		return fmt.Sprintf("Lv %d · MAX", c.Level)
	}
	return fmt.Sprintf("Lv %d · %d/%d xp", c.Level, c.XP, c.XPNeeded)
}

// bossDetail reports the dragon's state in the menu.
func bossDetail(v game.HomeView) string {
	switch {
	case v.BossDefeated:
		return "defeated ✓"
	case v.BossAvailable:
		return "ready!"
	default:
		return "reach level 2 in any skill"
	}
}
