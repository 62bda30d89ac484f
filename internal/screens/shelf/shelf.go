// Package shelf shows the badge shelf: rows of five badges, each full row
// unlocking a prize.
package shelf

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// ShelfScreen displays the learner's badges.
type ShelfScreen struct {
	ledger   []badges.Badge
	rows     []badges.Row
	selected int // index into ledger
}

var _ screen.Screen = (*ShelfScreen)(nil)
var _ screen.KeyHintProvider = (*ShelfScreen)(nil)

// New creates a ShelfScreen over the ledger in earned order.
func New(ledger []badges.Badge) *ShelfScreen {
	return &ShelfScreen{
		ledger:   ledger,
		rows:     badges.Shelf(ledger),
		selected: max(len(ledger)-1, 0),
	}
}

func (s *ShelfScreen) Init() tea.Cmd { return nil }

func (s *ShelfScreen) Title() string { return "Badge Shelf" }

func (s *ShelfScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShelfScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "left", "h":
		s.move(-1)
	case "right", "l":
		s.move(1)
	case "up", "k":
		s.move(-badges.PerPrize)
	case "down", "j":
		s.move(badges.PerPrize)
	}
	return s, nil
}

func (s *ShelfScreen) move(d int) {
	if n := s.selected + d; n >= 0 && n < len(s.ledger) {
		s.selected = n
	}
}

func (s *ShelfScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	prizes := badges.Prizes(len(s.ledger))
	sections := []string{
		theme.Title.Render(fmt.Sprintf("%d badges  ·  %d prizes", len(s.ledger), prizes)),
		"",
	}

	for r, row := range s.rows {
		var cells []string
		for i, b := range row.Slots {
			idx := r*badges.PerPrize + i
			switch {
			case b == nil:
				cells = append(cells, dim.Render(" ○ "))
			case idx == s.selected:
				cells = append(cells, lipgloss.NewStyle().Background(theme.Gold).Render(" "+b.Icon+" "))
			default:
				cells = append(cells, " "+b.Icon+" ")
			}
		}
		prize := dim.Render("  🔒")
		if row.Complete {
			prize = "  " + row.PrizeIcon
		}
		sections = append(sections, strings.Join(cells, " ")+prize)
	}

	sections = append(sections, "", s.detail())
	card := components.Card(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *ShelfScreen) detail() string {
	if len(s.ledger) == 0 {
		return theme.Hint.Render("Finish a practice session to earn your first badge!")
	}
	b := s.ledger[s.selected]
	name := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
		Render(fmt.Sprintf("%s %s Badge", b.Icon, b.Name))
	info := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("%s  ·  %d/%d correct  ·  %s",
			skills.DisplayName(skills.ID(b.Skill)), b.Correct, b.Total, b.Date))

	left := badges.PerPrize - len(s.ledger)%badges.PerPrize
	next := theme.Hint.Render(fmt.Sprintf("%d more for the next prize", left))
	return lipgloss.JoinVertical(lipgloss.Center, name, info, "", next)
}
