package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(st lipgloss.Style, text string) string {
		return st.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Great practice!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("%s  ·  %d:%02d", sum.SkillName, mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
			sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	level := fmt.Sprintf("Level %d", sum.LevelAfter)
	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case sum.LevelAfter > sum.LevelBefore:
		level = fmt.Sprintf("Level %d > %d  🎉", sum.LevelBefore, sum.LevelAfter)
		style = style.Foreground(theme.Success).Bold(true)
	case sum.LevelAfter < sum.LevelBefore:
		level = fmt.Sprintf("Level %d > %d", sum.LevelBefore, sum.LevelAfter)
		style = style.Foreground(theme.Accent)
	}
	b.WriteString(center(style, level))
	b.WriteString("\n")

	if sum.LevelUps > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary),
			fmt.Sprintf("%d level-up%s this session", sum.LevelUps, plural(sum.LevelUps))))
		b.WriteString("\n")
	}
	if sum.Claimed {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold).Bold(true), "🏅 Badge earned!"))
		b.WriteString("\n")
	}

	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
