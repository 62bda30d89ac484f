package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/problemgen"
	sess "github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render(s.errMsg) + "\n\n" + theme.Hint.Render("Press any key to go back.")
	case s.quitConfirm:
		body = renderQuitConfirm()
	case s.view.Complete:
		body = s.renderComplete(width)
	default:
		body = s.renderQuestion(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// renderStatus renders the level, XP bar and session counters.
func (s *SessionScreen) renderStatus(cw int) string {
	v := s.view
	level := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Level %d/%d", v.Level, v.MaxLevel))

	xp := components.NewProgressBar("XP", v.XP, v.XPNeeded, cw-lipgloss.Width(level)-2)
	if v.Level >= v.MaxLevel {
		xp = components.NewProgressBar("XP", 0, 0, cw-lipgloss.Width(level)-2)
	}
	xp.Fill = theme.Primary

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	counters := fmt.Sprintf("✓ %d/%d   🔥 %d   ", v.Correct, v.Total, v.Streak) +
		dim.Render(fmt.Sprintf("goal %d/%d answers · %d/%d min",
			min(v.Total, v.MinAnswers), v.MinAnswers, min(v.ElapsedMinutes, v.MinMinutes), v.MinMinutes))

	return lipgloss.JoinVertical(lipgloss.Left,
		level+"  "+xp.View(),
		counters,
	)
}

func (s *SessionScreen) renderQuestion(width int) string {
	cw := components.ContentWidth(width)
	p := s.view.Problem

	sections := []string{s.renderStatus(cw), ""}

	if s.feedback != nil {
		style := theme.Correct
		if !s.feedback.correct {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		for _, l := range s.feedback.lines {
			sections = append(sections, components.Center(style.Render(l), cw))
		}
		sections = append(sections, "")
	}

	if p.Kind == problemgen.KindClock && p.Clock != nil {
		sections = append(sections, components.Center(components.ClockFace(p.Clock.Hour, p.Clock.Minute), cw))
	}
	sections = append(sections,
		components.Center(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Text), cw),
		"",
	)

	if s.view.HintShown && p.Hint != "" {
		sections = append(sections, components.Center(theme.Hint.Render("💡 "+p.Hint), cw), "")
	}

	if s.view.InputMode == sess.InputChoices {
		sections = append(sections, components.Center(s.choices.View(cw), cw))
	} else {
		sections = append(sections, components.Center("Answer: "+s.input.View(), cw))
		if p.IsTime() {
			sections = append(sections, components.Center(theme.Hint.Render("type it like 3:45"), cw))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *SessionScreen) renderComplete(width int) string {
	cw := components.ContentWidth(width)
	v := s.view

	title := theme.Title.Render("🎉 Practice complete! 🎉")
	stats := lipgloss.NewStyle().Foreground(theme.Text).
		Render(fmt.Sprintf("%d of %d correct  ·  %d minutes", v.Correct, v.Total, v.ElapsedMinutes))

	sections := []string{title, "", stats, ""}
	for _, r := range s.rewards {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render(r))
	}
	if len(s.rewards) > 0 {
		sections = append(sections, "")
	}

	bw := cw / 2
	if s.claiming {
		sections = append(sections, theme.Hint.Render("Saving your badge..."))
	} else {
		if !v.Claimed {
			sections = append(sections, components.Button("🏅 Claim badge", s.action == actionClaim, bw))
		}
		sections = append(sections,
			components.Button("Keep practicing", s.action == actionContinue, bw),
			components.Button("Finish", s.action == actionFinish, bw),
		)
	}
	return components.Card(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
}

func renderQuitConfirm() string {
	return strings.Join([]string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End practice now?"),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your progress is saved."),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes, end practice"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"),
	}, "\n")
}
