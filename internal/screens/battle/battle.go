// Package battle is the dragon boss screen.
package battle

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// BattleScreen runs one or more attempts at the dragon.
type BattleScreen struct {
	g *game.Game

	view    game.BossView
	choices components.Choices

	// next holds the state to show once the strike pause ends.
	next    *game.BossView
	strike  *boss.Strike
	pending bool
	errMsg  string
}

var _ screen.Screen = (*BattleScreen)(nil)
var _ screen.KeyHintProvider = (*BattleScreen)(nil)
var _ screen.BackInterceptor = (*BattleScreen)(nil)

// New opens an encounter. The intro runs on Init.
func New(g *game.Game) *BattleScreen {
	b := &BattleScreen{g: g}
	b.begin()
	return b
}

func (b *BattleScreen) begin() {
	v, err := b.g.StartBoss()
	if err != nil {
		if errors.Is(err, boss.ErrUnavailable) {
			b.errMsg = "The dragon is asleep. Reach level 2 in any math skill to wake it!"
		} else {
			b.errMsg = err.Error()
		}
		return
	}
	b.view = v
	b.strike = nil
	b.next = nil
	b.pending = false
}

func (b *BattleScreen) Init() tea.Cmd {
	if b.errMsg != "" {
		return nil
	}
	return after(boss.IntroDelay, introDoneMsg{})
}

func after(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (b *BattleScreen) Title() string { return "🐉 Dragon Battle" }

func (b *BattleScreen) InterceptsBack() bool { return true }

func (b *BattleScreen) KeyHints() []layout.KeyHint {
	switch b.view.Phase {
	case boss.PhaseFight:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Strike"},
			{Key: "Esc", Description: "Run away"},
		}
	case boss.PhaseLose:
		return []layout.KeyHint{
			{Key: "R", Description: "Try again"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	}
}

func (b *BattleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case introDoneMsg:
		if b.view.Phase != boss.PhaseIntro {
			return b, nil
		}
		v, err := b.g.BeginFight()
		if err != nil {
			b.errMsg = err.Error()
			return b, nil
		}
		b.setView(v)
		return b, nil

	case components.ChoiceMsg:
		return b, b.submit(msg.Value)

	case strikeMsg:
		return b, b.handleStrike(msg)

	case resumeMsg:
		if b.next != nil {
			b.setView(*b.next)
			b.next = nil
		}
		b.pending = false
		return b, nil

	case tea.KeyMsg:
		return b, b.handleKey(msg)
	}
	return b, nil
}

func (b *BattleScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" || b.errMsg != "" {
		return b.leave()
	}

	switch b.view.Phase {
	case boss.PhaseFight:
		if b.pending {
			return nil
		}
		var cmd tea.Cmd
		b.choices, cmd = b.choices.Update(msg)
		return cmd
	case boss.PhaseLose:
		if key == "r" || key == "R" {
			b.begin()
			return b.Init()
		}
	case boss.PhaseWin:
		if key == "enter" {
			return b.leave()
		}
	}
	return nil
}

func (b *BattleScreen) leave() tea.Cmd {
	b.g.LeaveBoss()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (b *BattleScreen) submit(input string) tea.Cmd {
	if b.pending {
		return nil
	}
	b.pending = true
	g := b.g
	return func() tea.Msg {
		st, v, err := g.SubmitBoss(context.Background(), input)
		return strikeMsg{Strike: st, View: v, Err: err}
	}
}

func (b *BattleScreen) handleStrike(msg strikeMsg) tea.Cmd {
	switch {
	case errors.Is(msg.Err, progression.ErrInvalidAnswer):
		b.pending = false
		return nil
	case msg.Err != nil && !errors.Is(msg.Err, game.ErrSaveFailed):
		b.pending = false
		b.errMsg = msg.Err.Error()
		return nil
	}

	st := msg.Strike
	b.strike = st
	b.view.BossHP, b.view.PlayerHP = msg.View.BossHP, msg.View.PlayerHP
	b.choices.Reveal = st.Answer
	next := msg.View
	b.next = &next

	switch {
	case st.Won || st.Lost:
		return after(boss.ResolveDelay, resumeMsg{})
	case st.Hit:
		return after(boss.HitDelay, resumeMsg{})
	default:
		return after(boss.MissDelay, resumeMsg{})
	}
}

func (b *BattleScreen) setView(v game.BossView) {
	b.view = v
	if v.Problem != nil {
		b.choices = components.NewChoices(v.Problem.Choices)
	}
}

func (b *BattleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case b.errMsg != "":
		body = theme.Hint.Render(b.errMsg) + "\n\n" + theme.Hint.Render("Press any key to go back.")
	case b.view.Phase == boss.PhaseIntro:
		body = lipgloss.JoinVertical(lipgloss.Center,
			renderDragon(false, false),
			"",
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("A wild dragon appears!"),
			theme.Hint.Render("Answer correctly to strike. Wrong answers cost a heart."),
		)
	case b.view.Phase == boss.PhaseWin:
		body = lipgloss.JoinVertical(lipgloss.Center,
			renderDragon(false, true),
			"",
			lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("🏆 You defeated the dragon! 🏆"),
			lipgloss.NewStyle().Foreground(theme.Secondary).Render("🕐 Telling Time is now unlocked!"),
			"",
			theme.Hint.Render("Press Enter to go home."),
		)
	case b.view.Phase == boss.PhaseLose:
		body = lipgloss.JoinVertical(lipgloss.Center,
			renderDragon(false, false),
			"",
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("The dragon wins this time..."),
			theme.Hint.Render("Press R to try again!"),
		)
	default:
		body = b.renderFight(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (b *BattleScreen) renderFight(cw int) string {
	hurt := b.pending && b.strike != nil && b.strike.Hit

	hp := components.NewProgressBar("🐉", b.view.BossHP, boss.BossHP, cw/2)
	hp.Fill = theme.Error
	hearts := components.Hearts(b.view.PlayerHP, boss.PlayerHP, "❤️ ", "🖤 ")

	sections := []string{
		renderDragon(hurt, false),
		"",
		hp.View() + "    " + hearts,
		"",
	}

	if b.pending && b.strike != nil {
		style := theme.Correct
		if !b.strike.Hit {
			style = theme.Incorrect
		}
		sections = append(sections, style.Render(b.strike.Message), "")
	}

	if p := b.view.Problem; p != nil {
		if p.Kind == problemgen.KindClock && p.Clock != nil {
			sections = append(sections, components.ClockFace(p.Clock.Hour, p.Clock.Minute))
		}
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Text),
			"",
			b.choices.View(cw),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Center, sections...)
}
