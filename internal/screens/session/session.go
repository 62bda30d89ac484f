// Package session is the practice screen: one skill, problem after problem,
// until the completion gate offers a badge.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/screens/summary"
	sess "github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
)

// Completion panel buttons.
const (
	actionClaim = iota
	actionContinue
	actionFinish
)

// feedback is the line shown above the current problem after an answer.
type feedback struct {
	correct bool
	lines   []string
}

// SessionScreen implements screen.Screen for a practice session.
type SessionScreen struct {
	g     *game.Game
	skill skills.ID

	view    game.PracticeView
	choices components.Choices
	input   components.TextInput

	feedback    *feedback
	rewards     []string // badge and prize lines after a claim
	action      int
	claiming    bool
	quitConfirm bool
	errMsg      string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackInterceptor = (*SessionScreen)(nil)

// New starts a practice session on skill.
func New(g *game.Game, skill skills.ID) *SessionScreen {
	s := &SessionScreen{g: g, skill: skill}
	v, err := g.StartPractice(skill)
	if err != nil {
		s.errMsg = errorText(err)
		return s
	}
	s.setProblem(v)
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.errMsg != "" {
		return nil
	}
	return tea.Batch(tickCmd(), s.input.Init())
}

func (s *SessionScreen) Title() string {
	if s.view.SkillName == "" {
		return "Practice"
	}
	return s.view.Icon + " " + s.view.SkillName
}

func (s *SessionScreen) InterceptsBack() bool { return s.errMsg == "" }

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.quitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End practice"},
			{Key: "N", Description: "Keep going"},
		}
	case s.view.Complete:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
		}
	case s.view.InputMode == sess.InputChoices:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→↑↓ Enter", Description: "Pick"},
			{Key: "Esc", Description: "End"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End"},
		}
	}
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if v, ok := s.g.Practice(); ok {
			s.view.ElapsedMinutes = v.ElapsedMinutes
			return s, tickCmd()
		}
		return s, nil

	case claimedMsg:
		return s, s.handleClaimed(msg)

	case components.ChoiceMsg:
		return s, s.submit(msg.Value)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if !s.view.Complete && s.view.InputMode == sess.InputTyped {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, s.finish()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.quitConfirm = true
		return s, nil
	}

	if s.view.Complete {
		return s, s.handleCompleteKey(key)
	}

	if s.view.InputMode == sess.InputChoices {
		var cmd tea.Cmd
		s.choices, cmd = s.choices.Update(msg)
		return s, cmd
	}

	if key == "enter" {
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SessionScreen) handleCompleteKey(key string) tea.Cmd {
	if s.claiming {
		return nil
	}
	first := actionClaim
	if s.view.Claimed {
		first = actionContinue
	}
	switch key {
	case "up", "k":
		s.action = max(s.action-1, first)
	case "down", "j":
		s.action = min(s.action+1, actionFinish)
	case "enter":
		switch s.action {
		case actionClaim:
			return s.claim()
		case actionContinue:
			return s.keepGoing()
		case actionFinish:
			return s.finish()
		}
	}
	return nil
}

// submit grades input. Invalid math input is dropped without a word.
func (s *SessionScreen) submit(input string) tea.Cmd {
	if input == "" {
		return nil
	}
	res, v, err := s.g.Submit(context.Background(), input)
	if errors.Is(err, progression.ErrInvalidAnswer) {
		s.input.Reset()
		return nil
	}
	if err != nil {
		s.errMsg = errorText(err)
		return nil
	}

	s.feedback = describe(res)
	switch {
	case res.Completed:
		s.view = v
		s.action = actionClaim
		s.rewards = nil
	case res.Next != nil:
		s.setProblem(v)
	default:
		// Same problem again; strike the wrong choice.
		s.choices.Strike(input)
		s.input.Reset()
		s.view = v
	}
	return nil
}

func (s *SessionScreen) claim() tea.Cmd {
	s.claiming = true
	g := s.g
	return func() tea.Msg {
		events, err := g.Claim(context.Background())
		return claimedMsg{Events: events, Err: err}
	}
}

func (s *SessionScreen) handleClaimed(msg claimedMsg) tea.Cmd {
	s.claiming = false
	// A failed save keeps the badge; the header shows the save status.
	if msg.Err != nil && !errors.Is(msg.Err, game.ErrSaveFailed) {
		s.errMsg = errorText(msg.Err)
		return nil
	}
	for _, ev := range msg.Events {
		switch ev.Kind {
		case progression.EventBadge:
			s.rewards = append(s.rewards, fmt.Sprintf("%s You earned the %s badge!", ev.Badge.Icon, ev.Badge.Name))
		case progression.EventPrize:
			s.rewards = append(s.rewards, fmt.Sprintf("🎁 Your shelf row is full! Prize #%d unlocked!", ev.Prize))
		}
	}
	if v, ok := s.g.Practice(); ok {
		s.view = v
	}
	s.action = actionContinue
	return nil
}

func (s *SessionScreen) keepGoing() tea.Cmd {
	v, err := s.g.Continue()
	if err != nil {
		s.errMsg = errorText(err)
		return nil
	}
	s.feedback = nil
	s.rewards = nil
	s.setProblem(v)
	return s.input.Init()
}

func (s *SessionScreen) finish() tea.Cmd {
	sum, err := s.g.EndPractice()
	if err != nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// setProblem installs a freshly served problem.
func (s *SessionScreen) setProblem(v game.PracticeView) {
	s.view = v
	s.choices = components.NewChoices(v.Problem.Choices)
	mode := components.InputNumber
	if v.Problem.IsTime() {
		mode = components.InputTime
	}
	s.input = components.NewTextInput("Type your answer...", mode, 8)
}

// describe turns an answer result into feedback lines.
func describe(res *sess.AnswerResult) *feedback {
	o := res.Outcome
	fb := &feedback{correct: o.Correct}
	if o.Correct {
		fb.lines = append(fb.lines, fmt.Sprintf("✓ Correct! +%d XP", o.XPGained))
		if o.Bonus > 0 {
			fb.lines = append(fb.lines, fmt.Sprintf("🔥 Streak bonus +%d", o.Bonus))
		}
		if o.Star {
			fb.lines = append(fb.lines, "⭐ You earned a star!")
		}
	} else {
		switch {
		case o.Revealed:
			fb.lines = append(fb.lines, fmt.Sprintf("The answer was %s. Let's try a new one!", res.Answer))
		case o.ShowHint:
			fb.lines = append(fb.lines, "Not quite. Here's a hint!")
		default:
			fb.lines = append(fb.lines, "Not quite. Try again!")
		}
	}
	if ev, ok := o.LeveledUp(); ok {
		fb.lines = append(fb.lines, fmt.Sprintf("🎉 Level up! You reached level %d!", ev.To))
	}
	if ev, ok := o.Demoted(); ok {
		fb.lines = append(fb.lines, fmt.Sprintf("Let's practice level %d a little more.", ev.To))
	}
	return fb
}

func errorText(err error) string {
	switch {
	case errors.Is(err, sess.ErrSkillLocked):
		return "That skill is still locked. Beat the dragon to open it!"
	case errors.Is(err, sess.ErrUnknownSkill):
		return "That skill doesn't exist."
	default:
		return err.Error()
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
