package game

import (
	"context"

	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/skills"
)

// PracticeView is a read-only picture of the running practice session.
type PracticeView struct {
	SessionID      string
	Skill          skills.ID
	SkillName      string
	Icon           string
	Level          int
	MaxLevel       int
	XP             int
	XPNeeded       int
	Problem        problemgen.Problem
	InputMode      session.InputMode
	Correct        int
	Total          int
	Streak         int
	Attempts       int
	HintShown      bool
	Complete       bool
	Claimed        bool
	ElapsedMinutes int
	MinAnswers     int
	MinMinutes     int
	Stars          int
}

// StartPractice opens a session on skill, replacing any running one.
func (g *Game) StartPractice(skill skills.ID) (PracticeView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, err := g.sessions.Start(g.profile, skill)
	if err != nil {
		return PracticeView{}, err
	}
	g.practice = s
	g.encounter = nil
	g.log.Info("practice started", "skill", skill, "level", s.LevelAtStart)
	return g.practiceView(), nil
}

// Practice returns the running session, if any.
func (g *Game) Practice() (PracticeView, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.practice == nil {
		return PracticeView{}, false
	}
	return g.practiceView(), true
}

// Submit grades input against the current problem. A correct answer or a
// demotion schedules a debounced save. Non-numeric input for a math problem
// returns progression.ErrInvalidAnswer and changes nothing.
func (g *Game) Submit(ctx context.Context, input string) (*session.AnswerResult, PracticeView, error) {
	g.mu.Lock()
	if g.practice == nil {
		g.mu.Unlock()
		return nil, PracticeView{}, ErrNoPractice
	}
	p, res, err := g.sessions.Answer(g.practice, g.profile, input)
	if err != nil {
		g.mu.Unlock()
		return nil, PracticeView{}, err
	}
	g.profile = p
	view := g.practiceView()
	g.mu.Unlock()

	for _, ev := range res.Outcome.Events {
		g.log.Info("progress event", "kind", ev.Kind, "skill", ev.Skill, "from", ev.From, "to", ev.To)
	}
	if res.Outcome.Persist {
		_ = g.save(ctx, persist.Debounced(g.debounce))
	}
	return res, view, nil
}

// Claim awards the completed session's badge and saves immediately. The
// returned events are the badge and, on every fifth badge, the prize.
func (g *Game) Claim(ctx context.Context) ([]progression.Event, error) {
	g.mu.Lock()
	if g.practice == nil {
		g.mu.Unlock()
		return nil, ErrNoPractice
	}
	p, events, err := g.sessions.Claim(g.practice, g.profile)
	if err != nil {
		g.mu.Unlock()
		return nil, err
	}
	g.profile = p
	g.mu.Unlock()

	g.log.Info("badge claimed", "badges", len(p.Badges))
	return events, g.save(ctx, persist.Immediate)
}

// Continue keeps practicing after completion.
func (g *Game) Continue() (PracticeView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.practice == nil {
		return PracticeView{}, ErrNoPractice
	}
	if err := g.sessions.Continue(g.practice, g.profile); err != nil {
		return PracticeView{}, err
	}
	return g.practiceView(), nil
}

// EndPractice closes the running session and returns its summary.
func (g *Game) EndPractice() (*session.Summary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.practice == nil {
		return nil, ErrNoPractice
	}
	sum := session.BuildSummary(g.practice, g.profile, g.now())
	g.practice = nil
	return sum, nil
}

// practiceView must be called with g.mu held.
func (g *Game) practiceView() PracticeView {
	s := g.practice
	level := g.profile.Level(s.Skill)
	sk, _ := skills.Get(s.Skill)
	gate := g.sessions.Gate()
	return PracticeView{
		SessionID:      s.ID,
		Skill:          s.Skill,
		SkillName:      sk.Name,
		Icon:           sk.Icon,
		Level:          level,
		MaxLevel:       sk.MaxLevel,
		XP:             g.profile.XP(s.Skill),
		XPNeeded:       skills.XPNeeded(level),
		Problem:        *s.Problem,
		InputMode:      g.sessions.InputMode(s, g.profile),
		Correct:        s.Tally.Correct,
		Total:          s.Tally.Total,
		Streak:         s.Tally.Streak,
		Attempts:       s.Tally.Attempts,
		HintShown:      s.HintShown,
		Complete:       s.Phase == session.PhaseComplete,
		Claimed:        s.Claimed,
		ElapsedMinutes: s.ElapsedMinutes(g.now()),
		MinAnswers:     gate.MinAnswers,
		MinMinutes:     int(gate.MinDuration.Minutes()),
		Stars:          g.profile.TotalStars,
	}
}
