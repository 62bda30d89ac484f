package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
)

var (
	ErrUnknownSkill    = errors.New("unknown skill")
	ErrSkillLocked     = errors.New("skill is locked")
	ErrSessionComplete = errors.New("session is complete")
	ErrNotComplete     = errors.New("session is not complete")
	ErrAlreadyClaimed  = errors.New("badge already claimed")
)

// Gate is the completion condition for a session. Both parts must hold.
type Gate struct {
	MinAnswers  int
	MinDuration time.Duration
}

// DefaultGate requires 10 answers and 8 minutes.
func DefaultGate() Gate {
	return Gate{MinAnswers: 10, MinDuration: 8 * time.Minute}
}

// Met reports whether the gate holds for total answers after elapsed.
// Elapsed is compared in whole minutes.
func (g Gate) Met(total int, elapsed time.Duration) bool {
	minutes := elapsed / time.Minute * time.Minute
	return total >= g.MinAnswers && minutes >= g.MinDuration
}

// Controller runs practice sessions against a learner profile.
type Controller struct {
	gen  *problemgen.Generator
	gate Gate
	now  func() time.Time
}

// NewController creates a Controller. A nil now uses time.Now.
func NewController(gen *problemgen.Generator, gate Gate, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{gen: gen, gate: gate, now: now}
}

// Gate returns the configured completion gate.
func (c *Controller) Gate() Gate { return c.gate }

// Start opens a session on skill and serves the first problem.
func (c *Controller) Start(p progression.Profile, skill skills.ID) (*State, error) {
	if !skills.Valid(skill) {
		return nil, fmt.Errorf("start %q: %w", skill, ErrUnknownSkill)
	}
	if !p.SkillOpen(skill) {
		return nil, fmt.Errorf("start %q: %w", skill, ErrSkillLocked)
	}
	s := &State{
		ID:           uuid.New().String(),
		Skill:        skill,
		LevelAtStart: p.Level(skill),
		StartTime:    c.now(),
		Phase:        PhaseActive,
	}
	c.nextProblem(s, p)
	return s, nil
}

// AnswerResult reports what one submission did to the session.
type AnswerResult struct {
	Outcome progression.Outcome

	// Answer is the problem's correct answer, set when it was revealed.
	Answer string

	// Hint is the problem's hint when the outcome shows it.
	Hint string

	// Completed is true when this answer met the completion gate.
	Completed bool

	// Next is the newly served problem, nil if the learner stays on the
	// current one or the session completed.
	Next *problemgen.Problem
}

// Answer grades input for the current problem and returns the updated
// profile. Non-numeric math input returns progression.ErrInvalidAnswer with
// nothing changed.
func (c *Controller) Answer(s *State, p progression.Profile, input string) (progression.Profile, *AnswerResult, error) {
	if s.Phase == PhaseComplete {
		return p, nil, ErrSessionComplete
	}
	prob := s.Problem

	p2, tally, out, err := progression.ApplyAnswer(p, s.Tally, prob, input)
	if err != nil {
		return p, nil, err
	}
	s.Tally = tally
	s.Events = append(s.Events, out.Events...)

	res := &AnswerResult{Outcome: out}
	if out.ShowHint {
		s.HintShown = true
		res.Hint = prob.Hint
	}
	if out.Revealed {
		res.Answer = prob.Answer
	}

	// Completion is only checked on a correct answer.
	if out.Correct && !s.Claimed && c.gate.Met(s.Tally.Total, s.Elapsed(c.now())) {
		s.Phase = PhaseComplete
		res.Completed = true
		return p2, res, nil
	}

	if out.Advance {
		c.nextProblem(s, p2)
		res.Next = s.Problem
	}
	return p2, res, nil
}

// Claim awards the session badge. It may be called once per session, after completion.
func (c *Controller) Claim(s *State, p progression.Profile) (progression.Profile, []progression.Event, error) {
	if s.Phase != PhaseComplete {
		return p, nil, ErrNotComplete
	}
	if s.Claimed {
		return p, nil, ErrAlreadyClaimed
	}
	p2, events := progression.ClaimBadge(p, s.Skill, s.Tally, c.now())
	s.Claimed = true
	s.Events = append(s.Events, events...)
	return p2, events, nil
}

// Continue resumes practice after completion with a fresh problem. An
// unclaimed session can still complete and be claimed later.
func (c *Controller) Continue(s *State, p progression.Profile) error {
	if s.Phase != PhaseComplete {
		return ErrNotComplete
	}
	s.Phase = PhaseActive
	c.nextProblem(s, p)
	return nil
}

// InputMode returns how the current problem is answered.
func (c *Controller) InputMode(s *State, p progression.Profile) InputMode {
	return InputModeFor(s.Skill, p.Level(s.Skill))
}

func (c *Controller) nextProblem(s *State, p progression.Profile) {
	s.Problem = c.gen.Generate(s.Skill, p.Level(s.Skill))
	s.HintShown = false
	s.Tally.NextProblem()
}
