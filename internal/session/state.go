package session

import (
	"time"

	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
)

// Phase represents the current phase of the session.
type Phase int

const (
	PhaseActive   Phase = iota // Serving problems
	PhaseComplete              // Completion gate met; badge claim offered
)

// InputMode is how the learner answers the current problem.
type InputMode string

const (
	InputChoices InputMode = "choices" // pick one of four
	InputTyped   InputMode = "typed"   // type a whole number
)

// TypedInputLevel is the first level at which math skills switch to typed input.
const TypedInputLevel = 4

// InputModeFor returns the input mode for skill at level.
func InputModeFor(skill skills.ID, level int) InputMode {
	if skill != skills.TellingTime && level >= TypedInputLevel {
		return InputTyped
	}
	return InputChoices
}

// State tracks the runtime state of an active practice session.
type State struct {
	// ID is the UUID for this session.
	ID string

	// Skill is the skill being practiced.
	Skill skills.ID

	// LevelAtStart is the skill level when the session began, for the summary.
	LevelAtStart int

	// Problem is the problem on screen.
	Problem *problemgen.Problem

	// Tally holds the counters shared with the progression engine.
	Tally progression.Tally

	// StartTime is when the session began.
	StartTime time.Time

	// Phase is the current session phase.
	Phase Phase

	// HintShown is true once the hint for the current problem was revealed.
	HintShown bool

	// Claimed is true once this session's badge was taken. It is never
	// re-armed, so continuing past completion earns no second badge.
	Claimed bool

	// Events accumulates progression events over the session, for the summary.
	Events []progression.Event
}

// Elapsed returns the session duration at now.
func (s *State) Elapsed(now time.Time) time.Duration {
	return now.Sub(s.StartTime)
}

// ElapsedMinutes returns whole minutes elapsed at now.
func (s *State) ElapsedMinutes(now time.Time) int {
	return int(s.Elapsed(now) / time.Minute)
}

// Accuracy returns the fraction of correct answers, 0 when nothing was answered.
func (s *State) Accuracy() float64 {
	if s.Tally.Total == 0 {
		return 0
	}
	return float64(s.Tally.Correct) / float64(s.Tally.Total)
}
