// Package boss runs the dragon battle: a short encounter where each correct
// answer damages the boss and each wrong answer costs the learner a heart.
package boss

import (
	"errors"
	"time"

	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
)

const (
	BossHP   = 8
	PlayerHP = 3

	// IntroDelay is how long the intro is shown before the fight begins.
	IntroDelay = 2500 * time.Millisecond
	// ResolveDelay is the pause between the final blow and the result screen.
	ResolveDelay = 800 * time.Millisecond
	// HitDelay and MissDelay separate a resolved answer from the next problem.
	HitDelay  = 1200 * time.Millisecond
	MissDelay = 1500 * time.Millisecond
)

var (
	ErrUnavailable = errors.New("boss battle is not available")
	ErrWrongPhase  = errors.New("boss battle is not in that phase")
)

// Phase is the encounter state.
type Phase string

const (
	PhaseIntro Phase = "intro"
	PhaseFight Phase = "fight"
	PhaseWin   Phase = "win"
	PhaseLose  Phase = "lose"
)

// Encounter is one attempt at the dragon.
type Encounter struct {
	BossHP   int
	PlayerHP int
	Phase    Phase
	Problem  *problemgen.Problem
}

// Strike is the result of one boss answer.
type Strike struct {
	Hit     bool
	Message string
	Answer  string // the correct answer

	Won  bool
	Lost bool

	// Profile is set on a win: the profile with the defeat recorded.
	Profile *progression.Profile
}

// Controller drives encounters.
type Controller struct {
	gen *problemgen.Generator
}

// NewController creates a Controller.
func NewController(gen *problemgen.Generator) *Controller {
	return &Controller{gen: gen}
}

// Begin opens an encounter in the intro phase. Retrying after a loss is
// another Begin.
func (c *Controller) Begin(p progression.Profile) (*Encounter, error) {
	if !p.BossAvailable() {
		return nil, ErrUnavailable
	}
	return &Encounter{BossHP: BossHP, PlayerHP: PlayerHP, Phase: PhaseIntro}, nil
}

// Fight leaves the intro and serves the first boss problem.
func (c *Controller) Fight(e *Encounter, p progression.Profile) error {
	if e.Phase != PhaseIntro {
		return ErrWrongPhase
	}
	e.Phase = PhaseFight
	e.Problem = c.gen.SelectBossProblem(p.SkillLevels)
	return nil
}

// Answer resolves a submission. Non-numeric math input returns
// progression.ErrInvalidAnswer and changes nothing.
func (c *Controller) Answer(e *Encounter, p progression.Profile, input string) (*Strike, error) {
	if e.Phase != PhaseFight {
		return nil, ErrWrongPhase
	}
	ok, err := problemgen.CheckAnswer(input, e.Problem)
	if err != nil {
		return nil, err
	}

	st := &Strike{Hit: ok, Answer: e.Problem.Answer}
	if ok {
		e.BossHP--
		st.Message = c.hitMessage()
	} else {
		e.PlayerHP--
		st.Message = c.attackMessage()
	}

	switch {
	case e.BossHP <= 0:
		e.Phase = PhaseWin
		e.Problem = nil
		st.Won = true
		won, _ := progression.DefeatBoss(p, progression.DragonBoss)
		st.Profile = &won
	case e.PlayerHP <= 0:
		e.Phase = PhaseLose
		e.Problem = nil
		st.Lost = true
	default:
		e.Problem = c.gen.SelectBossProblem(p.SkillLevels)
	}
	return st, nil
}
