package progression

import (
	"time"

	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/skills"
)

const (
	// BonusStreak is the run of correct answers at one level that earns bonus XP.
	BonusStreak = 5
	// BonusXP is added on every correct answer once BonusStreak is reached.
	BonusXP = 2
	// DemotionStreak is the run of wrong answers at one level that drops the level.
	DemotionStreak = 3
	// HintAttempt is the wrong attempt on which the hint is shown.
	HintAttempt = 2
	// MaxAttempts is the wrong attempt that reveals the answer.
	MaxAttempts = 3
)

// ErrInvalidAnswer is returned for math input that is not a whole number.
var ErrInvalidAnswer = problemgen.ErrInvalidAnswer

// Tally holds the per-session counters the engine reads and updates.
type Tally struct {
	Correct int // answers correct this session
	Total   int // answers submitted this session

	Streak int // current consecutive-correct run, across levels

	// ConsecutiveCorrect and ConsecutiveWrong count runs at the current
	// level; both reset whenever the level changes.
	ConsecutiveCorrect int
	ConsecutiveWrong   int

	// Attempts counts wrong tries on the current problem.
	Attempts int
}

// NextProblem resets the per-problem counter.
func (t *Tally) NextProblem() { t.Attempts = 0 }

// EventKind identifies a notable progression change.
type EventKind string

const (
	EventLevelUp      EventKind = "level_up"
	EventDemoted      EventKind = "demoted"
	EventBadge        EventKind = "badge"
	EventPrize        EventKind = "prize"
	EventBossDefeated EventKind = "boss_defeated"
)

// Event is emitted for UI celebration and persistence decisions.
type Event struct {
	Kind  EventKind
	Skill skills.ID
	From  int
	To    int
	Badge *badges.Badge
	Prize int // number of prizes unlocked so far, for EventPrize
}

// Outcome describes the effect of one submitted answer.
type Outcome struct {
	Correct bool

	XPGained int // including Bonus
	Bonus    int
	Star     bool

	ShowHint bool
	// Revealed is set on the final wrong attempt; the caller shows Answer
	// and moves on.
	Revealed bool
	// Advance tells the caller to present the next problem.
	Advance bool

	// Persist asks for a debounced save.
	Persist bool

	Events []Event
}

// LeveledUp returns the level-up event, if any.
func (o Outcome) LeveledUp() (Event, bool) { return o.find(EventLevelUp) }

// Demoted returns the demotion event, if any.
func (o Outcome) Demoted() (Event, bool) { return o.find(EventDemoted) }

func (o Outcome) find(kind EventKind) (Event, bool) {
	for _, e := range o.Events {
		if e.Kind == kind {
			return e, true
		}
	}
	return Event{}, false
}

// XPForAttempt returns the XP for a correct answer after attempts wrong tries.
func XPForAttempt(attempts int) int {
	switch attempts {
	case 0:
		return 3
	case 1:
		return 2
	default:
		return 1
	}
}

// ApplyAnswer grades input against problem and returns the updated profile
// and tally. The inputs are not modified. Non-numeric input for a math
// problem returns ErrInvalidAnswer and leaves everything unchanged.
//
// On a wrong answer the demotion check runs first, then the hint, then the
// reveal; all three may fire on the same answer.
func ApplyAnswer(p Profile, t Tally, problem *problemgen.Problem, input string) (Profile, Tally, Outcome, error) {
	ok, err := problemgen.CheckAnswer(input, problem)
	if err != nil {
		return p, t, Outcome{}, err
	}

	p = p.Clone()
	skill := problem.Skill
	t.Total++

	if ok {
		return applyCorrect(p, t, skill)
	}
	return applyWrong(p, t, skill)
}

func applyCorrect(p Profile, t Tally, skill skills.ID) (Profile, Tally, Outcome, error) {
	out := Outcome{Correct: true, Advance: true, Persist: true}

	t.Correct++
	t.Streak++
	p.BestStreak = max(p.BestStreak, t.Streak)
	t.ConsecutiveCorrect++
	t.ConsecutiveWrong = 0

	if t.Attempts == 0 {
		p.TotalStars++
		out.Star = true
	}

	gain := XPForAttempt(t.Attempts)
	if t.ConsecutiveCorrect >= BonusStreak {
		out.Bonus = BonusXP
	}
	out.XPGained = gain + out.Bonus

	level := p.SkillLevels[skill]
	need := skills.XPNeeded(level)
	xp := min(p.SkillXP[skill]+out.XPGained, need)

	if xp >= need && level < skills.MaxLevel(skill) {
		p.SkillLevels[skill] = level + 1
		xp = 0
		p.Potions++
		t.ConsecutiveCorrect = 0
		out.Events = append(out.Events, Event{Kind: EventLevelUp, Skill: skill, From: level, To: level + 1})
	}
	p.SkillXP[skill] = xp

	t.NextProblem()
	return p, t, out, nil
}

func applyWrong(p Profile, t Tally, skill skills.ID) (Profile, Tally, Outcome, error) {
	var out Outcome

	t.Streak = 0
	t.ConsecutiveCorrect = 0
	t.ConsecutiveWrong++
	t.Attempts++

	level := p.SkillLevels[skill]
	if t.ConsecutiveWrong >= DemotionStreak && level > 0 {
		p.SkillLevels[skill] = level - 1
		// XP carries over but stays short of an instant level-up.
		p.SkillXP[skill] = min(p.SkillXP[skill], skills.XPNeeded(level-1)-1)
		t.ConsecutiveWrong = 0
		out.Persist = true
		out.Events = append(out.Events, Event{Kind: EventDemoted, Skill: skill, From: level, To: level - 1})
	}

	if t.Attempts >= HintAttempt {
		out.ShowHint = true
	}
	if t.Attempts >= MaxAttempts {
		out.Revealed = true
		out.Advance = true
		t.NextProblem()
	}
	return p, t, out, nil
}

// ClaimBadge appends the badge for a completed session. The prize event
// follows the badge event when the ledger fills a row.
func ClaimBadge(p Profile, skill skills.ID, t Tally, now time.Time) (Profile, []Event) {
	p = p.Clone()
	b := badges.New(len(p.Badges), string(skill), t.Correct, t.Total, now)
	p.Badges = append(p.Badges, b)

	events := []Event{{Kind: EventBadge, Skill: skill, Badge: &b}}
	if badges.IsPrizeMilestone(len(p.Badges)) {
		events = append(events, Event{Kind: EventPrize, Skill: skill, Prize: badges.Prizes(len(p.Badges))})
	}
	return p, events
}

// DefeatBoss records a boss victory.
func DefeatBoss(p Profile, id string) (Profile, Event) {
	p = p.Clone()
	p.BossDefeats[id] = true
	return p, Event{Kind: EventBossDefeated}
}
