package progression

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/skills"
)

func addProblem(a, b int) *problemgen.Problem {
	return &problemgen.Problem{
		Text:     "a + b = ?",
		Answer:   strconv.Itoa(a + b),
		Value:    a + b,
		Skill:    skills.Addition,
		Kind:     problemgen.KindMath,
		Operands: []int{a, b},
	}
}

func TestApplyAnswer_FirstTryCorrect(t *testing.T) {
	p := DefaultProfile()
	p2, tally, out, err := ApplyAnswer(p, Tally{}, addProblem(3, 4), "7")
	require.NoError(t, err)

	assert.True(t, out.Correct)
	assert.True(t, out.Star)
	assert.True(t, out.Advance)
	assert.True(t, out.Persist)
	assert.Equal(t, 3, out.XPGained)
	assert.Equal(t, 3, p2.XP(skills.Addition))
	assert.Equal(t, 1, p2.TotalStars)
	assert.Equal(t, 1, p2.BestStreak)
	assert.Equal(t, 1, tally.Streak)
	assert.Equal(t, 1, tally.Correct)
	assert.Equal(t, 1, tally.Total)

	// input untouched
	assert.Equal(t, 0, p.XP(skills.Addition))
	assert.Equal(t, 0, p.TotalStars)
}

func TestApplyAnswer_LevelUp(t *testing.T) {
	p := DefaultProfile()
	p.SkillXP[skills.Addition] = 7

	p2, tally, out, err := ApplyAnswer(p, Tally{ConsecutiveCorrect: 2}, addProblem(1, 1), "2")
	require.NoError(t, err)

	ev, ok := out.LeveledUp()
	require.True(t, ok)
	assert.Equal(t, 0, ev.From)
	assert.Equal(t, 1, ev.To)
	assert.Equal(t, 1, p2.Level(skills.Addition))
	assert.Equal(t, 0, p2.XP(skills.Addition))
	assert.Equal(t, 1, p2.Potions)
	assert.Equal(t, 0, tally.ConsecutiveCorrect)
}

func TestApplyAnswer_MaxLevelCapsXP(t *testing.T) {
	p := DefaultProfile()
	maxLevel := skills.MaxLevel(skills.Addition)
	p.SkillLevels[skills.Addition] = maxLevel
	p.SkillXP[skills.Addition] = skills.XPNeeded(maxLevel) - 1

	p2, _, out, err := ApplyAnswer(p, Tally{}, addProblem(2, 2), "4")
	require.NoError(t, err)
	_, leveled := out.LeveledUp()
	assert.False(t, leveled)
	assert.Equal(t, maxLevel, p2.Level(skills.Addition))
	assert.Equal(t, skills.XPNeeded(maxLevel), p2.XP(skills.Addition))
}

func TestApplyAnswer_XPByAttempt(t *testing.T) {
	tests := []struct {
		attempts int
		xp       int
		star     bool
	}{
		{0, 3, true},
		{1, 2, false},
		{2, 1, false},
	}
	for _, tt := range tests {
		p2, _, out, err := ApplyAnswer(DefaultProfile(), Tally{Attempts: tt.attempts}, addProblem(1, 2), "3")
		require.NoError(t, err)
		assert.Equal(t, tt.xp, out.XPGained, "attempts=%d", tt.attempts)
		assert.Equal(t, tt.star, out.Star, "attempts=%d", tt.attempts)
		if tt.star {
			assert.Equal(t, 1, p2.TotalStars)
		} else {
			assert.Equal(t, 0, p2.TotalStars)
		}
	}
}

func TestApplyAnswer_BonusXP(t *testing.T) {
	p := DefaultProfile()
	p.SkillLevels[skills.Addition] = 3 // need 20
	tally := Tally{}

	var out Outcome
	var err error
	for i := 0; i < BonusStreak; i++ {
		p, tally, out, err = ApplyAnswer(p, tally, addProblem(1, 1), "2")
		require.NoError(t, err)
		if i < BonusStreak-1 {
			assert.Zero(t, out.Bonus, "answer %d", i+1)
		}
	}
	assert.Equal(t, BonusXP, out.Bonus)
	assert.Equal(t, 3+BonusXP, out.XPGained)
	assert.Equal(t, 4*3+5, p.XP(skills.Addition))
}

func TestApplyAnswer_BonusCappedAtRequirement(t *testing.T) {
	p := DefaultProfile()
	p.SkillLevels[skills.Multiplication] = skills.MaxLevel(skills.Multiplication)
	need := skills.XPNeeded(p.Level(skills.Multiplication))
	p.SkillXP[skills.Multiplication] = need - 1

	prob := &problemgen.Problem{Answer: "6", Value: 6, Skill: skills.Multiplication, Kind: problemgen.KindMath}
	p2, _, out, err := ApplyAnswer(p, Tally{ConsecutiveCorrect: 9}, prob, "6")
	require.NoError(t, err)
	assert.Equal(t, BonusXP, out.Bonus)
	assert.Equal(t, need, p2.XP(skills.Multiplication))
}

func TestApplyAnswer_WrongSequence(t *testing.T) {
	p := DefaultProfile()
	prob := addProblem(3, 4)
	tally := Tally{Streak: 4, ConsecutiveCorrect: 4}

	p, tally, out, err := ApplyAnswer(p, tally, prob, "8")
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.False(t, out.ShowHint)
	assert.False(t, out.Advance)
	assert.Equal(t, 0, tally.Streak)
	assert.Equal(t, 0, tally.ConsecutiveCorrect)
	assert.Equal(t, 1, tally.Attempts)

	p, tally, out, err = ApplyAnswer(p, tally, prob, "9")
	require.NoError(t, err)
	assert.True(t, out.ShowHint)
	assert.False(t, out.Revealed)

	_, tally, out, err = ApplyAnswer(p, tally, prob, "10")
	require.NoError(t, err)
	assert.True(t, out.ShowHint)
	assert.True(t, out.Revealed)
	assert.True(t, out.Advance)
	assert.Equal(t, 0, tally.Attempts, "attempts reset for the next problem")
	assert.Equal(t, 3, tally.Total)
	assert.Equal(t, 0, tally.Correct)
}

func TestApplyAnswer_Demotion(t *testing.T) {
	p := DefaultProfile()
	p.SkillLevels[skills.Addition] = 2
	p.SkillXP[skills.Addition] = 15
	tally := Tally{ConsecutiveWrong: 2, Attempts: 2}

	p2, tally, out, err := ApplyAnswer(p, tally, addProblem(5, 5), "11")
	require.NoError(t, err)

	ev, ok := out.Demoted()
	require.True(t, ok)
	assert.Equal(t, 2, ev.From)
	assert.Equal(t, 1, ev.To)
	assert.Equal(t, 1, p2.Level(skills.Addition))
	assert.Less(t, p2.XP(skills.Addition), skills.XPNeeded(1))
	assert.Equal(t, 0, tally.ConsecutiveWrong)
	assert.True(t, out.Persist)

	// the same answer also exhausted the attempts
	assert.True(t, out.Revealed)
	assert.True(t, out.Advance)
}

func TestApplyAnswer_NoDemotionAtLevelZero(t *testing.T) {
	p := DefaultProfile()
	tally := Tally{ConsecutiveWrong: 5}
	p2, tally, out, err := ApplyAnswer(p, tally, addProblem(1, 1), "3")
	require.NoError(t, err)
	_, demoted := out.Demoted()
	assert.False(t, demoted)
	assert.Equal(t, 0, p2.Level(skills.Addition))
	assert.Equal(t, 6, tally.ConsecutiveWrong)
	assert.False(t, out.Persist)
}

func TestApplyAnswer_InvalidInput(t *testing.T) {
	p := DefaultProfile()
	tally := Tally{Streak: 2, Attempts: 1, Total: 4}
	for _, input := range []string{"", "seven", "7a"} {
		p2, t2, out, err := ApplyAnswer(p, tally, addProblem(3, 4), input)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Fatalf("input %q: err = %v, want ErrInvalidAnswer", input, err)
		}
		assert.Equal(t, tally, t2)
		assert.Equal(t, p, p2)
		assert.Empty(t, out.Events)
	}
}

func TestApplyAnswer_TimeProblem(t *testing.T) {
	prob := &problemgen.Problem{
		Answer: "3:15",
		Skill:  skills.TellingTime,
		Kind:   problemgen.KindClock,
		Clock:  &problemgen.ClockTime{Hour: 3, Minute: 15},
	}
	p2, _, out, err := ApplyAnswer(DefaultProfile(), Tally{}, prob, "3:15")
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, 3, p2.XP(skills.TellingTime))

	_, _, out, err = ApplyAnswer(DefaultProfile(), Tally{}, prob, "anything")
	require.NoError(t, err, "time answers are never rejected as invalid")
	assert.False(t, out.Correct)
}

func TestBestStreakNonDecreasing(t *testing.T) {
	p := DefaultProfile()
	p.BestStreak = 6
	tally := Tally{}
	for i := 0; i < 3; i++ {
		p, tally, _, _ = ApplyAnswer(p, tally, addProblem(1, 1), "2")
	}
	assert.Equal(t, 6, p.BestStreak)
	assert.Equal(t, 3, tally.Streak)
	p, tally, _, _ = ApplyAnswer(p, tally, addProblem(1, 1), "5")
	assert.Equal(t, 6, p.BestStreak)
	assert.Equal(t, 0, tally.Streak)
}

func TestClaimBadge(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p := DefaultProfile()
	for i := 0; i < 4; i++ {
		var events []Event
		p, events = ClaimBadge(p, skills.Addition, Tally{Correct: 9, Total: 10}, now)
		require.Len(t, events, 1)
		assert.Equal(t, EventBadge, events[0].Kind)
	}
	p2, events := ClaimBadge(p, skills.Subtraction, Tally{Correct: 10, Total: 12}, now)
	require.Len(t, events, 2)
	assert.Equal(t, EventBadge, events[0].Kind)
	assert.Equal(t, EventPrize, events[1].Kind)
	assert.Equal(t, 1, events[1].Prize)

	require.Len(t, p2.Badges, 5)
	last := p2.Badges[4]
	assert.Equal(t, badges.Icon(4), last.Icon)
	assert.Equal(t, "subtraction", last.Skill)
	assert.Equal(t, 10, last.Correct)
	assert.Equal(t, 12, last.Total)
	assert.Len(t, p.Badges, 4, "input ledger untouched")
}

func TestDefeatBoss(t *testing.T) {
	p := DefaultProfile()
	assert.False(t, p.TimeUnlocked())
	assert.False(t, p.SkillOpen(skills.TellingTime))
	p2, ev := DefeatBoss(p, DragonBoss)
	assert.Equal(t, EventBossDefeated, ev.Kind)
	assert.True(t, p2.TimeUnlocked())
	assert.True(t, p2.SkillOpen(skills.TellingTime))
	assert.False(t, p.TimeUnlocked())
}
