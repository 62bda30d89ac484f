package boss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/skills"
)

func readyProfile() progression.Profile {
	p := progression.DefaultProfile()
	p.SkillLevels[skills.Addition] = 2
	return p
}

func wrong(p *problemgen.Problem) string {
	for _, c := range p.Choices {
		if c != p.Answer {
			return c
		}
	}
	return "-1"
}

func TestBegin_Gated(t *testing.T) {
	c := NewController(problemgen.NewSeeded(1))

	_, err := c.Begin(progression.DefaultProfile())
	assert.ErrorIs(t, err, ErrUnavailable)

	e, err := c.Begin(readyProfile())
	require.NoError(t, err)
	assert.Equal(t, PhaseIntro, e.Phase)
	assert.Equal(t, BossHP, e.BossHP)
	assert.Equal(t, PlayerHP, e.PlayerHP)
	assert.Nil(t, e.Problem)

	defeated, _ := progression.DefeatBoss(readyProfile(), progression.DragonBoss)
	_, err = c.Begin(defeated)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFight(t *testing.T) {
	c := NewController(problemgen.NewSeeded(2))
	p := readyProfile()
	e, _ := c.Begin(p)

	_, err := c.Answer(e, p, "1")
	assert.ErrorIs(t, err, ErrWrongPhase)

	require.NoError(t, c.Fight(e, p))
	assert.Equal(t, PhaseFight, e.Phase)
	require.NotNil(t, e.Problem)
	assert.Equal(t, skills.Addition, e.Problem.Skill)
	assert.Equal(t, 1, e.Problem.Level)

	assert.ErrorIs(t, c.Fight(e, p), ErrWrongPhase)
}

func TestWin(t *testing.T) {
	c := NewController(problemgen.NewSeeded(3))
	p := readyProfile()
	e, _ := c.Begin(p)
	require.NoError(t, c.Fight(e, p))

	var st *Strike
	var err error
	for i := 0; i < BossHP; i++ {
		st, err = c.Answer(e, p, e.Problem.Answer)
		require.NoError(t, err)
		assert.True(t, st.Hit)
		assert.NotEmpty(t, st.Message)
		if i < BossHP-1 {
			assert.False(t, st.Won)
			assert.Nil(t, st.Profile)
		}
	}
	assert.True(t, st.Won)
	assert.Equal(t, PhaseWin, e.Phase)
	require.NotNil(t, st.Profile)
	assert.True(t, st.Profile.BossDefeats[progression.DragonBoss])
	assert.True(t, st.Profile.TimeUnlocked())
	assert.False(t, p.TimeUnlocked(), "input profile untouched")
}

func TestWin_AfterTwoMisses(t *testing.T) {
	c := NewController(problemgen.NewSeeded(6))
	p := readyProfile()
	e, _ := c.Begin(p)
	require.NoError(t, c.Fight(e, p))

	for range PlayerHP - 1 {
		st, err := c.Answer(e, p, wrong(e.Problem))
		require.NoError(t, err)
		assert.False(t, st.Lost)
	}
	assert.Equal(t, 1, e.PlayerHP)

	var st *Strike
	for range BossHP {
		var err error
		st, err = c.Answer(e, p, e.Problem.Answer)
		require.NoError(t, err)
	}
	assert.True(t, st.Won)
	assert.Equal(t, PhaseWin, e.Phase)
	assert.Equal(t, 0, e.BossHP)
	assert.Equal(t, 1, e.PlayerHP)
	require.NotNil(t, st.Profile)
	assert.True(t, st.Profile.BossDefeats[progression.DragonBoss])
}

func TestLoseAndRetry(t *testing.T) {
	c := NewController(problemgen.NewSeeded(4))
	p := readyProfile()
	e, _ := c.Begin(p)
	require.NoError(t, c.Fight(e, p))

	_, err := c.Answer(e, p, e.Problem.Answer)
	require.NoError(t, err)
	assert.Equal(t, BossHP-1, e.BossHP)

	var st *Strike
	for i := 0; i < PlayerHP; i++ {
		st, err = c.Answer(e, p, wrong(e.Problem))
		require.NoError(t, err)
		assert.False(t, st.Hit)
	}
	assert.True(t, st.Lost)
	assert.Equal(t, PhaseLose, e.Phase)
	assert.Nil(t, st.Profile)

	_, err = c.Answer(e, p, "1")
	assert.ErrorIs(t, err, ErrWrongPhase)

	retry, err := c.Begin(p)
	require.NoError(t, err)
	assert.Equal(t, PhaseIntro, retry.Phase)
	assert.Equal(t, BossHP, retry.BossHP)
}

func TestAnswer_InvalidInput(t *testing.T) {
	c := NewController(problemgen.NewSeeded(5))
	p := readyProfile()
	e, _ := c.Begin(p)
	require.NoError(t, c.Fight(e, p))
	prob := e.Problem

	_, err := c.Answer(e, p, "fire!")
	assert.ErrorIs(t, err, progression.ErrInvalidAnswer)
	assert.Equal(t, BossHP, e.BossHP)
	assert.Equal(t, PlayerHP, e.PlayerHP)
	assert.Same(t, prob, e.Problem)
}
