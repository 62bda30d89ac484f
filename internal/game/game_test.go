package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/session"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame(t *testing.T, seed *store.ProfileRecord) (*Game, *store.Memory, *fakeClock) {
	t.Helper()
	st := store.NewMemory()
	if seed != nil {
		require.NoError(t, st.UpsertProfile(context.Background(), seed))
	}
	clk := &fakeClock{t: time.Date(2026, 4, 1, 16, 0, 0, 0, time.UTC)}
	g := New(st, "kid", Options{
		Generator: problemgen.NewSeeded(7),
		Debounce:  10 * time.Millisecond,
		Now:       clk.Now,
		Persist:   persist.Options{SavedRevert: time.Hour, FailedRevert: time.Hour},
	})
	require.NoError(t, g.Load(context.Background()))
	t.Cleanup(func() { g.Close(context.Background()) })
	return g, st, clk
}

func wrongChoice(p problemgen.Problem) string {
	for _, c := range p.Choices {
		if c != p.Answer {
			return c
		}
	}
	return "0"
}

func storedProfile(t *testing.T, st *store.Memory) *store.ProfileRecord {
	t.Helper()
	rec, err := st.GetProfile(context.Background(), "kid")
	require.NoError(t, err)
	return rec
}

func TestLoad_Fresh(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	assert.Equal(t, progression.DefaultProfile(), g.Profile())
	assert.Equal(t, "kid", g.ID())
}

func TestSubmit_CorrectSchedulesDebouncedSave(t *testing.T) {
	g, st, _ := newTestGame(t, nil)
	ctx := context.Background()

	v, err := g.StartPractice(skills.Addition)
	require.NoError(t, err)
	assert.Equal(t, session.InputChoices, v.InputMode)

	res, v, err := g.Submit(ctx, v.Problem.Answer)
	require.NoError(t, err)
	assert.True(t, res.Outcome.Correct)
	assert.Equal(t, 1, v.Correct)
	assert.Equal(t, 1, v.Stars)

	require.Eventually(t, func() bool {
		rec, err := st.GetProfile(ctx, "kid")
		return err == nil && rec.TotalStars == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubmit_InvalidAnswerIgnored(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	before, err := g.StartPractice(skills.Multiplication)
	require.NoError(t, err)

	_, _, err = g.Submit(context.Background(), "seven")
	assert.ErrorIs(t, err, progression.ErrInvalidAnswer)

	after, _ := g.Practice()
	assert.Equal(t, before.Problem, after.Problem)
	assert.Equal(t, 0, after.Total)
	assert.False(t, g.Gateway().Pending())
}

func TestSubmit_NoPractice(t *testing.T) {
	g, _, _ := newTestGame(t, nil)
	_, _, err := g.Submit(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNoPractice)
	_, err = g.Claim(context.Background())
	assert.ErrorIs(t, err, ErrNoPractice)
	_, ok := g.Practice()
	assert.False(t, ok)
}

func TestPractice_CompleteClaimContinue(t *testing.T) {
	g, st, clk := newTestGame(t, nil)
	ctx := context.Background()

	v, err := g.StartPractice(skills.Subtraction)
	require.NoError(t, err)
	for i := 0; i < 9; i++ {
		_, v, err = g.Submit(ctx, v.Problem.Answer)
		require.NoError(t, err)
	}
	clk.Advance(8 * time.Minute)

	res, v, err := g.Submit(ctx, v.Problem.Answer)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.True(t, v.Complete)

	events, err := g.Claim(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, progression.EventBadge, events[0].Kind)

	// Claim writes through without waiting for the debounce.
	rec := storedProfile(t, st)
	require.Len(t, rec.Badges, 1)
	assert.Equal(t, "subtraction", rec.Badges[0].Skill)
	assert.Equal(t, 10, rec.Badges[0].Correct)

	_, err = g.Claim(ctx)
	assert.ErrorIs(t, err, session.ErrAlreadyClaimed)

	v, err = g.Continue()
	require.NoError(t, err)
	assert.False(t, v.Complete)
	assert.True(t, v.Claimed)

	sum, err := g.EndPractice()
	require.NoError(t, err)
	assert.Equal(t, 10, sum.TotalCorrect)
	_, ok := g.Practice()
	assert.False(t, ok)
}

func TestBoss_WinUnlocksTime(t *testing.T) {
	g, st, _ := newTestGame(t, &store.ProfileRecord{
		ID:          "kid",
		SkillLevels: map[string]int{"multiplication": 2},
	})
	ctx := context.Background()

	_, err := g.StartPractice(skills.TellingTime)
	assert.ErrorIs(t, err, session.ErrSkillLocked)

	v, err := g.StartBoss()
	require.NoError(t, err)
	assert.Equal(t, boss.PhaseIntro, v.Phase)

	_, _, err = g.SubmitBoss(ctx, "1")
	assert.ErrorIs(t, err, boss.ErrWrongPhase)

	v, err = g.BeginFight()
	require.NoError(t, err)
	require.NotNil(t, v.Problem)
	assert.Equal(t, skills.Multiplication, v.Problem.Skill)
	assert.Equal(t, 1, v.Problem.Level)

	var st1 *boss.Strike
	for v.Phase == boss.PhaseFight {
		st1, v, err = g.SubmitBoss(ctx, v.Problem.Answer)
		require.NoError(t, err)
	}
	assert.True(t, st1.Won)
	assert.Equal(t, boss.PhaseWin, v.Phase)
	assert.True(t, g.Profile().TimeUnlocked())
	assert.True(t, storedProfile(t, st).BossDefeats[progression.DragonBoss])

	_, err = g.StartBoss()
	assert.ErrorIs(t, err, boss.ErrUnavailable)
	_, err = g.StartPractice(skills.TellingTime)
	assert.NoError(t, err)
}

func TestBoss_LoseKeepsProfile(t *testing.T) {
	g, _, _ := newTestGame(t, &store.ProfileRecord{
		ID:          "kid",
		SkillLevels: map[string]int{"addition": 3},
	})
	ctx := context.Background()
	_, err := g.StartBoss()
	require.NoError(t, err)
	v, err := g.BeginFight()
	require.NoError(t, err)

	for v.Phase == boss.PhaseFight {
		_, v, err = g.SubmitBoss(ctx, wrongChoice(*v.Problem))
		require.NoError(t, err)
	}
	assert.Equal(t, boss.PhaseLose, v.Phase)
	assert.Equal(t, 0, v.PlayerHP)
	assert.False(t, g.Profile().TimeUnlocked())

	g.LeaveBoss()
	_, ok := g.Boss()
	assert.False(t, ok)
	_, err = g.BeginFight()
	assert.ErrorIs(t, err, ErrNoEncounter)
}

func TestSetName(t *testing.T) {
	g, st, _ := newTestGame(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, g.SetName(ctx, "   "), ErrEmptyName)

	require.NoError(t, g.SetName(ctx, "  Luna  "))
	assert.Equal(t, "Luna", storedProfile(t, st).Name)

	require.NoError(t, g.SetName(ctx, strings.Repeat("é", 30)))
	assert.Equal(t, strings.Repeat("é", MaxNameLength), g.Profile().Name)
}

func TestReset(t *testing.T) {
	g, st, _ := newTestGame(t, &store.ProfileRecord{
		ID:          "kid",
		Name:        "Old",
		SkillLevels: map[string]int{"addition": 5},
		TotalStars:  40,
		BossDefeats: map[string]bool{progression.DragonBoss: true},
	})
	ctx := context.Background()
	_, err := g.StartPractice(skills.Addition)
	require.NoError(t, err)

	require.NoError(t, g.Reset(ctx))
	assert.Equal(t, progression.DefaultProfile(), g.Profile())
	_, ok := g.Practice()
	assert.False(t, ok)

	rec := storedProfile(t, st)
	assert.Empty(t, rec.Name)
	assert.Equal(t, 0, rec.TotalStars)
	assert.False(t, rec.BossDefeats[progression.DragonBoss])
}

func TestHome(t *testing.T) {
	g, _, _ := newTestGame(t, &store.ProfileRecord{
		ID:          "kid",
		Name:        "Ada",
		SkillLevels: map[string]int{"addition": 2, "subtraction": 3},
		SkillXP:     map[string]int{"addition": 4},
	})
	h := g.Home()
	assert.Equal(t, "Ada", h.Name)
	assert.Equal(t, 5, h.TotalLevel)
	assert.Equal(t, "Enchanter", h.Rank.Title)
	assert.True(t, h.BossAvailable)
	assert.False(t, h.BossDefeated)
	require.Len(t, h.Skills, len(skills.All()))
	for _, c := range h.Skills {
		if c.ID == skills.Addition {
			assert.Equal(t, 4, c.XP)
			assert.Equal(t, 16, c.XPNeeded)
		}
		if c.ID == skills.TellingTime {
			assert.True(t, c.Locked)
		}
	}
	assert.Len(t, h.Shelf, 2)
}

func TestClose_FlushesPending(t *testing.T) {
	st := store.NewMemory()
	g := New(st, "kid", Options{Generator: problemgen.NewSeeded(1), Debounce: time.Hour})
	ctx := context.Background()
	require.NoError(t, g.Load(ctx))

	v, err := g.StartPractice(skills.Addition)
	require.NoError(t, err)
	_, _, err = g.Submit(ctx, v.Problem.Answer)
	require.NoError(t, err)
	assert.True(t, g.Gateway().Pending())

	require.NoError(t, g.Close(ctx))
	rec, err := st.GetProfile(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalStars)
}

type brokenStore struct{ *store.Memory }

func (brokenStore) UpsertProfile(context.Context, *store.ProfileRecord) error {
	return errors.New("disk full")
}

func TestSaveFailureKeepsState(t *testing.T) {
	g := New(brokenStore{store.NewMemory()}, "kid", Options{
		Persist: persist.Options{FailedRevert: time.Hour},
	})
	ctx := context.Background()
	require.NoError(t, g.Load(ctx))

	err := g.SetName(ctx, "Pip")
	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.Equal(t, "Pip", g.Profile().Name)
	assert.Equal(t, persist.StatusFailed, g.SaveStatus())
	_ = g.Close(ctx)
}
