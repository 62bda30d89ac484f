package game

import (
	"context"

	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
)

// BossView is a read-only picture of the running encounter.
type BossView struct {
	Phase    boss.Phase
	BossHP   int
	PlayerHP int
	Problem  *problemgen.Problem
}

// StartBoss enters the intro phase. It fails with boss.ErrUnavailable while
// the boss is locked or already defeated.
func (g *Game) StartBoss() (BossView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	e, err := g.bosses.Begin(g.profile)
	if err != nil {
		return BossView{}, err
	}
	g.encounter = e
	g.practice = nil
	g.log.Info("boss encounter started")
	return g.bossView(), nil
}

// BeginFight moves from intro to fight and serves the first problem.
func (g *Game) BeginFight() (BossView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.encounter == nil {
		return BossView{}, ErrNoEncounter
	}
	if err := g.bosses.Fight(g.encounter, g.profile); err != nil {
		return BossView{}, err
	}
	return g.bossView(), nil
}

// Boss returns the running encounter, if any.
func (g *Game) Boss() (BossView, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.encounter == nil {
		return BossView{}, false
	}
	return g.bossView(), true
}

// SubmitBoss strikes with input. Winning records the defeat and saves
// immediately.
func (g *Game) SubmitBoss(ctx context.Context, input string) (*boss.Strike, BossView, error) {
	g.mu.Lock()
	if g.encounter == nil {
		g.mu.Unlock()
		return nil, BossView{}, ErrNoEncounter
	}
	st, err := g.bosses.Answer(g.encounter, g.profile, input)
	if err != nil {
		g.mu.Unlock()
		return nil, BossView{}, err
	}
	if st.Profile != nil {
		g.profile = *st.Profile
	}
	view := g.bossView()
	g.mu.Unlock()

	if st.Won {
		g.log.Info("boss defeated")
		return st, view, g.save(ctx, persist.Immediate)
	}
	return st, view, nil
}

// LeaveBoss drops the encounter.
func (g *Game) LeaveBoss() {
	g.mu.Lock()
	g.encounter = nil
	g.mu.Unlock()
}

func (g *Game) bossView() BossView {
	e := g.encounter
	v := BossView{Phase: e.Phase, BossHP: e.BossHP, PlayerHP: e.PlayerHP}
	if e.Problem != nil {
		prob := *e.Problem
		v.Problem = &prob
	}
	return v
}
