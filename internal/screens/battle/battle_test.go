package battle

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathforest/internal/boss"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/problemgen"
	"github.com/abhisek/mathforest/internal/progression"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/store"
)

func newTestGame(t *testing.T, ready bool) (*game.Game, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	p := progression.DefaultProfile()
	if ready {
		p.SkillLevels[skills.Addition] = 2
	}
	if err := st.UpsertProfile(context.Background(), persist.ToRecord("kid", p)); err != nil {
		t.Fatal(err)
	}
	g := game.New(st, "kid", game.Options{Generator: problemgen.NewSeeded(21)})
	if err := g.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close(context.Background()) })
	return g, st
}

func fighting(t *testing.T, g *game.Game) *BattleScreen {
	t.Helper()
	b := New(g)
	if b.view.Phase != boss.PhaseIntro {
		t.Fatalf("phase = %q, want intro", b.view.Phase)
	}
	if b.Init() == nil {
		t.Fatal("Init should schedule the intro timer")
	}
	b.Update(introDoneMsg{})
	if b.view.Phase != boss.PhaseFight {
		t.Fatalf("phase = %q, want fight", b.view.Phase)
	}
	return b
}

// strike answers with value and runs the pause to completion.
func strike(t *testing.T, b *BattleScreen, value string) {
	t.Helper()
	idx := -1
	for i, c := range b.choices.Options {
		if c == value {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("choice %q not offered in %v", value, b.choices.Options)
	}
	key := rune('1' + idx)
	_, cmd := b.Update(tea.KeyPressMsg{Code: key, Text: string(key)})
	if cmd == nil {
		t.Fatal("no choice command")
	}
	_, submit := b.Update(cmd())
	if submit == nil {
		t.Fatal("no submit command")
	}
	_, pause := b.Update(submit())
	if pause == nil {
		t.Fatal("strike should schedule a pause")
	}
	if !b.pending {
		t.Error("input should be locked during the pause")
	}
	b.Update(resumeMsg{})
}

func wrongChoice(b *BattleScreen) string {
	for _, c := range b.choices.Options {
		if c != b.view.Problem.Answer {
			return c
		}
	}
	return ""
}

func TestBattle_Unavailable(t *testing.T) {
	g, _ := newTestGame(t, false)
	b := New(g)
	if b.errMsg == "" {
		t.Fatal("expected an error for a sleeping dragon")
	}
	if b.Init() != nil {
		t.Error("no intro timer without an encounter")
	}
	if !strings.Contains(b.View(80, 24), "asleep") {
		t.Error("view should explain the dragon is asleep")
	}
	_, cmd := b.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("any key should go back")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestBattle_Intro(t *testing.T) {
	g, _ := newTestGame(t, true)
	b := New(g)
	if !strings.Contains(b.View(80, 30), "A wild dragon appears") {
		t.Error("intro text missing")
	}
	// Keys are ignored during the intro.
	b.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if b.view.Phase != boss.PhaseIntro {
		t.Error("intro should not be skippable by answer keys")
	}
}

func TestBattle_Win(t *testing.T) {
	g, st := newTestGame(t, true)
	b := fighting(t, g)

	for i := 0; i < boss.BossHP; i++ {
		strike(t, b, b.view.Problem.Answer)
	}
	if b.view.Phase != boss.PhaseWin {
		t.Fatalf("phase = %q, want win", b.view.Phase)
	}
	if !strings.Contains(b.View(80, 30), "Telling Time is now unlocked") {
		t.Error("win view should announce the unlock")
	}
	if !g.Profile().TimeUnlocked() {
		t.Error("profile should have telling time unlocked")
	}
	rec, err := st.GetProfile(context.Background(), "kid")
	if err != nil {
		t.Fatal(err)
	}
	if !rec.BossDefeats[progression.DragonBoss] {
		t.Error("defeat should be saved immediately")
	}

	_, cmd := b.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should leave")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if _, ok := g.Boss(); ok {
		t.Error("encounter should be dropped on leave")
	}
}

func TestBattle_LoseAndRetry(t *testing.T) {
	g, _ := newTestGame(t, true)
	b := fighting(t, g)

	for i := 0; i < boss.PlayerHP; i++ {
		strike(t, b, wrongChoice(b))
	}
	if b.view.Phase != boss.PhaseLose {
		t.Fatalf("phase = %q, want lose", b.view.Phase)
	}
	if !strings.Contains(b.View(80, 30), "try again") {
		t.Error("lose view should offer a retry")
	}

	_, cmd := b.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("retry should schedule a new intro")
	}
	if b.view.Phase != boss.PhaseIntro || b.view.BossHP != boss.BossHP || b.view.PlayerHP != boss.PlayerHP {
		t.Errorf("retry view = %+v, want a fresh intro", b.view)
	}
}

func TestBattle_MissShowsMessage(t *testing.T) {
	g, _ := newTestGame(t, true)
	b := fighting(t, g)

	key := rune('1')
	for i, c := range b.choices.Options {
		if c != b.view.Problem.Answer {
			key = rune('1' + i)
			break
		}
	}
	_, cmd := b.Update(tea.KeyPressMsg{Code: key, Text: string(key)})
	_, submit := b.Update(cmd())
	b.Update(submit())

	if b.view.PlayerHP != boss.PlayerHP-1 {
		t.Errorf("PlayerHP = %d, want %d", b.view.PlayerHP, boss.PlayerHP-1)
	}
	if b.strike == nil || b.strike.Hit {
		t.Fatal("expected a miss")
	}
	if !strings.Contains(b.View(100, 40), b.strike.Message) {
		t.Error("miss message should be shown during the pause")
	}

	// Answers during the pause are ignored.
	if _, cmd := b.Update(tea.KeyPressMsg{Code: '1', Text: "1"}); cmd != nil {
		t.Error("input should be locked during the pause")
	}
}

func TestBattle_EscLeaves(t *testing.T) {
	g, _ := newTestGame(t, true)
	b := fighting(t, g)
	if !b.InterceptsBack() {
		t.Error("battle should handle Esc itself")
	}
	_, cmd := b.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should leave")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if _, ok := g.Boss(); ok {
		t.Error("encounter should be dropped")
	}
}
