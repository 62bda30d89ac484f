package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathforest/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	updates int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	s.updates++
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestNavigation(t *testing.T) {
	tests := []struct {
		name      string
		run       func(r *Router, next *stubScreen)
		wantDepth int
		wantTitle string
		wantInit  bool
	}{
		{
			name:      "push",
			run:       func(r *Router, next *stubScreen) { r.Push(next) },
			wantDepth: 2, wantTitle: "practice", wantInit: true,
		},
		{
			name:      "push message",
			run:       func(r *Router, next *stubScreen) { r.Update(PushScreenMsg{Screen: next}) },
			wantDepth: 2, wantTitle: "practice", wantInit: true,
		},
		{
			name: "pop",
			run: func(r *Router, next *stubScreen) {
				r.Push(next)
				r.Update(PopScreenMsg{})
			},
			wantDepth: 1, wantTitle: "home", wantInit: true,
		},
		{
			name:      "pop at bottom",
			run:       func(r *Router, _ *stubScreen) { r.Pop() },
			wantDepth: 1, wantTitle: "home",
		},
		{
			name:      "replace root",
			run:       func(r *Router, next *stubScreen) { r.Update(ReplaceScreenMsg{Screen: next}) },
			wantDepth: 1, wantTitle: "practice", wantInit: true,
		},
		{
			name: "replace keeps depth",
			run: func(r *Router, next *stubScreen) {
				r.Push(&stubScreen{title: "skill map"})
				r.Replace(next)
			},
			wantDepth: 2, wantTitle: "practice", wantInit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "home"})
			next := &stubScreen{title: "practice"}
			tt.run(r, next)

			if r.Depth() != tt.wantDepth {
				t.Errorf("depth = %d, want %d", r.Depth(), tt.wantDepth)
			}
			if got := r.Active().Title(); got != tt.wantTitle {
				t.Errorf("active = %q, want %q", got, tt.wantTitle)
			}
			if next.initRan != tt.wantInit {
				t.Errorf("Init ran = %v, want %v", next.initRan, tt.wantInit)
			}
		})
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)
	r.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if home.updates != 1 {
		t.Errorf("updates = %d, want 1", home.updates)
	}
}

func TestPopToRoot(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "practice"})
	r.Push(&stubScreen{title: "summary"})

	cmd := r.Update(PopToRootMsg{})

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if _, ok := cmd().(RefreshMsg); !ok {
		t.Errorf("expected RefreshMsg, got %T", cmd())
	}
}

func TestPopSendsRefresh(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "badges"})

	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("expected refresh command after pop")
	}
	if _, ok := cmd().(RefreshMsg); !ok {
		t.Errorf("expected RefreshMsg, got %T", cmd())
	}
	if r.Pop() != nil {
		t.Error("expected no command when popping the last screen")
	}
}
