// Package app wires the screens into the Bubble Tea program.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/persist"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/screens/home"
	"github.com/abhisek/mathforest/internal/screens/login"
	"github.com/abhisek/mathforest/internal/screens/welcome"
	"github.com/abhisek/mathforest/internal/ui/layout"
)

// GuestID is the profile used when playing without an account.
const GuestID = "guest"

// Options holds the dependencies the app needs.
type Options struct {
	Provider auth.Provider

	// OpenGame returns a loaded game for the identity id.
	OpenGame func(ctx context.Context, id string) (*game.Game, error)

	// SkipWelcome starts on the login or home screen directly.
	SkipWelcome bool
}

// signedOutMsg returns to the login screen after sign-out.
type signedOutMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	cur    *current
	opts   Options
	width  int
	height int
}

// newAppModel creates the model, starting on the welcome animation.
func newAppModel(opts Options) AppModel {
	m := AppModel{cur: &current{}, opts: opts}
	start := m.entry
	if opts.SkipWelcome {
		m.router = router.New(start())
	} else {
		m.router = router.New(welcome.New(start))
	}
	return m
}

// entry resumes a stored session or asks the learner to sign in.
func (m AppModel) entry() screen.Screen {
	ctx := context.Background()
	if s, err := m.opts.Provider.CurrentSession(ctx); err == nil && s != nil {
		if next, err := m.enter(ctx, s); err == nil {
			return next
		}
	}
	return login.New(m.opts.Provider, m.enter)
}

// enter opens the game for s (nil means guest) and returns its home screen.
func (m AppModel) enter(ctx context.Context, s *auth.Session) (screen.Screen, error) {
	id := GuestID
	if s != nil {
		id = s.ID
	}
	g, err := m.opts.OpenGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("open profile: %w", err)
	}
	m.cur.attach(g)

	var hopts home.Options
	if s != nil {
		hopts.OnSignOut = m.signOut
	}
	return home.New(g, hopts), nil
}

func (m AppModel) signOut() tea.Cmd {
	provider := m.opts.Provider
	return func() tea.Msg {
		provider.SignOut(context.Background())
		return signedOutMsg{}
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case saveStatusMsg:
		return m, nil

	case signedOutMsg:
		m.cur.detach()
		return m, m.router.Replace(login.New(m.opts.Provider, m.enter))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func saveText(s persist.Status) string {
	switch s {
	case persist.StatusSaving:
		return "💾 saving…"
	case persist.StatusSaved:
		return "✓ saved"
	case persist.StatusFailed:
		return "⚠ save failed"
	default:
		return ""
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var stats layout.Stats
	if stars, potions, status, ok := m.cur.stats(); ok {
		stats = layout.Stats{Stars: stars, Potions: potions, Save: saveText(status)}
	}
	header := layout.RenderHeader(title, stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and closes the open game on exit.
func Run(opts Options) error {
	m := newAppModel(opts)
	p := tea.NewProgram(m)
	m.cur.setSender(p.Send)
	defer m.cur.detach()

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
