package home

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/badges"
	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/screens/battle"
	sessionscreen "github.com/abhisek/mathforest/internal/screens/session"
	"github.com/abhisek/mathforest/internal/screens/shelf"
	"github.com/abhisek/mathforest/internal/screens/skillmap"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// Options configure the home screen.
type Options struct {
	// OnSignOut, when set, adds a sign-out entry that runs the returned command.
	OnSignOut func() tea.Cmd

	// Now defaults to time.Now.
	Now func() time.Time
}

// HomeScreen is the main menu.
type HomeScreen struct {
	g    *game.Game
	opts Options

	view game.HomeView
	menu components.Menu

	// naming is set while the name prompt is shown.
	naming  bool
	input   components.TextInput
	nameErr string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.BackInterceptor = (*HomeScreen)(nil)

// New creates the home screen. A learner without a name is asked for one
// first.
func New(g *game.Game, opts Options) *HomeScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	h := &HomeScreen{g: g, opts: opts}
	h.refresh()
	if h.view.Name == "" {
		h.startNaming()
	}
	return h
}

func (h *HomeScreen) refresh() {
	h.view = h.g.Home()
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	h.menu.Select(selected)
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for _, c := range h.view.Skills {
		id := c.ID
		items = append(items, components.MenuItem{
			Label:    c.Icon + " " + c.Name,
			Detail:   skillDetail(c),
			Disabled: c.Locked,
			Action: func() tea.Cmd {
				return push(sessionscreen.New(h.g, id))
			},
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "🐉 Dragon Battle",
			Detail:   bossDetail(h.view),
			Disabled: !h.view.BossAvailable,
			Action: func() tea.Cmd {
				return push(battle.New(h.g))
			},
		},
		components.MenuItem{
			Label: "🗺️ Skill Map",
			Action: func() tea.Cmd {
				return push(skillmap.New(h.g))
			},
		},
		components.MenuItem{
			Label: "🏅 Badge Shelf",
			Action: func() tea.Cmd {
				return push(shelf.New(h.g.Profile().Badges))
			},
		},
		components.MenuItem{
			Label: "✏️ Rename",
			Action: func() tea.Cmd {
				return h.startNaming()
			},
		},
	)
	if h.opts.OnSignOut != nil {
		items = append(items, components.MenuItem{Label: "🚪 Sign out", Action: h.opts.OnSignOut})
	}
	items = append(items, components.MenuItem{
		Label:  "Quit",
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

func (h *HomeScreen) startNaming() tea.Cmd {
	h.naming = true
	h.nameErr = ""
	h.input = components.NewTextInput("your name", components.InputText, game.MaxNameLength)
	if h.view.Name != "" {
		h.input.SetValue(h.view.Name)
	}
	return h.input.Focus()
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.naming {
		return h.input.Init()
	}
	return nil
}

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) InterceptsBack() bool { return h.naming }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.naming {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Save name"}}
		if h.view.Name != "" {
			hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Cancel"})
		}
		return hints
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Choose"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.RefreshMsg); ok {
		h.refresh()
		return h, nil
	}
	if h.naming {
		return h, h.updateNaming(msg)
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) updateNaming(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			err := h.g.SetName(context.Background(), h.input.Value())
			switch {
			case errors.Is(err, game.ErrEmptyName):
				h.nameErr = "Please type a name."
				return nil
			case err != nil && !errors.Is(err, game.ErrSaveFailed):
				h.nameErr = err.Error()
				return nil
			}
			h.naming = false
			h.input.Blur()
			h.refresh()
			return nil
		case "esc":
			if h.view.Name != "" {
				h.naming = false
				h.input.Blur()
			}
			return nil
		}
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	if n := len(h.view.Badges); n > 0 && h.view.Badges[n-1].Date == h.opts.Now().Format(badges.DateLayout) {
		return MascotCelebrating
	}
	if h.view.BossAvailable {
		return MascotAlert
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 26 || width < 90
	cw := components.ContentWidth(width)

	var sections []string
	if h.naming {
		sections = append(sections,
			RenderMascot(MascotIdle),
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("What should the forest call you?"),
			components.Card(h.input.View(), cw),
		)
		if h.nameErr != "" {
			sections = append(sections, theme.Incorrect.Render(h.nameErr))
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, sections...))
	}

	if !compact {
		sections = append(sections, RenderMascot(h.mascot()))
	}
	sections = append(sections,
		renderGreeting(h.view),
		renderStats(h.view, cw, compact),
		lipgloss.NewStyle().Width(cw).Render(strings.TrimRight(h.menu.View(), "\n")),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
