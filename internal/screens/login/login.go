// Package login is the sign-in screen shown when no session is stored.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/auth"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/ui/components"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// EnterFunc opens the game for a signed-in session, or the guest game when
// s is nil, and returns the screen to show next.
type EnterFunc func(ctx context.Context, s *auth.Session) (screen.Screen, error)

type mode int

const (
	modeSignIn mode = iota
	modeSignUp
)

// Focus order.
const (
	focusEmail = iota
	focusPassword
	focusSubmit
	focusSwitch
	focusGuest
	focusCount
)

type resultMsg struct {
	next   screen.Screen
	signUp auth.SignUpResult
	err    error
}

// LoginScreen collects an email and password.
type LoginScreen struct {
	provider auth.Provider
	enter    EnterFunc

	mode     mode
	focus    int
	email    components.TextInput
	password components.TextInput

	busy    bool
	message string
	isError bool
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen.
func New(provider auth.Provider, enter EnterFunc) *LoginScreen {
	l := &LoginScreen{
		provider: provider,
		enter:    enter,
		email:    components.NewTextInput("you@example.com", components.InputText, 80),
		password: components.NewTextInput("password", components.InputSecret, 72),
	}
	l.password.Blur()
	return l
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.email.Init()
}

func (l *LoginScreen) Title() string {
	if l.mode == modeSignUp {
		return "Create Account"
	}
	return "Sign In"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		return l, l.handleResult(msg)

	case tea.KeyPressMsg:
		if l.busy {
			return l, nil
		}
		switch msg.String() {
		case "tab", "down":
			return l, l.setFocus((l.focus + 1) % focusCount)
		case "shift+tab", "up":
			return l, l.setFocus((l.focus + focusCount - 1) % focusCount)
		case "enter":
			return l, l.activate()
		}
	}

	var cmd tea.Cmd
	switch l.focus {
	case focusEmail:
		l.email, cmd = l.email.Update(msg)
	case focusPassword:
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l *LoginScreen) setFocus(f int) tea.Cmd {
	l.focus = f
	l.email.Blur()
	l.password.Blur()
	switch f {
	case focusEmail:
		return l.email.Focus()
	case focusPassword:
		return l.password.Focus()
	}
	return nil
}

func (l *LoginScreen) activate() tea.Cmd {
	switch l.focus {
	case focusEmail:
		return l.setFocus(focusPassword)
	case focusPassword, focusSubmit:
		return l.submit()
	case focusSwitch:
		if l.mode == modeSignIn {
			l.mode = modeSignUp
		} else {
			l.mode = modeSignIn
		}
		l.message = ""
		return nil
	case focusGuest:
		l.busy = true
		return l.open(nil)
	}
	return nil
}

func (l *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()
	if email == "" || password == "" {
		l.showError("Type your email and password first.")
		return nil
	}

	l.busy = true
	l.message = ""
	provider, enter, signUp := l.provider, l.enter, l.mode == modeSignUp
	return func() tea.Msg {
		ctx := context.Background()
		var (
			sess *auth.Session
			res  auth.SignUpResult
			err  error
		)
		if signUp {
			res, sess, err = provider.SignUp(ctx, email, password)
		} else {
			sess, err = provider.SignInWithPassword(ctx, email, password)
		}
		if err != nil || sess == nil {
			return resultMsg{signUp: res, err: err}
		}
		next, err := enter(ctx, sess)
		return resultMsg{next: next, signUp: res, err: err}
	}
}

func (l *LoginScreen) open(s *auth.Session) tea.Cmd {
	enter := l.enter
	return func() tea.Msg {
		next, err := enter(context.Background(), s)
		return resultMsg{next: next, err: err}
	}
}

func (l *LoginScreen) handleResult(msg resultMsg) tea.Cmd {
	l.busy = false
	if msg.err != nil {
		l.showError(auth.UserMessage(msg.err))
		return nil
	}
	if msg.next != nil {
		next := msg.next
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	switch msg.signUp {
	case auth.ConfirmationSent:
		l.showInfo("We sent you an email. Confirm it, then sign in!")
	case auth.AlreadyRegistered:
		l.showInfo("You already have an account. Sign in!")
	}
	l.mode = modeSignIn
	l.password.Reset()
	return l.setFocus(focusPassword)
}

func (l *LoginScreen) showError(m string) { l.message, l.isError = m, true }
func (l *LoginScreen) showInfo(m string)  { l.message, l.isError = m, false }

func (l *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	label := lipgloss.NewStyle().Foreground(theme.TextDim)

	submit, other := "Sign in", "New here? Create an account"
	if l.mode == modeSignUp {
		submit, other = "Create account", "Have an account? Sign in"
	}

	sections := []string{
		theme.Title.Render(l.Title()),
		"",
		label.Render("Email"),
		l.email.View(),
		"",
		label.Render("Password"),
		l.password.View(),
		"",
		components.Button(submit, l.focus == focusSubmit, cw/2),
		components.Button(other, l.focus == focusSwitch, cw/2),
		components.Button("Play as guest", l.focus == focusGuest, cw/2),
	}

	switch {
	case l.busy:
		sections = append(sections, "", theme.Hint.Render("Just a moment..."))
	case l.message != "":
		style := lipgloss.NewStyle().Foreground(theme.Secondary)
		if l.isError {
			style = style.Foreground(theme.Error)
		}
		sections = append(sections, "", style.Render(l.message))
	}

	card := components.Card(lipgloss.JoinVertical(lipgloss.Center, sections...), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
