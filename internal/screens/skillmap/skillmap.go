package skillmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/game"
	"github.com/abhisek/mathforest/internal/router"
	"github.com/abhisek/mathforest/internal/screen"
	"github.com/abhisek/mathforest/internal/skills"
	"github.com/abhisek/mathforest/internal/ui/layout"
	"github.com/abhisek/mathforest/internal/ui/theme"
)

// Strand groups the map rows.
type Strand string

const (
	StrandMath Strand = "Math Magic"
	StrandTime Strand = "Clock Tower"
)

func strandOf(id skills.ID) Strand {
	if id == skills.TellingTime {
		return StrandTime
	}
	return StrandMath
}

type rowKind int

const (
	rowStrandHeader rowKind = iota
	rowSkill
)

type row struct {
	kind   rowKind
	strand Strand
	card   game.SkillCard
}

// State is how far along a skill is.
type State int

const (
	StateNew State = iota
	StateLearning
	StateMastered
	StateLocked
)

func stateOf(c game.SkillCard) State {
	switch {
	case c.Locked:
		return StateLocked
	case c.Level >= c.MaxLevel:
		return StateMastered
	case c.Level > 0 || c.XP > 0:
		return StateLearning
	default:
		return StateNew
	}
}

// Icon returns the row marker for the state.
func (s State) Icon() string {
	switch s {
	case StateMastered:
		return "★"
	case StateLearning:
		return "◐"
	case StateLocked:
		return "🔒"
	default:
		return "○"
	}
}

// Label returns the state name.
func (s State) Label() string {
	switch s {
	case StateMastered:
		return "Mastered"
	case StateLearning:
		return "Learning"
	case StateLocked:
		return "Locked"
	default:
		return "New"
	}
}

// SkillMapScreen lists every skill grouped by strand.
type SkillMapScreen struct {
	g            *game.Game
	rows         []row
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a skill map over g's current progress.
func New(g *game.Game) *SkillMapScreen {
	s := &SkillMapScreen{g: g}
	s.load()
	for i, r := range s.rows {
		if r.kind == rowSkill {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *SkillMapScreen) load() {
	s.rows = s.rows[:0]
	var last Strand
	for _, c := range s.g.Home().Skills {
		if st := strandOf(c.ID); st != last {
			s.rows = append(s.rows, row{kind: rowStrandHeader, strand: st})
			last = st
		}
		s.rows = append(s.rows, row{kind: rowSkill, strand: last, card: c})
	}
}

func (s *SkillMapScreen) Init() tea.Cmd {
	return nil
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.RefreshMsg:
		s.load()
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextStrand()
		case "shift+tab":
			s.prevStrand()
		case "enter":
			return s, s.selectSkill()
		case "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SkillMapScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return ""
	}

	s.adjustScroll(height)

	var lines []string
	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}

		switch r.kind {
		case rowStrandHeader:
			lines = append(lines, renderStrandHeader(r.strand, width))
		case rowSkill:
			lines = append(lines, renderSkillRow(r.card, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

// KeyHints returns the key binding hints for the footer.
func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Strand"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

// moveCursor moves the cursor by delta, skipping strand headers.
func (s *SkillMapScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowSkill {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextStrand jumps to the first skill of the next strand.
func (s *SkillMapScreen) nextStrand() {
	current := s.rows[s.cursor].strand
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowSkill && s.rows[i].strand != current {
			s.cursor = i
			return
		}
	}
}

// prevStrand jumps to the first skill of the previous strand.
func (s *SkillMapScreen) prevStrand() {
	current := s.rows[s.cursor].strand
	target := -1
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowSkill && s.rows[i].strand != current {
			target = i
			break
		}
	}
	if target < 0 {
		return
	}
	prev := s.rows[target].strand
	for target > 0 && s.rows[target-1].kind == rowSkill && s.rows[target-1].strand == prev {
		target--
	}
	s.cursor = target
}

// adjustScroll keeps the cursor and its strand header in view.
func (s *SkillMapScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowStrandHeader {
		headerRow--
	}

	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *SkillMapScreen) selectSkill() tea.Cmd {
	r := s.rows[s.cursor]
	if r.kind != rowSkill {
		return nil
	}
	detail := newSkillDetail(s.g, r.card)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: detail}
	}
}

func renderStrandHeader(strand Strand, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(string(strand)))
}

func renderSkillRow(c game.SkillCard, selected bool, width int) string {
	state := stateOf(c)

	nameWidth := max(width-4-3-10-12-4, 10)
	name := c.Icon + " " + c.Name
	if lipgloss.Width(name) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}
	level := fmt.Sprintf("Lv %d/%d", c.Level, c.MaxLevel)

	var nameStyle, levelStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
		levelStyle = lipgloss.NewStyle().Foreground(theme.Gold)
		labelStyle = levelStyle
	case state == StateMastered:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		levelStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = nameStyle
	case state == StateLocked:
		nameStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		levelStyle = nameStyle
		labelStyle = nameStyle
	default:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
		levelStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	pad := strings.Repeat(" ", max(nameWidth-lipgloss.Width(name), 0))
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		state.Icon(),
		nameStyle.Render(name+pad),
		levelStyle.Render(fmt.Sprintf("%-10s", level)),
		labelStyle.Render(fmt.Sprintf("%9s", state.Label())),
	)
}
