package components

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

const (
	clockRadius = 5
	// Terminal cells are about twice as tall as wide.
	clockAspect = 2.0
)

// ClockFace draws an analog clock showing hour:minute with the hour hand
// in amber and the minute hand in sky blue.
func ClockFace(hour, minute int) string {
	w := int(clockRadius*clockAspect)*2 + 1
	h := clockRadius*2 + 1
	cx, cy := float64(w/2), float64(h/2)

	grid := make([][]rune, h)
	kind := make([][]byte, h)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", w))
		kind[y] = make([]byte, w)
	}
	put := func(angle, r float64, ch rune, k byte) {
		x := int(math.Round(cx + math.Sin(angle)*r*clockAspect))
		y := int(math.Round(cy - math.Cos(angle)*r))
		if y >= 0 && y < h && x >= 0 && x < w {
			grid[y][x] = ch
			kind[y][x] = k
		}
	}

	for i := 0; i < 12; i++ {
		put(float64(i)/12*2*math.Pi, clockRadius, '·', 'r')
	}
	put(0, clockRadius, '⓬', 'n')
	put(math.Pi/2, clockRadius, '③', 'n')
	put(math.Pi, clockRadius, '⑥', 'n')
	put(3*math.Pi/2, clockRadius, '⑨', 'n')

	minuteAngle := float64(minute) / 60 * 2 * math.Pi
	hourAngle := (float64(hour%12) + float64(minute)/60) / 12 * 2 * math.Pi
	for r := 0.5; r <= clockRadius-1; r += 0.5 {
		put(minuteAngle, r, '•', 'm')
	}
	for r := 0.5; r <= clockRadius-2.5; r += 0.5 {
		put(hourAngle, r, '●', 'h')
	}
	grid[int(cy)][int(cx)] = '◉'
	kind[int(cy)][int(cx)] = 'c'

	styles := map[byte]lipgloss.Style{
		'r': lipgloss.NewStyle().Foreground(theme.TextDim),
		'n': lipgloss.NewStyle().Foreground(theme.Text).Bold(true),
		'm': lipgloss.NewStyle().Foreground(theme.Secondary),
		'h': lipgloss.NewStyle().Foreground(theme.Accent),
		'c': lipgloss.NewStyle().Foreground(theme.Gold),
	}
	lines := make([]string, h)
	for y := range grid {
		var b strings.Builder
		for x, ch := range grid[y] {
			if st, ok := styles[kind[y][x]]; ok {
				b.WriteString(st.Render(string(ch)))
			} else {
				b.WriteRune(ch)
			}
		}
		lines[y] = b.String()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
