package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathforest/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label string
	Value int
	Max   int
	Width int
	// Fill is the filled color; the theme secondary when nil.
	Fill color.Color
}

// NewProgressBar creates a bar showing value out of maxVal.
func NewProgressBar(label string, value, maxVal, width int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Max: maxVal, Width: width}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Max <= 0 {
		return 1
	}
	return min(max(float64(p.Value)/float64(p.Max), 0), 1)
}

// View renders the progress bar followed by "value/max".
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	count := fmt.Sprintf("  %d/%d", p.Value, p.Max)
	if p.Max <= 0 {
		count = "  MAX"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-len(count), 4)
	filled := int(float64(barWidth) * p.Percent())

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return result + lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
}

// Hearts renders n of total hit points as icons, spent ones dimmed.
func Hearts(n, total int, full, spent string) string {
	n = min(max(n, 0), total)
	return strings.Repeat(full, n) +
		lipgloss.NewStyle().Faint(true).Render(strings.Repeat(spent, total-n))
}
