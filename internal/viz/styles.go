package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header  lipgloss.Style
	canvas  lipgloss.Style
	sprite  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	help    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		canvas: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Foreground(t.Text),
		sprite:  lipgloss.NewStyle().Foreground(t.Accent),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		running: lipgloss.NewStyle().Foreground(t.Running).Bold(true),
		paused:  lipgloss.NewStyle().Foreground(t.Paused).Bold(true),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
	}
}

// Sparkline renders values scaled into block characters, newest last.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
