package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/oscillo/internal/dynamo"
)

type styles struct {
	header, value, active, muted, marker, trail lipgloss.Style
	axis                                        [3]lipgloss.Style
	panel                                       lipgloss.Style
}

func newStyles(t Theme) styles {
	s := styles{
		header: lipgloss.NewStyle().Foreground(t.Active).Bold(true).MarginBottom(1),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		marker: lipgloss.NewStyle().Foreground(t.Marker).Bold(true),
		trail:  lipgloss.NewStyle().Foreground(t.Trail),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2).
			Width(50),
	}
	for _, a := range dynamo.Axes {
		s.axis[a] = lipgloss.NewStyle().Foreground(t.Axis[a])
	}
	return s
}

// ParamBar draws v as a fraction of r.
func ParamBar(v float64, r dynamo.Range, width int) string {
	ratio := 0.0
	if span := r.Max - r.Min; span > 0 {
		ratio = (r.Clamp(v) - r.Min) / span
	}
	filled := int(ratio*float64(width) + 0.5)
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

// Sparkline renders the last width values with block glyphs.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := floats.Min(values), floats.Max(values)
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
