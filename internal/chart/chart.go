// Package chart renders sparklines and values for sensor series, coloured
// against the sensor's own max/crit thresholds.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/lmsensors/internal/history"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var (
	colorOk   = lipgloss.Color("78")
	colorWarm = lipgloss.Color("220")
	colorHigh = lipgloss.Color("208")
	colorCrit = lipgloss.Color("196")
	colorNone = lipgloss.Color("240")
	colorPad  = lipgloss.Color("236")
	colorTick = lipgloss.Color("239")
)

// Limits are the upper thresholds reported for a sensor.
type Limits struct {
	High    float64
	Crit    float64
	HasHigh bool
	HasCrit bool
}

// Color returns the colour for v given the limits.
func Color(v float64, l Limits) lipgloss.Color {
	switch {
	case math.IsNaN(v):
		return colorNone
	case l.HasCrit && v >= l.Crit:
		return colorCrit
	case l.HasHigh && v >= l.High:
		return colorHigh
	case l.HasHigh && v >= l.High*0.85:
		return colorWarm
	default:
		return colorOk
	}
}

// Range returns the vertical span used to draw a series: the observed
// min/peak widened by pad and stretched to include the limits.
func Range(s *history.Series, l Limits, pad float64) (lo, hi float64) {
	if !s.HasStats() {
		return 0, 1
	}
	lo = s.Min - pad
	hi = s.Peak + pad
	if s.Min >= 0 {
		lo = math.Max(0, lo)
	}
	if l.HasCrit && l.Crit+pad > hi {
		hi = l.Crit + pad
	}
	if l.HasHigh && l.High+pad > hi {
		hi = l.High + pad
	}
	return lo, hi
}

// Sparkline renders the newest width points, left-padded when short, with
// a tick mark at every minute boundary.
func Sparkline(points []history.Point, width int, lo, hi float64, l Limits) string {
	if width <= 0 {
		return ""
	}

	pad := lipgloss.NewStyle().Foreground(colorPad)
	if len(points) == 0 {
		return pad.Render(strings.Repeat("╌", width))
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}

	span := hi - lo
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	sb.WriteString(pad.Render(strings.Repeat("╌", width-len(points))))

	tick := lipgloss.NewStyle().Foreground(colorTick)
	for i, p := range points {
		if isMinuteTick(points, i) {
			sb.WriteString(tick.Render("│"))
			continue
		}
		if math.IsNaN(p.Value) {
			sb.WriteString(pad.Render(" "))
			continue
		}

		norm := math.Max(0, math.Min(1, (p.Value-lo)/span))
		idx := min(int(norm*7), 7)

		style := lipgloss.NewStyle().Foreground(Color(p.Value, l))
		if l.HasCrit && p.Value >= l.Crit {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	return i > 0 && !points[i-1].Time.IsZero() && p.Time.Minute() != points[i-1].Time.Minute()
}

// Timeline renders HH:MM labels aligned under the minute ticks of the
// matching Sparkline.
func Timeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}
	padLen := width - len(points)

	line := []rune(strings.Repeat(" ", width))
	lastEnd := -1
	for i, p := range points {
		if !isMinuteTick(points, i) {
			continue
		}
		label := p.Time.Format("15:04")
		start := max(padLen+i-2, 0)
		end := start + len(label)
		if end > width || start <= lastEnd+1 {
			continue
		}
		copy(line[start:], []rune(label))
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(colorTick).Render(string(line))
}

// Value renders v with its unit, coloured against the limits.
func Value(v float64, unit string, l Limits) string {
	s := "  N/A"
	if !math.IsNaN(v) {
		s = fmt.Sprintf("%s%s", FormatNumber(v), unit)
	}
	style := lipgloss.NewStyle().Foreground(Color(v, l))
	if l.HasCrit && v >= l.Crit {
		style = style.Bold(true)
	}
	return style.Render(s)
}

// FormatNumber prints v with precision suited to its magnitude.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "N/A"
	case math.Abs(v) >= 1000:
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) < 10 && v != math.Trunc(v):
		return fmt.Sprintf("%.3f", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}
