// Package monitor implements the live sensor monitor TUI using BubbleTea,
// with per-sensor sparklines coloured against each sensor's thresholds.
package monitor

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/lmsensors"
	"github.com/luki/lmsensors/internal/chart"
	"github.com/luki/lmsensors/internal/chip"
	"github.com/luki/lmsensors/internal/history"
)

const historySize = 600

// Source produces one report per poll. lmsensors.Get is the usual source.
type Source func(ctx context.Context) (*lmsensors.Report, error)

// Run starts the monitor and blocks until the user quits or ctx is done.
func Run(ctx context.Context, src Source, interval time.Duration) error {
	p := tea.NewProgram(
		New(src, interval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

type reportMsg struct {
	report *lmsensors.Report
	time   time.Time
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ── Model ────────────────────────────────────────────────────────────

// row is the "input" reading of one sensor plus its thresholds.
type row struct {
	device  string
	adapter string
	sensor  string
	feature string
	unit    string
	value   float64
	limits  chart.Limits
}

func (r row) key() string { return r.device + "/" + r.sensor }

// Model is the BubbleTea model for the live monitor.
type Model struct {
	source   Source
	interval time.Duration

	rows      []row
	history   *history.Store
	err       error
	width     int
	height    int
	scroll    int
	lastPoll  time.Time
	startTime time.Time
	paused    bool
}

// New creates the initial model. interval must be positive.
func New(src Source, interval time.Duration) Model {
	return Model{
		source:    src,
		interval:  interval,
		history:   history.NewStore(historySize),
		startTime: time.Now(),
	}
}

// rowsFrom flattens a report into one row per sensor. Sensors without an
// "input" reading are shown as N/A.
func rowsFrom(rep *lmsensors.Report) []row {
	var rows []row
	for _, dn := range rep.Names() {
		d, _ := rep.Device(dn)
		for _, sn := range d.SensorNames() {
			s, _ := d.Sensor(sn)
			v, ok := s.Value("input")
			if !ok {
				v = math.NaN()
			}
			r := row{
				device:  d.Name,
				adapter: d.AdapterName(),
				sensor:  s.Name,
				feature: s.Feature(),
				unit:    chip.Unit(s.Feature()),
				value:   v,
			}
			if hi, ok := s.Value("max"); ok && !math.IsNaN(hi) && hi > 0 {
				r.limits.High, r.limits.HasHigh = hi, true
			}
			if c, ok := s.Value("crit"); ok && !math.IsNaN(c) && c > 0 {
				r.limits.Crit, r.limits.HasCrit = c, true
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) poll() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 2*m.interval+time.Second)
	defer cancel()

	rep, err := m.source(ctx)
	if err != nil {
		return errMsg{err}
	}
	return reportMsg{report: rep, time: time.Now()}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.poll, m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			m.scroll++
		case "home":
			m.scroll = 0
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		return m, tea.Batch(m.poll, m.tick())

	case reportMsg:
		m.err = nil
		m.rows = rowsFrom(msg.report)
		m.lastPoll = msg.time
		for _, r := range m.rows {
			m.history.Record(r.key(), r.value, msg.time)
		}

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorChipName = lipgloss.Color("147")
	colorChipID   = lipgloss.Color("238")
	colorAdapter  = lipgloss.Color("243")
	colorLabel    = lipgloss.Color("252")
	colorValue    = lipgloss.Color("250")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorWarn     = lipgloss.Color("220")
	colorHigh     = lipgloss.Color("208")
	colorCrit     = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := max(m.width-2, 40)

	sections := []string{m.renderTitleBar(contentWidth)}

	if m.err != nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err)))
	}

	if len(m.rows) == 0 {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("Waiting for sensor data..."))
	} else {
		sections = append(sections, m.renderDevicePanels(contentWidth)...)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	lines := strings.Split(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
	visible := max(m.height, 5)
	start := min(m.scroll, max(len(lines)-visible, 0))
	end := min(start+visible, len(lines))

	return strings.Join(lines[start:end], "\n")
}

func (m Model) renderTitleBar(width int) string {
	dim := lipgloss.NewStyle().Foreground(colorDim)
	logo := lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg).Render("LM-SENSORS")

	status := []string{dim.Render("up " + fmtDuration(time.Since(m.startTime)))}
	if !m.lastPoll.IsZero() {
		status = append(status, dim.Render(m.lastPoll.Format("15:04:05")))
	}
	if m.paused {
		status = append(status, lipgloss.NewStyle().Foreground(colorCrit).Bold(true).Render("PAUSED"))
	}
	right := strings.Join(status, dim.Render(" │ "))

	gap := max(width-lipgloss.Width(logo)-lipgloss.Width(right)-4, 1)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderDevicePanels(totalWidth int) []string {
	innerWidth := max(totalWidth-4, 30)
	chartWidth := min(max(innerWidth-70, 15), 140)

	const labelW, valueW = 14, 10

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorValue)
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var panels []string
	for start := 0; start < len(m.rows); {
		end := start
		for end < len(m.rows) && m.rows[end].device == m.rows[start].device {
			end++
		}
		group := m.rows[start:end]
		start = end

		head := group[0]
		rows := []string{
			lipgloss.NewStyle().Bold(true).Foreground(colorChipName).Render(chip.Kind(head.device)) + "  " +
				lipgloss.NewStyle().Foreground(colorChipID).Render(head.device) + "  " +
				lipgloss.NewStyle().Foreground(colorAdapter).Render(head.adapter),
		}

		var lastPts []history.Point
		for _, r := range group {
			ser := m.history.Get(r.key())
			if ser == nil {
				continue
			}

			lo, hi := chart.Range(ser, r.limits, rangePad(r))
			pts := ser.LastN(chartWidth)
			lastPts = pts

			label := lipgloss.NewStyle().Foreground(colorLabel).Width(labelW).Render(truncate(r.sensor, labelW))
			value := lipgloss.NewStyle().Width(valueW).Align(lipgloss.Right).Render(chart.Value(r.value, r.unit, r.limits))
			spark := frameL + chart.Sparkline(pts, chartWidth, lo, hi, r.limits) + frameR

			stats := ""
			if ser.HasStats() {
				stats = dimS.Render(" avg") + valS.Render(fmt.Sprintf("%7s", chart.FormatNumber(ser.Avg()))) +
					dimS.Render(" lo") + valS.Render(fmt.Sprintf("%7s", chart.FormatNumber(ser.Min))) +
					dimS.Render(" pk") + valS.Render(fmt.Sprintf("%7s", chart.FormatNumber(ser.Peak)))
			}
			if r.limits.HasHigh {
				stats += dimS.Render(" H") + lipgloss.NewStyle().Foreground(colorWarn).Render(chart.FormatNumber(r.limits.High))
			}
			if r.limits.HasCrit {
				stats += dimS.Render(" C") + lipgloss.NewStyle().Foreground(colorCrit).Render(chart.FormatNumber(r.limits.Crit))
			}

			rows = append(rows, label+" "+value+" "+spark+stats)
		}

		if lastPts != nil {
			if timeline := chart.Timeline(lastPts, chartWidth); strings.TrimSpace(timeline) != "" {
				rows = append(rows, strings.Repeat(" ", labelW+valueW+3)+timeline)
			}
		}

		panels = append(panels, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			Width(totalWidth).
			Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	return panels
}

// rangePad is the headroom drawn above and below a series.
func rangePad(r row) float64 {
	if chip.IsTemp(r.feature) {
		return 5
	}
	switch r.unit {
	case "RPM":
		return 100
	case "V", "A":
		return 0.1
	default:
		return 1
	}
}

func (m Model) renderFooter(width int) string {
	block := func(c lipgloss.Color) string {
		return lipgloss.NewStyle().Foreground(c).Render("██")
	}
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := block(colorOk) + dimS.Render(" ok ") +
		block(colorWarn) + dimS.Render(" near max ") +
		block(colorHigh) + dimS.Render(" max ") +
		block(colorCrit) + dimS.Render(" crit ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render("│") + dimS.Render(" 1min")

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  j/k") + keyS.Render(":scroll") +
		dimS.Render("  p") + keyS.Render(":pause")

	gap := max(width-lipgloss.Width(legend)-lipgloss.Width(keys)-4, 1)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
