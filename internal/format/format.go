// Package format writes a sensors report as styled text, JSON or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/luki/lmsensors"
	"github.com/luki/lmsensors/internal/chart"
	"github.com/luki/lmsensors/internal/chip"
)

// Format selects an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// Parse validates a format name.
func Parse(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case Text, JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

// Write encodes rep to w.
func Write(w io.Writer, rep *lmsensors.Report, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	case Text:
		_, err := io.WriteString(w, renderText(rep))
		return err
	}
	return fmt.Errorf("unknown format %q", f)
}

var (
	deviceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("147"))
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(16)
	limitsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	adapterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// renderText lays the report out like `sensors` does: a block per device,
// one line per sensor with its input value first and the other readings
// in parentheses.
func renderText(rep *lmsensors.Report) string {
	var sb strings.Builder
	for i, dn := range rep.Names() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		d, _ := rep.Device(dn)

		sb.WriteString(deviceStyle.Render(d.Name) + "  " + kindStyle.Render(chip.Kind(d.Name)) + "\n")
		if d.Adapter != nil {
			sb.WriteString(adapterStyle.Render("Adapter: "+*d.Adapter) + "\n")
		}

		for _, sn := range d.SensorNames() {
			s, _ := d.Sensor(sn)
			unit := chip.Unit(s.Feature())

			var l chart.Limits
			if v, ok := s.Value("max"); ok && !math.IsNaN(v) {
				l.High, l.HasHigh = v, true
			}
			if v, ok := s.Value("crit"); ok && !math.IsNaN(v) {
				l.Crit, l.HasCrit = v, true
			}

			input, ok := s.Value("input")
			if !ok {
				input = math.NaN()
			}

			var extra []string
			for _, k := range s.Keys() {
				if k == "input" {
					continue
				}
				extra = append(extra, fmt.Sprintf("%s = %s", k, chart.FormatNumber(valueOf(s, k))))
			}

			line := labelStyle.Render(s.Name+":") + chart.Value(input, unit, l)
			if len(extra) > 0 {
				line += "  " + limitsStyle.Render("("+strings.Join(extra, ", ")+")")
			}
			sb.WriteString(line + "\n")
		}
	}
	return sb.String()
}

func valueOf(s *lmsensors.Sensor, key string) float64 {
	v, _ := s.Value(key)
	return v
}
