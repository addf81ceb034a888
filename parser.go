package lmsensors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	adapterRe = regexp.MustCompile(`^Adapter: ([^\r\n]*)`)
	sensorRe  = regexp.MustCompile(`^(\w+):$`)
	valueRe   = regexp.MustCompile(`^\s+(\w+): ([^\r\n]*)`)

	leadingFloatRe = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// parser holds the scan position of one Parse call.
type parser struct {
	report *Report
	device *Device // nil when the last header was empty
	sensor *Sensor
}

// ParseText splits raw `sensors -u` output into lines and parses it.
func ParseText(raw string) (*Report, error) {
	return Parse(strings.Split(raw, "\n"))
}

// Parse builds a Report from the lines of `sensors -u` output.
//
// The first line and every line following a blank line name a device.
// Lines that match none of the known shapes are skipped. An error is only
// returned for an adapter or sensor line that has no device to belong to.
func Parse(lines []string) (rep *Report, err error) {
	p := &parser{report: newReport()}

	lineNo := 0
	defer func() {
		if r := recover(); r != nil {
			rep, err = nil, &ParseError{Line: lineNo + 1, Text: lineAt(lines, lineNo), Err: fmt.Errorf("%v", r)}
		}
	}()

	if len(lines) == 0 {
		return p.report, nil
	}
	p.header(lines[0])

	for lineNo = 1; lineNo < len(lines); lineNo++ {
		line := lines[lineNo]
		if isSeparator(line) {
			next := lineAt(lines, lineNo+1)
			if lineNo+1 < len(lines) && isSeparator(next) {
				// Runs of blank lines: only the last one names the device.
				p.header("")
				continue
			}
			lineNo++
			p.header(next)
			continue
		}
		if err := p.content(line); err != nil {
			return nil, &ParseError{Line: lineNo + 1, Text: line, Err: err}
		}
	}

	return p.report, nil
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func isSeparator(line string) bool {
	return line == "" || line == "\r" || line == "\n"
}

// header makes name the current device. An empty name leaves no device
// current, so a trailing blank line adds nothing to the report.
func (p *parser) header(name string) {
	p.sensor = nil
	p.device = nil
	if name == "" {
		return
	}
	p.device = p.report.upsert(name)
}

func (p *parser) content(line string) error {
	if m := adapterRe.FindStringSubmatch(line); m != nil {
		if p.device == nil {
			return ErrOrphanLine
		}
		p.device.setAdapter(m[1])
		return nil
	}

	if m := sensorRe.FindStringSubmatch(line); m != nil {
		if p.device == nil {
			return ErrOrphanLine
		}
		p.sensor = p.device.declare(m[1])
	}

	if p.sensor == nil {
		return nil
	}
	if m := valueRe.FindStringSubmatch(line); m != nil {
		p.sensor.set(m[1], readingKey(m[1]), parseLeadingFloat(m[2]))
	}
	return nil
}

// readingKey returns the part of a feature token after its first
// underscore: "temp1_input" is "input", "in0_min_alarm" is "min_alarm".
// A token without an underscore is used as is.
func readingKey(token string) string {
	if _, key, ok := strings.Cut(token, "_"); ok {
		return key
	}
	return token
}

// parseLeadingFloat parses the longest numeric prefix of s, ignoring
// leading whitespace and any trailing text such as units. It returns NaN
// when s does not start with a number.
func parseLeadingFloat(s string) float64 {
	num := leadingFloatRe.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if num == "" {
		return math.NaN()
	}
	// Out of range literals saturate to ±Inf along with a range error.
	v, _ := strconv.ParseFloat(num, 64)
	return v
}
