package lmsensors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOutput matches any *InvalidOutputError via errors.Is.
	ErrInvalidOutput = errors.New("invalid output from lm_sensors")
	// ErrOrphanLine is the cause of a ParseError raised for content that
	// appears while no device is current.
	ErrOrphanLine = errors.New("line outside of any device")
)

// ExecutionError reports that the sensors command could not be started or
// exited with a failure.
type ExecutionError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("run %s: %v", e.Command, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// InvalidOutputError reports that the command succeeded but printed too
// little to be a sensors report.
type InvalidOutputError struct {
	Output string
}

func (e *InvalidOutputError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidOutput, e.Output)
}

func (e *InvalidOutputError) Is(target error) bool { return target == ErrInvalidOutput }

// ParseError reports a structural failure while building a Report.
// Line is 1-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
