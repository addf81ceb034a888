// Package lmsensors reads hardware sensors (temperatures, fan speeds,
// voltages) through the lm-sensors `sensors` utility and returns them as
// an ordered Report of devices, sensors and keyed readings.
//
// Get is the usual entry point. RunCommand and Parse are exported for
// callers that capture the command output themselves.
package lmsensors

import (
	"context"
	"log/slog"
)

// Get runs `sensors -u` and parses its output. Each call spawns one
// process and returns a new Report owned by the caller.
//
// Errors are *ExecutionError, *InvalidOutputError or *ParseError.
func Get(ctx context.Context) (*Report, error) {
	return get(ctx, sensorsBin, sensorsArgs...)
}

func get(ctx context.Context, name string, args ...string) (*Report, error) {
	out, err := run(ctx, name, args...)
	if err != nil {
		return nil, err
	}

	rep, err := ParseText(out)
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed sensors report", slog.Int("devices", rep.Len()))
	return rep, nil
}
