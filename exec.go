package lmsensors

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
)

const (
	sensorsBin = "/usr/bin/sensors"

	// minOutputLen is the shortest stdout, in bytes, accepted as a real report.
	minOutputLen = 5
)

// sensorsArgs asks for raw, unformatted output: one "key: value" per line.
var sensorsArgs = []string{"-u"}

// RunCommand runs `sensors -u` and returns its standard output.
// The command is only interrupted when ctx is done.
func RunCommand(ctx context.Context) (string, error) {
	return run(ctx, sensorsBin, sensorsArgs...)
}

func run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Debug("executing sensors command", slog.String("command", cmd.String()))

	out, err := cmd.Output()
	if err != nil {
		return "", &ExecutionError{Command: cmd.String(), Stderr: stderr.String(), Err: err}
	}

	s := string(out)
	if len(s) < minOutputLen {
		return "", &InvalidOutputError{Output: s}
	}

	slog.Debug("sensors command finished", slog.Int("bytes", len(s)))
	return s, nil
}
