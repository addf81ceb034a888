// lmsensors prints the hardware sensor report from `sensors -u` as text,
// JSON or YAML, or follows it live in a terminal monitor.
//
// Usage:
//
//	lmsensors [--format text|json|yaml] [--input FILE]
//	lmsensors --watch [--interval 1s]
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/luki/lmsensors"
	"github.com/luki/lmsensors/internal/format"
	"github.com/luki/lmsensors/internal/monitor"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	format   string
	input    string
	watch    bool
	interval time.Duration
	logLevel string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	flagSet := pflag.NewFlagSet("lmsensors", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.format, "format", "f", string(format.Text), "output format: text, json or yaml")
	flagSet.StringVarP(&opts.input, "input", "i", "", "parse a saved `sensors -u` dump instead of running sensors (- for stdin)")
	flagSet.BoolVarP(&opts.watch, "watch", "w", false, "follow readings in a live terminal monitor")
	flagSet.DurationVar(&opts.interval, "interval", time.Second, "poll interval for --watch")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	if err := flagSet.Parse(args); err != nil {
		return opts, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	if opts.interval <= 0 {
		return opts, fmt.Errorf("--interval must be positive, got %s", opts.interval)
	}
	if opts.watch && opts.input != "" {
		return opts, errors.New("--watch and --input cannot be combined")
	}
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", opts.logLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.watch {
		slog.Info("starting monitor", slog.Duration("interval", opts.interval))
		return monitor.Run(ctx, lmsensors.Get, opts.interval)
	}

	f, err := format.Parse(opts.format)
	if err != nil {
		return err
	}

	rep, err := load(ctx, opts.input, stdin)
	if err != nil {
		return err
	}
	return format.Write(stdout, rep, f)
}

// load reads the report from path, stdin for "-", or the sensors command
// when path is empty.
func load(ctx context.Context, path string, stdin io.Reader) (*lmsensors.Report, error) {
	var raw []byte
	var err error
	switch path {
	case "":
		return lmsensors.Get(ctx)
	case "-":
		raw, err = io.ReadAll(stdin)
	default:
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	slog.Debug("parsing saved report", slog.String("path", path), slog.Int("bytes", len(raw)))
	return lmsensors.ParseText(strings.TrimPrefix(string(raw), "\ufeff"))
}
