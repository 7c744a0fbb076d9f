// SPDX-License-Identifier: EPL-2.0

// Package config resolves the command line tool settings from flags, the
// environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/ik5/ribber/formats/rib"
	"github.com/ik5/ribber/internal/logging"
)

// Subcommands.
const (
	CommandDecode = "decode"
	CommandEncode = "encode"
	CommandInfo   = "info"
)

// Environment keys.
const (
	EnvLogLevel    = "RIBBER_LOG_LEVEL"
	EnvLogFormat   = "RIBBER_LOG_FORMAT"
	EnvSampleRate  = "RIBBER_SAMPLE_RATE"
	EnvStreams     = "RIBBER_STREAMS"
	EnvMetricsFile = "RIBBER_METRICS_FILE"
)

// Stdout is the output path that sends a decoded stream to standard output.
const Stdout = "-"

var (
	// ErrUsage indicates a command line that names no known subcommand
	ErrUsage = errors.New("usage: ribber decode|encode|info [flags] files...")

	// ErrMissingInput indicates a subcommand run without input files
	ErrMissingInput = errors.New("missing input file")

	// ErrStdoutOutput indicates "-" used where standard output cannot serve
	ErrStdoutOutput = errors.New("standard output takes a single stream decode only")
)

// Config holds everything one run of the tool needs.
type Config struct {
	Command string

	Mono       bool
	SampleRate int
	Streams    int
	Strict     bool
	Resample   bool

	// Inputs are the positional file arguments.
	Inputs []string
	// Outputs are the -o paths, in order.
	Outputs []string

	MetricsFile string
	LogLevel    string
	LogFormat   string
}

// ToStdout reports whether the decoded stream goes to standard output.
func (c *Config) ToStdout() bool {
	return len(c.Outputs) == 1 && c.Outputs[0] == Stdout
}

// Container returns the container description of the configuration.
func (c *Config) Container() rib.Config {
	return rib.Config{
		Mono:       c.Mono,
		SampleRate: c.SampleRate,
		Streams:    c.Streams,
		Strict:     c.Strict,
	}
}

var loadEnvOnce sync.Once

func loadEnv() {
	// a missing .env file is the common case
	_ = godotenv.Load()
}

// Load parses args, the process arguments without the program name.
// Flags override the environment, which overrides the defaults.
func Load(args []string) (*Config, error) {
	loadEnvOnce.Do(loadEnv)

	if len(args) == 0 {
		return nil, ErrUsage
	}

	cfg := &Config{Command: args[0]}
	switch cfg.Command {
	case CommandDecode, CommandEncode, CommandInfo:
	default:
		return nil, fmt.Errorf("%w: unknown command %q", ErrUsage, cfg.Command)
	}

	var errs []error
	rate, err := getEnvInt(EnvSampleRate, rib.Rate44100)
	if err != nil {
		errs = append(errs, err)
	}
	streams, err := getEnvInt(EnvStreams, 1)
	if err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(cfg.Command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.BoolVar(&cfg.Mono, "mono", false, "container holds mono audio")
	fs.IntVar(&cfg.SampleRate, "rate", rate, "sample rate, 44100 or 22050")
	fs.IntVar(&cfg.Streams, "streams", streams, "number of multiplexed streams, 1 to 6")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on trailing bytes after the last interleave block")
	fs.BoolVar(&cfg.Resample, "resample", false, "conform WAV inputs to the container format")
	fs.Var((*pathList)(&cfg.Outputs), "o", "output path, repeatable")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", os.Getenv(EnvMetricsFile), "write Prometheus metrics to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", getEnvString(EnvLogLevel, "info"), "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnvString(EnvLogFormat, "text"), "text or json")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Command, err)
	}
	cfg.Inputs = fs.Args()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error

	if c.SampleRate != rib.Rate44100 && c.SampleRate != rib.Rate22050 {
		errs = append(errs, fmt.Errorf("%w: %d", rib.ErrUnsupportedSampleRate, c.SampleRate))
	}
	if c.Streams < 1 || c.Streams > rib.MaxStreams {
		errs = append(errs, fmt.Errorf("%w: %d", rib.ErrInvalidStreamCount, c.Streams))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("invalid log format %q", c.LogFormat))
	}

	switch c.Command {
	case CommandDecode, CommandInfo:
		if len(c.Inputs) != 1 {
			errs = append(errs, fmt.Errorf("%w: %s takes one container, got %d", ErrMissingInput, c.Command, len(c.Inputs)))
		}
		if c.Command == CommandDecode && slices.Contains(c.Outputs, Stdout) && (len(c.Outputs) != 1 || c.Streams != 1) {
			errs = append(errs, fmt.Errorf("%w: %d outputs, %d streams", ErrStdoutOutput, len(c.Outputs), c.Streams))
		}
	case CommandEncode:
		if slices.Contains(c.Outputs, Stdout) {
			errs = append(errs, fmt.Errorf("%w: encode writes a seekable container", ErrStdoutOutput))
		}
		if len(c.Inputs) == 0 {
			errs = append(errs, fmt.Errorf("%w: encode needs at least one WAV file", ErrMissingInput))
		}
		if len(c.Outputs) > 1 {
			errs = append(errs, fmt.Errorf("encode writes one container, got %d outputs", len(c.Outputs)))
		}
	}

	return errors.Join(errs...)
}

func getEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// pathList collects a repeated string flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}
