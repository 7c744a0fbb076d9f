// SPDX-License-Identifier: EPL-2.0

// Command ribber converts RIB ADPCM containers to WAV files and back.
//
//	ribber decode [-mono] [-rate 44100|22050] [-streams n] [-strict] [-o out.wav|-]... in.rib
//	ribber encode [-mono] [-rate 44100|22050] [-streams n] [-resample] [-o out.rib] in.wav...
//	ribber info   [-mono] [-rate 44100|22050] [-streams n] in.rib
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ik5/ribber"
	"github.com/ik5/ribber/formats/rib"
	"github.com/ik5/ribber/internal/config"
	"github.com/ik5/ribber/internal/logging"
	"github.com/ik5/ribber/internal/status"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "ribber:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) (err error) {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, _ := logging.WithRunID(logging.New(cfg.LogLevel, cfg.LogFormat))
	logger.Debug("configuration loaded",
		"command", cfg.Command,
		"mono", cfg.Mono,
		"sample_rate", cfg.SampleRate,
		"streams", cfg.Streams,
		"strict", cfg.Strict,
		"resample", cfg.Resample,
	)

	rec := status.NewRecorder()
	if cfg.MetricsFile != "" {
		defer func() {
			if werr := rec.WriteTextfile(cfg.MetricsFile); werr != nil {
				err = errors.Join(err, fmt.Errorf("writing metrics: %w", werr))
			}
		}()
	}

	conv, err := ribber.NewConverter(cfg.Container(),
		ribber.WithLogger(logger),
		ribber.WithRecorder(rec),
		ribber.WithResample(cfg.Resample),
	)
	if err != nil {
		return err
	}

	switch cfg.Command {
	case config.CommandDecode:
		if cfg.ToStdout() {
			if err := conv.DecodeTo(cfg.Inputs[0], 0, stdout); err != nil {
				return err
			}
			break
		}
		paths, err := conv.DecodeFile(cfg.Inputs[0], cfg.Outputs)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(stdout, p)
		}

	case config.CommandEncode:
		out := ribber.EncodePath(cfg.Inputs)
		if len(cfg.Outputs) == 1 {
			out = cfg.Outputs[0]
		}
		if err := conv.EncodeFiles(cfg.Inputs, out); err != nil {
			return err
		}
		fmt.Fprintln(stdout, out)

	case config.CommandInfo:
		layout, err := conv.Inspect(cfg.Inputs[0])
		if err != nil {
			return err
		}
		printLayout(stdout, cfg.Inputs[0], conv.Geometry(), layout)
	}

	logger.Debug("run finished")
	return nil
}

func printLayout(w io.Writer, path string, g rib.Geometry, l rib.Layout) {
	fmt.Fprintf(w, "file:        %s\n", path)
	fmt.Fprintf(w, "format:      %d Hz, %d channels, %d streams\n", g.SampleRate, g.Channels, g.Streams)
	fmt.Fprintf(w, "chunk size:  %d bytes, %d samples\n", g.ChunkSize, g.DecodedPerChunk)
	fmt.Fprintf(w, "blocks:      %d\n", l.Blocks)
	fmt.Fprintf(w, "trailing:    %d bytes\n", l.Trailing)
	for s := range l.StreamBlocks {
		d := time.Duration(l.StreamFrames[s]) * time.Second / time.Duration(g.SampleRate)
		fmt.Fprintf(w, "stream %d:    %d blocks, %d frames, %s\n", s, l.StreamBlocks[s], l.StreamFrames[s], d.Round(time.Millisecond))
	}
}
