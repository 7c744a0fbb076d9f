// SPDX-License-Identifier: EPL-2.0

package ribber

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/ribber/audio"
	"github.com/ik5/ribber/formats/rib"
	"github.com/ik5/ribber/formats/wav"
	"github.com/ik5/ribber/internal/logging"
)

// Converter turns RIB containers into WAV files and back for one container
// configuration.
type Converter struct {
	geom     rib.Geometry
	logger   *slog.Logger
	recorder Recorder
	registry *audio.Registry
	resample bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithRecorder sets the statistics sink.
func WithRecorder(r Recorder) Option {
	return func(c *Converter) { c.recorder = r }
}

// WithRegistry sets the decoders EncodeFiles picks from by file extension.
// The default registry knows "wav".
func WithRegistry(r *audio.Registry) Option {
	return func(c *Converter) { c.registry = r }
}

// WithResample lets EncodeFiles accept WAV inputs of any rate and channel
// count by conforming them to the container format.
func WithResample(enabled bool) Option {
	return func(c *Converter) { c.resample = enabled }
}

// NewConverter validates cfg and returns a Converter for it.
func NewConverter(cfg rib.Config, opts ...Option) (*Converter, error) {
	g, err := rib.NewGeometry(cfg)
	if err != nil {
		return nil, err
	}

	c := &Converter{
		geom:     g,
		logger:   logging.Discard(),
		recorder: nopRecorder{},
		registry: DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DefaultRegistry returns a registry holding the WAV decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	return reg
}

// Geometry returns the container layout the converter works with.
func (c *Converter) Geometry() rib.Geometry { return c.geom }

// DecodePaths returns the default WAV paths for ribPath: the same name with
// a .wav extension, or <stem>_<n>.wav per stream for multi-stream containers.
func (c *Converter) DecodePaths(ribPath string) []string {
	stem := strings.TrimSuffix(ribPath, filepath.Ext(ribPath))
	if c.geom.Streams == 1 {
		return []string{stem + ".wav"}
	}

	paths := make([]string, c.geom.Streams)
	for i := range paths {
		paths[i] = stem + "_" + strconv.Itoa(i) + ".wav"
	}
	return paths
}

// EncodePath returns the default container path for a list of WAV inputs.
func EncodePath(wavPaths []string) string {
	if len(wavPaths) == 0 {
		return ""
	}
	first := wavPaths[0]
	return strings.TrimSuffix(first, filepath.Ext(first)) + ".rib"
}

// Inspect reports how the container at ribPath splits into blocks and streams.
func (c *Converter) Inspect(ribPath string) (rib.Layout, error) {
	fi, err := os.Stat(ribPath)
	if err != nil {
		return rib.Layout{}, err
	}
	return c.geom.Inspect(fi.Size()), nil
}

// DecodeFile decodes the container at ribPath and writes one WAV file per
// stream. With no outPaths the names come from DecodePaths; otherwise there
// must be exactly one path per stream. It returns the paths written.
//
// Nothing is written when the container fails to decode, and a failed write
// removes every output of the run.
func (c *Converter) DecodeFile(ribPath string, outPaths []string) (paths []string, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			c.recorder.RecordFailure(OpDecode)
		}
	}()

	if len(outPaths) == 0 {
		outPaths = c.DecodePaths(ribPath)
	}
	if len(outPaths) != c.geom.Streams {
		return nil, fmt.Errorf("%w: %d outputs for %d streams", ErrOutputCount, len(outPaths), c.geom.Streams)
	}

	log := c.logger.With("op", OpDecode, "input", ribPath)
	streams, layout, size, err := c.decode(log, ribPath)
	if err != nil {
		return nil, err
	}

	frames := 0
	for i := range streams {
		s := &streams[i]
		if err := writeWAV(outPaths[i], s); err != nil {
			return nil, errors.Join(err, removeAll(outPaths[:i+1]))
		}
		frames += s.Frames()
		log.Debug("stream written", "stream", s.Index, "output", outPaths[i], "frames", s.Frames(), "blocks", s.Blocks)
	}

	stats := c.decodeStats(layout, size, frames, start)
	c.recorder.Record(stats)
	log.Info("container decoded", "outputs", len(outPaths), "frames", frames, "duration", stats.Duration)

	return outPaths, nil
}

// DecodeTo decodes the container at ribPath and streams one of its streams
// to w as a WAV file. w does not need to seek.
func (c *Converter) DecodeTo(ribPath string, stream int, w io.Writer) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			c.recorder.RecordFailure(OpDecode)
		}
	}()

	if stream < 0 || stream >= c.geom.Streams {
		return fmt.Errorf("%w: stream %d of %d", rib.ErrInvalidStreamCount, stream, c.geom.Streams)
	}

	log := c.logger.With("op", OpDecode, "input", ribPath)
	streams, layout, size, err := c.decode(log, ribPath)
	if err != nil {
		return err
	}

	s := &streams[stream]
	bw := bufio.NewWriter(w)
	if err := wav.WriteWAV16(bw, s.SampleRate, s.Channels, s.Samples); err != nil {
		return fmt.Errorf("writing stream %d: %w", stream, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing stream %d: %w", stream, err)
	}

	stats := c.decodeStats(layout, size, s.Frames(), start)
	c.recorder.Record(stats)
	log.Info("stream decoded", "stream", stream, "frames", s.Frames(), "duration", stats.Duration)

	return nil
}

func (c *Converter) decode(log *slog.Logger, ribPath string) ([]rib.Stream, rib.Layout, int64, error) {
	f, err := os.Open(ribPath)
	if err != nil {
		return nil, rib.Layout{}, 0, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, rib.Layout{}, 0, err
	}

	layout := c.geom.Inspect(fi.Size())
	log.Info("decoding container",
		"bytes", fi.Size(),
		"blocks", layout.Blocks,
		"streams", c.geom.Streams,
		"channels", c.geom.Channels,
		"sample_rate", c.geom.SampleRate,
	)
	if layout.Trailing != 0 && !c.geom.Strict {
		log.Warn("ignoring bytes after the last interleave block", "trailing_bytes", layout.Trailing)
	}

	streams, err := c.geom.Decode(bufio.NewReaderSize(f, c.geom.BlockSize()), fi.Size())
	if err != nil {
		return nil, rib.Layout{}, 0, fmt.Errorf("decoding %s: %w", ribPath, err)
	}
	return streams, layout, fi.Size(), nil
}

func (c *Converter) decodeStats(layout rib.Layout, size int64, frames int, start time.Time) Stats {
	return Stats{
		Op:            OpDecode,
		Streams:       c.geom.Streams,
		Blocks:        layout.Blocks,
		Chunks:        layout.Blocks * c.geom.Channels * c.geom.ChunksPerInterleave,
		Frames:        frames,
		TrailingBytes: layout.Trailing,
		Bytes:         size,
		Duration:      time.Since(start),
	}
}

func writeWAV(path string, s *rib.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := wav.EncodeBuffer(f, s.IntBuffer()); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// removeAll deletes paths, skipping the ones never created.
func removeAll(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EncodeFiles compresses one input file per stream into a container at
// ribPath, or at EncodePath(wavPaths) when ribPath is empty.
//
// Inputs are decoded by the registry entry matching their extension. A rate
// or channel count that differs from the container is an ErrFormatMismatch
// unless the converter resamples.
func (c *Converter) EncodeFiles(wavPaths []string, ribPath string) (err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			c.recorder.RecordFailure(OpEncode)
		}
	}()

	if len(wavPaths) != c.geom.Streams {
		return fmt.Errorf("%w: %d inputs for %d streams", ErrOutputCount, len(wavPaths), c.geom.Streams)
	}
	if ribPath == "" {
		ribPath = EncodePath(wavPaths)
	}

	log := c.logger.With("op", OpEncode, "output", ribPath)

	pcm := make([][]int16, len(wavPaths))
	frames := 0
	for i, path := range wavPaths {
		samples, err := c.readInput(log, path)
		if err != nil {
			return err
		}
		pcm[i] = samples
		frames += len(samples) / c.geom.Channels
	}

	f, err := os.Create(ribPath)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(f, c.geom.BlockSize())
	res, err := c.geom.Encode(bw, pcm)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// a partial container is unusable
		return errors.Join(fmt.Errorf("encoding %s: %w", ribPath, err), os.Remove(ribPath))
	}

	padded := 0
	for s, n := range res.PaddedFrames {
		padded += n
		if n > 0 {
			log.Debug("stream padded to whole blocks", "stream", s, "padded_frames", n)
		}
	}

	stats := Stats{
		Op:           OpEncode,
		Streams:      c.geom.Streams,
		Blocks:       res.Blocks,
		Chunks:       res.Blocks * c.geom.Channels * c.geom.ChunksPerInterleave,
		Frames:       frames,
		PaddedFrames: padded,
		Bytes:        res.Bytes,
		Duration:     time.Since(start),
	}
	c.recorder.Record(stats)
	log.Info("container encoded", "inputs", len(wavPaths), "blocks", res.Blocks, "bytes", res.Bytes, "duration", stats.Duration)

	return nil
}

func (c *Converter) readInput(log *slog.Logger, path string) ([]int16, error) {
	dec, err := c.registry.Lookup(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer src.Close()

	if src.SampleRate() == c.geom.SampleRate && src.Channels() == c.geom.Channels {
		samples, err := audio.ReadAllInt16(src, src.BufSize())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return samples, nil
	}
	if !c.resample {
		return nil, fmt.Errorf("%w: %s is %d Hz with %d channels, container is %d Hz with %d channels",
			ErrFormatMismatch, path, src.SampleRate(), src.Channels(), c.geom.SampleRate, c.geom.Channels)
	}

	log.Info("conforming input",
		"input", path,
		"from_rate", src.SampleRate(),
		"from_channels", src.Channels(),
		"to_rate", c.geom.SampleRate,
		"to_channels", c.geom.Channels,
	)

	samples, err := Conform(src, c.geom.SampleRate, c.geom.Channels == 1)
	if err != nil {
		return nil, fmt.Errorf("conforming %s: %w", path, err)
	}
	return samples, nil
}
