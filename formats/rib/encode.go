// SPDX-License-Identifier: EPL-2.0

package rib

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/ribber/adpcm"
)

// EncodeResult reports what Encode laid out.
type EncodeResult struct {
	// Blocks is the total number of interleave blocks written.
	Blocks int
	// BlocksPerStream is the number of blocks each stream occupies.
	BlocksPerStream int
	// PaddedFrames is the number of sample frames appended to each stream
	// to fill its last block.
	PaddedFrames []int
	// Bytes is the number of bytes written to the container.
	Bytes int64
}

// Encode compresses streams and writes them to w as a container.
//
// Each stream holds channel-interleaved samples and must already be stripped
// of its WAV header. Every stream is padded to the same whole number of
// interleave blocks by repeating its last sample, so the block round robin
// stays regular. Each (stream, channel) pair owns one adaptive state for the
// whole run; pairs are independent and are encoded concurrently.
func (g Geometry) Encode(w io.Writer, streams [][]int16) (EncodeResult, error) {
	if len(streams) != g.Streams {
		return EncodeResult{}, fmt.Errorf("%w: got %d streams, want %d", ErrInvalidStreamCount, len(streams), g.Streams)
	}

	blocks := 0
	for s, samples := range streams {
		if len(samples)%g.Channels != 0 {
			return EncodeResult{}, fmt.Errorf("stream %d: %w: %d samples for %d channels", s, ErrChannelMismatch, len(samples), g.Channels)
		}
		blocks = max(blocks, g.BlocksFor(len(samples)/g.Channels))
	}

	res := EncodeResult{
		Blocks:          blocks * g.Streams,
		BlocksPerStream: blocks,
		PaddedFrames:    make([]int, g.Streams),
	}

	// segments[s][ch] holds the encoded bytes of every block of one channel.
	segments := make([][][]byte, g.Streams)
	var eg errgroup.Group

	for s, samples := range streams {
		segments[s] = make([][]byte, g.Channels)
		res.PaddedFrames[s] = blocks*g.FramesPerBlock() - len(samples)/g.Channels

		for ch := range g.Channels {
			eg.Go(func() error {
				buf := g.channelFrames(samples, ch, blocks)

				var state adpcm.ChannelState
				out := make([]byte, 0, blocks*InterleaveSize)
				for k := range blocks * g.ChunksPerInterleave {
					var err error
					out, err = g.EncodeChunk(out, &state, buf[k*g.DecodedPerChunk:(k+1)*g.DecodedPerChunk])
					if err != nil {
						return fmt.Errorf("stream %d channel %d chunk %d: %w", s, ch, k, err)
					}
				}
				segments[s][ch] = out
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return EncodeResult{}, err
	}

	for i := range res.Blocks {
		s, k := i%g.Streams, i/g.Streams
		for ch := range g.Channels {
			n, err := w.Write(segments[s][ch][k*InterleaveSize : (k+1)*InterleaveSize])
			res.Bytes += int64(n)
			if err != nil {
				return res, fmt.Errorf("writing block %d: %w", i, err)
			}
		}
	}

	return res, nil
}

// channelFrames extracts one channel of samples, padded to blocks whole
// interleave blocks with the channel's last sample.
func (g Geometry) channelFrames(samples []int16, ch int, blocks int) []int16 {
	out := make([]int16, 0, blocks*g.FramesPerBlock())
	for i := ch; i < len(samples); i += g.Channels {
		out = append(out, samples[i])
	}

	var last int16
	if len(out) > 0 {
		last = out[len(out)-1]
	}
	for len(out) < cap(out) {
		out = append(out, last)
	}

	return out
}
