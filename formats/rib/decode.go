// SPDX-License-Identifier: EPL-2.0

package rib

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// Decode reads a container of size bytes from r and returns one Stream per
// configured stream.
//
// Interleave block i belongs to stream i mod Streams. Within a block the
// channel segments are stored one after the other, channel 0 first. Bytes
// past the last whole block are ignored, unless the geometry is strict.
func (g Geometry) Decode(r io.Reader, size int64) ([]Stream, error) {
	layout := g.Inspect(size)
	if layout.Trailing != 0 && g.Strict {
		return nil, fmt.Errorf("%w: %d bytes after block %d", ErrTruncatedContainer, layout.Trailing, layout.Blocks)
	}

	streams := make([]Stream, g.Streams)
	for s := range streams {
		streams[s] = Stream{
			Index:      s,
			SampleRate: g.SampleRate,
			Channels:   g.Channels,
			Samples:    make([]int16, 0, layout.StreamFrames[s]*g.Channels),
		}
	}

	block := make([]byte, g.BlockSize())
	perChannel := make([][]int16, g.Channels)
	for ch := range perChannel {
		perChannel[ch] = make([]int16, 0, g.FramesPerBlock())
	}

	for i := range layout.Blocks {
		if _, err := io.ReadFull(r, block); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("%w: block %d: %w", ErrTruncatedContainer, i, err)
			}
			return nil, fmt.Errorf("reading block %d: %w", i, err)
		}

		if err := g.DecodeBlock(perChannel, block); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}

		s := &streams[i%g.Streams]
		s.Samples = interleave(s.Samples, perChannel)
		s.Blocks++
	}

	return streams, nil
}

// DecodeBytes decodes a container held in memory.
func (g Geometry) DecodeBytes(data []byte) ([]Stream, error) {
	return g.Decode(bytes.NewReader(data), int64(len(data)))
}

// DecodeBlock expands one interleave block into per-channel sample buffers.
// dst must hold one slice per channel; each is reset and refilled.
// Channels are independent and are decoded concurrently.
func (g Geometry) DecodeBlock(dst [][]int16, block []byte) error {
	if len(block) != g.BlockSize() {
		return fmt.Errorf("%w: block of %d bytes, want %d", ErrTruncatedContainer, len(block), g.BlockSize())
	}
	if len(dst) != g.Channels {
		return fmt.Errorf("%w: %d buffers for %d channels", ErrChannelMismatch, len(dst), g.Channels)
	}

	var eg errgroup.Group
	for ch := range g.Channels {
		segment := block[ch*InterleaveSize : (ch+1)*InterleaveSize]

		eg.Go(func() error {
			out := dst[ch][:0]
			for j := range g.ChunksPerInterleave {
				var err error
				out, err = g.DecodeChunk(out, segment[j*g.ChunkSize:(j+1)*g.ChunkSize])
				if err != nil {
					return fmt.Errorf("channel %d chunk %d: %w", ch, j, err)
				}
			}
			dst[ch] = out
			return nil
		})
	}

	return eg.Wait()
}
