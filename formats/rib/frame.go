// SPDX-License-Identifier: EPL-2.0

package rib

import (
	"encoding/binary"
	"fmt"

	"github.com/ik5/ribber/adpcm"
)

// DecodeChunk expands one chunk and appends its DecodedPerChunk samples to dst.
//
// Every chunk is self-describing: the adaptive state is seeded from its
// header and nothing carries over from the previous chunk.
func (g Geometry) DecodeChunk(dst []int16, chunk []byte) ([]int16, error) {
	if len(chunk) != g.ChunkSize {
		return dst, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedChunk, len(chunk), g.ChunkSize)
	}

	lead := int16(binary.LittleEndian.Uint16(chunk[0:2]))
	state, err := adpcm.NewChannelState(lead, int(int8(chunk[2])))
	if err != nil {
		return dst, fmt.Errorf("chunk header: %w", err)
	}

	dst = append(dst, lead)
	for _, b := range chunk[HeaderSize:] {
		dst = append(dst,
			state.ExpandNibble(b&0x0f),
			state.ExpandNibble(b>>4),
		)
	}

	return dst, nil
}

// EncodeChunk compresses DecodedPerChunk samples into one chunk appended to dst.
//
// The leading sample is stored verbatim and becomes the state's predictor.
// The header records the step index as it stands before the chunk, then the
// state advances in place, so the caller must hand the same state to every
// chunk of a channel, in order.
func (g Geometry) EncodeChunk(dst []byte, state *adpcm.ChannelState, samples []int16) ([]byte, error) {
	if len(samples) != g.DecodedPerChunk {
		return dst, fmt.Errorf("%w: %d samples, want %d", ErrSampleCountMismatch, len(samples), g.DecodedPerChunk)
	}

	state.Predictor = int32(samples[0])

	dst = binary.LittleEndian.AppendUint16(dst, uint16(samples[0]))
	dst = append(dst, byte(state.StepIndex), 0)

	for i := 1; i < len(samples); i += 2 {
		lo := state.CompressSample(samples[i])
		hi := state.CompressSample(samples[i+1])
		dst = append(dst, hi<<4|lo)
	}

	return dst, nil
}
