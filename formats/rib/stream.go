// SPDX-License-Identifier: EPL-2.0

package rib

import (
	goaudio "github.com/go-audio/audio"
)

// Stream is one logical audio track of a container as channel-interleaved
// 16-bit PCM.
type Stream struct {
	Index      int
	SampleRate int
	Channels   int
	// Blocks is the number of interleave blocks the stream was decoded from.
	Blocks  int
	Samples []int16
}

// Frames is the number of sample frames held by the stream.
func (s *Stream) Frames() int {
	if s.Channels == 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Channel returns a copy of one channel's samples.
func (s *Stream) Channel(ch int) []int16 {
	out := make([]int16, 0, s.Frames())
	for i := ch; i < len(s.Samples); i += s.Channels {
		out = append(out, s.Samples[i])
	}
	return out
}

// IntBuffer exports the stream as a go-audio buffer.
func (s *Stream) IntBuffer() *goaudio.IntBuffer {
	data := make([]int, len(s.Samples))
	for i, v := range s.Samples {
		data[i] = int(v)
	}

	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: s.Channels,
			SampleRate:  s.SampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
}

// interleave appends one sample of every channel per frame position.
func interleave(dst []int16, channels [][]int16) []int16 {
	if len(channels) == 1 {
		return append(dst, channels[0]...)
	}

	frames := len(channels[0])
	for i := range frames {
		for _, ch := range channels {
			dst = append(dst, ch[i])
		}
	}
	return dst
}
