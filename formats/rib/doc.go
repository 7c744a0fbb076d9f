// SPDX-License-Identifier: EPL-2.0

// Package rib reads and writes RIB containers, the interleaved ADPCM audio
// format of the Manhunt PC sound engine.
//
// # Layout
//
// A container is a sequence of interleave blocks. Each block holds one
// 64 KiB segment per channel, channel 0 first. A segment is a run of chunks:
//
//	offset  size  field
//	0       2     leading sample, int16 little-endian
//	2       1     step index
//	3       1     reserved, zero
//	4       n-4   packed 4-bit codes, low nibble first
//
// Chunks are 1024 bytes at 44100 Hz and 512 bytes at 22050 Hz, so a chunk
// expands to 2041 or 1017 samples. Music containers multiplex up to six
// streams by handing interleave blocks round robin to each stream.
//
// The format has no header, the caller supplies the Config:
//
//	g, _ := rib.NewGeometry(rib.Config{SampleRate: 44100, Streams: 1})
//	streams, err := g.Decode(file, size)
//
// Encoding is the mirror operation:
//
//	res, err := g.Encode(out, [][]int16{pcm})
//
// # Decoding vs encoding state
//
// Decoding seeds a fresh adaptive state from every chunk header. Encoding
// keeps one state per (stream, channel) for the whole run and only resets
// its predictor from the first sample of each chunk. The asymmetry is part
// of the format and is kept as is.
//
// # Error Handling
//
//   - ErrMalformedChunk: a chunk of the wrong byte length
//   - ErrTruncatedContainer: the data ends inside an interleave block
//   - ErrSampleCountMismatch: a sample frame of the wrong length on encode
//   - adpcm.ErrInvalidStepIndex: a chunk header step index outside [0, 88]
package rib
