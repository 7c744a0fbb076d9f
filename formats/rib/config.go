// SPDX-License-Identifier: EPL-2.0

package rib

import "fmt"

const (
	// InterleaveSize is the byte length of one channel segment of an interleave block.
	InterleaveSize = 0x10000

	// HeaderSize is the byte length of a chunk header.
	HeaderSize = 4

	// MaxStreams is the highest number of streams a container can multiplex.
	MaxStreams = 6

	// Rate44100 and Rate22050 are the only sample rates a container can hold.
	Rate44100 = 44100
	Rate22050 = 22050
)

// Config describes a container. The format does not record it, so the
// caller has to know it up front.
type Config struct {
	Mono       bool
	SampleRate int
	// Streams is the number of multiplexed streams. Zero means one.
	Streams int
	// Strict makes trailing bytes after the last whole interleave block an error.
	Strict bool
}

// Geometry is the chunk and interleave layout derived from a Config.
type Geometry struct {
	SampleRate          int
	Channels            int
	Streams             int
	ChunkSize           int
	ChunksPerInterleave int
	// EncodedPerChunk is the number of packed nibble bytes after the header.
	EncodedPerChunk int
	// DecodedPerChunk is the number of samples a chunk expands to,
	// the leading header sample included.
	DecodedPerChunk int
	Strict          bool
}

// NewGeometry validates cfg and derives its layout.
func NewGeometry(cfg Config) (Geometry, error) {
	var chunkSize int
	switch cfg.SampleRate {
	case Rate44100:
		chunkSize = 0x400
	case Rate22050:
		chunkSize = 0x200
	default:
		return Geometry{}, fmt.Errorf("%w: %d", ErrUnsupportedSampleRate, cfg.SampleRate)
	}

	streams := cfg.Streams
	if streams == 0 {
		streams = 1
	}
	if streams < 1 || streams > MaxStreams {
		return Geometry{}, fmt.Errorf("%w: %d", ErrInvalidStreamCount, cfg.Streams)
	}

	channels := 2
	if cfg.Mono {
		channels = 1
	}

	encoded := chunkSize - HeaderSize

	return Geometry{
		SampleRate:          cfg.SampleRate,
		Channels:            channels,
		Streams:             streams,
		ChunkSize:           chunkSize,
		ChunksPerInterleave: InterleaveSize / chunkSize,
		EncodedPerChunk:     encoded,
		DecodedPerChunk:     2*encoded + 1,
		Strict:              cfg.Strict,
	}, nil
}

// BlockSize is the byte length of a whole interleave block, all channels included.
func (g Geometry) BlockSize() int { return g.Channels * InterleaveSize }

// FramesPerBlock is the number of sample frames one interleave block decodes to.
func (g Geometry) FramesPerBlock() int { return g.ChunksPerInterleave * g.DecodedPerChunk }

// Layout describes how a container of a given size splits into blocks.
type Layout struct {
	// Blocks is the number of whole interleave blocks.
	Blocks int
	// Trailing is the number of bytes after the last whole block.
	Trailing int64
	// StreamBlocks is the number of blocks owned by each stream.
	StreamBlocks []int
	// StreamFrames is the number of sample frames each stream decodes to.
	StreamFrames []int
}

// Inspect computes the layout of a container holding size bytes.
func (g Geometry) Inspect(size int64) Layout {
	bs := int64(g.BlockSize())
	l := Layout{
		Blocks:       int(size / bs),
		Trailing:     size % bs,
		StreamBlocks: make([]int, g.Streams),
		StreamFrames: make([]int, g.Streams),
	}

	for s := range g.Streams {
		n := l.Blocks / g.Streams
		if s < l.Blocks%g.Streams {
			n++
		}
		l.StreamBlocks[s] = n
		l.StreamFrames[s] = n * g.FramesPerBlock()
	}

	return l
}

// BlocksFor is the number of interleave blocks needed to hold frames sample
// frames of one stream.
func (g Geometry) BlocksFor(frames int) int {
	per := g.FramesPerBlock()
	return (frames + per - 1) / per
}
