// SPDX-License-Identifier: EPL-2.0

package ribber

import "time"

// Operation names reported to a Recorder.
const (
	OpDecode = "decode"
	OpEncode = "encode"
)

// Stats summarizes one conversion.
type Stats struct {
	Op      string
	Streams int
	// Blocks is the number of interleave blocks read or written.
	Blocks int
	// Chunks is the number of ADPCM chunks, all channels included.
	Chunks int
	// Frames is the number of sample frames of real audio, padding excluded.
	Frames int
	// PaddedFrames is the number of frames added to fill the last blocks.
	PaddedFrames int
	// TrailingBytes is the number of container bytes ignored after the last block.
	TrailingBytes int64
	// Bytes is the size of the container.
	Bytes    int64
	Duration time.Duration
}

// Recorder receives conversion statistics.
type Recorder interface {
	Record(Stats)
	RecordFailure(op string)
}

type nopRecorder struct{}

func (nopRecorder) Record(Stats)         {}
func (nopRecorder) RecordFailure(string) {}
