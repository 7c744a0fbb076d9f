// SPDX-License-Identifier: EPL-2.0

package ribber

import (
	"github.com/ik5/ribber/audio"
)

// Conform reads src to the end and returns it as interleaved 16-bit PCM at
// rate, downmixed to mono or spread to stereo as asked.
//
// The pipeline mixes channels first and resamples after, with cubic
// interpolation. A source that already matches is only converted to 16 bit.
func Conform(src audio.Source, rate int, mono bool) ([]int16, error) {
	channels := 2
	if mono {
		channels = 1
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}

	return audio.ReadAllInt16(audio.Conform(src, rate, channels), bufSize)
}
