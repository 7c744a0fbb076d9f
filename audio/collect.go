// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/ribber/utils"
)

// Conform returns a Source delivering src at rate with the given channel
// count. Channels are remapped before resampling so a downmix resamples
// fewer channels. src is returned untouched when it already matches.
func Conform(src Source, rate, channels int) Source {
	s := src
	if s.Channels() != channels {
		s = NewChannelMixer(s, channels)
	}
	if s.SampleRate() != rate {
		s = NewResampler(s, rate)
	}
	return s
}

// ReadAllInt16 drains src and returns its samples as interleaved 16-bit PCM.
// bufSize is rounded down to whole frames.
func ReadAllInt16(src Source, bufSize int) ([]int16, error) {
	ch := src.Channels()
	if ch <= 0 {
		return nil, ErrInvalidChannels
	}
	bufSize -= bufSize % ch
	if bufSize == 0 {
		bufSize = ch
	}

	pcm16 := make([]int16, 0, bufSize)
	buf := make([]float32, bufSize)
	for {
		n, err := src.ReadSamples(buf)
		for _, x := range buf[:n] {
			pcm16 = append(pcm16, utils.Float32ToInt16(x))
		}

		if errors.Is(err, io.EOF) {
			return pcm16, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// a source that neither fills dst nor reports EOF would spin forever
			return nil, io.ErrNoProgress
		}
	}
}
