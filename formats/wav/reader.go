// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// PCM is a fully decoded 16-bit WAV file.
type PCM struct {
	SampleRate int
	Channels   int
	// Samples are channel interleaved.
	Samples []int16
}

// Frames is the number of sample frames.
func (p *PCM) Frames() int {
	return len(p.Samples) / p.Channels
}

// ReadPCM16 decodes a whole 16-bit PCM WAV file.
func ReadPCM16(r io.ReadSeeker) (*PCM, error) {
	dec, err := openDecoder(r)
	if err != nil {
		return nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	pcm := &PCM{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Samples:    make([]int16, len(buf.Data)),
	}
	for i, v := range buf.Data {
		pcm.Samples[i] = int16(v)
	}
	// drop a trailing partial frame
	pcm.Samples = pcm.Samples[:pcm.Frames()*pcm.Channels]

	return pcm, nil
}

func openDecoder(r io.ReadSeeker) (*wav.Decoder, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != FormatPCM || dec.BitDepth != bitsPerSample {
		return nil, ErrOnlyPCM16bitSupported
	}
	if dec.NumChans < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, dec.NumChans)
	}
	return dec, nil
}
