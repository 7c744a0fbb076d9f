// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Encode writes channel-interleaved 16-bit samples as a PCM WAV file.
// The header sizes are patched in once all data is written, hence the seeker.
func Encode(w io.WriteSeeker, sampleRate, channels int, samples []int16) error {
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	return EncodeBuffer(w, &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitsPerSample,
	})
}

// EncodeBuffer writes buf as a 16-bit PCM WAV file using its format.
func EncodeBuffer(w io.WriteSeeker, buf *goaudio.IntBuffer) error {
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("%w: buffer has no format", ErrInvalidChannels)
	}
	if err := checkLayout(buf.Format.NumChannels, len(buf.Data)); err != nil {
		return err
	}

	enc := wav.NewEncoder(w, buf.Format.SampleRate, bitsPerSample, buf.Format.NumChannels, FormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}

	return nil
}

// WriteWAV16 streams channel-interleaved 16-bit samples as a PCM WAV file
// to a writer that cannot seek. The sizes are known up front.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if err := checkLayout(channels, len(samples)); err != nil {
		return err
	}

	h := Header{
		Channels:   channels,
		SampleRate: sampleRate,
		DataSize:   uint32(len(samples) * 2),
	}
	if _, err := w.Write(h.Bytes()); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	buf := make([]byte, 0, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		buf = buf[:0]
		for _, s := range samples[i:min(i+chunkSize, len(samples))] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func checkLayout(channels, n int) error {
	if channels < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if n%channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrSampleAlignment, n, channels)
	}
	return nil
}
