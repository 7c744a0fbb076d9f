// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes the 16-bit PCM WAV files exchanged with RIB
// containers. It uses the github.com/go-audio library for the RIFF parsing.
//
// # Reading
//
// ReadPCM16 decodes a whole file into interleaved samples:
//
//	f, _ := os.Open("gs.wav")
//	pcm, err := wav.ReadPCM16(f)
//	// pcm.SampleRate, pcm.Channels, pcm.Samples
//
// Decoder wraps the same parsing as an audio.Source for the conversion
// pipeline in package audio.
//
// # Writing
//
// Encode and EncodeBuffer write through an io.WriteSeeker and fix the header
// sizes at the end. EncodeBuffer takes a go-audio IntBuffer as is. WriteWAV16 writes to any io.Writer, the sizes are computed up front:
//
//	err := wav.WriteWAV16(os.Stdout, 44100, 2, samples)
//
// Both produce the canonical 44 byte header: format tag 1, byte rate
// rate*channels*2, block align channels*2, 16 bits per sample.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a readable WAV file
//   - ErrOnlyPCM16bitSupported: the file is not 16-bit PCM
//   - ErrSampleAlignment: samples do not form whole frames
package wav
