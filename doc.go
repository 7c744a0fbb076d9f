// SPDX-License-Identifier: EPL-2.0

// Package ribber converts between RIB containers and 16-bit PCM WAV files.
//
// A RIB container carries one or more streams of IMA-style 4-bit ADPCM
// audio, 44100 or 22050 Hz, mono or stereo. The format has no header: the
// caller must know the sample rate, the channel count and the number of
// multiplexed streams.
//
// # Quick Start
//
// Decode a container into WAV files next to it:
//
//	conv, err := ribber.NewConverter(rib.Config{SampleRate: rib.Rate44100})
//	if err != nil {
//	    return err
//	}
//	outputs, err := conv.DecodeFile("music.rib", nil)
//
// Encode WAV files back into one container:
//
//	err = conv.EncodeFiles([]string{"music.wav"}, "music.rib")
//
// # Multi-stream containers
//
// With Streams set above one, interleave blocks are distributed round robin
// over the streams. DecodeFile writes one WAV per stream, named
// <stem>_<n>.wav by default, and EncodeFiles needs exactly one WAV per
// stream.
//
// # Packages
//
// The conversion is split into layers that can be used on their own:
//   - adpcm: the 4-bit sample codec and its adaptive state
//   - formats/rib: chunks, interleave blocks and stream multiplexing
//   - formats/wav: PCM WAV reading and writing
//   - audio: streaming sources, channel mixing and resampling
//
// WAV inputs whose format differs from the container are rejected with
// ErrFormatMismatch, unless the converter was built WithResample, in which
// case they are mixed and resampled to fit.
package ribber
