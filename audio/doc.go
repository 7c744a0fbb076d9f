// SPDX-License-Identifier: EPL-2.0

// Package audio provides the float sample pipeline used to bring arbitrary
// PCM input to the geometry a RIB container expects.
//
// # Source Interface
//
// Every decoder and processor implements Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1, 1].
//
// # Conforming
//
// Conform chains a ChannelMixer and a Resampler as needed:
//
//	src := audio.Conform(wavSource, 22050, 1)
//	pcm, err := audio.ReadAllInt16(src, 4096)
//
// The Resampler interpolates with a Catmull-Rom spline. The ChannelMixer
// averages channels down or repeats them up.
//
// # Format Registry
//
// Decoders are registered by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("music.wav")
//
// # Error Handling
//
// ReadSamples returns io.EOF once a stream is drained. ErrInvalidDstSize is
// returned when dst does not hold whole frames.
package audio
