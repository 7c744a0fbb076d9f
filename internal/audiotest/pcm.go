// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand/v2"
)

// SinePCM returns frames frames of channel-interleaved 16-bit PCM holding a
// sine of the given amplitude. Each channel is phase shifted so channels
// can be told apart.
func SinePCM(frames, channels, sampleRate int, frequency, amplitude float64) []int16 {
	out := make([]int16, 0, frames*channels)
	for f := range frames {
		t := float64(f) / float64(sampleRate)
		for ch := range channels {
			phase := float64(ch) * math.Pi / 3
			out = append(out, int16(amplitude*math.Sin(2*math.Pi*frequency*t+phase)))
		}
	}
	return out
}

// NoisePCM returns deterministic pseudo random PCM for seed.
func NoisePCM(frames, channels int, seed uint64) []int16 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = int16(rng.Uint32())
	}
	return out
}

// ConstantPCM returns frames frames with every sample set to v.
func ConstantPCM(frames, channels int, v int16) []int16 {
	out := make([]int16, frames*channels)
	for i := range out {
		out[i] = v
	}
	return out
}
