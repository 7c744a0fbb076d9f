// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/ribber/utils"
)

// Resampler streams src at another sample rate using cubic interpolation.
// It works on interleaved samples and preserves the channel count.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window[1] is the frame at the current integer position, window[2] the next one.
	// real marks slots holding source frames rather than edge duplicates.
	window [4][]float32
	real   [4]bool
	primed bool
	pos    float64

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool
	err    error
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		in:       make([]float32, channels*1024),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst.
func (r *Resampler) nextFrame(dst []float32) bool {
	for r.inPos >= r.inLen {
		if r.srcEOF || r.err != nil {
			return false
		}

		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		switch {
		case err == io.EOF:
			r.srcEOF = true
		case err != nil:
			r.err = fmt.Errorf("%w", err)
		case n == 0:
			r.err = io.ErrNoProgress
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels
	return true
}

func (r *Resampler) prime() {
	r.primed = true
	if !r.nextFrame(r.window[1]) {
		return
	}
	copy(r.window[0], r.window[1])
	r.real[1] = true

	for i := 2; i < 4; i++ {
		r.fill(i)
	}
}

// fill loads slot i from the source, or repeats slot i-1 once it runs dry.
func (r *Resampler) fill(i int) {
	if r.nextFrame(r.window[i]) {
		r.real[i] = true
		return
	}
	copy(r.window[i], r.window[i-1])
	r.real[i] = false
}

func (r *Resampler) shift() {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first
	r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		r.prime()
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames && r.real[1] {
		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}
		written++

		r.pos += r.ratio
		for r.pos >= 1 && r.real[1] {
			r.pos--
			r.shift()
		}
	}

	if r.err != nil {
		return written * r.channels, r.err
	}
	if written == 0 {
		return 0, io.EOF
	}
	return written * r.channels, nil
}
