// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer remaps the channels of src to a fixed output count.
//
// Output channel c averages every input channel j with j % out == c, so
// mixing to one channel averages all of them. When there are fewer inputs
// than outputs, output c repeats input c % in, so mono is copied to every
// output channel.
type ChannelMixer struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

// NewMonoMixer averages all channels of src into one.
func NewMonoMixer(src Source) *ChannelMixer {
	return NewChannelMixer(src, 1)
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.out }
func (m *ChannelMixer) BufSize() int    { return m.src.BufSize() }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	if m.out <= 0 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) / m.out * in
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	frames := n / in

	for f := range frames {
		frame := m.tmp[f*in : (f+1)*in]
		out := dst[f*m.out : (f+1)*m.out]

		if in < m.out {
			for c := range out {
				out[c] = frame[c%in]
			}
			continue
		}

		for c := range out {
			var sum float32
			count := 0
			for j := c; j < in; j += m.out {
				sum += frame[j]
				count++
			}
			out[c] = sum / float32(count)
		}
	}

	return frames * m.out, err
}
