// SPDX-License-Identifier: EPL-2.0

package adpcm

import "fmt"

// ChannelState is the adaptive state of one ADPCM channel.
//
// Predictor is the last reconstructed sample. The decoder uses it as the
// running output value, the encoder as the previous sample the next delta
// is measured against. StepIndex always stays within [0, MaxStepIndex].
type ChannelState struct {
	Predictor int32
	StepIndex int16
}

// NewChannelState returns a state seeded with predictor and stepIndex.
// It fails with ErrInvalidStepIndex when stepIndex is out of range.
func NewChannelState(predictor int16, stepIndex int) (ChannelState, error) {
	if stepIndex < 0 || stepIndex > MaxStepIndex {
		return ChannelState{}, fmt.Errorf("%w: %d", ErrInvalidStepIndex, stepIndex)
	}

	return ChannelState{
		Predictor: int32(predictor),
		StepIndex: int16(stepIndex),
	}, nil
}

// Sample returns the predictor as a 16-bit sample.
func (s *ChannelState) Sample() int16 { return int16(s.Predictor) }

// ExpandNibble decodes one 4-bit code against the state and returns the new
// predictor, which is also the decoded sample.
func (s *ChannelState) ExpandNibble(nibble byte) int16 {
	nibble &= 0x0f
	step := stepTable[s.StepIndex]

	diff := step >> 3
	if nibble&4 != 0 {
		diff += step
	}
	if nibble&2 != 0 {
		diff += step >> 1
	}
	if nibble&1 != 0 {
		diff += step >> 2
	}

	if nibble&8 != 0 {
		s.Predictor = int32(Clip16(s.Predictor - diff))
	} else {
		s.Predictor = int32(Clip16(s.Predictor + diff))
	}
	s.advance(nibble)

	return int16(s.Predictor)
}

// CompressSample encodes sample as a 4-bit code relative to the state and
// updates the state exactly the way ExpandNibble would for the same code.
func (s *ChannelState) CompressSample(sample int16) byte {
	step := stepTable[s.StepIndex]

	delta := int32(sample) - s.Predictor
	var nibble byte
	if delta < 0 {
		nibble = 8
		delta = -delta
	}

	diff := step >> 3
	if delta >= step {
		nibble |= 4
		delta -= step
		diff += step
	}
	if delta >= step>>1 {
		nibble |= 2
		delta -= step >> 1
		diff += step >> 1
	}
	if delta >= step>>2 {
		nibble |= 1
		diff += step >> 2
	}

	if nibble&8 != 0 {
		s.Predictor = int32(Clip16(s.Predictor - diff))
	} else {
		s.Predictor = int32(Clip16(s.Predictor + diff))
	}
	s.advance(nibble)

	return nibble
}

func (s *ChannelState) advance(nibble byte) {
	s.StepIndex = int16(clampIndex(int32(s.StepIndex) + int32(indexTable[nibble])))
}

// Clip16 saturates a to the signed 16-bit range.
func Clip16(a int32) int16 {
	if (uint32(a)+0x8000)&^0xffff != 0 {
		return int16((a >> 31) ^ 0x7fff)
	}
	return int16(a)
}

func clampIndex(i int32) int32 {
	if i < 0 {
		return 0
	}
	if i > MaxStepIndex {
		return MaxStepIndex
	}
	return i
}
