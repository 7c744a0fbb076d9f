// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrInvalidChannels       = errors.New("invalid channel count")
	ErrSampleAlignment       = errors.New("sample count is not a multiple of the channel count")
)
