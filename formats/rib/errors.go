// SPDX-License-Identifier: EPL-2.0

package rib

import "errors"

var (
	// ErrMalformedChunk indicates a chunk whose byte length is not the chunk size
	ErrMalformedChunk = errors.New("malformed chunk")

	// ErrTruncatedContainer indicates the container ends inside an interleave block
	ErrTruncatedContainer = errors.New("truncated container")

	// ErrSampleCountMismatch indicates a sample frame of the wrong length on encode
	ErrSampleCountMismatch = errors.New("sample count mismatch")

	// ErrUnsupportedSampleRate indicates a rate other than 44100 or 22050 Hz
	ErrUnsupportedSampleRate = errors.New("unsupported sample rate")

	// ErrInvalidStreamCount indicates a stream count outside 1..MaxStreams
	ErrInvalidStreamCount = errors.New("invalid stream count")

	// ErrChannelMismatch indicates interleaved samples that do not divide by the channel count
	ErrChannelMismatch = errors.New("sample buffer does not match channel count")
)
