// SPDX-License-Identifier: EPL-2.0

package ribber

import "errors"

var (
	// ErrFormatMismatch indicates a WAV input whose rate or channel count differs from the container
	ErrFormatMismatch = errors.New("wav format does not match container")

	// ErrOutputCount indicates a list of file paths that does not match the stream count
	ErrOutputCount = errors.New("file count does not match stream count")
)
