// SPDX-License-Identifier: EPL-2.0

package adpcm

import "errors"

var (
	// ErrInvalidStepIndex indicates a step index outside [0, MaxStepIndex]
	ErrInvalidStepIndex = errors.New("step index out of range")
)
