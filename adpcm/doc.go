// SPDX-License-Identifier: EPL-2.0

// Package adpcm implements the 4-bit IMA style sample codec used inside RIB
// containers.
//
// A ChannelState carries the adaptive predictor and step index of one
// channel. ExpandNibble turns a 4-bit code into a 16-bit sample and
// CompressSample does the inverse; both update the state identically, so a
// code produced by CompressSample and fed to ExpandNibble on a copy of the
// same prior state reproduces the encoder's predictor and step index:
//
//	enc := adpcm.ChannelState{Predictor: 0}
//	dec := enc
//	code := enc.CompressSample(1200)
//	dec.ExpandNibble(code) // dec == enc
//
// The step and index tables are the reference IMA tables and must not be
// altered, the bitstream depends on them.
package adpcm
