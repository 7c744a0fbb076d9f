// SPDX-License-Identifier: EPL-2.0

package wav

import "encoding/binary"

const (
	// HeaderSize is the size of a canonical PCM WAV header.
	HeaderSize = 44

	// FormatPCM is the WAVE format tag of uncompressed PCM.
	FormatPCM = 1

	bitsPerSample = 16
)

// Header is the canonical 44 byte RIFF/WAVE header of 16-bit PCM data.
type Header struct {
	Channels   int
	SampleRate int
	// DataSize is the byte length of the PCM payload.
	DataSize uint32
}

// ByteRate is the number of payload bytes per second.
func (h Header) ByteRate() uint32 {
	return uint32(h.SampleRate * h.Channels * bitsPerSample / 8)
}

// BlockAlign is the byte length of one sample frame.
func (h Header) BlockAlign() uint16 {
	return uint16(h.Channels * bitsPerSample / 8)
}

// Bytes encodes the header.
func (h Header) Bytes() []byte {
	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+h.DataSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], FormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(h.Channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], h.ByteRate())
	binary.LittleEndian.PutUint16(header[32:34], h.BlockAlign())
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], h.DataSize)

	return header
}
