// SPDX-License-Identifier: EPL-2.0

package rib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/ribber/adpcm"
	"github.com/ik5/ribber/internal/audiotest"
)

func encodeBytes(t *testing.T, g Geometry, streams ...[]int16) ([]byte, EncodeResult) {
	t.Helper()

	var buf bytes.Buffer
	res, err := g.Encode(&buf, streams)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if res.Bytes != int64(buf.Len()) {
		t.Fatalf("EncodeResult.Bytes = %d, wrote %d", res.Bytes, buf.Len())
	}
	return buf.Bytes(), res
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"mono 44100", Config{Mono: true, SampleRate: 44100}},
		{"stereo 44100", Config{SampleRate: 44100}},
		{"stereo 22050", Config{SampleRate: 22050}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := mustGeometry(t, tt.cfg)
			frames := g.FramesPerBlock() + 5000
			pcm := audiotest.SinePCM(frames, g.Channels, g.SampleRate, 220, 4000)

			data, res := encodeBytes(t, g, pcm)
			if res.Blocks != 2 || len(data) != 2*g.BlockSize() {
				t.Fatalf("Encode() wrote %d blocks, %d bytes", res.Blocks, len(data))
			}

			streams, err := g.DecodeBytes(data)
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			got := streams[0]
			if got.Frames() != 2*g.FramesPerBlock() {
				t.Fatalf("decoded %d frames, want %d", got.Frames(), 2*g.FramesPerBlock())
			}

			worst := 0
			for i, want := range pcm {
				diff := abs(int(got.Samples[i]) - int(want))
				// the step size needs a few samples to adapt at the very start
				if i >= 64*g.Channels {
					worst = max(worst, diff)
				}

				// chunk leads are stored verbatim
				if (i/g.Channels)%g.DecodedPerChunk == 0 && diff != 0 {
					t.Errorf("leading sample %d = %d, want %d", i, got.Samples[i], want)
				}
			}
			if worst > int(adpcm.MaxStep()) {
				t.Errorf("worst error %d exceeds the largest step", worst)
			}
			if worst > 2000 {
				t.Errorf("worst error %d, want a sine tracked within 2000", worst)
			}
		})
	}
}

func TestDecode_ChannelOrder(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 22050})
	block := make([]byte, g.BlockSize())
	for ch, lead := range []int16{100, -100} {
		for j := range g.ChunksPerInterleave {
			off := ch*InterleaveSize + j*g.ChunkSize
			binary.LittleEndian.PutUint16(block[off:], uint16(lead))
		}
	}

	streams, err := g.DecodeBytes(block)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}

	s := streams[0]
	if s.Frames() != g.FramesPerBlock() {
		t.Fatalf("Frames() = %d, want %d", s.Frames(), g.FramesPerBlock())
	}
	for i, v := range s.Samples {
		want := int16(100)
		if i%2 == 1 {
			want = -100
		}
		if v != want {
			t.Fatalf("sample %d = %d, want %d", i, v, want)
		}
	}
}

// Six stereo streams, block i routed to stream i mod 6.
func TestDecode_MultiStream(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 44100, Streams: 6})

	const blocksPerStream = 2
	streams, err := g.DecodeBytes(make([]byte, 6*blocksPerStream*g.BlockSize()))
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if len(streams) != 6 {
		t.Fatalf("got %d streams, want 6", len(streams))
	}
	for i, s := range streams {
		if s.Index != i || s.Blocks != blocksPerStream {
			t.Errorf("stream %d: Index = %d, Blocks = %d", i, s.Index, s.Blocks)
		}
		if want := blocksPerStream * 64 * 2041; s.Frames() != want {
			t.Errorf("stream %d: Frames() = %d, want %d", i, s.Frames(), want)
		}
	}
}

func TestEncodeDecode_MultiStreamRouting(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 22050, Streams: 3})
	frames := g.FramesPerBlock()

	// constant input decodes exactly: every delta is zero and step 7 >> 3 is zero
	in := [][]int16{
		audiotest.ConstantPCM(frames, 2, 1000),
		audiotest.ConstantPCM(frames*2, 2, -2000),
		audiotest.ConstantPCM(10, 2, 3000),
	}

	data, res := encodeBytes(t, g, in...)
	if res.BlocksPerStream != 2 || res.Blocks != 6 {
		t.Fatalf("EncodeResult = %+v, want 2 blocks per stream", res)
	}
	if want := []int{frames, 0, 2*frames - 10}; res.PaddedFrames[0] != want[0] ||
		res.PaddedFrames[1] != want[1] || res.PaddedFrames[2] != want[2] {
		t.Errorf("PaddedFrames = %v, want %v", res.PaddedFrames, want)
	}

	streams, err := g.DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	for s, want := range []int16{1000, -2000, 3000} {
		got := streams[s]
		if got.Frames() != 2*frames {
			t.Errorf("stream %d: Frames() = %d, want %d", s, got.Frames(), 2*frames)
		}
		for i, v := range got.Samples {
			if v != want {
				t.Fatalf("stream %d sample %d = %d, want %d", s, i, v, want)
			}
		}
	}
}

func TestEncode_PadsWithLastSample(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{Mono: true, SampleRate: 22050})
	ramp := make([]int16, 10)
	for i := range ramp {
		ramp[i] = int16(i + 1)
	}

	data, res := encodeBytes(t, g, ramp)
	if res.Blocks != 1 || res.PaddedFrames[0] != g.FramesPerBlock()-10 {
		t.Fatalf("EncodeResult = %+v", res)
	}

	streams, err := g.DecodeBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	samples := streams[0].Samples
	for k := 1; k < g.ChunksPerInterleave; k++ {
		if v := samples[k*g.DecodedPerChunk]; v != 10 {
			t.Fatalf("chunk %d lead = %d, want padded value 10", k, v)
		}
	}
}

func TestEncode_Empty(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 44100})
	data, res := encodeBytes(t, g, nil)
	if len(data) != 0 || res.Blocks != 0 {
		t.Errorf("Encode(empty) wrote %d bytes in %d blocks", len(data), res.Blocks)
	}
}

func TestEncode_Errors(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 44100, Streams: 2})

	tests := []struct {
		name    string
		streams [][]int16
		want    error
	}{
		{"too few streams", [][]int16{{0, 0}}, ErrInvalidStreamCount},
		{"too many streams", [][]int16{{0, 0}, {0, 0}, {0, 0}}, ErrInvalidStreamCount},
		{"odd stereo samples", [][]int16{{0, 0}, {0, 0, 0}}, ErrChannelMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if _, err := g.Encode(&buf, tt.streams); !errors.Is(err, tt.want) {
				t.Errorf("Encode() error = %v, want %v", err, tt.want)
			}
			if buf.Len() != 0 {
				t.Errorf("Encode() wrote %d bytes on failure", buf.Len())
			}
		})
	}
}

func TestDecode_TrailingBytes(t *testing.T) {
	t.Parallel()

	data := make([]byte, 2*InterleaveSize+17)

	lenient := mustGeometry(t, Config{SampleRate: 44100})
	streams, err := lenient.DecodeBytes(data)
	if err != nil {
		t.Fatalf("lenient DecodeBytes() error = %v", err)
	}
	if streams[0].Blocks != 1 {
		t.Errorf("lenient decode read %d blocks, want 1", streams[0].Blocks)
	}

	strict := mustGeometry(t, Config{SampleRate: 44100, Strict: true})
	if _, err := strict.DecodeBytes(data); !errors.Is(err, ErrTruncatedContainer) {
		t.Errorf("strict DecodeBytes() error = %v, want ErrTruncatedContainer", err)
	}
}

func TestDecode_ShortReader(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{Mono: true, SampleRate: 44100})
	data := make([]byte, InterleaveSize/2)

	// the reader holds less than the announced size
	_, err := g.Decode(bytes.NewReader(data), InterleaveSize)
	if !errors.Is(err, ErrTruncatedContainer) {
		t.Errorf("Decode() error = %v, want ErrTruncatedContainer", err)
	}
}

func TestDecode_BadChunkHeader(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 44100})
	data := make([]byte, g.BlockSize())
	data[InterleaveSize+3*g.ChunkSize+2] = 120

	_, err := g.DecodeBytes(data)
	if !errors.Is(err, adpcm.ErrInvalidStepIndex) {
		t.Fatalf("DecodeBytes() error = %v, want ErrInvalidStepIndex", err)
	}
}

func TestDecodeBlock_Errors(t *testing.T) {
	t.Parallel()

	g := mustGeometry(t, Config{SampleRate: 44100})

	if err := g.DecodeBlock(make([][]int16, 2), make([]byte, InterleaveSize)); !errors.Is(err, ErrTruncatedContainer) {
		t.Errorf("short block error = %v, want ErrTruncatedContainer", err)
	}
	if err := g.DecodeBlock(make([][]int16, 1), make([]byte, g.BlockSize())); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("buffer count error = %v, want ErrChannelMismatch", err)
	}
}

func TestStream(t *testing.T) {
	t.Parallel()

	s := Stream{SampleRate: 22050, Channels: 2, Samples: []int16{1, -1, 2, -2, 3, -3}}

	if s.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", s.Frames())
	}
	if got := s.Channel(1); len(got) != 3 || got[0] != -1 || got[2] != -3 {
		t.Errorf("Channel(1) = %v", got)
	}

	buf := s.IntBuffer()
	if buf.Format.NumChannels != 2 || buf.Format.SampleRate != 22050 || buf.SourceBitDepth != 16 {
		t.Errorf("IntBuffer format = %+v, depth %d", buf.Format, buf.SourceBitDepth)
	}
	if len(buf.Data) != 6 || buf.Data[5] != -3 {
		t.Errorf("IntBuffer data = %v", buf.Data)
	}

	var empty Stream
	if empty.Frames() != 0 {
		t.Errorf("empty Frames() = %d", empty.Frames())
	}
}

func BenchmarkDecodeBlock(b *testing.B) {
	b.ReportAllocs()

	g := mustGeometry(b, Config{SampleRate: 44100})
	block := make([]byte, g.BlockSize())
	dst := make([][]int16, g.Channels)

	b.SetBytes(int64(len(block)))
	for i := 0; i < b.N; i++ {
		if err := g.DecodeBlock(dst, block); err != nil {
			b.Fatal(err)
		}
	}
}
