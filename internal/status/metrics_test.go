// SPDX-License-Identifier: EPL-2.0

package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/ribber"
)

var _ ribber.Recorder = (*Recorder)(nil)

func gathered(t *testing.T, r *Recorder) map[string]float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[key] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out
}

func TestRecorder_Record(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Record(ribber.Stats{
		Op:           ribber.OpEncode,
		Streams:      1,
		Blocks:       3,
		Chunks:       384,
		Frames:       390000,
		PaddedFrames: 528,
		Bytes:        393216,
		Duration:     20 * time.Millisecond,
	})
	r.Record(ribber.Stats{Op: ribber.OpDecode, Blocks: 2, Chunks: 256, Frames: 261248, TrailingBytes: 7})
	r.RecordFailure(ribber.OpDecode)

	got := gathered(t, r)
	tests := []struct {
		key  string
		want float64
	}{
		{"ribber_conversions_total{op=encode}", 1},
		{"ribber_conversions_total{op=decode}", 1},
		{"ribber_conversion_failures_total{op=decode}", 1},
		{"ribber_interleave_blocks_total{op=encode}", 3},
		{"ribber_chunks_total{op=decode}", 256},
		{"ribber_frames_total{op=encode}", 390000},
		{"ribber_padded_frames_total", 528},
		{"ribber_trailing_bytes_total", 7},
		{"ribber_container_bytes_total{op=encode}", 393216},
		{"ribber_conversion_duration_seconds{op=encode}", 1},
	}

	for _, tt := range tests {
		if got[tt.key] != tt.want {
			t.Errorf("%s = %v, want %v", tt.key, got[tt.key], tt.want)
		}
	}
}

func TestRecorder_Isolated(t *testing.T) {
	t.Parallel()

	a, b := NewRecorder(), NewRecorder()
	a.RecordFailure(ribber.OpEncode)

	if v := gathered(t, b)["ribber_conversion_failures_total{op=encode}"]; v != 0 {
		t.Errorf("second recorder sees %v failures, want 0", v)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.Record(ribber.Stats{Op: ribber.OpDecode, Blocks: 4})

	path := filepath.Join(t.TempDir(), "ribber.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"# TYPE ribber_interleave_blocks_total counter",
		`ribber_interleave_blocks_total{op="decode"} 4`,
		"ribber_conversion_duration_seconds_bucket",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q:\n%s", want, text)
		}
	}
}
