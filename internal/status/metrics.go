// SPDX-License-Identifier: EPL-2.0

// Package status collects conversion metrics in Prometheus form.
package status

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/ribber"
)

// Recorder counts conversions on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	conversions   *prometheus.CounterVec
	failures      *prometheus.CounterVec
	blocks        *prometheus.CounterVec
	chunks        *prometheus.CounterVec
	frames        *prometheus.CounterVec
	paddedFrames  prometheus.Counter
	trailingBytes prometheus.Counter
	bytes         *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewRecorder returns a Recorder with every metric registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_conversions_total",
			Help: "Total number of finished conversions.",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_conversion_failures_total",
			Help: "Total number of failed conversions.",
		}, []string{"op"}),
		blocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_interleave_blocks_total",
			Help: "Total number of interleave blocks read or written.",
		}, []string{"op"}),
		chunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_chunks_total",
			Help: "Total number of ADPCM chunks processed.",
		}, []string{"op"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_frames_total",
			Help: "Total number of sample frames processed.",
		}, []string{"op"}),
		paddedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ribber_padded_frames_total",
			Help: "Total number of frames added to fill the last interleave blocks.",
		}),
		trailingBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ribber_trailing_bytes_total",
			Help: "Total number of container bytes ignored after the last interleave block.",
		}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ribber_container_bytes_total",
			Help: "Total number of container bytes read or written.",
		}, []string{"op"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ribber_conversion_duration_seconds",
			Help:    "Time spent on one conversion.",
			Buckets: prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"op"}),
	}

	r.registry.MustRegister(
		r.conversions, r.failures, r.blocks, r.chunks, r.frames,
		r.paddedFrames, r.trailingBytes, r.bytes, r.duration,
	)
	return r
}

// Registry exposes the registry the metrics live on.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Record adds one finished conversion.
func (r *Recorder) Record(s ribber.Stats) {
	r.conversions.WithLabelValues(s.Op).Inc()
	r.blocks.WithLabelValues(s.Op).Add(float64(s.Blocks))
	r.chunks.WithLabelValues(s.Op).Add(float64(s.Chunks))
	r.frames.WithLabelValues(s.Op).Add(float64(s.Frames))
	r.bytes.WithLabelValues(s.Op).Add(float64(s.Bytes))
	r.paddedFrames.Add(float64(s.PaddedFrames))
	r.trailingBytes.Add(float64(s.TrailingBytes))
	r.duration.WithLabelValues(s.Op).Observe(s.Duration.Seconds())
}

// RecordFailure counts a failed conversion.
func (r *Recorder) RecordFailure(op string) {
	r.failures.WithLabelValues(op).Inc()
}

// WriteTextfile writes the current metrics to path in the text exposition
// format read by the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
