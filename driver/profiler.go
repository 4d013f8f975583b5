// Package driver implements the frame-paced render loop and its
// profiler (spec.md §4.7): a fixed-interval, catch-up-free DisplayLink
// and an O(1)-amortized ring-buffer Profiler tracking FPS/frame-time/
// dropped-frame statistics.
//
// Grounded on tui/screen.go's handleResize goroutine-plus-channel shape
// (done chan struct{}, select over ticks vs. cancellation) for the
// cooperative-cancellation pattern; the profiler itself is new code
// built directly from spec.md §4.7's worked ring-buffer description,
// since neither the teacher nor the rest of the pack ships one.
package driver

import (
	"time"

	"github.com/rs/zerolog"

	"vtengine/internal/nocopy"
)

// FrameStatistics is the snapshot Profiler.Statistics returns.
type FrameStatistics struct {
	Current  time.Duration
	Average  time.Duration
	FPSMax   float64
	FPSMin   float64
	Rendered int
	Dropped  int
}

// Profiler measures render-callback duration against a fixed frame
// budget T and keeps a ring of the last max(60, 2*fps) samples.
type Profiler struct {
	nocopy.Flag

	target   time.Duration
	ring     *ring
	rendered int
	dropped  int
	log      zerolog.Logger
}

// NewProfiler returns a Profiler targeting fps frames per second.
func NewProfiler(fps float64, log zerolog.Logger) *Profiler {
	capacity := int(2 * fps)
	if capacity < 60 {
		capacity = 60
	}
	return &Profiler{
		target: time.Duration(float64(time.Second) / fps),
		ring:   newRing(capacity),
		log:    log,
	}
}

// Measure runs op, recording its elapsed time as one frame sample.
func (p *Profiler) Measure(op func()) {
	start := time.Now()
	op()
	p.record(time.Since(start))
}

func (p *Profiler) record(d time.Duration) {
	p.rendered++
	if d > p.target {
		p.dropped++
		p.log.Warn().
			Dur("elapsed", d).
			Dur("target", p.target).
			Msg("dropped frame")
	}
	p.ring.push(float64(d))
}

// Statistics returns the current frame-time/FPS snapshot. All values
// are zero if no sample has been recorded yet.
func (p *Profiler) Statistics() FrameStatistics {
	stats := FrameStatistics{
		Rendered: p.rendered,
		Dropped:  p.dropped,
	}
	latest, ok := p.ring.latest()
	if !ok {
		return stats
	}
	stats.Current = time.Duration(latest)
	stats.Average = time.Duration(p.ring.mean())
	if p.ring.min > 0 {
		stats.FPSMax = float64(time.Second) / p.ring.min
	}
	if p.ring.max > 0 {
		stats.FPSMin = float64(time.Second) / p.ring.max
	}
	return stats
}
