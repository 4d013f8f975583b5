package driver

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProfilerCapacityFloor(t *testing.T) {
	p := NewProfiler(10, zerolog.Nop())
	if cap := len(p.ring.buf); cap != 60 {
		t.Fatalf("ring capacity = %d, want 60 (max(60, 2*10))", cap)
	}
	p2 := NewProfiler(60, zerolog.Nop())
	if cap := len(p2.ring.buf); cap != 120 {
		t.Fatalf("ring capacity = %d, want 120 (max(60, 2*60))", cap)
	}
}

func TestProfilerEmptyStatisticsAreZero(t *testing.T) {
	p := NewProfiler(30, zerolog.Nop())
	s := p.Statistics()
	if s.Current != 0 || s.Average != 0 || s.FPSMax != 0 || s.FPSMin != 0 {
		t.Fatalf("empty profiler Statistics() = %+v, want all zero", s)
	}
}

func TestProfilerCountsRenderedAndDropped(t *testing.T) {
	p := NewProfiler(1000, zerolog.Nop()) // target ~1ms, easy to exceed deliberately
	p.Measure(func() {})
	p.Measure(func() { time.Sleep(5 * time.Millisecond) })
	stats := p.Statistics()
	if stats.Rendered != 2 {
		t.Fatalf("Rendered = %d, want 2", stats.Rendered)
	}
	if stats.Dropped != 1 {
		t.Fatalf("Dropped = %d, want 1", stats.Dropped)
	}
}

func TestProfilerStatisticsTrackMinMaxFPS(t *testing.T) {
	p := NewProfiler(1000, zerolog.Nop())
	p.record(10 * time.Millisecond)
	p.record(20 * time.Millisecond)
	stats := p.Statistics()
	wantFPSMax := float64(time.Second) / float64(10*time.Millisecond)
	wantFPSMin := float64(time.Second) / float64(20*time.Millisecond)
	if stats.FPSMax != wantFPSMax {
		t.Fatalf("FPSMax = %v, want %v", stats.FPSMax, wantFPSMax)
	}
	if stats.FPSMin != wantFPSMin {
		t.Fatalf("FPSMin = %v, want %v", stats.FPSMin, wantFPSMin)
	}
}
