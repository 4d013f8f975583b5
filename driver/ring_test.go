package driver

import "testing"

func TestRingMeanOfLastKSamples(t *testing.T) {
	r := newRing(4)
	samples := []float64{1, 2, 3, 4, 5, 6, 7}
	for _, s := range samples {
		r.push(s)
	}
	// spec.md §8: a ring of capacity k after > k samples reports
	// average = mean(last k samples).
	want := (4.0 + 5 + 6 + 7) / 4
	if got := r.mean(); got != want {
		t.Fatalf("mean() = %v, want %v", got, want)
	}
}

func TestRingMinMaxRescanOnEvictedExtremum(t *testing.T) {
	r := newRing(3)
	r.push(5)
	r.push(1) // min
	r.push(9) // max
	if r.min != 1 || r.max != 9 {
		t.Fatalf("min=%v max=%v, want 1,9", r.min, r.max)
	}
	r.push(5) // evicts the 5 at front (neither extremum) — no rescan needed
	if r.min != 1 || r.max != 9 {
		t.Fatalf("after non-extremum eviction: min=%v max=%v, want 1,9", r.min, r.max)
	}
	r.push(2) // evicts the 1 (the min) — forces a rescan
	if r.min != 2 || r.max != 9 {
		t.Fatalf("after min eviction: min=%v max=%v, want 2,9", r.min, r.max)
	}
}

func TestRingLatestIsMostRecentPush(t *testing.T) {
	r := newRing(2)
	r.push(1)
	r.push(2)
	r.push(3) // evicts 1
	got, ok := r.latest()
	if !ok || got != 3 {
		t.Fatalf("latest() = (%v,%v), want (3,true)", got, ok)
	}
}

func TestRingEmptyHasNoLatest(t *testing.T) {
	r := newRing(4)
	if _, ok := r.latest(); ok {
		t.Fatal("latest() on empty ring returned ok=true")
	}
}
