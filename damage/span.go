// Package damage implements the diff-compression stages between the
// renderer's two buffers (spec.md §4.2-§4.4): damage detection, run-
// length segmentation, and minimal SGR-transition tracking.
//
// Grounded on tui/screen.go's renderUnlocked diff loop (`if backCell !=
// frontCells[idx]`), lifted out of the renderer into a pure function and
// extended with the style-homogeneity splitting pass the spec requires.
package damage

import "vtengine/cell"

// Span is a half-open range [Lo, Hi) of buffer indices that share Style
// (the cells-share-style invariant is what lets the renderer emit one
// SGR transition per span instead of one per cell).
type Span struct {
	Lo, Hi int
	Style  cell.Style
}

// Detect compares front (the last presented frame) against back (the
// frame about to be presented) and returns the minimal set of style-
// homogeneous spans covering every changed cell, in ascending order.
//
// If the two buffers differ in size, the caller must redraw everything;
// Detect signals this with a single span covering the whole of back at
// the default style (spec.md §4.2 step 1) rather than attempting a
// per-cell diff across mismatched geometries.
func Detect(front, back *cell.Buffer) []Span {
	if front.Size() != back.Size() {
		n := back.Size().Area()
		if n == 0 {
			return nil
		}
		return []Span{{Lo: 0, Hi: n, Style: cell.Default}}
	}

	var spans []Span
	f := front.Cells()
	b := back.Cells()
	n := len(b)

	start := -1
	for i := 0; i < n; i++ {
		if f[i] != b[i] {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			spans = append(spans, split(b, start, i)...)
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, split(b, start, n)...)
	}
	return spans
}

// split breaks the raw damaged range [lo, hi) into style-homogeneous
// spans, emitting a new Span at every style boundary.
func split(b []cell.Cell, lo, hi int) []Span {
	if lo >= hi {
		return nil
	}
	var out []Span
	segStart := lo
	style := b[lo].Style
	for i := lo + 1; i < hi; i++ {
		if b[i].Style != style {
			out = append(out, Span{Lo: segStart, Hi: i, Style: style})
			segStart = i
			style = b[i].Style
		}
	}
	out = append(out, Span{Lo: segStart, Hi: hi, Style: style})
	return out
}
