package damage

import "vtengine/cell"

// DefaultMinLength is the breakeven run length below which a REP-encoded
// run costs more bytes than just writing the characters out (spec.md
// §4.3: emitting `c` then `REP n-1` is 4-6 bytes regardless of n).
const DefaultMinLength = 5

// SegKind distinguishes a Segment's two shapes.
type SegKind int

const (
	SegRun SegKind = iota
	SegLiteral
)

// Segment is either a Run(character, count) or a Literal(string). A
// segmentation of a span is exhaustive (covers every written position)
// and ordered.
type Segment struct {
	Kind  SegKind
	Char  rune
	Count int
	Text  string
}

// SegmentSpan walks the cells in span and returns an ordered list of Runs
// (length >= minlength, or DefaultMinLength if minlength <= 0) and
// Literals covering it. Continuation cells (Char == 0, spec.md §3) are
// skipped: they occupy a buffer index but a wide glyph is only ever
// written once, at its leading cell.
func SegmentSpan(span Span, buf *cell.Buffer, minlength int) []Segment {
	if minlength <= 0 {
		minlength = DefaultMinLength
	}
	cells := buf.Cells()
	if span.Lo >= span.Hi || span.Hi > len(cells) {
		return nil
	}

	var out []Segment
	var literal []rune

	flushLiteral := func() {
		if len(literal) == 0 {
			return
		}
		out = append(out, Segment{Kind: SegLiteral, Text: string(literal)})
		literal = literal[:0]
	}

	i := span.Lo
	for i < span.Hi {
		ch := cells[i].Char
		if ch == 0 {
			i++
			continue
		}
		j := i + 1
		for j < span.Hi && cells[j].Char == ch {
			j++
		}
		run := j - i
		if run >= minlength {
			flushLiteral()
			out = append(out, Segment{Kind: SegRun, Char: ch, Count: run})
		} else {
			for k := 0; k < run; k++ {
				literal = append(literal, ch)
			}
		}
		i = j
	}
	flushLiteral()
	return out
}
