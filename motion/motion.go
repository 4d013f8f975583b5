// Package motion implements the cursor-motion optimiser (spec.md §4.5):
// given a (from, to) pair of positions, it emits the byte-shortest
// sequence of control.Sequences that moves the cursor there.
//
// Grounded on other_examples/grindlemire-go-tui's escBuilder.MoveTo/
// MoveUp/MoveDown/MoveRight/MoveLeft (only emit a count when it's > 1,
// i.e. non-default) and on the gdamore/tcell tScreen cursor-position
// bookkeeping (cx/cy) for the deferred-wrap "last column, not next
// column" sentinel idea used by the renderer (spec.md §4.5 last
// paragraph; see vtengine.Renderer).
package motion

import (
	"vtengine/cell"
	"vtengine/control"
)

// Optimize returns the shortest (in enc's encoding) sequence of
// control.Sequences that moves the cursor from `from` to `to`. If
// from == to, it returns nil.
func Optimize(from, to cell.Position, enc control.Encoder) []control.Sequence {
	if from == to {
		return nil
	}

	candidates := [][]control.Sequence{
		{control.Position(to.Row, to.Col)}, // always valid
	}

	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	if to.Col == 1 {
		switch {
		case dRow > 0:
			candidates = append(candidates, []control.Sequence{control.NextLine(dRow)})
		case dRow < 0:
			candidates = append(candidates, []control.Sequence{control.PreviousLine(-dRow)})
		default:
			candidates = append(candidates, []control.Sequence{control.HorizontalAbsolute(1)})
		}
	}

	if dRow == 0 {
		candidates = append(candidates, []control.Sequence{control.HorizontalAbsolute(to.Col)})
		switch {
		case dCol > 0:
			candidates = append(candidates, []control.Sequence{control.Forward(dCol)})
		case dCol < 0:
			candidates = append(candidates, []control.Sequence{control.Backward(-dCol)})
		}
	} else {
		var seqs []control.Sequence
		if dRow > 0 {
			seqs = append(seqs, control.Down(dRow))
		} else {
			seqs = append(seqs, control.Up(-dRow))
		}
		switch {
		case dCol > 0:
			seqs = append(seqs, control.Forward(dCol))
		case dCol < 0:
			seqs = append(seqs, control.Backward(-dCol))
		}
		candidates = append(candidates, seqs)
	}

	best := candidates[0]
	bestLen := encodedLen(enc, best)
	for _, c := range candidates[1:] {
		if l := encodedLen(enc, c); l < bestLen {
			best, bestLen = c, l
		}
	}
	return best
}

func encodedLen(enc control.Encoder, seqs []control.Sequence) int {
	n := 0
	for _, s := range seqs {
		n += enc.Len(s)
	}
	return n
}
