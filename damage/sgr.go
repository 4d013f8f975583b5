package damage

import (
	"vtengine/cell"
	"vtengine/control"
	"vtengine/internal/nocopy"
)

// irreversible is the set of attributes with no individual "off" code in
// the dialect this encoder emits (spec.md §4.4). Every attribute this
// tracker toggles has one, including bold (RenditionNormal), so that set
// is empty here: removing any single attribute never forces a full
// Reset.
const irreversible cell.Attr = 0

// SGRTracker maintains the terminal's believed-current style and emits
// the minimal rendition list to move it to a target style. It is
// non-copyable by contract (spec.md §9): exactly one exists per buffered
// output sink, created when the sink opens and dropped when it closes.
type SGRTracker struct {
	_       nocopy.Flag
	current cell.Style
}

// NewSGRTracker returns a tracker initialised to the default style.
func NewSGRTracker() *SGRTracker {
	return &SGRTracker{current: cell.Default}
}

// Transition returns the minimal rendition list moving the tracker from
// its current style to target, and updates current to target. Calling
// Transition(target) twice in a row returns nil the second time (the
// invariant spec.md §8 tests).
func (t *SGRTracker) Transition(target cell.Style) []control.GraphicRendition {
	if t.current == target {
		return nil
	}

	var out []control.GraphicRendition

	curAttrs, tgtAttrs := t.current.Attrs(), target.Attrs()
	removed := curAttrs &^ tgtAttrs
	toggled := curAttrs ^ tgtAttrs

	working := t.current
	if removed&irreversible != 0 {
		out = append(out, control.ResetAll())
		working = cell.Default
		curAttrs = 0
		toggled = curAttrs ^ tgtAttrs
	}

	if working.Foreground() != target.Foreground() {
		out = append(out, control.Foreground(target.Foreground()))
	}
	if working.Background() != target.Background() {
		out = append(out, control.Background(target.Background()))
	}

	type toggle struct {
		attr cell.Attr
		on   control.RenditionKind
		off  control.RenditionKind
	}
	toggles := []toggle{
		{cell.AttrBold, control.RenditionBold, control.RenditionNormal},
		{cell.AttrItalic, control.RenditionItalic, control.RenditionItalicOff},
		{cell.AttrUnderline, control.RenditionUnderline, control.RenditionUnderlineOff},
		{cell.AttrStrikethrough, control.RenditionStrikethrough, control.RenditionStrikethroughOff},
		{cell.AttrBlink, control.RenditionBlink, control.RenditionBlinkOff},
	}
	for _, tg := range toggles {
		if toggled&tg.attr == 0 {
			continue
		}
		if tgtAttrs&tg.attr != 0 {
			out = append(out, control.GraphicRendition{Kind: tg.on})
		} else {
			out = append(out, control.GraphicRendition{Kind: tg.off})
		}
	}

	t.current = target
	return out
}

// Current returns the tracker's believed-current style.
func (t *SGRTracker) Current() cell.Style { return t.current }
