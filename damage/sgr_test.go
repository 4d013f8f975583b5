package damage

import (
	"testing"

	"vtengine/cell"
	"vtengine/control"
)

func TestSGRTrackerNoChangeReturnsEmpty(t *testing.T) {
	tr := NewSGRTracker()
	s := cell.Default.WithAttr(cell.AttrItalic, true)
	tr.Transition(s)
	if got := tr.Transition(s); len(got) != 0 {
		t.Fatalf("second identical transition = %+v, want empty", got)
	}
}

func TestSGRTrackerMinimalTransitionScenario(t *testing.T) {
	tr := NewSGRTracker()
	red := cell.Ansi(cell.AnsiRed, cell.IntensityNormal)

	s1 := cell.Default.WithForeground(red).WithAttr(cell.AttrBold, true)
	got1 := tr.Transition(s1)
	if len(got1) != 2 {
		t.Fatalf("first transition = %+v, want [Fg(red), Bold] (2 renditions)", got1)
	}
	foundFg, foundBold := false, false
	for _, r := range got1 {
		if r.Kind == control.RenditionForeground && r.Color == red {
			foundFg = true
		}
		if r.Kind == control.RenditionBold {
			foundBold = true
		}
	}
	if !foundFg || !foundBold {
		t.Fatalf("first transition = %+v, missing Fg/Bold", got1)
	}

	s2 := s1.WithAttr(cell.AttrItalic, true)
	got2 := tr.Transition(s2)
	if len(got2) != 1 || got2[0].Kind != control.RenditionItalic {
		t.Fatalf("second transition = %+v, want [Italic]", got2)
	}
}

func TestSGRTrackerRemovingBoldEmitsNormalWithoutReset(t *testing.T) {
	tr := NewSGRTracker()
	bold := cell.Default.WithAttr(cell.AttrBold, true)
	tr.Transition(bold)
	got := tr.Transition(cell.Default)
	if len(got) != 1 || got[0].Kind != control.RenditionNormal {
		t.Fatalf("removing bold alone = %+v, want [Normal]", got)
	}
}

func TestSGRTrackerRemovingBoldWithUntouchedColorStaysMinimal(t *testing.T) {
	tr := NewSGRTracker()
	red := cell.Ansi(cell.AnsiRed, cell.IntensityNormal)
	s1 := cell.Default.WithForeground(red).WithAttr(cell.AttrBold, true).WithAttr(cell.AttrUnderline, true)
	tr.Transition(s1)

	s2 := s1.WithAttr(cell.AttrBold, false)
	got := tr.Transition(s2)

	if len(got) != 1 || got[0].Kind != control.RenditionNormal {
		t.Fatalf("removing bold with untouched color/underline = %+v, want exactly [Normal]", got)
	}
}

func TestSGRTrackerAttributeOffCodes(t *testing.T) {
	tr := NewSGRTracker()
	underline := cell.Default.WithAttr(cell.AttrUnderline, true)
	tr.Transition(underline)
	got := tr.Transition(cell.Default)
	foundOff := false
	for _, r := range got {
		if r.Kind == control.RenditionUnderlineOff {
			foundOff = true
		}
	}
	if !foundOff {
		t.Fatalf("removing underline should emit UnderlineOff, got %+v", got)
	}
}
