package cell

import "testing"

func TestStyleEqualityIsPackEquality(t *testing.T) {
	a := Default.WithForeground(Ansi(AnsiRed, IntensityNormal)).WithAttr(AttrBold, true)
	b := Default.WithAttr(AttrBold, true).WithForeground(Ansi(AnsiRed, IntensityNormal))
	if a != b {
		t.Fatalf("styles built in different orders should pack identically: %x != %x", uint64(a), uint64(b))
	}
}

func TestStyleRoundTripAnsi(t *testing.T) {
	s := Default.WithForeground(Ansi(AnsiGreen, IntensityBright)).WithBackground(Ansi(AnsiBlue, IntensityNormal))
	fg := s.Foreground()
	if fg.Kind != ColorAnsi || fg.ID != AnsiGreen || fg.Intensity != IntensityBright {
		t.Fatalf("foreground round-trip: %+v", fg)
	}
	bg := s.Background()
	if bg.Kind != ColorAnsi || bg.ID != AnsiBlue || bg.Intensity != IntensityNormal {
		t.Fatalf("background round-trip: %+v", bg)
	}
}

func TestStyleRoundTripRGB(t *testing.T) {
	s := Default.WithForeground(RGB(10, 20, 30))
	fg := s.Foreground()
	if fg.Kind != ColorRGB || fg.R != 10 || fg.G != 20 || fg.B != 30 {
		t.Fatalf("rgb round-trip: %+v", fg)
	}
}

func TestStyleAttrs(t *testing.T) {
	s := Default.WithAttr(AttrBold, true).WithAttr(AttrItalic, true)
	if !s.HasAttr(AttrBold) || !s.HasAttr(AttrItalic) {
		t.Fatalf("expected bold+italic set")
	}
	if s.HasAttr(AttrUnderline) {
		t.Fatalf("underline should not be set")
	}
	s = s.WithAttr(AttrBold, false)
	if s.HasAttr(AttrBold) {
		t.Fatalf("bold should have been cleared")
	}
}

func TestDefaultStyleIsZero(t *testing.T) {
	if Default != 0 {
		t.Fatalf("Default should be the zero value")
	}
	if Default.Foreground().Kind != ColorNone || Default.Background().Kind != ColorNone {
		t.Fatalf("Default should carry no colors")
	}
}
