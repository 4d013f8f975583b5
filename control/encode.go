package control

import (
	"fmt"
	"strconv"

	"vtengine/cell"
)

// Encoding selects the 7-bit (ESC-introduced) or 8-bit (single C1 byte)
// wire representation. A given output session uses exactly one.
type Encoding int

const (
	Encoding7Bit Encoding = iota
	Encoding8Bit
)

// Encoder turns Sequences into their canonical byte-string encoding.
type Encoder struct {
	Encoding Encoding
}

func NewEncoder(e Encoding) Encoder { return Encoder{Encoding: e} }

func (e Encoder) csiIntro(buf []byte) []byte {
	if e.Encoding == Encoding8Bit {
		return append(buf, 0x9B)
	}
	return append(buf, 0x1B, '[')
}

func (e Encoder) oscIntro(buf []byte) []byte {
	if e.Encoding == Encoding8Bit {
		return append(buf, 0x9D)
	}
	return append(buf, 0x1B, ']')
}

func appendInt(buf []byte, n int) []byte {
	return strconv.AppendInt(buf, int64(n), 10)
}

// programmingError panics: Encode is told to emit something that is
// only ever valid as a parsed input event, or a malformed DECFRA
// character (spec.md §7).
func programmingError(format string, args ...interface{}) {
	panic(fmt.Sprintf("control: programming error: "+format, args...))
}

// Encode returns the canonical byte encoding of seq. It panics if seq is
// response-shaped (DeviceAttributesResponse, CurrentPositionReport) or a
// FillRectangularArea with a non-printable character — both are
// programmer errors, not runtime conditions (spec.md §7).
func (e Encoder) Encode(seq Sequence) []byte {
	var buf []byte

	switch seq.Kind {
	case CursorUp:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'A')
	case CursorDown:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'B')
	case CursorForward:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'C')
	case CursorBackward:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'D')
	case CursorNextLine:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'E')
	case CursorPreviousLine:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'F')
	case CursorHorizontalAbsolute:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Col)
		buf = append(buf, 'G')
	case CursorPosition:
		buf = e.csiIntro(buf)
		row, col := seq.Row, seq.Col
		if row <= 0 {
			row = 1
		}
		if col <= 0 {
			col = 1
		}
		switch {
		case row == 1 && col == 1:
			// bare "H"
		case row == 1:
			buf = append(buf, ';')
			buf = appendInt(buf, col)
		case col == 1:
			buf = appendInt(buf, row)
		default:
			buf = appendInt(buf, row)
			buf = append(buf, ';')
			buf = appendInt(buf, col)
		}
		buf = append(buf, 'H')
	case EraseInPage:
		buf = e.csiIntro(buf)
		buf = appendExtent(buf, seq.Extent)
		buf = append(buf, 'J')
	case EraseInLine:
		buf = e.csiIntro(buf)
		buf = appendExtent(buf, seq.Extent)
		buf = append(buf, 'K')
	case EraseField:
		buf = e.csiIntro(buf)
		buf = appendExtent(buf, seq.Extent)
		buf = append(buf, 'N')
	case ScrollUp:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'S')
	case ScrollDown:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'T')
	case SelectGraphicRendition:
		buf = e.csiIntro(buf)
		buf = e.appendRenditions(buf, seq.Renditions)
		buf = append(buf, 'm')
	case SetMode:
		buf = e.csiIntro(buf)
		buf = appendModeNumber(buf, seq.Mode)
		buf = append(buf, 'h')
	case ResetMode:
		buf = e.csiIntro(buf)
		buf = appendModeNumber(buf, seq.Mode)
		buf = append(buf, 'l')
	case FillRectangularArea:
		if !printable(seq.Char) {
			programmingError("FillRectangularArea char %q is not printable", seq.Char)
		}
		buf = e.csiIntro(buf)
		buf = appendInt(buf, int(seq.Char))
		buf = append(buf, ';')
		buf = appendInt(buf, seq.Rect.Top)
		buf = append(buf, ';')
		buf = appendInt(buf, seq.Rect.Left)
		buf = append(buf, ';')
		buf = appendInt(buf, seq.Rect.Bottom)
		buf = append(buf, ';')
		buf = appendInt(buf, seq.Rect.Right)
		buf = append(buf, '$', 'x')
	case RepeatPrecedingCharacter:
		buf = e.csiIntro(buf)
		buf = appendCountDefault1(buf, seq.Count)
		buf = append(buf, 'b')
	case DeviceAttributesRequest:
		buf = e.csiIntro(buf)
		buf = append(buf, daIntermediate(seq.Family)...)
		buf = append(buf, 'c')
	case DeviceAttributesResponse, CurrentPositionReport:
		programmingError("%v is response-shaped and cannot be emitted as output", seq.Kind)
	default:
		programmingError("unknown Sequence kind %v", seq.Kind)
	}

	return buf
}

// Len returns len(Encode(seq)) without the caller needing to discard the
// slice; used heavily by the cursor-motion optimiser to compare
// candidate strategies by byte length.
func (e Encoder) Len(seq Sequence) int {
	return len(e.Encode(seq))
}

func appendCountDefault1(buf []byte, n int) []byte {
	if n == 1 {
		return buf
	}
	return appendInt(buf, count1(n))
}

func appendExtent(buf []byte, e EraseExtent) []byte {
	if e == EraseToEnd {
		return buf
	}
	return appendInt(buf, int(e))
}

func appendModeNumber(buf []byte, m Mode) []byte {
	buf = append(buf, '?')
	switch m {
	case ModeSynchronizedUpdate:
		return appendInt(buf, 2026)
	case ModeCursorVisible:
		return appendInt(buf, 25)
	case ModeAlternateScreen:
		return appendInt(buf, 1049)
	default:
		programmingError("unknown Mode %v", m)
		return buf
	}
}

func daIntermediate(f DAFamily) []byte {
	switch f {
	case DAPrimary:
		return nil
	case DASecondary:
		return []byte{'>'}
	case DATertiary:
		return []byte{'='}
	default:
		programmingError("unknown DAFamily %v", f)
		return nil
	}
}

func printable(r rune) bool {
	return (r >= 32 && r <= 126) || (r >= 160 && r <= 255)
}

func (e Encoder) appendRenditions(buf []byte, rs []GraphicRendition) []byte {
	for i, r := range rs {
		if i > 0 {
			buf = append(buf, ';')
		}
		switch r.Kind {
		case RenditionReset:
			buf = append(buf, '0')
		case RenditionBold:
			buf = append(buf, '1')
		case RenditionNormal:
			buf = append(buf, '2', '2')
		case RenditionItalic:
			buf = append(buf, '3')
		case RenditionItalicOff:
			buf = append(buf, '2', '3')
		case RenditionUnderline:
			buf = append(buf, '4')
		case RenditionUnderlineOff:
			buf = append(buf, '2', '4')
		case RenditionBlink:
			buf = append(buf, '5')
		case RenditionBlinkOff:
			buf = append(buf, '2', '5')
		case RenditionStrikethrough:
			buf = append(buf, '9')
		case RenditionStrikethroughOff:
			buf = append(buf, '2', '9')
		case RenditionForeground:
			buf = appendColorCode(buf, r.Color, true)
		case RenditionBackground:
			buf = appendColorCode(buf, r.Color, false)
		default:
			programmingError("unknown RenditionKind %v", r.Kind)
		}
	}
	return buf
}

// appendColorCode mirrors other_examples/grindlemire-go-tui's
// escBuilder.appendColor: 16-color codes use the 30-37/90-97 (fg) or
// 40-47/100-107 (bg) ranges; everything else uses the extended
// "38;2;r;g;b" / "48;2;r;g;b" true-color form.
func appendColorCode(buf []byte, c cell.Color, fg bool) []byte {
	switch c.Kind {
	case cell.ColorNone:
		if fg {
			return append(buf, '3', '9')
		}
		return append(buf, '4', '9')
	case cell.ColorAnsi:
		if c.ID == cell.AnsiDefault {
			if fg {
				return append(buf, '3', '9')
			}
			return append(buf, '4', '9')
		}
		base := 30
		if !fg {
			base = 40
		}
		if c.Intensity == cell.IntensityBright {
			base += 60
		}
		return appendInt(buf, base+int(c.ID))
	case cell.ColorRGB:
		base := 38
		if !fg {
			base = 48
		}
		buf = appendInt(buf, base)
		buf = append(buf, ';', '2', ';')
		buf = appendInt(buf, int(c.R))
		buf = append(buf, ';')
		buf = appendInt(buf, int(c.G))
		buf = append(buf, ';')
		buf = appendInt(buf, int(c.B))
		return buf
	default:
		programmingError("unknown ColorKind %v", c.Kind)
		return buf
	}
}
