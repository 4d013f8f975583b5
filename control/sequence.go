// Package control implements the ANSI/VT control-sequence model
// (spec.md §4.1): a closed sum type for the commands the engine emits,
// plus an encoder supporting both the 7-bit (ESC [ / ESC ]) and 8-bit
// (0x9B / 0x9D) introducer conventions.
//
// Grounded on other_examples/grindlemire-go-tui's escBuilder (cursor
// motion, SGR, sync-update, alt-screen byte sequences), generalized from
// a single hard-coded 7-bit writer into the closed, encoding-parametric
// sum type the spec requires.
package control

import "vtengine/cell"

// Kind tags a Sequence's variant. Sequence is modelled as a single tagged
// struct rather than an interface hierarchy (spec.md §9 "sum types over
// inheritance"): the encoder's correctness argument is the exhaustive
// switch in Encode, not polymorphic dispatch.
type Kind int

const (
	CursorUp Kind = iota
	CursorDown
	CursorForward
	CursorBackward
	CursorNextLine
	CursorPreviousLine
	CursorPosition
	CursorHorizontalAbsolute
	EraseInPage
	EraseInLine
	EraseField
	ScrollUp
	ScrollDown
	SelectGraphicRendition
	SetMode
	ResetMode
	FillRectangularArea
	RepeatPrecedingCharacter
	DeviceAttributesRequest
	// CurrentPositionReport and DeviceAttributesResponse are response-
	// shaped: valid as *input* (the parser produces them) but a
	// programming error to encode as output (spec.md §4.1, §7).
	CurrentPositionReport
	DeviceAttributesResponse
)

// EraseExtent parameterises EraseInPage/EraseInLine/EraseField.
type EraseExtent int

const (
	EraseToEnd EraseExtent = iota
	EraseToStart
	EraseAll
)

// DAFamily selects which Device Attributes request/response family a
// sequence belongs to (primary/secondary/tertiary — spec.md §4.8, §6).
type DAFamily int

const (
	DAPrimary DAFamily = iota
	DASecondary
	DATertiary
)

// Mode identifies a DEC private mode for SetMode/ResetMode.
type Mode int

const (
	ModeSynchronizedUpdate Mode = iota
	ModeCursorVisible
	ModeAlternateScreen
)

// Sequence is one ANSI/VT control command. Only the fields relevant to
// Kind are meaningful; see the constructors below.
type Sequence struct {
	Kind Kind

	Count int // cursor motion / repeat / scroll counts (default 1)

	Row, Col int // CursorPosition; Col alone for CursorHorizontalAbsolute

	Extent EraseExtent // EraseInPage / EraseInLine / EraseField

	Renditions []GraphicRendition // SelectGraphicRendition

	Mode Mode // SetMode / ResetMode

	Rect Rect // FillRectangularArea
	Char rune // FillRectangularArea

	Family DAFamily // DeviceAttributesRequest / *Response
	Params []int    // DeviceAttributesResponse / CurrentPositionReport
}

// Rect is a 1-based, inclusive rectangle as used by DECFRA.
type Rect struct {
	Top, Left, Bottom, Right int
}

func count1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func Up(n int) Sequence       { return Sequence{Kind: CursorUp, Count: count1(n)} }
func Down(n int) Sequence     { return Sequence{Kind: CursorDown, Count: count1(n)} }
func Forward(n int) Sequence  { return Sequence{Kind: CursorForward, Count: count1(n)} }
func Backward(n int) Sequence { return Sequence{Kind: CursorBackward, Count: count1(n)} }
func NextLine(n int) Sequence { return Sequence{Kind: CursorNextLine, Count: count1(n)} }
func PreviousLine(n int) Sequence {
	return Sequence{Kind: CursorPreviousLine, Count: count1(n)}
}

func Position(row, col int) Sequence {
	return Sequence{Kind: CursorPosition, Row: row, Col: col}
}

func HorizontalAbsolute(col int) Sequence {
	return Sequence{Kind: CursorHorizontalAbsolute, Col: col}
}

func ErasePage(e EraseExtent) Sequence { return Sequence{Kind: EraseInPage, Extent: e} }
func EraseLine(e EraseExtent) Sequence { return Sequence{Kind: EraseInLine, Extent: e} }

func ScrollUpBy(n int) Sequence   { return Sequence{Kind: ScrollUp, Count: count1(n)} }
func ScrollDownBy(n int) Sequence { return Sequence{Kind: ScrollDown, Count: count1(n)} }

func SGR(r ...GraphicRendition) Sequence {
	return Sequence{Kind: SelectGraphicRendition, Renditions: r}
}

func Set(m Mode) Sequence   { return Sequence{Kind: SetMode, Mode: m} }
func Reset(m Mode) Sequence { return Sequence{Kind: ResetMode, Mode: m} }

// Fill returns a FillRectangularArea (DECFRA) sequence. Encode panics if
// c is not in the printable set (32..126 ∪ 160..255), per spec.md §4.1.
func Fill(c rune, r Rect) Sequence {
	return Sequence{Kind: FillRectangularArea, Char: c, Rect: r}
}

func Repeat(n int) Sequence {
	return Sequence{Kind: RepeatPrecedingCharacter, Count: count1(n)}
}

func RequestDeviceAttributes(f DAFamily) Sequence {
	return Sequence{Kind: DeviceAttributesRequest, Family: f}
}

// GraphicRendition is one SGR code (spec.md §4.4). Like Sequence, it's a
// tagged struct rather than an interface.
type RenditionKind int

const (
	RenditionReset RenditionKind = iota
	RenditionBold
	RenditionNormal // bold/dim off (SGR 22), the off code the SGR tracker uses for bold
	RenditionItalic
	RenditionItalicOff
	RenditionUnderline
	RenditionUnderlineOff
	RenditionBlink
	RenditionBlinkOff
	RenditionStrikethrough
	RenditionStrikethroughOff
	RenditionForeground
	RenditionBackground
)

type GraphicRendition struct {
	Kind  RenditionKind
	Color cell.Color // Foreground / Background
}

func Bold() GraphicRendition             { return GraphicRendition{Kind: RenditionBold} }
func NormalWeight() GraphicRendition     { return GraphicRendition{Kind: RenditionNormal} }
func Italic() GraphicRendition           { return GraphicRendition{Kind: RenditionItalic} }
func ItalicOff() GraphicRendition        { return GraphicRendition{Kind: RenditionItalicOff} }
func Underline() GraphicRendition        { return GraphicRendition{Kind: RenditionUnderline} }
func UnderlineOff() GraphicRendition     { return GraphicRendition{Kind: RenditionUnderlineOff} }
func Blink() GraphicRendition            { return GraphicRendition{Kind: RenditionBlink} }
func BlinkOff() GraphicRendition         { return GraphicRendition{Kind: RenditionBlinkOff} }
func Strikethrough() GraphicRendition    { return GraphicRendition{Kind: RenditionStrikethrough} }
func StrikethroughOff() GraphicRendition { return GraphicRendition{Kind: RenditionStrikethroughOff} }
func ResetAll() GraphicRendition         { return GraphicRendition{Kind: RenditionReset} }

func Foreground(c cell.Color) GraphicRendition {
	return GraphicRendition{Kind: RenditionForeground, Color: c}
}

func Background(c cell.Color) GraphicRendition {
	return GraphicRendition{Kind: RenditionBackground, Color: c}
}
