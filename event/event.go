// Package event defines the unified stream of events the input parser
// produces (spec.md §3, §4.8): keyboard, mouse, resize, and terminal
// capability responses.
package event

import "vtengine/cell"

// Kind tags an Event's variant, modelled as one tagged struct rather
// than an interface hierarchy (spec.md §9).
type Kind int

const (
	KindKey Kind = iota
	KindMouse
	KindResize
	KindResponse
)

// KeyCode names a non-printable key. KeyCodeNone paired with HasChar
// means "this event carries a printable character instead".
type KeyCode int

const (
	KeyCodeNone KeyCode = iota
	KeyCodeEsc
	KeyCodeEnter
	KeyCodeBackspace
	KeyCodeTab
	KeyCodeArrowUp
	KeyCodeArrowDown
	KeyCodeArrowRight
	KeyCodeArrowLeft
	KeyCodeHome
	KeyCodeEnd
	KeyCodePgUp
	KeyCodePgDown
	KeyCodeDelete
	KeyCodeInsert
	KeyCodeF1
	KeyCodeF2
	KeyCodeF3
	KeyCodeF4
	KeyCodeF5
	KeyCodeF6
	KeyCodeF7
	KeyCodeF8
	KeyCodeF9
	KeyCodeF10
	KeyCodeF11
	KeyCodeF12
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModMeta
)

// KeyEvent is a keyboard event: either a printable character (HasChar)
// or a named Code, plus modifiers and press/release.
type KeyEvent struct {
	Char    rune
	HasChar bool
	Code    KeyCode
	Mods    Modifiers
	Pressed bool // press (true) or release (false)
}

// MouseAction is the kind of mouse activity reported.
type MouseAction int

const (
	MousePressed MouseAction = iota
	MouseReleased
	MouseMove
	MouseScroll
)

type MouseEvent struct {
	Point  cell.Position
	Action MouseAction
}

type ResizeEvent struct {
	Size cell.Size
}

// DASource is the Device Attributes family a response answers (spec.md
// §4.8: selected by the request's intermediate byte — none for primary,
// '>' for secondary, '=' for tertiary).
type DASource int

const (
	DAPrimary DASource = iota
	DASecondary
	DATertiary
)

// VT101 / Base are the "unknown capabilities" sentinel values a timed-out
// capability query reports (spec.md §6): specific(vt101, base).
const (
	VT101 = 101
	Base  = 0
)

// DeviceAttributes is a parsed (or timed-out) capability-query response.
// Params holds the raw numeric parameter list; AsSpecific/AsCompatible
// interpret it as the two response shapes spec.md §6 describes.
type DeviceAttributes struct {
	Source DASource
	Params []int
}

// AsSpecific interprets Params as the VT100-style "CSI <t>;<s> c" shape.
func (d DeviceAttributes) AsSpecific() (typ, service int, ok bool) {
	if len(d.Params) < 2 {
		return 0, 0, false
	}
	return d.Params[0], d.Params[1], true
}

// AsCompatible interprets Params as the VT220+ "CSI <family>;f1;f2;... c" shape.
func (d DeviceAttributes) AsCompatible() (family int, features []int, ok bool) {
	if len(d.Params) < 1 {
		return 0, nil, false
	}
	return d.Params[0], d.Params[1:], true
}

// Unknown is the capability-query timeout sentinel: specific(vt101, base).
func Unknown() DeviceAttributes {
	return DeviceAttributes{Source: DAPrimary, Params: []int{VT101, Base}}
}

// Event is one unit in the parser's output stream.
type Event struct {
	Kind     Kind
	Key      KeyEvent
	Mouse    MouseEvent
	Resize   ResizeEvent
	Response DeviceAttributes
}

func Key(k KeyEvent) Event       { return Event{Kind: KindKey, Key: k} }
func Mouse(m MouseEvent) Event   { return Event{Kind: KindMouse, Mouse: m} }
func Resize(s cell.Size) Event   { return Event{Kind: KindResize, Resize: ResizeEvent{Size: s}} }
func Response(d DeviceAttributes) Event {
	return Event{Kind: KindResponse, Response: d}
}
