// Package input implements the push-driven, restartable escape-sequence
// parser (spec.md §4.8): bytes arrive in arbitrary chunks and the parser
// must tolerate any chunk boundary, including mid-sequence, without
// losing or misinterpreting bytes.
//
// Grounded on tui/input.go's processEsc/parseCSI/parseSS3 dispatch
// tables (which byte sequence maps to which key), reworked from a
// goroutine+channel+time.After design (which cannot survive an
// arbitrary chunk boundary, only a live os.Stdin reader) into an
// explicit state machine whose state lives in struct fields between
// Parse calls, per spec.md §4.8's partial-input protocol.
package input

import (
	"unicode/utf8"

	"vtengine/cell"
	"vtengine/event"
)

// state is the parser's current position in the escape-sequence grammar.
type state int

const (
	stateNormal state = iota
	stateEscape
	stateCSI
	stateSS3
	stateOSC
	stateDCS
	stateUTF8Continuation
)

// Parser is a restartable escape-sequence / UTF-8 decoder. The zero
// value is ready to use. A Parser must not be copied after first use
// (its state is only meaningful in place).
type Parser struct {
	st state

	// CSI accumulation.
	private byte // '?', '<', '=', '>', or 0
	params  []int
	curNum  int
	haveNum bool

	// OSC/DCS accumulation.
	strBuf   []byte
	escInStr bool // saw ESC while accumulating a string, awaiting '\' (ST)

	// Partial UTF-8 continuation bytes held across chunk boundaries.
	utf8Buf  []byte
	utf8Want int
}

// New returns a ready-to-use Parser.
func New() *Parser { return &Parser{} }

// Parse consumes chunk and returns the events it completed. Incomplete
// sequences at the end of chunk persist in p's state and are continued
// by the next Parse call, however the chunk boundary falls (spec.md §8
// scenario 5: `Parse([0x1B])` yields no events, and the arrow-up event
// appears only once `Parse([0x5B, 0x41])` completes the sequence).
func (p *Parser) Parse(chunk []byte) []event.Event {
	var out []event.Event
	for i := 0; i < len(chunk); i++ {
		b := chunk[i]
		switch p.st {
		case stateNormal:
			out = p.stepNormal(b, chunk, &i, out)
		case stateEscape:
			out = p.stepEscape(b, out)
		case stateCSI:
			out = p.stepCSI(b, out)
		case stateSS3:
			out = p.stepSS3(b, out)
		case stateOSC, stateDCS:
			out = p.stepString(b, out)
		case stateUTF8Continuation:
			out = p.stepUTF8Continuation(b, out)
		}
	}
	return out
}

// Flush closes out any sequence left incomplete at genuine end-of-stream:
// a lone ESC becomes a literal Esc key event, and an unterminated
// OSC/DCS is dropped silently (spec.md §4.8's per-state table describes
// this as the stream-end behavior; mid-stream chunk boundaries must NOT
// trigger it, which is why Parse never does on its own).
func (p *Parser) Flush() []event.Event {
	var out []event.Event
	switch p.st {
	case stateEscape:
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeEsc, Pressed: true}))
	}
	p.reset()
	return out
}

func (p *Parser) reset() {
	p.st = stateNormal
	p.private = 0
	p.params = p.params[:0]
	p.curNum = 0
	p.haveNum = false
	p.strBuf = p.strBuf[:0]
	p.escInStr = false
	p.utf8Buf = p.utf8Buf[:0]
	p.utf8Want = 0
}

func (p *Parser) stepNormal(b byte, chunk []byte, i *int, out []event.Event) []event.Event {
	if b == 0x1b {
		p.st = stateEscape
		return out
	}
	if b <= 0x1f {
		return append(out, controlKeyEvent(b))
	}
	if b == 0x7f {
		return append(out, event.Key(event.KeyEvent{Code: event.KeyCodeBackspace, Pressed: true}))
	}
	if b < 0x80 {
		return append(out, event.Key(event.KeyEvent{Char: rune(b), HasChar: true, Pressed: true}))
	}

	// Multi-byte UTF-8: gather continuation bytes, tolerating a split
	// across the chunk boundary by buffering into p.utf8Buf.
	p.utf8Buf = append(p.utf8Buf[:0], b)
	want := utf8RuneLen(b)
	for want > 1 && *i+1 < len(chunk) && len(p.utf8Buf) < want {
		*i++
		p.utf8Buf = append(p.utf8Buf, chunk[*i])
	}
	if len(p.utf8Buf) < want {
		// Ran out of chunk mid-rune; stash and resume next Parse call.
		p.utf8Buf = append([]byte(nil), p.utf8Buf...)
		p.utf8Want = want
		p.st = stateUTF8Continuation
		return out
	}
	r, _ := utf8.DecodeRune(p.utf8Buf)
	p.utf8Buf = p.utf8Buf[:0]
	if r == utf8.RuneError {
		return out
	}
	return append(out, event.Key(event.KeyEvent{Char: r, HasChar: true, Pressed: true}))
}

func (p *Parser) stepUTF8Continuation(b byte, out []event.Event) []event.Event {
	p.utf8Buf = append(p.utf8Buf, b)
	if len(p.utf8Buf) < p.utf8Want {
		return out
	}
	p.st = stateNormal
	r, _ := utf8.DecodeRune(p.utf8Buf)
	p.utf8Buf = p.utf8Buf[:0]
	if r == utf8.RuneError {
		return out
	}
	return append(out, event.Key(event.KeyEvent{Char: r, HasChar: true, Pressed: true}))
}

func utf8RuneLen(lead byte) int {
	switch {
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

func controlKeyEvent(b byte) event.Event {
	switch b {
	case 0x0d:
		return event.Key(event.KeyEvent{Code: event.KeyCodeEnter, Pressed: true})
	case 0x09:
		return event.Key(event.KeyEvent{Code: event.KeyCodeTab, Pressed: true})
	case 0x08:
		return event.Key(event.KeyEvent{Code: event.KeyCodeBackspace, Pressed: true})
	default:
		return event.Key(event.KeyEvent{Char: rune(b + 0x60), HasChar: true, Mods: event.ModCtrl, Pressed: true})
	}
}

func (p *Parser) stepEscape(b byte, out []event.Event) []event.Event {
	switch b {
	case '[':
		p.st = stateCSI
		p.private = 0
		p.params = p.params[:0]
		p.curNum = 0
		p.haveNum = false
	case 'O':
		p.st = stateSS3
	case ']':
		p.st = stateOSC
		p.strBuf = p.strBuf[:0]
		p.escInStr = false
	case 'P':
		p.st = stateDCS
		p.strBuf = p.strBuf[:0]
		p.escInStr = false
	default:
		p.st = stateNormal
		if b >= 0x20 && b < 0x7f {
			out = append(out, event.Key(event.KeyEvent{Char: rune(b), HasChar: true, Mods: event.ModAlt, Pressed: true}))
		}
	}
	return out
}

func (p *Parser) flushNum() {
	if p.haveNum {
		p.params = append(p.params, p.curNum)
	} else {
		p.params = append(p.params, -1) // elided default
	}
	p.curNum = 0
	p.haveNum = false
}

func (p *Parser) stepCSI(b byte, out []event.Event) []event.Event {
	switch {
	case b >= '0' && b <= '9':
		p.curNum = p.curNum*10 + int(b-'0')
		p.haveNum = true
		return out
	case b == ';':
		p.flushNum()
		return out
	case b == '?' || b == '<' || b == '=' || b == '>':
		p.private = b
		return out
	case b >= 0x20 && b <= 0x2f:
		// intermediate byte: not used by any dispatch below, ignored.
		return out
	case b >= 0x40 && b <= 0x7e:
		p.flushNum()
		ev, ok := p.dispatchCSI(b)
		p.st = stateNormal
		if ok {
			out = append(out, ev)
		}
		return out
	default:
		// invalid byte inside a CSI sequence: drop the malformed
		// sequence and the offending byte, then resume in Normal state.
		p.st = stateNormal
		return out
	}
}

func (p *Parser) param(i int, def int) int {
	if i < 0 || i >= len(p.params) || p.params[i] < 0 {
		return def
	}
	return p.params[i]
}

func modsFromParam(n int) event.Modifiers {
	if n <= 1 {
		return 0
	}
	bits := n - 1
	var m event.Modifiers
	if bits&1 != 0 {
		m |= event.ModShift
	}
	if bits&2 != 0 {
		m |= event.ModAlt
	}
	if bits&4 != 0 {
		m |= event.ModCtrl
	}
	if bits&8 != 0 {
		m |= event.ModMeta
	}
	return m
}

func (p *Parser) dispatchCSI(final byte) (event.Event, bool) {
	switch final {
	case 'A', 'B', 'C', 'D':
		return event.Key(event.KeyEvent{Code: arrowCode(final), Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'H':
		return event.Key(event.KeyEvent{Code: event.KeyCodeHome, Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'F':
		return event.Key(event.KeyEvent{Code: event.KeyCodeEnd, Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'P':
		return event.Key(event.KeyEvent{Code: event.KeyCodeF1, Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'Q':
		return event.Key(event.KeyEvent{Code: event.KeyCodeF2, Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'S':
		return event.Key(event.KeyEvent{Code: event.KeyCodeF4, Mods: modsFromParam(p.param(1, 1)), Pressed: true}), true
	case 'R':
		// Cursor Position Report: CSI row ; col R.
		row, col := p.param(0, 1), p.param(1, 1)
		return event.Response(event.DeviceAttributes{Source: event.DAPrimary, Params: []int{row, col}}), true
	case 'c':
		return p.dispatchDeviceAttributes(), true
	case '~':
		return p.dispatchTilde()
	case 'M', 'm':
		if p.private == '<' {
			return p.dispatchSGRMouse(final), true
		}
		return event.Event{}, false
	default:
		return event.Event{}, false
	}
}

func arrowCode(final byte) event.KeyCode {
	switch final {
	case 'A':
		return event.KeyCodeArrowUp
	case 'B':
		return event.KeyCodeArrowDown
	case 'C':
		return event.KeyCodeArrowRight
	default:
		return event.KeyCodeArrowLeft
	}
}

func (p *Parser) dispatchDeviceAttributes() event.Event {
	src := event.DAPrimary
	switch p.private {
	case '>':
		src = event.DASecondary
	case '=':
		src = event.DATertiary
	}
	params := make([]int, len(p.params))
	for i, v := range p.params {
		if v < 0 {
			v = 0
		}
		params[i] = v
	}
	return event.Response(event.DeviceAttributes{Source: src, Params: params})
}

func (p *Parser) dispatchTilde() (event.Event, bool) {
	switch p.param(0, 0) {
	case 1:
		return event.Key(event.KeyEvent{Code: event.KeyCodeHome, Pressed: true}), true
	case 2:
		return event.Key(event.KeyEvent{Code: event.KeyCodeInsert, Pressed: true}), true
	case 3:
		return event.Key(event.KeyEvent{Code: event.KeyCodeDelete, Pressed: true}), true
	case 4:
		return event.Key(event.KeyEvent{Code: event.KeyCodeEnd, Pressed: true}), true
	case 5:
		return event.Key(event.KeyEvent{Code: event.KeyCodePgUp, Pressed: true}), true
	case 6:
		return event.Key(event.KeyEvent{Code: event.KeyCodePgDown, Pressed: true}), true
	case 15:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF5, Pressed: true}), true
	case 17:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF6, Pressed: true}), true
	case 18:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF7, Pressed: true}), true
	case 19:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF8, Pressed: true}), true
	case 20:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF9, Pressed: true}), true
	case 21:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF10, Pressed: true}), true
	case 23:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF11, Pressed: true}), true
	case 24:
		return event.Key(event.KeyEvent{Code: event.KeyCodeF12, Pressed: true}), true
	default:
		return event.Event{}, false
	}
}

// dispatchSGRMouse decodes the SGR mouse protocol: CSI < b ; x ; y M/m.
func (p *Parser) dispatchSGRMouse(final byte) event.Event {
	b := p.param(0, 0)
	x, y := p.param(1, 1), p.param(2, 1)
	action := event.MousePressed
	switch {
	case final == 'm':
		action = event.MouseReleased
	case b&32 != 0:
		action = event.MouseMove
	case b&64 != 0:
		action = event.MouseScroll
	}
	return event.Mouse(event.MouseEvent{
		Point:  cell.Position{Row: y, Col: x},
		Action: action,
	})
}

func (p *Parser) stepSS3(b byte, out []event.Event) []event.Event {
	p.st = stateNormal
	switch b {
	case 'A':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeArrowUp, Pressed: true}))
	case 'B':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeArrowDown, Pressed: true}))
	case 'C':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeArrowRight, Pressed: true}))
	case 'D':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeArrowLeft, Pressed: true}))
	case 'P':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeF1, Pressed: true}))
	case 'Q':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeF2, Pressed: true}))
	case 'R':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeF3, Pressed: true}))
	case 'S':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeF4, Pressed: true}))
	case 'H':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeHome, Pressed: true}))
	case 'F':
		out = append(out, event.Key(event.KeyEvent{Code: event.KeyCodeEnd, Pressed: true}))
	}
	return out
}

// stepString accumulates an OSC/DCS payload until its terminator: BEL
// (0x07) or the two-byte ST (ESC \). Neither produces an event: the
// payload is discarded, and the state machine only consumes it and
// recovers cleanly so it doesn't misread the payload bytes as commands.
func (p *Parser) stepString(b byte, out []event.Event) []event.Event {
	if p.escInStr {
		if b == '\\' {
			p.st = stateNormal
			p.strBuf = p.strBuf[:0]
			p.escInStr = false
			return out
		}
		// Not a valid ST; treat the ESC as data and keep accumulating.
		p.strBuf = append(p.strBuf, 0x1b)
		p.escInStr = false
	}
	switch b {
	case 0x07:
		p.st = stateNormal
		p.strBuf = p.strBuf[:0]
	case 0x1b:
		p.escInStr = true
	default:
		p.strBuf = append(p.strBuf, b)
	}
	return out
}
