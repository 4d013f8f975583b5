package control

import (
	"testing"

	"github.com/stretchr/testify/require"

	"vtengine/cell"
)

func TestEncode7BitVs8BitIntroducer(t *testing.T) {
	seq := Up(1)
	require.Equal(t, "\x1b[A", string(NewEncoder(Encoding7Bit).Encode(seq)))
	require.Equal(t, "\x9bA", string(NewEncoder(Encoding8Bit).Encode(seq)))
}

func TestEncodeCursorMotionElidesCountOne(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[A", string(e.Encode(Up(1))))
	require.Equal(t, "\x1b[5A", string(e.Encode(Up(5))))
}

func TestEncodeCursorPositionElision(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[H", string(e.Encode(Position(1, 1))))
	require.Equal(t, "\x1b[;5H", string(e.Encode(Position(1, 5))))
	require.Equal(t, "\x1b[5H", string(e.Encode(Position(5, 1))))
	require.Equal(t, "\x1b[5;7H", string(e.Encode(Position(5, 7))))
}

func TestEncodeEraseDefaultsToEnd(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[J", string(e.Encode(ErasePage(EraseToEnd))))
	require.Equal(t, "\x1b[1J", string(e.Encode(ErasePage(EraseToStart))))
	require.Equal(t, "\x1b[2J", string(e.Encode(ErasePage(EraseAll))))
}

func TestEncodeSGRJoinsRenditionsWithSemicolons(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	got := string(e.Encode(SGR(Bold(), Underline())))
	require.Equal(t, "\x1b[1;4m", got)
}

func TestEncodeSGRColors(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[31m", string(e.Encode(SGR(Foreground(cell.Ansi(cell.AnsiRed, cell.IntensityNormal))))))
	require.Equal(t, "\x1b[91m", string(e.Encode(SGR(Foreground(cell.Ansi(cell.AnsiRed, cell.IntensityBright))))))
	require.Equal(t, "\x1b[48;2;1;2;3m", string(e.Encode(SGR(Background(cell.RGB(1, 2, 3))))))
	require.Equal(t, "\x1b[39m", string(e.Encode(SGR(Foreground(cell.NoColor)))))
}

func TestEncodeModeNumbers(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[?2026h", string(e.Encode(Set(ModeSynchronizedUpdate))))
	require.Equal(t, "\x1b[?25l", string(e.Encode(Reset(ModeCursorVisible))))
	require.Equal(t, "\x1b[?1049h", string(e.Encode(Set(ModeAlternateScreen))))
}

func TestEncodeDeviceAttributesFamilyIntermediate(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[c", string(e.Encode(RequestDeviceAttributes(DAPrimary))))
	require.Equal(t, "\x1b[>c", string(e.Encode(RequestDeviceAttributes(DASecondary))))
	require.Equal(t, "\x1b[=c", string(e.Encode(RequestDeviceAttributes(DATertiary))))
}

func TestEncodeRepeatPrecedingCharacter(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Equal(t, "\x1b[5b", string(e.Encode(Repeat(5))))
}

func TestEncodeFillRectangularArea(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	got := string(e.Encode(Fill('x', Rect{Top: 1, Left: 2, Bottom: 3, Right: 4})))
	require.Equal(t, "\x1b[120;1;2;3;4$x", got)
}

func TestEncodePanicsOnNonPrintableFillChar(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Panics(t, func() {
		e.Encode(Fill(rune(1), Rect{Bottom: 1, Right: 1}))
	})
}

func TestEncodePanicsOnResponseShapedSequences(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	require.Panics(t, func() { e.Encode(Sequence{Kind: DeviceAttributesResponse}) })
	require.Panics(t, func() { e.Encode(Sequence{Kind: CurrentPositionReport}) })
}

func TestLenMatchesEncodeLength(t *testing.T) {
	e := NewEncoder(Encoding7Bit)
	seq := SGR(Bold(), Foreground(cell.RGB(10, 20, 30)))
	require.Equal(t, len(e.Encode(seq)), e.Len(seq))
}
