// Package term provides the platform terminal I/O collaborator
// (spec.md §6): raw-mode entry/exit, a byte sink and byte source, and
// window-size queries, behind the Device interface so the renderer and
// input parser never touch the OS directly.
//
// Grounded on tui/term.go's enableRawMode/disableRawMode and
// tui/screen.go's NewScreen/handleResize (term.GetSize, SIGWINCH
// listener, bufio.Writer sink).
package term

import "vtengine/cell"

// Device is the platform collaborator a Renderer is built on: a byte
// sink, a byte source, a size query, and raw-mode enter/restore.
type Device interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
	Size() (cell.Size, error)
	Enter() error
	Restore() error
	// Resized delivers a cell.Size each time the terminal window changes.
	Resized() <-chan cell.Size
	Close() error
}
