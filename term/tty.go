package term

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"vtengine/cell"
)

// TTY is the concrete Device backed by the process's controlling
// terminal, using golang.org/x/term for raw mode and size queries.
type TTY struct {
	in, out *os.File
	oldState *term.State

	resizeSig chan os.Signal
	resized   chan cell.Size
	done      chan struct{}

	log zerolog.Logger
}

// NewTTY returns a Device wired to os.Stdin/os.Stdout.
func NewTTY(log zerolog.Logger) *TTY {
	return &TTY{
		in:        os.Stdin,
		out:       os.Stdout,
		resizeSig: make(chan os.Signal, 1),
		resized:   make(chan cell.Size, 1),
		done:      make(chan struct{}),
		log:       log,
	}
}

func (t *TTY) Write(p []byte) (int, error) { return t.out.Write(p) }
func (t *TTY) Read(p []byte) (int, error)  { return t.in.Read(p) }

func (t *TTY) Size() (cell.Size, error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return cell.Size{}, fmt.Errorf("term: get size: %w", err)
	}
	return cell.Size{Width: w, Height: h}, nil
}

// Enter puts the terminal into raw mode and starts the SIGWINCH
// listener that feeds Resized().
func (t *TTY) Enter() error {
	oldState, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		t.log.Warn().Err(err).Msg("failed to enable raw mode")
		return fmt.Errorf("term: enable raw mode: %w", err)
	}
	t.oldState = oldState

	signal.Notify(t.resizeSig, syscall.SIGWINCH)
	go t.watchResize()
	return nil
}

func (t *TTY) watchResize() {
	for {
		select {
		case <-t.done:
			return
		case <-t.resizeSig:
			size, err := t.Size()
			if err != nil {
				t.log.Warn().Err(err).Msg("failed to query size after SIGWINCH")
				continue
			}
			select {
			case t.resized <- size:
			default:
				// drop: a slow consumer will pick up the latest size on
				// its next read via Size() anyway.
			}
		}
	}
}

func (t *TTY) Resized() <-chan cell.Size { return t.resized }

// Restore returns the terminal to its pre-Enter mode.
func (t *TTY) Restore() error {
	if t.oldState == nil {
		return nil
	}
	if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
		return fmt.Errorf("term: restore mode: %w", err)
	}
	return nil
}

// Close stops the resize listener. It does not restore raw mode; call
// Restore first.
func (t *TTY) Close() error {
	signal.Stop(t.resizeSig)
	close(t.done)
	return nil
}
