// Command demo drives vtengine against the real controlling terminal: a
// syntax-highlighted source listing in the upper pane and a live tick
// counter below it, redrawn every frame and quitting on 'q' or Ctrl+C.
//
// Grounded on cmd/example1_hello and the root main.go's counter demo
// (signals.New ticking state, screen.OnKey quit handling), generalized
// from basement's markup/signals pair onto vtengine.Renderer's
// Rendering/Input surface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"vtengine"
	"vtengine/cell"
	"vtengine/driver"
	"vtengine/event"
	"vtengine/term"
)

const sampleSource = `package main

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}
`

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	tty := term.NewTTY(log)
	r, err := vtengine.New(tty, vtengine.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	go handleInput(r, cancel)

	spans := highlight(sampleSource, "go")

	var tick int
	err = r.Rendering(ctx, 30, func(back *cell.Buffer, h driver.Handle) {
		tick++
		drawCode(back, spans)
		back.Write(cell.Position{Row: back.Size().Height, Col: 1},
			fmt.Sprintf("tick %d  frame %v  (q to quit)", tick, h.Duration.Round(time.Millisecond)),
			cell.Default)
	})
	if err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

// drawCode writes a highlighted token stream into back starting at the
// top-left corner, wrapping at the buffer's right edge via Buffer.Write.
func drawCode(back *cell.Buffer, spans []highlightedSpan) {
	pos := cell.Position{Row: 1, Col: 1}
	for _, sp := range spans {
		pos = back.Write(pos, sp.Text, sp.Style)
	}
}

// handleInput drains the renderer's event stream and cancels on 'q' or
// Ctrl+C, mirroring the teacher's screen.OnKey quit handler.
func handleInput(r *vtengine.Renderer, cancel context.CancelFunc) {
	for ev := range r.Input() {
		if ev.Kind != event.KindKey {
			continue
		}
		k := ev.Key
		if k.HasChar && k.Char == 'q' {
			cancel()
			return
		}
		if k.HasChar && k.Char == 'c' && k.Mods&event.ModCtrl != 0 {
			cancel()
			return
		}
	}
}
