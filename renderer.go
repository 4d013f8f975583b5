// Package vtengine ties the control-sequence model, damage detector,
// SGR tracker, cursor-motion optimiser, input parser, and platform
// term.Device into a double-buffered renderer (spec.md §4.6).
//
// Grounded directly on tui/screen.go's Screen/Buffer/renderUnlocked
// structure: two buffers, a mutex, a bufio.Writer sink, swap-on-
// present. Generalized from per-cell literal writes to span/segment/
// SGR-transition emission, and from "no sync bracket" to the DEC
// Synchronized-Update bracket the spec requires.
package vtengine

import (
	"bufio"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"vtengine/cell"
	"vtengine/control"
	"vtengine/damage"
	"vtengine/driver"
	"vtengine/event"
	"vtengine/input"
	"vtengine/motion"
	"vtengine/term"
)

const sinkCapacity = 4096 // one page

// DefaultCapabilityTimeout is how long QueryDeviceAttributes waits for a
// Response event, when given a non-positive timeout, before reporting
// "unknown" (spec.md §7).
const DefaultCapabilityTimeout = 250 * time.Millisecond

// Renderer is the engine surface applications drive (spec.md §6).
type Renderer struct {
	mu sync.Mutex

	device term.Device
	enc    control.Encoder

	front, back *cell.Buffer
	size        cell.Size

	minRunLength int

	parser    *input.Parser
	events    chan event.Event
	responses chan event.DeviceAttributes
	closed    chan struct{}

	profiler *driver.Profiler

	log zerolog.Logger
}

// Option configures a Renderer at construction (spec.md SPEC_FULL §2
// ambient stack: functional options, generalized from the teacher's
// NewScreen()/NewBuffer() constructor pattern).
type Option func(*Renderer)

// WithEncoding selects the 7-bit or 8-bit control-sequence introducer.
func WithEncoding(enc control.Encoding) Option {
	return func(r *Renderer) { r.enc = control.NewEncoder(enc) }
}

// WithMinRunLength overrides damage's default run/literal breakeven
// threshold (spec.md §4.3's minlength parameter).
func WithMinRunLength(n int) Option {
	return func(r *Renderer) { r.minRunLength = n }
}

// WithLogger overrides the zero-value (no-op) zerolog.Logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Renderer) { r.log = log }
}

// New enters the device's terminal mode and allocates front/back
// buffers sized to the device's current window. It fails if mode
// entry fails (spec.md §6 "new(mode)").
func New(device term.Device, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		device:       device,
		enc:          control.NewEncoder(control.Encoding7Bit),
		minRunLength: damage.DefaultMinLength,
		parser:       input.New(),
		events:       make(chan event.Event, 64),
		responses:    make(chan event.DeviceAttributes, 4),
		closed:       make(chan struct{}),
		log:          zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if err := device.Enter(); err != nil {
		return nil, fmt.Errorf("vtengine: enter terminal mode: %w", err)
	}

	size, err := device.Size()
	if err != nil {
		size = cell.Size{Width: 80, Height: 24}
	}
	r.size = size
	r.front = cell.New(size, cell.DefaultWidth)
	r.back = cell.New(size, cell.DefaultWidth)

	go r.readInput()
	go r.watchResize()

	return r, nil
}

// Size returns the current terminal size.
func (r *Renderer) Size() cell.Size {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Input returns the lazy, restartable stream of events. Close stops the
// goroutines that feed it, but the channel itself is never closed, so a
// receive after Close blocks rather than ending a range loop.
func (r *Renderer) Input() <-chan event.Event { return r.events }

func (r *Renderer) readInput() {
	buf := make([]byte, 1024)
	for {
		n, err := r.device.Read(buf)
		if n > 0 {
			for _, ev := range r.parser.Parse(buf[:n]) {
				if ev.Kind == event.KindResponse {
					select {
					case r.responses <- ev.Response:
					default:
					}
					continue
				}
				select {
				case r.events <- ev:
				case <-r.closed:
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}

func (r *Renderer) watchResize() {
	for {
		select {
		case <-r.closed:
			return
		case size, ok := <-r.device.Resized():
			if !ok {
				return
			}
			r.mu.Lock()
			r.size = size
			r.front = cell.New(size, cell.DefaultWidth)
			r.back = cell.New(size, cell.DefaultWidth)
			r.mu.Unlock()
			select {
			case r.events <- event.Resize(size):
			case <-r.closed:
				return
			}
		}
	}
}

// Back returns the mutable back buffer for drawing. Callers must hold
// no assumption of exclusivity outside of Rendering's per-tick handle.
func (r *Renderer) Back() *cell.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.back
}

// Write passes seq through to the device using the renderer's selected
// encoding, bypassing the damage detector. Raw text goes through
// WriteString.
func (r *Renderer) Write(seq control.Sequence) error {
	_, err := r.device.Write(r.enc.Encode(seq))
	return err
}

// WriteString passes raw text through to the device unchanged.
func (r *Renderer) WriteString(s string) error {
	_, err := r.device.Write([]byte(s))
	return err
}

// Present implements spec.md §4.6: diff front/back, emit the minimal
// motion/SGR/segment byte stream inside a Synchronized-Update bracket,
// then swap. If there is no damage, it only swaps.
func (r *Renderer) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	spans := damage.Detect(r.front, r.back)
	if len(spans) == 0 {
		r.front, r.back = r.back, r.front
		return nil
	}

	sink := bufio.NewWriterSize(r.device, sinkCapacity)
	if err := r.presentSpans(sink, spans); err != nil {
		sink.Flush()
		r.front, r.back = r.back, r.front
		return err
	}
	if err := sink.Flush(); err != nil {
		r.front, r.back = r.back, r.front
		return fmt.Errorf("vtengine: flush present: %w", err)
	}

	r.front, r.back = r.back, r.front
	return nil
}

func (r *Renderer) presentSpans(sink *bufio.Writer, spans []damage.Span) error {
	sink.Write(r.enc.Encode(control.Set(control.ModeSynchronizedUpdate)))
	defer sink.Write(r.enc.Encode(control.Reset(control.ModeSynchronizedUpdate)))

	const sentinel = 1 << 30
	current := cell.Position{Row: sentinel, Col: sentinel}
	tracker := damage.NewSGRTracker()

	for _, span := range spans {
		pos := cell.At(span.Lo, r.size)
		if pos != current {
			for _, m := range motion.Optimize(current, pos, r.enc) {
				sink.Write(r.enc.Encode(m))
			}
		}

		if trans := tracker.Transition(span.Style); len(trans) != 0 {
			sink.Write(r.enc.Encode(control.SGR(trans...)))
		}

		segs := damage.SegmentSpan(span, r.back, r.minRunLength)
		for _, seg := range segs {
			switch seg.Kind {
			case damage.SegRun:
				sink.WriteRune(seg.Char)
				if seg.Count > 1 {
					sink.Write(r.enc.Encode(control.Repeat(seg.Count - 1)))
				}
			case damage.SegLiteral:
				sink.WriteString(seg.Text)
			}
		}

		current = endOfSpan(span, r.size)
	}

	sink.Write(r.enc.Encode(control.SGR(control.ResetAll())))
	return nil
}

// endOfSpan returns the cursor position after writing span, honoring
// the deferred-wrap rule: if the last written column is the buffer's
// rightmost column, `current` stays there rather than advancing past
// it (spec.md §4.5 last paragraph).
func endOfSpan(span damage.Span, size cell.Size) cell.Position {
	last := span.Hi - 1
	if last < span.Lo {
		last = span.Lo
	}
	p := cell.At(last, size)
	if p.Col < size.Width {
		p.Col++
	}
	return p
}

// Statistics returns the most recent frame-time/FPS snapshot from a
// Rendering driver, or the zero value if Rendering has not been
// called.
func (r *Renderer) Statistics() driver.FrameStatistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.profiler == nil {
		return driver.FrameStatistics{}
	}
	return r.profiler.Statistics()
}

// Rendering installs a DisplayLink at fps, invoking callback once per
// tick with the back buffer, then auto-presenting and clearing back
// (spec.md §6 "rendering(fps, callback)"). It blocks until ctx is
// cancelled or Present returns an error.
func (r *Renderer) Rendering(ctx context.Context, fps float64, callback func(*cell.Buffer, driver.Handle)) error {
	link := driver.NewDisplayLink(fps)

	r.mu.Lock()
	r.profiler = driver.NewProfiler(fps, r.log)
	profiler := r.profiler
	r.mu.Unlock()

	return link.Run(ctx, func(h driver.Handle) error {
		var presentErr error
		profiler.Measure(func() {
			back := r.Back()
			callback(back, h)
			presentErr = r.Present()
			r.Back().Clear()
		})
		return presentErr
	})
}

// QueryDeviceAttributes emits a primary Device Attributes request and
// waits up to timeout for a Response event, which readInput routes to
// the renderer's internal responses channel rather than Input(). If none
// arrives in time, it reports "unknown capabilities" rather than
// erroring (spec.md §6, §7).
func (r *Renderer) QueryDeviceAttributes(timeout time.Duration) event.DeviceAttributes {
	if timeout <= 0 {
		timeout = DefaultCapabilityTimeout
	}
	if err := r.Write(control.RequestDeviceAttributes(control.DAPrimary)); err != nil {
		return event.Unknown()
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	select {
	case resp := <-r.responses:
		return resp
	case <-deadline.C:
		return event.Unknown()
	case <-r.closed:
		return event.Unknown()
	}
}

// Close restores the terminal device's original mode and stops the
// input/resize goroutines.
func (r *Renderer) Close() error {
	close(r.closed)
	if err := r.device.Restore(); err != nil {
		return err
	}
	return r.device.Close()
}
