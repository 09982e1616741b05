// Package recorder drives an asciicast.Writer from a live terminal
// session: it turns PTY output, captured input, resize notifications
// and manual markers into timestamped events, while letting the
// operator pause and resume recording without leaving a gap in the
// file's time axis.
package recorder

import (
	"log/slog"
	"sync"
	"time"

	"github.com/termtape/termtape/asciicast"
)

// Clock abstracts time.Now so tests can drive the recorder with a
// fake clock instead of racing the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Recorder serializes PTY activity into an asciicast.Writer. Output
// and Input may be called concurrently with each other and with
// Pause/Resume/Resize/Marker; all public methods are safe for
// concurrent use.
//
// Writes to the underlying asciicast.Writer happen on a dedicated
// goroutine fed by an unbounded queue, so a slow or blocked sink (a
// pipe, a remote mount) never backpressures the caller reading from
// the PTY.
type Recorder struct {
	writer asciicast.Writer
	clock  Clock
	log    *slog.Logger
	keys   KeyBindings

	queueMu   sync.Mutex
	queueCond *sync.Cond
	queueBuf  []queuedEvent
	closed    bool
	done      chan struct{}

	recordInput bool
	metadata    asciicast.Metadata

	mu              sync.Mutex
	startedAt       time.Time
	pausedAt        time.Time
	pausedDuration  time.Duration
	paused          bool
	awaitingCommand bool
}

type queuedEvent struct {
	code asciicast.EventCode
	time uint64
	data []byte
	cols uint16
	rows uint16
}

// queueDepth is the initial capacity hint for the pending-event
// buffer. It is not a cap: the buffer grows as needed, so a slow or
// stalled writer goroutine never backpressures the PTY read loop.
const queueDepth = 4096

// Option configures a Recorder at construction time.
type Option func(*Recorder)

// WithKeyBindings overrides the default pause/marker key bindings.
func WithKeyBindings(keys KeyBindings) Option {
	return func(r *Recorder) { r.keys = keys }
}

// WithLogger attaches a logger the recorder notifies on pause, resume
// and marker events. A nil logger (the default) disables notification.
func WithLogger(log *slog.Logger) Option {
	return func(r *Recorder) { r.log = log }
}

// WithClock overrides the time source, for deterministic tests.
func WithClock(clock Clock) Option {
	return func(r *Recorder) { r.clock = clock }
}

// WithRecordInput controls whether keystrokes that pass through the
// key-binding state machine are written to the recording. It defaults
// to true; pass false to record a session's output without capturing
// what the operator typed.
func WithRecordInput(recordInput bool) Option {
	return func(r *Recorder) { r.recordInput = recordInput }
}

// WithMetadata overrides header fields the caller's metadata specifies,
// leaving cols/rows (always derived from the terminal size given to
// New) and any field metadata leaves nil untouched.
func WithMetadata(metadata asciicast.Metadata) Option {
	return func(r *Recorder) { r.metadata = metadata }
}

// New starts a Recorder writing through w. header describes the
// terminal geometry asciicast.Writer.Start requires, before any
// WithMetadata override is merged in; append controls whether the
// header is (re-)written, matching asciicast.Writer.Start's own
// append semantics.
func New(w asciicast.Writer, header asciicast.Header, appendMode bool, opts ...Option) (*Recorder, error) {
	r := &Recorder{
		writer:      w,
		clock:       systemClock{},
		keys:        DefaultKeyBindings(),
		queueBuf:    make([]queuedEvent, 0, queueDepth),
		done:        make(chan struct{}),
		recordInput: true,
	}
	r.queueCond = sync.NewCond(&r.queueMu)
	for _, opt := range opts {
		opt(r)
	}

	if r.metadata.IdleTimeLimit != nil {
		header.IdleTimeLimit = r.metadata.IdleTimeLimit
	}
	if r.metadata.Command != nil {
		header.Command = r.metadata.Command
	}
	if r.metadata.Title != nil {
		header.Title = r.metadata.Title
	}
	if r.metadata.Env != nil {
		header.Env = r.metadata.Env
	}

	if err := w.Start(header, appendMode); err != nil {
		return nil, err
	}

	r.startedAt = r.clock.Now()
	go r.drain()
	return r, nil
}

// drain runs on its own goroutine for the recorder's lifetime,
// applying queued events to the underlying writer in order.
func (r *Recorder) drain() {
	defer close(r.done)
	for {
		ev, ok := r.dequeue()
		if !ok {
			return
		}

		var err error
		switch ev.code {
		case asciicast.Output:
			err = r.writer.Output(ev.time, ev.data)
		case asciicast.Input:
			err = r.writer.Input(ev.time, ev.data)
		case asciicast.Resize:
			err = r.writer.Resize(ev.time, ev.cols, ev.rows)
		case asciicast.Marker:
			err = r.writer.Marker(ev.time)
		}
		if err != nil && r.log != nil {
			r.log.Error("recorder: write failed", slog.Any("err", err), slog.String("event", ev.code.String()))
		}
	}
}

// elapsed returns the recorder's logical clock: wall-clock time since
// start, minus time spent paused. Must be called with mu held.
func (r *Recorder) elapsed(now time.Time) time.Duration {
	if r.paused {
		now = r.pausedAt
	}
	return now.Sub(r.startedAt) - r.pausedDuration
}

// enqueue timestamps and queues an event regardless of pause state.
// Output and Input gate on pause themselves before calling this;
// Resize and Marker are properties of the replay environment and the
// session timeline respectively, so they always pass through.
//
// enqueue never blocks on a slow or stalled writer goroutine: the
// queue grows to hold whatever is pending instead of applying
// backpressure to the PTY read loop.
func (r *Recorder) enqueue(code asciicast.EventCode, data []byte, cols, rows uint16) {
	r.mu.Lock()
	elapsed := r.elapsed(r.clock.Now())
	r.mu.Unlock()

	ev := queuedEvent{
		code: code,
		time: uint64(elapsed.Microseconds()),
		data: data,
		cols: cols,
		rows: rows,
	}

	r.queueMu.Lock()
	r.queueBuf = append(r.queueBuf, ev)
	r.queueMu.Unlock()
	r.queueCond.Signal()
}

// dequeue blocks until an event is available or the recorder has been
// closed with nothing left to drain.
func (r *Recorder) dequeue() (queuedEvent, bool) {
	r.queueMu.Lock()
	defer r.queueMu.Unlock()

	for len(r.queueBuf) == 0 && !r.closed {
		r.queueCond.Wait()
	}
	if len(r.queueBuf) == 0 {
		return queuedEvent{}, false
	}

	ev := r.queueBuf[0]
	r.queueBuf = r.queueBuf[1:]
	return ev, true
}

// Output records a chunk of the child process's output verbatim.
// While paused, output is discarded outright rather than deferred:
// a paused session is an edited timeline, not a delayed one.
func (r *Recorder) Output(data []byte) {
	if len(data) == 0 {
		return
	}
	if r.IsPaused() {
		return
	}
	r.enqueue(asciicast.Output, data, 0, 0)
}

// Input feeds a chunk of operator keystrokes through the key-binding
// state machine. A chunk that exactly matches a configured prefix,
// pause, or add-marker sequence is intercepted and never reaches the
// recording (or the child process, from the caller's point of view:
// Input only decides what gets recorded, the caller is responsible
// for whether to also forward the chunk to the PTY).
//
// Input returns true when the caller should still forward data to the
// child process, and false when the chunk was consumed as a command.
func (r *Recorder) Input(data []byte) bool {
	if len(data) == 0 {
		return true
	}

	if r.keys.hasPrefix() {
		r.mu.Lock()
		awaiting := r.awaitingCommand
		r.mu.Unlock()

		if awaiting {
			r.mu.Lock()
			r.awaitingCommand = false
			r.mu.Unlock()

			switch {
			case equalChunk(data, r.keys.Pause):
				r.TogglePause()
				return false
			case equalChunk(data, r.keys.AddMarker):
				r.Marker()
				return false
			}
			// Not a recognized command: the prefix chunk is already
			// gone, so replay this chunk as ordinary input.
		} else if equalChunk(data, r.keys.Prefix) {
			r.mu.Lock()
			r.awaitingCommand = true
			r.mu.Unlock()
			return false
		}
	} else {
		switch {
		case equalChunk(data, r.keys.Pause):
			r.TogglePause()
			return false
		case equalChunk(data, r.keys.AddMarker):
			r.Marker()
			return false
		}
	}

	if r.recordInput && !r.IsPaused() {
		r.enqueue(asciicast.Input, data, 0, 0)
	}
	return true
}

// Resize records a terminal geometry change. Geometry is a property
// of the replay environment, not the edited timeline, so it is
// recorded even while paused.
func (r *Recorder) Resize(cols, rows uint16) {
	r.enqueue(asciicast.Resize, nil, cols, rows)
}

// Marker records a manual bookmark at the current logical time.
func (r *Recorder) Marker() {
	r.enqueue(asciicast.Marker, nil, 0, 0)
	if r.log != nil {
		r.log.Info("recorder: marker added")
	}
}

// Pause freezes the recorder's logical clock. Output and Input calls
// made while paused are silently dropped rather than recorded at a
// frozen time, matching the expectation that pausing stops capture
// entirely rather than compressing it to an instant.
func (r *Recorder) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.paused {
		return
	}
	r.paused = true
	r.pausedAt = r.clock.Now()
	if r.log != nil {
		r.log.Info("recorder: paused")
	}
}

// Resume shifts the recorder's epoch forward by the duration spent
// paused, so the next recorded event continues exactly where the
// logical clock left off instead of jumping by the wall-clock gap.
func (r *Recorder) Resume() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.paused {
		return
	}
	r.pausedDuration += r.clock.Now().Sub(r.pausedAt)
	r.paused = false
	if r.log != nil {
		r.log.Info("recorder: resumed")
	}
}

// TogglePause flips between Pause and Resume.
func (r *Recorder) TogglePause() {
	r.mu.Lock()
	paused := r.paused
	r.mu.Unlock()

	if paused {
		r.Resume()
	} else {
		r.Pause()
	}
}

// IsPaused reports whether the recorder is currently paused.
func (r *Recorder) IsPaused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// ElapsedTime returns the recorder's current logical time, the value
// the next recorded event would be stamped with.
func (r *Recorder) ElapsedTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed(r.clock.Now())
}

// Close drains any queued events and stops the writer goroutine. It
// does not close the underlying asciicast.Writer; callers that need
// the sink flushed or closed should do so themselves after Close
// returns.
func (r *Recorder) Close() error {
	r.queueMu.Lock()
	r.closed = true
	r.queueMu.Unlock()
	r.queueCond.Signal()

	<-r.done
	return nil
}
