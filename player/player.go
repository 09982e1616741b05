// Package player replays an asciicast.Reader in real time, writing
// output events to a sink while honoring the original recording's
// timing, with live pause, single-step, and marker-skip controls
// driven from a terminal key reader.
package player

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/termtape/termtape/asciicast"
)

// KeyReader is the minimal capability Play needs from an input
// source: a non-blocking-friendly wait-then-read pair. tty.TTY and
// tty.NullTTY both satisfy it.
type KeyReader interface {
	WaitReadable(timeout time.Duration) (bool, error)
	Read(buf []byte) (int, error)
}

// Clock abstracts time.Now so tests can drive playback without
// sleeping in step with the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ErrQuit is returned by Play when the operator pressed the quit key.
var ErrQuit = errors.New("player: quit requested")

// pollInterval bounds how long Play waits on the key reader before
// re-checking elapsed time against the next event. It is the portable
// stand-in for a timed FD wait with a data deadline: shorter than any
// timing resolution a human would notice, long enough not to busy-loop.
const pollInterval = 20 * time.Millisecond

// Options configures a playback run.
type Options struct {
	Output      io.Writer
	Input       KeyReader
	Keybindings KeyBindings
	Clock       Clock
	Log         *slog.Logger

	// PauseOnMarkers stops playback at every marker, as if the operator
	// had pressed pause right as it was reached. The operator resumes
	// with the pause key, or skips past it with next_marker.
	PauseOnMarkers bool

	// OnMarker is called, if set, whenever a marker event is reached,
	// whether or not PauseOnMarkers also pauses playback there.
	OnMarker func()
}

// Player drives one playback run. Build one with New and call Play.
type Player struct {
	opts Options

	paused         bool
	pausedAt       time.Time
	pausedDuration time.Duration
	skipToMarker   bool
}

// New constructs a Player. Output defaults to io.Discard and Input
// defaults to a reader that never reports data available, making
// Play usable headlessly (e.g. to validate timing in tests).
func New(opts Options) *Player {
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Input == nil {
		opts.Input = neverReadable{}
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if (opts.Keybindings == KeyBindings{}) {
		opts.Keybindings = DefaultKeyBindings()
	}
	return &Player{opts: opts}
}

type neverReadable struct{}

func (neverReadable) WaitReadable(time.Duration) (bool, error) { return false, nil }
func (neverReadable) Read([]byte) (int, error)                 { return 0, io.EOF }

// Play replays every event from r in order, sleeping as needed so
// output is written at its original pace. It returns nil at normal
// end of stream, ErrQuit if the operator quit, or ctx.Err() if ctx was
// canceled.
func (p *Player) Play(ctx context.Context, r asciicast.Reader) error {
	start := p.opts.Clock.Now()

	for {
		event, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := p.waitUntil(ctx, start, event.Time); err != nil {
			return err
		}

		switch event.Code {
		case asciicast.Output:
			if _, err := p.opts.Output.Write(event.Data); err != nil {
				return err
			}
		case asciicast.Marker:
			p.skipToMarker = false
			if p.opts.OnMarker != nil {
				p.opts.OnMarker()
			}
			if p.opts.PauseOnMarkers {
				p.pauseAtElapsed(start, time.Duration(event.Time)*time.Microsecond)
			}
		}
	}
}

// waitUntil blocks until the recording's logical clock reaches
// targetMicros, servicing key presses (pause, step, quit, skip to
// next marker) while it waits.
func (p *Player) waitUntil(ctx context.Context, start time.Time, targetMicros uint64) error {
	target := time.Duration(targetMicros) * time.Microsecond

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		elapsed := p.elapsed(start)

		if p.skipToMarker {
			// Jump the logical clock straight to this event's time so
			// that once the marker arrives, pacing resumes from there
			// instead of racing to catch up on the skipped gap.
			if target > elapsed {
				p.pausedDuration -= target - elapsed
			}
			return nil
		}

		if elapsed >= target {
			return nil
		}

		remaining := target - elapsed
		wait := pollInterval
		if remaining < wait {
			wait = remaining
		}

		ready, err := p.opts.Input.WaitReadable(wait)
		if err != nil {
			return err
		}
		if !ready {
			continue
		}

		key, err := p.readKey()
		if err != nil {
			continue
		}

		switch key {
		case p.opts.Keybindings.Quit:
			if _, err := io.WriteString(p.opts.Output, "\r\n"); err != nil {
				return err
			}
			return ErrQuit
		case p.opts.Keybindings.Pause:
			p.togglePause()
		case p.opts.Keybindings.Step:
			if p.paused {
				p.pauseAtElapsed(start, target)
				return nil // let the caller advance to the next event immediately
			}
		case p.opts.Keybindings.NextMarker:
			p.skipToMarker = true
			if p.paused {
				p.togglePause()
			}
		}
	}
}

// readKey drains up to 1024 bytes from the input and returns only the
// first, mirroring how a player that only recognizes single-byte
// commands should behave when an operator pastes or holds a key:
// anything past the first byte of the chunk is discarded rather than
// queued, since there is no command it could start.
func (p *Player) readKey() (byte, error) {
	buf := make([]byte, 1024)
	n, err := p.opts.Input.Read(buf)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.ErrNoProgress
	}
	return buf[0], nil
}

func (p *Player) elapsed(start time.Time) time.Duration {
	now := p.opts.Clock.Now()
	if p.paused {
		now = p.pausedAt
	}
	return now.Sub(start) - p.pausedDuration
}

// pauseAtElapsed pauses the player with its frozen logical clock
// recalibrated to read exactly target, regardless of how close the
// wall clock actually is to it. Marker dispatch and step both pause
// "at an event's time" rather than at the instant the key was pressed.
func (p *Player) pauseAtElapsed(start time.Time, target time.Duration) {
	now := p.opts.Clock.Now()
	actual := now.Sub(start) - p.pausedDuration
	p.pausedDuration += actual - target
	p.paused = true
	p.pausedAt = now
}

func (p *Player) togglePause() {
	if p.paused {
		p.pausedDuration += p.opts.Clock.Now().Sub(p.pausedAt)
		p.paused = false
		return
	}
	p.paused = true
	p.pausedAt = p.opts.Clock.Now()
}
