package player

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/termtape/termtape/assert"
	"github.com/termtape/termtape/asciicast"
)

// fakeClock is a manually-advanced clock; Play's poll loop advances it
// itself via fakeKeys.WaitReadable so tests stay deterministic.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeKeys delivers a scripted sequence of key presses, each released
// only after a configured number of WaitReadable polls, advancing a
// fakeClock on every poll so waitUntil's timeout loop makes progress
// without a real sleep.
type fakeKeys struct {
	clock      *fakeClock
	advance    time.Duration
	mu         sync.Mutex
	pending    []byte
	releaseAt  []int
	pollCount  int
}

func (k *fakeKeys) schedule(key byte, afterPolls int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pending = append(k.pending, key)
	k.releaseAt = append(k.releaseAt, afterPolls)
}

func (k *fakeKeys) WaitReadable(timeout time.Duration) (bool, error) {
	k.clock.Advance(timeout)

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pollCount++

	for _, at := range k.releaseAt {
		if at == k.pollCount {
			return true, nil
		}
	}
	return false, nil
}

func (k *fakeKeys) Read(buf []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i, at := range k.releaseAt {
		if at == k.pollCount && len(k.pending) > i {
			buf[0] = k.pending[i]
			return 1, nil
		}
	}
	return 0, io.ErrNoProgress
}

type sliceReader struct {
	events []asciicast.Event
	i      int
}

func (s *sliceReader) Next() (asciicast.Event, error) {
	if s.i >= len(s.events) {
		return asciicast.Event{}, io.EOF
	}
	e := s.events[s.i]
	s.i++
	return e, nil
}

func outputEvent(t uint64, data string) asciicast.Event {
	return asciicast.Event{Time: t, Code: asciicast.Output, Data: []byte(data)}
}

func TestPlayWritesOutputInOrder(t *testing.T) {
	clock := newFakeClock()
	var out bytes.Buffer

	r := &sliceReader{events: []asciicast.Event{
		outputEvent(0, "a"),
		outputEvent(1_000_000, "b"),
	}}

	p := New(Options{Output: &out, Clock: clock})

	done := make(chan error, 1)
	go func() { done <- p.Play(context.Background(), r) }()

	for i := 0; i < 200 && out.Len() < 2; i++ {
		clock.Advance(pollInterval)
		time.Sleep(time.Millisecond)
	}

	err := <-done
	assert.NoError(t, err)
	assert.Equal(t, out.String(), "ab")
}

func TestPlayStopsOnQuitKey(t *testing.T) {
	clock := newFakeClock()
	keys := &fakeKeys{clock: clock}
	keys.schedule(0x03, 1) // quit fires on the first poll

	r := &sliceReader{events: []asciicast.Event{
		outputEvent(10_000_000, "never written"),
	}}

	p := New(Options{Input: keys, Clock: clock})
	err := p.Play(context.Background(), r)

	assert.ErrorIs(t, err, ErrQuit)
}

func TestPlayWritesCarriageReturnOnQuit(t *testing.T) {
	clock := newFakeClock()
	keys := &fakeKeys{clock: clock}
	keys.schedule(0x03, 1) // quit fires on the first poll

	r := &sliceReader{events: []asciicast.Event{
		outputEvent(10_000_000, "never written"),
	}}

	var out bytes.Buffer
	p := New(Options{Output: &out, Input: keys, Clock: clock})
	err := p.Play(context.Background(), r)

	assert.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, out.String(), "\r\n")
}

func TestPlayPauseThenStepAdvancesEventByEvent(t *testing.T) {
	clock := newFakeClock()
	keys := &fakeKeys{clock: clock}
	bindings := DefaultKeyBindings()
	keys.schedule(bindings.Pause, 1)
	keys.schedule(bindings.Step, 2)
	keys.schedule(bindings.Step, 3)

	var out bytes.Buffer
	r := &sliceReader{events: []asciicast.Event{
		outputEvent(0, "A"),
		outputEvent(1_000_000, "B"),
		outputEvent(2_000_000, "C"),
	}}

	p := New(Options{Output: &out, Input: keys, Clock: clock})
	err := p.Play(context.Background(), r)

	assert.NoError(t, err)
	assert.Equal(t, out.String(), "ABC")
}

func TestPlayPausesAtMarkerWhenPauseOnMarkersSet(t *testing.T) {
	clock := newFakeClock()
	var out bytes.Buffer

	r := &sliceReader{events: []asciicast.Event{
		outputEvent(0, "A"),
		outputEvent(500_000, "B"),
		{Time: 1_000_000, Code: asciicast.Marker},
		outputEvent(1_500_000, "C"),
	}}

	// No keys are ever delivered, so once the player pauses at the
	// marker it can never resume or step on its own; Play blocking
	// forever there (rather than reaching EOF) is itself the proof
	// that it stopped.
	done := make(chan error, 1)
	p := New(Options{Output: &out, Clock: clock, PauseOnMarkers: true})
	go func() { done <- p.Play(context.Background(), r) }()

	// Advance 2s of clock time, past both the marker (1s) and C (1.5s).
	for i := 0; i < 100; i++ {
		clock.Advance(pollInterval)
		time.Sleep(time.Millisecond)
	}

	assert.Equal(t, out.String(), "AB")
	select {
	case <-done:
		t.Fatal("Play returned instead of staying paused at the marker")
	default:
	}
}

func TestPlayNextMarkerDrainsToEndWhenNoFurtherMarker(t *testing.T) {
	clock := newFakeClock()
	keys := &fakeKeys{clock: clock}
	// B and the marker each take 500_000 logical microseconds to reach
	// at one pollInterval (20ms = 20_000us) per poll: 25 polls apiece,
	// so the marker auto-pause lands after poll 50. Poll 51 is the
	// first one the player makes after that, while genuinely paused
	// at the marker waiting for C.
	keys.schedule(DefaultKeyBindings().NextMarker, 51)

	var out bytes.Buffer
	r := &sliceReader{events: []asciicast.Event{
		outputEvent(0, "A"),
		outputEvent(500_000, "B"),
		{Time: 1_000_000, Code: asciicast.Marker},
		outputEvent(1_500_000, "C"),
	}}

	p := New(Options{Output: &out, Input: keys, Clock: clock, PauseOnMarkers: true})

	done := make(chan error, 1)
	go func() { done <- p.Play(context.Background(), r) }()

	err := <-done
	assert.NoError(t, err)
	assert.Equal(t, out.String(), "ABC")
}

func TestPlayInvokesOnMarker(t *testing.T) {
	clock := newFakeClock()
	var marked bool

	r := &sliceReader{events: []asciicast.Event{
		{Time: 0, Code: asciicast.Marker},
	}}

	p := New(Options{Clock: clock, OnMarker: func() { marked = true }})
	err := p.Play(context.Background(), r)

	assert.NoError(t, err)
	assert.True(t, marked)
}
