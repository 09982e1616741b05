// Package transform implements the lazy, order-preserving event stream
// transforms shared by the player and the concat driver: idle
// compression, speed scaling, and time-offset concatenation.
package transform

import (
	"math"

	"github.com/termtape/termtape/asciicast"
)

// LimitIdle caps the gap between consecutive emitted event times at
// round(limitSeconds*1e6) microseconds, shrinking long idle stretches
// while leaving the order and payload of events untouched.
func LimitIdle(r asciicast.Reader, limitSeconds float64) asciicast.Reader {
	limit := limitSeconds * 1e6
	var limitMicros uint64
	if limit >= math.MaxUint64 {
		limitMicros = math.MaxUint64
	} else {
		limitMicros = uint64(math.Round(limit))
	}

	return &idleLimiter{inner: r, limitMicros: limitMicros}
}

type idleLimiter struct {
	inner       asciicast.Reader
	limitMicros uint64
	prevOrig    uint64
	prevOut     uint64
}

func (l *idleLimiter) Next() (asciicast.Event, error) {
	event, err := l.inner.Next()
	if err != nil {
		return asciicast.Event{}, err
	}

	gap := event.Time - l.prevOrig
	if gap > l.limitMicros {
		gap = l.limitMicros
	}

	emitted := l.prevOut + gap
	l.prevOrig = event.Time
	l.prevOut = emitted

	event.Time = emitted
	return event, nil
}
