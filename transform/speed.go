package transform

import (
	"math"

	"github.com/termtape/termtape/asciicast"
)

// Accelerate scales every event time by 1/speed. Events are still
// emitted strictly in source order, so even when speed collapses two
// distinct source times onto the same emitted microsecond, ties resolve
// in the order they were read.
func Accelerate(r asciicast.Reader, speed float64) asciicast.Reader {
	return &accelerator{inner: r, speed: speed}
}

type accelerator struct {
	inner asciicast.Reader
	speed float64
}

func (a *accelerator) Next() (asciicast.Event, error) {
	event, err := a.inner.Next()
	if err != nil {
		return asciicast.Event{}, err
	}

	event.Time = uint64(math.Round(float64(event.Time) / a.speed))
	return event, nil
}
