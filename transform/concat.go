package transform

import (
	"io"

	"github.com/termtape/termtape/asciicast"
)

// Recording pairs a header with the lazy event sequence that follows it,
// the shape a codec's Reader hands back after opening a source.
type Recording struct {
	Header asciicast.Header
	Events asciicast.Reader
}

// Concat emits the first recording's header followed by the events of
// every recording in order, each rewritten so that the first event of
// recording N+1 starts at the last emitted time of recording N rather
// than at its own declared zero. A recording with no events contributes
// no offset to the ones that follow it.
func Concat(recordings []Recording) (asciicast.Header, asciicast.Reader) {
	if len(recordings) == 0 {
		return asciicast.Header{}, emptyReader{}
	}

	return recordings[0].Header, &concatReader{recordings: recordings}
}

type concatReader struct {
	recordings []Recording
	index      int
	offset     uint64
	lastTime   uint64
}

func (c *concatReader) Next() (asciicast.Event, error) {
	for c.index < len(c.recordings) {
		event, err := c.recordings[c.index].Events.Next()
		if err != nil {
			if err == io.EOF {
				c.offset = c.lastTime
				c.index++
				continue
			}
			return asciicast.Event{}, err
		}

		event.Time += c.offset
		c.lastTime = event.Time
		return event, nil
	}

	return asciicast.Event{}, io.EOF
}

type emptyReader struct{}

func (emptyReader) Next() (asciicast.Event, error) { return asciicast.Event{}, io.EOF }
