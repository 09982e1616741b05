// Package asciicast defines the event and header types shared by the
// recorder and player, and the Writer/Reader capabilities a concrete
// codec (JSON-lines, raw byte stream, ...) must satisfy.
package asciicast

// EventCode identifies the kind of data carried by an Event.
type EventCode byte

const (
	Output EventCode = 'o'
	Input  EventCode = 'i'
	Resize EventCode = 'r'
	Marker EventCode = 'm'
)

func (c EventCode) String() string {
	return string(c)
}

// Header precedes every event in a recording. It is written once, at the
// start of the session, and is immutable afterwards.
type Header struct {
	Cols          uint16
	Rows          uint16
	Timestamp     *int64
	IdleTimeLimit *float64
	Command       *string
	Title         *string
	Env           map[string]string
}

// Event is a single timestamped occurrence in a recording. Time is
// microseconds elapsed since the start of the session and is
// non-decreasing across a well-formed stream.
//
// Data carries the payload for Output and Input; Cols/Rows carry the new
// size for Resize; Marker carries no payload.
type Event struct {
	Time uint64
	Code EventCode
	Data []byte
	Cols uint16
	Rows uint16
}

// Metadata holds recorder-side overrides merged into the header emitted
// at the start of a session.
type Metadata struct {
	IdleTimeLimit *float64
	Command       *string
	Title         *string
	Env           map[string]string
}

// Writer is the capability a codec must expose to serialize a recording.
// Implementations must be safe to move to another goroutine: the recorder
// hands its Writer to a dedicated background goroutine and never touches
// it again from the calling thread.
type Writer interface {
	Start(header Header, append bool) error
	Output(time uint64, data []byte) error
	Input(time uint64, data []byte) error
	Resize(time uint64, cols, rows uint16) error
	Marker(time uint64) error
}

// Reader is a lazily-materialized sequence of events. Next returns
// (Event{}, io.EOF) once the stream is exhausted. A parse or I/O failure
// on one item does not prevent earlier items from having been consumed
// successfully; callers typically treat it as the end of a playable
// stream.
type Reader interface {
	Next() (Event, error)
}
