package asciicast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// jsonHeader is the wire representation of Header: the first line of
// every .cast file.
type jsonHeader struct {
	Version       int               `json:"version"`
	Width         uint16            `json:"width"`
	Height        uint16            `json:"height"`
	Timestamp     *int64            `json:"timestamp,omitempty"`
	IdleTimeLimit *float64          `json:"idle_time_limit,omitempty"`
	Command       *string           `json:"command,omitempty"`
	Title         *string           `json:"title,omitempty"`
	Env           map[string]string `json:"env,omitempty"`
}

func (h jsonHeader) toHeader() Header {
	return Header{
		Cols:          h.Width,
		Rows:          h.Height,
		Timestamp:     h.Timestamp,
		IdleTimeLimit: h.IdleTimeLimit,
		Command:       h.Command,
		Title:         h.Title,
		Env:           h.Env,
	}
}

func fromHeader(h Header) jsonHeader {
	return jsonHeader{
		Version:       2,
		Width:         h.Cols,
		Height:        h.Rows,
		Timestamp:     h.Timestamp,
		IdleTimeLimit: h.IdleTimeLimit,
		Command:       h.Command,
		Title:         h.Title,
		Env:           h.Env,
	}
}

// JSONWriter writes a recording in asciinema v2 JSON-lines format: a
// header object followed by one `[time, code, data]` array per line.
type JSONWriter struct {
	w *bufio.Writer
}

// NewJSONWriter wraps w for asciinema v2 JSON-lines output.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w)}
}

func (w *JSONWriter) Start(header Header, append bool) error {
	if append {
		return nil
	}

	encoded, err := json.Marshal(fromHeader(header))
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	if _, err := w.w.Write(encoded); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write header newline: %w", err)
	}
	return w.w.Flush()
}

func (w *JSONWriter) Output(time uint64, data []byte) error {
	return w.writeEvent(time, Output, string(data))
}

func (w *JSONWriter) Input(time uint64, data []byte) error {
	return w.writeEvent(time, Input, string(data))
}

func (w *JSONWriter) Resize(time uint64, cols, rows uint16) error {
	return w.writeEvent(time, Resize, fmt.Sprintf("%dx%d", cols, rows))
}

func (w *JSONWriter) Marker(time uint64) error {
	return w.writeEvent(time, Marker, "")
}

func (w *JSONWriter) writeEvent(time uint64, code EventCode, data string) error {
	encoded, err := json.Marshal([]any{microsToSeconds(time), code.String(), data})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := w.w.Write(encoded); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write event newline: %w", err)
	}
	return w.w.Flush()
}

func microsToSeconds(t uint64) float64 {
	return float64(t) / 1e6
}

func secondsToMicros(s float64) uint64 {
	if s < 0 {
		return 0
	}
	return uint64(s*1e6 + 0.5)
}

// jsonReader implements Reader over a scanner of JSON-lines events.
type jsonReader struct {
	scanner *bufio.Scanner
	err     error
}

// NewJSONReader reads the header line from r and returns it alongside a
// Reader over the remaining event lines. Malformed event lines surface
// as an error from Next and terminate the sequence; the caller keeps
// whatever it already consumed.
func NewJSONReader(r io.Reader) (Header, Reader, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Header{}, nil, fmt.Errorf("read header: %w", err)
		}
		return Header{}, nil, fmt.Errorf("read header: empty stream")
	}

	var raw jsonHeader
	if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
		return Header{}, nil, fmt.Errorf("parse header: %w", err)
	}

	return raw.toHeader(), &jsonReader{scanner: scanner}, nil
}

func (r *jsonReader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = fmt.Errorf("read event: %w", err)
			return Event{}, r.err
		}
		r.err = io.EOF
		return Event{}, io.EOF
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(r.scanner.Bytes(), &raw); err != nil {
		r.err = fmt.Errorf("parse event: %w", err)
		return Event{}, r.err
	}
	if len(raw) != 3 {
		r.err = fmt.Errorf("parse event: expected 3 fields, got %d", len(raw))
		return Event{}, r.err
	}

	var seconds float64
	if err := json.Unmarshal(raw[0], &seconds); err != nil {
		r.err = fmt.Errorf("parse event time: %w", err)
		return Event{}, r.err
	}

	var code string
	if err := json.Unmarshal(raw[1], &code); err != nil {
		r.err = fmt.Errorf("parse event code: %w", err)
		return Event{}, r.err
	}

	var data string
	if err := json.Unmarshal(raw[2], &data); err != nil {
		r.err = fmt.Errorf("parse event data: %w", err)
		return Event{}, r.err
	}

	event := Event{Time: secondsToMicros(seconds), Code: EventCode(code[0])}

	switch event.Code {
	case Resize:
		var cols, rows uint16
		if _, err := fmt.Sscanf(data, "%dx%d", &cols, &rows); err != nil {
			r.err = fmt.Errorf("parse resize payload %q: %w", data, err)
			return Event{}, r.err
		}
		event.Cols, event.Rows = cols, rows
	case Marker:
		// no payload
	default:
		event.Data = []byte(data)
	}

	return event, nil
}
