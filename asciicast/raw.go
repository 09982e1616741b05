package asciicast

import (
	"fmt"
	"io"
)

// RawWriter writes only the Output bytes of a session verbatim, preceded
// by an escape sequence that asks the terminal to resize itself to the
// recorded geometry. It discards Input, Resize and Marker events and
// carries no timing information, making it suitable for `cat`-style
// replay by piping straight to a terminal but not for timed playback.
type RawWriter struct {
	w io.Writer
}

// NewRawWriter wraps w for raw byte-stream output.
func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

func (w *RawWriter) Start(header Header, append bool) error {
	if append {
		return nil
	}
	_, err := fmt.Fprintf(w.w, "\x1b[8;%d;%dt", header.Rows, header.Cols)
	return err
}

func (w *RawWriter) Output(_ uint64, data []byte) error {
	_, err := w.w.Write(data)
	return err
}

func (w *RawWriter) Input(_ uint64, _ []byte) error { return nil }

func (w *RawWriter) Resize(_ uint64, _, _ uint16) error { return nil }

func (w *RawWriter) Marker(_ uint64) error { return nil }
