package asciicast

import (
	"bytes"
	"io"
	"testing"

	"github.com/termtape/termtape/assert"
)

func TestJSONWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)

	title := "demo"
	header := Header{Cols: 80, Rows: 24, Title: &title}
	assert.NoError(t, w.Start(header, false))
	assert.NoError(t, w.Output(0, []byte("hello")))
	assert.NoError(t, w.Input(1_000_000, []byte("x")))
	assert.NoError(t, w.Resize(2_000_000, 100, 40))
	assert.NoError(t, w.Marker(3_000_000))

	gotHeader, reader, err := NewJSONReader(&buf)
	assert.NoError(t, err)
	assert.Equal(t, gotHeader.Cols, uint16(80))
	assert.Equal(t, gotHeader.Rows, uint16(24))
	assert.Equal(t, *gotHeader.Title, "demo")

	var events []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		assert.NoError(t, err)
		events = append(events, event)
	}

	assert.Equal(t, len(events), 4)
	assert.Equal(t, events[0].Code, Output)
	assert.Equal(t, string(events[0].Data), "hello")
	assert.Equal(t, events[1].Code, Input)
	assert.Equal(t, events[2].Code, Resize)
	assert.Equal(t, events[2].Cols, uint16(100))
	assert.Equal(t, events[2].Rows, uint16(40))
	assert.Equal(t, events[3].Code, Marker)
}

func TestJSONReaderRejectsMalformedEvent(t *testing.T) {
	input := "{\"version\":2,\"width\":80,\"height\":24}\n" +
		"[0,\"o\",\"a\"]\n" +
		"not json\n" +
		"[1,\"o\",\"b\"]\n"

	_, reader, err := NewJSONReader(bytes.NewBufferString(input))
	assert.NoError(t, err)

	first, err := reader.Next()
	assert.NoError(t, err)
	assert.Equal(t, string(first.Data), "a")

	_, err = reader.Next()
	if err == nil {
		t.Fatalf("expected error on malformed line")
	}

	// The stream is dead after a parse failure; it does not skip ahead.
	_, err = reader.Next()
	if err == nil {
		t.Fatalf("expected sticky error after malformed line")
	}
}

func TestJSONWriterAppendSuppressesHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	assert.NoError(t, w.Start(Header{Cols: 80, Rows: 24}, true))
	assert.Equal(t, buf.Len(), 0)
}
