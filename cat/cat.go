// Package cat implements the concatenation driver: it opens a
// sequence of recording files in order and streams their combined
// events as one, rewriting timestamps so playback sees a single
// continuous recording instead of a series of resets to zero.
package cat

import (
	"fmt"
	"io"
	"os"

	"github.com/termtape/termtape/asciicast"
	"github.com/termtape/termtape/transform"
)

// Open opens every path in order, in asciicast v2 JSON-lines form
// (transparently gzip-decompressed when a file starts with the gzip
// magic bytes), and returns the header of the first recording plus a
// single asciicast.Reader over all of their events concatenated with
// transform.Concat.
//
// The returned closer must be called once the reader is fully drained
// (or abandoned) to release the underlying file handles.
func Open(paths []string) (asciicast.Header, asciicast.Reader, io.Closer, error) {
	if len(paths) == 0 {
		return asciicast.Header{}, nil, nil, fmt.Errorf("cat: no recordings given")
	}

	closer := &multiCloser{}
	recordings := make([]transform.Recording, 0, len(paths))

	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			closer.Close()
			return asciicast.Header{}, nil, nil, fmt.Errorf("cat: open %s: %w", path, err)
		}
		closer.files = append(closer.files, file)

		src, err := asciicast.Decompress(file)
		if err != nil {
			closer.Close()
			return asciicast.Header{}, nil, nil, fmt.Errorf("cat: %s: %w", path, err)
		}
		if c, ok := src.(io.Closer); ok {
			closer.files = append(closer.files, c)
		}

		header, reader, err := asciicast.NewJSONReader(src)
		if err != nil {
			closer.Close()
			return asciicast.Header{}, nil, nil, fmt.Errorf("cat: parse %s: %w", path, err)
		}

		recordings = append(recordings, transform.Recording{Header: header, Events: reader})
	}

	header, merged := transform.Concat(recordings)
	return header, merged, closer, nil
}

type multiCloser struct {
	files []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for i := len(m.files) - 1; i >= 0; i-- {
		if cerr := m.files[i].Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
