package asciicast

import (
	"bufio"
	"compress/gzip"
	"io"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Decompress wraps r so that gzip-compressed input is transparently
// inflated, detected by peeking at its first two bytes rather than
// requiring a seekable source. Uncompressed input passes through
// unchanged. The returned reader satisfies io.Reader and, when
// decompression kicked in, io.Closer; callers that need the gzip
// stream's resources released explicitly should type-assert for it.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	magic, err := br.Peek(2)
	if err != nil {
		if err == io.EOF {
			return br, nil
		}
		return nil, err
	}

	if magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return gz, nil
	}

	return br, nil
}
