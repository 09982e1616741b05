package tty

import (
	"errors"
	"os"
	"time"
)

// NullTTY is a handle that is never readable and always writable: a
// stand-in for the controlling terminal when recording a command whose
// input is supplied programmatically (piped stdin, a script) rather
// than typed live. Size reports a fixed geometry since there is no
// real terminal to query.
//
// Reads are never expected in practice (WaitReadable never reports
// ready), so Read panics if a caller ignores that contract.
type NullTTY struct {
	size      Size
	readEnd   *os.File
	writeEnd  *os.File
}

// NewNullTTY builds a NullTTY with the given fallback geometry, used
// when a driver needs a descriptor to ioctl against but no terminal is
// actually attached.
func NewNullTTY(size Size) (*NullTTY, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &NullTTY{size: size, readEnd: r, writeEnd: w}, nil
}

func (n *NullTTY) Read(buf []byte) (int, error) {
	panic("tty: NullTTY.Read called; WaitReadable never reports this handle ready")
}

func (n *NullTTY) Write(buf []byte) (int, error) { return len(buf), nil }

func (n *NullTTY) Flush() error { return nil }

func (n *NullTTY) Fd() int { return int(n.readEnd.Fd()) }

func (n *NullTTY) Size() (Size, error) { return n.size, nil }

// WaitReadable always waits out the full timeout and reports false: a
// null handle never has data to deliver.
func (n *NullTTY) WaitReadable(timeout time.Duration) (bool, error) {
	if timeout > 0 {
		time.Sleep(timeout)
	}
	return false, nil
}

func (n *NullTTY) Close() error {
	return errors.Join(n.readEnd.Close(), n.writeEnd.Close())
}
