//go:build unix

package tty

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DevTTY is the controlling terminal, opened directly from /dev/tty so
// that it works even when stdin/stdout have been redirected. Opening it
// switches the terminal to raw mode and puts its descriptor in
// non-blocking mode for the lifetime of the handle; Close restores both,
// even if the caller never flushes or reads again.
type DevTTY struct {
	file     *os.File
	oldState *term.State
}

// OpenDevTTY opens the controlling terminal and switches it to raw,
// non-blocking mode. Callers must Close the returned handle to restore
// the terminal, including on error and panic paths.
func OpenDevTTY() (*DevTTY, error) {
	file, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty: %w", err)
	}

	fd := int(file.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("set raw mode: %w", err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		term.Restore(fd, oldState)
		file.Close()
		return nil, fmt.Errorf("set non-blocking: %w", err)
	}

	return &DevTTY{file: file, oldState: oldState}, nil
}

func (t *DevTTY) Read(buf []byte) (int, error) { return t.file.Read(buf) }

func (t *DevTTY) Write(buf []byte) (int, error) { return t.file.Write(buf) }

func (t *DevTTY) Flush() error { return t.file.Sync() }

func (t *DevTTY) Fd() int { return int(t.file.Fd()) }

// Size queries the kernel's current winsize for the terminal via ioctl.
func (t *DevTTY) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(t.Fd(), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, fmt.Errorf("get window size: %w", err)
	}
	return Size{Cols: ws.Col, Rows: ws.Row}, nil
}

// WaitReadable waits for the terminal descriptor to become readable
// using select(2), giving microsecond-granularity timeouts without
// spawning a reader goroutine that would outlive a timed-out read.
func (t *DevTTY) WaitReadable(timeout time.Duration) (bool, error) {
	return waitReadable(t.Fd(), timeout)
}

// Close restores the terminal's original mode and closes the file. It
// is safe to call once; the caller owns scoping it to a defer.
func (t *DevTTY) Close() error {
	if t.oldState != nil {
		term.Restore(t.Fd(), t.oldState)
		t.oldState = nil
	}
	return t.file.Close()
}

func waitReadable(fd int, timeout time.Duration) (bool, error) {
	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	rfds := &unix.FdSet{}
	fdSet(rfds, fd)

	for {
		n, err := unix.Select(fd+1, rfds, nil, nil, &tv)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("select: %w", err)
		}
		return n > 0, nil
	}
}

func fdSet(set *unix.FdSet, fd int) {
	const bitsPerWord = 64
	set.Bits[fd/bitsPerWord] |= 1 << (uint(fd) % bitsPerWord)
}
