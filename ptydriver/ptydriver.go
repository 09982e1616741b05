// Package ptydriver spawns a command in a pseudo-terminal and pumps
// its I/O through a recorder.Recorder, the external collaborator that
// turns "run this command interactively" into a recorded session:
// raw-mode stdin, SIGWINCH-driven resize, and input/output copy loops
// feeding the recorder concurrently with the terminal itself.
package ptydriver

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/term"

	"github.com/termtape/termtape/recorder"
)

// Options configures one recorded run.
type Options struct {
	Command []string
	Dir     string
	Env     []string

	// Stdin/Stdout default to os.Stdin/os.Stdout. Stdin is put into
	// raw mode for the duration of Run if it is a terminal.
	Stdin  *os.File
	Stdout *os.File
}

// Run starts Command in a PTY, mirrors its I/O to Stdout, forwards
// Stdin to it, and feeds both streams plus resize events to rec. Run
// blocks until the command exits and returns its exit error, if any.
func Run(opts Options, rec *recorder.Recorder) error {
	if len(opts.Command) == 0 {
		return fmt.Errorf("ptydriver: no command given")
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	cmd := exec.Command(opts.Command[0], opts.Command[1:]...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	cols, rows := 80, 24
	if term.IsTerminal(int(stdin.Fd())) {
		if w, h, err := term.GetSize(int(stdin.Fd())); err == nil {
			cols, rows = w, h
		}
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return fmt.Errorf("ptydriver: start pty: %w", err)
	}
	defer ptmx.Close()

	var oldState *term.State
	if term.IsTerminal(int(stdin.Fd())) {
		oldState, err = term.MakeRaw(int(stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ptydriver: set raw mode: %w", err)
		}
		defer term.Restore(int(stdin.Fd()), oldState)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range sigCh {
			if !term.IsTerminal(int(stdin.Fd())) {
				continue
			}
			w, h, err := term.GetSize(int(stdin.Fd()))
			if err != nil {
				continue
			}
			pty.Setsize(ptmx, &pty.Winsize{Cols: uint16(w), Rows: uint16(h)})
			rec.Resize(uint16(w), uint16(h))
		}
	}()

	go copyInput(stdin, ptmx, rec)

	buf := make([]byte, 32*1024)
	for {
		n, err := ptmx.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			stdout.Write(data)
			rec.Output(data)
		}
		if err != nil {
			break
		}
	}

	signal.Stop(sigCh)
	close(sigCh)
	wg.Wait()

	return cmd.Wait()
}

// copyInput relays operator keystrokes into the PTY, letting the
// recorder's key-binding state machine intercept pause/marker chunks
// before they ever reach the child process.
func copyInput(stdin *os.File, ptmx *os.File, rec *recorder.Recorder) {
	buf := make([]byte, 4096)
	for {
		n, err := stdin.Read(buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if rec.Input(chunk) {
				if _, werr := ptmx.Write(chunk); werr != nil {
					return
				}
			}
		}
		if err != nil {
			if err == io.EOF {
				ptmx.Write([]byte{4})
			}
			return
		}
	}
}
