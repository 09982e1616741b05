// Command termtape records and plays back terminal sessions in
// asciinema v2 format.
//
// Usage:
//
//	termtape record [options] [command...]
//	termtape play [options] <file.cast>
//	termtape cat [options] <file.cast>...
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"github.com/termtape/termtape/asciicast"
	"github.com/termtape/termtape/cat"
	"github.com/termtape/termtape/config"
	gooeyslog "github.com/termtape/termtape/slog"
	"github.com/termtape/termtape/player"
	"github.com/termtape/termtape/ptydriver"
	"github.com/termtape/termtape/recorder"
	"github.com/termtape/termtape/transform"
	"github.com/termtape/termtape/tty"
)

func newLogger() *slog.Logger {
	handler := gooeyslog.NewHandler(os.Stderr, gooeyslog.DefaultOptions())
	return slog.New(handler)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".termtape.yaml")
}

func main() {
	app := cli.NewApp()
	app.Name = "termtape"
	app.Usage = "record and play back terminal sessions"
	app.Version = "0.1.0"

	app.Commands = []cli.Command{
		recordCommand(),
		playCommand(),
		catCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "termtape:", err)
		os.Exit(1)
	}
}

func recordCommand() cli.Command {
	return cli.Command{
		Name:      "record",
		Usage:     "record a terminal session to an asciicast file",
		ArgsUsage: "[command...]",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "output, o", Value: "session.cast", Usage: "output file"},
			cli.StringFlag{Name: "title, t", Usage: "recording title"},
			cli.Float64Flag{Name: "idle-time-limit", Usage: "cap idle gaps at N seconds (0 or unset: config value, else unlimited)"},
			cli.StringFlag{Name: "prefix-key", Usage: "byte value (e.g. 0x01) gating pause/marker keys"},
			cli.StringFlag{Name: "pause-key", Usage: "byte value that toggles pause (default ctrl-\\)"},
			cli.StringFlag{Name: "add-marker-key", Usage: "byte value that adds a marker"},
			cli.BoolFlag{Name: "append", Usage: "append to an existing recording instead of truncating it"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(defaultConfigPath())
			if err != nil {
				return err
			}

			log := newLogger()

			cols, rows := 80, 24
			if term.IsTerminal(int(os.Stdin.Fd())) {
				if w, h, err := term.GetSize(int(os.Stdin.Fd())); err == nil {
					cols, rows = w, h
				}
			}

			command := c.Args()
			if len(command) == 0 {
				shell := os.Getenv("SHELL")
				if shell == "" {
					shell = "/bin/sh"
				}
				command = []string{shell}
			}

			now := timeNowUnix()
			header := asciicast.Header{
				Cols:      uint16(cols),
				Rows:      uint16(rows),
				Timestamp: &now,
			}

			metadata := asciicast.Metadata{
				Title:   stringPtr(firstNonEmpty(c.String("title"), cfg.Title)),
				Command: stringPtr(commandString(command)),
				Env:     map[string]string{"SHELL": os.Getenv("SHELL"), "TERM": os.Getenv("TERM")},
			}
			if idle := firstNonZero(c.Float64("idle-time-limit"), cfg.IdleTimeLimit); idle > 0 {
				metadata.IdleTimeLimit = &idle
			}

			openFlags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
			if c.Bool("append") {
				openFlags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
			}
			file, err := os.OpenFile(c.String("output"), openFlags, 0o644)
			if err != nil {
				return fmt.Errorf("open %s: %w", c.String("output"), err)
			}
			defer file.Close()

			keys := recorder.DefaultKeyBindings()
			if v := firstNonEmpty(c.String("pause-key"), cfg.PauseKey); v != "" {
				keys.Pause = []byte{parseByte(v)}
			}
			if v := firstNonEmpty(c.String("prefix-key"), cfg.PrefixKey); v != "" {
				keys.Prefix = []byte{parseByte(v)}
			}
			if v := firstNonEmpty(c.String("add-marker-key"), cfg.AddMarkerKey); v != "" {
				keys.AddMarker = []byte{parseByte(v)}
			}

			writer := asciicast.NewJSONWriter(file)
			rec, err := recorder.New(writer, header, c.Bool("append"),
				recorder.WithKeyBindings(keys),
				recorder.WithMetadata(metadata),
				recorder.WithLogger(log))
			if err != nil {
				return fmt.Errorf("start recorder: %w", err)
			}
			defer rec.Close()

			log.Info("recording", slog.String("output", c.String("output")), slog.String("command", command[0]))
			return ptydriver.Run(ptydriver.Options{Command: command}, rec)
		},
	}
}

func playCommand() cli.Command {
	return cli.Command{
		Name:      "play",
		Usage:     "play back a recorded session",
		ArgsUsage: "<file.cast>",
		Flags: []cli.Flag{
			cli.Float64Flag{Name: "speed, s", Usage: "playback speed multiplier (default 1.0)"},
			cli.Float64Flag{Name: "idle-time-limit, i", Usage: "cap idle gaps at N seconds (0 or unset: config value, else the recording's own limit, else unlimited)"},
			cli.BoolFlag{Name: "pause-on-markers", Usage: "stop playback at every marker until resumed or skipped"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return fmt.Errorf("missing recording file")
			}

			cfg, err := config.Load(defaultConfigPath())
			if err != nil {
				return err
			}

			file, err := os.Open(c.Args().First())
			if err != nil {
				return err
			}
			defer file.Close()

			src, err := asciicast.Decompress(file)
			if err != nil {
				return err
			}

			header, reader, err := asciicast.NewJSONReader(src)
			if err != nil {
				return err
			}

			headerIdle := 0.0
			if header.IdleTimeLimit != nil {
				headerIdle = *header.IdleTimeLimit
			}
			idle := firstNonZero(c.Float64("idle-time-limit"), cfg.IdleTimeLimit, headerIdle)
			if idle > 0 {
				reader = transform.LimitIdle(reader, idle)
			}
			speed := firstNonZero(c.Float64("speed"), cfg.Speed, 1.0)
			if speed != 1.0 {
				reader = transform.Accelerate(reader, speed)
			}

			var input player.KeyReader
			devTTY, err := tty.OpenDevTTY()
			if err == nil {
				defer devTTY.Close()
				input = devTTY
			}

			p := player.New(player.Options{
				Output:         os.Stdout,
				Input:          input,
				PauseOnMarkers: c.Bool("pause-on-markers"),
				OnMarker: func() {
					fmt.Fprintln(os.Stderr, "\n-- marker --")
				},
			})

			err = p.Play(context.Background(), reader)
			if err == player.ErrQuit {
				return nil
			}
			return err
		},
	}
}

func catCommand() cli.Command {
	return cli.Command{
		Name:      "cat",
		Usage:     "concatenate recordings and print the merged asciicast to stdout",
		ArgsUsage: "<file.cast>...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("no recordings given")
			}

			header, reader, closer, err := cat.Open(c.Args())
			if err != nil {
				return err
			}
			defer closer.Close()

			writer := asciicast.NewJSONWriter(os.Stdout)
			if err := writer.Start(header, false); err != nil {
				return err
			}

			for {
				event, err := reader.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					return fmt.Errorf("cat: reading %s: %w", strings.Join([]string(c.Args()), ", "), err)
				}
				switch event.Code {
				case asciicast.Output:
					writer.Output(event.Time, event.Data)
				case asciicast.Input:
					writer.Input(event.Time, event.Data)
				case asciicast.Resize:
					writer.Resize(event.Time, event.Cols, event.Rows)
				case asciicast.Marker:
					writer.Marker(event.Time)
				}
			}
			return nil
		},
	}
}

func timeNowUnix() int64 {
	return time.Now().Unix()
}

func commandString(args []string) string {
	return strings.Join(args, " ")
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func parseByte(s string) byte {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0
	}
	return byte(n)
}

