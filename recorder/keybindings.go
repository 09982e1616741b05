package recorder

import "bytes"

// KeyBindings lists the exact input byte sequences the recorder
// intercepts instead of forwarding to the child process. A binding is
// disabled by leaving it nil.
//
// When Prefix is set, Pause and AddMarker only fire if they follow a
// chunk that matched Prefix exactly: the recorder first swallows the
// prefix chunk, then inspects the very next chunk against the command
// table. When Prefix is nil, Pause and AddMarker are matched directly
// against every input chunk, asciinema's classic "ctrl-\ toggles
// pause" behavior.
type KeyBindings struct {
	Prefix    []byte
	Pause     []byte
	AddMarker []byte
}

// DefaultKeyBindings matches asciinema's own defaults: no prefix, and
// ctrl-\ (0x1c) toggles pause.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{Pause: []byte{0x1c}}
}

func (k KeyBindings) hasPrefix() bool { return k.Prefix != nil }

func equalChunk(data, binding []byte) bool {
	return binding != nil && bytes.Equal(data, binding)
}
