package player

// KeyBindings lists the single bytes the player reacts to while a
// recording is playing. Matching asciinema's own defaults: ctrl-c
// quits, space toggles pause, '.' single-steps one event while
// paused, and ']' jumps to the next marker.
type KeyBindings struct {
	Quit       byte
	Pause      byte
	Step       byte
	NextMarker byte
}

// DefaultKeyBindings returns asciinema's classic playback bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:       0x03,
		Pause:      ' ',
		Step:       '.',
		NextMarker: ']',
	}
}
