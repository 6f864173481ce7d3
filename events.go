package main

import "pulsebar/indicator"

// EventSink abstracts the display layer so both the Bubble Tea TUI and
// the Fyne GUI receive the same engine notifications. Per-frame bar
// values never travel through here; each host reads them straight off
// the indicator engine on its own tick.
type EventSink interface {
	StateChanged(s indicator.State)
	ModeLine(text string)
	NoSignal(active bool)
}
