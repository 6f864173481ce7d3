//go:build !gui

package main

// Stub for non-GUI builds (never used since guiMode stays false)
var guiApp EventSink

func initGUI() {
	panic("pulsebar: built without GUI support (rebuild with -tags gui)")
}
