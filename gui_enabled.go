//go:build gui

package main

import (
	"runtime"

	"pulsebar/gui"
)

var guiApp *gui.App

func initGUI() {
	guiMode = true

	// Lock this goroutine to the OS thread for Fyne/GLFW
	runtime.LockOSThread()

	guiApp = gui.NewApp(engine, func() {
		run()
	})
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
	gracefulShutdown()
}
