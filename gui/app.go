//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"pulsebar/indicator"
)

// App is the desktop overlay host: a small frameless always-on-top
// window pinned bottom-center, showing the bar widget.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	bars    *BarWidget
	engine  *indicator.Engine
	onReady func()
	posX    int
	posY    int
}

func NewApp(engine *indicator.Engine, onReady func()) *App {
	return &App{engine: engine, onReady: onReady}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.pulsebar.gui")
	a.fyneApp.Settings().SetTheme(&overlayTheme{})

	// Set up system tray using Fyne's built-in support
	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("pulsebar",
			fyne.NewMenuItem("Quit", func() {
				a.fyneApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(trayIcon())
	}

	// Get primary monitor work area for positioning
	var screenW, screenH int
	monitor := glfw.GetPrimaryMonitor()
	if monitor != nil {
		_, _, screenW, screenH = monitor.GetWorkarea()
	} else {
		screenW, screenH = 1920, 1080 // fallback
	}

	// Create frameless splash window on desktop
	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("pulsebar")
	}

	a.bars = NewBarWidget(a.engine)

	// Set bars as content directly - no padding
	a.window.SetContent(a.bars)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)

	// Size to exactly fit the widget
	size := a.bars.MinSize()
	a.window.Resize(size)

	// Bottom-center position (with margin for dock)
	a.posX = (screenW - int(size.Width)) / 2
	a.posY = screenH - int(size.Height) - 20

	go a.onReady()

	a.Show()
	a.fyneApp.Run()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) Show() {
	fyne.Do(func() {
		if a.window == nil {
			return
		}

		// Configure GLFW attributes BEFORE showing
		if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
			glfwWin.SetPos(a.posX, a.posY)
			glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
			glfwWin.SetAttrib(glfw.Floating, glfw.True)
		}

		// Show without taking focus - use GLFW directly
		if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
			glfwWin.Show()
		} else {
			a.window.Show()
		}
	})
}

// EventSink implementation - the widget reads the engine per frame, so
// these only carry the hints that are not derivable from a frame.
func (a *App) StateChanged(s indicator.State) {
	// The widget reads state off the engine every frame; nothing to do.
}

func (a *App) ModeLine(text string) {}

func (a *App) NoSignal(active bool) {
	a.bars.SetNoSignal(active)
}
