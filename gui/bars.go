//go:build gui

package gui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"pulsebar/indicator"
	"pulsebar/signal"
)

const (
	barCellW  = 14 // px per bar
	barGap    = 6
	barMaxH   = 96
	barMinH   = 4
	frameTick = 33 * time.Millisecond
)

// Color ramps per display bucket (0..10), RGB approximations of the
// TUI's ANSI ramps.
var (
	rampLive = []color.Color{
		color.RGBA{68, 68, 68, 255},   // 0
		color.RGBA{0, 95, 0, 255},     // 1
		color.RGBA{0, 135, 0, 255},    // 2
		color.RGBA{0, 175, 0, 255},    // 3
		color.RGBA{0, 215, 0, 255},    // 4
		color.RGBA{0, 255, 0, 255},    // 5
		color.RGBA{175, 255, 0, 255},  // 6
		color.RGBA{215, 255, 0, 255},  // 7
		color.RGBA{255, 255, 0, 255},  // 8
		color.RGBA{255, 135, 0, 255},  // 9
		color.RGBA{255, 0, 0, 255},    // 10
	}
	rampPulse = []color.Color{
		color.RGBA{68, 68, 68, 255},    // 0
		color.RGBA{0, 0, 95, 255},      // 1
		color.RGBA{0, 0, 135, 255},     // 2
		color.RGBA{0, 0, 175, 255},     // 3
		color.RGBA{0, 0, 215, 255},     // 4
		color.RGBA{0, 95, 255, 255},    // 5
		color.RGBA{0, 95, 255, 255},    // 6
		color.RGBA{0, 135, 255, 255},   // 7
		color.RGBA{0, 175, 255, 255},   // 8
		color.RGBA{0, 215, 255, 255},   // 9
		color.RGBA{0, 255, 255, 255},   // 10
	}
	noSignalColor = color.RGBA{255, 135, 0, 255}
)

// BarWidget renders the nine bars. Its frame loop is one indicator.Loop
// started at construction and stopped exactly once when the renderer is
// destroyed; lifecycle never depends on the levels it draws.
type BarWidget struct {
	widget.BaseWidget
	engine *indicator.Engine
	loop   *indicator.Loop

	mu       sync.Mutex
	noSignal bool
}

func NewBarWidget(engine *indicator.Engine) *BarWidget {
	w := &BarWidget{engine: engine}
	w.ExtendBaseWidget(w)
	w.loop = indicator.NewLoop(engine, frameTick, func() {
		fyne.Do(func() {
			w.Refresh()
		})
	})
	w.loop.Start()
	return w
}

// SetNoSignal tints the bars while the feed is quiet mid-listening.
func (w *BarWidget) SetNoSignal(v bool) {
	w.mu.Lock()
	w.noSignal = v
	w.mu.Unlock()
}

func (w *BarWidget) signalLost() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.noSignal
}

// Stop cancels the frame loop. Idempotent.
func (w *BarWidget) Stop() {
	w.loop.Stop()
}

func (w *BarWidget) MinSize() fyne.Size {
	width := indicator.NumBars*barCellW + (indicator.NumBars-1)*barGap
	return fyne.NewSize(float32(width), float32(barMaxH))
}

func (w *BarWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &barRenderer{widget: w}
	for i := range r.rects {
		r.rects[i] = canvas.NewRectangle(rampLive[0])
	}
	return r
}

type barRenderer struct {
	widget *BarWidget
	rects  [indicator.NumBars]*canvas.Rectangle
	size   fyne.Size
}

func (r *barRenderer) Layout(size fyne.Size) {
	r.size = size
	r.place(r.widget.engine.Frame())
}

func (r *barRenderer) MinSize() fyne.Size {
	return r.widget.MinSize()
}

func (r *barRenderer) Refresh() {
	frame := r.widget.engine.Frame()
	r.place(frame)

	ramp := rampLive
	if frame.State != indicator.Listening {
		ramp = rampPulse
	}
	lost := r.widget.signalLost()
	for i, b := range frame.Bars {
		c := ramp[signal.Bucket(b)]
		if lost && frame.State == indicator.Listening {
			c = noSignalColor
		}
		r.rects[i].FillColor = c
		r.rects[i].Refresh()
	}
}

// place bottom-aligns every bar at its current intensity.
func (r *barRenderer) place(frame indicator.Frame) {
	if r.size.Width == 0 {
		r.size = r.widget.MinSize()
	}
	for i, b := range frame.Bars {
		h := float32(barMinH + b*(barMaxH-barMinH))
		x := float32(i * (barCellW + barGap))
		r.rects[i].Move(fyne.NewPos(x, r.size.Height-h))
		r.rects[i].Resize(fyne.NewSize(barCellW, h))
	}
}

func (r *barRenderer) Objects() []fyne.CanvasObject {
	objs := make([]fyne.CanvasObject, 0, len(r.rects))
	for _, rect := range r.rects {
		objs = append(objs, rect)
	}
	return objs
}

func (r *barRenderer) Destroy() {
	r.widget.Stop()
}
