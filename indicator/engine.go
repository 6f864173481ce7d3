// Package indicator holds the visualization core: the three-state
// recording lifecycle, the smoothed level and phase cells advanced once
// per frame, and the bar renderer that turns them into nine intensities.
package indicator

import (
	"sync"

	"pulsebar/signal"
)

// Engine owns the widget's mutable cells: lifecycle state, the target
// level written by amplitude events, and the displayed level and phase
// advanced by the frame loop. A single mutex covers all four so event
// handlers and the frame loop can run on separate goroutines; handlers
// always read the live state from here rather than a captured copy.
type Engine struct {
	mu        sync.Mutex
	state     State
	target    float64
	displayed float64
	phase     float64
	events    uint64
}

// New returns an engine in Listening with all levels at rest.
func New() *Engine {
	return &Engine{state: Listening}
}

// Amplitude records a raw sample as the new target level, overwriting
// whatever was there (last write wins, no queue). Samples are sanitized
// first and dropped entirely unless the engine is Listening.
func (e *Engine) Amplitude(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events++
	if e.state != Listening {
		return
	}
	e.target = signal.Clamp(level)
}

// Transition applies a wire state value. Entering Processing or
// Cancelling zeroes the target so a stale loud sample cannot linger
// into the thinking animation. Unknown values are no-ops; the return
// value reports whether the value was recognized.
func (e *Engine) Transition(value string) bool {
	s, ok := ParseState(value)
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = s
	if s != Listening {
		e.target = 0
	}
	return true
}

// Advance runs one animation frame: a single smoothing step toward the
// target and a fixed phase increment. Frame rate and event rate stay
// decoupled; Advance never inspects whether new samples arrived.
func (e *Engine) Advance() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.displayed = signal.Smooth(e.displayed, e.target)
	e.phase += PhaseStep
}

// Frame is one rendered animation frame.
type Frame struct {
	State State
	Level float64
	Bars  [NumBars]float64
}

// Frame snapshots the current state and renders the bar intensities.
func (e *Engine) Frame() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Frame{
		State: e.state,
		Level: e.displayed,
		Bars:  Bars(e.displayed, e.phase, e.state),
	}
}

// State returns the current lifecycle mode.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// TargetLevel returns the latest sanitized amplitude target.
func (e *Engine) TargetLevel() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.target
}

// AmplitudeEvents counts amplitude deliveries since creation, gated or
// not. The feed staleness monitor diffs it between ticks.
func (e *Engine) AmplitudeEvents() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events
}
