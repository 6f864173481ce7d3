package indicator

import (
	"sync"
	"time"
)

// Loop drives Engine.Advance at a fixed frame interval for hosts that
// do not bring their own tick source. It is started once for the
// widget's whole mounted lifetime and never restarted when the values
// it reads change. Stop is safe to call any number of times, including
// before Start and concurrently with a running frame.
type Loop struct {
	engine  *Engine
	every   time.Duration
	onFrame func()

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
}

// NewLoop wraps engine in a frame loop ticking at the given interval.
// onFrame, if non-nil, runs after each Advance (typically a repaint).
func NewLoop(engine *Engine, every time.Duration, onFrame func()) *Loop {
	return &Loop{
		engine:  engine,
		every:   every,
		onFrame: onFrame,
		stopCh:  make(chan struct{}),
	}
}

// Start launches the frame goroutine. Subsequent calls do nothing.
func (l *Loop) Start() {
	l.startOnce.Do(func() {
		go l.run()
	})
}

func (l *Loop) run() {
	select {
	case <-l.stopCh:
		return
	default:
	}
	ticker := time.NewTicker(l.every)
	defer ticker.Stop()
	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.engine.Advance()
			if l.onFrame != nil {
				l.onFrame()
			}
		}
	}
}

// Stop cancels the loop. Idempotent; a Stop before Start leaves the
// loop permanently stopped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopCh)
	})
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	select {
	case <-l.stopCh:
		return true
	default:
		return false
	}
}
