package main

import "time"

const (
	monitorInterval = 100 * time.Millisecond
	quietWarnEvery  = 8 * time.Second
	feedMinRatio    = 0.10
	feedClearRatio  = 0.25 // higher threshold to clear warning (hysteresis)
)

type FeedEvent int

const (
	FeedNone       FeedEvent = iota
	FeedQuiet                // listening but no amplitude events arriving
	FeedQuietClear           // events resumed after a warning
)

// feedMonitor watches whether amplitude events keep arriving while the
// engine claims to be listening. A listening engine that goes quiet for
// the warn window usually means the feed died without a state change.
type feedMonitor struct {
	warnAt int
	window []bool
	ticks  int
	warned bool
}

func newFeedMonitor() *feedMonitor {
	warnAt := int(quietWarnEvery / monitorInterval)
	return &feedMonitor{
		warnAt: warnAt,
		window: make([]bool, warnAt),
	}
}

// Reset clears the window, e.g. on a lifecycle transition.
func (m *feedMonitor) Reset() {
	m.ticks = 0
	m.warned = false
	for i := range m.window {
		m.window[i] = false
	}
}

func (m *feedMonitor) ratio() float64 {
	n := m.warnAt
	if m.ticks < n {
		n = m.ticks
	}
	if n == 0 {
		return 1.0
	}
	count := 0
	for i := 0; i < n; i++ {
		if m.window[(m.ticks-1-i+len(m.window))%len(m.window)] {
			count++
		}
	}
	return float64(count) / float64(n)
}

// Tick records whether any amplitude events arrived since the last
// tick and reports warn/clear edges.
func (m *feedMonitor) Tick(sawEvents bool) FeedEvent {
	m.window[m.ticks%len(m.window)] = sawEvents
	m.ticks++

	r := m.ratio()

	if m.ticks >= m.warnAt && r < feedMinRatio && !m.warned {
		m.warned = true
		return FeedQuiet
	}
	if m.warned && r >= feedClearRatio {
		m.warned = false
		return FeedQuietClear
	}
	return FeedNone
}
