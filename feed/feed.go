// Package feed attaches to the recording engine's push channels and
// routes decoded events into the visualization core. The engine is an
// external process; pulsebar only ever consumes, never calls back.
package feed

import (
	"context"
	"encoding/json"
	"sync"

	"pulsebar/log"
)

// Channel names published by the recording engine.
const (
	ChannelAmplitude = "amplitude"
	ChannelState     = "recording-state"
)

// AmplitudeEvent is the payload on the amplitude channel.
type AmplitudeEvent struct {
	Level float64 `json:"level"`
}

// StateEvent is the payload on the recording-state channel.
type StateEvent struct {
	State string `json:"state"`
}

// Detach tears down one subscription. Implementations are idempotent.
type Detach func()

// Transport is a connection to the engine capable of per-channel push
// subscriptions. Attach may block while the subscription is set up;
// Available is a cheap one-shot capability probe.
type Transport interface {
	Available() bool
	Attach(ctx context.Context, channel string, deliver func(payload []byte)) (Detach, error)
}

// Manager owns the widget's two subscriptions for one mount. The
// channels are attached on background goroutines; a detach requested
// before attachment completes wins, and the late attach result is torn
// down immediately instead of being left dangling.
type Manager struct {
	transport Transport

	mu       sync.Mutex
	live     bool
	detaches []subscription
}

type subscription struct {
	channel string
	detach  Detach
}

// NewManager wraps a transport. One Manager serves one widget mount.
func NewManager(t Transport) *Manager {
	return &Manager{transport: t}
}

// Subscribe attaches both channels and returns an idempotent detach.
// An unavailable transport is not an error: pulsebar may be running
// without its host engine, and then it simply keeps rendering the idle
// animation. Amplitude payloads route to onAmplitude, state payloads
// to onState; malformed payloads are logged and skipped.
func (m *Manager) Subscribe(onAmplitude func(level float64), onState func(value string)) Detach {
	if !m.transport.Available() {
		log.Info("engine transport unavailable, rendering idle")
		return func() {}
	}

	m.mu.Lock()
	m.live = true
	m.mu.Unlock()

	go m.attach(ChannelAmplitude, func(payload []byte) {
		var ev AmplitudeEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			log.Warnf("bad amplitude payload: %v", err)
			return
		}
		onAmplitude(ev.Level)
	})
	go m.attach(ChannelState, func(payload []byte) {
		var ev StateEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			log.Warnf("bad state payload: %v", err)
			return
		}
		onState(ev.State)
	})

	return m.teardown
}

func (m *Manager) attach(channel string, deliver func([]byte)) {
	d, err := m.transport.Attach(context.Background(), channel, deliver)
	if err != nil {
		log.Warnf("subscribe %s: %v", channel, err)
		return
	}
	m.mu.Lock()
	if !m.live {
		m.mu.Unlock()
		// Teardown already ran; never leave a late attach dangling.
		d()
		log.FeedStatus(channel, "late_detach")
		return
	}
	m.detaches = append(m.detaches, subscription{channel: channel, detach: d})
	m.mu.Unlock()
	log.FeedStatus(channel, "attached")
}

func (m *Manager) teardown() {
	m.mu.Lock()
	if !m.live {
		m.mu.Unlock()
		return
	}
	m.live = false
	subs := m.detaches
	m.detaches = nil
	m.mu.Unlock()
	for _, s := range subs {
		s.detach()
		log.FeedStatus(s.channel, "detached")
	}
}
