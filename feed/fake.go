package feed

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"time"
)

// FakeTransport delivers events in-process. It backs the -fake demo
// mode and the feed tests.
type FakeTransport struct {
	mu          sync.Mutex
	unavailable bool
	handlers    map[string]func([]byte)
	detachCount map[string]int

	// AttachGate, when non-nil, blocks Attach until the channel is
	// closed. Tests use it to exercise teardown racing attachment.
	AttachGate chan struct{}
}

func NewFake() *FakeTransport {
	return &FakeTransport{
		handlers:    make(map[string]func([]byte)),
		detachCount: make(map[string]int),
	}
}

// SetAvailable flips the capability probe result.
func (t *FakeTransport) SetAvailable(ok bool) {
	t.mu.Lock()
	t.unavailable = !ok
	t.mu.Unlock()
}

func (t *FakeTransport) Available() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.unavailable
}

func (t *FakeTransport) Attach(ctx context.Context, channel string, deliver func(payload []byte)) (Detach, error) {
	t.mu.Lock()
	gate := t.AttachGate
	t.mu.Unlock()
	if gate != nil {
		<-gate
	}

	t.mu.Lock()
	t.handlers[channel] = deliver
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.handlers, channel)
		t.detachCount[channel]++
		t.mu.Unlock()
	}, nil
}

// Attached reports whether a subscription is live on channel.
func (t *FakeTransport) Attached(channel string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.handlers[channel]
	return ok
}

// Detaches returns how many times channel was detached.
func (t *FakeTransport) Detaches(channel string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.detachCount[channel]
}

// Emit pushes a raw payload to the channel's subscriber, if any.
func (t *FakeTransport) Emit(channel string, payload []byte) {
	t.mu.Lock()
	h := t.handlers[channel]
	t.mu.Unlock()
	if h != nil {
		h(payload)
	}
}

// EmitAmplitude pushes an amplitude event.
func (t *FakeTransport) EmitAmplitude(level float64) {
	payload, _ := json.Marshal(AmplitudeEvent{Level: level})
	t.Emit(ChannelAmplitude, payload)
}

// EmitState pushes a recording-state event.
func (t *FakeTransport) EmitState(state string) {
	payload, _ := json.Marshal(StateEvent{State: state})
	t.Emit(ChannelState, payload)
}

// RunScript synthesizes an engine session in a loop until stop closes:
// a few seconds of listening with sine-shaped loudness, then a short
// processing phase. Drives the -fake demo mode.
func (t *FakeTransport) RunScript(stop <-chan struct{}) {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	tick := 0
	t.EmitState("listening")
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		tick++
		switch phase := tick % 180; {
		case phase == 0:
			t.EmitState("listening")
		case phase == 130:
			t.EmitState("processing")
		case phase < 130:
			// loudness swells and fades twice per listening phase
			level := 0.5 + 0.45*math.Sin(float64(tick)*0.1)
			t.EmitAmplitude(level)
		}
	}
}
