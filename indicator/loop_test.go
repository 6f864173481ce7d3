package indicator

import (
	"testing"
	"time"
)

func TestLoopAdvancesEngine(t *testing.T) {
	e := New()
	frames := make(chan struct{}, 64)
	l := NewLoop(e, time.Millisecond, func() {
		select {
		case frames <- struct{}{}:
		default:
		}
	})
	l.Start()
	defer l.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-frames:
		case <-time.After(time.Second):
			t.Fatal("no frame within 1s")
		}
	}
}

func TestLoopStopIdempotent(t *testing.T) {
	e := New()
	l := NewLoop(e, time.Millisecond, nil)
	l.Start()
	l.Stop()
	l.Stop()
	l.Stop()
	if !l.Stopped() {
		t.Fatal("loop not stopped")
	}
}

func TestLoopStopBeforeStart(t *testing.T) {
	e := New()
	l := NewLoop(e, time.Millisecond, nil)
	l.Stop()
	l.Start() // must not tick
	time.Sleep(20 * time.Millisecond)
	before := e.Frame().Level
	e.Amplitude(1)
	time.Sleep(20 * time.Millisecond)
	if after := e.Frame().Level; after != before {
		t.Fatalf("engine advanced after pre-start stop: %v -> %v", before, after)
	}
}

func TestLoopStartIdempotent(t *testing.T) {
	e := New()
	var frames int
	done := make(chan struct{})
	l := NewLoop(e, 5*time.Millisecond, func() {
		frames++
		if frames == 1 {
			close(done)
		}
	})
	l.Start()
	l.Start()
	<-done
	l.Stop()
	// a second Start after Stop must not revive the loop
	l.Start()
	time.Sleep(20 * time.Millisecond)
	if !l.Stopped() {
		t.Fatal("loop revived after stop")
	}
}
