package indicator

import (
	"math"
	"testing"
)

func TestInitialState(t *testing.T) {
	e := New()
	if e.State() != Listening {
		t.Fatalf("new engine state = %v, want listening", e.State())
	}
	if e.TargetLevel() != 0 {
		t.Fatalf("new engine target = %v, want 0", e.TargetLevel())
	}
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		value string
		want  State
		ok    bool
	}{
		{"listening", Listening, true},
		{"processing", Processing, true},
		{"cancelling", Cancelling, true},
		{"paused", Listening, false},
		{"", Listening, false},
		{"LISTENING", Listening, false},
	}
	for _, c := range cases {
		e := New()
		ok := e.Transition(c.value)
		if ok != c.ok {
			t.Errorf("Transition(%q) ok = %v, want %v", c.value, ok, c.ok)
		}
		if e.State() != c.want {
			t.Errorf("Transition(%q) state = %v, want %v", c.value, e.State(), c.want)
		}
	}
}

func TestLeavingListeningZeroesTarget(t *testing.T) {
	for _, to := range []string{"processing", "cancelling"} {
		e := New()
		e.Amplitude(0.9)
		if e.TargetLevel() != 0.9 {
			t.Fatalf("target = %v after sample, want 0.9", e.TargetLevel())
		}
		e.Transition(to)
		if e.TargetLevel() != 0 {
			t.Errorf("target = %v after %s, want 0", e.TargetLevel(), to)
		}
	}
}

func TestListeningTransitionKeepsTarget(t *testing.T) {
	e := New()
	e.Amplitude(0.6)
	e.Transition("listening")
	if e.TargetLevel() != 0.6 {
		t.Errorf("target = %v after re-entering listening, want 0.6", e.TargetLevel())
	}
}

func TestUnknownStateKeepsEverything(t *testing.T) {
	e := New()
	e.Transition("processing")
	e.Transition("rebooting")
	if e.State() != Processing {
		t.Errorf("state = %v after unknown value, want processing", e.State())
	}
}

func TestAmplitudeDroppedUnlessListening(t *testing.T) {
	for _, mode := range []string{"processing", "cancelling"} {
		e := New()
		e.Transition(mode)
		e.Amplitude(0.7)
		if e.TargetLevel() != 0 {
			t.Errorf("target = %v after sample while %s, want 0", e.TargetLevel(), mode)
		}
	}
}

// States listening, then samples [0, 0.5, 1, -1, NaN]: target should
// follow [0, 0.5, 1, 0, 0].
func TestSampleSanitizingScenario(t *testing.T) {
	e := New()
	e.Transition("listening")
	samples := []float64{0, 0.5, 1, -1, math.NaN()}
	want := []float64{0, 0.5, 1, 0, 0}
	for i, s := range samples {
		e.Amplitude(s)
		if got := e.TargetLevel(); got != want[i] {
			t.Errorf("after sample %d (%v): target = %v, want %v", i, s, got, want[i])
		}
	}
}

// listening -> processing (sample 0.7 dropped) -> listening: the target
// stays at 0 until a fresh sample arrives after the return.
func TestRoundTripDropsMidProcessingSample(t *testing.T) {
	e := New()
	e.Transition("listening")
	e.Amplitude(0.9)
	e.Transition("processing")
	e.Amplitude(0.7)
	e.Transition("listening")
	if e.TargetLevel() != 0 {
		t.Fatalf("target = %v after round trip, want 0", e.TargetLevel())
	}
	e.Amplitude(0.3)
	if e.TargetLevel() != 0.3 {
		t.Fatalf("target = %v after fresh sample, want 0.3", e.TargetLevel())
	}
}

func TestAdvanceConverges(t *testing.T) {
	e := New()
	e.Amplitude(1)
	for i := 0; i < 50; i++ {
		e.Advance()
	}
	f := e.Frame()
	if math.Abs(f.Level-1) > 1e-6 {
		t.Errorf("displayed = %v after 50 frames at target 1, want ~1", f.Level)
	}
}

func TestAdvanceStepsPhase(t *testing.T) {
	e := New()
	a := e.Frame()
	e.Advance()
	b := e.Frame()
	if a.Bars == b.Bars {
		t.Error("bars unchanged after one frame; phase did not advance")
	}
}

func TestAmplitudeEventCounter(t *testing.T) {
	e := New()
	e.Transition("processing")
	e.Amplitude(0.5) // gated, still counted
	e.Amplitude(0.5)
	if n := e.AmplitudeEvents(); n != 2 {
		t.Errorf("AmplitudeEvents = %d, want 2", n)
	}
}
